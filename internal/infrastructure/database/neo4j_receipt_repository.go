package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"base-receipts/internal/domain/entity"
	"base-receipts/internal/domain/repository"
	"base-receipts/internal/infrastructure/logger"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

const mintedAtFormat = "2006-01-02T15:04:05.000Z"

// Neo4JReceiptRepository implements ReceiptRepository using Neo4J
type Neo4JReceiptRepository struct {
	client *Neo4JClient
	logger *logger.Logger
}

// NewNeo4JReceiptRepository creates a new Neo4J receipt repository
func NewNeo4JReceiptRepository(client *Neo4JClient, logger *logger.Logger) repository.ReceiptRepository {
	return &Neo4JReceiptRepository{
		client: client,
		logger: logger.WithComponent("neo4j-receipt-repository"),
	}
}

// CreateReceipt records a minted receipt and links it to its wallet
func (r *Neo4JReceiptRepository) CreateReceipt(ctx context.Context, receipt *entity.Receipt) error {
	session := r.client.GetDriver().NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: r.client.config.Database,
	})
	defer session.Close(ctx)

	query := `
		MERGE (w:Wallet {address: $wallet_address})
		MERGE (rc:Receipt {tx_hash: $tx_hash})
		ON CREATE SET
			rc.action_type = $action_type,
			rc.protocol = $protocol,
			rc.note = $note,
			rc.network = $network,
			rc.minted_at = $minted_at
		MERGE (w)-[:MINTED]->(rc)
	`

	params := map[string]any{
		"wallet_address": strings.ToLower(receipt.WalletAddress),
		"tx_hash":        strings.ToLower(receipt.TxHash),
		"action_type":    string(receipt.ActionType),
		"protocol":       receipt.Protocol,
		"note":           receipt.Note,
		"network":        receipt.Network,
		"minted_at":      receipt.MintedAt.UTC().Format(mintedAtFormat),
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return tx.Run(ctx, query, params)
	})
	if err != nil {
		r.logger.Error("Failed to create receipt",
			zap.String("tx_hash", receipt.TxHash),
			zap.Error(err))
		return fmt.Errorf("failed to create receipt: %w", err)
	}

	r.logger.Debug("Created receipt",
		zap.String("tx_hash", receipt.TxHash),
		zap.String("wallet", receipt.WalletAddress),
		zap.String("action_type", string(receipt.ActionType)))

	return nil
}

// GetReceipt retrieves a receipt by transaction hash
func (r *Neo4JReceiptRepository) GetReceipt(ctx context.Context, txHash string) (*entity.Receipt, error) {
	session := r.client.GetDriver().NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: r.client.config.Database,
	})
	defer session.Close(ctx)

	query := `
		MATCH (w:Wallet)-[:MINTED]->(rc:Receipt {tx_hash: $tx_hash})
		RETURN w.address AS wallet_address, rc.tx_hash AS tx_hash,
			rc.action_type AS action_type, rc.protocol AS protocol,
			rc.note AS note, rc.network AS network, rc.minted_at AS minted_at
	`

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"tx_hash": strings.ToLower(txHash),
		})
		if err != nil {
			return nil, err
		}

		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return recordToReceipt(record)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return result.(*entity.Receipt), nil
}

// GetWalletReceipts retrieves receipts minted by a wallet, newest first
func (r *Neo4JReceiptRepository) GetWalletReceipts(ctx context.Context, walletAddress string, limit int) ([]*entity.Receipt, error) {
	session := r.client.GetDriver().NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: r.client.config.Database,
	})
	defer session.Close(ctx)

	query := `
		MATCH (w:Wallet {address: $wallet_address})-[:MINTED]->(rc:Receipt)
		RETURN w.address AS wallet_address, rc.tx_hash AS tx_hash,
			rc.action_type AS action_type, rc.protocol AS protocol,
			rc.note AS note, rc.network AS network, rc.minted_at AS minted_at
		ORDER BY rc.minted_at DESC
		LIMIT $limit
	`

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, map[string]any{
			"wallet_address": strings.ToLower(walletAddress),
			"limit":          limit,
		})
		if err != nil {
			return nil, err
		}

		receipts := make([]*entity.Receipt, 0)
		for res.Next(ctx) {
			receipt, err := recordToReceipt(res.Record())
			if err != nil {
				return nil, err
			}
			receipts = append(receipts, receipt)
		}
		return receipts, res.Err()
	})
	if err != nil {
		r.logger.Error("Failed to get wallet receipts",
			zap.String("wallet", walletAddress),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get wallet receipts: %w", err)
	}

	return result.([]*entity.Receipt), nil
}

// recordToReceipt maps a query record back to the domain entity
func recordToReceipt(record *neo4j.Record) (*entity.Receipt, error) {
	receipt := &entity.Receipt{}

	if v, ok := record.Get("wallet_address"); ok && v != nil {
		receipt.WalletAddress = v.(string)
	}
	if v, ok := record.Get("tx_hash"); ok && v != nil {
		receipt.TxHash = v.(string)
	}
	if v, ok := record.Get("action_type"); ok && v != nil {
		receipt.ActionType = entity.ActionType(v.(string))
	}
	if v, ok := record.Get("protocol"); ok && v != nil {
		receipt.Protocol = v.(string)
	}
	if v, ok := record.Get("note"); ok && v != nil {
		receipt.Note = v.(string)
	}
	if v, ok := record.Get("network"); ok && v != nil {
		receipt.Network = v.(string)
	}
	if v, ok := record.Get("minted_at"); ok && v != nil {
		mintedAt, err := time.Parse(mintedAtFormat, v.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid minted_at on receipt %s: %w", receipt.TxHash, err)
		}
		receipt.MintedAt = mintedAt
	}

	return receipt, nil
}
