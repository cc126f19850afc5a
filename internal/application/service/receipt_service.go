package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"base-receipts/internal/domain/entity"
	"base-receipts/internal/domain/repository"
	domainservice "base-receipts/internal/domain/service"
	"base-receipts/internal/infrastructure/config"
	"base-receipts/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// receiptLookbackLimit bounds how far back in a wallet's history a
// transaction can sit and still be minted
const receiptLookbackLimit = 50

// ReceiptService mints receipts for eligible transactions
type ReceiptService struct {
	transactions domainservice.TransactionService
	classifier   *domainservice.TransactionClassifier
	repository   repository.ReceiptRepository
	network      string
	now          func() time.Time
	logger       *logger.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	transactions domainservice.TransactionService,
	classifier *domainservice.TransactionClassifier,
	repo repository.ReceiptRepository,
	cfg *config.AppConfig,
	logger *logger.Logger,
) domainservice.ReceiptService {
	return &ReceiptService{
		transactions: transactions,
		classifier:   classifier,
		repository:   repo,
		network:      cfg.Network,
		now:          time.Now,
		logger:       logger.WithComponent("receipt-service"),
	}
}

// MintReceipt classifies the transaction, checks mint eligibility, and
// records the minted receipt
func (s *ReceiptService) MintReceipt(ctx context.Context, walletAddress, txHash, note string) (*entity.Receipt, error) {
	recent, err := s.transactions.GetRecentTransactions(ctx, walletAddress, receiptLookbackLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent transactions: %w", err)
	}

	var target *entity.ClassifiedTransaction
	for _, tx := range recent {
		if strings.EqualFold(tx.Hash, txHash) {
			target = tx
			break
		}
	}
	if target == nil {
		return nil, domainservice.ErrTransactionNotFound
	}

	if !target.Mintable {
		return nil, &domainservice.MintRestrictedError{
			ActionType: target.ActionType,
			Reason:     s.classifier.MintRestrictionReason(target.ActionType),
		}
	}

	receipt := &entity.Receipt{
		TxHash:        strings.ToLower(txHash),
		WalletAddress: strings.ToLower(walletAddress),
		ActionType:    target.ActionType,
		Protocol:      target.Protocol,
		Note:          note,
		MintedAt:      s.now().UTC(),
		Network:       s.network,
	}

	if err := s.repository.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	s.logger.Info("Minted receipt",
		zap.String("tx_hash", receipt.TxHash),
		zap.String("wallet", receipt.WalletAddress),
		zap.String("action_type", string(receipt.ActionType)))

	return receipt, nil
}

// GetWalletReceipts returns minted receipts for a wallet, newest first
func (s *ReceiptService) GetWalletReceipts(ctx context.Context, walletAddress string, limit int) ([]*entity.Receipt, error) {
	return s.repository.GetWalletReceipts(ctx, walletAddress, limit)
}
