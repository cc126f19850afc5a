package repository

import (
	"context"

	"base-receipts/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt persistence
type ReceiptRepository interface {
	// CreateReceipt records a minted receipt and links it to its wallet
	CreateReceipt(ctx context.Context, receipt *entity.Receipt) error

	// GetReceipt retrieves a receipt by transaction hash
	GetReceipt(ctx context.Context, txHash string) (*entity.Receipt, error)

	// GetWalletReceipts retrieves receipts minted by a wallet, newest first
	GetWalletReceipts(ctx context.Context, walletAddress string, limit int) ([]*entity.Receipt, error)
}
