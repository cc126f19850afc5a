package service

import (
	"context"

	"base-receipts/internal/domain/entity"
)

// TransactionService defines the interface for listing and classifying a
// wallet's recent transactions
type TransactionService interface {
	// GetRecentTransactions returns up to limit recent successful
	// transactions for the address, each with its classification attached
	GetRecentTransactions(ctx context.Context, address string, limit int) ([]*entity.ClassifiedTransaction, error)
}
