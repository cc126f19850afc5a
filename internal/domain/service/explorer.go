package service

import (
	"context"
	"math/big"

	"base-receipts/internal/domain/entity"
)

// TransactionQuery mirrors the explorer's txlist parameters
type TransactionQuery struct {
	StartBlock int64
	EndBlock   int64
	Page       int
	Offset     int
	Sort       string // "asc" or "desc"
}

// TransactionSource provides access to an explorer-style transaction index
type TransactionSource interface {
	// GetTransactions returns transaction records for an address. An address
	// with no history yields an empty slice, not an error.
	GetTransactions(ctx context.Context, address string, query TransactionQuery) ([]*entity.Transaction, error)

	// GetBalance returns the current native balance in wei
	GetBalance(ctx context.Context, address string) (*big.Int, error)
}
