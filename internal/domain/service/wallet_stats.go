package service

import (
	"context"

	"base-receipts/internal/domain/entity"
)

// WalletStatsService defines the interface for wallet analytics operations
type WalletStatsService interface {
	// GetWalletStats returns aggregated statistics for a wallet address
	GetWalletStats(ctx context.Context, address string) (*entity.WalletStats, error)

	// InvalidateWalletStats drops any cached statistics for the address so
	// the next read recomputes from fresh explorer data
	InvalidateWalletStats(address string)
}
