package service

import (
	"context"
	"fmt"
	"strings"

	"base-receipts/internal/domain/entity"
	domainservice "base-receipts/internal/domain/service"
	"base-receipts/internal/infrastructure/cache"
	"base-receipts/internal/infrastructure/config"
	"base-receipts/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// WalletStatsService computes and caches wallet statistics
type WalletStatsService struct {
	source     domainservice.TransactionSource
	calculator *domainservice.WalletStatsCalculator
	cache      *cache.TTLCache[*entity.WalletStats]
	maxOffset  int
	logger     *logger.Logger
}

// NewWalletStatsService creates a new wallet stats service
func NewWalletStatsService(
	source domainservice.TransactionSource,
	calculator *domainservice.WalletStatsCalculator,
	statsCache *cache.TTLCache[*entity.WalletStats],
	cfg *config.ExplorerConfig,
	logger *logger.Logger,
) domainservice.WalletStatsService {
	return &WalletStatsService{
		source:     source,
		calculator: calculator,
		cache:      statsCache,
		maxOffset:  cfg.MaxOffset,
		logger:     logger.WithComponent("wallet-stats-service"),
	}
}

// GetWalletStats returns aggregated statistics for a wallet, serving from
// cache when a fresh entry exists
func (s *WalletStatsService) GetWalletStats(ctx context.Context, address string) (*entity.WalletStats, error) {
	key := strings.ToLower(address)

	if stats, ok := s.cache.Get(key); ok {
		s.logger.Debug("Serving wallet stats from cache", zap.String("address", key))
		return stats, nil
	}

	// Ascending order so the first element anchors wallet age
	transactions, err := s.source.GetTransactions(ctx, address, domainservice.TransactionQuery{
		StartBlock: 0,
		EndBlock:   99999999,
		Page:       1,
		Offset:     s.maxOffset,
		Sort:       "asc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transaction history: %w", err)
	}

	if len(transactions) == 0 {
		// Nothing to reconstruct from, so ask the chain for the balance
		balance, err := s.source.GetBalance(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch balance: %w", err)
		}
		stats := entity.EmptyWalletStats(balance.String())
		s.cache.Set(key, stats)
		return stats, nil
	}

	stats, err := s.calculator.Calculate(transactions, address)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, stats)

	s.logger.Debug("Computed wallet stats",
		zap.String("address", key),
		zap.Int("transactions", stats.TotalTransactions))

	return stats, nil
}

// InvalidateWalletStats drops any cached statistics for the address
func (s *WalletStatsService) InvalidateWalletStats(address string) {
	s.cache.Invalidate(strings.ToLower(address))
}
