package service

import (
	"context"
	"fmt"
	"strings"

	"base-receipts/internal/domain/entity"
	domainservice "base-receipts/internal/domain/service"
	"base-receipts/internal/infrastructure/cache"
	"base-receipts/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// TransactionService lists and classifies a wallet's recent transactions
type TransactionService struct {
	source     domainservice.TransactionSource
	classifier *domainservice.TransactionClassifier
	cache      *cache.TTLCache[[]*entity.ClassifiedTransaction]
	logger     *logger.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	source domainservice.TransactionSource,
	classifier *domainservice.TransactionClassifier,
	txCache *cache.TTLCache[[]*entity.ClassifiedTransaction],
	logger *logger.Logger,
) domainservice.TransactionService {
	return &TransactionService{
		source:     source,
		classifier: classifier,
		cache:      txCache,
		logger:     logger.WithComponent("transaction-service"),
	}
}

// GetRecentTransactions returns up to limit recent successful transactions
// with their classification attached, newest first
func (s *TransactionService) GetRecentTransactions(ctx context.Context, address string, limit int) ([]*entity.ClassifiedTransaction, error) {
	key := fmt.Sprintf("%s-%d", strings.ToLower(address), limit)

	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("Serving recent transactions from cache", zap.String("key", key))
		return cached, nil
	}

	// Over-fetch so failed transactions can be filtered out and still fill
	// the requested page
	offset := limit
	if offset < 20 {
		offset = 20
	}

	transactions, err := s.source.GetTransactions(ctx, address, domainservice.TransactionQuery{
		StartBlock: 0,
		EndBlock:   99999999,
		Page:       1,
		Offset:     offset,
		Sort:       "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent transactions: %w", err)
	}

	classified := make([]*entity.ClassifiedTransaction, 0, limit)
	for _, tx := range transactions {
		if !tx.IsSuccessful() {
			continue
		}

		actionType := s.classifier.ClassifyRecord(tx)
		timestamp, err := tx.ParseTimestamp()
		if err != nil {
			return nil, err
		}

		classified = append(classified, &entity.ClassifiedTransaction{
			Hash:              tx.Hash,
			From:              tx.From,
			To:                tx.To,
			Value:             tx.Value,
			Timestamp:         timestamp,
			GasUsed:           tx.GasUsed,
			GasPrice:          tx.GasPrice,
			ActionType:        actionType,
			Protocol:          s.classifier.DetectProtocol(tx.To, actionType),
			Mintable:          s.classifier.IsMintable(actionType),
			RestrictionReason: s.classifier.MintRestrictionReason(actionType),
		})

		if len(classified) >= limit {
			break
		}
	}

	s.cache.Set(key, classified)

	return classified, nil
}
