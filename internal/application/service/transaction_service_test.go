package service

import (
	"context"
	"testing"
	"time"

	"base-receipts/internal/domain/entity"
	domainservice "base-receipts/internal/domain/service"
	"base-receipts/internal/infrastructure/cache"
	"base-receipts/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransactionService(t *testing.T, source *fakeTransactionSource) domainservice.TransactionService {
	t.Helper()

	log, err := logger.NewLogger("error")
	require.NoError(t, err)

	return NewTransactionService(
		source,
		domainservice.NewTransactionClassifier(),
		cache.NewTTLCache[[]*entity.ClassifiedTransaction](time.Minute),
		log,
	)
}

func TestGetRecentTransactionsClassifies(t *testing.T) {
	swap := depositTx("0x1", 1700000200)
	swap.To = "0x4752ba5dbc23f44d87826276bf6fd6b1c372ad24"
	swap.Input = "0x38ed1739000000000000000000000000"

	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{
			swap,
			depositTx("0x2", 1700000100),
		},
	}
	svc := newTransactionService(t, source)

	txs, err := svc.GetRecentTransactions(context.Background(), testWallet, 10)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, entity.ActionSwap, txs[0].ActionType)
	assert.Equal(t, "Uniswap V3 Router", txs[0].Protocol)
	assert.True(t, txs[0].Mintable)
	assert.Empty(t, txs[0].RestrictionReason)

	assert.Equal(t, entity.ActionSend, txs[1].ActionType)
	assert.Equal(t, time.Unix(1700000100, 0).UTC(), txs[1].Timestamp)

	// Recent list is fetched newest first
	assert.Equal(t, "desc", source.lastQuery.Sort)
}

func TestGetRecentTransactionsFiltersFailed(t *testing.T) {
	failed := depositTx("0x1", 1700000200)
	failed.IsError = "1"

	reverted := depositTx("0x2", 1700000150)
	reverted.TxReceiptStatus = "0"

	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{
			failed,
			reverted,
			depositTx("0x3", 1700000100),
		},
	}
	svc := newTransactionService(t, source)

	txs, err := svc.GetRecentTransactions(context.Background(), testWallet, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "0x3", txs[0].Hash)
}

func TestGetRecentTransactionsHonorsLimit(t *testing.T) {
	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{
			depositTx("0x1", 1700000300),
			depositTx("0x2", 1700000200),
			depositTx("0x3", 1700000100),
		},
	}
	svc := newTransactionService(t, source)

	txs, err := svc.GetRecentTransactions(context.Background(), testWallet, 2)
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	// Small limits still over-fetch to survive failed-transaction filtering
	assert.Equal(t, 20, source.lastQuery.Offset)
}

func TestGetRecentTransactionsCachesPerLimit(t *testing.T) {
	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{depositTx("0x1", 1700000100)},
	}
	svc := newTransactionService(t, source)

	_, err := svc.GetRecentTransactions(context.Background(), testWallet, 10)
	require.NoError(t, err)
	_, err = svc.GetRecentTransactions(context.Background(), testWallet, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, source.txCalls)

	// A different limit is a different cache entry
	_, err = svc.GetRecentTransactions(context.Background(), testWallet, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, source.txCalls)
}

func TestGetRecentTransactionsMarksRestricted(t *testing.T) {
	deploy := depositTx("0x1", 1700000100)
	deploy.To = ""
	deploy.Input = "0x60806040"

	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{deploy},
	}
	svc := newTransactionService(t, source)

	txs, err := svc.GetRecentTransactions(context.Background(), testWallet, 10)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	assert.Equal(t, entity.ActionDeploy, txs[0].ActionType)
	assert.False(t, txs[0].Mintable)
	assert.NotEmpty(t, txs[0].RestrictionReason)
}
