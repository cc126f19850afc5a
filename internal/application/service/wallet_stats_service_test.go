package service

import (
	"context"
	"math/big"
	"strconv"
	"testing"
	"time"

	"base-receipts/internal/domain/entity"
	domainservice "base-receipts/internal/domain/service"
	"base-receipts/internal/infrastructure/cache"
	"base-receipts/internal/infrastructure/config"
	"base-receipts/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWallet = "0xAAaAaaAaaaAAaaAAaaaaAAAAaaAaAAaaaAaaAaaA"

type fakeTransactionSource struct {
	transactions []*entity.Transaction
	balance      *big.Int
	txErr        error

	txCalls      int
	balanceCalls int
	lastQuery    domainservice.TransactionQuery
}

func (f *fakeTransactionSource) GetTransactions(ctx context.Context, address string, query domainservice.TransactionQuery) ([]*entity.Transaction, error) {
	f.txCalls++
	f.lastQuery = query
	return f.transactions, f.txErr
}

func (f *fakeTransactionSource) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	f.balanceCalls++
	return f.balance, nil
}

func depositTx(hash string, ts int64) *entity.Transaction {
	return &entity.Transaction{
		Hash:            hash,
		From:            "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		To:              testWallet,
		Value:           "1000000000000000000",
		TimeStamp:       strconv.FormatInt(ts, 10),
		Input:           "0x",
		IsError:         "0",
		TxReceiptStatus: "1",
		GasUsed:         "21000",
		GasPrice:        "1000000000",
	}
}

func newStatsService(t *testing.T, source *fakeTransactionSource) domainservice.WalletStatsService {
	t.Helper()

	log, err := logger.NewLogger("error")
	require.NoError(t, err)

	calc := domainservice.NewWalletStatsCalculator().WithClock(func() time.Time {
		return time.Unix(1700000000, 0).UTC()
	})

	return NewWalletStatsService(
		source,
		calc,
		cache.NewTTLCache[*entity.WalletStats](5*time.Minute),
		&config.ExplorerConfig{MaxOffset: 10000},
		log,
	)
}

func TestGetWalletStatsComputesAndCaches(t *testing.T) {
	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{depositTx("0x1", 1700000000)},
	}
	svc := newStatsService(t, source)

	stats, err := svc.GetWalletStats(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", stats.Balance)
	assert.Equal(t, 1, stats.TotalTransactions)

	// History fetch asks for the full window in ascending order
	assert.Equal(t, "asc", source.lastQuery.Sort)
	assert.Equal(t, 10000, source.lastQuery.Offset)

	// Second read is served from cache
	again, err := svc.GetWalletStats(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
	assert.Equal(t, 1, source.txCalls)
}

func TestGetWalletStatsCacheKeyIsCaseInsensitive(t *testing.T) {
	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{depositTx("0x1", 1700000000)},
	}
	svc := newStatsService(t, source)

	_, err := svc.GetWalletStats(context.Background(), testWallet)
	require.NoError(t, err)

	_, err = svc.GetWalletStats(context.Background(), "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)

	assert.Equal(t, 1, source.txCalls)
}

func TestGetWalletStatsEmptyHistory(t *testing.T) {
	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{},
		balance:      big.NewInt(42),
	}
	svc := newStatsService(t, source)

	stats, err := svc.GetWalletStats(context.Background(), testWallet)
	require.NoError(t, err)

	assert.Equal(t, "42", stats.Balance)
	assert.Equal(t, "N/A", stats.FirstTransactionDate)
	assert.Equal(t, 0, stats.TotalTransactions)
	assert.NotNil(t, stats.NativeBridgeUsed)
	assert.Empty(t, stats.NativeBridgeUsed)
	assert.Equal(t, 1, source.balanceCalls)
}

func TestGetWalletStatsUpstreamError(t *testing.T) {
	source := &fakeTransactionSource{txErr: assert.AnError}
	svc := newStatsService(t, source)

	_, err := svc.GetWalletStats(context.Background(), testWallet)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestInvalidateWalletStatsForcesRecompute(t *testing.T) {
	source := &fakeTransactionSource{
		transactions: []*entity.Transaction{depositTx("0x1", 1700000000)},
	}
	svc := newStatsService(t, source)

	_, err := svc.GetWalletStats(context.Background(), testWallet)
	require.NoError(t, err)

	svc.InvalidateWalletStats(testWallet)

	_, err = svc.GetWalletStats(context.Background(), testWallet)
	require.NoError(t, err)
	assert.Equal(t, 2, source.txCalls)
}
