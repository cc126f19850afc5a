package service

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"base-receipts/internal/domain/entity"
)

// WalletStatsCalculator aggregates a wallet's transaction history into
// behavioral statistics. It holds only the static bridge registry and an
// injectable clock, so a calculation is deterministic for a fixed clock.
//
// Note: token-vs-native counting here follows the explorer's contractAddress
// receipt field and is deliberately independent of the richer
// TransactionClassifier; the two classification paths are never merged.
type WalletStatsCalculator struct {
	bridgeContracts map[string]string
	now             func() time.Time
}

// NewWalletStatsCalculator creates a calculator with the known bridge
// contract registry for Base
func NewWalletStatsCalculator() *WalletStatsCalculator {
	c := &WalletStatsCalculator{
		now: time.Now,
	}
	c.initializeBridgeContracts()
	return c
}

// WithClock overrides the clock used for wallet-age computation, for
// deterministic tests.
func (c *WalletStatsCalculator) WithClock(now func() time.Time) *WalletStatsCalculator {
	c.now = now
	return c
}

// Calculate aggregates the supplied transactions into wallet statistics.
//
// Preconditions: the list is non-empty (callers short-circuit empty history
// to EmptyWalletStats) and sorted by ascending timestamp — only the
// first-transaction fields depend on the ordering. All address comparisons
// are case-insensitive. Transactions with isError != "0" contribute to no
// accumulator.
//
// The balance is reconstructed from the supplied window only: incoming value
// is added, outgoing value plus gas is subtracted. For wallets whose history
// exceeds the window this diverges from the chain balance; it is an
// approximation, not a state query.
func (c *WalletStatsCalculator) Calculate(transactions []*entity.Transaction, walletAddress string) (*entity.WalletStats, error) {
	if len(transactions) == 0 {
		return nil, fmt.Errorf("no transactions to aggregate for wallet %s", walletAddress)
	}

	wallet := strings.ToLower(walletAddress)

	totalVolume := new(big.Int)
	depositedAmount := new(big.Int)
	balance := new(big.Int)
	nativeTxs := 0
	tokenTxs := 0
	totalContractInteractions := 0

	contractAddresses := make(map[string]struct{})
	bridgesSeen := make(map[string]struct{})
	bridgesUsed := []string{}
	activeDays := make(map[string]struct{})
	activeWeeks := make(map[string]struct{})
	activeMonths := make(map[string]struct{})

	for _, tx := range transactions {
		if tx.IsError != "0" {
			continue
		}

		value, err := tx.ParseValue()
		if err != nil {
			return nil, err
		}
		timestamp, err := tx.ParseTimestamp()
		if err != nil {
			return nil, err
		}

		toAddress := strings.ToLower(tx.To)
		fromAddress := strings.ToLower(tx.From)

		// Activity buckets by calendar day, week, and month
		activeDays[timestamp.Format("2006-01-02")] = struct{}{}
		activeWeeks[fmt.Sprintf("%d-W%d", timestamp.Year(), weekNumber(timestamp))] = struct{}{}
		activeMonths[timestamp.Format("2006-01")] = struct{}{}

		// Volume counts every positive value, regardless of direction
		if value.Sign() > 0 {
			totalVolume.Add(totalVolume, value)
		}

		// Token txs carry a contract address in the explorer's schema;
		// otherwise a positive value marks a native transfer. Zero-value
		// contract calls without a token receipt count as neither.
		if tx.ContractAddress != "" {
			tokenTxs++
		} else if value.Sign() > 0 {
			nativeTxs++
		}

		if toAddress == wallet && value.Sign() > 0 {
			depositedAmount.Add(depositedAmount, value)
		}

		if tx.To != "" && tx.Input != "" && tx.Input != "0x" {
			totalContractInteractions++
			contractAddresses[toAddress] = struct{}{}
		}

		if name, ok := c.bridgeContracts[toAddress]; ok {
			if _, seen := bridgesSeen[name]; !seen {
				bridgesSeen[name] = struct{}{}
				bridgesUsed = append(bridgesUsed, name)
			}
		}

		// Balance reconstruction: the sender pays gas on top of the value
		if toAddress == wallet {
			balance.Add(balance, value)
		}
		if fromAddress == wallet {
			balance.Sub(balance, value)

			gasUsed, err := tx.ParseGasUsed()
			if err != nil {
				return nil, err
			}
			gasPrice, err := tx.ParseGasPrice()
			if err != nil {
				return nil, err
			}
			balance.Sub(balance, new(big.Int).Mul(gasUsed, gasPrice))
		}
	}

	// The first element is the chronologically earliest transaction; it
	// anchors wallet age even when it failed onchain.
	firstTimestamp, err := transactions[0].ParseTimestamp()
	if err != nil {
		return nil, err
	}
	walletAge := int(c.now().Sub(firstTimestamp).Hours() / 24)

	return &entity.WalletStats{
		Balance:                    balance.String(),
		Volume:                     totalVolume.String(),
		NativeTxs:                  nativeTxs,
		TokenTxs:                   tokenTxs,
		WalletAge:                  walletAge,
		FirstTransactionDate:       firstTimestamp.Format("2006-01-02T15:04:05.000Z"),
		UniqueActiveDays:           len(activeDays),
		UniqueActiveWeeks:          len(activeWeeks),
		UniqueActiveMonths:         len(activeMonths),
		TotalContractInteractions:  totalContractInteractions,
		UniqueContractInteractions: len(contractAddresses),
		DepositedAmount:            depositedAmount.String(),
		NativeBridgeUsed:           bridgesUsed,
		TotalTransactions:          len(transactions),
	}, nil
}

// weekNumber computes the day-of-year based week used for activity keys:
// ceil((dayOfYear + jan1Weekday + 1) / 7), 1-indexed.
func weekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return (t.YearDay() + int(jan1.Weekday()) + 1 + 6) / 7
}

// initializeBridgeContracts sets up the bridge registry consulted by the
// aggregator. This is a separate table from the classifier's protocol
// registry and the two are kept independent on purpose.
func (c *WalletStatsCalculator) initializeBridgeContracts() {
	c.bridgeContracts = map[string]string{
		"0x49048044d57e1c92a77f79988d21fa8faf74e97e": "Base Native Bridge",
		"0x3154cf16ccdb4c6d922629664174b904d80f2c35": "Base Bridge",
		"0x866e82a600a1414e583f7f13623f1ac5d58b0afa": "Hop Protocol",
		"0x46ae9bab8cea96610807a275ebd36f8e916b5c61": "Stargate Bridge",
		"0x10e6593cdda8c58a1d0f14c5164b376352a55f2f": "Synapse Bridge",
	}
}
