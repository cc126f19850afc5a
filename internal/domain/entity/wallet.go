package entity

// WalletStats summarizes a wallet's onchain behavior, derived from one
// snapshot of its transaction history. Balance is reconstructed from the
// supplied window only and diverges from the chain balance when history is
// truncated; callers needing ground truth query the balance endpoint instead.
type WalletStats struct {
	Balance                    string   `json:"balance"`
	Volume                     string   `json:"volume"`
	NativeTxs                  int      `json:"nativeTxs"`
	TokenTxs                   int      `json:"tokenTxs"`
	WalletAge                  int      `json:"walletAge"`
	FirstTransactionDate       string   `json:"firstTransactionDate"`
	UniqueActiveDays           int      `json:"uniqueActiveDays"`
	UniqueActiveWeeks          int      `json:"uniqueActiveWeeks"`
	UniqueActiveMonths         int      `json:"uniqueActiveMonths"`
	TotalContractInteractions  int      `json:"totalContractInteractions"`
	UniqueContractInteractions int      `json:"uniqueContractInteractions"`
	DepositedAmount            string   `json:"depositedAmount"`
	NativeBridgeUsed           []string `json:"nativeBridgeUsed"`
	TotalTransactions          int      `json:"totalTransactions"`
}

// EmptyWalletStats returns the zeroed stats served for wallets with no
// transaction history. The balance comes from the dedicated balance endpoint
// since there is no window to reconstruct it from.
func EmptyWalletStats(balance string) *WalletStats {
	return &WalletStats{
		Balance:              balance,
		Volume:               "0",
		DepositedAmount:      "0",
		FirstTransactionDate: "N/A",
		NativeBridgeUsed:     []string{},
	}
}
