package entity

import (
	"time"
)

// Receipt records a transaction receipt minted by a wallet
type Receipt struct {
	TxHash        string     `json:"tx_hash"`
	WalletAddress string     `json:"wallet_address"`
	ActionType    ActionType `json:"action_type"`
	Protocol      string     `json:"protocol"`
	Note          string     `json:"note"`
	MintedAt      time.Time  `json:"minted_at"`
	Network       string     `json:"network"`
}
