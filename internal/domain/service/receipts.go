package service

import (
	"context"
	"errors"

	"base-receipts/internal/domain/entity"
)

// ErrTransactionNotFound is returned when the requested transaction does not
// appear in the wallet's recent history
var ErrTransactionNotFound = errors.New("transaction not found for wallet")

// MintRestrictedError reports a transaction whose action type cannot be
// minted as a receipt
type MintRestrictedError struct {
	ActionType entity.ActionType
	Reason     string
}

func (e *MintRestrictedError) Error() string {
	return e.Reason
}

// ReceiptService defines the interface for receipt minting operations
type ReceiptService interface {
	// MintReceipt classifies the transaction, checks mint eligibility, and
	// records the minted receipt
	MintReceipt(ctx context.Context, walletAddress, txHash, note string) (*entity.Receipt, error)

	// GetWalletReceipts returns minted receipts for a wallet, newest first
	GetWalletReceipts(ctx context.Context, walletAddress string, limit int) ([]*entity.Receipt, error)
}
