package entity

import (
	"fmt"
	"math/big"
	"strconv"
	"time"
)

// Transaction represents a transaction record from the Basescan (Etherscan V2)
// account txlist endpoint. Numeric fields arrive as decimal strings and can
// exceed 64 bits in wei units, so they are parsed on demand into big.Int.
type Transaction struct {
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"` // empty for contract creation
	Value           string `json:"value"`
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	Input           string `json:"input"`
	IsError         string `json:"isError"`
	TxReceiptStatus string `json:"txreceipt_status"`
	ContractAddress string `json:"contractAddress"`
	GasUsed         string `json:"gasUsed"`
	GasPrice        string `json:"gasPrice"`
}

// IsSuccessful reports whether the transaction executed without error.
// Both the error flag and the receipt status must agree.
func (t *Transaction) IsSuccessful() bool {
	return t.IsError == "0" && t.TxReceiptStatus == "1"
}

// ParseValue returns the transferred value in wei.
func (t *Transaction) ParseValue() (*big.Int, error) {
	return t.bigIntField("value", t.Value)
}

// ParseGasUsed returns the gas consumed by the transaction.
func (t *Transaction) ParseGasUsed() (*big.Int, error) {
	return t.bigIntField("gasUsed", t.GasUsed)
}

// ParseGasPrice returns the gas price in wei.
func (t *Transaction) ParseGasPrice() (*big.Int, error) {
	return t.bigIntField("gasPrice", t.GasPrice)
}

// ParseTimestamp returns the inclusion time of the transaction in UTC.
func (t *Transaction) ParseTimestamp() (time.Time, error) {
	sec, err := strconv.ParseInt(t.TimeStamp, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid integer in field timeStamp for tx %s", t.Hash)
	}
	return time.Unix(sec, 0).UTC(), nil
}

// bigIntField parses a non-negative decimal string field. An empty field is
// treated as zero, matching the explorer's habit of omitting zero values.
func (t *Transaction) bigIntField(name, raw string) (*big.Int, error) {
	if raw == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid integer in field %s for tx %s", name, t.Hash)
	}
	return v, nil
}

// ClassifiedTransaction pairs a transaction with its classification result,
// ready for list rendering and mint gating.
type ClassifiedTransaction struct {
	Hash              string     `json:"hash"`
	From              string     `json:"from"`
	To                string     `json:"to"`
	Value             string     `json:"value"`
	Timestamp         time.Time  `json:"timestamp"`
	GasUsed           string     `json:"gasUsed"`
	GasPrice          string     `json:"gasPrice"`
	ActionType        ActionType `json:"actionType"`
	Protocol          string     `json:"protocol"`
	Mintable          bool       `json:"mintable"`
	RestrictionReason string     `json:"restrictionReason,omitempty"`
}

// TransactionEvent is a lightweight notification that a new transaction
// touched one or both of the given addresses.
type TransactionEvent struct {
	Hash    string `json:"hash"`
	From    string `json:"from"`
	To      string `json:"to"`
	Network string `json:"network"`
}
