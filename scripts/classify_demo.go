package main

import (
	"fmt"
	"math/big"

	"base-receipts/internal/domain/entity"
	"base-receipts/internal/domain/service"
)

func main() {
	classifier := service.NewTransactionClassifier()

	fmt.Println("Transaction Classification Demo")
	fmt.Println("===============================")

	scenarios := []struct {
		name  string
		to    string
		value *big.Int
		input string
	}{
		{
			name:  "Uniswap V3 swap",
			to:    "0x2626664c2603336e57b271c5c0b26f421741e481",
			value: big.NewInt(0),
			input: "0x414bf389000000000000000000000000",
		},
		{
			name:  "ERC20 transfer on unknown token",
			to:    "0x1234567890abcdef1234567890abcdef12345678",
			value: big.NewInt(0),
			input: "0xa9059cbb000000000000000000000000",
		},
		{
			name:  "Native send",
			to:    "0x1234567890abcdef1234567890abcdef12345678",
			value: big.NewInt(1500000000000000000),
			input: "0x",
		},
		{
			name:  "Bridge deposit",
			to:    "0x49048044d57e1c92a77f79988d21fa8faf74e97e",
			value: big.NewInt(500000000000000000),
			input: "0x",
		},
		{
			name:  "Contract deployment",
			to:    "",
			value: big.NewInt(0),
			input: "0x60806040",
		},
		{
			name:  "Unknown contract call",
			to:    "0x1234567890abcdef1234567890abcdef12345678",
			value: big.NewInt(0),
			input: "0xdeadbeef000000000000000000000000",
		},
	}

	for _, s := range scenarios {
		actionType := classifier.ClassifyTransaction(s.to, s.value, s.input)
		protocol := classifier.DetectProtocol(s.to, actionType)
		mintable := classifier.IsMintable(actionType)

		fmt.Printf("\n%s\n", s.name)
		fmt.Printf("  action:   %s\n", actionType)
		fmt.Printf("  protocol: %s\n", protocol)
		fmt.Printf("  mintable: %v\n", mintable)
		if !mintable {
			fmt.Printf("  reason:   %s\n", classifier.MintRestrictionReason(actionType))
		}
		if s.value.Sign() > 0 {
			fmt.Printf("  value:    %s\n", entity.FormatWei(s.value))
		}
	}
}
