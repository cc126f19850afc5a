package service

import (
	"math/big"
	"strings"
	"testing"

	"base-receipts/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTransaction(t *testing.T) {
	c := NewTransactionClassifier()

	uniswapRouter := "0x4752ba5dbc23f44d87826276bf6fd6b1c372ad24"
	unknownAddr := "0x1111111111111111111111111111111111111111"

	tests := []struct {
		name     string
		to       string
		value    *big.Int
		input    string
		expected entity.ActionType
	}{
		{
			name:     "empty to is contract creation even with value and data",
			to:       "",
			value:    big.NewInt(1),
			input:    "0x38ed1739deadbeef",
			expected: entity.ActionDeploy,
		},
		{
			name:     "known protocol wins over method selector",
			to:       uniswapRouter,
			value:    big.NewInt(0),
			input:    "0xa9059cbb000000000000000000000000",
			expected: entity.ActionSwap,
		},
		{
			name:     "known protocol matches case-insensitively",
			to:       "0x" + strings.ToUpper(uniswapRouter[2:]),
			value:    big.NewInt(0),
			input:    "0x",
			expected: entity.ActionSwap,
		},
		{
			name:     "swap selector on unknown contract",
			to:       unknownAddr,
			value:    big.NewInt(0),
			input:    "0x38ed1739000000000000000000000000",
			expected: entity.ActionSwap,
		},
		{
			name:     "bridge selector on unknown contract",
			to:       unknownAddr,
			value:    big.NewInt(0),
			input:    "0x09f2b0d8000000000000000000000000",
			expected: entity.ActionBridge,
		},
		{
			name:     "mint selector on unknown contract",
			to:       unknownAddr,
			value:    big.NewInt(0),
			input:    "0x6a627842000000000000000000000000",
			expected: entity.ActionMint,
		},
		{
			name:     "transfer selector on unknown contract",
			to:       unknownAddr,
			value:    big.NewInt(0),
			input:    "0xa9059cbb000000000000000000000000",
			expected: entity.ActionSend,
		},
		{
			name:     "unrecognized selector with payload is contract interaction",
			to:       unknownAddr,
			value:    big.NewInt(0),
			input:    "0xdeadbeef000000000000000000000000",
			expected: entity.ActionContract,
		},
		{
			name:     "unrecognized bare selector with value falls through to send",
			to:       unknownAddr,
			value:    big.NewInt(100),
			input:    "0xdeadbeef",
			expected: entity.ActionSend,
		},
		{
			name:     "unrecognized bare selector without value is unknown",
			to:       unknownAddr,
			value:    big.NewInt(0),
			input:    "0xdeadbeef",
			expected: entity.ActionUnknown,
		},
		{
			name:     "positive value without data is a native send",
			to:       unknownAddr,
			value:    big.NewInt(1000000000000000000),
			input:    "0x",
			expected: entity.ActionSend,
		},
		{
			name:     "zero value without data is unknown",
			to:       unknownAddr,
			value:    big.NewInt(0),
			input:    "0x",
			expected: entity.ActionUnknown,
		},
		{
			name:     "nil value without data is unknown",
			to:       unknownAddr,
			value:    nil,
			input:    "",
			expected: entity.ActionUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.ClassifyTransaction(tt.to, tt.value, tt.input))
		})
	}
}

func TestClassifyTransactionIsDeterministic(t *testing.T) {
	c := NewTransactionClassifier()

	to := "0x2222222222222222222222222222222222222222"
	value := big.NewInt(42)
	input := "0x38ed1739000000000000000000000000"

	first := c.ClassifyTransaction(to, value, input)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.ClassifyTransaction(to, value, input))
	}
}

func TestClassifyRecordTreatsMalformedValueAsZero(t *testing.T) {
	c := NewTransactionClassifier()

	tx := &entity.Transaction{
		Hash:  "0xabc",
		To:    "0x3333333333333333333333333333333333333333",
		Value: "not-a-number",
		Input: "0x",
	}

	assert.Equal(t, entity.ActionUnknown, c.ClassifyRecord(tx))
}

func TestDetectProtocol(t *testing.T) {
	c := NewTransactionClassifier()

	tests := []struct {
		name       string
		to         string
		actionType entity.ActionType
		expected   string
	}{
		{"registry name for known contract", "0x4752ba5dbc23f44d87826276bf6fd6b1c372ad24", entity.ActionSwap, "Uniswap V3 Router"},
		{"registry lookup is case-insensitive", "0x4752BA5DBC23F44D87826276BF6FD6B1C372AD24", entity.ActionSwap, "Uniswap V3 Router"},
		{"generic swap label", "0x9999999999999999999999999999999999999999", entity.ActionSwap, "DEX Swap"},
		{"generic bridge label", "0x9999999999999999999999999999999999999999", entity.ActionBridge, "Bridge Transfer"},
		{"generic mint label", "0x9999999999999999999999999999999999999999", entity.ActionMint, "NFT Mint"},
		{"send label covers native transfers too", "0x9999999999999999999999999999999999999999", entity.ActionSend, "Token Transfer"},
		{"deployment label for empty to", "", entity.ActionDeploy, "Contract Deployment"},
		{"vote label", "0x9999999999999999999999999999999999999999", entity.ActionVote, "Governance Vote"},
		{"contract label truncates the address", "0x9999999999999999999999999999999999999999", entity.ActionContract, "Contract: 0x9999...9999"},
		{"unknown label", "0x9999999999999999999999999999999999999999", entity.ActionUnknown, "Unknown Protocol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.DetectProtocol(tt.to, tt.actionType))
		})
	}
}

func TestIsMintable(t *testing.T) {
	c := NewTransactionClassifier()

	mintable := []entity.ActionType{
		entity.ActionSwap,
		entity.ActionBridge,
		entity.ActionMint,
		entity.ActionSend,
		entity.ActionContract,
	}
	for _, at := range mintable {
		assert.True(t, c.IsMintable(at), "expected %s to be mintable", at)
	}

	restricted := []entity.ActionType{
		entity.ActionDeploy,
		entity.ActionVote,
		entity.ActionUnknown,
	}
	for _, at := range restricted {
		assert.False(t, c.IsMintable(at), "expected %s to be restricted", at)
	}
}

func TestMintRestrictionReason(t *testing.T) {
	c := NewTransactionClassifier()

	assert.Empty(t, c.MintRestrictionReason(entity.ActionSwap))
	assert.Empty(t, c.MintRestrictionReason(entity.ActionContract))

	deployReason := c.MintRestrictionReason(entity.ActionDeploy)
	voteReason := c.MintRestrictionReason(entity.ActionVote)
	unknownReason := c.MintRestrictionReason(entity.ActionUnknown)

	require.NotEmpty(t, deployReason)
	require.NotEmpty(t, voteReason)
	require.NotEmpty(t, unknownReason)

	assert.Contains(t, deployReason, "deployments")
	assert.Contains(t, voteReason, "votes")
	assert.NotEqual(t, deployReason, unknownReason)
	assert.NotEqual(t, voteReason, unknownReason)
}
