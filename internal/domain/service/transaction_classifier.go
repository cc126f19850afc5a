package service

import (
	"math/big"
	"strings"

	"base-receipts/internal/domain/entity"
)

// ProtocolInfo describes a known contract in the protocol registry
type ProtocolInfo struct {
	Name string
	Type entity.ActionType
}

// TransactionClassifier maps transactions to semantic action types using a
// static registry of known Base contracts and a table of 4-byte method
// selectors. Both tables are built once at construction and never mutated,
// so every classification is a pure function of its inputs. The classifier
// never fails: when the data is insufficient it degrades to ActionUnknown.
type TransactionClassifier struct {
	knownProtocols   map[string]ProtocolInfo
	methodSignatures map[string]entity.ActionType
	mintableTypes    map[entity.ActionType]bool
}

// NewTransactionClassifier creates a classifier with the known-protocol and
// method-signature registries for Base
func NewTransactionClassifier() *TransactionClassifier {
	c := &TransactionClassifier{
		knownProtocols:   make(map[string]ProtocolInfo),
		methodSignatures: make(map[string]entity.ActionType),
		mintableTypes:    make(map[entity.ActionType]bool),
	}

	c.initializeKnownProtocols()
	c.initializeMethodSignatures()
	c.initializeMintableTypes()

	return c
}

// ClassifyTransaction decides the action type for a transaction. Order
// matters: contract creation first, then the protocol registry (which wins
// over selector sniffing), then the selector table, then the generic
// contract/send/unknown fallbacks. An empty `to` means contract creation.
func (c *TransactionClassifier) ClassifyTransaction(to string, value *big.Int, input string) entity.ActionType {
	if to == "" {
		return entity.ActionDeploy
	}

	if protocol, ok := c.knownProtocols[strings.ToLower(to)]; ok {
		return protocol.Type
	}

	// First 4 bytes of call-data identify the invoked function
	if len(input) >= 10 {
		if actionType, ok := c.methodSignatures[strings.ToLower(input[:10])]; ok {
			return actionType
		}
	}

	// Call-data beyond the selector that we don't recognize
	if len(input) > 10 {
		return entity.ActionContract
	}

	if value != nil && value.Sign() > 0 {
		return entity.ActionSend
	}

	return entity.ActionUnknown
}

// ClassifyRecord classifies a raw explorer record. A malformed value field is
// treated as zero rather than surfaced; the classifier never fails.
func (c *TransactionClassifier) ClassifyRecord(tx *entity.Transaction) entity.ActionType {
	value, err := tx.ParseValue()
	if err != nil {
		value = new(big.Int)
	}
	return c.ClassifyTransaction(tx.To, value, tx.Input)
}

// DetectProtocol returns the display label for a classified transaction.
// Known contracts use their registry name; everything else falls back to a
// generic label per action type.
func (c *TransactionClassifier) DetectProtocol(to string, actionType entity.ActionType) string {
	if to == "" {
		return "Contract Deployment"
	}

	if protocol, ok := c.knownProtocols[strings.ToLower(to)]; ok {
		return protocol.Name
	}

	switch actionType {
	case entity.ActionSwap:
		return "DEX Swap"
	case entity.ActionBridge:
		return "Bridge Transfer"
	case entity.ActionMint:
		return "NFT Mint"
	case entity.ActionSend:
		// Reused for native transfers reached via the value fallback as well
		return "Token Transfer"
	case entity.ActionDeploy:
		return "Contract Deployment"
	case entity.ActionVote:
		return "Governance Vote"
	case entity.ActionContract:
		return "Contract: " + entity.TruncateHex(to)
	default:
		return "Unknown Protocol"
	}
}

// IsMintable reports whether the action type can be minted as a receipt
func (c *TransactionClassifier) IsMintable(actionType entity.ActionType) bool {
	return c.mintableTypes[actionType]
}

// MintRestrictionReason explains why an action type cannot be minted.
// Returns the empty string for mintable types.
func (c *TransactionClassifier) MintRestrictionReason(actionType entity.ActionType) string {
	if c.mintableTypes[actionType] {
		return ""
	}

	switch actionType {
	case entity.ActionDeploy:
		return "Contract deployments are not supported for receipt minting."
	case entity.ActionVote:
		return "Governance votes are not supported for receipt minting."
	default:
		return "This transaction type is not recognized. Only swaps, bridges, token transfers, NFT mints, and contract interactions can be minted."
	}
}

// initializeKnownProtocols sets up the known contract registry for Base.
// Keys are lowercase hex addresses; a registry hit decides the action type
// regardless of call-data or value.
func (c *TransactionClassifier) initializeKnownProtocols() {
	c.knownProtocols = map[string]ProtocolInfo{
		// DEX routers
		"0x4752ba5dbc23f44d87826276bf6fd6b1c372ad24": {Name: "Uniswap V3 Router", Type: entity.ActionSwap},
		"0x2626664c2603336e57b271c5c0b26f421741e481": {Name: "Uniswap V3 Router 2", Type: entity.ActionSwap},
		"0xcf77a3ba9a5ca399b7c97c74d54e5b1beb874e43": {Name: "Aerodrome Router", Type: entity.ActionSwap},
		"0x6cb442acf35158d5eda88fe602221b67b400be3e": {Name: "Aerodrome V2 Router", Type: entity.ActionSwap},
		"0x327df1e6de05895d2ab08513aadd9313fe505d86": {Name: "BaseSwap Router", Type: entity.ActionSwap},
		"0x8909dc15e40173ff4699343b6eb8132c65e18ec6": {Name: "SwapBased Router", Type: entity.ActionSwap},

		// Bridges
		"0x49048044d57e1c92a77f79988d21fa8faf74e97e": {Name: "Base Bridge", Type: entity.ActionBridge},
		"0x4200000000000000000000000000000000000010": {Name: "Base L2 Bridge", Type: entity.ActionBridge},
		"0x45f1a95a4d3f3836523f5c83673c797f4d4d263b": {Name: "Stargate Bridge", Type: entity.ActionBridge},
		"0x50b6ebc2103bfec165949cc946d739d5650d7ae4": {Name: "Across Bridge", Type: entity.ActionBridge},

		// NFT marketplaces and minters
		"0x00000000000000adc04c56bf30ac9d3c0aaf14dc": {Name: "Seaport (OpenSea)", Type: entity.ActionMint},
		"0x00000000006c3852cbef3e08e8df289169ede581": {Name: "Seaport 1.1", Type: entity.ActionMint},
		"0x0000000000000068f116a894984e2db1123eb395": {Name: "Seaport 1.4", Type: entity.ActionMint},
		"0x1e0049783f008a0085193e00003d00cd54003c71": {Name: "Zora Minter", Type: entity.ActionMint},
		"0x04e2516a2c207e84a1839755675dfd8ef6302f0a": {Name: "Zora ERC721", Type: entity.ActionMint},

		// Token contracts (transfers/approvals)
		"0x833589fcd6edb6e08f4c7c32d4f71b54bda02913": {Name: "USDC", Type: entity.ActionSend},
		"0x4200000000000000000000000000000000000006": {Name: "WETH", Type: entity.ActionSend},
		"0x50c5725949a6f0c72e6c4a641f24049a917db0cb": {Name: "DAI", Type: entity.ActionSend},
		"0xd9aaec86b65d86f6a7b5b1b0c42ffa531710b6ca": {Name: "USDbC", Type: entity.ActionSend},
		"0x940181a94a35a4569e4529a3cdfb74e38fd98631": {Name: "AERO", Type: entity.ActionSend},
		"0x532f27101965dd16442e59d40670faf5ebb142e4": {Name: "BRETT", Type: entity.ActionSend},
	}
}

// initializeMethodSignatures sets up the 4-byte selector table consulted when
// the destination is not in the protocol registry
func (c *TransactionClassifier) initializeMethodSignatures() {
	c.methodSignatures = map[string]entity.ActionType{
		// Swaps
		"0x38ed1739": entity.ActionSwap, // swapExactTokensForTokens
		"0x8803dbee": entity.ActionSwap, // swapTokensForExactTokens
		"0x7ff36ab5": entity.ActionSwap, // swapExactETHForTokens
		"0x18cbafe5": entity.ActionSwap, // swapExactTokensForETH
		"0x5c11d795": entity.ActionSwap, // swapExactTokensForTokensSupportingFeeOnTransferTokens
		"0x791ac947": entity.ActionSwap, // swapExactTokensForETHSupportingFeeOnTransferTokens
		"0xc04b8d59": entity.ActionSwap, // exactInput (Uniswap V3)
		"0x5ae401dc": entity.ActionSwap, // multicall (often used for swaps)
		"0x414bf389": entity.ActionSwap, // exactInputSingle (Uniswap V3)

		// Bridges
		"0x09f2b0d8": entity.ActionBridge, // depositETH
		"0x8f601f66": entity.ActionBridge, // depositERC20
		"0x32b7006d": entity.ActionBridge, // bridgeETH
		"0x58a997f6": entity.ActionBridge, // relay

		// NFT mints
		"0x6a627842": entity.ActionMint, // mint
		"0xa0712d68": entity.ActionMint, // mint(uint256)
		"0x40c10f19": entity.ActionMint, // mint(address,uint256)
		"0x84bb1e42": entity.ActionMint, // mintTo
		"0x1249c58b": entity.ActionMint, // mintWithRewards
		"0x6871ee40": entity.ActionMint, // purchase

		// Token transfers/approvals
		"0xa9059cbb": entity.ActionSend, // transfer
		"0x23b872dd": entity.ActionSend, // transferFrom
		"0x095ea7b3": entity.ActionSend, // approve
	}
}

// initializeMintableTypes sets up the allow-list of action types that can be
// minted as receipts
func (c *TransactionClassifier) initializeMintableTypes() {
	c.mintableTypes = map[entity.ActionType]bool{
		entity.ActionSwap:     true,
		entity.ActionBridge:   true,
		entity.ActionMint:     true,
		entity.ActionSend:     true,
		entity.ActionContract: true,
	}
}
