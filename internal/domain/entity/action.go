package entity

// ActionType represents the semantic purpose of a transaction
type ActionType string

const (
	ActionSwap     ActionType = "swap"     // DEX trade
	ActionMint     ActionType = "mint"     // NFT mint or marketplace purchase
	ActionSend     ActionType = "send"     // token or native value transfer
	ActionDeploy   ActionType = "deploy"   // contract creation
	ActionVote     ActionType = "vote"     // governance vote
	ActionBridge   ActionType = "bridge"   // cross-chain/layer transfer
	ActionContract ActionType = "contract" // unrecognized contract interaction
	ActionUnknown  ActionType = "unknown"  // no data, no value, unrecognized
)
