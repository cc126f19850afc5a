package entity

import (
	"fmt"
	"math/big"
	"time"
)

var weiPerEth = new(big.Float).SetFloat64(1e18)

// TruncateHex shortens a hash or address to its first 6 and last 4 characters.
func TruncateHex(s string) string {
	if len(s) <= 10 {
		return s
	}
	return s[:6] + "..." + s[len(s)-4:]
}

// FormatWei renders a wei amount as an ETH string with tiered precision.
// Conversion to the decimal display unit happens only here, at presentation
// time; accumulators keep full integer precision.
func FormatWei(wei *big.Int) string {
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEth).Float64()
	switch {
	case eth < 0.00001:
		return fmt.Sprintf("%.8f ETH", eth)
	case eth < 0.001:
		return fmt.Sprintf("%.6f ETH", eth)
	case eth < 0.1:
		return fmt.Sprintf("%.4f ETH", eth)
	default:
		return fmt.Sprintf("%.3f ETH", eth)
	}
}

// FormatGasCost renders the fee paid (gasUsed * gasPrice) as an ETH string.
func FormatGasCost(gasUsed, gasPrice *big.Int) string {
	return FormatWei(new(big.Int).Mul(gasUsed, gasPrice))
}

// FormatTimestamp renders a unix timestamp the way transaction lists show it.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("Jan 2, 2006 15:04")
}
