package wallet

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

const etherDecimals = 18

// FormatEther renders a wei amount in ether with four fractional digits,
// e.g. 1230000000000000000 -> "1.2300".
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return decimal.Zero.StringFixed(4)
	}
	return decimal.NewFromBigInt(wei, -etherDecimals).StringFixed(4)
}

// ParseEther converts a decimal ether amount such as "1.23" to wei.
// Digits below one wei are truncated.
func ParseEther(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("parse ether %q: %w", s, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("parse ether %q: negative amount", s)
	}
	return d.Shift(etherDecimals).BigInt(), nil
}
