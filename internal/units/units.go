package units

import (
	"math/big"
	"strings"
)

// Common scales for EVM amounts.
const (
	WeiDecimals  = 18
	GweiDecimals = 9
)

var ten = big.NewInt(10)

// FormatScaled renders an integer amount with the given number of decimals as
// an exact decimal string followed by the unit suffix. All arithmetic is
// big.Int; wei-level precision survives at ETH scale. Trailing zeros are
// stripped from the fraction and a zero value always renders as "0 <unit>".
func FormatScaled(value *big.Int, decimals int, unit string) string {
	if value == nil || value.Sign() == 0 {
		return "0 " + unit
	}

	scale := new(big.Int).Exp(ten, big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(value, scale, new(big.Int))

	if frac.Sign() == 0 {
		return whole.String() + " " + unit
	}

	digits := frac.String()
	if len(digits) < decimals {
		digits = strings.Repeat("0", decimals-len(digits)) + digits
	}
	digits = strings.TrimRight(digits, "0")

	return whole.String() + "." + digits + " " + unit
}

// FormatWei renders a wei amount in ETH.
func FormatWei(wei *big.Int) string {
	return FormatScaled(wei, WeiDecimals, "ETH")
}

// FormatGwei renders a wei amount in Gwei.
func FormatGwei(wei *big.Int) string {
	return FormatScaled(wei, GweiDecimals, "Gwei")
}
