package currency

import (
	"github.com/shopspring/decimal"
)

// symbols maps ISO 4217 currency codes to their display symbol.
// Currencies where the symbol precedes the amount render as "₹12.50",
// the rest as "12.50 TMT".
var symbols = map[string]struct {
	symbol string
	prefix bool
}{
	"USD": {"$", true},
	"EUR": {"€", true},
	"GBP": {"£", true},
	"JPY": {"¥", true},
	"INR": {"₹", true},
	"AED": {"د.إ", false},
	"NPR": {"रू", true},
	"LKR": {"Rs", true},
	"PKR": {"₨", true},
	"BDT": {"৳", true},
	"TMT": {"TMT", false},
}

// Symbol returns the display symbol for a currency code, or the code itself
func Symbol(code string) string {
	if info, ok := symbols[code]; ok {
		return info.symbol
	}
	return code
}

// FormatAmount returns a human-readable amount with the currency symbol.
//
//	FormatAmount(15.5, "INR")  → "₹15.50"
//	FormatAmount(150, "TMT")   → "150.00 TMT"
//	FormatAmount(150, "XYZ")   → "150.00 XYZ"
func FormatAmount(amount decimal.Decimal, code string) string {
	value := amount.StringFixed(2)
	info, ok := symbols[code]
	if !ok {
		return value + " " + code
	}
	if info.prefix {
		if amount.IsNegative() {
			return "-" + info.symbol + amount.Abs().StringFixed(2)
		}
		return info.symbol + value
	}
	return value + " " + info.symbol
}
