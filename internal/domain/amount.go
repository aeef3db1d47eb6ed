package domain

import (
	"github.com/govalues/decimal"
)

// AmountEpsilon is one minor currency unit. Sub-cent drift in the echoed amount
// is absorbed; a difference of a full cent or more is a mismatch.
var AmountEpsilon = decimal.MustParse("0.01")

// AmountsEqual reports whether |expected - reported| < AmountEpsilon.
func AmountsEqual(expected, reported decimal.Decimal) bool {
	diff, err := expected.Sub(reported)
	if err != nil {
		// overflow: the values are nowhere near each other
		return false
	}
	return diff.Abs().Cmp(AmountEpsilon) < 0
}

// Money is an amount in minor units with its ISO currency code.
type Money struct {
	Cents    int64
	Currency string
}

// Decimal returns the amount in major units, e.g. 4999 -> 49.99.
func (m Money) Decimal() decimal.Decimal {
	d, err := decimal.New(m.Cents, 2)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// String formats the amount with two decimals, the way the gateway expects it.
func (m Money) String() string {
	return m.Decimal().String()
}
