package types

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MessagePremium is the constraint message for malformed premiums.
const MessagePremium = "Premiums should be non-negative numbers"

// Premium is a contract's premium in cents. Values with more than two
// decimal places are rounded up to the next cent.
type Premium int64

// ParsePremium parses a non-negative decimal string such as "10.10" or
// "1.5e2". Parsing is exact, so "10.10" stays 1010 cents.
func ParsePremium(s string) (Premium, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fieldError(FieldPremium, MessagePremium)
	}
	return fromDecimal(d)
}

// NewPremium converts a float amount, rounding up to the next cent.
func NewPremium(amount float64) (Premium, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fieldError(FieldPremium, MessagePremium)
	}
	return fromDecimal(decimal.NewFromFloat(amount))
}

func fromDecimal(d decimal.Decimal) (Premium, error) {
	if d.IsNegative() {
		return 0, fieldError(FieldPremium, MessagePremium)
	}
	cents := d.RoundCeil(2).Shift(2).BigInt()
	if !cents.IsInt64() {
		return 0, fieldError(FieldPremium, MessagePremium)
	}
	return Premium(cents.Int64()), nil
}

// Cents returns the premium in cents.
func (p Premium) Cents() int64 { return int64(p) }

// Float returns the premium in currency units.
func (p Premium) Float() float64 { return float64(p) / 100 }

// String formats the premium with exactly two decimals.
func (p Premium) String() string {
	return decimal.New(int64(p), -2).StringFixed(2)
}
