// Package money holds the decimal helpers used for every monetary value.
// Amounts are kept at two decimal places (cents).
package money

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
)

const Places int32 = 2

var (
	ErrMalformed = errors.New("money: malformed amount")
	ErrPrecision = errors.New("money: more than two decimal places")

	plain = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

var (
	Zero = decimal.Zero
	// Cent is the rounding tolerance accepted on payment amounts.
	Cent    = decimal.New(1, -Places)
	hundred = decimal.NewFromInt(100)
)

func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns base × pct / 100 rounded to cents.
func Percent(base, pct decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(pct).Div(hundred))
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Floor percentage of part over whole, 0 when whole is not positive.
func FloorPercent(part, whole decimal.Decimal) int64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Mul(hundred).Div(whole).Floor().IntPart()
}

// Ptr returns a pointer to d, handy for nullable columns.
func Ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// Format renders d with exactly two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Parse reads a plain decimal amount as entered, without rounding.
// Signs, exponents and fractions finer than a cent are rejected.
func Parse(raw string) (decimal.Decimal, error) {
	if !plain.MatchString(raw) {
		return decimal.Zero, ErrMalformed
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrMalformed
	}
	if !d.Equal(Round(d)) {
		return decimal.Zero, ErrPrecision
	}
	return d, nil
}
