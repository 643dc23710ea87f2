package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CentTolerance is the largest charge-sum divergence treated as
// floating-point noise rather than data corruption: one cent.
var CentTolerance = decimal.New(1, -2)

// Amount converts a float64 dollar amount from a Parquet column into a
// decimal rounded to cent precision.
func Amount(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// OptAmount converts a nullable float64 dollar amount, defaulting to zero.
func OptAmount(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return Amount(*v)
}

// ParseAmount parses a numeric string (as returned by Postgres numeric::text)
// into a cent-precision decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d.Round(2), nil
}

// WithinCentTolerance reports whether two amounts differ by at most one cent.
func WithinCentTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(CentTolerance)
}
