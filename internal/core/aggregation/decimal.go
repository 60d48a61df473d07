package aggregation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StatsScale is the number of fractional digits reported in Statistics.
const StatsScale = 2

// ParseAmount parses an order amount from its wire representation.
// Plain and exponent notation are accepted ("12.3343", "1e3"); anything
// else, including surrounding whitespace, is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount must not be empty")
	}
	if strings.TrimSpace(s) != s {
		return decimal.Zero, fmt.Errorf("invalid amount %q: surrounding whitespace", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// roundStat rounds half away from zero to StatsScale digits.
func roundStat(d decimal.Decimal) decimal.Decimal {
	return d.Round(StatsScale)
}

// FormatStat renders a statistic with exactly StatsScale fractional digits.
func FormatStat(d decimal.Decimal) string {
	return d.StringFixed(StatsScale)
}
