package exporter

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// PercentagePlaces is the number of decimals kept in exported percentages
const PercentagePlaces = 2

// roundPercentage rounds f half away from zero on its shortest decimal
// representation, so 2.675 becomes 2.68 rather than the 2.67 of %.2f
func roundPercentage(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(PercentagePlaces)
}

// formatPercentage formats a percentage for CSV output with exactly 2 decimal places
func formatPercentage(f float64) string {
	return roundPercentage(f).StringFixed(PercentagePlaces)
}

// formatInt formats a count for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}
