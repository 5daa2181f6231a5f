package renderer

import (
	"fmt"
	"math"

	"github.com/leekchan/accounting"
)

// undefined is how NaN metrics (no solvable IRR) show up in reports.
const undefined = "n/a"

// Ratio formats a wealth multiple like "1.20x".
func Ratio(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return undefined
	}
	return fmt.Sprintf("%.2fx", v)
}

// Rate formats an annualized rate like "+11.57%".
func Rate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return undefined
	}
	return fmt.Sprintf("%+.2f%%", 100*v)
}

// Level formats a benchmark index level with thousands grouping.
func Level(v float64) string {
	return accounting.FormatNumberFloat64(v, 2, ",", ".")
}
