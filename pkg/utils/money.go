package utils

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const brazilianFormat = "#.###,##"

// FormatBRL formata o valor no padrão brasileiro: R$ 1.234,56
func FormatBRL(value decimal.Decimal) string {
	v := value.Round(2).InexactFloat64()
	if v < 0 {
		return "-R$ " + humanize.FormatFloat(brazilianFormat, -v)
	}
	return "R$ " + humanize.FormatFloat(brazilianFormat, v)
}

func FormatPercent(value float64) string {
	return humanize.FormatFloat(brazilianFormat, RoundWithTwoDecimalPlace(value)) + "%"
}
