package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// FormatCurrency formata valores monetários de forma compacta:
// $1.2M acima de um milhão, $950K acima de mil e $950 abaixo disso.
func FormatCurrency(value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}

	// o arredondamento acontece antes da escolha da faixa: 999.600 vira $1.0M e não $1000K
	thousands := value.Div(thousand).Round(0)

	switch {
	case thousands.Mul(thousand).GreaterThanOrEqual(million):
		return fmt.Sprintf("%s$%sM", sign, value.Div(million).StringFixed(1))
	case value.GreaterThanOrEqual(thousand):
		return fmt.Sprintf("%s$%sK", sign, thousands.String())
	default:
		return fmt.Sprintf("%s$%s", sign, humanize.Comma(value.Round(0).IntPart()))
	}
}

// FormatCurrencyFull formata com separador de milhar e duas casas, ex: $1,234,567.89
func FormatCurrencyFull(value decimal.Decimal) string {
	f, _ := value.Round(2).Float64()
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// FormatPercentage formata uma fração (0.25) como percentual (25.0%)
func FormatPercentage(fraction decimal.Decimal) string {
	return fraction.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}
