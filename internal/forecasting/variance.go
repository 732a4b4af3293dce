package forecasting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

// CalculateVariance compara realizado com meta. Meta zero resulta em percentual zero.
func CalculateVariance(actual, target decimal.Decimal) domain.Variance {
	amount := actual.Sub(target)

	percentage := decimal.Zero
	if !target.IsZero() {
		percentage = amount.Div(target)
	}

	return domain.Variance{
		Actual:     actual,
		Target:     target,
		Amount:     amount,
		Percentage: percentage,
		IsPositive: !amount.IsNegative(),
	}
}

// CompareOutputs calcula a variação de um cenário contra um cenário base
func CompareOutputs(base, other domain.ScenarioOutputs) (quarterly []domain.Variance, annual, booked domain.Variance) {
	quarterly = make([]domain.Variance, 0, 4)
	for q := 1; q <= 4; q++ {
		quarterly = append(quarterly, CalculateVariance(other.QuarterlyRevenue.Quarter(q), base.QuarterlyRevenue.Quarter(q)))
	}

	annual = CalculateVariance(other.AnnualRevenue, base.AnnualRevenue)
	booked = CalculateVariance(other.BookedRevenue, base.BookedRevenue)

	return quarterly, annual, booked
}
