package forecasting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

// RevenueComponents separa a receita mensal em catch-up e recorrente
type RevenueComponents struct {
	CatchUp   MonthlyRevenue
	Recurring MonthlyRevenue
}

// Total soma catch-up e recorrente mês a mês
func (c RevenueComponents) Total() MonthlyRevenue {
	total := newMonthlyRevenue()
	for i := range total {
		total[i] = c.CatchUp[i].Add(c.Recurring[i])
	}
	return total
}

// AccumulateRevenueComponents soma a contribuição de cada coorte, calculada de forma
// independente pelo modelo de timing e multiplicada pelo número de conversões.
func AccumulateRevenueComponents(allocation CohortAllocation, monthlyFee decimal.Decimal) RevenueComponents {
	components := RevenueComponents{
		CatchUp:   newMonthlyRevenue(),
		Recurring: newMonthlyRevenue(),
	}

	for signingMonth := 1; signingMonth <= domain.MonthsInYear; signingMonth++ {
		conversions := allocation.Conversions[signingMonth-1]
		if conversions == 0 {
			continue
		}

		clients := decimal.NewFromInt(int64(conversions))
		catchUp, recurring := dealPayments(signingMonth, monthlyFee)

		for i := 0; i < domain.MonthsInYear; i++ {
			components.CatchUp[i] = components.CatchUp[i].Add(catchUp[i].Mul(clients))
			components.Recurring[i] = components.Recurring[i].Add(recurring[i].Mul(clients))
		}
	}

	return components
}

// AccumulateMonthlyRevenue retorna a receita total de caixa de cada mês
func AccumulateMonthlyRevenue(allocation CohortAllocation, monthlyFee decimal.Decimal) MonthlyRevenue {
	return AccumulateRevenueComponents(allocation, monthlyFee).Total()
}
