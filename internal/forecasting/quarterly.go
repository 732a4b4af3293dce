package forecasting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

const monthsPerQuarter = 3

// QuarterOf retorna o trimestre (1-4) de um mês (1-12)
func QuarterOf(month int) int {
	return (month-1)/monthsPerQuarter + 1
}

// AggregateQuarters agrupa os 12 meses em trimestres e em trimestres acumulados
func AggregateQuarters(monthly MonthlyRevenue) (quarterly, cumulative domain.QuarterlyRevenue) {
	var sums [4]decimal.Decimal
	for i := range sums {
		sums[i] = decimal.Zero
	}

	for month := 1; month <= domain.MonthsInYear; month++ {
		q := QuarterOf(month) - 1
		sums[q] = sums[q].Add(monthly.Month(month))
	}

	quarterly = domain.QuarterlyRevenue{Q1: sums[0], Q2: sums[1], Q3: sums[2], Q4: sums[3]}

	running := decimal.Zero
	var acc [4]decimal.Decimal
	for i, sum := range sums {
		running = running.Add(sum)
		acc[i] = running
	}

	cumulative = domain.QuarterlyRevenue{Q1: acc[0], Q2: acc[1], Q3: acc[2], Q4: acc[3]}

	return quarterly, cumulative
}
