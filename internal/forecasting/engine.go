package forecasting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

var monthsInYear = decimal.NewFromInt(domain.MonthsInYear)

// CalculateForecast transforma um cenário de entrada em sua projeção completa.
//
// BookedRevenue é o valor anual de contrato de TODAS as conversões, independente de
// quando o caixa entra; AnnualRevenue é apenas o caixa reconhecido dentro do ano.
// Specs assinadas em novembro e dezembro geram booking mas nenhum caixa no ano.
//
// Não valida os inputs: quem chama deve usar ScenarioInputs.Validate antes.
func CalculateForecast(inputs domain.ScenarioInputs) domain.ScenarioOutputs {
	allocation := DistributeConversions(inputs.SpecsPerMonth, inputs.ConversionRate)
	monthly := AccumulateMonthlyRevenue(allocation, inputs.AvgMonthlyFee)
	quarterly, cumulative := AggregateQuarters(monthly)

	avgACV := inputs.AvgMonthlyFee.Mul(monthsInYear)

	return domain.ScenarioOutputs{
		QuarterlyRevenue:  quarterly,
		CumulativeRevenue: cumulative,
		AnnualRevenue:     cumulative.Q4,
		BookedRevenue:     avgACV.Mul(decimal.NewFromInt(int64(allocation.TotalConversions))),
		TotalSpecs:        allocation.TotalSpecs,
		TotalConversions:  allocation.TotalConversions,
		BookedConversions: allocation.ConversionsThisYear,
		AvgACV:            avgACV,
	}
}

// CalculateMonthlyBreakdown detalha o forecast mês a mês. Usa a mesma distribuição de
// coortes de CalculateForecast, então a receita acumulada de dezembro é igual a AnnualRevenue.
func CalculateMonthlyBreakdown(inputs domain.ScenarioInputs) []domain.MonthBreakdown {
	allocation := DistributeConversions(inputs.SpecsPerMonth, inputs.ConversionRate)
	components := AccumulateRevenueComponents(allocation, inputs.AvgMonthlyFee)

	breakdown := make([]domain.MonthBreakdown, 0, domain.MonthsInYear)
	cumulative := decimal.Zero
	activeClients := 0

	for month := 1; month <= domain.MonthsInYear; month++ {
		conversions := allocation.ConversionsLandingIn(month)
		activeClients += conversions

		catchUp := components.CatchUp.Month(month)
		recurring := components.Recurring.Month(month)
		total := catchUp.Add(recurring)
		cumulative = cumulative.Add(total)

		breakdown = append(breakdown, domain.MonthBreakdown{
			Month:             month,
			Key:               domain.MonthKeys[month-1],
			SpecsSigned:       inputs.SpecsPerMonth.Get(month),
			Conversions:       conversions,
			ActiveClients:     activeClients,
			CatchUpRevenue:    catchUp,
			RecurringRevenue:  recurring,
			TotalRevenue:      total,
			CumulativeRevenue: cumulative,
		})
	}

	return breakdown
}
