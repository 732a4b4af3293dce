package forecasting

import (
	"math"

	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

// CohortAllocation é o resultado da distribuição das conversões entre as coortes mensais
type CohortAllocation struct {
	TotalSpecs              int
	TotalConversions        int
	SpecsConvertingThisYear int
	ConversionsThisYear     int

	// Conversions[i] é quantas specs assinadas no mês i+1 convertem
	Conversions [domain.MonthsInYear]int
}

// roundConversions arredonda uma única vez, sobre o total.
// Taxas não finitas ou fora de [0, 1] resultam em 0 conversões.
func roundConversions(specs int, conversionRate float64) int {
	if math.IsNaN(conversionRate) || math.IsInf(conversionRate, 0) || conversionRate < 0 || conversionRate > 1 {
		return 0
	}
	return int(math.Round(float64(specs) * conversionRate))
}

// DistributeConversions aplica a taxa de conversão sobre as coortes mensais.
// O total de conversões do ano é arredondado globalmente e depois repartido entre
// as coortes que convertem dentro do ano fiscal com Apportion, então a soma das
// coortes é sempre igual a ConversionsThisYear.
func DistributeConversions(specs domain.MonthlySpecs, conversionRate float64) CohortAllocation {
	allocation := CohortAllocation{
		TotalSpecs: specs.Total(),
	}
	allocation.TotalConversions = roundConversions(allocation.TotalSpecs, conversionRate)

	weights := make([]int, domain.MonthsInYear)
	for month := 1; month <= domain.MonthsInYear; month++ {
		if !ConvertsWithinYear(month) {
			continue
		}
		weights[month-1] = specs.Get(month)
		allocation.SpecsConvertingThisYear += specs.Get(month)
	}

	if allocation.SpecsConvertingThisYear == 0 {
		return allocation
	}

	allocation.ConversionsThisYear = roundConversions(allocation.SpecsConvertingThisYear, conversionRate)

	for i, conversions := range Apportion(allocation.ConversionsThisYear, weights) {
		allocation.Conversions[i] = conversions
	}

	return allocation
}

// ConversionsLandingIn retorna quantas conversões começam a pagar no mês (1-12)
func (a CohortAllocation) ConversionsLandingIn(month int) int {
	signingMonth := month - SpecPeriodMonths
	if signingMonth < 1 || signingMonth > domain.MonthsInYear {
		return 0
	}
	return a.Conversions[signingMonth-1]
}
