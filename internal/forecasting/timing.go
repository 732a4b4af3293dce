// Package forecasting contém o motor de forecast de receita: funções puras sobre
// tipos imutáveis, sem relógio, sem estado global e sem I/O.
package forecasting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

const (
	// SpecPeriodMonths é o período de spec entre a assinatura e a conversão, sem pagamento
	SpecPeriodMonths = 2

	// CatchUpMultiplier cobre os dois meses de spec mais o mês da conversão
	CatchUpMultiplier = SpecPeriodMonths + 1
)

// MonthlyRevenue guarda um valor por mês do ano fiscal (índice 0 = janeiro)
type MonthlyRevenue [domain.MonthsInYear]decimal.Decimal

func newMonthlyRevenue() MonthlyRevenue {
	var revenue MonthlyRevenue
	for i := range revenue {
		revenue[i] = decimal.Zero
	}
	return revenue
}

// Month retorna o valor do mês (1-12)
func (r MonthlyRevenue) Month(month int) decimal.Decimal {
	if month < 1 || month > domain.MonthsInYear {
		return decimal.Zero
	}
	return r[month-1]
}

func (r MonthlyRevenue) Total() decimal.Decimal {
	total := decimal.Zero
	for _, value := range r {
		total = total.Add(value)
	}
	return total
}

// ConversionMonth é o mês em que um deal assinado em signingMonth começa a pagar.
// Pode passar de 12: nesse caso a conversão cai no próximo ano fiscal.
func ConversionMonth(signingMonth int) int {
	return signingMonth + SpecPeriodMonths
}

// ConvertsWithinYear indica se a conversão cai dentro do ano fiscal modelado
func ConvertsWithinYear(signingMonth int) bool {
	return signingMonth >= 1 && ConversionMonth(signingMonth) <= domain.MonthsInYear
}

// DealRevenueSchedule retorna a receita mês a mês de UM cliente convertido que assinou
// a spec em signingMonth: 3x o fee no mês da conversão e 1x o fee em cada mês seguinte.
func DealRevenueSchedule(signingMonth int, monthlyFee decimal.Decimal) MonthlyRevenue {
	catchUp, recurring := dealPayments(signingMonth, monthlyFee)

	schedule := newMonthlyRevenue()
	for i := range schedule {
		schedule[i] = catchUp[i].Add(recurring[i])
	}
	return schedule
}

// dealPayments separa o pagamento de catch-up dos pagamentos recorrentes
func dealPayments(signingMonth int, monthlyFee decimal.Decimal) (catchUp, recurring MonthlyRevenue) {
	catchUp = newMonthlyRevenue()
	recurring = newMonthlyRevenue()

	if !ConvertsWithinYear(signingMonth) {
		return catchUp, recurring
	}

	conversion := ConversionMonth(signingMonth)
	catchUp[conversion-1] = monthlyFee.Mul(decimal.NewFromInt(CatchUpMultiplier))

	for month := conversion + 1; month <= domain.MonthsInYear; month++ {
		recurring[month-1] = monthlyFee
	}

	return catchUp, recurring
}
