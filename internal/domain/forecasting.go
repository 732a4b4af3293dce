package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MonthsInYear é o número de meses do ano fiscal modelado
const MonthsInYear = 12

// MonthKeys são as chaves usadas na serialização de MonthlySpecs, na ordem do calendário
var MonthKeys = [MonthsInYear]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

var (
	ErrNegativeSpecs          = errors.New("quantidade de specs não pode ser negativa")
	ErrInvalidConversionRate  = errors.New("taxa de conversão deve estar entre 0 e 1")
	ErrInvalidMonthlyFee      = errors.New("fee mensal médio deve ser positivo")
	ErrMissingMonth           = errors.New("mês ausente em specsPerMonth")
	ErrUnknownMonth           = errors.New("mês desconhecido em specsPerMonth")
	ErrInvalidScenarioType    = errors.New("tipo de cenário inválido")
	ErrInvalidYear            = errors.New("ano inválido")
	ErrMissingScenarioName    = errors.New("nome do cenário é obrigatório")
	ErrInvalidMonthForActuals = errors.New("mês deve estar entre 1 e 12")
)

// MonthlySpecs guarda a quantidade de specs assinadas em cada mês do ano fiscal.
// O índice 0 corresponde a janeiro.
type MonthlySpecs [MonthsInYear]int

// Get retorna a quantidade de specs do mês (1-12). Meses fora do intervalo retornam 0.
func (m MonthlySpecs) Get(month int) int {
	if month < 1 || month > MonthsInYear {
		return 0
	}
	return m[month-1]
}

// Total soma as specs de todos os meses
func (m MonthlySpecs) Total() int {
	total := 0
	for _, specs := range m {
		total += specs
	}
	return total
}

func (m MonthlySpecs) Validate() error {
	for i, specs := range m {
		if specs < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeSpecs, MonthKeys[i], specs)
		}
	}
	return nil
}

// ToMap converte para o formato chaveado por mês (jan..dec)
func (m MonthlySpecs) ToMap() map[string]int {
	out := make(map[string]int, MonthsInYear)
	for i, key := range MonthKeys {
		out[key] = m[i]
	}
	return out
}

// MonthlySpecsFromMap exige as 12 chaves e rejeita chaves desconhecidas
func MonthlySpecsFromMap(in map[string]int) (MonthlySpecs, error) {
	var specs MonthlySpecs

	known := make(map[string]struct{}, MonthsInYear)
	for i, key := range MonthKeys {
		known[key] = struct{}{}

		value, ok := in[key]
		if !ok {
			return specs, fmt.Errorf("%w: %s", ErrMissingMonth, key)
		}
		specs[i] = value
	}

	for key := range in {
		if _, ok := known[key]; !ok {
			return specs, fmt.Errorf("%w: %s", ErrUnknownMonth, key)
		}
	}

	return specs, nil
}

// IsMonthKeyError indica falha de chave em specsPerMonth (mês ausente ou desconhecido).
// O decoder do jsoniter achata o erro de UnmarshalJSON em texto, então a mensagem
// também é verificada.
func IsMonthKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingMonth) || errors.Is(err, ErrUnknownMonth) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, ErrMissingMonth.Error()) || strings.Contains(msg, ErrUnknownMonth.Error())
}

func (m MonthlySpecs) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}

func (m *MonthlySpecs) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	specs, err := MonthlySpecsFromMap(raw)
	if err != nil {
		return err
	}

	*m = specs
	return nil
}

// ScenarioInputs é uma hipótese de plano a ser avaliada pelo motor de forecast
type ScenarioInputs struct {
	SpecsPerMonth  MonthlySpecs    `json:"specsPerMonth"`
	ConversionRate float64         `json:"conversionRate"`
	AvgMonthlyFee  decimal.Decimal `json:"avgMonthlyFee"`
}

// Validate é responsabilidade de quem chama o motor; o motor em si não valida nada
func (in ScenarioInputs) Validate() error {
	if err := in.SpecsPerMonth.Validate(); err != nil {
		return err
	}

	if in.ConversionRate < 0 || in.ConversionRate > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidConversionRate, in.ConversionRate)
	}

	if !in.AvgMonthlyFee.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidMonthlyFee, in.AvgMonthlyFee.String())
	}

	return nil
}

// QuarterlyRevenue agrupa valores por trimestre
type QuarterlyRevenue struct {
	Q1 decimal.Decimal `json:"q1"`
	Q2 decimal.Decimal `json:"q2"`
	Q3 decimal.Decimal `json:"q3"`
	Q4 decimal.Decimal `json:"q4"`
}

// Quarter retorna o valor do trimestre n (1-4)
func (q QuarterlyRevenue) Quarter(n int) decimal.Decimal {
	switch n {
	case 1:
		return q.Q1
	case 2:
		return q.Q2
	case 3:
		return q.Q3
	case 4:
		return q.Q4
	}
	return decimal.Zero
}

func (q QuarterlyRevenue) Equal(other QuarterlyRevenue) bool {
	return q.Q1.Equal(other.Q1) && q.Q2.Equal(other.Q2) && q.Q3.Equal(other.Q3) && q.Q4.Equal(other.Q4)
}

// ScenarioOutputs é sempre derivado de ScenarioInputs, nunca editado diretamente
type ScenarioOutputs struct {
	QuarterlyRevenue  QuarterlyRevenue `json:"quarterlyRevenue"`
	CumulativeRevenue QuarterlyRevenue `json:"cumulativeRevenue"`
	AnnualRevenue     decimal.Decimal  `json:"annualRevenue"`
	BookedRevenue     decimal.Decimal  `json:"bookedRevenue"`
	TotalSpecs        int              `json:"totalSpecs"`
	TotalConversions  int              `json:"totalConversions"`
	BookedConversions int              `json:"bookedConversions"`
	AvgACV            decimal.Decimal  `json:"avgACV"`
}

// Equal compara valores monetários pelo valor, ignorando a escala do decimal
func (o ScenarioOutputs) Equal(other ScenarioOutputs) bool {
	return o.QuarterlyRevenue.Equal(other.QuarterlyRevenue) &&
		o.CumulativeRevenue.Equal(other.CumulativeRevenue) &&
		o.AnnualRevenue.Equal(other.AnnualRevenue) &&
		o.BookedRevenue.Equal(other.BookedRevenue) &&
		o.TotalSpecs == other.TotalSpecs &&
		o.TotalConversions == other.TotalConversions &&
		o.BookedConversions == other.BookedConversions &&
		o.AvgACV.Equal(other.AvgACV)
}

// MonthBreakdown é a visão detalhada de um mês do forecast
type MonthBreakdown struct {
	Month             int             `json:"month"`
	Key               string          `json:"key"`
	SpecsSigned       int             `json:"specsSigned"`
	Conversions       int             `json:"conversions"`
	ActiveClients     int             `json:"activeClients"`
	CatchUpRevenue    decimal.Decimal `json:"catchUpRevenue"`
	RecurringRevenue  decimal.Decimal `json:"recurringRevenue"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	CumulativeRevenue decimal.Decimal `json:"cumulativeRevenue"`
}

type ScenarioType string

const (
	ScenarioTypeBaseline     ScenarioType = "baseline"
	ScenarioTypeOptimistic   ScenarioType = "optimistic"
	ScenarioTypeConservative ScenarioType = "conservative"
	ScenarioTypeCustom       ScenarioType = "custom"
)

func (t ScenarioType) IsValid() bool {
	switch t {
	case ScenarioTypeBaseline, ScenarioTypeOptimistic, ScenarioTypeConservative, ScenarioTypeCustom:
		return true
	}
	return false
}

// ForecastingScenario é um snapshot nomeado de inputs com os outputs calculados no momento do save
type ForecastingScenario struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Type          ScenarioType    `json:"type"`
	Year          int             `json:"year"`
	IsActive      bool            `json:"isActive"`
	Inputs        ScenarioInputs  `json:"inputs"`
	Outputs       ScenarioOutputs `json:"outputs"`
	CreatedBy     int             `json:"createdBy"`
	CreatedByName string          `json:"createdByName"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// SaveScenarioRequest é o payload de criação/atualização de cenário.
// Outputs não fazem parte do payload: são sempre recalculados.
type SaveScenarioRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Type        *ScenarioType   `json:"type"`
	Year        *int            `json:"year"`
	Inputs      *ScenarioInputs `json:"inputs"`
}

// ScenarioComparison compara um cenário contra um cenário base
type ScenarioComparison struct {
	BaseID          string     `json:"baseId"`
	OtherID         string     `json:"otherId"`
	Quarterly       []Variance `json:"quarterly"`
	Annual          Variance   `json:"annual"`
	Booked          Variance   `json:"booked"`
	ConversionsDiff int        `json:"conversionsDiff"`
}
