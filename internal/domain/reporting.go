package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variance é a comparação entre realizado e meta
type Variance struct {
	Actual     decimal.Decimal `json:"actual"`
	Target     decimal.Decimal `json:"target"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	IsPositive bool            `json:"isPositive"`
}

// RevenueActual é a receita efetivamente recebida em um mês
type RevenueActual struct {
	ID         string          `json:"id"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes,omitempty"`
	RecordedBy int             `json:"recordedBy"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type RecordActualRequest struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

type QuarterVariance struct {
	Quarter    int      `json:"quarter"`
	Quarterly  Variance `json:"quarterly"`
	Cumulative Variance `json:"cumulative"`
}

type PlanVsActualReport struct {
	Year         int               `json:"year"`
	ScenarioID   string            `json:"scenarioId"`
	ScenarioName string            `json:"scenarioName"`
	Months       []Variance        `json:"months"`
	Quarters     []QuarterVariance `json:"quarters"`
	Annual       Variance          `json:"annual"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}
