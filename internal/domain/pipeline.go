package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type DealStage string

const (
	DealStageProspect   DealStage = "prospect"
	DealStageSpecSigned DealStage = "spec_signed"
	DealStageInSpec     DealStage = "in_spec"
	DealStageDecision   DealStage = "decision"
	DealStageConverted  DealStage = "converted"
	DealStageLost       DealStage = "lost"
)

// DealStages na ordem do funil
var DealStages = []DealStage{
	DealStageProspect,
	DealStageSpecSigned,
	DealStageInSpec,
	DealStageDecision,
	DealStageConverted,
	DealStageLost,
}

// defaultProbabilities são pontos de partida para a UI, não invariantes
var defaultProbabilities = map[DealStage]int{
	DealStageProspect:   10,
	DealStageSpecSigned: 30,
	DealStageInSpec:     45,
	DealStageDecision:   60,
	DealStageConverted:  100,
	DealStageLost:       0,
}

func (s DealStage) IsValid() bool {
	_, ok := defaultProbabilities[s]
	return ok
}

// IsTerminal indica se o deal já foi convertido ou perdido
func (s DealStage) IsTerminal() bool {
	return s == DealStageConverted || s == DealStageLost
}

// HasSignedSpec indica se o deal já passou pela assinatura da spec
func (s DealStage) HasSignedSpec() bool {
	switch s {
	case DealStageSpecSigned, DealStageInSpec, DealStageDecision, DealStageConverted:
		return true
	}
	return false
}

func (s DealStage) DefaultProbability() int {
	return defaultProbabilities[s]
}

type PipelineDeal struct {
	ID             string          `json:"id"`
	ClientName     string          `json:"clientName"`
	Stage          DealStage       `json:"stage"`
	Probability    int             `json:"probability"`
	MonthlyFee     decimal.Decimal `json:"monthlyFee"`
	SpecSignedDate *time.Time      `json:"specSignedDate,omitempty"`
	ConversionDate *time.Time      `json:"conversionDate,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      int             `json:"createdBy"`
	CreatedByName  string          `json:"createdByName"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ACV é o valor anual do contrato (fee mensal x 12)
func (d PipelineDeal) ACV() decimal.Decimal {
	return d.MonthlyFee.Mul(decimal.NewFromInt(MonthsInYear))
}

type SaveDealRequest struct {
	ClientName     *string          `json:"clientName"`
	Stage          *DealStage       `json:"stage"`
	Probability    *int             `json:"probability"`
	MonthlyFee     *decimal.Decimal `json:"monthlyFee"`
	SpecSignedDate *string          `json:"specSignedDate"`
	ConversionDate *string          `json:"conversionDate"`
	Notes          *string          `json:"notes"`
}

type ChangeStageRequest struct {
	Stage       DealStage `json:"stage"`
	Probability *int      `json:"probability"`
	Notes       *string   `json:"notes"`
}

// StageValuation é o resumo de um estágio do funil
type StageValuation struct {
	Stage         DealStage       `json:"stage"`
	Count         int             `json:"count"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	WeightedValue decimal.Decimal `json:"weightedValue"`
}

type PipelineValuation struct {
	TotalPipeline    decimal.Decimal  `json:"totalPipeline"`
	WeightedPipeline decimal.Decimal  `json:"weightedPipeline"`
	DealCount        int              `json:"dealCount"`
	OpenDeals        int              `json:"openDeals"`
	ByStage          []StageValuation `json:"byStage"`
}
