package forecasting

import (
	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// ValuePipeline calcula o pipeline bruto e ponderado.
//
// TotalPipeline considera só oportunidades abertas (exclui lost e converted).
// WeightedPipeline exclui apenas lost: deals convertidos entram com a sua probabilidade
// (normalmente 100%) porque representam valor já ganho.
func ValuePipeline(deals []domain.PipelineDeal) domain.PipelineValuation {
	valuation := domain.PipelineValuation{
		TotalPipeline:    decimal.Zero,
		WeightedPipeline: decimal.Zero,
		DealCount:        len(deals),
	}

	byStage := make(map[domain.DealStage]*domain.StageValuation, len(domain.DealStages))
	for _, stage := range domain.DealStages {
		byStage[stage] = &domain.StageValuation{
			Stage:         stage,
			TotalValue:    decimal.Zero,
			WeightedValue: decimal.Zero,
		}
	}

	for _, deal := range deals {
		acv := deal.ACV()
		weighted := acv.Mul(decimal.NewFromInt(int64(deal.Probability))).Div(hundred)

		if stageValuation, ok := byStage[deal.Stage]; ok {
			stageValuation.Count++
			stageValuation.TotalValue = stageValuation.TotalValue.Add(acv)
			stageValuation.WeightedValue = stageValuation.WeightedValue.Add(weighted)
		}

		if deal.Stage == domain.DealStageLost {
			continue
		}

		valuation.WeightedPipeline = valuation.WeightedPipeline.Add(weighted)

		if deal.Stage != domain.DealStageConverted {
			valuation.TotalPipeline = valuation.TotalPipeline.Add(acv)
			valuation.OpenDeals++
		}
	}

	valuation.ByStage = make([]domain.StageValuation, 0, len(domain.DealStages))
	for _, stage := range domain.DealStages {
		valuation.ByStage = append(valuation.ByStage, *byStage[stage])
	}

	return valuation
}

// SpecsFromDeals conta, por mês de assinatura, os deals do ano que já assinaram spec.
// Deals perdidos e prospects ficam de fora.
func SpecsFromDeals(deals []domain.PipelineDeal, year int) domain.MonthlySpecs {
	var specs domain.MonthlySpecs

	for _, deal := range deals {
		if !deal.Stage.HasSignedSpec() || deal.SpecSignedDate == nil {
			continue
		}

		if deal.SpecSignedDate.Year() != year {
			continue
		}

		specs[int(deal.SpecSignedDate.Month())-1]++
	}

	return specs
}
