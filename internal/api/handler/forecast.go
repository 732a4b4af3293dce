package handler

import (
	"net/http"

	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
)

// CalculateForecast devolve a projeção dos inputs sem salvar nada
func CalculateForecast(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inputs domain.ScenarioInputs
		if err := utils.DecodeJSON(r, &inputs); err != nil {
			writeDecodeError(w, r, err)
			return
		}

		outputs, err := service.Calculate(r.Context(), inputs)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao calcular forecast")
			return
		}

		writeResponse(w, r, http.StatusOK, outputs)
	}
}

func CalculateBreakdown(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var inputs domain.ScenarioInputs
		if err := utils.DecodeJSON(r, &inputs); err != nil {
			writeDecodeError(w, r, err)
			return
		}

		breakdown, err := service.CalculateBreakdown(r.Context(), inputs)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao calcular forecast mensal")
			return
		}

		writeResponse(w, r, http.StatusOK, breakdown)
	}
}
