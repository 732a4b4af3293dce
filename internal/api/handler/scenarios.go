package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/middleware"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
)

// ListScenarios lista os cenários; sem ?year lista todos os anos
func ListScenarios(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := utils.ParseYear(r.URL.Query().Get("year"), 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro year inválido", nil)
			return
		}

		scenarios, err := service.ListScenarios(r.Context(), year)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar cenários")
			return
		}

		writeResponse(w, r, http.StatusOK, scenarios)
	}
}

func CreateScenario(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SaveScenarioRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			writeDecodeError(w, r, err)
			return
		}

		author, _ := middleware.ClaimsFromContext(r.Context())

		created, err := service.CreateScenario(r.Context(), &req, author)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao criar cenário")
			return
		}

		writeResponse(w, r, http.StatusCreated, created)
	}
}

func GetScenario(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := service.GetScenario(r.Context(), idParam(r))
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao buscar cenário")
			return
		}

		writeResponse(w, r, http.StatusOK, found)
	}
}

func UpdateScenario(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SaveScenarioRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			writeDecodeError(w, r, err)
			return
		}

		updated, err := service.UpdateScenario(r.Context(), idParam(r), &req)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao atualizar cenário")
			return
		}

		writeResponse(w, r, http.StatusOK, updated)
	}
}

func DeleteScenario(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteScenario(r.Context(), idParam(r)); err != nil {
			writeUsecaseError(w, r, err, "Erro ao remover cenário")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ActivateScenario(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activated, err := service.ActivateScenario(r.Context(), idParam(r))
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao ativar cenário")
			return
		}

		writeResponse(w, r, http.StatusOK, activated)
	}
}

func GetScenarioBreakdown(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		breakdown, err := service.GetScenarioBreakdown(r.Context(), idParam(r))
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao calcular forecast mensal")
			return
		}

		writeResponse(w, r, http.StatusOK, breakdown)
	}
}

// CompareScenarios compara :other_id contra o cenário base :id
func CompareScenarios(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		comparison, err := service.CompareScenarios(r.Context(), params.ByName("id"), params.ByName("other_id"))
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao comparar cenários")
			return
		}

		writeResponse(w, r, http.StatusOK, comparison)
	}
}

func idParam(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}
