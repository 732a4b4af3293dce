package handler

import (
	"net/http"

	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/middleware"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
)

func ListActuals(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := utils.ParseYear(r.URL.Query().Get("year"), 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro year inválido", nil)
			return
		}

		actuals, err := service.ListActuals(r.Context(), year)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar realizado")
			return
		}

		writeResponse(w, r, http.StatusOK, actuals)
	}
}

func RecordActual(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.RecordActualRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			writeDecodeError(w, r, err)
			return
		}

		author, _ := middleware.ClaimsFromContext(r.Context())

		actual, err := service.RecordActual(r.Context(), &req, author)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao gravar realizado")
			return
		}

		writeResponse(w, r, http.StatusOK, actual)
	}
}

// PlanVsActual compara o realizado com o cenário ativo do ano ou com ?scenario_id
func PlanVsActual(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		year, err := utils.ParseYear(query.Get("year"), 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro year inválido", nil)
			return
		}

		report, err := service.PlanVsActual(r.Context(), year, query.Get("scenario_id"))
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao gerar relatório")
			return
		}

		writeResponse(w, r, http.StatusOK, report)
	}
}
