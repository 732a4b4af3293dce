package handler

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/pipeline"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/middleware"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
)

func ListDeals(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stage := domain.DealStage(r.URL.Query().Get("stage"))

		deals, err := service.ListDeals(r.Context(), stage)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao listar deals")
			return
		}

		writeResponse(w, r, http.StatusOK, deals)
	}
}

func CreateDeal(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SaveDealRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			writeDecodeError(w, r, err)
			return
		}

		author, _ := middleware.ClaimsFromContext(r.Context())

		deal, err := service.CreateDeal(r.Context(), &req, author)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao criar deal")
			return
		}

		writeResponse(w, r, http.StatusCreated, deal)
	}
}

func GetDeal(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deal, err := service.GetDeal(r.Context(), idParam(r))
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao buscar deal")
			return
		}

		writeResponse(w, r, http.StatusOK, deal)
	}
}

func UpdateDeal(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SaveDealRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			writeDecodeError(w, r, err)
			return
		}

		deal, err := service.UpdateDeal(r.Context(), idParam(r), &req)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao atualizar deal")
			return
		}

		writeResponse(w, r, http.StatusOK, deal)
	}
}

func DeleteDeal(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := service.DeleteDeal(r.Context(), idParam(r)); err != nil {
			writeUsecaseError(w, r, err, "Erro ao remover deal")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ChangeDealStage(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ChangeStageRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			writeDecodeError(w, r, err)
			return
		}

		deal, err := service.ChangeStage(r.Context(), idParam(r), &req)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao alterar estágio do deal")
			return
		}

		writeResponse(w, r, http.StatusOK, deal)
	}
}

func PipelineSummary(service pipeline.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		valuation, err := service.Summary(r.Context())
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao avaliar pipeline")
			return
		}

		writeResponse(w, r, http.StatusOK, valuation)
	}
}

// SeedFromPipeline monta inputs de cenário a partir das specs assinadas no pipeline
func SeedFromPipeline(service scenario.ScenarioService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		year, err := utils.ParseYear(query.Get("year"), 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro year inválido", nil)
			return
		}

		rate, err := strconv.ParseFloat(query.Get("conversion_rate"), 64)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro conversion_rate inválido", nil)
			return
		}

		fee, err := decimal.NewFromString(query.Get("avg_monthly_fee"))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro avg_monthly_fee inválido", nil)
			return
		}

		inputs, err := service.InputsFromPipeline(r.Context(), year, rate, fee)
		if err != nil {
			writeUsecaseError(w, r, err, "Erro ao montar inputs a partir do pipeline")
			return
		}

		writeResponse(w, r, http.StatusOK, inputs)
	}
}
