package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/pipeline"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
)

// writeUsecaseError traduz os erros ricos dos usecases para a resposta padronizada.
// Erros sem código viram 500 com a mensagem de fallback.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.ForContext(r.Context()).WithError(err)

	code, message, details := apiErrors.ErrInternalServer, fallback, any(nil)

	var (
		scenarioErr  *scenario.ScenarioError
		pipelineErr  *pipeline.PipelineError
		reportingErr *reporting.ReportingError
		authErr      *authenticating.AuthError
	)

	switch {
	case errors.As(err, &scenarioErr):
		code, message = scenarioErr.Code, scenarioErr.Error()
		if scenarioErr.ScenarioID != "" {
			details = map[string]any{"scenario_id": scenarioErr.ScenarioID}
		}
	case errors.As(err, &pipelineErr):
		code, message = pipelineErr.Code, pipelineErr.Error()
		if pipelineErr.DealID != "" {
			details = map[string]any{"deal_id": pipelineErr.DealID}
		}
	case errors.As(err, &reportingErr):
		code, message = reportingErr.Code, reportingErr.Error()
		if reportingErr.Year != 0 {
			details = map[string]any{"year": reportingErr.Year}
		}
	case errors.As(err, &authErr):
		code, message = authErr.Code, authErr.Error()
		if authErr.UserID != 0 {
			details = map[string]any{"user_id": authErr.UserID}
		}
	}

	status := apiErrors.StatusFor(code)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback)
		// não expõe detalhes de banco para o cliente
		message = fallback
	} else {
		logger.WithField("status_code", status).Warn(fallback)
	}

	apiErrors.WriteError(w, code, message, details)
}

// writeDecodeError responde 400 para corpos que não decodificam; falhas de chave em
// specsPerMonth levam o campo nos detalhes.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	if domain.IsMonthKeyError(err) {
		logger.Warn("specsPerMonth inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "specsPerMonth deve conter exatamente as chaves jan..dec", map[string]any{"field": "specsPerMonth"})
		return
	}

	logger.Warn("corpo da requisição inválido")
	apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
}

func writeResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := utils.WriteJSON(w, status, v); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}
