package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/goal-tracker-api/infrastructure/repository"
	"github.com/vfg2006/goal-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/goal-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/goal-tracker-api/internal/config"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/pipeline"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const januaryInputsJSON = `{
	"specsPerMonth": {"jan": 1, "feb": 0, "mar": 0, "apr": 0, "may": 0, "jun": 0,
		"jul": 0, "aug": 0, "sep": 0, "oct": 0, "nov": 0, "dec": 0},
	"conversionRate": 1,
	"avgMonthlyFee": "75000"
}`

var (
	adminClaims   = &domain.Claims{UserID: 1, UserName: "Ana", UserRoleID: domain.RoleAdmin}
	managerClaims = &domain.Claims{UserID: 2, UserName: "Bruno", UserRoleID: domain.RoleManager}
	salesClaims   = &domain.Claims{UserID: 3, UserName: "Carla", UserRoleID: domain.RoleSales}
)

type fixture struct {
	scenarioRepo *mocks.MockScenarioRepository
	dealRepo     *mocks.MockPipelineDealRepository
	actualRepo   *mocks.MockRevenueActualRepository
	router       *router.Router
}

func setup(t *testing.T, extra ...router.Route) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{Forecast: config.Forecast{DefaultYear: 2025}}

	f := fixture{
		scenarioRepo: mocks.NewMockScenarioRepository(ctrl),
		dealRepo:     mocks.NewMockPipelineDealRepository(ctrl),
		actualRepo:   mocks.NewMockRevenueActualRepository(ctrl),
	}

	scenarioService := scenario.NewService(f.scenarioRepo, f.dealRepo, cfg, nil)
	pipelineService := pipeline.NewService(f.dealRepo, nil)
	reportingService := reporting.NewService(f.actualRepo, f.scenarioRepo, cfg, nil)

	f.router = router.New(
		router.WithRoutes(Forecast(scenarioService)...),
		router.WithRoutes(Scenarios(scenarioService)...),
		router.WithRoutes(Pipeline(pipelineService, scenarioService)...),
		router.WithRoutes(Reports(reportingService)...),
		router.WithRoutes(extra...),
	)

	return f
}

func (f fixture) do(method, path, body string, claims *domain.Claims) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if claims != nil {
		req = req.WithContext(middleware.WithClaims(req.Context(), claims))
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func storedScenario(id string, year int) *domain.ForecastingScenario {
	return &domain.ForecastingScenario{
		ID:   id,
		Name: "Base " + id,
		Type: domain.ScenarioTypeBaseline,
		Year: year,
		Inputs: domain.ScenarioInputs{
			SpecsPerMonth:  domain.MonthlySpecs{1},
			ConversionRate: 1,
			AvgMonthlyFee:  decimal.NewFromInt(75000),
		},
	}
}

func TestCalculateForecast(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedCode   string
		expectedDetail any
	}{
		{
			name:           "Inputs válidos",
			body:           januaryInputsJSON,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Taxa de conversão inválida",
			body:           strings.Replace(januaryInputsJSON, `"conversionRate": 1`, `"conversionRate": 2`, 1),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   apiErrors.ErrInvalidScenarioInputs,
		},
		{
			name:           "JSON malformado",
			body:           `{"specsPerMonth":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
		},
		{
			name:           "Mês ausente",
			body:           strings.Replace(januaryInputsJSON, `, "dec": 0`, "", 1),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
			expectedDetail: map[string]any{"field": "specsPerMonth"},
		},
		{
			name:           "Mês desconhecido",
			body:           strings.Replace(januaryInputsJSON, `"dec": 0`, `"dec": 0, "xyz": 1`, 1),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidRequest,
			expectedDetail: map[string]any{"field": "specsPerMonth"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			rec := f.do(http.MethodPost, "/v1/forecast/calculate", tt.body, salesClaims)
			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())

			if tt.expectedCode != "" {
				apiErr := decodeError(t, rec)
				assert.Equal(t, tt.expectedCode, apiErr.Code)
				assert.Equal(t, tt.expectedDetail, apiErr.Details)
				return
			}

			var outputs domain.ScenarioOutputs
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outputs))
			assert.True(t, outputs.AnnualRevenue.Equal(decimal.NewFromInt(900000)))
			assert.True(t, outputs.QuarterlyRevenue.Q1.Equal(decimal.NewFromInt(225000)))
			assert.Equal(t, 1, outputs.TotalConversions)
		})
	}
}

func TestCorpoInvalido(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		claims         *domain.Claims
		expectedDetail any
	}{
		{name: "Criar cenário", method: http.MethodPost, path: "/v1/scenarios", body: `{"name":`, claims: salesClaims},
		{
			name:           "Criar cenário com mês ausente",
			method:         http.MethodPost,
			path:           "/v1/scenarios",
			body:           `{"name": "Plano", "inputs": {"specsPerMonth": {"jan": 1}}}`,
			claims:         salesClaims,
			expectedDetail: map[string]any{"field": "specsPerMonth"},
		},
		{name: "Atualizar cenário", method: http.MethodPut, path: "/v1/scenarios/s1", body: `[`, claims: salesClaims},
		{name: "Criar deal", method: http.MethodPost, path: "/v1/pipeline/deals", body: `{"company":`, claims: salesClaims},
		{name: "Registrar realizado", method: http.MethodPut, path: "/v1/actuals", body: `{`, claims: adminClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			rec := f.do(tt.method, tt.path, tt.body, tt.claims)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			apiErr := decodeError(t, rec)
			assert.Equal(t, apiErrors.ErrInvalidRequest, apiErr.Code)
			assert.Equal(t, tt.expectedDetail, apiErr.Details)
		})
	}
}

func TestCalculateBreakdown(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodPost, "/v1/forecast/breakdown", januaryInputsJSON, salesClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var months []domain.MonthBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &months))
	require.Len(t, months, domain.MonthsInYear)
	assert.True(t, months[1].TotalRevenue.IsZero())
	assert.True(t, months[2].TotalRevenue.Equal(decimal.NewFromInt(225000)))
	assert.True(t, months[11].CumulativeRevenue.Equal(decimal.NewFromInt(900000)))
}

func TestCreateScenario(t *testing.T) {
	f := setup(t)

	f.scenarioRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.ForecastingScenario) error {
			assert.Equal(t, salesClaims.UserID, s.CreatedBy)
			assert.Equal(t, 2025, s.Year)
			return nil
		})

	body := `{"name": "Plano 2025", "type": "baseline", "inputs": ` + januaryInputsJSON + `}`
	rec := f.do(http.MethodPost, "/v1/scenarios", body, salesClaims)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.ForecastingScenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Outputs.AnnualRevenue.Equal(decimal.NewFromInt(900000)))
}

func TestGetScenario(t *testing.T) {
	t.Run("Cenário inexistente", func(t *testing.T) {
		f := setup(t)
		f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, nil)

		rec := f.do(http.MethodGet, "/v1/scenarios/nope", "", salesClaims)
		require.Equal(t, http.StatusNotFound, rec.Code)

		apiErr := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrScenarioNotFound, apiErr.Code)
		assert.Equal(t, map[string]any{"scenario_id": "nope"}, apiErr.Details)
	})

	t.Run("Erro de banco não vaza detalhes", func(t *testing.T) {
		f := setup(t)
		f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "s1").Return(nil, errors.New("pq: connection refused"))

		rec := f.do(http.MethodGet, "/v1/scenarios/s1", "", salesClaims)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		apiErr := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, apiErr.Code)
		assert.NotContains(t, apiErr.Message, "pq:")
	})

	t.Run("Outputs recalculados a partir dos inputs", func(t *testing.T) {
		f := setup(t)
		f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "s1").Return(storedScenario("s1", 2025), nil)

		rec := f.do(http.MethodGet, "/v1/scenarios/s1", "", salesClaims)
		require.Equal(t, http.StatusOK, rec.Code)

		var found domain.ForecastingScenario
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
		assert.True(t, found.Outputs.AnnualRevenue.Equal(decimal.NewFromInt(900000)))
	})
}

func TestDeleteScenario(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.Claims
		setupMocks     func(f fixture)
		expectedStatus int
	}{
		{
			name:           "Vendedor não pode remover",
			claims:         salesClaims,
			setupMocks:     func(f fixture) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "Gerente remove",
			claims: managerClaims,
			setupMocks: func(f fixture) {
				f.scenarioRepo.EXPECT().Delete(gomock.Any(), "s1").Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "Cenário inexistente",
			claims: adminClaims,
			setupMocks: func(f fixture) {
				f.scenarioRepo.EXPECT().Delete(gomock.Any(), "s1").Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Sem autenticação",
			setupMocks:     func(f fixture) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMocks(f)

			rec := f.do(http.MethodDelete, "/v1/scenarios/s1", "", tt.claims)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestActivateScenario(t *testing.T) {
	f := setup(t)

	f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "s1").Return(storedScenario("s1", 2025), nil)
	f.scenarioRepo.EXPECT().Activate(gomock.Any(), "s1", 2025).Return(nil)

	rec := f.do(http.MethodPost, "/v1/scenarios/s1/activate", "", managerClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var activated domain.ForecastingScenario
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activated))
	assert.True(t, activated.IsActive)
}

func TestCompareScenarios(t *testing.T) {
	f := setup(t)

	other := storedScenario("s2", 2025)
	other.Inputs.SpecsPerMonth = domain.MonthlySpecs{2}

	f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "s1").Return(storedScenario("s1", 2025), nil)
	f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "s2").Return(other, nil)

	rec := f.do(http.MethodGet, "/v1/scenarios/s1/compare/s2", "", salesClaims)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var comparison domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comparison))
	assert.Equal(t, "s1", comparison.BaseID)
	assert.Len(t, comparison.Quarterly, 4)
	assert.True(t, comparison.Annual.Amount.Equal(decimal.NewFromInt(900000)))
	assert.True(t, comparison.Annual.IsPositive)
}

func TestSeedFromPipeline(t *testing.T) {
	t.Run("Parâmetros inválidos", func(t *testing.T) {
		f := setup(t)

		rec := f.do(http.MethodGet, "/v1/pipeline/seed?year=2025&conversion_rate=abc&avg_monthly_fee=5000", "", salesClaims)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})

	t.Run("Specs contadas pela data de assinatura", func(t *testing.T) {
		f := setup(t)

		march := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		f.dealRepo.EXPECT().ListSignedInYear(gomock.Any(), 2025).Return([]*domain.PipelineDeal{
			{ID: "d1", Stage: domain.DealStageSpecSigned, SpecSignedDate: &march},
			{ID: "d2", Stage: domain.DealStageConverted, SpecSignedDate: &march},
		}, nil)

		rec := f.do(http.MethodGet, "/v1/pipeline/seed?year=2025&conversion_rate=0.5&avg_monthly_fee=5000", "", salesClaims)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var inputs domain.ScenarioInputs
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inputs))
		assert.Equal(t, 2, inputs.SpecsPerMonth.Get(3))
		assert.Equal(t, 2, inputs.SpecsPerMonth.Total())
		assert.Equal(t, 0.5, inputs.ConversionRate)
	})
}

func TestChangeDealStage(t *testing.T) {
	tests := []struct {
		name           string
		current        domain.DealStage
		body           string
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Deal convertido não muda de estágio",
			current:        domain.DealStageConverted,
			body:           `{"stage": "decision"}`,
			expectedStatus: http.StatusConflict,
			expectedCode:   apiErrors.ErrDealClosed,
		},
		{
			name:           "Estágio desconhecido",
			current:        domain.DealStageProspect,
			body:           `{"stage": "won"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrInvalidDealStage,
		},
		{
			name:           "Avança para decisão",
			current:        domain.DealStageInSpec,
			body:           `{"stage": "decision"}`,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			signed := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
			f.dealRepo.EXPECT().GetByID(gomock.Any(), "d1").Return(&domain.PipelineDeal{
				ID:             "d1",
				ClientName:     "Acme",
				Stage:          tt.current,
				Probability:    tt.current.DefaultProbability(),
				MonthlyFee:     decimal.NewFromInt(5000),
				SpecSignedDate: &signed,
			}, nil)

			if tt.expectedCode == "" {
				f.dealRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			}

			rec := f.do(http.MethodPost, "/v1/pipeline/deals/d1/stage", tt.body, salesClaims)
			require.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())

			if tt.expectedCode != "" {
				apiErr := decodeError(t, rec)
				assert.Equal(t, tt.expectedCode, apiErr.Code)
				return
			}

			var deal domain.PipelineDeal
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deal))
			assert.Equal(t, domain.DealStageDecision, deal.Stage)
			assert.Equal(t, 60, deal.Probability)
		})
	}
}

func TestDeleteDeal(t *testing.T) {
	f := setup(t)
	f.dealRepo.EXPECT().Delete(gomock.Any(), "d1").Return(repository.ErrNotFound)

	rec := f.do(http.MethodDelete, "/v1/pipeline/deals/d1", "", managerClaims)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrDealNotFound, decodeError(t, rec).Code)
}

func TestListDeals_EstagioInvalido(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodGet, "/v1/pipeline/deals?stage=won", "", salesClaims)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidDealStage, decodeError(t, rec).Code)
}

func TestPipelineSummary(t *testing.T) {
	f := setup(t)

	f.dealRepo.EXPECT().List(gomock.Any(), domain.DealStage("")).Return([]*domain.PipelineDeal{
		{ID: "d1", Stage: domain.DealStageDecision, Probability: 50, MonthlyFee: decimal.NewFromInt(1000)},
		{ID: "d2", Stage: domain.DealStageLost, Probability: 0, MonthlyFee: decimal.NewFromInt(3000)},
	}, nil)

	rec := f.do(http.MethodGet, "/v1/pipeline/summary", "", salesClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var valuation domain.PipelineValuation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &valuation))
	assert.Equal(t, 2, valuation.DealCount)
	assert.True(t, valuation.WeightedPipeline.Equal(decimal.NewFromInt(6000)))
}

func TestRecordActual(t *testing.T) {
	t.Run("Vendedor não grava realizado", func(t *testing.T) {
		f := setup(t)

		rec := f.do(http.MethodPut, "/v1/actuals", `{"year": 2025, "month": 3, "amount": "200000"}`, salesClaims)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Mês inválido", func(t *testing.T) {
		f := setup(t)

		rec := f.do(http.MethodPut, "/v1/actuals", `{"year": 2025, "month": 13, "amount": "200000"}`, managerClaims)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidActual, decodeError(t, rec).Code)
	})

	t.Run("Gerente grava realizado", func(t *testing.T) {
		f := setup(t)
		f.actualRepo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, actual *domain.RevenueActual) error {
				assert.Equal(t, managerClaims.UserID, actual.RecordedBy)
				assert.Equal(t, 3, actual.Month)
				return nil
			})

		rec := f.do(http.MethodPut, "/v1/actuals", `{"year": 2025, "month": 3, "amount": "200000"}`, managerClaims)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})
}

func TestPlanVsActual(t *testing.T) {
	t.Run("Sem cenário ativo", func(t *testing.T) {
		f := setup(t)
		f.scenarioRepo.EXPECT().GetActive(gomock.Any(), 2024).Return(nil, nil)

		rec := f.do(http.MethodGet, "/v1/reports/plan-vs-actual?year=2024", "", salesClaims)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNoActiveScenario, decodeError(t, rec).Code)
	})

	t.Run("Ano padrão da configuração", func(t *testing.T) {
		f := setup(t)
		f.scenarioRepo.EXPECT().GetActive(gomock.Any(), 2025).Return(storedScenario("s1", 2025), nil)
		f.actualRepo.EXPECT().ListByYear(gomock.Any(), 2025).Return([]*domain.RevenueActual{
			{Year: 2025, Month: 3, Amount: decimal.NewFromInt(200000)},
		}, nil)

		rec := f.do(http.MethodGet, "/v1/reports/plan-vs-actual", "", salesClaims)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var report domain.PlanVsActualReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.Equal(t, "s1", report.ScenarioID)
		require.Len(t, report.Quarters, 4)
		assert.True(t, report.Quarters[0].Quarterly.Amount.Equal(decimal.NewFromInt(-25000)))
	})

	t.Run("Ano inválido", func(t *testing.T) {
		f := setup(t)

		rec := f.do(http.MethodGet, "/v1/reports/plan-vs-actual?year=abc", "", salesClaims)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type fakeCronJob struct {
	triggered atomic.Int32
	busy      bool
}

func (f *fakeCronJob) TriggerManualSync() bool {
	f.triggered.Add(1)
	return !f.busy
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"running": f.busy}
}

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		claims         *domain.Claims
		expectedStatus int
		expectedRuns   int32
	}{
		{name: "Job conhecido", path: "/v1/cron/scenario-recalc/run", claims: adminClaims, expectedStatus: http.StatusAccepted, expectedRuns: 1},
		{name: "Todos os jobs", path: "/v1/cron/all/run", claims: adminClaims, expectedStatus: http.StatusAccepted, expectedRuns: 1},
		{name: "Job desconhecido", path: "/v1/cron/insights/run", claims: adminClaims, expectedStatus: http.StatusNotFound},
		{name: "Apenas administradores", path: "/v1/cron/scenario-recalc/run", claims: managerClaims, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &fakeCronJob{}
			f := setup(t, CronJobs(CronJobServices{CronJobTypeScenarioRecalc: job})...)

			rec := f.do(http.MethodPost, tt.path, "", tt.claims)
			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.expectedRuns, job.triggered.Load())
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	job := &fakeCronJob{busy: true}
	f := setup(t, CronJobs(CronJobServices{CronJobTypeScenarioRecalc: job})...)

	rec := f.do(http.MethodGet, "/v1/cron/status", "", adminClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, true, status[CronJobTypeScenarioRecalc]["running"])
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error {
	return f.err
}

func TestHealthcheck(t *testing.T) {
	tests := []struct {
		name           string
		db             Pinger
		expectedStatus int
		expectedState  string
	}{
		{name: "Banco disponível", db: fakePinger{}, expectedStatus: http.StatusOK, expectedState: "ok"},
		{name: "Banco indisponível", db: fakePinger{err: errors.New("timeout")}, expectedStatus: http.StatusServiceUnavailable, expectedState: "degraded"},
		{name: "Sem banco", expectedStatus: http.StatusOK, expectedState: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t, Healthcheck(tt.db)...)

			rec := f.do(http.MethodGet, "/healthcheck", "", nil)
			require.Equal(t, tt.expectedStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedState, body["status"])
		})
	}
}

func TestRotaInexistente(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodGet, "/v1/inexistente", "", adminClaims)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrRouteNotFound, decodeError(t, rec).Code)
}
