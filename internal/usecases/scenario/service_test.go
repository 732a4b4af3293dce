package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/goal-tracker-api/infrastructure/repository"
	"github.com/vfg2006/goal-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/goal-tracker-api/internal/config"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/forecasting"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func januaryInputs() domain.ScenarioInputs {
	return domain.ScenarioInputs{
		SpecsPerMonth:  domain.MonthlySpecs{1},
		ConversionRate: 1,
		AvgMonthlyFee:  decimal.NewFromInt(75000),
	}
}

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	scenarioRepo *mocks.MockScenarioRepository
	dealRepo     *mocks.MockPipelineDealRepository
	service      *Service
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	scenarioRepo := mocks.NewMockScenarioRepository(ctrl)
	dealRepo := mocks.NewMockPipelineDealRepository(ctrl)

	cfg := &config.Config{Forecast: config.Forecast{DefaultYear: 2025}}
	service := NewService(scenarioRepo, dealRepo, cfg, nil)
	service.now = func() time.Time { return time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC) }

	return fixture{scenarioRepo: scenarioRepo, dealRepo: dealRepo, service: service}
}

func assertScenarioError(t *testing.T, err error, target error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, target)

	var scenarioErr *ScenarioError
	require.True(t, errors.As(err, &scenarioErr))
	assert.Equal(t, code, scenarioErr.Code)
}

func TestService_Calculate(t *testing.T) {
	tests := []struct {
		name        string
		inputs      domain.ScenarioInputs
		expectedErr error
	}{
		{name: "Inputs válidos", inputs: januaryInputs()},
		{
			name: "Taxa de conversão acima de 1",
			inputs: domain.ScenarioInputs{
				SpecsPerMonth:  domain.MonthlySpecs{1},
				ConversionRate: 1.5,
				AvgMonthlyFee:  decimal.NewFromInt(1000),
			},
			expectedErr: domain.ErrInvalidConversionRate,
		},
		{
			name: "Fee negativo",
			inputs: domain.ScenarioInputs{
				ConversionRate: 0.5,
				AvgMonthlyFee:  decimal.NewFromInt(-1),
			},
			expectedErr: domain.ErrInvalidMonthlyFee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			out, err := f.service.Calculate(context.Background(), tt.inputs)

			if tt.expectedErr != nil {
				assertScenarioError(t, err, ErrInvalidInputs, apiErrors.ErrInvalidScenarioInputs)
				assert.ErrorIs(t, err, tt.expectedErr)
				// a causa aparece uma única vez na mensagem
				assert.Equal(t, 1, strings.Count(err.Error(), tt.expectedErr.Error()), err.Error())
				return
			}

			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(900000).Equal(out.AnnualRevenue))
		})
	}
}

func TestService_CalculateBreakdown(t *testing.T) {
	f := setup(t)

	breakdown, err := f.service.CalculateBreakdown(context.Background(), januaryInputs())
	require.NoError(t, err)
	require.Len(t, breakdown, 12)
	assert.True(t, decimal.NewFromInt(900000).Equal(breakdown[11].CumulativeRevenue))
}

func TestService_CreateScenario(t *testing.T) {
	author := &domain.Claims{UserID: 7, UserName: "Ana", UserLastname: "Souza"}

	tests := []struct {
		name        string
		req         *domain.SaveScenarioRequest
		setupMocks  func(f fixture)
		expectedErr error
		expectedCod string
		validate    func(t *testing.T, scenario *domain.ForecastingScenario)
	}{
		{
			name: "Cria cenário com outputs calculados e ano padrão",
			req: &domain.SaveScenarioRequest{
				Name:   ptr("Baseline 2025"),
				Type:   ptr(domain.ScenarioTypeBaseline),
				Inputs: ptr(januaryInputs()),
			},
			setupMocks: func(f fixture) {
				f.scenarioRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *domain.ForecastingScenario) error {
						assert.NotEmpty(t, s.ID)
						assert.False(t, s.IsActive)
						return nil
					})
			},
			validate: func(t *testing.T, scenario *domain.ForecastingScenario) {
				assert.Equal(t, 2025, scenario.Year)
				assert.Equal(t, 7, scenario.CreatedBy)
				assert.Equal(t, "Ana Souza", scenario.CreatedByName)
				assert.True(t, decimal.NewFromInt(900000).Equal(scenario.Outputs.AnnualRevenue))
				assert.True(t, decimal.NewFromInt(900000).Equal(scenario.Outputs.BookedRevenue))
			},
		},
		{
			name: "Tipo padrão é custom",
			req: &domain.SaveScenarioRequest{
				Name:   ptr("Sem tipo"),
				Year:   ptr(2026),
				Inputs: ptr(januaryInputs()),
			},
			setupMocks: func(f fixture) {
				f.scenarioRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, scenario *domain.ForecastingScenario) {
				assert.Equal(t, domain.ScenarioTypeCustom, scenario.Type)
				assert.Equal(t, 2026, scenario.Year)
			},
		},
		{
			name:        "Sem inputs",
			req:         &domain.SaveScenarioRequest{Name: ptr("x")},
			setupMocks:  func(f fixture) {},
			expectedErr: ErrMissingInputs,
			expectedCod: apiErrors.ErrMissingRequiredData,
		},
		{
			name:        "Sem nome",
			req:         &domain.SaveScenarioRequest{Name: ptr("   "), Inputs: ptr(januaryInputs())},
			setupMocks:  func(f fixture) {},
			expectedErr: domain.ErrMissingScenarioName,
			expectedCod: apiErrors.ErrMissingRequiredData,
		},
		{
			name: "Tipo inválido",
			req: &domain.SaveScenarioRequest{
				Name:   ptr("x"),
				Type:   ptr(domain.ScenarioType("pessimista")),
				Inputs: ptr(januaryInputs()),
			},
			setupMocks:  func(f fixture) {},
			expectedErr: domain.ErrInvalidScenarioType,
			expectedCod: apiErrors.ErrInvalidFormat,
		},
		{
			name: "Erro no banco",
			req: &domain.SaveScenarioRequest{
				Name:   ptr("x"),
				Inputs: ptr(januaryInputs()),
			},
			setupMocks: func(f fixture) {
				f.scenarioRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("conexão perdida"))
			},
			expectedErr: ErrDatabaseOperation,
			expectedCod: apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.setupMocks(f)

			scenario, err := f.service.CreateScenario(context.Background(), tt.req, author)

			if tt.expectedErr != nil {
				assertScenarioError(t, err, tt.expectedErr, tt.expectedCod)
				assert.Nil(t, scenario)
				return
			}

			require.NoError(t, err)
			tt.validate(t, scenario)
		})
	}
}

func TestService_UpdateScenario(t *testing.T) {
	stored := func() *domain.ForecastingScenario {
		return &domain.ForecastingScenario{
			ID:     "abc",
			Name:   "Baseline",
			Type:   domain.ScenarioTypeBaseline,
			Year:   2025,
			Inputs: januaryInputs(),
		}
	}

	t.Run("Recalcula outputs ao atualizar inputs", func(t *testing.T) {
		f := setup(t)

		newInputs := januaryInputs()
		newInputs.SpecsPerMonth = domain.MonthlySpecs{2}

		f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "abc").Return(stored(), nil)
		f.scenarioRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		scenario, err := f.service.UpdateScenario(context.Background(), "abc", &domain.SaveScenarioRequest{Inputs: &newInputs})
		require.NoError(t, err)
		assert.Equal(t, "Baseline", scenario.Name)
		assert.True(t, decimal.NewFromInt(1800000).Equal(scenario.Outputs.AnnualRevenue))
	})

	t.Run("Cenário inexistente", func(t *testing.T) {
		f := setup(t)
		f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "abc").Return(nil, nil)

		_, err := f.service.UpdateScenario(context.Background(), "abc", &domain.SaveScenarioRequest{Name: ptr("x")})
		assertScenarioError(t, err, ErrScenarioNotFound, apiErrors.ErrScenarioNotFound)
	})

	t.Run("Cenário ativo não muda de ano", func(t *testing.T) {
		f := setup(t)
		active := stored()
		active.IsActive = true
		f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "abc").Return(active, nil)

		_, err := f.service.UpdateScenario(context.Background(), "abc", &domain.SaveScenarioRequest{Year: ptr(2026)})
		assertScenarioError(t, err, ErrActiveYearChange, apiErrors.ErrScenarioConflict)
	})

	t.Run("Removido entre a leitura e a escrita", func(t *testing.T) {
		f := setup(t)
		f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "abc").Return(stored(), nil)
		f.scenarioRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(repository.ErrNotFound)

		_, err := f.service.UpdateScenario(context.Background(), "abc", &domain.SaveScenarioRequest{Name: ptr("x")})
		assertScenarioError(t, err, ErrScenarioNotFound, apiErrors.ErrScenarioNotFound)
	})
}

func TestService_GetScenario_RecomputesOutputs(t *testing.T) {
	f := setup(t)

	// outputs gravados com uma versão antiga do cálculo
	drifted := &domain.ForecastingScenario{
		ID:     "abc",
		Name:   "Baseline",
		Type:   domain.ScenarioTypeBaseline,
		Year:   2025,
		Inputs: januaryInputs(),
		Outputs: domain.ScenarioOutputs{
			AnnualRevenue: decimal.NewFromInt(1),
		},
	}
	f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "abc").Return(drifted, nil)

	scenario, err := f.service.GetScenario(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(900000).Equal(scenario.Outputs.AnnualRevenue))
	assert.True(t, scenario.Outputs.Equal(forecasting.CalculateForecast(januaryInputs())))
}

func TestService_DeleteScenario(t *testing.T) {
	f := setup(t)
	f.scenarioRepo.EXPECT().Delete(gomock.Any(), "abc").Return(repository.ErrNotFound)
	f.scenarioRepo.EXPECT().Delete(gomock.Any(), "def").Return(nil)

	err := f.service.DeleteScenario(context.Background(), "abc")
	assertScenarioError(t, err, ErrScenarioNotFound, apiErrors.ErrScenarioNotFound)

	assert.NoError(t, f.service.DeleteScenario(context.Background(), "def"))
}

func TestService_ActivateScenario(t *testing.T) {
	f := setup(t)

	f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "abc").Return(&domain.ForecastingScenario{
		ID:     "abc",
		Year:   2026,
		Inputs: januaryInputs(),
	}, nil)
	f.scenarioRepo.EXPECT().Activate(gomock.Any(), "abc", 2026).Return(nil)

	scenario, err := f.service.ActivateScenario(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, scenario.IsActive)
}

func TestService_CompareScenarios(t *testing.T) {
	f := setup(t)

	doubled := januaryInputs()
	doubled.SpecsPerMonth = domain.MonthlySpecs{2}

	f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "base").Return(&domain.ForecastingScenario{ID: "base", Inputs: januaryInputs()}, nil)
	f.scenarioRepo.EXPECT().GetByID(gomock.Any(), "other").Return(&domain.ForecastingScenario{ID: "other", Inputs: doubled}, nil)

	comparison, err := f.service.CompareScenarios(context.Background(), "base", "other")
	require.NoError(t, err)

	assert.Equal(t, 1, comparison.ConversionsDiff)
	assert.Len(t, comparison.Quarterly, 4)
	assert.True(t, decimal.NewFromInt(900000).Equal(comparison.Annual.Amount))
	assert.True(t, decimal.NewFromInt(1).Equal(comparison.Annual.Percentage))
	assert.True(t, comparison.Booked.IsPositive)
}

func TestService_InputsFromPipeline(t *testing.T) {
	date := func(month time.Month) *time.Time {
		d := time.Date(2025, month, 3, 0, 0, 0, 0, time.UTC)
		return &d
	}

	t.Run("Conta specs por mês de assinatura", func(t *testing.T) {
		f := setup(t)
		f.dealRepo.EXPECT().ListSignedInYear(gomock.Any(), 2025).Return([]*domain.PipelineDeal{
			{Stage: domain.DealStageInSpec, SpecSignedDate: date(time.February)},
			{Stage: domain.DealStageDecision, SpecSignedDate: date(time.February)},
			{Stage: domain.DealStageConverted, SpecSignedDate: date(time.July)},
		}, nil)

		inputs, err := f.service.InputsFromPipeline(context.Background(), 0, 0.4, decimal.NewFromInt(5000))
		require.NoError(t, err)
		assert.Equal(t, 2, inputs.SpecsPerMonth.Get(2))
		assert.Equal(t, 1, inputs.SpecsPerMonth.Get(7))
		assert.Equal(t, 3, inputs.SpecsPerMonth.Total())
		assert.Equal(t, 0.4, inputs.ConversionRate)
	})

	t.Run("Taxa inválida", func(t *testing.T) {
		f := setup(t)
		f.dealRepo.EXPECT().ListSignedInYear(gomock.Any(), 2025).Return(nil, nil)

		_, err := f.service.InputsFromPipeline(context.Background(), 2025, 2, decimal.NewFromInt(5000))
		assertScenarioError(t, err, ErrInvalidInputs, apiErrors.ErrInvalidScenarioInputs)
	})

	t.Run("Ano fora do intervalo", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.InputsFromPipeline(context.Background(), 1999, 0.5, decimal.NewFromInt(5000))
		assertScenarioError(t, err, domain.ErrInvalidYear, apiErrors.ErrInvalidRequest)
	})
}

func TestService_RecalculateAll(t *testing.T) {
	f := setup(t)

	upToDate := &domain.ForecastingScenario{ID: "ok", Inputs: januaryInputs()}
	upToDate.Outputs = forecasting.CalculateForecast(upToDate.Inputs)

	drifted := &domain.ForecastingScenario{ID: "drift", Inputs: januaryInputs()}

	invalid := &domain.ForecastingScenario{ID: "invalid", Inputs: domain.ScenarioInputs{ConversionRate: 3}}

	f.scenarioRepo.EXPECT().List(gomock.Any(), 0).Return([]*domain.ForecastingScenario{upToDate, drifted, invalid}, nil)
	f.scenarioRepo.EXPECT().UpdateOutputs(gomock.Any(), "drift", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, outputs domain.ScenarioOutputs) error {
			assert.True(t, decimal.NewFromInt(900000).Equal(outputs.AnnualRevenue))
			return nil
		})

	result, err := f.service.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RecalcResult{Checked: 3, Updated: 1, Skipped: 1}, result)
}
