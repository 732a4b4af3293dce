package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/infrastructure/repository"
	"github.com/vfg2006/goal-tracker-api/internal/config"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/forecasting"
	"github.com/vfg2006/goal-tracker-api/internal/metrics"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
)

const (
	minYear = 2000
	maxYear = 2100
)

type ReportingService interface {
	RecordActual(ctx context.Context, req *domain.RecordActualRequest, author *domain.Claims) (*domain.RevenueActual, error)
	ListActuals(ctx context.Context, year int) ([]*domain.RevenueActual, error)
	PlanVsActual(ctx context.Context, year int, scenarioID string) (*domain.PlanVsActualReport, error)
}

type Service struct {
	actualRepo   repository.RevenueActualRepository
	scenarioRepo repository.ScenarioRepository
	cfg          *config.Config
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewService(
	actualRepo repository.RevenueActualRepository,
	scenarioRepo repository.ScenarioRepository,
	cfg *config.Config,
	m *metrics.Metrics,
) *Service {
	return &Service{
		actualRepo:   actualRepo,
		scenarioRepo: scenarioRepo,
		cfg:          cfg,
		metrics:      m,
		now:          time.Now,
	}
}

// RecordActual grava a receita realizada do mês. Regravar o mesmo mês substitui o valor.
func (s *Service) RecordActual(ctx context.Context, req *domain.RecordActualRequest, author *domain.Claims) (*domain.RevenueActual, error) {
	if req == nil {
		return nil, newReportingError(ErrInvalidActual, apiErrors.ErrInvalidRequest, 0, "Corpo da requisição vazio")
	}

	year := req.Year
	if year == 0 {
		year = s.fiscalYear()
	}

	if year < minYear || year > maxYear {
		return nil, newReportingError(ErrInvalidYear, apiErrors.ErrInvalidActual, year, fmt.Sprintf("ano %d", year))
	}

	if req.Month < 1 || req.Month > domain.MonthsInYear {
		return nil, newReportingError(fmt.Errorf("%w: %w", ErrInvalidActual, domain.ErrInvalidMonthForActuals), apiErrors.ErrInvalidActual, year, fmt.Sprintf("mês %d", req.Month))
	}

	if req.Amount.IsNegative() {
		return nil, newReportingError(ErrInvalidActual, apiErrors.ErrInvalidActual, year, "Valor não pode ser negativo")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, newReportingError(fmt.Errorf("%w: %w", ErrIDGeneration, err), apiErrors.ErrInternalServer, year, "")
	}

	actual := &domain.RevenueActual{
		ID:     id,
		Year:   year,
		Month:  req.Month,
		Amount: req.Amount,
		Notes:  req.Notes,
	}
	if author != nil {
		actual.RecordedBy = author.UserID
	}

	if err := s.actualRepo.Upsert(ctx, actual); err != nil {
		return nil, newReportingError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, year, "Erro ao gravar realizado")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"actual_year":  actual.Year,
		"actual_month": actual.Month,
		"amount":       actual.Amount.String(),
	}).Info("reporting: realizado gravado")

	return actual, nil
}

func (s *Service) ListActuals(ctx context.Context, year int) ([]*domain.RevenueActual, error) {
	if year == 0 {
		year = s.fiscalYear()
	}

	actuals, err := s.actualRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, newReportingError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, year, "Erro ao listar realizado")
	}

	return actuals, nil
}

// PlanVsActual compara o realizado do ano com o cenário ativo, ou com scenarioID quando informado.
// As metas vêm do recálculo dos inputs do cenário, nunca dos outputs gravados.
// Meses sem realizado contam como zero.
func (s *Service) PlanVsActual(ctx context.Context, year int, scenarioID string) (*domain.PlanVsActualReport, error) {
	if year == 0 {
		year = s.fiscalYear()
	}

	scenario, err := s.targetScenario(ctx, year, scenarioID)
	if err != nil {
		return nil, err
	}
	year = scenario.Year

	if err := scenario.Inputs.Validate(); err != nil {
		return nil, newReportingError(fmt.Errorf("%w: %w", ErrInvalidActual, err), apiErrors.ErrInvalidScenarioInputs, year, "Inputs do cenário inválidos")
	}

	breakdown := forecasting.CalculateMonthlyBreakdown(scenario.Inputs)
	s.metrics.ObserveForecast(metrics.SourceReport)

	actuals, err := s.actualRepo.ListByYear(ctx, year)
	if err != nil {
		return nil, newReportingError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, year, "Erro ao listar realizado")
	}

	var actualByMonth [domain.MonthsInYear]decimal.Decimal
	for i := range actualByMonth {
		actualByMonth[i] = decimal.Zero
	}
	for _, actual := range actuals {
		if actual.Month < 1 || actual.Month > domain.MonthsInYear {
			continue
		}
		actualByMonth[actual.Month-1] = actual.Amount
	}

	report := &domain.PlanVsActualReport{
		Year:         year,
		ScenarioID:   scenario.ID,
		ScenarioName: scenario.Name,
		Months:       make([]domain.Variance, 0, domain.MonthsInYear),
		Quarters:     make([]domain.QuarterVariance, 0, 4),
		GeneratedAt:  s.now().UTC(),
	}

	var quarterActual, quarterTarget [4]decimal.Decimal
	for q := range quarterActual {
		quarterActual[q] = decimal.Zero
		quarterTarget[q] = decimal.Zero
	}

	for _, month := range breakdown {
		actual := actualByMonth[month.Month-1]
		report.Months = append(report.Months, forecasting.CalculateVariance(actual, month.TotalRevenue))

		q := forecasting.QuarterOf(month.Month) - 1
		quarterActual[q] = quarterActual[q].Add(actual)
		quarterTarget[q] = quarterTarget[q].Add(month.TotalRevenue)
	}

	cumulativeActual, cumulativeTarget := decimal.Zero, decimal.Zero
	for q := 0; q < 4; q++ {
		cumulativeActual = cumulativeActual.Add(quarterActual[q])
		cumulativeTarget = cumulativeTarget.Add(quarterTarget[q])

		report.Quarters = append(report.Quarters, domain.QuarterVariance{
			Quarter:    q + 1,
			Quarterly:  forecasting.CalculateVariance(quarterActual[q], quarterTarget[q]),
			Cumulative: forecasting.CalculateVariance(cumulativeActual, cumulativeTarget),
		})
	}

	report.Annual = forecasting.CalculateVariance(cumulativeActual, cumulativeTarget)

	return report, nil
}

func (s *Service) targetScenario(ctx context.Context, year int, scenarioID string) (*domain.ForecastingScenario, error) {
	if scenarioID != "" {
		scenario, err := s.scenarioRepo.GetByID(ctx, scenarioID)
		if err != nil {
			return nil, newReportingError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, year, "Erro ao buscar cenário")
		}
		if scenario == nil {
			return nil, newReportingError(ErrScenarioNotFound, apiErrors.ErrScenarioNotFound, year, scenarioID)
		}
		return scenario, nil
	}

	scenario, err := s.scenarioRepo.GetActive(ctx, year)
	if err != nil {
		return nil, newReportingError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, year, "Erro ao buscar cenário ativo")
	}
	if scenario == nil {
		return nil, newReportingError(ErrNoActiveScenario, apiErrors.ErrNoActiveScenario, year, fmt.Sprintf("ano %d", year))
	}

	return scenario, nil
}

func (s *Service) fiscalYear() int {
	return s.cfg.Forecast.FiscalYear(s.now())
}
