package scenario

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

type ScenarioService interface {
	Calculate(ctx context.Context, inputs domain.ScenarioInputs) (domain.ScenarioOutputs, error)
	CalculateBreakdown(ctx context.Context, inputs domain.ScenarioInputs) ([]domain.MonthBreakdown, error)
	CreateScenario(ctx context.Context, req *domain.SaveScenarioRequest, author *domain.Claims) (*domain.ForecastingScenario, error)
	UpdateScenario(ctx context.Context, id string, req *domain.SaveScenarioRequest) (*domain.ForecastingScenario, error)
	GetScenario(ctx context.Context, id string) (*domain.ForecastingScenario, error)
	GetScenarioBreakdown(ctx context.Context, id string) ([]domain.MonthBreakdown, error)
	ListScenarios(ctx context.Context, year int) ([]*domain.ForecastingScenario, error)
	DeleteScenario(ctx context.Context, id string) error
	ActivateScenario(ctx context.Context, id string) (*domain.ForecastingScenario, error)
	CompareScenarios(ctx context.Context, baseID, otherID string) (*domain.ScenarioComparison, error)
	InputsFromPipeline(ctx context.Context, year int, conversionRate float64, avgMonthlyFee decimal.Decimal) (*domain.ScenarioInputs, error)
	RecalculateAll(ctx context.Context) (RecalcResult, error)
}

// RecalcResult resume uma execução de RecalculateAll
type RecalcResult struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

type Service struct {
	scenarioRepo repository.ScenarioRepository
	dealRepo     repository.PipelineDealRepository
	cfg          *config.Config
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewService(
	scenarioRepo repository.ScenarioRepository,
	dealRepo repository.PipelineDealRepository,
	cfg *config.Config,
	m *metrics.Metrics,
) *Service {
	return &Service{
		scenarioRepo: scenarioRepo,
		dealRepo:     dealRepo,
		cfg:          cfg,
		metrics:      m,
		now:          time.Now,
	}
}

func (s *Service) Calculate(ctx context.Context, inputs domain.ScenarioInputs) (domain.ScenarioOutputs, error) {
	if err := validateInputs(inputs); err != nil {
		return domain.ScenarioOutputs{}, err
	}

	s.metrics.ObserveForecast(metrics.SourcePreview)
	return forecasting.CalculateForecast(inputs), nil
}

func (s *Service) CalculateBreakdown(ctx context.Context, inputs domain.ScenarioInputs) ([]domain.MonthBreakdown, error) {
	if err := validateInputs(inputs); err != nil {
		return nil, err
	}

	s.metrics.ObserveForecast(metrics.SourcePreview)
	return forecasting.CalculateMonthlyBreakdown(inputs), nil
}

func (s *Service) CreateScenario(ctx context.Context, req *domain.SaveScenarioRequest, author *domain.Claims) (*domain.ForecastingScenario, error) {
	if req == nil || req.Inputs == nil {
		return nil, newScenarioError(ErrMissingInputs, apiErrors.ErrMissingRequiredData, "", "")
	}

	scenario := &domain.ForecastingScenario{
		Type: domain.ScenarioTypeCustom,
		Year: s.cfg.Forecast.FiscalYear(s.now()),
	}
	applyRequest(scenario, req)

	if err := validateScenario(scenario); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, newScenarioError(fmt.Errorf("%w: %w", ErrIDGeneration, err), apiErrors.ErrInternalServer, "", "")
	}

	scenario.ID = id
	if author != nil {
		scenario.CreatedBy = author.UserID
		scenario.CreatedByName = author.FullName()
	}

	scenario.Outputs = forecasting.CalculateForecast(scenario.Inputs)
	s.metrics.ObserveForecast(metrics.SourceSave)

	if err := s.scenarioRepo.Create(ctx, scenario); err != nil {
		return nil, newScenarioError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, scenario.ID, "Erro ao salvar cenário")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"scenario_id":   scenario.ID,
		"scenario_type": scenario.Type,
		"year":          scenario.Year,
	}).Info("scenario: cenário criado")

	return scenario, nil
}

func (s *Service) UpdateScenario(ctx context.Context, id string, req *domain.SaveScenarioRequest) (*domain.ForecastingScenario, error) {
	if req == nil {
		return nil, newScenarioError(ErrInvalidScenario, apiErrors.ErrInvalidRequest, id, "Corpo da requisição vazio")
	}

	scenario, err := s.findScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	if scenario.IsActive && req.Year != nil && *req.Year != scenario.Year {
		return nil, newScenarioError(ErrActiveYearChange, apiErrors.ErrScenarioConflict, id, "Desative o cenário antes de mudar o ano")
	}

	applyRequest(scenario, req)

	if err := validateScenario(scenario); err != nil {
		return nil, err
	}

	scenario.Outputs = forecasting.CalculateForecast(scenario.Inputs)
	s.metrics.ObserveForecast(metrics.SourceSave)

	if err := s.scenarioRepo.Update(ctx, scenario); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newScenarioError(ErrScenarioNotFound, apiErrors.ErrScenarioNotFound, id, "")
		}
		return nil, newScenarioError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, id, "Erro ao atualizar cenário")
	}

	log.ForContext(ctx).WithField("scenario_id", id).Info("scenario: cenário atualizado")

	return scenario, nil
}

// GetScenario devolve o cenário com outputs recalculados a partir dos inputs salvos.
// Divergência com os outputs gravados é registrada, mas não corrigida na leitura.
func (s *Service) GetScenario(ctx context.Context, id string) (*domain.ForecastingScenario, error) {
	scenario, err := s.findScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	s.refreshOutputs(ctx, scenario, metrics.SourceRead)
	return scenario, nil
}

func (s *Service) GetScenarioBreakdown(ctx context.Context, id string) ([]domain.MonthBreakdown, error) {
	scenario, err := s.findScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveForecast(metrics.SourceRead)
	return forecasting.CalculateMonthlyBreakdown(scenario.Inputs), nil
}

func (s *Service) ListScenarios(ctx context.Context, year int) ([]*domain.ForecastingScenario, error) {
	scenarios, err := s.scenarioRepo.List(ctx, year)
	if err != nil {
		return nil, newScenarioError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "", "Erro ao listar cenários")
	}

	for _, scenario := range scenarios {
		s.refreshOutputs(ctx, scenario, metrics.SourceRead)
	}

	return scenarios, nil
}

func (s *Service) DeleteScenario(ctx context.Context, id string) error {
	if err := s.scenarioRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newScenarioError(ErrScenarioNotFound, apiErrors.ErrScenarioNotFound, id, "")
		}
		return newScenarioError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, id, "Erro ao remover cenário")
	}

	log.ForContext(ctx).WithField("scenario_id", id).Info("scenario: cenário removido")
	return nil
}

// ActivateScenario torna o cenário a referência do seu ano; os demais do mesmo ano são desativados
func (s *Service) ActivateScenario(ctx context.Context, id string) (*domain.ForecastingScenario, error) {
	scenario, err := s.findScenario(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.scenarioRepo.Activate(ctx, id, scenario.Year); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newScenarioError(ErrScenarioNotFound, apiErrors.ErrScenarioNotFound, id, "")
		}
		return nil, newScenarioError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrScenarioConflict, id, "Erro ao ativar cenário")
	}

	scenario.IsActive = true
	s.refreshOutputs(ctx, scenario, metrics.SourceRead)

	log.ForContext(ctx).WithFields(log.Fields{
		"scenario_id": id,
		"year":        scenario.Year,
	}).Info("scenario: cenário ativado")

	return scenario, nil
}

func (s *Service) CompareScenarios(ctx context.Context, baseID, otherID string) (*domain.ScenarioComparison, error) {
	base, err := s.GetScenario(ctx, baseID)
	if err != nil {
		return nil, err
	}

	other, err := s.GetScenario(ctx, otherID)
	if err != nil {
		return nil, err
	}

	quarterly, annual, booked := forecasting.CompareOutputs(base.Outputs, other.Outputs)

	return &domain.ScenarioComparison{
		BaseID:          base.ID,
		OtherID:         other.ID,
		Quarterly:       quarterly,
		Annual:          annual,
		Booked:          booked,
		ConversionsDiff: other.Outputs.TotalConversions - base.Outputs.TotalConversions,
	}, nil
}

// InputsFromPipeline monta specsPerMonth a partir dos deals com spec assinada no ano
func (s *Service) InputsFromPipeline(ctx context.Context, year int, conversionRate float64, avgMonthlyFee decimal.Decimal) (*domain.ScenarioInputs, error) {
	if year == 0 {
		year = s.cfg.Forecast.FiscalYear(s.now())
	}

	if year < minYear || year > maxYear {
		return nil, newScenarioError(fmt.Errorf("%w: %w", ErrInvalidPipelineSet, domain.ErrInvalidYear), apiErrors.ErrInvalidRequest, "", fmt.Sprintf("ano %d", year))
	}

	deals, err := s.dealRepo.ListSignedInYear(ctx, year)
	if err != nil {
		return nil, newScenarioError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "", "Erro ao buscar deals do pipeline")
	}

	values := make([]domain.PipelineDeal, 0, len(deals))
	for _, deal := range deals {
		values = append(values, *deal)
	}

	inputs := &domain.ScenarioInputs{
		SpecsPerMonth:  forecasting.SpecsFromDeals(values, year),
		ConversionRate: conversionRate,
		AvgMonthlyFee:  avgMonthlyFee,
	}

	if err := validateInputs(*inputs); err != nil {
		return nil, err
	}

	return inputs, nil
}

// RecalculateAll recalcula todos os cenários e regrava os que divergirem
func (s *Service) RecalculateAll(ctx context.Context) (RecalcResult, error) {
	var result RecalcResult

	scenarios, err := s.scenarioRepo.List(ctx, 0)
	if err != nil {
		return result, newScenarioError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "", "Erro ao listar cenários")
	}

	for _, scenario := range scenarios {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		result.Checked++
		logger := log.ForContext(ctx).WithField("scenario_id", scenario.ID)

		if err := scenario.Inputs.Validate(); err != nil {
			logger.WithError(err).Warn("scenario: inputs inválidos, cenário ignorado no recálculo")
			result.Skipped++
			continue
		}

		fresh := forecasting.CalculateForecast(scenario.Inputs)
		s.metrics.ObserveForecast(metrics.SourceRecalc)

		if fresh.Equal(scenario.Outputs) {
			continue
		}

		if err := s.scenarioRepo.UpdateOutputs(ctx, scenario.ID, fresh); err != nil {
			logger.WithError(err).Error("scenario: erro ao regravar outputs")
			result.Skipped++
			continue
		}

		s.metrics.ObserveDrift()
		result.Updated++
	}

	return result, nil
}

func (s *Service) findScenario(ctx context.Context, id string) (*domain.ForecastingScenario, error) {
	if strings.TrimSpace(id) == "" {
		return nil, newScenarioError(ErrInvalidScenario, apiErrors.ErrMissingRequiredData, id, "ID do cenário não fornecido")
	}

	scenario, err := s.scenarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, newScenarioError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, id, "Erro ao buscar cenário")
	}

	if scenario == nil {
		return nil, newScenarioError(ErrScenarioNotFound, apiErrors.ErrScenarioNotFound, id, "")
	}

	return scenario, nil
}

func (s *Service) refreshOutputs(ctx context.Context, scenario *domain.ForecastingScenario, source string) {
	fresh := forecasting.CalculateForecast(scenario.Inputs)
	s.metrics.ObserveForecast(source)

	if !fresh.Equal(scenario.Outputs) {
		log.ForContext(ctx).WithFields(log.Fields{
			"scenario_id":     scenario.ID,
			"scenario_stored": scenario.Outputs.AnnualRevenue.String(),
			"scenario_fresh":  fresh.AnnualRevenue.String(),
		}).Warn("scenario: outputs salvos divergem do recálculo")
		s.metrics.ObserveDrift()
	}

	scenario.Outputs = fresh
}

func applyRequest(scenario *domain.ForecastingScenario, req *domain.SaveScenarioRequest) {
	if req.Name != nil {
		scenario.Name = strings.TrimSpace(*req.Name)
	}

	if req.Description != nil {
		scenario.Description = *req.Description
	}

	if req.Type != nil {
		scenario.Type = *req.Type
	}

	if req.Year != nil {
		scenario.Year = *req.Year
	}

	if req.Inputs != nil {
		scenario.Inputs = *req.Inputs
	}
}

func validateScenario(scenario *domain.ForecastingScenario) error {
	if scenario.Name == "" {
		return newScenarioError(fmt.Errorf("%w: %w", ErrInvalidScenario, domain.ErrMissingScenarioName), apiErrors.ErrMissingRequiredData, scenario.ID, "Nome é obrigatório")
	}

	if !scenario.Type.IsValid() {
		return newScenarioError(fmt.Errorf("%w: %w", ErrInvalidScenario, domain.ErrInvalidScenarioType), apiErrors.ErrInvalidFormat, scenario.ID, string(scenario.Type))
	}

	if scenario.Year < minYear || scenario.Year > maxYear {
		return newScenarioError(fmt.Errorf("%w: %w", ErrInvalidScenario, domain.ErrInvalidYear), apiErrors.ErrInvalidFormat, scenario.ID, fmt.Sprintf("ano %d", scenario.Year))
	}

	return validateInputs(scenario.Inputs)
}

func validateInputs(inputs domain.ScenarioInputs) error {
	if err := inputs.Validate(); err != nil {
		return newScenarioError(fmt.Errorf("%w: %w", ErrInvalidInputs, err), apiErrors.ErrInvalidScenarioInputs, "", "")
	}
	return nil
}
