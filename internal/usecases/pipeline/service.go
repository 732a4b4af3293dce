package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/goal-tracker-api/infrastructure/repository"
	"github.com/vfg2006/goal-tracker-api/internal/domain"
	"github.com/vfg2006/goal-tracker-api/internal/forecasting"
	"github.com/vfg2006/goal-tracker-api/internal/metrics"
	"github.com/vfg2006/goal-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
	"github.com/vfg2006/goal-tracker-api/pkg/utils"
)

type PipelineService interface {
	CreateDeal(ctx context.Context, req *domain.SaveDealRequest, author *domain.Claims) (*domain.PipelineDeal, error)
	UpdateDeal(ctx context.Context, id string, req *domain.SaveDealRequest) (*domain.PipelineDeal, error)
	ChangeStage(ctx context.Context, id string, req *domain.ChangeStageRequest) (*domain.PipelineDeal, error)
	GetDeal(ctx context.Context, id string) (*domain.PipelineDeal, error)
	ListDeals(ctx context.Context, stage domain.DealStage) ([]*domain.PipelineDeal, error)
	DeleteDeal(ctx context.Context, id string) error
	Summary(ctx context.Context) (*domain.PipelineValuation, error)
}

type Service struct {
	dealRepo repository.PipelineDealRepository
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewService(dealRepo repository.PipelineDealRepository, m *metrics.Metrics) *Service {
	return &Service{
		dealRepo: dealRepo,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *Service) CreateDeal(ctx context.Context, req *domain.SaveDealRequest, author *domain.Claims) (*domain.PipelineDeal, error) {
	if req == nil {
		return nil, newPipelineError(ErrInvalidDeal, apiErrors.ErrInvalidRequest, "", "Corpo da requisição vazio")
	}

	deal := &domain.PipelineDeal{Stage: domain.DealStageProspect}

	if req.Stage != nil {
		if !req.Stage.IsValid() {
			return nil, newPipelineError(ErrInvalidStage, apiErrors.ErrInvalidDealStage, "", string(*req.Stage))
		}
		deal.Stage = *req.Stage
	}
	deal.Probability = deal.Stage.DefaultProbability()

	if err := applyRequest(deal, req); err != nil {
		return nil, err
	}
	s.fillStageDates(deal)

	if err := validateDeal(deal); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, newPipelineError(fmt.Errorf("%w: %w", ErrIDGeneration, err), apiErrors.ErrInternalServer, "", "")
	}

	deal.ID = id
	if author != nil {
		deal.CreatedBy = author.UserID
		deal.CreatedByName = author.FullName()
	}

	if err := s.dealRepo.Create(ctx, deal); err != nil {
		return nil, newPipelineError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, deal.ID, "Erro ao salvar deal")
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"deal_id":    deal.ID,
		"deal_stage": deal.Stage,
	}).Info("pipeline: deal criado")

	return deal, nil
}

// UpdateDeal altera os dados do deal. Mudança de estágio segue as mesmas regras de ChangeStage.
func (s *Service) UpdateDeal(ctx context.Context, id string, req *domain.SaveDealRequest) (*domain.PipelineDeal, error) {
	if req == nil {
		return nil, newPipelineError(ErrInvalidDeal, apiErrors.ErrInvalidRequest, id, "Corpo da requisição vazio")
	}

	deal, err := s.findDeal(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Stage != nil && *req.Stage != deal.Stage {
		if err := moveStage(deal, *req.Stage, req.Probability); err != nil {
			return nil, err
		}
	}

	if err := applyRequest(deal, req); err != nil {
		return nil, err
	}
	s.fillStageDates(deal)

	if err := validateDeal(deal); err != nil {
		return nil, err
	}

	if err := s.save(ctx, deal); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithField("deal_id", id).Info("pipeline: deal atualizado")

	return deal, nil
}

// ChangeStage move o deal no funil. Sem probabilidade explícita, usa o padrão do estágio.
func (s *Service) ChangeStage(ctx context.Context, id string, req *domain.ChangeStageRequest) (*domain.PipelineDeal, error) {
	if req == nil {
		return nil, newPipelineError(ErrInvalidStage, apiErrors.ErrInvalidRequest, id, "Corpo da requisição vazio")
	}

	deal, err := s.findDeal(ctx, id)
	if err != nil {
		return nil, err
	}

	from := deal.Stage
	if err := moveStage(deal, req.Stage, req.Probability); err != nil {
		return nil, err
	}

	if req.Notes != nil {
		deal.Notes = *req.Notes
	}
	s.fillStageDates(deal)

	if err := validateDeal(deal); err != nil {
		return nil, err
	}

	if err := s.save(ctx, deal); err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"deal_id":         id,
		"deal_from":       from,
		"deal_to":         deal.Stage,
		"spec_signed":     utils.FormatDate(deal.SpecSignedDate),
		"conversion_date": utils.FormatDate(deal.ConversionDate),
	}).Info("pipeline: estágio alterado")

	return deal, nil
}

func (s *Service) GetDeal(ctx context.Context, id string) (*domain.PipelineDeal, error) {
	return s.findDeal(ctx, id)
}

// ListDeals lista os deals; estágio vazio lista todos
func (s *Service) ListDeals(ctx context.Context, stage domain.DealStage) ([]*domain.PipelineDeal, error) {
	if stage != "" && !stage.IsValid() {
		return nil, newPipelineError(ErrInvalidStage, apiErrors.ErrInvalidDealStage, "", string(stage))
	}

	deals, err := s.dealRepo.List(ctx, stage)
	if err != nil {
		return nil, newPipelineError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "", "Erro ao listar deals")
	}

	return deals, nil
}

func (s *Service) DeleteDeal(ctx context.Context, id string) error {
	if err := s.dealRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newPipelineError(ErrDealNotFound, apiErrors.ErrDealNotFound, id, "")
		}
		return newPipelineError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, id, "Erro ao remover deal")
	}

	log.ForContext(ctx).WithField("deal_id", id).Info("pipeline: deal removido")
	return nil
}

// Summary avalia o pipeline inteiro e atualiza os gauges de métricas
func (s *Service) Summary(ctx context.Context) (*domain.PipelineValuation, error) {
	deals, err := s.dealRepo.List(ctx, "")
	if err != nil {
		return nil, newPipelineError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, "", "Erro ao listar deals")
	}

	values := make([]domain.PipelineDeal, 0, len(deals))
	for _, deal := range deals {
		values = append(values, *deal)
	}

	valuation := forecasting.ValuePipeline(values)
	s.metrics.SetPipelineValue(valuation.TotalPipeline, valuation.WeightedPipeline)

	return &valuation, nil
}

func (s *Service) findDeal(ctx context.Context, id string) (*domain.PipelineDeal, error) {
	if strings.TrimSpace(id) == "" {
		return nil, newPipelineError(ErrInvalidDeal, apiErrors.ErrMissingRequiredData, id, "ID do deal não fornecido")
	}

	deal, err := s.dealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, newPipelineError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, id, "Erro ao buscar deal")
	}

	if deal == nil {
		return nil, newPipelineError(ErrDealNotFound, apiErrors.ErrDealNotFound, id, "")
	}

	return deal, nil
}

func (s *Service) save(ctx context.Context, deal *domain.PipelineDeal) error {
	if err := s.dealRepo.Update(ctx, deal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newPipelineError(ErrDealNotFound, apiErrors.ErrDealNotFound, deal.ID, "")
		}
		return newPipelineError(fmt.Errorf("%w: %w", ErrDatabaseOperation, err), apiErrors.ErrDatabaseOperation, deal.ID, "Erro ao atualizar deal")
	}
	return nil
}

// fillStageDates preenche as datas que o estágio exige e que não vieram na requisição
func (s *Service) fillStageDates(deal *domain.PipelineDeal) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	if deal.Stage.HasSignedSpec() && deal.SpecSignedDate == nil {
		deal.SpecSignedDate = &today
	}

	if deal.Stage == domain.DealStageConverted && deal.ConversionDate == nil {
		deal.ConversionDate = &today
	}
}

func moveStage(deal *domain.PipelineDeal, to domain.DealStage, probability *int) error {
	if !to.IsValid() {
		return newPipelineError(ErrInvalidStage, apiErrors.ErrInvalidDealStage, deal.ID, string(to))
	}

	if deal.Stage.IsTerminal() && to != deal.Stage {
		return newPipelineError(ErrDealClosed, apiErrors.ErrDealClosed, deal.ID, fmt.Sprintf("%s -> %s", deal.Stage, to))
	}

	deal.Stage = to
	deal.Probability = to.DefaultProbability()
	if probability != nil {
		deal.Probability = *probability
	}

	return nil
}

func applyRequest(deal *domain.PipelineDeal, req *domain.SaveDealRequest) error {
	if req.ClientName != nil {
		deal.ClientName = strings.TrimSpace(*req.ClientName)
	}

	if req.Probability != nil {
		deal.Probability = *req.Probability
	}

	if req.MonthlyFee != nil {
		deal.MonthlyFee = *req.MonthlyFee
	}

	if req.Notes != nil {
		deal.Notes = *req.Notes
	}

	if req.SpecSignedDate != nil {
		date, err := utils.ParseDate(*req.SpecSignedDate)
		if err != nil {
			return newPipelineError(fmt.Errorf("%w: %w", ErrInvalidDeal, err), apiErrors.ErrInvalidFormat, deal.ID, "specSignedDate deve estar no formato YYYY-MM-DD")
		}
		deal.SpecSignedDate = date
	}

	if req.ConversionDate != nil {
		date, err := utils.ParseDate(*req.ConversionDate)
		if err != nil {
			return newPipelineError(fmt.Errorf("%w: %w", ErrInvalidDeal, err), apiErrors.ErrInvalidFormat, deal.ID, "conversionDate deve estar no formato YYYY-MM-DD")
		}
		deal.ConversionDate = date
	}

	return nil
}

func validateDeal(deal *domain.PipelineDeal) error {
	if deal.ClientName == "" {
		return newPipelineError(ErrInvalidDeal, apiErrors.ErrMissingRequiredData, deal.ID, "Nome do cliente é obrigatório")
	}

	if deal.Probability < 0 || deal.Probability > 100 {
		return newPipelineError(ErrInvalidDeal, apiErrors.ErrInvalidDeal, deal.ID, fmt.Sprintf("probabilidade %d fora de 0-100", deal.Probability))
	}

	if deal.MonthlyFee.IsNegative() {
		return newPipelineError(ErrInvalidDeal, apiErrors.ErrInvalidDeal, deal.ID, "Fee mensal não pode ser negativo")
	}

	if deal.SpecSignedDate != nil && deal.ConversionDate != nil && deal.ConversionDate.Before(*deal.SpecSignedDate) {
		return newPipelineError(ErrInvalidDeal, apiErrors.ErrInvalidDeal, deal.ID, "Conversão anterior à assinatura da spec")
	}

	return nil
}
