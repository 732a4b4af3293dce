package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/goal-tracker-api/internal/config"
	"github.com/vfg2006/goal-tracker-api/internal/metrics"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
)

// ScenarioRecalculator é a parte do usecase de cenários usada pelo job
type ScenarioRecalculator interface {
	RecalculateAll(ctx context.Context) (scenario.RecalcResult, error)
}

// ScenarioRecalcService recalcula periodicamente os outputs salvos de todos os cenários
type ScenarioRecalcService struct {
	scheduler    *gocron.Scheduler
	cronSchedule string
	enabled      bool
	recalculator ScenarioRecalculator
	metrics      *metrics.Metrics

	baseCtx context.Context

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          scenario.RecalcResult
	lastError           string
}

func NewScenarioRecalcService(recalculator ScenarioRecalculator, appConfig *config.Config, m *metrics.Metrics) *ScenarioRecalcService {
	log.L.WithFields(log.Fields{
		"cron_schedule": appConfig.ScenarioRecalc.CronSchedule,
		"sync_enabled":  appConfig.ScenarioRecalc.Enabled,
	}).Info("scheduler: configuração do recálculo de cenários carregada")

	return &ScenarioRecalcService{
		scheduler:    gocron.NewScheduler(time.UTC),
		cronSchedule: appConfig.ScenarioRecalc.CronSchedule,
		enabled:      appConfig.ScenarioRecalc.Enabled,
		recalculator: recalculator,
		metrics:      m,
		baseCtx:      context.Background(),
	}
}

// Start agenda o job e para o agendador quando ctx for cancelado
func (s *ScenarioRecalcService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.enabled {
		log.L.Info("scheduler: recálculo de cenários desabilitado por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.cronSchedule).Do(func() {
		s.recalculate(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recálculo de cenários: %w", err)
	}

	s.scheduler.StartAsync()
	log.L.WithField("cron", s.cronSchedule).Info("scheduler: recálculo de cenários agendado")

	go func() {
		<-ctx.Done()
		log.L.Info("scheduler: parando recálculo de cenários")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara um recálculo fora do agendamento. Retorna false se já houver um em andamento.
func (s *ScenarioRecalcService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.L.Info("scheduler: recálculo de cenários já em andamento, ignorando solicitação manual")
		return false
	}

	go s.recalculate(s.baseCtx)
	return true
}

func (s *ScenarioRecalcService) recalculate(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("scheduler: recálculo de cenários já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	ctx, correlationID := log.WithCorrelationID(ctx)
	logger := log.ForContext(ctx)
	logger.Info("scheduler: iniciando recálculo de cenários")

	started := time.Now()
	result, err := s.recalculator.RecalculateAll(ctx)
	elapsed := time.Since(started)

	s.metrics.ObserveRecalc(elapsed, err)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastResult = result
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.syncMutex.Unlock()

	if err != nil {
		logger.WithError(err).Error("scheduler: erro no recálculo de cenários")
		return
	}

	logger.WithFields(log.Fields{
		"correlation_id": correlationID,
		"duration":       elapsed.String(),
		"checked":        result.Checked,
		"updated":        result.Updated,
		"skipped":        result.Skipped,
	}).Info("scheduler: recálculo de cenários concluído")
}

// IsRunning indica se há um recálculo em execução
func (s *ScenarioRecalcService) IsRunning() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *ScenarioRecalcService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.enabled,
		"sync_cron":              s.cronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_result":            s.lastResult,
		"last_error":             s.lastError,
	}
}
