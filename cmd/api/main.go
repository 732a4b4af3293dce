package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/goal-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/goal-tracker-api/infrastructure/repository"
	"github.com/vfg2006/goal-tracker-api/internal/api"
	"github.com/vfg2006/goal-tracker-api/internal/api/handler"
	"github.com/vfg2006/goal-tracker-api/internal/config"
	"github.com/vfg2006/goal-tracker-api/internal/metrics"
	"github.com/vfg2006/goal-tracker-api/internal/scheduler"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/pipeline"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}

	log.Setup(cfg.App.LogLevel)
	log.L.WithField("level", cfg.App.LogLevel).Info("Nível de log configurado")

	// valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	userRepo := repository.NewUserRepository(pgConn)
	scenarioRepo := repository.NewScenarioRepository(pgConn)
	dealRepo := repository.NewPipelineDealRepository(pgConn)
	actualRepo := repository.NewRevenueActualRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	scenarioService := scenario.NewService(scenarioRepo, dealRepo, cfg, m)
	pipelineService := pipeline.NewService(dealRepo, m)
	reportingService := reporting.NewService(actualRepo, scenarioRepo, cfg, m)

	recalcService := scheduler.NewScenarioRecalcService(scenarioService, cfg, m)
	if err := recalcService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de recálculo de cenários")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Scenarios:     scenarioService,
		Pipeline:      pipelineService,
		Reporting:     reportingService,
		CronJobs: handler.CronJobServices{
			handler.CronJobTypeScenarioRecalc: recalcService,
		},
		DB:      pgConn,
		Metrics: m,
	})
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar servidor")
	}

	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("Servidor finalizado com erro")
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
