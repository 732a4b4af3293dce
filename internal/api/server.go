package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/goal-tracker-api/internal/api/handler"
	"github.com/vfg2006/goal-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/goal-tracker-api/internal/config"
	"github.com/vfg2006/goal-tracker-api/internal/metrics"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/pipeline"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/log"
	"github.com/vfg2006/goal-tracker-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services agrupa as dependências expostas pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Scenarios     scenario.ScenarioService
	Pipeline      pipeline.PipelineService
	Reporting     reporting.ReportingService
	CronJobs      handler.CronJobServices
	DB            handler.Pinger
	Metrics       *metrics.Metrics
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services) (*Server, error) {
	rt := NewHandler(cfg, services)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           rt,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta router e middlewares globais
func NewHandler(cfg *config.Config, services Services) http.Handler {
	routes := []router.ConfigRouter{
		router.WithMetrics(services.Metrics),
		router.WithRoutes(handler.Healthcheck(services.DB)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Forecast(services.Scenarios)...),
		router.WithRoutes(handler.Scenarios(services.Scenarios)...),
		router.WithRoutes(handler.Pipeline(services.Pipeline, services.Scenarios)...),
		router.WithRoutes(handler.Reports(services.Reporting)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	}

	var publicPaths []string
	if cfg.Metrics.Enabled && services.Metrics != nil {
		routes = append(routes, router.WithRoutes(router.Route{
			Path:    cfg.Metrics.Path,
			Method:  http.MethodGet,
			Handler: services.Metrics.Handler(),
		}))
		publicPaths = append(publicPaths, cfg.Metrics.Path)
	}

	rt := router.New(routes...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator, publicPaths...),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	log.L.Info("Servidor HTTP desligado com sucesso")
	return nil
}
