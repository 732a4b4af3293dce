package handler

import (
	"net/http"

	"github.com/vfg2006/goal-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/pipeline"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/reporting"
	"github.com/vfg2006/goal-tracker-api/internal/usecases/scenario"
	"github.com/vfg2006/goal-tracker-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Forecast(service scenario.ScenarioService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/forecast/calculate",
			Method:      http.MethodPost,
			Handler:     CalculateForecast(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/forecast/breakdown",
			Method:      http.MethodPost,
			Handler:     CalculateBreakdown(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Scenarios(service scenario.ScenarioService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/scenarios",
			Method:      http.MethodGet,
			Handler:     ListScenarios(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scenarios",
			Method:      http.MethodPost,
			Handler:     CreateScenario(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scenarios/:id",
			Method:      http.MethodGet,
			Handler:     GetScenario(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scenarios/:id",
			Method:      http.MethodPut,
			Handler:     UpdateScenario(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scenarios/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteScenario(service),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/scenarios/:id/activate",
			Method:      http.MethodPost,
			Handler:     ActivateScenario(service),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/scenarios/:id/breakdown",
			Method:      http.MethodGet,
			Handler:     GetScenarioBreakdown(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/scenarios/:id/compare/:other_id",
			Method:      http.MethodGet,
			Handler:     CompareScenarios(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Pipeline(service pipeline.PipelineService, scenarioService scenario.ScenarioService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pipeline/seed",
			Method:      http.MethodGet,
			Handler:     SeedFromPipeline(scenarioService),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pipeline/summary",
			Method:      http.MethodGet,
			Handler:     PipelineSummary(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pipeline/deals",
			Method:      http.MethodGet,
			Handler:     ListDeals(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pipeline/deals",
			Method:      http.MethodPost,
			Handler:     CreateDeal(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pipeline/deals/:id",
			Method:      http.MethodGet,
			Handler:     GetDeal(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pipeline/deals/:id",
			Method:      http.MethodPut,
			Handler:     UpdateDeal(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pipeline/deals/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteDeal(service),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/pipeline/deals/:id/stage",
			Method:      http.MethodPost,
			Handler:     ChangeDealStage(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.ReportingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/actuals",
			Method:      http.MethodGet,
			Handler:     ListActuals(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/actuals",
			Method:      http.MethodPut,
			Handler:     RecordActual(service),
			Middlewares: middlewares{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/reports/plan-vs-actual",
			Method:      http.MethodGet,
			Handler:     PlanVsActual(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}
