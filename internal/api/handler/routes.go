package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

func Healthcheck(counter SalesCounter) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(counter),
		},
	}
}

func Metrics(registry *metrics.Registry) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: registry.Handler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/token",
			Method:  http.MethodPost,
			Handler: IssueToken(service),
		},
	}
}

func Sales(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales/series",
			Method:      http.MethodGet,
			Handler:     GetSalesSeries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/years",
			Method:      http.MethodGet,
			Handler:     GetYearComparison(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/regions",
			Method:      http.MethodGet,
			Handler:     GetRegions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pareto",
			Method:      http.MethodGet,
			Handler:     GetPareto(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Analysis(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/analysis/decomposition",
			Method:      http.MethodGet,
			Handler:     GetDecomposition(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/analysis/autocorrelation",
			Method:      http.MethodGet,
			Handler:     GetAutocorrelation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/kpis/next-month",
			Method:      http.MethodGet,
			Handler:     GetNextMonthTargets(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CustomerRanking(service ranking.RankingService, defaultSize int) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/customers/ranking",
			Method:      http.MethodGet,
			Handler:     GetCustomerRanking(service, defaultSize),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
