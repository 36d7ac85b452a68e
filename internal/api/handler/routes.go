package handler

import (
	"net/http"

	"github.com/vfg2006/finance-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/billing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/expensing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/history"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service LoginService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Summaries(service history.Historian, clk clock.Clock, cfg config.History) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/summary",
			Method:  http.MethodGet,
			Handler: GetMonthlySummary(service, clk),
		},
		{
			Path:    "/v1/history",
			Method:  http.MethodGet,
			Handler: GetHistory(service, clk, cfg),
		},
		{
			Path:    "/v1/history/range",
			Method:  http.MethodGet,
			Handler: GetHistoryRange(service, clk),
		},
		{
			Path:    "/v1/snapshots/:period",
			Method:  http.MethodPost,
			Handler: CreateSnapshot(service, clk),
		},
	}
}

func Expenses(service expensing.Expenser, scheduler billing.Scheduler, clk clock.Clock, cfg config.Billing) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/expenses",
			Method:  http.MethodPost,
			Handler: CreateExpense(service, clk),
		},
		{
			Path:    "/v1/expenses",
			Method:  http.MethodGet,
			Handler: ListExpenses(service),
		},
		{
			Path:    "/v1/expenses/:id",
			Method:  http.MethodGet,
			Handler: GetExpense(service),
		},
		{
			Path:    "/v1/expenses/:id",
			Method:  http.MethodPut,
			Handler: UpdateExpense(service, clk),
		},
		{
			Path:    "/v1/expenses/:id/billing-status",
			Method:  http.MethodGet,
			Handler: GetBillingStatus(scheduler),
		},
		{
			Path:    "/v1/expenses/:id/pay",
			Method:  http.MethodPost,
			Handler: MarkExpensePaid(scheduler),
		},
		{
			Path:    "/v1/billing/upcoming",
			Method:  http.MethodGet,
			Handler: ListUpcomingPayments(scheduler, cfg),
		},
	}
}

func Sales(service selling.Seller) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales",
			Method:  http.MethodPost,
			Handler: CloseSale(service),
		},
		{
			Path:    "/v1/sales/:id/status",
			Method:  http.MethodPut,
			Handler: TransitionSaleStatus(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
