package handler

import (
	"net/http"

	"github.com/gonqgg-debug/facturAI-sub006/infrastructure/integrator/marketing"
	"github.com/gonqgg-debug/facturAI-sub006/internal/api/handler/router"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/accounting"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/authenticating"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/insighting"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/inventorying"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/purchasing"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/selling"
	"github.com/gonqgg-debug/facturAI-sub006/internal/usecases/taxreporting"
	"github.com/gonqgg-debug/facturAI-sub006/pkg/middleware"
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

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/change-pin",
			Method:      http.MethodPost,
			Handler:     ChangePIN(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/reset-pin",
			Method:      http.MethodPost,
			Handler:     ResetPIN(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Sales(service selling.Seller) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sales",
			Method:      http.MethodPost,
			Handler:     CreateSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales",
			Method:      http.MethodGet,
			Handler:     ListSales(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/daily-summary",
			Method:      http.MethodGet,
			Handler:     GetDailySummary(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id",
			Method:      http.MethodGet,
			Handler:     GetSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/sales/:id/void",
			Method:      http.MethodPost,
			Handler:     VoidSale(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Products(service inventorying.Inventorier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/products",
			Method:      http.MethodGet,
			Handler:     ListProducts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products",
			Method:      http.MethodPost,
			Handler:     CreateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/inventory/low-stock",
			Method:      http.MethodGet,
			Handler:     ListLowStock(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/inventory/barcode/:barcode",
			Method:      http.MethodGet,
			Handler:     GetProductByBarcode(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodGet,
			Handler:     GetProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/products/:id",
			Method:      http.MethodPut,
			Handler:     UpdateProduct(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/products/:id/adjust-stock",
			Method:      http.MethodPost,
			Handler:     AdjustStock(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/products/:id/movements",
			Method:      http.MethodGet,
			Handler:     ListMovements(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
	}
}

func Purchases(service purchasing.Purchaser) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/suppliers",
			Method:      http.MethodGet,
			Handler:     ListSuppliers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/suppliers",
			Method:      http.MethodPost,
			Handler:     CreateSupplier(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/suppliers/:id",
			Method:      http.MethodGet,
			Handler:     GetSupplier(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/suppliers/:id",
			Method:      http.MethodPut,
			Handler:     UpdateSupplier(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/purchases",
			Method:      http.MethodGet,
			Handler:     ListPurchases(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/purchases",
			Method:      http.MethodPost,
			Handler:     CreatePurchase(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/purchases/:id",
			Method:      http.MethodGet,
			Handler:     GetPurchase(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/purchases/:id/order",
			Method:      http.MethodPost,
			Handler:     MarkPurchaseOrdered(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/purchases/:id/receive",
			Method:      http.MethodPost,
			Handler:     ReceivePurchase(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/purchases/:id/close",
			Method:      http.MethodPost,
			Handler:     ClosePurchase(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Accounting(service accounting.Accountant) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounting/entries",
			Method:      http.MethodGet,
			Handler:     ListJournalEntries(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/accounting/entries",
			Method:      http.MethodPost,
			Handler:     CreateJournalEntry(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/accounting/trial-balance",
			Method:      http.MethodGet,
			Handler:     GetTrialBalance(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/accounting/accounts",
			Method:      http.MethodGet,
			Handler:     ListAccounts(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/accounting/accounts",
			Method:      http.MethodPost,
			Handler:     CreateAccount(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func TaxReports(service taxreporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/tax-reports/:kind/periods",
			Method:      http.MethodGet,
			Handler:     ListDGIIReportPeriods(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/tax-reports/:kind",
			Method:      http.MethodGet,
			Handler:     GetDGIIReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/tax-reports/:kind/generate",
			Method:      http.MethodPost,
			Handler:     GenerateDGIIReport(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/tax-reports/:kind/excel",
			Method:      http.MethodGet,
			Handler:     DownloadDGIIReportExcel(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/insights/segments",
			Method:      http.MethodGet,
			Handler:     GetCustomerSegments(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/insights/hourly",
			Method:      http.MethodGet,
			Handler:     GetHourlyStats(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
		{
			Path:        "/v1/insights/forecast",
			Method:      http.MethodGet,
			Handler:     GetTrafficForecast(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/realtime",
			Method:      http.MethodGet,
			Handler:     GetRealTimeInsight(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights/snapshot",
			Method:      http.MethodGet,
			Handler:     GetLatestSnapshot(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrContable()},
		},
	}
}

func Marketing(insighter insighting.Insighter, integrator marketing.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/marketing/suggestions",
			Method:      http.MethodGet,
			Handler:     SuggestCampaigns(insighter, integrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

// CronJobs retorna las rutas de administración de tareas programadas
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
