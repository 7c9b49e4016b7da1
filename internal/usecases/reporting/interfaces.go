package reporting

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// SalesSource fornece um snapshot imutável dos registros normalizados
type SalesSource interface {
	ListSales(ctx context.Context, filters *domain.SalesFilters) ([]domain.SaleRecord, error)
}

type Reporter interface {
	GetSalesSeries(ctx context.Context, filters *domain.SalesFilters, granularity domain.Granularity) (*domain.TimeSeries, error)
	GetYearComparison(ctx context.Context, years []int) (*domain.YearComparison, error)
	GetRegionAnalysis(ctx context.Context) ([]domain.RegionSummary, error)
	GetPareto(ctx context.Context, key domain.Field, months []int) (domain.ParetoResult, error)
	GetDecomposition(ctx context.Context, period int) (*domain.DecompositionResult, error)
	GetAutocorrelation(ctx context.Context, maxLag int) (domain.AcfResult, error)
	GetNextMonthTargets(ctx context.Context) (*domain.NextMonthTargets, error)
	GetDashboard(ctx context.Context, req domain.DashboardRequest) (*domain.Dashboard, error)
}
