package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const component = "reporting"

// Nomes das visões do painel, usados como chave em Dashboard.Errors
const (
	ViewMonthlySales      = "monthly_sales"
	ViewSales             = "sales"
	ViewYearComparison    = "year_comparison"
	ViewRegions           = "regions"
	ViewParetoCategory    = "pareto_category"
	ViewParetoSubCategory = "pareto_sub_category"
	ViewCustomers         = "customers"
	ViewDecomposition     = "decomposition"
	ViewAutocorrelation   = "autocorrelation"
	ViewTargets           = "targets"
)

var _ Reporter = (*Service)(nil)

type Service struct {
	source  SalesSource
	cfg     config.Analytics
	metrics *metrics.Registry
	now     func() time.Time
}

func NewService(source SalesSource, cfg config.Analytics) *Service {
	return &Service{
		source: source,
		cfg:    cfg,
		now:    time.Now,
	}
}

// WithMetrics registra as falhas por visão do painel
func (s *Service) WithMetrics(m *metrics.Registry) *Service {
	s.metrics = m
	return s
}

func (s *Service) snapshot(ctx context.Context, filters *domain.SalesFilters) ([]domain.SaleRecord, error) {
	records, err := s.source.ListSales(ctx, filters)
	if err != nil {
		log.ForComponent(ctx, component).WithError(err).Error("Erro ao carregar vendas")
		return nil, err
	}
	return records, nil
}

// GetSalesSeries retorna a série reamostrada. As datas do filtro recortam a série
// já completa, para que buckets sem vendas dentro da janela apareçam com zero.
func (s *Service) GetSalesSeries(ctx context.Context, filters *domain.SalesFilters, granularity domain.Granularity) (*domain.TimeSeries, error) {
	records, err := s.snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	series := buildSalesSeries(records, filters, granularity)
	return &series, nil
}

func (s *Service) GetYearComparison(ctx context.Context, years []int) (*domain.YearComparison, error) {
	records, err := s.snapshot(ctx, &domain.SalesFilters{Years: years})
	if err != nil {
		return nil, err
	}

	return buildYearComparison(records, years), nil
}

func (s *Service) GetRegionAnalysis(ctx context.Context) ([]domain.RegionSummary, error) {
	records, err := s.snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	return buildRegionAnalysis(records), nil
}

func (s *Service) GetPareto(ctx context.Context, key domain.Field, months []int) (domain.ParetoResult, error) {
	records, err := s.snapshot(ctx, &domain.SalesFilters{Months: months})
	if err != nil {
		return nil, err
	}

	return buildPareto(records, key, months), nil
}

// GetDecomposition decompõe a série mensal; period <= 0 usa o período configurado
func (s *Service) GetDecomposition(ctx context.Context, period int) (*domain.DecompositionResult, error) {
	if period <= 0 {
		period = s.cfg.DecompositionPeriod
	}

	records, err := s.snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	result, err := buildDecomposition(records, period)
	if err != nil {
		log.ForComponent(ctx, component).WithError(err).Warn("Decomposição sazonal não calculável")
		return nil, err
	}
	return result, nil
}

// GetAutocorrelation calcula a ACF da série mensal; maxLag <= 0 usa o valor configurado
func (s *Service) GetAutocorrelation(ctx context.Context, maxLag int) (domain.AcfResult, error) {
	if maxLag <= 0 {
		maxLag = s.cfg.AcfMaxLag
	}

	records, err := s.snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	result, err := buildAutocorrelation(records, maxLag)
	if err != nil {
		log.ForComponent(ctx, component).WithError(err).Warn("Autocorrelação não calculável")
		return nil, err
	}
	return result, nil
}

func (s *Service) GetNextMonthTargets(ctx context.Context) (*domain.NextMonthTargets, error) {
	records, err := s.snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	return buildTargets(records, s.cfg.DecompositionPeriod, s.cfg.ForecastWindow), nil
}

// GetDashboard calcula todas as visões em paralelo sobre um único snapshot.
// Falhas de análise ficam registradas na própria visão; apenas falhas de
// carregamento ou cancelamento interrompem a requisição.
func (s *Service) GetDashboard(ctx context.Context, req domain.DashboardRequest) (*domain.Dashboard, error) {
	records, err := s.snapshot(ctx, nil)
	if err != nil {
		return nil, err
	}

	granularity := req.Granularity
	if granularity == "" {
		granularity = domain.GranularityMonth
	}

	dashboard := &domain.Dashboard{
		GeneratedAt: s.now(),
		Records:     len(records),
	}

	var mu sync.Mutex
	fail := func(view string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if dashboard.Errors == nil {
			dashboard.Errors = make(map[string]*domain.ViewError)
		}
		dashboard.Errors[view] = viewError(err)
		s.metrics.RecordViewError(view, dashboard.Errors[view].Code)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		series := buildSalesSeries(records, nil, domain.GranularityMonth)
		dashboard.MonthlySales = &series
		return gctx.Err()
	})

	g.Go(func() error {
		filters := &domain.SalesFilters{StartDate: req.StartDate, EndDate: req.EndDate}
		series := buildSalesSeries(records, filters, granularity)
		dashboard.Sales = &series
		return gctx.Err()
	})

	g.Go(func() error {
		dashboard.YearComparison = buildYearComparison(records, req.Years)
		return gctx.Err()
	})

	g.Go(func() error {
		dashboard.Regions = buildRegionAnalysis(records)
		return gctx.Err()
	})

	g.Go(func() error {
		dashboard.ParetoCategory = buildPareto(records, domain.FieldCategory, req.Months)
		return gctx.Err()
	})

	g.Go(func() error {
		dashboard.ParetoSubCategory = buildPareto(records, domain.FieldSubCategory, req.Months)
		return gctx.Err()
	})

	g.Go(func() error {
		customers, err := ranking.BuildCustomerRanking(records, s.cfg.RankingSize)
		if err != nil {
			fail(ViewCustomers, err)
			return nil
		}
		dashboard.Customers = customers
		return gctx.Err()
	})

	g.Go(func() error {
		decomposition, err := buildDecomposition(records, s.cfg.DecompositionPeriod)
		if err != nil {
			fail(ViewDecomposition, err)
			return nil
		}
		dashboard.Decomposition = decomposition
		return gctx.Err()
	})

	g.Go(func() error {
		acf, err := buildAutocorrelation(records, s.cfg.AcfMaxLag)
		if err != nil {
			fail(ViewAutocorrelation, err)
			return nil
		}
		dashboard.Autocorrelation = acf
		return gctx.Err()
	})

	g.Go(func() error {
		dashboard.Targets = buildTargets(records, s.cfg.DecompositionPeriod, s.cfg.ForecastWindow)
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		log.ForComponent(ctx, component).WithError(err).Warn("Cálculo do painel interrompido")
		return nil, err
	}

	log.ForComponent(ctx, component).
		WithField("sales_records", len(records)).
		WithField("sales_view_errors", len(dashboard.Errors)).
		Debug("Painel calculado")

	return dashboard, nil
}
