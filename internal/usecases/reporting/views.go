package reporting

import (
	"sort"
	"strconv"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// As funções abaixo são puras sobre o snapshot recebido e podem rodar em paralelo.

func filterRecords(records []domain.SaleRecord, filters *domain.SalesFilters) []domain.SaleRecord {
	if filters == nil {
		return records
	}

	out := make([]domain.SaleRecord, 0, len(records))
	for _, r := range records {
		if filters.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// buildSalesSeries reamostra os registros e recorta a janela de datas pelos inícios de bucket
func buildSalesSeries(records []domain.SaleRecord, filters *domain.SalesFilters, granularity domain.Granularity) domain.TimeSeries {
	var start, end *time.Time
	if filters != nil {
		if filters.StartDate != nil {
			s := analytics.BucketStart(*filters.StartDate, granularity)
			start = &s
		}
		end = filters.EndDate
		filters = &domain.SalesFilters{Years: filters.Years, Months: filters.Months}
	}

	series := analytics.Resample(filterRecords(records, filters), granularity)
	return series.Between(start, end)
}

func buildYearComparison(records []domain.SaleRecord, years []int) *domain.YearComparison {
	byYear := make(map[int][]domain.SaleRecord)
	for _, r := range filterRecords(records, &domain.SalesFilters{Years: years}) {
		byYear[r.Year] = append(byYear[r.Year], r)
	}

	sortedYears := make([]int, 0, len(byYear))
	for y := range byYear {
		sortedYears = append(sortedYears, y)
	}
	sort.Ints(sortedYears)

	comparison := &domain.YearComparison{Years: make([]domain.YearSeries, 0, len(sortedYears))}
	for _, year := range sortedYears {
		totals := analytics.Aggregate(byYear[year], domain.FieldMonth, domain.Reduction{}).Values(domain.MetricSum)

		months := make([]domain.MonthValue, 0, len(totals))
		for key, value := range totals {
			month, _ := strconv.Atoi(key)
			months = append(months, domain.MonthValue{Month: month, Value: value})
		}
		sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })

		comparison.Years = append(comparison.Years, domain.YearSeries{Year: year, Months: months})
	}

	return comparison
}

func buildRegionAnalysis(records []domain.SaleRecord) []domain.RegionSummary {
	byRegion := analytics.Aggregate(records, domain.FieldRegion, domain.Reduction{DistinctField: domain.FieldCustomerID})

	var customers int
	for _, v := range byRegion {
		customers += v.Distinct
	}

	summaries := make([]domain.RegionSummary, 0, len(byRegion))
	for region, v := range byRegion {
		share := 0.0
		if customers > 0 {
			share = utils.RoundWithTwoDecimalPlace(100 * float64(v.Distinct) / float64(customers))
		}
		summaries = append(summaries, domain.RegionSummary{
			Region:        region,
			CustomerCount: v.Distinct,
			CustomerShare: share,
			TotalSales:    v.Sum,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Region < summaries[j].Region })

	return summaries
}

func buildPareto(records []domain.SaleRecord, key domain.Field, months []int) domain.ParetoResult {
	filtered := filterRecords(records, &domain.SalesFilters{Months: months})
	return analytics.Pareto(analytics.Aggregate(filtered, key, domain.Reduction{}).Values(domain.MetricSum))
}

func buildDecomposition(records []domain.SaleRecord, period int) (*domain.DecompositionResult, error) {
	result, err := analytics.Decompose(analytics.Resample(records, domain.GranularityMonth), period)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func buildAutocorrelation(records []domain.SaleRecord, maxLag int) (domain.AcfResult, error) {
	return analytics.Autocorrelate(analytics.Resample(records, domain.GranularityMonth), maxLag)
}

// buildTargets estima as metas do próximo mês. A meta de vendas extrapola a tendência
// da decomposição; a de clientes extrapola a contagem mensal de clientes distintos,
// considerando apenas meses com vendas.
func buildTargets(records []domain.SaleRecord, period, window int) *domain.NextMonthTargets {
	targets := &domain.NextMonthTargets{}

	if decomposition, err := buildDecomposition(records, period); err != nil {
		targets.Sales.Error = viewError(err)
	} else if estimate, err := analytics.ForecastNextValues(decomposition.Trend.DefinedValues(), window); err != nil {
		targets.Sales.Error = viewError(err)
	} else {
		targets.Sales.Estimate = &estimate
	}

	customers := analytics.ResampleDistinct(records, domain.GranularityMonth, domain.FieldCustomerID)
	counts := make([]float64, 0, customers.Len())
	for _, p := range customers.Points {
		if p.Value > 0 {
			counts = append(counts, p.Value)
		}
	}

	if estimate, err := analytics.ForecastNextValues(counts, window); err != nil {
		targets.Customers.Error = viewError(err)
	} else {
		targets.Customers.Estimate = &estimate
	}

	return targets
}
