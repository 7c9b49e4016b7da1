package analytics

import (
	"sort"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Resample soma o valor das vendas em buckets de calendário da granularidade informada.
// A série cobre do menor ao maior pedido, sem lacunas: buckets sem vendas valem 0.
// A soma é feita em ordem crescente de data para manter o resultado reprodutível.
func Resample(records []domain.SaleRecord, granularity domain.Granularity) domain.TimeSeries {
	ordered := sortedByOrderDate(records)
	grid := newBucketGrid(ordered, granularity)

	values := make([]float64, grid.size)
	for _, r := range ordered {
		values[grid.index(r.OrderDate)] += r.Amount
	}

	return grid.series(values)
}

// ResampleDistinct conta, por bucket, os valores distintos de um campo (ex.: clientes por mês).
// Segue a mesma grade sem lacunas de Resample.
func ResampleDistinct(records []domain.SaleRecord, granularity domain.Granularity, field domain.Field) domain.TimeSeries {
	ordered := sortedByOrderDate(records)
	grid := newBucketGrid(ordered, granularity)

	seen := make([]map[string]struct{}, grid.size)
	for _, r := range ordered {
		i := grid.index(r.OrderDate)
		if seen[i] == nil {
			seen[i] = make(map[string]struct{})
		}
		seen[i][field.Of(r)] = struct{}{}
	}

	values := make([]float64, grid.size)
	for i, set := range seen {
		values[i] = float64(len(set))
	}

	return grid.series(values)
}

// BucketStart retorna o início do bucket de calendário que contém t
func BucketStart(t time.Time, granularity domain.Granularity) time.Time {
	switch granularity {
	case domain.GranularityDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case domain.GranularityQuarter:
		firstMonth := time.Month((QuarterOf(t)-1)*3 + 1)
		return time.Date(t.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
	case domain.GranularityYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return utils.MonthStart(t)
	}
}

// nextBucket avança um bucket a partir do início informado
func nextBucket(start time.Time, granularity domain.Granularity) time.Time {
	switch granularity {
	case domain.GranularityDay:
		return start.AddDate(0, 0, 1)
	case domain.GranularityQuarter:
		return start.AddDate(0, 3, 0)
	case domain.GranularityYear:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// bucketGrid é a grade de buckets entre o primeiro e o último pedido
type bucketGrid struct {
	granularity domain.Granularity
	first       time.Time
	size        int
}

func newBucketGrid(ordered []domain.SaleRecord, granularity domain.Granularity) bucketGrid {
	grid := bucketGrid{granularity: granularity}
	if len(ordered) == 0 {
		return grid
	}

	grid.first = BucketStart(ordered[0].OrderDate, granularity)
	grid.size = grid.index(ordered[len(ordered)-1].OrderDate) + 1
	return grid
}

// index calcula a posição do bucket de t por aritmética de calendário
func (g bucketGrid) index(t time.Time) int {
	start := BucketStart(t, g.granularity)
	switch g.granularity {
	case domain.GranularityDay:
		return int(start.Sub(g.first).Hours() / 24)
	case domain.GranularityQuarter:
		return (start.Year()-g.first.Year())*4 + (QuarterOf(start) - QuarterOf(g.first))
	case domain.GranularityYear:
		return start.Year() - g.first.Year()
	default:
		return (start.Year()-g.first.Year())*12 + int(start.Month()) - int(g.first.Month())
	}
}

func (g bucketGrid) series(values []float64) domain.TimeSeries {
	points := make([]domain.Point, g.size)
	ts := g.first
	for i := 0; i < g.size; i++ {
		points[i] = domain.Point{Timestamp: ts, Value: values[i]}
		ts = nextBucket(ts, g.granularity)
	}
	return domain.TimeSeries{Granularity: g.granularity, Points: points}
}

// sortedByOrderDate devolve uma cópia ordenada de forma estável, sem alterar a entrada
func sortedByOrderDate(records []domain.SaleRecord) []domain.SaleRecord {
	ordered := make([]domain.SaleRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderDate.Before(ordered[j].OrderDate)
	})
	return ordered
}
