package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestAggregate(t *testing.T) {
	first := sale(date(2017, 1, 3), "East", "C1", 10)
	first.Segment = "Corporate"
	second := sale(date(2017, 2, 3), "East", "C1", 5)
	second.Segment = "Consumer"

	records := []domain.SaleRecord{
		first,
		second,
		sale(date(2017, 1, 4), "East", "C2", 2),
		sale(date(2017, 1, 5), "West", "C3", 1.5),
	}

	t.Run("Por região - soma, contagem e clientes distintos", func(t *testing.T) {
		agg := Aggregate(records, domain.FieldRegion, domain.Reduction{DistinctField: domain.FieldCustomerID})

		require.Len(t, agg, 2)
		assert.Equal(t, domain.AggregateValue{Sum: 17, Count: 3, Distinct: 2}, agg["East"])
		assert.Equal(t, domain.AggregateValue{Sum: 1.5, Count: 1, Distinct: 1}, agg["West"])
	})

	t.Run("Por cliente - deve preservar o primeiro segmento", func(t *testing.T) {
		agg := Aggregate(records, domain.FieldCustomerName, domain.Reduction{CarryField: domain.FieldSegment})

		assert.Equal(t, "Corporate", agg["C1"].Carried)
		assert.InDelta(t, 15.0, agg["C1"].Sum, 1e-9)
		assert.Equal(t, 0, agg["C1"].Distinct)
	})

	t.Run("Grupos sem registros não aparecem", func(t *testing.T) {
		agg := Aggregate(nil, domain.FieldRegion, domain.Reduction{})
		assert.Empty(t, agg)
	})

	t.Run("Projeção de métricas", func(t *testing.T) {
		agg := Aggregate(records, domain.FieldRegion, domain.Reduction{DistinctField: domain.FieldCustomerID})

		assert.Equal(t, map[string]float64{"East": 17, "West": 1.5}, agg.Values(domain.MetricSum))
		assert.Equal(t, map[string]float64{"East": 3, "West": 1}, agg.Values(domain.MetricCount))
		assert.Equal(t, map[string]float64{"East": 2, "West": 1}, agg.Values(domain.MetricDistinct))
	})
}

func TestEndToEndExample(t *testing.T) {
	records := []domain.SaleRecord{
		sale(date(2017, 1, 10), "RegionA", "C1", 50),
		sale(date(2017, 1, 20), "RegionB", "C2", 30),
		sale(date(2017, 2, 5), "RegionA", "C3", 20),
	}

	series := Resample(records, domain.GranularityMonth)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, date(2017, 1, 1), series.Points[0].Timestamp)
	assert.Equal(t, []float64{80, 20}, series.Values())

	byRegion := Aggregate(records, domain.FieldRegion, domain.Reduction{}).Values(domain.MetricSum)
	assert.Equal(t, map[string]float64{"RegionA": 70, "RegionB": 30}, byRegion)

	result := Pareto(byRegion)
	assert.Equal(t, domain.ParetoResult{
		{Category: "RegionA", Value: 70, CumulativeValue: 70, CumulativePercent: 70},
		{Category: "RegionB", Value: 30, CumulativeValue: 100, CumulativePercent: 100},
	}, result)
}
