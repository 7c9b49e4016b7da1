package analytics

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DefaultSeasonalPeriod é o período anual para séries mensais
const DefaultSeasonalPeriod = 12

// Decompose separa a série em tendência, sazonalidade e resíduo pelo modelo aditivo.
//
// A tendência é a média móvel centrada de janela period (para period par, a média
// de duas médias adjacentes) e fica indefinida nos period/2 pontos de cada borda.
// A sazonalidade é a média do valor sem tendência por fase, ajustada para média zero
// e repetida ao longo da série. O resíduo é indefinido onde a tendência é.
func Decompose(series domain.TimeSeries, period int) (domain.DecompositionResult, error) {
	if period < 2 {
		return domain.DecompositionResult{}, ErrInvalidPeriod
	}

	n := series.Len()
	if n < 2*period {
		return domain.DecompositionResult{}, &InsufficientDataError{
			Operation: "decomposição sazonal",
			Required:  2 * period,
			Actual:    n,
		}
	}

	values := series.Values()
	trend := centeredMovingAverage(values, period)
	pattern := seasonalPattern(values, trend, period)

	result := domain.DecompositionResult{
		Period:          period,
		Observed:        domain.TimeSeries{Granularity: series.Granularity, Points: append([]domain.Point(nil), series.Points...)},
		Trend:           domain.NullableSeries{Granularity: series.Granularity, Points: make([]domain.NullablePoint, n)},
		Seasonal:        domain.TimeSeries{Granularity: series.Granularity, Points: make([]domain.Point, n)},
		Residual:        domain.NullableSeries{Granularity: series.Granularity, Points: make([]domain.NullablePoint, n)},
		SeasonalPattern: pattern,
	}

	for i, p := range series.Points {
		seasonal := pattern[i%period]
		result.Trend.Points[i] = domain.NullablePoint{Timestamp: p.Timestamp, Value: trend[i]}
		result.Seasonal.Points[i] = domain.Point{Timestamp: p.Timestamp, Value: seasonal}

		residual := domain.NullFloat{}
		if trend[i].Valid {
			residual = domain.NullFloat{Value: values[i] - trend[i].Value - seasonal, Valid: true}
		}
		result.Residual.Points[i] = domain.NullablePoint{Timestamp: p.Timestamp, Value: residual}
	}

	return result, nil
}

// centeredMovingAverage calcula a média móvel centrada em um buffer do tamanho da série.
// Posições sem janela completa ficam inválidas.
func centeredMovingAverage(values []float64, period int) []domain.NullFloat {
	n := len(values)
	half := period / 2
	trend := make([]domain.NullFloat, n)

	if period%2 == 1 {
		for i := half; i < n-half; i++ {
			var sum float64
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
			trend[i] = domain.NullFloat{Value: sum / float64(period), Valid: true}
		}
		return trend
	}

	// primeira passada: médias de period pontos consecutivos começando em k
	windows := make([]float64, n-period+1)
	for k := range windows {
		var sum float64
		for j := k; j < k+period; j++ {
			sum += values[j]
		}
		windows[k] = sum / float64(period)
	}

	// segunda passada: média de duas janelas adjacentes, centrada em k+half
	for k := 0; k+1 < len(windows); k++ {
		trend[k+half] = domain.NullFloat{Value: (windows[k] + windows[k+1]) / 2, Valid: true}
	}

	return trend
}

// seasonalPattern calcula a média por fase do valor sem tendência, ajustada para média zero
func seasonalPattern(values []float64, trend []domain.NullFloat, period int) []float64 {
	sums := make([]float64, period)
	counts := make([]int, period)

	for i, v := range values {
		if !trend[i].Valid {
			continue
		}
		phase := i % period
		sums[phase] += v - trend[i].Value
		counts[phase]++
	}

	pattern := make([]float64, period)
	var mean float64
	for phase := range pattern {
		if counts[phase] > 0 {
			pattern[phase] = sums[phase] / float64(counts[phase])
		}
		mean += pattern[phase]
	}
	mean /= float64(period)

	for phase := range pattern {
		pattern[phase] -= mean
	}

	return pattern
}
