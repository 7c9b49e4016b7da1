package analytics

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DefaultForecastWindow é o número de períodos finais usados na extrapolação
const DefaultForecastWindow = 10

// ForecastNext estima o próximo valor da série a partir da taxa média de crescimento
// dos últimos window períodos. É uma extrapolação ingênua de um passo, sem intervalo
// de confiança.
func ForecastNext(series domain.TimeSeries, window int) (domain.ForecastEstimate, error) {
	return ForecastNextValues(series.Values(), window)
}

// ForecastNextValues aplica ForecastNext sobre uma sequência de valores já ordenada
func ForecastNextValues(values []float64, window int) (domain.ForecastEstimate, error) {
	if window > len(values) {
		window = len(values)
	}
	if window < 2 {
		return domain.ForecastEstimate{}, &InsufficientDataError{
			Operation: "previsão de crescimento",
			Required:  2,
			Actual:    window,
		}
	}

	trailing := make([]float64, window)
	copy(trailing, values[len(values)-window:])

	var sum float64
	valid := 0
	for t := 1; t < window; t++ {
		previous := trailing[t-1]
		if previous == 0 {
			continue
		}
		sum += (trailing[t] - previous) / previous
		valid++
	}

	if valid == 0 {
		return domain.ForecastEstimate{}, ErrUndefinedGrowth
	}

	rate := sum / float64(valid)
	last := trailing[window-1]

	return domain.ForecastEstimate{
		EstimatedNextValue: last * (1 + rate),
		AverageGrowthRate:  rate,
		LastValue:          last,
		Window:             window,
		ValidRates:         valid,
	}, nil
}
