package analytics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastNextValues(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		window   int
		wantErr  error
		validate func(t *testing.T, estimateValue, rate float64, window, valid int)
	}{
		{
			name:   "Crescimento constante de 10%",
			values: []float64{100, 110, 121},
			window: DefaultForecastWindow,
			validate: func(t *testing.T, estimate, rate float64, window, valid int) {
				assert.InDelta(t, 0.10, rate, 1e-9)
				assert.InDelta(t, 133.1, estimate, 1e-9)
				assert.Equal(t, 3, window)
				assert.Equal(t, 2, valid)
			},
		},
		{
			name:   "Janela usa apenas os últimos valores",
			values: []float64{1, 1000, 50, 100, 200},
			window: 3,
			validate: func(t *testing.T, estimate, rate float64, window, valid int) {
				assert.InDelta(t, 1.0, rate, 1e-9)
				assert.InDelta(t, 400, estimate, 1e-9)
			},
		},
		{
			name:   "Taxas com base zero são ignoradas",
			values: []float64{0, 50, 100},
			window: 10,
			validate: func(t *testing.T, estimate, rate float64, window, valid int) {
				assert.Equal(t, 1, valid)
				assert.InDelta(t, 1.0, rate, 1e-9)
				assert.InDelta(t, 200, estimate, 1e-9)
			},
		},
		{
			name:    "Somente zeros - crescimento indefinido",
			values:  []float64{0, 0, 0, 0},
			window:  10,
			wantErr: ErrUndefinedGrowth,
		},
		{
			name:    "Um único valor - dados insuficientes",
			values:  []float64{100},
			window:  10,
			wantErr: ErrInsufficientData,
		},
		{
			name:    "Sem valores - dados insuficientes",
			values:  nil,
			window:  10,
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimate, err := ForecastNextValues(tt.values, tt.window)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}

			require.NoError(t, err)
			tt.validate(t, estimate.EstimatedNextValue, estimate.AverageGrowthRate, estimate.Window, estimate.ValidRates)
		})
	}
}

func TestForecastNext_DoesNotMutateSeries(t *testing.T) {
	series := monthlySeries([]float64{100, 110, 121})

	_, err := ForecastNext(series, DefaultForecastWindow)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 110, 121}, series.Values())
}
