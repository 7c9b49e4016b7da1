package domain

// DecompositionResult contém os componentes da decomposição aditiva, alinhados à série original
type DecompositionResult struct {
	Period          int            `json:"period"`
	Observed        TimeSeries     `json:"observed"`
	Trend           NullableSeries `json:"trend"`
	Seasonal        TimeSeries     `json:"seasonal"`
	Residual        NullableSeries `json:"residual"`
	SeasonalPattern []float64      `json:"seasonal_pattern"` // P valores com média zero
}

// AcfCoefficient é o coeficiente de autocorrelação em uma defasagem
type AcfCoefficient struct {
	Lag         int     `json:"lag"`
	Coefficient float64 `json:"coefficient"`
}

// AcfResult é a função de autocorrelação para lag = 0..L
type AcfResult []AcfCoefficient

// ParetoEntry é uma linha da análise de Pareto
type ParetoEntry struct {
	Category          string  `json:"category"`
	Value             float64 `json:"value"`
	CumulativeValue   float64 `json:"cumulative_value"`
	CumulativePercent float64 `json:"cumulative_percent"`
}

// ParetoResult é ordenado por valor decrescente
type ParetoResult []ParetoEntry

// RankEntry é uma entidade classificada pelo valor agregado
type RankEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// RankResult contém os N maiores (decrescente) e os N menores (crescente)
type RankResult struct {
	Top    []RankEntry `json:"top"`
	Bottom []RankEntry `json:"bottom"`
}

// ForecastEstimate é a extrapolação ingênua do próximo período
type ForecastEstimate struct {
	EstimatedNextValue float64 `json:"estimated_next_value"`
	AverageGrowthRate  float64 `json:"average_growth_rate"`
	LastValue          float64 `json:"last_value"`
	Window             int     `json:"window"`
	ValidRates         int     `json:"valid_rates"`
}
