package analytics

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DefaultMaxLag é o número de defasagens exibidas no painel
const DefaultMaxLag = 12

// Autocorrelate calcula a função de autocorrelação (estimador viesado, normalizado
// pela autocovariância na defasagem 0) para lag = 0..maxLag.
// Uma série constante tem coeficiente 1 em lag 0 e 0 nas demais defasagens.
func Autocorrelate(series domain.TimeSeries, maxLag int) (domain.AcfResult, error) {
	n := series.Len()
	if maxLag < 0 || maxLag >= n {
		return nil, &InvalidLagError{MaxLag: maxLag, Length: n}
	}

	values := series.Values()

	result := make(domain.AcfResult, maxLag+1)
	result[0] = domain.AcfCoefficient{Lag: 0, Coefficient: 1.0}

	if isConstant(values) {
		for k := 1; k <= maxLag; k++ {
			result[k] = domain.AcfCoefficient{Lag: k}
		}
		return result, nil
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	var denominator float64
	for i, v := range values {
		centered[i] = v - mean
		denominator += centered[i] * centered[i]
	}

	for k := 1; k <= maxLag; k++ {
		coefficient := 0.0
		if denominator > 0 {
			var numerator float64
			for t := 0; t < n-k; t++ {
				numerator += centered[t] * centered[t+k]
			}
			coefficient = numerator / denominator
		}
		result[k] = domain.AcfCoefficient{Lag: k, Coefficient: coefficient}
	}

	return result, nil
}

// isConstant compara os valores exatos: a variância calculada de uma série constante
// pode sair diferente de zero por arredondamento.
func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
