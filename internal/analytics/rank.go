package analytics

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Rank retorna os n maiores (decrescente) e os n menores (crescente) valores.
// Empates são resolvidos pela chave em ordem crescente. Com menos de n grupos,
// ambas as listas trazem todos os grupos.
func Rank(values map[string]float64, n int) (domain.RankResult, error) {
	if n <= 0 {
		return domain.RankResult{}, ErrInvalidRankSize
	}

	top := sortedEntries(values, true)
	bottom := sortedEntries(values, false)

	if len(top) > n {
		top = top[:n]
		bottom = bottom[:n]
	}

	return domain.RankResult{Top: top, Bottom: bottom}, nil
}
