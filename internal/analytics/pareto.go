package analytics

import (
	"sort"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Pareto ordena as categorias por valor decrescente (empates pela categoria, crescente)
// e calcula o acumulado e o percentual acumulado sobre o total.
// Com total zero, todos os percentuais são zero.
func Pareto(values map[string]float64) domain.ParetoResult {
	entries := sortedEntries(values, true)

	var total float64
	for _, e := range entries {
		total += e.Value
	}

	result := make(domain.ParetoResult, len(entries))
	var cumulative float64
	for i, e := range entries {
		cumulative += e.Value

		percent := 0.0
		if total != 0 {
			percent = 100 * cumulative / total
		}

		result[i] = domain.ParetoEntry{
			Category:          e.Key,
			Value:             e.Value,
			CumulativeValue:   cumulative,
			CumulativePercent: percent,
		}
	}

	return result
}

// sortedEntries ordena os pares chave/valor de forma determinística
func sortedEntries(values map[string]float64, descending bool) []domain.RankEntry {
	entries := make([]domain.RankEntry, 0, len(values))
	for key, value := range values {
		entries = append(entries, domain.RankEntry{Key: key, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			if descending {
				return entries[i].Value > entries[j].Value
			}
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Key < entries[j].Key
	})

	return entries
}
