package analytics

import (
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Aggregate agrupa os registros pela chave categórica e reduz cada grupo em
// soma do valor, contagem de registros e contagem de valores distintos.
// Grupos sem registros não aparecem no resultado.
func Aggregate(records []domain.SaleRecord, key domain.Field, reduction domain.Reduction) domain.GroupedAggregate {
	result := make(domain.GroupedAggregate)
	distinct := make(map[string]map[string]struct{})

	for _, r := range records {
		k := key.Of(r)
		value, exists := result[k]
		if !exists && reduction.CarryField != "" {
			value.Carried = reduction.CarryField.Of(r)
		}

		value.Sum += r.Amount
		value.Count++

		if reduction.DistinctField != "" {
			set, ok := distinct[k]
			if !ok {
				set = make(map[string]struct{})
				distinct[k] = set
			}
			set[reduction.DistinctField.Of(r)] = struct{}{}
			value.Distinct = len(set)
		}

		result[k] = value
	}

	return result
}
