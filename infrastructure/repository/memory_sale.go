package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// memorySaleRepository guarda o snapshot da planilha quando não há banco configurado
type memorySaleRepository struct {
	mu      sync.RWMutex
	records []domain.SaleRecord
	byRowID map[string]int
}

func NewMemorySaleRepository() SaleRepository {
	return &memorySaleRepository{
		byRowID: make(map[string]int),
	}
}

// ListSales devolve uma cópia filtrada; o snapshot interno nunca é exposto
func (r *memorySaleRepository) ListSales(_ context.Context, filters *domain.SalesFilters) ([]domain.SaleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]domain.SaleRecord, 0, len(r.records))
	for _, s := range r.records {
		if filters == nil || filters.Matches(s) {
			records = append(records, s)
		}
	}

	return records, nil
}

// UpsertSales substitui registros de mesmo row_id (ou mesma posição no lote, sem row_id)
// e acrescenta os novos,
// mantendo a ordem por data do pedido e, nos empates, a ordem de chegada.
func (r *memorySaleRepository) UpsertSales(ctx context.Context, _ string, records []domain.SaleRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.SaleRecord, len(r.records), len(r.records)+len(records))
	copy(next, r.records)

	for pos, s := range records {
		s.RowID = rowKey(s, pos)
		if i, ok := r.byRowID[s.RowID]; ok {
			next[i] = s
			continue
		}
		next = append(next, s)
		r.byRowID[s.RowID] = len(next) - 1
	}

	sort.SliceStable(next, func(i, j int) bool {
		return next[i].OrderDate.Before(next[j].OrderDate)
	})

	r.byRowID = make(map[string]int, len(next))
	for i, s := range next {
		r.byRowID[s.RowID] = i
	}
	r.records = next

	return len(records), nil
}

func (r *memorySaleRepository) CountSales(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}
