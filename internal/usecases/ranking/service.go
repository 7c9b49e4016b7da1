package ranking

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type SalesSource interface {
	ListSales(ctx context.Context, filters *domain.SalesFilters) ([]domain.SaleRecord, error)
}

type RankingService interface {
	GetCustomerRanking(ctx context.Context, n int) (*domain.CustomerRanking, error)
}

type CustomerRankingService struct {
	source SalesSource
}

func NewCustomerRankingService(source SalesSource) RankingService {
	return &CustomerRankingService{
		source: source,
	}
}

// GetCustomerRanking retorna os n clientes de maior e de menor faturamento
func (s *CustomerRankingService) GetCustomerRanking(ctx context.Context, n int) (*domain.CustomerRanking, error) {
	records, err := s.source.ListSales(ctx, nil)
	if err != nil {
		log.ForComponent(ctx, "ranking").WithError(err).Error("Erro ao carregar vendas para o ranking de clientes")
		return nil, err
	}

	return BuildCustomerRanking(records, n)
}

// BuildCustomerRanking agrupa por nome do cliente, somando as vendas e mantendo
// o primeiro segmento em que o cliente aparece.
func BuildCustomerRanking(records []domain.SaleRecord, n int) (*domain.CustomerRanking, error) {
	byCustomer := analytics.Aggregate(records, domain.FieldCustomerName, domain.Reduction{CarryField: domain.FieldSegment})

	ranked, err := analytics.Rank(byCustomer.Values(domain.MetricSum), n)
	if err != nil {
		return nil, err
	}

	toEntries := func(entries []domain.RankEntry) []domain.CustomerRankEntry {
		out := make([]domain.CustomerRankEntry, len(entries))
		for i, e := range entries {
			out[i] = domain.CustomerRankEntry{
				Customer:   e.Key,
				TotalSales: e.Value,
				Segment:    byCustomer[e.Key].Carried,
			}
		}
		return out
	}

	return &domain.CustomerRanking{
		Top:    toEntries(ranked.Top),
		Bottom: toEntries(ranked.Bottom),
	}, nil
}
