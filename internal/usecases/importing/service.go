package importing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/sheet"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// SalesWriter grava os registros normalizados de um lote
type SalesWriter interface {
	UpsertSales(ctx context.Context, batchID string, records []domain.SaleRecord) (int, error)
}

type Importer interface {
	ImportFromSource(ctx context.Context) (*domain.ImportSummary, error)
}

type Service struct {
	loader  sheet.Loader
	writer  SalesWriter
	strict  bool
	metrics *metrics.Registry
	now     func() time.Time
}

func NewService(loader sheet.Loader, writer SalesWriter, strict bool, m *metrics.Registry) *Service {
	return &Service{
		loader:  loader,
		writer:  writer,
		strict:  strict,
		metrics: m,
		now:     time.Now,
	}
}

// ImportFromSource carrega a planilha configurada, normaliza as linhas e grava os
// registros válidos. No modo tolerante as linhas inválidas voltam no resumo; no modo
// estrito a primeira linha inválida cancela o lote inteiro.
func (s *Service) ImportFromSource(ctx context.Context) (_ *domain.ImportSummary, err error) {
	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("importing: erro ao gerar id do lote: %w", err)
	}

	logger := log.ForComponent(ctx, "importing").WithField("batch_id", batchID)
	summary := &domain.ImportSummary{
		BatchID:   batchID,
		Source:    s.loader.Describe(),
		Rejected:  []domain.RejectedRow{},
		StartedAt: s.now(),
	}

	defer func() {
		s.metrics.RecordImport(err, summary.Imported, len(summary.Rejected))
	}()

	raws, err := s.loader.LoadRaw(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao carregar planilha de vendas")
		return nil, err
	}
	summary.Read = len(raws)

	result, err := analytics.Normalize(raws, analytics.NormalizeOptions{Strict: s.strict})
	if err != nil {
		var parseErr *analytics.ParseError
		if errors.As(err, &parseErr) {
			logger.WithField("sales_row", parseErr.Row).WithError(err).Error("Lote rejeitado no modo estrito")
		}
		return nil, err
	}

	for _, rejected := range result.Rejected {
		summary.Rejected = append(summary.Rejected, domain.RejectedRow{
			Row:     rejected.Row,
			Field:   rejected.Field,
			Value:   rejected.Value,
			Message: rejected.Err.Error(),
		})
	}

	if len(result.Records) > 0 {
		imported, err := s.writer.UpsertSales(ctx, batchID, result.Records)
		if err != nil {
			logger.WithError(err).Error("Erro ao gravar vendas importadas")
			return nil, err
		}
		summary.Imported = imported
	}

	summary.FinishedAt = s.now()

	logger.WithFields(log.Fields{
		"sales_read":     summary.Read,
		"sales_imported": summary.Imported,
		"sales_rejected": len(summary.Rejected),
		"duration_ms":    summary.FinishedAt.Sub(summary.StartedAt).Milliseconds(),
	}).Info("Importação de vendas concluída")

	return summary, nil
}
