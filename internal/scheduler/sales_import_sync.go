package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// ErrSyncRunning indica que já existe uma importação em andamento
var ErrSyncRunning = errors.New("importação de vendas já em andamento")

// SalesImportSyncService agenda a reimportação periódica da planilha de vendas
type SalesImportSyncService struct {
	scheduler           *gocron.Scheduler
	config              config.SalesImportSync
	importer            importing.Importer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         *domain.ImportSummary
	lastError           string
}

func NewSalesImportSyncService(importer importing.Importer, cfg config.SalesImportSync) *SalesImportSyncService {
	log.L.WithFields(log.Fields{
		"sales_import_cron":    cfg.CronSchedule,
		"sales_import_enabled": cfg.Enabled,
	}).Info("Configuração do agendador de importação de vendas carregada")

	return &SalesImportSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    cfg,
		importer:  importer,
	}
}

// Start inicia o agendador; ele é parado quando ctx é cancelado
func (s *SalesImportSyncService) Start(ctx context.Context) error {
	logger := log.ForComponent(ctx, "scheduler")

	if !s.config.Enabled {
		logger.Info("Importação agendada de vendas desabilitada por configuração")
		return nil
	}

	logger.WithField("sales_import_cron", s.config.CronSchedule).Info("Iniciando agendador de importação de vendas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if _, err := s.RunImport(ctx); err != nil && !errors.Is(err, ErrSyncRunning) {
			logger.WithError(err).Error("Importação agendada de vendas falhou")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação de vendas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logger.Info("Parando agendador de importação de vendas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunImport executa uma importação de forma síncrona, recusando execuções simultâneas
func (s *SalesImportSyncService) RunImport(ctx context.Context) (*domain.ImportSummary, error) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.ForComponent(ctx, "scheduler").Info("Importação de vendas já em andamento, ignorando")
		return nil, ErrSyncRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	summary, err := s.importer.ImportFromSource(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	if err != nil {
		s.lastError = err.Error()
		return nil, err
	}

	s.lastError = ""
	s.lastSummary = summary
	return summary, nil
}

// TriggerManualSync inicia uma importação em segundo plano. Retorna false se
// já houver uma em andamento.
func (s *SalesImportSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.ForComponent(ctx, "scheduler").Info("Importação de vendas já em andamento, ignorando solicitação manual")
		return false
	}

	log.ForComponent(ctx, "scheduler").Info("Iniciando importação manual de vendas")
	go func() {
		// a requisição HTTP termina antes da importação
		if _, err := s.RunImport(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, ErrSyncRunning) {
			log.ForComponent(ctx, "scheduler").WithError(err).Error("Importação manual de vendas falhou")
		}
	}()

	return true
}

// GetStatus retorna o status atual da importação
func (s *SalesImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.Enabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_summary":           s.lastSummary,
		"last_error":             s.lastError,
	}
}
