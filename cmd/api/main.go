package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/sheet"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}

	logLevel := log.Configure(cfg.App.LogLevel, nil)
	log.L.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := metrics.NewRegistry()

	saleRepo, closeRepo, err := repository.Open(ctx, cfg)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao abrir o armazenamento de vendas")
	}
	defer closeRepo()

	importer := importing.NewService(sheet.NewLoader(cfg.SalesSource), saleRepo, cfg.SalesSource.Strict, registry)
	importSyncService := scheduler.NewSalesImportSyncService(importer, cfg.SalesImportSync)

	// em memória o painel só tem dados depois da primeira importação
	if cfg.SalesSource.Kind == config.SalesSourceFile {
		if _, err := importSyncService.RunImport(ctx); err != nil {
			log.L.WithError(err).Fatal("Erro na importação inicial de vendas")
		}
	}

	if err := importSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de importação de vendas")
	} else {
		log.L.Info("Agendador de importação de vendas iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Sales:         saleRepo,
		Reporter:      reporting.NewService(saleRepo, cfg.Analytics).WithMetrics(registry),
		Ranking:       ranking.NewCustomerRankingService(saleRepo),
		Authenticator: authenticating.NewService(cfg.Auth),
		CronJobs:      handler.CronJobServices{SalesImport: importSyncService},
		Metrics:       registry,
	})
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao criar o servidor")
	}

	if err := server.Run(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao encerrar o servidor")
	}
}

// chdirToSource permite que o .env ao lado do main seja encontrado em execuções locais
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	_ = os.Chdir(path.Dir(file))
}
