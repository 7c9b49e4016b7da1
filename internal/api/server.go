package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Services reúne as dependências expostas pela API
type Services struct {
	Sales         handler.SalesCounter
	Reporter      reporting.Reporter
	Ranking       ranking.RankingService
	Authenticator authenticating.Authenticator
	CronJobs      handler.CronJobServices
	Metrics       *metrics.Registry
}

func New(cfg *config.Config, services Services) (*Server, error) {
	h := NewHandler(cfg, services)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           h,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      60 * time.Second,
		},
	}

	return srv, nil
}

// NewHandler monta as rotas e a cadeia de middlewares globais
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRouteMiddleware(middleware.Metrics(services.Metrics)),
		router.WithRoutes(handler.Healthcheck(services.Sales)...),
		router.WithRoutes(handler.Metrics(services.Metrics)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Sales(services.Reporter)...),
		router.WithRoutes(handler.Analysis(services.Reporter)...),
		router.WithRoutes(handler.CustomerRanking(services.Ranking, cfg.Analytics.RankingSize)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.Infof("Iniciando desligamento gracioso do servidor (timeout %s)", shutdownTimeout)

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}
