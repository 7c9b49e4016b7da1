package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sales_dashboard"

// Registry concentra as métricas da API em um registro próprio.
// Os métodos aceitam receptor nil para que os serviços funcionem sem métricas.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ImportRuns      *prometheus.CounterVec
	ImportRows      *prometheus.CounterVec
	ViewErrors      *prometheus.CounterVec
}

func NewRegistry() *Registry {
	m := &Registry{
		registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total de requisições HTTP por rota e status",
			},
			[]string{"method", "route", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duração das requisições HTTP em segundos",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),

		ImportRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sales_import_runs_total",
				Help:      "Execuções de importação de vendas por resultado",
			},
			[]string{"result"},
		),

		ImportRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sales_import_rows_total",
				Help:      "Linhas processadas na importação (imported ou rejected)",
			},
			[]string{"status"},
		),

		ViewErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dashboard_view_errors_total",
				Help:      "Visões do painel que não puderam ser calculadas",
			},
			[]string{"view", "code"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.RequestsTotal,
		m.RequestDuration,
		m.ImportRuns,
		m.ImportRows,
		m.ViewErrors,
	)

	return m
}

// Handler expõe as métricas no formato de texto do Prometheus
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Registry) RecordImport(err error, imported, rejected int) {
	if m == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "error"
	}
	m.ImportRuns.WithLabelValues(result).Inc()
	m.ImportRows.WithLabelValues("imported").Add(float64(imported))
	m.ImportRows.WithLabelValues("rejected").Add(float64(rejected))
}

func (m *Registry) RecordViewError(view, code string) {
	if m == nil {
		return
	}
	m.ViewErrors.WithLabelValues(view, code).Inc()
}
