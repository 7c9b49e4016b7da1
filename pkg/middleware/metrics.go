package middleware

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
)

// Metrics instrumenta uma rota. O rótulo é o padrão da rota (ex.: /v1/cron/:type/run)
// e não o caminho concreto, para manter a cardinalidade baixa.
func Metrics(m *metrics.Registry) func(route string) func(http.Handler) http.Handler {
	return func(route string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				rec := newStatusRecorder(w)
				start := time.Now()

				next.ServeHTTP(rec, r)

				m.ObserveRequest(r.Method, route, rec.statusCode, time.Since(start))
			})
		}
	}
}
