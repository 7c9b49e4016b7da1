package handler

import (
	"context"
	"net/http"
	"time"
)

// SalesCounter informa quantos registros a fonte de vendas possui
type SalesCounter interface {
	CountSales(ctx context.Context) (int, error)
}

type healthResponse struct {
	Status  string    `json:"status"`
	Time    time.Time `json:"time"`
	Records int       `json:"records"`
	Error   string    `json:"error,omitempty"`
}

// HealthcheckHandler responde 503 enquanto a fonte de vendas estiver inacessível
func HealthcheckHandler(counter SalesCounter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Time: time.Now()}

		records, err := counter.CountSales(r.Context())
		if err != nil {
			resp.Status = "unavailable"
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		resp.Records = records
		writeJSON(w, http.StatusOK, resp)
	})
}
