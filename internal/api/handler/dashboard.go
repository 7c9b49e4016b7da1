package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
)

// GetDashboard calcula todas as visões do painel sobre o mesmo conjunto de vendas.
// Visões que não puderam ser calculadas aparecem em errors com o código da falha.
func GetDashboard(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, granularity, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		dashboard, err := service.GetDashboard(r.Context(), domain.DashboardRequest{
			Granularity: granularity,
			StartDate:   filters.StartDate,
			EndDate:     filters.EndDate,
			Years:       filters.Years,
			Months:      filters.Months,
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular painel")
			return
		}

		writeJSON(w, http.StatusOK, dashboard)
	}
}
