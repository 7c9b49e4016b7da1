package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// GetSalesSeries retorna a série de vendas na granularidade pedida.
// start_date e end_date recortam a série já completa.
func GetSalesSeries(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, granularity, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		series, err := service.GetSalesSeries(r.Context(), filters, granularity)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular série de vendas")
			return
		}

		writeJSON(w, http.StatusOK, series)
	}
}

// GetYearComparison retorna os totais mensais dos anos selecionados
func GetYearComparison(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, _, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		if len(filters.Years) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe ao menos um ano em years", nil)
			return
		}

		comparison, err := service.GetYearComparison(r.Context(), filters.Years)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao comparar anos")
			return
		}

		writeJSON(w, http.StatusOK, comparison)
	}
}

func GetRegions(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regions, err := service.GetRegionAnalysis(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao analisar regiões")
			return
		}

		writeJSON(w, http.StatusOK, regions)
	}
}
