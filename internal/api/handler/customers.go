package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
)

type CustomerRankingQuery struct {
	N string `query:"n" validate:"omitempty,number"`
}

// GetCustomerRanking retorna os n clientes de maior e menor faturamento
func GetCustomerRanking(service ranking.RankingService, defaultSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := CustomerRankingQuery{N: r.URL.Query().Get("n")}
		if !validateRequest(w, q) {
			return
		}

		n, ok := optionalInt(w, q.N, "n", 1)
		if !ok {
			return
		}
		if n == 0 {
			n = defaultSize
		}

		result, err := service.GetCustomerRanking(r.Context(), n)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar ranking de clientes")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}
