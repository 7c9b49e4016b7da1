package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type ParetoQuery struct {
	Key    string `query:"key" validate:"omitempty,oneof=category sub_category sub-category"`
	Months string `query:"months" validate:"omitempty,intlist"`
}

type DecompositionQuery struct {
	Period string `query:"period" validate:"omitempty,number"`
}

type AutocorrelationQuery struct {
	MaxLag string `query:"max_lag" validate:"omitempty,number"`
}

func GetPareto(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := ParetoQuery{
			Key:    r.URL.Query().Get("key"),
			Months: r.URL.Query().Get("months"),
		}
		if !validateRequest(w, q) {
			return
		}

		key := domain.FieldCategory
		if q.Key != "" {
			key, _ = domain.ParseField(q.Key)
		}

		months, _ := utils.ParseIntList(q.Months)

		result, err := service.GetPareto(r.Context(), key, months)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular Pareto")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// GetDecomposition decompõe a série mensal; sem period usa o valor configurado
func GetDecomposition(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := DecompositionQuery{Period: r.URL.Query().Get("period")}
		if !validateRequest(w, q) {
			return
		}

		period, ok := optionalInt(w, q.Period, "period", 2)
		if !ok {
			return
		}

		result, err := service.GetDecomposition(r.Context(), period)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao decompor série de vendas")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func GetAutocorrelation(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := AutocorrelationQuery{MaxLag: r.URL.Query().Get("max_lag")}
		if !validateRequest(w, q) {
			return
		}

		maxLag, ok := optionalInt(w, q.MaxLag, "max_lag", 1)
		if !ok {
			return
		}

		result, err := service.GetAutocorrelation(r.Context(), maxLag)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular autocorrelação")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func GetNextMonthTargets(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targets, err := service.GetNextMonthTargets(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao estimar metas")
			return
		}

		writeJSON(w, http.StatusOK, targets)
	}
}

// optionalInt converte um parâmetro numérico opcional; ausente retorna 0
func optionalInt(w http.ResponseWriter, raw, name string, min int) (int, bool) {
	if raw == "" {
		return 0, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, name+" deve ser um inteiro maior ou igual a "+strconv.Itoa(min), nil)
		return 0, false
	}

	return v, true
}
