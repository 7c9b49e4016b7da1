package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// mensagens de validação usam o nome do parâmetro de query ou do campo JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			if name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]; name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	mustRegisterValidation(v, "intlist", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseIntList(fl.Field().String())
		return err == nil
	})

	return v
}

// mustRegisterValidation interrompe a inicialização se a regra não puder ser registrada
func mustRegisterValidation(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("erro ao registrar validação %q: %v", tag, err))
	}
}

// FieldError descreve um parâmetro rejeitado pela validação
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Value any    `json:"value,omitempty"`
}

// validateRequest valida a struct e escreve VAL_003 com os campos inválidos
func validateRequest(w http.ResponseWriter, req any) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return false
	}

	details := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, FieldError{Field: fe.Field(), Rule: fe.Tag(), Value: fe.Value()})
	}
	apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetros inválidos", details)
	return false
}

// PeriodQuery são os filtros de período comuns às consultas de vendas
type PeriodQuery struct {
	Granularity string `query:"granularity" validate:"omitempty,oneof=day month quarter year diario mensal trimestral anual"`
	StartDate   string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Years       string `query:"years" validate:"omitempty,intlist"`
	Months      string `query:"months" validate:"omitempty,intlist"`
}

func periodQuery(r *http.Request) PeriodQuery {
	q := r.URL.Query()
	return PeriodQuery{
		Granularity: q.Get("granularity"),
		StartDate:   q.Get("start_date"),
		EndDate:     q.Get("end_date"),
		Years:       q.Get("years"),
		Months:      q.Get("months"),
	}
}

// parse converte a query já validada
func (q PeriodQuery) parse() (*domain.SalesFilters, domain.Granularity, error) {
	granularity, err := domain.ParseGranularity(q.Granularity)
	if err != nil {
		return nil, "", err
	}

	startDate, err := utils.ParseDate(q.StartDate)
	if err != nil {
		return nil, "", err
	}

	endDate, err := utils.ParseDate(q.EndDate)
	if err != nil {
		return nil, "", err
	}

	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, "", errors.New("end_date deve ser posterior a start_date")
	}

	years, err := utils.ParseIntList(q.Years)
	if err != nil {
		return nil, "", err
	}

	months, err := utils.ParseIntList(q.Months)
	if err != nil {
		return nil, "", err
	}
	for _, m := range months {
		if m < 1 || m > 12 {
			return nil, "", errors.Errorf("mês inválido: %d", m)
		}
	}

	return &domain.SalesFilters{
		StartDate: startDate,
		EndDate:   endDate,
		Years:     years,
		Months:    months,
	}, granularity, nil
}

// parsePeriod valida e converte os filtros de período, escrevendo o erro quando inválidos
func parsePeriod(w http.ResponseWriter, r *http.Request) (*domain.SalesFilters, domain.Granularity, bool) {
	q := periodQuery(r)
	if !validateRequest(w, q) {
		return nil, "", false
	}

	filters, granularity, err := q.parse()
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return nil, "", false
	}

	return filters, granularity, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.L.WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeServiceError traduz erros dos serviços de análise para a resposta padronizada.
// Erros sem código de análise são tratados como falha ao ler as vendas.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	code := reporting.ErrorCode(err)
	if !reporting.IsAnalyticsError(err) {
		code = apiErrors.ErrDatabaseOperation
		log.ForComponent(r.Context(), "handler").WithError(err).Error(message)
		apiErrors.WriteError(w, code, message, nil)
		return
	}

	apiErrors.WriteError(w, code, err.Error(), nil)
}
