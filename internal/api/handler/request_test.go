package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestMustRegisterValidation(t *testing.T) {
	always := func(validator.FieldLevel) bool { return true }

	t.Run("Regra válida - deve registrar", func(t *testing.T) {
		v := validator.New()
		assert.NotPanics(t, func() { mustRegisterValidation(v, "sempre", always) })
	})

	t.Run("Tag vazia - deve interromper", func(t *testing.T) {
		v := validator.New()
		assert.Panics(t, func() { mustRegisterValidation(v, "", always) })
	})
}

func TestValidateRequest_IntList(t *testing.T) {
	tests := []struct {
		name   string
		query  PeriodQuery
		wantOK bool
	}{
		{name: "Lista de inteiros", query: PeriodQuery{Years: "2016,2017"}, wantOK: true},
		{name: "Lista vazia", query: PeriodQuery{}, wantOK: true},
		{name: "Lista com texto", query: PeriodQuery{Years: "2016,abc"}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ok := validateRequest(rec, tt.query)

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), "intlist")
			}
		})
	}
}
