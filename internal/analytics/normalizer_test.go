package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func stringPtr(s string) *string {
	return &s
}

func rawSale(orderDate, shipDate, sales string) domain.RawSaleRecord {
	return domain.RawSaleRecord{
		OrderDate:    orderDate,
		ShipDate:     shipDate,
		Sales:        sales,
		PostalCode:   stringPtr("42420"),
		Region:       "South",
		Category:     "Furniture",
		SubCategory:  "Chairs",
		Segment:      "Consumer",
		CustomerID:   "CG-12520",
		CustomerName: "Claire Gute",
	}
}

func TestNormalizeRecord(t *testing.T) {
	tests := []struct {
		name     string
		raw      domain.RawSaleRecord
		wantErr  string
		validate func(t *testing.T, r domain.SaleRecord)
	}{
		{
			name: "Registro válido - deve derivar ano, mês e trimestre",
			raw:  rawSale("08/11/2016", "11/11/2016", "261.96"),
			validate: func(t *testing.T, r domain.SaleRecord) {
				assert.Equal(t, time.Date(2016, 11, 8, 0, 0, 0, 0, time.UTC), r.OrderDate)
				assert.Equal(t, time.Date(2016, 11, 11, 0, 0, 0, 0, time.UTC), r.ShipDate)
				assert.InDelta(t, 261.96, r.Amount, 1e-9)
				assert.Equal(t, 42420, r.PostalCode)
				assert.Equal(t, 2016, r.Year)
				assert.Equal(t, 11, r.Month)
				assert.Equal(t, 4, r.Quarter)
			},
		},
		{
			name: "Dia e mês com um dígito - deve aceitar",
			raw:  rawSale("8/1/2017", "9/1/2017", "10"),
			validate: func(t *testing.T, r domain.SaleRecord) {
				assert.Equal(t, time.Date(2017, 1, 8, 0, 0, 0, 0, time.UTC), r.OrderDate)
				assert.Equal(t, 1, r.Quarter)
			},
		},
		{
			name: "CEP ausente - deve usar o valor padrão",
			raw: func() domain.RawSaleRecord {
				r := rawSale("01/03/2015", "05/03/2015", "5.5")
				r.PostalCode = nil
				return r
			}(),
			validate: func(t *testing.T, r domain.SaleRecord) {
				assert.Equal(t, domain.DefaultPostalCode, r.PostalCode)
			},
		},
		{
			name: "CEP em branco e formato de planilha - deve aceitar",
			raw: func() domain.RawSaleRecord {
				r := rawSale("01/03/2015", "05/03/2015", "5.5")
				r.PostalCode = stringPtr("  ")
				return r
			}(),
			validate: func(t *testing.T, r domain.SaleRecord) {
				assert.Equal(t, domain.DefaultPostalCode, r.PostalCode)
			},
		},
		{
			name: "Entrega antes do pedido - deve tolerar",
			raw:  rawSale("10/06/2018", "01/06/2018", "-12.75"),
			validate: func(t *testing.T, r domain.SaleRecord) {
				assert.True(t, r.ShipDate.Before(r.OrderDate))
				assert.InDelta(t, -12.75, r.Amount, 1e-9)
				assert.Equal(t, 2, r.Quarter)
			},
		},
		{
			name:    "Data no formato ISO - deve falhar",
			raw:     rawSale("2016-11-08", "11/11/2016", "1"),
			wantErr: "order_date",
		},
		{
			name:    "Mês inexistente - deve falhar",
			raw:     rawSale("08/13/2016", "11/11/2016", "1"),
			wantErr: "order_date",
		},
		{
			name:    "Data de entrega inválida - deve falhar",
			raw:     rawSale("08/11/2016", "ontem", "1"),
			wantErr: "ship_date",
		},
		{
			name:    "Valor não numérico - deve falhar",
			raw:     rawSale("08/11/2016", "11/11/2016", "R$ 10"),
			wantErr: "sales",
		},
		{
			name: "CEP fracionário - deve falhar",
			raw: func() domain.RawSaleRecord {
				r := rawSale("01/03/2015", "05/03/2015", "5.5")
				r.PostalCode = stringPtr("123.45")
				return r
			}(),
			wantErr: "postal_code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := NormalizeRecord(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrParse))

				var parseErr *ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Equal(t, tt.wantErr, parseErr.Field)
				return
			}

			require.NoError(t, err)
			tt.validate(t, record)
		})
	}
}

func TestNormalize_SortsStableByOrderDate(t *testing.T) {
	a := rawSale("05/02/2017", "06/02/2017", "1")
	a.RowID = "a"
	b := rawSale("01/02/2017", "06/02/2017", "2")
	b.RowID = "b"
	c := rawSale("05/02/2017", "07/02/2017", "3")
	c.RowID = "c"
	d := rawSale("01/01/2017", "02/01/2017", "4")
	d.RowID = "d"

	result, err := Normalize([]domain.RawSaleRecord{a, b, c, d}, NormalizeOptions{})
	require.NoError(t, err)
	require.Len(t, result.Records, 4)
	assert.Empty(t, result.Rejected)

	ids := make([]string, 0, len(result.Records))
	for _, r := range result.Records {
		ids = append(ids, r.RowID)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids)
}

func TestNormalize_LenientAndStrict(t *testing.T) {
	raws := []domain.RawSaleRecord{
		rawSale("05/02/2017", "06/02/2017", "1"),
		rawSale("31/02/2017", "06/02/2017", "2"),
		rawSale("07/02/2017", "08/02/2017", "abc"),
	}

	result, err := Normalize(raws, NormalizeOptions{})
	require.NoError(t, err)
	assert.Len(t, result.Records, 1)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, 1, result.Rejected[0].Row)
	assert.Equal(t, "order_date", result.Rejected[0].Field)
	assert.Equal(t, 2, result.Rejected[1].Row)
	assert.Equal(t, "sales", result.Rejected[1].Field)

	_, err = Normalize(raws, NormalizeOptions{Strict: true})
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, parseErr.Row)
}
