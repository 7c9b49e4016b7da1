package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Field identifica um campo categórico de SaleRecord
type Field string

const (
	FieldRegion       Field = "region"
	FieldCategory     Field = "category"
	FieldSubCategory  Field = "sub_category"
	FieldCustomerID   Field = "customer_id"
	FieldCustomerName Field = "customer_name"
	FieldSegment      Field = "segment"
	FieldYear         Field = "year"
	FieldMonth        Field = "month"
)

// ParseField converte o nome externo de um campo categórico
func ParseField(s string) (Field, error) {
	f := Field(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch f {
	case FieldRegion, FieldCategory, FieldSubCategory, FieldCustomerID,
		FieldCustomerName, FieldSegment, FieldYear, FieldMonth:
		return f, nil
	}
	return "", fmt.Errorf("campo de agrupamento inválido: %s", s)
}

// Of retorna o valor do campo no registro
func (f Field) Of(r SaleRecord) string {
	switch f {
	case FieldRegion:
		return r.Region
	case FieldCategory:
		return r.Category
	case FieldSubCategory:
		return r.SubCategory
	case FieldCustomerID:
		return r.CustomerID
	case FieldCustomerName:
		return r.CustomerName
	case FieldSegment:
		return r.Segment
	case FieldYear:
		return strconv.Itoa(r.Year)
	case FieldMonth:
		return strconv.Itoa(r.Month)
	}
	return ""
}

// Reduction descreve como cada grupo é reduzido.
// A soma é sempre sobre o valor da venda e a contagem sobre os registros.
type Reduction struct {
	DistinctField Field // campo para contagem de valores distintos (opcional)
	CarryField    Field // campo cujo primeiro valor do grupo é preservado (opcional)
}

// AggregateValue é o resultado reduzido de um grupo
type AggregateValue struct {
	Sum      float64 `json:"sum"`
	Count    int     `json:"count"`
	Distinct int     `json:"distinct"`
	Carried  string  `json:"carried,omitempty"`
}

// Metric seleciona qual componente de AggregateValue é usado como valor único
type Metric string

const (
	MetricSum      Metric = "sum"
	MetricCount    Metric = "count"
	MetricDistinct Metric = "distinct"
)

// GroupedAggregate mapeia a chave categórica para seu valor reduzido; sem ordem definida
type GroupedAggregate map[string]AggregateValue

// Values projeta um único valor numérico por chave
func (g GroupedAggregate) Values(metric Metric) map[string]float64 {
	values := make(map[string]float64, len(g))
	for key, v := range g {
		switch metric {
		case MetricCount:
			values[key] = float64(v.Count)
		case MetricDistinct:
			values[key] = float64(v.Distinct)
		default:
			values[key] = v.Sum
		}
	}
	return values
}
