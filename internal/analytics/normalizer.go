package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DateLayout é o formato dia/mês/ano usado pela planilha de vendas.
// Aceita dia e mês com um ou dois dígitos.
const DateLayout = "2/1/2006"

// NormalizeOptions controla o tratamento de registros inválidos
type NormalizeOptions struct {
	// Strict interrompe o lote no primeiro registro inválido
	Strict bool
}

// NormalizeResult contém os registros válidos e os rejeitados no modo tolerante
type NormalizeResult struct {
	Records  []domain.SaleRecord
	Rejected []*ParseError
}

// Normalize valida e tipa um lote de registros brutos, ordenando pela data do pedido
// (ordenação estável: empates mantêm a ordem original).
func Normalize(raws []domain.RawSaleRecord, opts NormalizeOptions) (NormalizeResult, error) {
	result := NormalizeResult{
		Records: make([]domain.SaleRecord, 0, len(raws)),
	}

	for i, raw := range raws {
		record, err := normalizeRow(i, raw)
		if err != nil {
			if opts.Strict {
				return NormalizeResult{}, err
			}
			result.Rejected = append(result.Rejected, err)
			continue
		}
		result.Records = append(result.Records, record)
	}

	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].OrderDate.Before(result.Records[j].OrderDate)
	})

	return result, nil
}

// NormalizeRecord valida e tipa um único registro bruto
func NormalizeRecord(raw domain.RawSaleRecord) (domain.SaleRecord, error) {
	record, err := normalizeRow(0, raw)
	if err != nil {
		return domain.SaleRecord{}, err
	}
	return record, nil
}

func normalizeRow(row int, raw domain.RawSaleRecord) (domain.SaleRecord, *ParseError) {
	orderDate, err := parseDate(raw.OrderDate)
	if err != nil {
		return domain.SaleRecord{}, &ParseError{Row: row, Field: "order_date", Value: raw.OrderDate, Err: err}
	}

	shipDate, err := parseDate(raw.ShipDate)
	if err != nil {
		return domain.SaleRecord{}, &ParseError{Row: row, Field: "ship_date", Value: raw.ShipDate, Err: err}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(raw.Sales))
	if err != nil {
		return domain.SaleRecord{}, &ParseError{Row: row, Field: "sales", Value: raw.Sales, Err: err}
	}

	postalCode, err := parsePostalCode(raw.PostalCode)
	if err != nil {
		return domain.SaleRecord{}, &ParseError{Row: row, Field: "postal_code", Value: *raw.PostalCode, Err: err}
	}

	return domain.SaleRecord{
		RowID:        raw.RowID,
		OrderID:      raw.OrderID,
		OrderDate:    orderDate,
		ShipDate:     shipDate,
		Amount:       amount.InexactFloat64(),
		PostalCode:   postalCode,
		Region:       strings.TrimSpace(raw.Region),
		Category:     strings.TrimSpace(raw.Category),
		SubCategory:  strings.TrimSpace(raw.SubCategory),
		Segment:      strings.TrimSpace(raw.Segment),
		CustomerID:   strings.TrimSpace(raw.CustomerID),
		CustomerName: strings.TrimSpace(raw.CustomerName),
		ProductID:    raw.ProductID,
		ProductName:  raw.ProductName,
		Year:         orderDate.Year(),
		Month:        int(orderDate.Month()),
		Quarter:      QuarterOf(orderDate),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}

// parsePostalCode aceita valores inteiros e também a forma "12345.0" gerada por planilhas
func parsePostalCode(s *string) (int, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return domain.DefaultPostalCode, nil
	}

	value, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return 0, err
	}

	if !value.IsInteger() {
		return 0, strconv.ErrSyntax
	}

	return int(value.IntPart()), nil
}

// QuarterOf retorna o trimestre (1..4) da data
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}
