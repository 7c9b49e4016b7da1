// Package sheet lê a planilha de vendas (CSV ou XLSX) e a converte em registros brutos
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrMissingColumn = errors.New("coluna obrigatória ausente")

// cabeçalhos da planilha de pedidos, já normalizados por normalizeHeader
const (
	colRowID        = "row id"
	colOrderID      = "order id"
	colOrderDate    = "order date"
	colShipDate     = "ship date"
	colCustomerID   = "customer id"
	colCustomerName = "customer name"
	colSegment      = "segment"
	colPostalCode   = "postal code"
	colRegion       = "region"
	colProductID    = "product id"
	colCategory     = "category"
	colSubCategory  = "sub-category"
	colProductName  = "product name"
	colSales        = "sales"
)

var requiredColumns = []string{colOrderDate, colShipDate, colSales}

// xlsx é um zip
var zipMagic = []byte("PK\x03\x04")

// DetectFormat identifica o formato pelo nome do arquivo e, na falta dele, pelo conteúdo
func DetectFormat(name string, data []byte) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	}
	return FormatCSV
}

// Parse converte o conteúdo da planilha em registros brutos
func Parse(format Format, data []byte) ([]domain.RawSaleRecord, error) {
	switch format {
	case FormatXLSX:
		return ParseXLSX(bytes.NewReader(data))
	case FormatCSV:
		return ParseCSV(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("formato de planilha não suportado: %s", format)
}

func ParseCSV(r io.Reader) ([]domain.RawSaleRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler csv: %w", err)
	}

	return mapRows(rows)
}

// ParseXLSX lê a primeira aba da pasta de trabalho
func ParseXLSX(r io.Reader) ([]domain.RawSaleRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx sem abas")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %s: %w", sheets[0], err)
	}

	return mapRows(rows)
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// mapRows associa as colunas pelo cabeçalho, independente da ordem
func mapRows(rows [][]string) ([]domain.RawSaleRecord, error) {
	if len(rows) == 0 {
		return []domain.RawSaleRecord{}, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[normalizeHeader(h)] = i
	}

	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]domain.RawSaleRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		raw := domain.RawSaleRecord{
			RowID:        cell(row, colRowID),
			OrderID:      cell(row, colOrderID),
			OrderDate:    cell(row, colOrderDate),
			ShipDate:     cell(row, colShipDate),
			Sales:        cell(row, colSales),
			Region:       cell(row, colRegion),
			Category:     cell(row, colCategory),
			SubCategory:  cell(row, colSubCategory),
			Segment:      cell(row, colSegment),
			CustomerID:   cell(row, colCustomerID),
			CustomerName: cell(row, colCustomerName),
			ProductID:    cell(row, colProductID),
			ProductName:  cell(row, colProductName),
		}
		// sem Row ID a linha da planilha identifica o registro entre importações
		if raw.RowID == "" {
			raw.RowID = fmt.Sprintf("linha-%d", n+2)
		}
		if postal := cell(row, colPostalCode); postal != "" {
			raw.PostalCode = &postal
		}

		records = append(records, raw)
	}

	return records, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
