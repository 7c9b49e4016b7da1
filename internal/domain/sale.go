package domain

import "time"

// DefaultPostalCode é usado quando o registro de origem não informa o CEP
const DefaultPostalCode = 9999

// RawSaleRecord representa uma linha da planilha de vendas antes da tipagem.
// Datas vêm no formato dd/mm/yyyy e o valor de venda como texto.
type RawSaleRecord struct {
	RowID        string  `json:"row_id,omitempty"`
	OrderID      string  `json:"order_id,omitempty"`
	OrderDate    string  `json:"order_date"`
	ShipDate     string  `json:"ship_date"`
	Sales        string  `json:"sales"`
	PostalCode   *string `json:"postal_code"`
	Region       string  `json:"region"`
	Category     string  `json:"category"`
	SubCategory  string  `json:"sub_category"`
	Segment      string  `json:"segment"`
	CustomerID   string  `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	ProductID    string  `json:"product_id,omitempty"`
	ProductName  string  `json:"product_name,omitempty"`
}

// SaleRecord é o registro de venda já validado e tipado
type SaleRecord struct {
	RowID        string    `json:"row_id,omitempty"`
	OrderID      string    `json:"order_id,omitempty"`
	OrderDate    time.Time `json:"order_date"`
	ShipDate     time.Time `json:"ship_date"`
	Amount       float64   `json:"amount"`
	PostalCode   int       `json:"postal_code"`
	Region       string    `json:"region"`
	Category     string    `json:"category"`
	SubCategory  string    `json:"sub_category"`
	Segment      string    `json:"segment"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	ProductID    string    `json:"product_id,omitempty"`
	ProductName  string    `json:"product_name,omitempty"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	Quarter      int       `json:"quarter"`
}

// SalesFilters restringe o conjunto de registros carregado da fonte
type SalesFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Years     []int
	Months    []int
}

// Matches indica se o registro atende aos filtros
func (f *SalesFilters) Matches(r SaleRecord) bool {
	if f == nil {
		return true
	}

	if f.StartDate != nil && r.OrderDate.Before(*f.StartDate) {
		return false
	}

	if f.EndDate != nil && r.OrderDate.After(*f.EndDate) {
		return false
	}

	if len(f.Years) > 0 && !containsInt(f.Years, r.Year) {
		return false
	}

	if len(f.Months) > 0 && !containsInt(f.Months, r.Month) {
		return false
	}

	return true
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
