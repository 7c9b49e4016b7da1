package domain

import "time"

// MonthValue é o total de um mês do calendário (1..12)
type MonthValue struct {
	Month int     `json:"month"`
	Value float64 `json:"value"`
}

// YearSeries são os totais mensais de um ano; meses sem vendas não aparecem
type YearSeries struct {
	Year   int          `json:"year"`
	Months []MonthValue `json:"months"`
}

// YearComparison compara os anos selecionados mês a mês
type YearComparison struct {
	Years []YearSeries `json:"years"`
}

// RegionSummary resume clientes e vendas de uma região
type RegionSummary struct {
	Region        string  `json:"region"`
	CustomerCount int     `json:"customer_count"`
	CustomerShare float64 `json:"customer_share"` // percentual sobre o total de clientes distintos por região
	TotalSales    float64 `json:"total_sales"`
}

// CustomerRankEntry é um cliente classificado pelo total de vendas
type CustomerRankEntry struct {
	Customer   string  `json:"customer"`
	TotalSales float64 `json:"total_sales"`
	Segment    string  `json:"segment"`
}

// CustomerRanking contém os N clientes de maior e de menor faturamento
type CustomerRanking struct {
	Top    []CustomerRankEntry `json:"top"`
	Bottom []CustomerRankEntry `json:"bottom"`
}

// ViewError descreve a falha de uma visão isolada do painel
type ViewError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// KPITarget é a meta estimada de um indicador ou o motivo de não ser calculável
type KPITarget struct {
	Estimate *ForecastEstimate `json:"estimate,omitempty"`
	Error    *ViewError        `json:"error,omitempty"`
}

// NextMonthTargets são as metas de vendas e de clientes para o próximo mês
type NextMonthTargets struct {
	Sales     KPITarget `json:"sales"`
	Customers KPITarget `json:"customers"`
}

// DashboardRequest reúne os filtros de todas as visões do painel
type DashboardRequest struct {
	Granularity Granularity
	StartDate   *time.Time
	EndDate     *time.Time
	Years       []int
	Months      []int
}

// Dashboard é o painel completo calculado sobre um mesmo snapshot de registros
type Dashboard struct {
	GeneratedAt       time.Time             `json:"generated_at"`
	Records           int                   `json:"records"`
	MonthlySales      *TimeSeries           `json:"monthly_sales,omitempty"`
	Sales             *TimeSeries           `json:"sales,omitempty"`
	YearComparison    *YearComparison       `json:"year_comparison,omitempty"`
	Regions           []RegionSummary       `json:"regions,omitempty"`
	ParetoCategory    ParetoResult          `json:"pareto_category,omitempty"`
	ParetoSubCategory ParetoResult          `json:"pareto_sub_category,omitempty"`
	Customers         *CustomerRanking      `json:"customers,omitempty"`
	Decomposition     *DecompositionResult  `json:"decomposition,omitempty"`
	Autocorrelation   AcfResult             `json:"autocorrelation,omitempty"`
	Targets           *NextMonthTargets     `json:"targets,omitempty"`
	Errors            map[string]*ViewError `json:"errors,omitempty"`
}

// RejectedRow é uma linha descartada na importação
type RejectedRow struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// ImportSummary resume um lote de importação
type ImportSummary struct {
	BatchID    string        `json:"batch_id"`
	Source     string        `json:"source"`
	Read       int           `json:"read"`
	Imported   int           `json:"imported"`
	Rejected   []RejectedRow `json:"rejected"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}
