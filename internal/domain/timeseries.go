package domain

import (
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Granularity define a largura dos buckets de agregação temporal
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ParseGranularity converte o texto recebido (inclusive os rótulos em português do painel)
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily", "diario", "diário":
		return GranularityDay, nil
	case "month", "monthly", "mensal", "":
		return GranularityMonth, nil
	case "quarter", "quarterly", "trimestral":
		return GranularityQuarter, nil
	case "year", "yearly", "anual":
		return GranularityYear, nil
	}
	return "", fmt.Errorf("granularidade inválida: %s", s)
}

// Point é uma observação de uma série temporal
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// TimeSeries é uma sequência ordenada e sem lacunas de buckets de mesma granularidade
type TimeSeries struct {
	Granularity Granularity `json:"granularity"`
	Points      []Point     `json:"points"`
}

// Len retorna o número de buckets
func (ts TimeSeries) Len() int {
	return len(ts.Points)
}

// Values retorna uma cópia dos valores na ordem temporal
func (ts TimeSeries) Values() []float64 {
	values := make([]float64, len(ts.Points))
	for i, p := range ts.Points {
		values[i] = p.Value
	}
	return values
}

// Between retorna a sub-série com buckets dentro do intervalo [start, end]
func (ts TimeSeries) Between(start, end *time.Time) TimeSeries {
	points := make([]Point, 0, len(ts.Points))
	for _, p := range ts.Points {
		if start != nil && p.Timestamp.Before(*start) {
			continue
		}
		if end != nil && p.Timestamp.After(*end) {
			continue
		}
		points = append(points, p)
	}
	return TimeSeries{Granularity: ts.Granularity, Points: points}
}

// NullFloat é um valor numérico que pode estar indefinido (bordas da média móvel)
type NullFloat struct {
	Value float64
	Valid bool
}

// MarshalJSON serializa valores indefinidos como null
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return jsoniter.Marshal(n.Value)
}

// NullablePoint é uma observação cujo valor pode estar indefinido
type NullablePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     NullFloat `json:"value"`
}

// NullableSeries é uma série temporal com valores possivelmente indefinidos
type NullableSeries struct {
	Granularity Granularity     `json:"granularity"`
	Points      []NullablePoint `json:"points"`
}

// DefinedValues retorna, em ordem, apenas os valores definidos
func (ns NullableSeries) DefinedValues() []float64 {
	values := make([]float64, 0, len(ns.Points))
	for _, p := range ns.Points {
		if p.Value.Valid {
			values = append(values, p.Value.Value)
		}
	}
	return values
}
