// Package analytics contém as transformações numéricas puras do painel de vendas:
// normalização, reamostragem, agregação, decomposição sazonal, autocorrelação,
// Pareto, ranking e previsão do próximo período.
package analytics

import (
	"errors"
	"fmt"
)

var (
	ErrParse            = errors.New("registro inválido")
	ErrInsufficientData = errors.New("dados insuficientes")
	ErrInvalidLag       = errors.New("defasagem inválida")
	ErrUndefinedGrowth  = errors.New("nenhuma taxa de crescimento válida")
	ErrInvalidPeriod    = errors.New("período sazonal inválido")
	ErrInvalidRankSize  = errors.New("tamanho do ranking deve ser positivo")
)

// ParseError indica um campo malformado em um registro bruto
type ParseError struct {
	Row   int    // posição do registro no lote de entrada
	Field string // nome do campo rejeitado
	Value string // valor bruto recebido
	Err   error  // erro de conversão original
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: linha %d, campo %s (%q): %v", ErrParse, e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// InsufficientDataError indica uma série curta demais para a operação
type InsufficientDataError struct {
	Operation string
	Required  int
	Actual    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %s exige ao menos %d pontos, recebeu %d", ErrInsufficientData, e.Operation, e.Required, e.Actual)
}

func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}

// InvalidLagError indica uma defasagem fora de [0, N)
type InvalidLagError struct {
	MaxLag int
	Length int
}

func (e *InvalidLagError) Error() string {
	return fmt.Sprintf("%s: %d para série de tamanho %d", ErrInvalidLag, e.MaxLag, e.Length)
}

func (e *InvalidLagError) Unwrap() error {
	return ErrInvalidLag
}
