package loading

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// Erros específicos do carregamento de vendas
var (
	ErrDataSource  = errors.New("erro ao consultar a fonte de vendas")
	ErrLoadTimeout = errors.New("tempo limite de carregamento excedido")
	ErrEmptyResult = errors.New("nenhuma venda encontrada na fonte")
	ErrGenerateID  = errors.New("erro ao gerar identificador do snapshot")
)

// DataSourceError é um erro de carregamento com contexto adicional
type DataSourceError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Timeout bool   // Verdadeiro quando o limite de tempo foi atingido
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *DataSourceError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func (e *DataSourceError) ErrorCode() string {
	return e.Code
}

// NewDataSourceError cria um erro de falha na fonte de dados
func NewDataSourceError(cause error) *DataSourceError {
	return &DataSourceError{
		Err:     ErrDataSource,
		Code:    apiErrors.ErrDatabaseOperation,
		Details: cause.Error(),
	}
}

// NewTimeoutError cria um erro de carregamento que excedeu o tempo limite
func NewTimeoutError(cause error) *DataSourceError {
	return &DataSourceError{
		Err:     ErrLoadTimeout,
		Code:    apiErrors.ErrCommunication,
		Timeout: true,
		Details: cause.Error(),
	}
}

// EmptyResultError indica que a consulta à fonte não retornou nenhuma venda
type EmptyResultError struct {
	Err     error
	Code    string
	Table   string
	Details string
}

func (e *EmptyResultError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *EmptyResultError) Unwrap() error {
	return e.Err
}

func (e *EmptyResultError) ErrorCode() string {
	return e.Code
}

// NewEmptyResultError cria o erro de consulta sem linhas para a tabela informada
func NewEmptyResultError(table string) *EmptyResultError {
	return &EmptyResultError{
		Err:     ErrEmptyResult,
		Code:    apiErrors.ErrEmptyResult,
		Table:   table,
		Details: fmt.Sprintf("tabela %s", table),
	}
}

// NewSourceError classifica a falha da fonte: prazo esgotado vira erro de timeout
func NewSourceError(cause error) *DataSourceError {
	if errors.Is(cause, context.DeadlineExceeded) {
		return NewTimeoutError(cause)
	}
	return NewDataSourceError(cause)
}

// IsTimeout verifica se o erro foi causado pelo limite de tempo
func IsTimeout(err error) bool {
	var dsErr *DataSourceError
	return errors.As(err, &dsErr) && dsErr.Timeout
}
