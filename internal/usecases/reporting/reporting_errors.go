package reporting

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// Erros específicos do relatório
var (
	ErrBranchNotFound = errors.New("filial não encontrada")
	ErrInvalidMonth   = errors.New("mês de referência inválido")
)

// ReportError é um erro com contexto adicional para relatórios
type ReportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ReportError) Unwrap() error {
	return e.Err
}

func (e *ReportError) ErrorCode() string {
	return e.Code
}

func newBranchNotFoundError(branch string) *ReportError {
	return &ReportError{
		Err:     ErrBranchNotFound,
		Code:    apiErrors.ErrBranchNotFound,
		Details: branch,
	}
}

func newInvalidMonthError(month int) *ReportError {
	return &ReportError{
		Err:     ErrInvalidMonth,
		Code:    apiErrors.ErrInvalidFormat,
		Details: fmt.Sprintf("%d (esperado 1-12)", month),
	}
}
