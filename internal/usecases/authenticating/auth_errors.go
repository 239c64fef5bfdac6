package authenticating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// Tipos de erros de autenticação personalizados
var (
	ErrInvalidToken    = errors.New("token inválido")
	ErrExpiredToken    = errors.New("token expirado")
	ErrMissingToken    = errors.New("token de acesso ausente")
	ErrMissingSubject  = errors.New("identificação do portador é obrigatória")
	ErrAuthDisabled    = errors.New("autenticação desabilitada: AUTH_SECRET não configurado")
	ErrTokenGeneration = errors.New("erro ao gerar token de acesso")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) ErrorCode() string {
	return e.Code
}

// IsAuthorizationError verifica se o erro está relacionado ao token de acesso
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrMissingToken)
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func newInvalidTokenError(details string) *AuthError {
	return NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, details)
}
