package authenticating

import (
	"errors"
	"fmt"
)

// Tipos de erros de autenticação
var (
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrTokenInvalid        = errors.New("token inválido")
	ErrTokenExpired        = errors.New("token expirado")
	ErrRateLimited         = errors.New("muitas tentativas de login")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrAttemptStore        = errors.New("erro ao acessar registro de tentativas")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	RetryAfter int    // Segundos até o desbloqueio (apenas ErrRateLimited)
	Details    string // Detalhes adicionais
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

// IsTokenError verifica se o erro veio da validação do token
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrTokenExpired)
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// NewRateLimitError cria o erro de bloqueio com o tempo restante
func NewRateLimitError(code string, retryAfter int) *AuthError {
	return &AuthError{
		Err:        ErrRateLimited,
		Code:       code,
		RetryAfter: retryAfter,
		Details:    fmt.Sprintf("tente novamente em %d segundos", retryAfter),
	}
}
