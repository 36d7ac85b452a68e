package expensing

import "github.com/pkg/errors"

var (
	ErrMissingRequiredField = errors.New("campo obrigatório ausente")
	ErrInvalidBillingDay    = errors.New("dia de cobrança deve estar entre 1 e 31")
	ErrInvalidExpense       = errors.New("despesa inválida")
	ErrExpenseNotFound      = errors.New("despesa não encontrada")
)
