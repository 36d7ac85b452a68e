package handler

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/billing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/expensing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/summarizing"
	"github.com/vfg2006/finance-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

// writeUsecaseError traduz os erros dos casos de uso para códigos da API
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		var details any
		if authErr.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(authErr.RetryAfter))
			details = map[string]int{"retry_after_seconds": authErr.RetryAfter}
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, summarizing.ErrInvalidDateRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
	case errors.Is(err, summarizing.ErrSourceUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrSourceUnavailable, "Fonte de dados obrigatória indisponível", nil)
	case errors.Is(err, expensing.ErrInvalidBillingDay):
		apiErrors.WriteError(w, apiErrors.ErrInvalidBillingDay, err.Error(), nil)
	case errors.Is(err, expensing.ErrMissingRequiredField), errors.Is(err, selling.ErrMissingRequiredField):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, expensing.ErrInvalidExpense), errors.Is(err, selling.ErrInvalidAmount):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, expensing.ErrExpenseNotFound), errors.Is(err, billing.ErrExpenseNotFound):
		apiErrors.WriteError(w, apiErrors.ErrExpenseNotFound, err.Error(), nil)
	case errors.Is(err, billing.ErrNotRecurring):
		apiErrors.WriteError(w, apiErrors.ErrExpenseNotRecurring, err.Error(), nil)
	case errors.Is(err, selling.ErrSaleNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSaleNotFound, err.Error(), nil)
	case errors.Is(err, selling.ErrInvalidTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).WithField("path", r.URL.Path).Error("Erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
	}
}

// intQuery lê um inteiro da query string, usando def quando ausente
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
