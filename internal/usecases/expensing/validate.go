package expensing

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
)

// Validate normaliza e valida a despesa antes de gravar. Despesas fixas não
// têm ciclo de cobrança, então billing_day e last_payment_date são limpos.
func Validate(expense *domain.Expense) error {
	expense.Name = strings.TrimSpace(expense.Name)
	expense.CategoryID = strings.TrimSpace(expense.CategoryID)

	if expense.Name == "" {
		return errors.Wrap(ErrMissingRequiredField, "name")
	}
	if !expense.Type.IsValid() {
		return errors.Wrapf(ErrInvalidExpense, "tipo %q", expense.Type)
	}
	if expense.Amount.IsNegative() {
		return errors.Wrap(ErrInvalidExpense, "valor negativo")
	}
	if expense.StartDate.IsZero() {
		return errors.Wrap(ErrMissingRequiredField, "start_date")
	}
	if expense.EndDate != nil && expense.EndDate.Before(expense.StartDate) {
		return errors.Wrap(ErrInvalidExpense, "end_date anterior a start_date")
	}

	if !expense.IsRecurring() {
		expense.BillingDay = nil
		expense.LastPaymentDate = nil
		return nil
	}

	if expense.CategoryID == "" {
		return errors.Wrap(ErrMissingRequiredField, "category_id")
	}
	if expense.BillingDay != nil && (*expense.BillingDay < 1 || *expense.BillingDay > 31) {
		return errors.Wrapf(ErrInvalidBillingDay, "recebido %d", *expense.BillingDay)
	}

	return nil
}
