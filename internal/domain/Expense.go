package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseType string

const (
	ExpenseTypeFixed     ExpenseType = "fixed"
	ExpenseTypeRecurring ExpenseType = "recurring"
)

func (t ExpenseType) IsValid() bool {
	return t == ExpenseTypeFixed || t == ExpenseTypeRecurring
}

// Expense representa uma despesa. BillingDay e LastPaymentDate só têm
// significado quando Type == recurring.
type Expense struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	CategoryID      string          `json:"category_id"`
	Type            ExpenseType     `json:"type"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         *time.Time      `json:"end_date,omitempty"`
	BillingDay      *int            `json:"billing_day,omitempty"`
	LastPaymentDate *time.Time      `json:"last_payment_date,omitempty"`
}

// ActiveBetween indica se a despesa está vigente em algum instante de [start, end]
func (e *Expense) ActiveBetween(start, end time.Time) bool {
	if e.StartDate.After(end) {
		return false
	}
	return e.EndDate == nil || !e.EndDate.Before(start)
}

func (e *Expense) IsRecurring() bool {
	return e.Type == ExpenseTypeRecurring
}
