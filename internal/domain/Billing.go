package domain

import "time"

type BillingStatusType string

const (
	BillingStatusNoDate   BillingStatusType = "no_date"
	BillingStatusPaid     BillingStatusType = "paid"
	BillingStatusUpcoming BillingStatusType = "upcoming"
	BillingStatusExpired  BillingStatusType = "expired"
)

// BillingStatus é a situação de uma despesa recorrente no ciclo atual.
// DaysRemaining é nil para no_date e paid.
type BillingStatus struct {
	Status        BillingStatusType `json:"status"`
	DaysRemaining *int              `json:"days_remaining"`
}

// NextDue é a próxima ocorrência do dia de cobrança a partir de "agora"
type NextDue struct {
	Date      time.Time `json:"date"`
	DaysUntil int       `json:"days_until"`
}

// UpcomingPayment é um item da listagem de próximos vencimentos
type UpcomingPayment struct {
	Expense Expense       `json:"expense"`
	Status  BillingStatus `json:"billing_status"`
	NextDue NextDue       `json:"next_due"`
}
