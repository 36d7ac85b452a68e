package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OnboardingEvent é uma receita pontual registrada quando uma venda é fechada.
// Nunca é alterada depois de criada.
type OnboardingEvent struct {
	ID         string          `json:"id"`
	ClientID   string          `json:"client_id"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type RecurringSaleStatus string

const (
	RecurringSaleStatusActive    RecurringSaleStatus = "active"
	RecurringSaleStatusCancelled RecurringSaleStatus = "cancelled"
	RecurringSaleStatusCompleted RecurringSaleStatus = "completed"
)

func (s RecurringSaleStatus) IsValid() bool {
	switch s {
	case RecurringSaleStatusActive, RecurringSaleStatusCancelled, RecurringSaleStatusCompleted:
		return true
	}
	return false
}

// RecurringSale é uma assinatura de serviço. Só muda de status
// (active -> cancelled/completed) e CancelledAt guarda o instante da transição.
type RecurringSale struct {
	ID              string              `json:"id"`
	ClientID        string              `json:"client_id"`
	RecurringAmount decimal.Decimal     `json:"recurring_amount"`
	Status          RecurringSaleStatus `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
}

// CommunityMetricSnapshot é uma observação semanal da receita recorrente da comunidade
type CommunityMetricSnapshot struct {
	WeekStart                time.Time       `json:"week_start"`
	CommunityRecurringAmount decimal.Decimal `json:"community_recurring_amount"`
}
