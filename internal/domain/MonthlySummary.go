package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySnapshot é o resumo mensal persistido. Uma vez gravado é tratado
// como a fonte de verdade do mês e não é recalculado.
type MonthlySnapshot struct {
	Month             time.Time       `json:"month"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalOnboarding   decimal.Decimal `json:"total_onboarding"`
	TotalMrrServices  decimal.Decimal `json:"total_mrr_services"`
	TotalMrrCommunity decimal.Decimal `json:"total_mrr_community"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	NetProfit         decimal.Decimal `json:"net_profit"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CategoryBreakdown agrupa as despesas ativas de uma categoria no mês
type CategoryBreakdown struct {
	CategoryID string          `json:"category_id"`
	Total      decimal.Decimal `json:"total"`
	Items      []Expense       `json:"items"`
}

// MonthlySummary é a posição financeira de um mês, calculada ou lida de um snapshot
type MonthlySummary struct {
	Month              time.Time           `json:"month"`
	Period             string              `json:"period"`
	TotalIncome        decimal.Decimal     `json:"total_income"`
	TotalOnboarding    decimal.Decimal     `json:"total_onboarding"`
	TotalMrrServices   decimal.Decimal     `json:"total_mrr_services"`
	TotalMrrCommunity  decimal.Decimal     `json:"total_mrr_community"`
	TotalExpenses      decimal.Decimal     `json:"total_expenses"`
	NetProfit          decimal.Decimal     `json:"net_profit"`
	ExpensesByCategory []CategoryBreakdown `json:"expenses_by_category"`
	IsSnapshot         bool                `json:"is_snapshot"`
	Failed             bool                `json:"failed,omitempty"`
	Error              string              `json:"error,omitempty"`
}

// Snapshot converte o resumo calculado no registro persistível
func (s *MonthlySummary) Snapshot() *MonthlySnapshot {
	return &MonthlySnapshot{
		Month:             s.Month,
		TotalIncome:       s.TotalIncome,
		TotalOnboarding:   s.TotalOnboarding,
		TotalMrrServices:  s.TotalMrrServices,
		TotalMrrCommunity: s.TotalMrrCommunity,
		TotalExpenses:     s.TotalExpenses,
		NetProfit:         s.NetProfit,
	}
}
