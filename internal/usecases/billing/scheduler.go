package billing

import (
	"math"
	"time"

	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
)

const day = 24 * time.Hour

// CurrentCycle retorna o ciclo [início, fim) que contém "now". O dia de
// cobrança é limitado ao tamanho de cada mês.
func CurrentCycle(billingDay int, now time.Time) (time.Time, time.Time) {
	loc := now.Location()
	effective := calendar.ClampDayToMonth(billingDay, now.Year(), now.Month())

	if now.Day() >= effective {
		next := calendar.MonthStart(now).AddDate(0, 1, 0)
		return calendar.DueDateIn(now.Year(), now.Month(), billingDay, loc),
			calendar.DueDateIn(next.Year(), next.Month(), billingDay, loc)
	}

	previous := calendar.MonthStart(now).AddDate(0, -1, 0)
	return calendar.DueDateIn(previous.Year(), previous.Month(), billingDay, loc),
		calendar.DueDateIn(now.Year(), now.Month(), billingDay, loc)
}

// GetBillingStatus recalcula a situação da despesa a partir dos campos
// gravados; não existe estado próprio além de LastPaymentDate.
func GetBillingStatus(expense domain.Expense, now time.Time) domain.BillingStatus {
	if expense.BillingDay == nil {
		return domain.BillingStatus{Status: domain.BillingStatusNoDate}
	}

	billingDay := *expense.BillingDay
	start, end := CurrentCycle(billingDay, now)

	if expense.LastPaymentDate != nil {
		paidAt := *expense.LastPaymentDate
		if !paidAt.Before(start) && paidAt.Before(end) {
			return domain.BillingStatus{Status: domain.BillingStatusPaid}
		}
	}

	// Em meses curtos o vencimento cai no último dia (ex.: 31 -> 30 de abril)
	// e esse dia já conta como vencido.
	effective := calendar.ClampDayToMonth(billingDay, now.Year(), now.Month())
	if now.Day() > effective || (effective < billingDay && now.Day() == effective) {
		zero := 0
		return domain.BillingStatus{Status: domain.BillingStatusExpired, DaysRemaining: &zero}
	}

	remaining := effective - now.Day()
	return domain.BillingStatus{Status: domain.BillingStatusUpcoming, DaysRemaining: &remaining}
}

// GetNextDueDate projeta a próxima ocorrência do dia de cobrança a partir de
// hoje (inclusive). DaysUntil é contado a partir de now e nunca é negativo:
// o vencimento de hoje, já depois da meia-noite, conta 0.
// Retorna nil quando a despesa não tem dia de cobrança.
func GetNextDueDate(expense domain.Expense, now time.Time) *domain.NextDue {
	if expense.BillingDay == nil {
		return nil
	}

	today := calendar.StartOfDay(now)
	due := calendar.DueDateIn(now.Year(), now.Month(), *expense.BillingDay, now.Location())
	if due.Before(today) {
		next := calendar.MonthStart(now).AddDate(0, 1, 0)
		due = calendar.DueDateIn(next.Year(), next.Month(), *expense.BillingDay, now.Location())
	}

	// arredondar absorve dias de 23h/25h no horário de verão
	return &domain.NextDue{
		Date:      due,
		DaysUntil: max(0, int(math.Round(float64(due.Sub(now))/float64(day)))),
	}
}
