package summarizing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
)

// SourceData são os registros brutos das quatro coleções para uma janela
// qualquer (um mês ou vários). Summarize recorta a janela de cada mês.
type SourceData struct {
	OnboardingEvents []domain.OnboardingEvent
	RecurringSales   []domain.RecurringSale
	CommunityMetrics []domain.CommunityMetricSnapshot
	Expenses         []domain.Expense
}

// Summarize calcula o resumo do mês a partir de dados já carregados.
// É a única implementação das regras de janela: o cálculo de um mês e o
// cálculo em lote passam por aqui, por isso os dois caminhos não divergem.
func Summarize(month time.Time, data SourceData) domain.MonthlySummary {
	start := calendar.MonthStart(month)
	end := calendar.MonthEnd(month)

	totalOnboarding := decimal.Zero
	for _, event := range data.OnboardingEvents {
		if within(event.OccurredAt, start, end) {
			totalOnboarding = totalOnboarding.Add(event.Amount)
		}
	}

	// Aproximação: usa o status atual da assinatura também para meses passados
	totalMrrServices := decimal.Zero
	for _, sale := range data.RecurringSales {
		if sale.Status == domain.RecurringSaleStatusActive && !sale.CreatedAt.After(end) {
			totalMrrServices = totalMrrServices.Add(sale.RecurringAmount)
		}
	}

	totalMrrCommunity := latestCommunityAmount(data.CommunityMetrics, start, end)

	totalIncome := totalOnboarding.Add(totalMrrServices).Add(totalMrrCommunity)

	active := make([]domain.Expense, 0, len(data.Expenses))
	totalExpenses := decimal.Zero
	for _, expense := range data.Expenses {
		if expense.ActiveBetween(start, end) {
			active = append(active, expense)
			totalExpenses = totalExpenses.Add(expense.Amount)
		}
	}

	return domain.MonthlySummary{
		Month:              start,
		Period:             calendar.FormatPeriod(start),
		TotalIncome:        totalIncome,
		TotalOnboarding:    totalOnboarding,
		TotalMrrServices:   totalMrrServices,
		TotalMrrCommunity:  totalMrrCommunity,
		TotalExpenses:      totalExpenses,
		NetProfit:          totalIncome.Sub(totalExpenses),
		ExpensesByCategory: groupByCategory(active),
	}
}

// As observações semanais são reapresentações do mesmo valor mensal:
// vale a de maior week_start dentro do mês, nunca a soma.
func latestCommunityAmount(metrics []domain.CommunityMetricSnapshot, start, end time.Time) decimal.Decimal {
	var latest *domain.CommunityMetricSnapshot
	for i := range metrics {
		metric := &metrics[i]
		if !within(metric.WeekStart, start, end) {
			continue
		}
		if latest == nil || metric.WeekStart.After(latest.WeekStart) {
			latest = metric
		}
	}

	if latest == nil {
		return decimal.Zero
	}
	return latest.CommunityRecurringAmount
}

func groupByCategory(expenses []domain.Expense) []domain.CategoryBreakdown {
	sort.SliceStable(expenses, func(i, j int) bool {
		if !expenses[i].StartDate.Equal(expenses[j].StartDate) {
			return expenses[i].StartDate.Before(expenses[j].StartDate)
		}
		return expenses[i].ID < expenses[j].ID
	})

	indexByCategory := make(map[string]int)
	groups := make([]domain.CategoryBreakdown, 0)
	for _, expense := range expenses {
		idx, ok := indexByCategory[expense.CategoryID]
		if !ok {
			idx = len(groups)
			indexByCategory[expense.CategoryID] = idx
			groups = append(groups, domain.CategoryBreakdown{
				CategoryID: expense.CategoryID,
				Total:      decimal.Zero,
				Items:      []domain.Expense{},
			})
		}

		groups[idx].Total = groups[idx].Total.Add(expense.Amount)
		groups[idx].Items = append(groups[idx].Items, expense)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CategoryID < groups[j].CategoryID
	})

	return groups
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
