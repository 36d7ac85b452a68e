package summarizing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestSummarize(t *testing.T) {
	march := date(2026, time.March, 1)

	tests := []struct {
		name     string
		data     SourceData
		validate func(t *testing.T, summary domain.MonthlySummary)
	}{
		{
			name: "cenário com onboarding, assinatura e despesa recorrente",
			data: SourceData{
				OnboardingEvents: []domain.OnboardingEvent{
					{ID: "ob1", ClientID: "c1", Amount: dec("500"), OccurredAt: date(2026, time.March, 15)},
				},
				RecurringSales: []domain.RecurringSale{
					{ID: "rs1", ClientID: "c1", RecurringAmount: dec("200"), Status: domain.RecurringSaleStatusActive, CreatedAt: date(2026, time.February, 1)},
				},
				Expenses: []domain.Expense{
					{ID: "ex1", Name: "Servidor", Amount: dec("100"), CategoryID: "infra", Type: domain.ExpenseTypeRecurring, StartDate: date(2026, time.January, 1)},
				},
			},
			validate: func(t *testing.T, summary domain.MonthlySummary) {
				assert.True(t, dec("500").Equal(summary.TotalOnboarding))
				assert.True(t, dec("200").Equal(summary.TotalMrrServices))
				assert.True(t, decimal.Zero.Equal(summary.TotalMrrCommunity))
				assert.True(t, dec("100").Equal(summary.TotalExpenses))
				assert.True(t, dec("700").Equal(summary.TotalIncome))
				assert.True(t, dec("600").Equal(summary.NetProfit))
				assert.Equal(t, "2026-03", summary.Period)
				assert.False(t, summary.IsSnapshot)
			},
		},
		{
			name: "métrica da comunidade usa apenas a semana mais recente do mês",
			data: SourceData{
				CommunityMetrics: []domain.CommunityMetricSnapshot{
					{WeekStart: date(2026, time.March, 16), CommunityRecurringAmount: dec("330")},
					{WeekStart: date(2026, time.March, 2), CommunityRecurringAmount: dec("300")},
					{WeekStart: date(2026, time.March, 9), CommunityRecurringAmount: dec("310")},
					{WeekStart: date(2026, time.April, 6), CommunityRecurringAmount: dec("999")},
				},
			},
			validate: func(t *testing.T, summary domain.MonthlySummary) {
				assert.Equal(t, "330", summary.TotalMrrCommunity.String())
				assert.Equal(t, "330", summary.TotalIncome.String())
			},
		},
		{
			name: "limites do mês: último milissegundo entra, primeiro instante do mês seguinte não",
			data: SourceData{
				OnboardingEvents: []domain.OnboardingEvent{
					{ID: "ob1", Amount: dec("10"), OccurredAt: date(2026, time.March, 1)},
					{ID: "ob2", Amount: dec("20"), OccurredAt: date(2026, time.April, 1).Add(-time.Millisecond)},
					{ID: "ob3", Amount: dec("40"), OccurredAt: date(2026, time.April, 1)},
					{ID: "ob4", Amount: dec("80"), OccurredAt: date(2026, time.March, 1).Add(-time.Millisecond)},
				},
			},
			validate: func(t *testing.T, summary domain.MonthlySummary) {
				assert.Equal(t, "30", summary.TotalOnboarding.String())
			},
		},
		{
			name: "assinaturas canceladas ou criadas depois do mês não contam",
			data: SourceData{
				RecurringSales: []domain.RecurringSale{
					{ID: "rs1", RecurringAmount: dec("100"), Status: domain.RecurringSaleStatusCancelled, CreatedAt: date(2026, time.January, 1)},
					{ID: "rs2", RecurringAmount: dec("50"), Status: domain.RecurringSaleStatusActive, CreatedAt: date(2026, time.April, 1)},
					{ID: "rs3", RecurringAmount: dec("25"), Status: domain.RecurringSaleStatusActive, CreatedAt: date(2026, time.March, 31)},
				},
			},
			validate: func(t *testing.T, summary domain.MonthlySummary) {
				assert.Equal(t, "25", summary.TotalMrrServices.String())
			},
		},
		{
			name: "despesas agrupadas por categoria em ordem",
			data: SourceData{
				Expenses: []domain.Expense{
					{ID: "b", Amount: dec("10"), CategoryID: "software", StartDate: date(2026, time.February, 1)},
					{ID: "a", Amount: dec("15"), CategoryID: "software", StartDate: date(2026, time.February, 1)},
					{ID: "c", Amount: dec("30"), CategoryID: "aluguel", StartDate: date(2025, time.January, 1)},
					{ID: "d", Amount: dec("99"), CategoryID: "aluguel", StartDate: date(2025, time.January, 1), EndDate: timePtr(date(2026, time.February, 28))},
					{ID: "e", Amount: dec("5"), CategoryID: "aluguel", StartDate: date(2026, time.March, 31), EndDate: timePtr(date(2026, time.March, 31))},
				},
			},
			validate: func(t *testing.T, summary domain.MonthlySummary) {
				require.Len(t, summary.ExpensesByCategory, 2)

				rent := summary.ExpensesByCategory[0]
				assert.Equal(t, "aluguel", rent.CategoryID)
				assert.Equal(t, "35", rent.Total.String())
				require.Len(t, rent.Items, 2)
				assert.Equal(t, "c", rent.Items[0].ID)
				assert.Equal(t, "e", rent.Items[1].ID)

				software := summary.ExpensesByCategory[1]
				assert.Equal(t, "software", software.CategoryID)
				assert.Equal(t, "25", software.Total.String())
				assert.Equal(t, "a", software.Items[0].ID)
				assert.Equal(t, "b", software.Items[1].ID)

				assert.Equal(t, "60", summary.TotalExpenses.String())
				assert.Equal(t, "-60", summary.NetProfit.String())
			},
		},
		{
			name: "sem dados gera resumo zerado",
			data: SourceData{},
			validate: func(t *testing.T, summary domain.MonthlySummary) {
				assert.True(t, summary.TotalIncome.IsZero())
				assert.True(t, summary.NetProfit.IsZero())
				assert.Empty(t, summary.ExpensesByCategory)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Summarize(march, tt.data))
		})
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	data := SourceData{
		Expenses: []domain.Expense{
			{ID: "x", Amount: dec("1.10"), CategoryID: "z", StartDate: date(2026, time.January, 1)},
			{ID: "y", Amount: dec("2.20"), CategoryID: "a", StartDate: date(2026, time.January, 1)},
		},
		OnboardingEvents: []domain.OnboardingEvent{
			{ID: "o", Amount: dec("3.33"), OccurredAt: date(2026, time.March, 3)},
		},
	}

	first := Summarize(date(2026, time.March, 10), data)
	second := Summarize(date(2026, time.March, 20), data)

	assert.Equal(t, first, second)
}
