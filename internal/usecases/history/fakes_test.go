package history

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
)

// memoryStore implementa as quatro coleções de origem em memória, com os
// mesmos predicados usados nas queries SQL
type memoryStore struct {
	onboarding  []domain.OnboardingEvent
	sales       []domain.RecurringSale
	community   []domain.CommunityMetricSnapshot
	expenses    []domain.Expense
	expensesErr error

	mu    sync.Mutex
	calls map[string]int
}

// As consultas rodam em paralelo (errgroup)
func (m *memoryStore) count(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *memoryStore) callsTo(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func newMemoryStore() *memoryStore {
	return &memoryStore{calls: map[string]int{}}
}

func (m *memoryStore) onboardingRepo() *memoryOnboarding { return &memoryOnboarding{m} }
func (m *memoryStore) salesRepo() *memorySales           { return &memorySales{m} }
func (m *memoryStore) communityRepo() *memoryCommunity   { return &memoryCommunity{m} }
func (m *memoryStore) expenseRepo() *memoryExpenses      { return &memoryExpenses{m} }

type memoryOnboarding struct{ store *memoryStore }

func (r *memoryOnboarding) ListBetween(_ context.Context, start, end time.Time) ([]domain.OnboardingEvent, error) {
	r.store.count("onboarding")
	out := []domain.OnboardingEvent{}
	for _, e := range r.store.onboarding {
		if !e.OccurredAt.Before(start) && !e.OccurredAt.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryOnboarding) Create(_ context.Context, event *domain.OnboardingEvent) error {
	r.store.onboarding = append(r.store.onboarding, *event)
	return nil
}

type memorySales struct{ store *memoryStore }

func (r *memorySales) ListActiveCreatedUntil(_ context.Context, end time.Time) ([]domain.RecurringSale, error) {
	r.store.count("sales")
	out := []domain.RecurringSale{}
	for _, s := range r.store.sales {
		if s.Status == domain.RecurringSaleStatusActive && !s.CreatedAt.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memorySales) GetByID(_ context.Context, id string) (*domain.RecurringSale, error) {
	for i := range r.store.sales {
		if r.store.sales[i].ID == id {
			return &r.store.sales[i], nil
		}
	}
	return nil, nil
}

func (r *memorySales) Create(_ context.Context, sale *domain.RecurringSale) error {
	r.store.sales = append(r.store.sales, *sale)
	return nil
}

func (r *memorySales) UpdateStatus(_ context.Context, id string, status domain.RecurringSaleStatus, changedAt time.Time) error {
	for i := range r.store.sales {
		if r.store.sales[i].ID == id {
			r.store.sales[i].Status = status
			r.store.sales[i].CancelledAt = &changedAt
		}
	}
	return nil
}

type memoryCommunity struct{ store *memoryStore }

func (r *memoryCommunity) ListBetween(_ context.Context, start, end time.Time) ([]domain.CommunityMetricSnapshot, error) {
	r.store.count("community")
	out := []domain.CommunityMetricSnapshot{}
	for _, c := range r.store.community {
		if !c.WeekStart.Before(start) && !c.WeekStart.After(end) {
			out = append(out, c)
		}
	}
	return out, nil
}

type memoryExpenses struct{ store *memoryStore }

func (r *memoryExpenses) ListActiveBetween(_ context.Context, start, end time.Time) ([]domain.Expense, error) {
	r.store.count("expenses")
	if r.store.expensesErr != nil {
		return nil, r.store.expensesErr
	}
	out := []domain.Expense{}
	for _, e := range r.store.expenses {
		if e.ActiveBetween(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryExpenses) List(_ context.Context) ([]domain.Expense, error) {
	return r.store.expenses, nil
}

func (r *memoryExpenses) GetByID(_ context.Context, id string) (*domain.Expense, error) {
	for i := range r.store.expenses {
		if r.store.expenses[i].ID == id {
			return &r.store.expenses[i], nil
		}
	}
	return nil, nil
}

func (r *memoryExpenses) Create(_ context.Context, expense *domain.Expense) error {
	r.store.expenses = append(r.store.expenses, *expense)
	return nil
}

func (r *memoryExpenses) Update(_ context.Context, expense *domain.Expense) error {
	for i := range r.store.expenses {
		if r.store.expenses[i].ID == expense.ID {
			r.store.expenses[i] = *expense
		}
	}
	return nil
}

func (r *memoryExpenses) UpdateLastPaymentDate(_ context.Context, id string, paidAt time.Time) error {
	for i := range r.store.expenses {
		if r.store.expenses[i].ID == id {
			r.store.expenses[i].LastPaymentDate = &paidAt
		}
	}
	return nil
}

// randomDataset gera registros espalhados entre start e start+months meses
func randomDataset(seed int64, start time.Time, months int) *memoryStore {
	rng := rand.New(rand.NewSource(seed))
	store := newMemoryStore()

	span := start.AddDate(0, months, 0).Sub(start)
	randomInstant := func() time.Time {
		return start.Add(time.Duration(rng.Int63n(int64(span))))
	}
	randomAmount := func() decimal.Decimal {
		return decimal.New(rng.Int63n(500000)+1, -2)
	}
	categories := []string{"aluguel", "infra", "marketing", "software"}
	statuses := []domain.RecurringSaleStatus{
		domain.RecurringSaleStatusActive,
		domain.RecurringSaleStatusActive,
		domain.RecurringSaleStatusCancelled,
		domain.RecurringSaleStatusCompleted,
	}

	for i := 0; i < 80; i++ {
		store.onboarding = append(store.onboarding, domain.OnboardingEvent{
			ID:         randomID("ob", i),
			ClientID:   randomID("client", rng.Intn(10)),
			Amount:     randomAmount(),
			OccurredAt: randomInstant(),
		})
	}

	for i := 0; i < 25; i++ {
		store.sales = append(store.sales, domain.RecurringSale{
			ID:              randomID("rs", i),
			ClientID:        randomID("client", rng.Intn(10)),
			RecurringAmount: randomAmount(),
			Status:          statuses[rng.Intn(len(statuses))],
			CreatedAt:       randomInstant(),
		})
	}

	for week := start; week.Before(start.AddDate(0, months, 0)); week = week.AddDate(0, 0, 7) {
		if rng.Intn(4) == 0 {
			continue
		}
		store.community = append(store.community, domain.CommunityMetricSnapshot{
			WeekStart:                week,
			CommunityRecurringAmount: randomAmount(),
		})
	}

	for i := 0; i < 40; i++ {
		expense := domain.Expense{
			ID:         randomID("ex", i),
			Name:       randomID("despesa", i),
			Amount:     randomAmount(),
			CategoryID: categories[rng.Intn(len(categories))],
			Type:       domain.ExpenseTypeFixed,
			StartDate:  randomInstant().AddDate(0, -2, 0),
		}
		if rng.Intn(3) == 0 {
			end := expense.StartDate.Add(time.Duration(rng.Int63n(int64(span))))
			expense.EndDate = &end
		}
		if rng.Intn(2) == 0 {
			day := rng.Intn(31) + 1
			expense.Type = domain.ExpenseTypeRecurring
			expense.BillingDay = &day
		}
		store.expenses = append(store.expenses, expense)
	}

	return store
}

func randomID(prefix string, i int) string {
	return prefix + "-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
}
