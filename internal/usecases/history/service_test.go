package history

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/summarizing"
	"go.uber.org/mock/gomock"
)

func scenarioStore() *memoryStore {
	store := newMemoryStore()
	store.expenses = []domain.Expense{
		{ID: "ex1", Name: "Servidor", Amount: decimal.NewFromInt(100), CategoryID: "infra", Type: domain.ExpenseTypeRecurring, StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	store.onboarding = []domain.OnboardingEvent{
		{ID: "ob1", ClientID: "c1", Amount: decimal.NewFromInt(500), OccurredAt: time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)},
	}
	store.sales = []domain.RecurringSale{
		{ID: "rs1", ClientID: "c1", RecurringAmount: decimal.NewFromInt(200), Status: domain.RecurringSaleStatusActive, CreatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}
	return store
}

func newHistoryService(t *testing.T, store *memoryStore, epochYear int) (*Service, *mocks.MockMonthlySnapshotRepository) {
	ctrl := gomock.NewController(t)
	snapshotRepo := mocks.NewMockMonthlySnapshotRepository(ctrl)

	aggregator := summarizing.NewService(store.onboardingRepo(), store.salesRepo(), store.communityRepo(), store.expenseRepo())
	provider := NewPreferSnapshotThenCompute(NewSnapshotBacked(snapshotRepo), NewLiveComputed(aggregator))

	return NewService(provider, aggregator, snapshotRepo, config.History{EpochYear: epochYear, MaxMonths: 24}), snapshotRepo
}

func TestService_GetHistory(t *testing.T) {
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	febSnapshot := &domain.MonthlySnapshot{
		Month:       feb,
		TotalIncome: decimal.NewFromInt(999),
		NetProfit:   decimal.NewFromInt(899),
	}

	tests := []struct {
		name     string
		months   int
		epoch    int
		setup    func(repo *mocks.MockMonthlySnapshotRepository)
		validate func(t *testing.T, series []domain.MonthlySummary, err error)
	}{
		{
			name:   "usa snapshot quando existe e recalcula os demais meses",
			months: 3,
			epoch:  2025,
			setup: func(repo *mocks.MockMonthlySnapshotRepository) {
				repo.EXPECT().GetByMonth(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, month time.Time) (*domain.MonthlySnapshot, error) {
						if month.Equal(feb) {
							return febSnapshot, nil
						}
						return nil, nil
					}).Times(3)
			},
			validate: func(t *testing.T, series []domain.MonthlySummary, err error) {
				require.NoError(t, err)
				require.Len(t, series, 3)

				assert.Equal(t, "2026-03", series[0].Period)
				assert.False(t, series[0].IsSnapshot)
				assert.Equal(t, "600", series[0].NetProfit.String())

				assert.Equal(t, "2026-02", series[1].Period)
				assert.True(t, series[1].IsSnapshot)
				assert.Equal(t, "999", series[1].TotalIncome.String())

				assert.Equal(t, "2026-01", series[2].Period)
				assert.Equal(t, "-100", series[2].NetProfit.String())
			},
		},
		{
			name:   "meses anteriores ao ano de lançamento são omitidos",
			months: 6,
			epoch:  2026,
			setup: func(repo *mocks.MockMonthlySnapshotRepository) {
				repo.EXPECT().GetByMonth(gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)
			},
			validate: func(t *testing.T, series []domain.MonthlySummary, err error) {
				require.NoError(t, err)
				require.Len(t, series, 3)
				assert.Equal(t, "2026-01", series[2].Period)
			},
		},
		{
			name:   "quantidade de meses inválida",
			months: 0,
			epoch:  2025,
			setup:  func(repo *mocks.MockMonthlySnapshotRepository) {},
			validate: func(t *testing.T, series []domain.MonthlySummary, err error) {
				assert.Nil(t, series)
				assert.True(t, errors.Is(err, summarizing.ErrInvalidDateRange))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newHistoryService(t, scenarioStore(), tt.epoch)
			tt.setup(repo)

			series, err := service.GetHistory(context.Background(), tt.months, now)
			tt.validate(t, series, err)
		})
	}
}

func TestService_GetHistory_FailedMonthsAreFlagged(t *testing.T) {
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	store := scenarioStore()
	store.expensesErr = errors.New("connection reset")

	service, repo := newHistoryService(t, store, 2025)
	repo.EXPECT().GetByMonth(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, month time.Time) (*domain.MonthlySnapshot, error) {
			if month.Month() == time.February {
				return &domain.MonthlySnapshot{Month: month, TotalIncome: decimal.NewFromInt(10)}, nil
			}
			return nil, nil
		}).Times(2)

	series, err := service.GetHistory(context.Background(), 2, now)

	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.True(t, series[0].Failed)
	assert.Contains(t, series[0].Error, summarizing.ErrSourceUnavailable.Error())
	assert.False(t, series[1].Failed)
	assert.True(t, series[1].IsSnapshot)
}

func TestService_GetHistoryBulk_FailedMonthsKeepSnapshots(t *testing.T) {
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	store := scenarioStore()
	store.expensesErr = errors.New("connection reset")

	service, repo := newHistoryService(t, store, 2025)
	snapshot := &domain.MonthlySnapshot{Month: feb, TotalIncome: decimal.NewFromInt(10)}
	repo.EXPECT().GetByMonth(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, month time.Time) (*domain.MonthlySnapshot, error) {
			if month.Equal(feb) {
				return snapshot, nil
			}
			return nil, nil
		}).Times(2)
	repo.EXPECT().ListBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.MonthlySnapshot{*snapshot}, nil)

	single, err := service.GetHistory(context.Background(), 2, now)
	require.NoError(t, err)

	bulk, err := service.GetHistoryBulk(context.Background(), 2, now)
	require.NoError(t, err)

	require.Len(t, bulk, 2)
	assert.True(t, bulk[0].Failed)
	assert.Contains(t, bulk[0].Error, summarizing.ErrSourceUnavailable.Error())
	assert.False(t, bulk[1].Failed)
	assert.True(t, bulk[1].IsSnapshot)
	assert.True(t, decimal.NewFromInt(10).Equal(bulk[1].TotalIncome))

	// os dois caminhos concordam mês a mês, inclusive nas falhas
	require.Len(t, single, len(bulk))
	for i := range single {
		assert.Equal(t, single[i].Period, bulk[i].Period)
		assert.Equal(t, single[i].Failed, bulk[i].Failed, "mês %s", single[i].Period)
		assert.Equal(t, single[i].IsSnapshot, bulk[i].IsSnapshot, "mês %s", single[i].Period)
	}
}

func TestService_GetHistoryBulk_MatchesGetHistory(t *testing.T) {
	now := time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC)
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	store := randomDataset(99, start, 15)

	service, repo := newHistoryService(t, store, 2025)

	snapshot := domain.MonthlySnapshot{
		Month:       time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		TotalIncome: decimal.NewFromInt(1234),
		NetProfit:   decimal.NewFromInt(1000),
	}
	repo.EXPECT().GetByMonth(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, month time.Time) (*domain.MonthlySnapshot, error) {
			if month.Equal(snapshot.Month) {
				return &snapshot, nil
			}
			return nil, nil
		}).AnyTimes()
	repo.EXPECT().ListBetween(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.MonthlySnapshot{snapshot}, nil)

	single, err := service.GetHistory(context.Background(), 18, now)
	require.NoError(t, err)

	bulk, err := service.GetHistoryBulk(context.Background(), 18, now)
	require.NoError(t, err)

	require.Len(t, single, 15)
	require.Len(t, bulk, len(single))
	for i := range single {
		assertSameSummary(t, &single[i], &bulk[i])
	}
	assert.True(t, bulk[5].IsSnapshot)
}

func TestService_GetRange(t *testing.T) {
	service, repo := newHistoryService(t, scenarioStore(), 2025)

	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)

	repo.EXPECT().ListBetween(gomock.Any(), from, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)).
		Return(nil, nil)

	series, err := service.GetRange(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, "2026-03", series[0].Period)
	assert.Equal(t, "700", series[0].TotalIncome.String())
	assert.Equal(t, "2026-01", series[2].Period)

	_, err = service.GetRange(context.Background(), to, from)
	assert.True(t, errors.Is(err, summarizing.ErrInvalidDateRange))
}

func TestService_SnapshotMonth(t *testing.T) {
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("snapshot existente não é sobrescrito", func(t *testing.T) {
		service, repo := newHistoryService(t, scenarioStore(), 2025)
		repo.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, snapshot *domain.MonthlySnapshot) (bool, error) {
				assert.Equal(t, "600", snapshot.NetProfit.String())
				return false, nil
			})

		snapshot, created, err := service.SnapshotMonth(context.Background(), march, false)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "700", snapshot.TotalIncome.String())
	})

	t.Run("force regrava o snapshot", func(t *testing.T) {
		service, repo := newHistoryService(t, scenarioStore(), 2025)
		repo.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(nil)

		_, created, err := service.SnapshotMonth(context.Background(), march, true)
		require.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("fonte obrigatória indisponível não grava nada", func(t *testing.T) {
		store := scenarioStore()
		store.expensesErr = errors.New("boom")
		service, _ := newHistoryService(t, store, 2025)

		_, _, err := service.SnapshotMonth(context.Background(), march, false)
		assert.True(t, errors.Is(err, summarizing.ErrSourceUnavailable))
	})
}
