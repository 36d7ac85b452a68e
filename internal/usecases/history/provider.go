package history

import (
	"context"
	"time"

	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/summarizing"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

// SummaryProvider fornece resumos mensais. Um resumo nil sem erro significa
// "não disponível nesta fonte".
type SummaryProvider interface {
	MonthSummary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error)
	// RangeSummaries retorna um resumo por mês, na mesma ordem de months.
	// Com erro, o slice pode vir parcial: entradas não nil continuam válidas.
	RangeSummaries(ctx context.Context, months []time.Time) ([]*domain.MonthlySummary, error)
}

// SnapshotBacked lê apenas os snapshots persistidos
type SnapshotBacked struct {
	repo repository.MonthlySnapshotRepository
}

func NewSnapshotBacked(repo repository.MonthlySnapshotRepository) *SnapshotBacked {
	return &SnapshotBacked{repo: repo}
}

func (p *SnapshotBacked) MonthSummary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error) {
	snapshot, err := p.repo.GetByMonth(ctx, calendar.MonthStart(month))
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, nil
	}

	return fromSnapshot(month, snapshot), nil
}

func (p *SnapshotBacked) RangeSummaries(ctx context.Context, months []time.Time) ([]*domain.MonthlySummary, error) {
	summaries := make([]*domain.MonthlySummary, len(months))
	if len(months) == 0 {
		return summaries, nil
	}

	start, end := bounds(months)
	snapshots, err := p.repo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byPeriod := make(map[string]*domain.MonthlySnapshot, len(snapshots))
	for i := range snapshots {
		byPeriod[calendar.FormatPeriod(snapshots[i].Month)] = &snapshots[i]
	}

	for i, month := range months {
		if snapshot, ok := byPeriod[calendar.FormatPeriod(month)]; ok {
			summaries[i] = fromSnapshot(month, snapshot)
		}
	}

	return summaries, nil
}

func fromSnapshot(month time.Time, snapshot *domain.MonthlySnapshot) *domain.MonthlySummary {
	start := calendar.MonthStart(month)
	return &domain.MonthlySummary{
		Month:              start,
		Period:             calendar.FormatPeriod(start),
		TotalIncome:        snapshot.TotalIncome,
		TotalOnboarding:    snapshot.TotalOnboarding,
		TotalMrrServices:   snapshot.TotalMrrServices,
		TotalMrrCommunity:  snapshot.TotalMrrCommunity,
		TotalExpenses:      snapshot.TotalExpenses,
		NetProfit:          snapshot.NetProfit,
		ExpensesByCategory: []domain.CategoryBreakdown{},
		IsSnapshot:         true,
	}
}

// LiveComputed recalcula a partir das coleções de origem
type LiveComputed struct {
	aggregator summarizing.Aggregator
}

func NewLiveComputed(aggregator summarizing.Aggregator) *LiveComputed {
	return &LiveComputed{aggregator: aggregator}
}

func (p *LiveComputed) MonthSummary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error) {
	return p.aggregator.MonthlySummary(ctx, month)
}

// RangeSummaries busca as coleções uma única vez para toda a janela e
// particiona em memória com as mesmas regras do cálculo de um mês
func (p *LiveComputed) RangeSummaries(ctx context.Context, months []time.Time) ([]*domain.MonthlySummary, error) {
	summaries := make([]*domain.MonthlySummary, len(months))
	if len(months) == 0 {
		return summaries, nil
	}

	start, end := bounds(months)
	data, err := p.aggregator.FetchRange(ctx, start, calendar.MonthEnd(end))
	if err != nil {
		return nil, err
	}

	for i, month := range months {
		summary := summarizing.Summarize(month, *data)
		summaries[i] = &summary
	}

	return summaries, nil
}

// PreferSnapshotThenCompute usa o snapshot quando existe e recalcula o restante
type PreferSnapshotThenCompute struct {
	snapshots SummaryProvider
	live      SummaryProvider
}

func NewPreferSnapshotThenCompute(snapshots, live SummaryProvider) *PreferSnapshotThenCompute {
	return &PreferSnapshotThenCompute{
		snapshots: snapshots,
		live:      live,
	}
}

func (p *PreferSnapshotThenCompute) MonthSummary(ctx context.Context, month time.Time) (*domain.MonthlySummary, error) {
	summary, err := p.snapshots.MonthSummary(ctx, month)
	if err != nil {
		// snapshot é cache: indisponível equivale a ausente
		log.ForContext(ctx).WithError(err).WithField("period", calendar.FormatPeriod(month)).
			Warn("history: falha ao ler snapshot, recalculando mês")
	}
	if summary != nil {
		return summary, nil
	}

	return p.live.MonthSummary(ctx, month)
}

func (p *PreferSnapshotThenCompute) RangeSummaries(ctx context.Context, months []time.Time) ([]*domain.MonthlySummary, error) {
	summaries, err := p.snapshots.RangeSummaries(ctx, months)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("history: falha ao ler snapshots, recalculando período")
		summaries = make([]*domain.MonthlySummary, len(months))
	}

	missing := make([]time.Time, 0, len(months))
	missingIdx := make([]int, 0, len(months))
	for i, summary := range summaries {
		if summary == nil {
			missing = append(missing, months[i])
			missingIdx = append(missingIdx, i)
		}
	}

	if len(missing) == 0 {
		return summaries, nil
	}

	// snapshots já resolvidos são mantidos mesmo se o recálculo falhar
	computed, err := p.live.RangeSummaries(ctx, missing)
	for i, idx := range missingIdx {
		if i < len(computed) {
			summaries[idx] = computed[i]
		}
	}

	return summaries, err
}

// bounds retorna o início do mês mais antigo e o início do mais recente
func bounds(months []time.Time) (time.Time, time.Time) {
	earliest := calendar.MonthStart(months[0])
	latest := earliest
	for _, month := range months[1:] {
		start := calendar.MonthStart(month)
		if start.Before(earliest) {
			earliest = start
		}
		if start.After(latest) {
			latest = start
		}
	}
	return earliest, latest
}
