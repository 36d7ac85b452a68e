package repository

//go:generate mockgen -source=monthly_snapshot.go -destination=mocks/monthly_snapshot_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/finance-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
)

const monthlySnapshotsTable = "monthly_snapshots"

var monthlySnapshotColumns = []string{
	"month", "total_income", "total_onboarding", "total_mrr_services",
	"total_mrr_community", "total_expenses", "net_profit", "created_at", "updated_at",
}

type MonthlySnapshotRepository interface {
	GetByMonth(ctx context.Context, month time.Time) (*domain.MonthlySnapshot, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.MonthlySnapshot, error)
	// CreateIfAbsent grava o snapshot apenas se o mês ainda não tiver um; retorna se gravou
	CreateIfAbsent(ctx context.Context, snapshot *domain.MonthlySnapshot) (bool, error)
	SaveOrUpdate(ctx context.Context, snapshot *domain.MonthlySnapshot) error
}

type monthlySnapshotRepository struct {
	conn postgres.Queryer
}

func NewMonthlySnapshotRepository(conn postgres.Queryer) MonthlySnapshotRepository {
	return &monthlySnapshotRepository{
		conn: conn,
	}
}

// A coluna month é DATE; o mês é sempre comparado pelo "YYYY-MM-01"
func monthKey(month time.Time) string {
	return time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

func (r *monthlySnapshotRepository) GetByMonth(ctx context.Context, month time.Time) (*domain.MonthlySnapshot, error) {
	query, args, err := squirrel.
		Select(monthlySnapshotColumns...).
		From(monthlySnapshotsTable).
		Where(squirrel.Eq{"month": monthKey(month)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot, err := scanMonthlySnapshot(r.conn.QueryRowContext(ctx, query, args...), month.Location())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryError(err, monthlySnapshotsTable)
	}

	return snapshot, nil
}

func (r *monthlySnapshotRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.MonthlySnapshot, error) {
	query, args, err := squirrel.
		Select(monthlySnapshotColumns...).
		From(monthlySnapshotsTable).
		Where(squirrel.GtOrEq{"month": monthKey(start)}).
		Where(squirrel.LtOrEq{"month": monthKey(end)}).
		OrderBy("month DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err, monthlySnapshotsTable)
	}
	defer rows.Close()

	snapshots := make([]domain.MonthlySnapshot, 0)
	for rows.Next() {
		snapshot, err := scanMonthlySnapshot(rows, start.Location())
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshot mensal: %w", err)
		}
		snapshots = append(snapshots, *snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *monthlySnapshotRepository) CreateIfAbsent(ctx context.Context, snapshot *domain.MonthlySnapshot) (bool, error) {
	query, args, err := r.insert(snapshot).
		Suffix("ON CONFLICT (month) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapQueryError(err, monthlySnapshotsTable)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return affected > 0, nil
}

func (r *monthlySnapshotRepository) SaveOrUpdate(ctx context.Context, snapshot *domain.MonthlySnapshot) error {
	query, args, err := r.insert(snapshot).
		Suffix(`
			ON CONFLICT (month) DO UPDATE SET
				total_income = EXCLUDED.total_income,
				total_onboarding = EXCLUDED.total_onboarding,
				total_mrr_services = EXCLUDED.total_mrr_services,
				total_mrr_community = EXCLUDED.total_mrr_community,
				total_expenses = EXCLUDED.total_expenses,
				net_profit = EXCLUDED.net_profit,
				updated_at = NOW()
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryError(err, monthlySnapshotsTable)
	}

	return nil
}

func (r *monthlySnapshotRepository) insert(snapshot *domain.MonthlySnapshot) squirrel.InsertBuilder {
	return squirrel.
		Insert(monthlySnapshotsTable).
		Columns(monthlySnapshotColumns[:7]...).
		Values(
			monthKey(snapshot.Month),
			snapshot.TotalIncome,
			snapshot.TotalOnboarding,
			snapshot.TotalMrrServices,
			snapshot.TotalMrrCommunity,
			snapshot.TotalExpenses,
			snapshot.NetProfit,
		).
		PlaceholderFormat(squirrel.Dollar)
}

func scanMonthlySnapshot(row rowScanner, loc *time.Location) (*domain.MonthlySnapshot, error) {
	snapshot := &domain.MonthlySnapshot{}
	var month time.Time

	err := row.Scan(
		&month,
		&snapshot.TotalIncome,
		&snapshot.TotalOnboarding,
		&snapshot.TotalMrrServices,
		&snapshot.TotalMrrCommunity,
		&snapshot.TotalExpenses,
		&snapshot.NetProfit,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if loc == nil {
		loc = time.UTC
	}
	snapshot.Month = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)

	return snapshot, nil
}
