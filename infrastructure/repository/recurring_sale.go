package repository

//go:generate mockgen -source=recurring_sale.go -destination=mocks/recurring_sale_mock.go -package=mocks

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

const recurringSalesTable = "recurring_sales"

var recurringSaleColumns = []string{"id", "client_id", "recurring_amount", "status", "created_at", "cancelled_at"}

type RecurringSaleRepository interface {
	ListActiveCreatedUntil(ctx context.Context, end time.Time) ([]domain.RecurringSale, error)
	GetByID(ctx context.Context, id string) (*domain.RecurringSale, error)
	Create(ctx context.Context, sale *domain.RecurringSale) error
	UpdateStatus(ctx context.Context, id string, status domain.RecurringSaleStatus, changedAt time.Time) error
}

type recurringSaleRepository struct {
	conn postgres.Queryer
}

func NewRecurringSaleRepository(conn postgres.Queryer) RecurringSaleRepository {
	return &recurringSaleRepository{
		conn: conn,
	}
}

// ListActiveCreatedUntil retorna as assinaturas atualmente ativas criadas até end
func (r *recurringSaleRepository) ListActiveCreatedUntil(ctx context.Context, end time.Time) ([]domain.RecurringSale, error) {
	query, args, err := squirrel.
		Select(recurringSaleColumns...).
		From(recurringSalesTable).
		Where(squirrel.Eq{"status": domain.RecurringSaleStatusActive}).
		Where(squirrel.LtOrEq{"created_at": end}).
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err, recurringSalesTable)
	}
	defer rows.Close()

	sales := make([]domain.RecurringSale, 0)
	for rows.Next() {
		sale, err := scanRecurringSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear assinatura: %w", err)
		}
		sales = append(sales, *sale)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

func (r *recurringSaleRepository) GetByID(ctx context.Context, id string) (*domain.RecurringSale, error) {
	query, args, err := squirrel.
		Select(recurringSaleColumns...).
		From(recurringSalesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	sale, err := scanRecurringSale(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryError(err, recurringSalesTable)
	}

	return sale, nil
}

func (r *recurringSaleRepository) Create(ctx context.Context, sale *domain.RecurringSale) error {
	query, args, err := squirrel.
		Insert(recurringSalesTable).
		Columns(recurringSaleColumns...).
		Values(sale.ID, sale.ClientID, sale.RecurringAmount, sale.Status, sale.CreatedAt, sale.CancelledAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryError(err, recurringSalesTable)
	}

	return nil
}

// UpdateStatus só altera assinaturas ativas, a transição é de mão única
func (r *recurringSaleRepository) UpdateStatus(ctx context.Context, id string, status domain.RecurringSaleStatus, changedAt time.Time) error {
	query, args, err := squirrel.
		Update(recurringSalesTable).
		Set("status", status).
		Set("cancelled_at", changedAt).
		Where(squirrel.Eq{"id": id, "status": domain.RecurringSaleStatusActive}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapQueryError(err, recurringSalesTable)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("assinatura %s não está ativa: %w", id, sql.ErrNoRows)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecurringSale(row rowScanner) (*domain.RecurringSale, error) {
	sale := &domain.RecurringSale{}
	var cancelledAt sql.NullTime

	err := row.Scan(
		&sale.ID,
		&sale.ClientID,
		&sale.RecurringAmount,
		&sale.Status,
		&sale.CreatedAt,
		&cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		sale.CancelledAt = &cancelledAt.Time
	}

	return sale, nil
}
