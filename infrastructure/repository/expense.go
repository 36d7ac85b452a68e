package repository

//go:generate mockgen -source=expense.go -destination=mocks/expense_mock.go -package=mocks

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

const expensesTable = "expenses"

var expenseColumns = []string{
	"id", "name", "amount", "category_id", "type",
	"start_date", "end_date", "billing_day", "last_payment_date",
}

type ExpenseRepository interface {
	ListActiveBetween(ctx context.Context, start, end time.Time) ([]domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	GetByID(ctx context.Context, id string) (*domain.Expense, error)
	Create(ctx context.Context, expense *domain.Expense) error
	Update(ctx context.Context, expense *domain.Expense) error
	UpdateLastPaymentDate(ctx context.Context, id string, paidAt time.Time) error
}

type expenseRepository struct {
	conn postgres.Queryer
}

func NewExpenseRepository(conn postgres.Queryer) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

// ListActiveBetween retorna as despesas com start_date <= end e
// (end_date nulo ou end_date >= start)
func (r *expenseRepository) ListActiveBetween(ctx context.Context, start, end time.Time) ([]domain.Expense, error) {
	builder := squirrel.
		Select(expenseColumns...).
		From(expensesTable).
		Where(squirrel.LtOrEq{"start_date": end}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": start},
		})

	return r.list(ctx, builder)
}

func (r *expenseRepository) List(ctx context.Context) ([]domain.Expense, error) {
	return r.list(ctx, squirrel.Select(expenseColumns...).From(expensesTable))
}

func (r *expenseRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]domain.Expense, error) {
	query, args, err := builder.
		OrderBy("start_date ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err, expensesTable)
	}
	defer rows.Close()

	expenses := make([]domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
		}
		expenses = append(expenses, *expense)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return expenses, nil
}

func (r *expenseRepository) GetByID(ctx context.Context, id string) (*domain.Expense, error) {
	query, args, err := squirrel.
		Select(expenseColumns...).
		From(expensesTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	expense, err := scanExpense(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryError(err, expensesTable)
	}

	return expense, nil
}

func (r *expenseRepository) Create(ctx context.Context, expense *domain.Expense) error {
	query, args, err := squirrel.
		Insert(expensesTable).
		Columns(expenseColumns...).
		Values(expenseValues(expense)...).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryError(err, expensesTable)
	}

	return nil
}

func (r *expenseRepository) Update(ctx context.Context, expense *domain.Expense) error {
	values := expenseValues(expense)

	builder := squirrel.Update(expensesTable)
	for i, column := range expenseColumns[1:] {
		builder = builder.Set(column, values[i+1])
	}

	query, args, err := builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": expense.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapQueryError(err, expensesTable)
	}

	return requireAffected(result, expense.ID)
}

func (r *expenseRepository) UpdateLastPaymentDate(ctx context.Context, id string, paidAt time.Time) error {
	query, args, err := squirrel.
		Update(expensesTable).
		Set("last_payment_date", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapQueryError(err, expensesTable)
	}

	return requireAffected(result, id)
}

func requireAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("registro %s não encontrado: %w", id, sql.ErrNoRows)
	}
	return nil
}

func expenseValues(expense *domain.Expense) []any {
	var categoryID sql.NullString
	if expense.CategoryID != "" {
		categoryID = sql.NullString{String: expense.CategoryID, Valid: true}
	}

	var billingDay sql.NullInt32
	if expense.BillingDay != nil {
		billingDay = sql.NullInt32{Int32: int32(*expense.BillingDay), Valid: true}
	}

	return []any{
		expense.ID,
		expense.Name,
		expense.Amount,
		categoryID,
		expense.Type,
		expense.StartDate,
		expense.EndDate,
		billingDay,
		expense.LastPaymentDate,
	}
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	expense := &domain.Expense{}
	var (
		categoryID      sql.NullString
		endDate         sql.NullTime
		billingDay      sql.NullInt32
		lastPaymentDate sql.NullTime
	)

	err := row.Scan(
		&expense.ID,
		&expense.Name,
		&expense.Amount,
		&categoryID,
		&expense.Type,
		&expense.StartDate,
		&endDate,
		&billingDay,
		&lastPaymentDate,
	)
	if err != nil {
		return nil, err
	}

	expense.CategoryID = categoryID.String
	if endDate.Valid {
		expense.EndDate = &endDate.Time
	}
	if billingDay.Valid {
		day := int(billingDay.Int32)
		expense.BillingDay = &day
	}
	if lastPaymentDate.Valid {
		expense.LastPaymentDate = &lastPaymentDate.Time
	}

	return expense, nil
}
