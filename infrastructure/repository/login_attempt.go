package repository

//go:generate mockgen -source=login_attempt.go -destination=mocks/login_attempt_mock.go -package=mocks

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

const loginAttemptsTable = "login_attempts"

// LoginAttemptRepository guarda o estado do limitador de login em uma tabela
// compartilhada entre instâncias da API
type LoginAttemptRepository interface {
	Get(ctx context.Context, clientID string) (*domain.LoginAttempt, error)
	Put(ctx context.Context, attempt *domain.LoginAttempt) error
	Delete(ctx context.Context, clientID string) error
	Sweep(ctx context.Context, cutoff time.Time) (int64, error)
}

type loginAttemptRepository struct {
	conn postgres.Queryer
}

func NewLoginAttemptRepository(conn postgres.Queryer) LoginAttemptRepository {
	return &loginAttemptRepository{
		conn: conn,
	}
}

func (r *loginAttemptRepository) Get(ctx context.Context, clientID string) (*domain.LoginAttempt, error) {
	query, args, err := squirrel.
		Select("client_id", "attempts", "blocked_until", "updated_at").
		From(loginAttemptsTable).
		Where(squirrel.Eq{"client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	attempt := &domain.LoginAttempt{}
	var blockedUntil sql.NullTime

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&attempt.ClientID,
		&attempt.Attempts,
		&blockedUntil,
		&attempt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapQueryError(err, loginAttemptsTable)
	}

	if blockedUntil.Valid {
		attempt.BlockedUntil = blockedUntil.Time
	}

	return attempt, nil
}

func (r *loginAttemptRepository) Put(ctx context.Context, attempt *domain.LoginAttempt) error {
	var blockedUntil sql.NullTime
	if !attempt.BlockedUntil.IsZero() {
		blockedUntil = sql.NullTime{Time: attempt.BlockedUntil, Valid: true}
	}

	query, args, err := squirrel.
		Insert(loginAttemptsTable).
		Columns("client_id", "attempts", "blocked_until", "updated_at").
		Values(attempt.ClientID, attempt.Attempts, blockedUntil, attempt.UpdatedAt).
		Suffix(`
			ON CONFLICT (client_id) DO UPDATE SET
				attempts = EXCLUDED.attempts,
				blocked_until = EXCLUDED.blocked_until,
				updated_at = EXCLUDED.updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryError(err, loginAttemptsTable)
	}

	return nil
}

func (r *loginAttemptRepository) Delete(ctx context.Context, clientID string) error {
	query, args, err := squirrel.
		Delete(loginAttemptsTable).
		Where(squirrel.Eq{"client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryError(err, loginAttemptsTable)
	}

	return nil
}

// Sweep remove registros sem atividade desde cutoff e sem bloqueio vigente
func (r *loginAttemptRepository) Sweep(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := squirrel.
		Delete(loginAttemptsTable).
		Where(squirrel.Lt{"updated_at": cutoff}).
		Where(squirrel.Or{
			squirrel.Eq{"blocked_until": nil},
			squirrel.Lt{"blocked_until": cutoff},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapQueryError(err, loginAttemptsTable)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
