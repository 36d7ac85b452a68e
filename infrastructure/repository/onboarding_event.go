package repository

//go:generate mockgen -source=onboarding_event.go -destination=mocks/onboarding_event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/finance-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
)

const onboardingEventsTable = "onboarding_events"

type OnboardingEventRepository interface {
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.OnboardingEvent, error)
	Create(ctx context.Context, event *domain.OnboardingEvent) error
}

type onboardingEventRepository struct {
	conn postgres.Queryer
}

func NewOnboardingEventRepository(conn postgres.Queryer) OnboardingEventRepository {
	return &onboardingEventRepository{
		conn: conn,
	}
}

// ListBetween retorna os eventos com occurred_at em [start, end]
func (r *onboardingEventRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.OnboardingEvent, error) {
	query, args, err := squirrel.
		Select("id", "client_id", "amount", "occurred_at").
		From(onboardingEventsTable).
		Where(squirrel.GtOrEq{"occurred_at": start}).
		Where(squirrel.LtOrEq{"occurred_at": end}).
		OrderBy("occurred_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err, onboardingEventsTable)
	}
	defer rows.Close()

	events := make([]domain.OnboardingEvent, 0)
	for rows.Next() {
		var event domain.OnboardingEvent
		if err := rows.Scan(&event.ID, &event.ClientID, &event.Amount, &event.OccurredAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear evento de onboarding: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return events, nil
}

func (r *onboardingEventRepository) Create(ctx context.Context, event *domain.OnboardingEvent) error {
	query, args, err := squirrel.
		Insert(onboardingEventsTable).
		Columns("id", "client_id", "amount", "occurred_at").
		Values(event.ID, event.ClientID, event.Amount, event.OccurredAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return wrapQueryError(err, onboardingEventsTable)
	}

	return nil
}
