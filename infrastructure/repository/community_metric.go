package repository

//go:generate mockgen -source=community_metric.go -destination=mocks/community_metric_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/finance-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
)

const communityMetricsTable = "community_metric_snapshots"

// CommunityMetricRepository é somente leitura: as métricas são gravadas por outro sistema
type CommunityMetricRepository interface {
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.CommunityMetricSnapshot, error)
}

type communityMetricRepository struct {
	conn postgres.Queryer
}

func NewCommunityMetricRepository(conn postgres.Queryer) CommunityMetricRepository {
	return &communityMetricRepository{
		conn: conn,
	}
}

func (r *communityMetricRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.CommunityMetricSnapshot, error) {
	query, args, err := squirrel.
		Select("week_start", "community_recurring_amount").
		From(communityMetricsTable).
		Where(squirrel.GtOrEq{"week_start": start}).
		Where(squirrel.LtOrEq{"week_start": end}).
		OrderBy("week_start ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapQueryError(err, communityMetricsTable)
	}
	defer rows.Close()

	metrics := make([]domain.CommunityMetricSnapshot, 0)
	for rows.Next() {
		var metric domain.CommunityMetricSnapshot
		if err := rows.Scan(&metric.WeekStart, &metric.CommunityRecurringAmount); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica da comunidade: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}
