// Comando de manutenção que congela os snapshots mensais de um intervalo.
//
//	go run ./cmd/backfill -from 2024-01 -to 2025-12 [-force]
package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/scheduler"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/history"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/summarizing"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

func main() {
	from := flag.String("from", "", "primeiro mês (YYYY-MM)")
	to := flag.String("to", "", "último mês (YYYY-MM), padrão mês anterior")
	force := flag.Bool("force", false, "sobrescreve snapshots existentes")
	flag.Parse()

	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	loc := cfg.App.Location()
	now := time.Now().In(loc)

	start, end, err := backfillRange(*from, *to, now)
	if err != nil {
		logrus.WithError(err).Fatal("Intervalo inválido")
	}

	ctx := context.Background()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	expenseRepo := repository.NewExpenseRepository(conn)
	snapshotRepo := repository.NewMonthlySnapshotRepository(conn)
	aggregator := summarizing.NewService(
		repository.NewOnboardingEventRepository(conn),
		repository.NewRecurringSaleRepository(conn),
		repository.NewCommunityMetricRepository(conn),
		expenseRepo,
	)
	historian := history.NewService(history.NewLiveComputed(aggregator), aggregator, snapshotRepo, cfg.History)

	results := scheduler.SnapshotMonths(ctx, historian, calendar.MonthsBetween(start, end), *force)

	failed := 0
	for _, result := range results {
		entry := logrus.WithFields(logrus.Fields{"period": result.Period, "created": result.Created})
		if result.Error != "" {
			failed++
			entry.WithField("error", result.Error).Error("Falha ao gerar snapshot")
			continue
		}
		entry.Info("Snapshot processado")
	}

	logrus.WithFields(logrus.Fields{
		"months": len(results),
		"failed": failed,
	}).Info("Backfill concluído")
}

// backfillRange interpreta os limites; sem "to" usa o mês anterior a now
func backfillRange(from, to string, now time.Time) (time.Time, time.Time, error) {
	start, err := calendar.ParsePeriod(from, now.Location())
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	end := calendar.AddMonths(calendar.MonthStart(now), -1)
	if to != "" {
		end, err = calendar.ParsePeriod(to, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, summarizing.ErrInvalidDateRange
	}

	return start, end, nil
}
