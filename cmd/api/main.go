package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-tracker-api/infrastructure/database/postgres"
	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/api"
	"github.com/vfg2006/finance-tracker-api/internal/api/handler"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/scheduler"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/billing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/expensing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/history"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/summarizing"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

func main() {
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	loc := cfg.App.Location()
	clk := clock.NewFunc(func() time.Time { return time.Now().In(loc) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	onboardingRepo := repository.NewOnboardingEventRepository(pgConn)
	recurringSaleRepo := repository.NewRecurringSaleRepository(pgConn)
	communityMetricRepo := repository.NewCommunityMetricRepository(pgConn)
	expenseRepo := repository.NewExpenseRepository(pgConn)
	snapshotRepo := repository.NewMonthlySnapshotRepository(pgConn)

	aggregator := summarizing.NewService(onboardingRepo, recurringSaleRepo, communityMetricRepo, expenseRepo)
	provider := history.NewPreferSnapshotThenCompute(
		history.NewSnapshotBacked(snapshotRepo),
		history.NewLiveComputed(aggregator),
	)
	historian := history.NewService(provider, aggregator, snapshotRepo, cfg.History)

	billingService := billing.NewService(expenseRepo, clk)
	expenseService := expensing.NewService(expenseRepo)
	sellingService := selling.NewService(onboardingRepo, recurringSaleRepo, clk)

	limiter := authenticating.NewRateLimiter(attemptStore(cfg.LoginRateLimit, pgConn), cfg.LoginRateLimit)
	authenticator := authenticating.NewService(cfg.Auth, limiter, clk)

	snapshotSyncService := scheduler.NewMonthlySnapshotSyncService(historian, clk, cfg.MonthlySnapshotSync, loc)
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots mensais")
	}

	sweepService := scheduler.NewLoginAttemptSweepService(authenticator, cfg.LoginRateLimit, loc)
	if err := sweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a limpeza de tentativas de login")
	}

	server, err := api.New(cfg, api.Services{
		Clock:         clk,
		Authenticator: authenticator,
		Historian:     historian,
		Expenser:      expenseService,
		Scheduler:     billingService,
		Seller:        sellingService,
		CronJobs: handler.CronJobServices{
			MonthlySnapshotSync: snapshotSyncService,
			LoginAttemptSweep:   sweepService,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// attemptStore escolhe onde ficam os contadores do limitador de login
func attemptStore(cfg config.LoginRateLimit, conn *postgres.Connection) authenticating.AttemptStore {
	if cfg.Store == config.AttemptStorePostgres {
		return repository.NewLoginAttemptRepository(conn)
	}
	return authenticating.NewMemoryAttemptStore()
}

// pgconn cria a conexão com o banco e aplica as migrações quando habilitado
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if dbConfig.Migrate {
		if err := conn.Migrate(); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
