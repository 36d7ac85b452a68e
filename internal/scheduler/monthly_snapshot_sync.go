package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/calendar"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

// Snapshotter grava o snapshot de um mês fechado
type Snapshotter interface {
	SnapshotMonth(ctx context.Context, month time.Time, force bool) (*domain.MonthlySnapshot, bool, error)
}

// SnapshotSyncResult é o resultado de um mês na última execução
type SnapshotSyncResult struct {
	Period  string `json:"period"`
	Created bool   `json:"created"`
	Error   string `json:"error,omitempty"`
}

// MonthlySnapshotSyncService congela os meses anteriores em monthly_snapshots.
// Snapshots existentes não são sobrescritos.
type MonthlySnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              config.MonthlySnapshotSync
	snapshotter         Snapshotter
	clock               clock.Clock
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResults         []SnapshotSyncResult
}

func NewMonthlySnapshotSyncService(
	snapshotter Snapshotter,
	clk clock.Clock,
	cfg config.MonthlySnapshotSync,
	loc *time.Location,
) *MonthlySnapshotSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cfg.CronSchedule,
		"month_lookback": cfg.MonthLookBack,
		"sync_enabled":   cfg.Enabled,
	}).Info("Configuração do agendador de snapshots mensais carregada")

	return &MonthlySnapshotSyncService{
		scheduler:   gocron.NewScheduler(loc),
		config:      cfg,
		snapshotter: snapshotter,
		clock:       clk,
	}
}

// Start agenda o job quando habilitado e o para junto com o contexto
func (s *MonthlySnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Snapshot mensal desabilitado por configuração")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncMonthlySnapshots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot mensal: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots mensais")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *MonthlySnapshotSyncService) syncMonthlySnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Snapshot mensal já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.clock.Now()
	s.syncMutex.Unlock()

	ctx, _ = log.WithCorrelationID(ctx)

	current := calendar.MonthStart(s.clock.Now())
	months := make([]time.Time, 0, s.config.MonthLookBack)
	for i := 1; i <= s.config.MonthLookBack; i++ {
		months = append(months, current.AddDate(0, -i, 0))
	}

	results := SnapshotMonths(ctx, s.snapshotter, months, false)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastResults = results
	s.lastSyncCompletedAt = s.clock.Now()
	s.syncMutex.Unlock()
}

// SnapshotMonths grava o snapshot de cada mês. A falha de um mês fica no
// resultado e não interrompe os demais.
func SnapshotMonths(ctx context.Context, snapshotter Snapshotter, months []time.Time, force bool) []SnapshotSyncResult {
	logger := log.ForContext(ctx).WithField("job", "monthly_snapshot")
	results := make([]SnapshotSyncResult, 0, len(months))

	for _, month := range months {
		period := calendar.FormatPeriod(month)

		_, created, err := snapshotter.SnapshotMonth(ctx, month, force)
		result := SnapshotSyncResult{Period: period, Created: created}
		if err != nil {
			result.Error = err.Error()
			logger.WithError(err).WithField("period", period).Error("Erro ao gravar snapshot mensal")
		} else {
			logger.WithFields(log.Fields{
				"period":  period,
				"created": created,
			}).Info("Snapshot mensal processado")
		}

		results = append(results, result)
	}

	return results
}

// TriggerManualSync dispara a execução em background. Retorna false se já
// houver uma em andamento.
func (s *MonthlySnapshotSyncService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Snapshot mensal já em andamento, ignorando solicitação manual")
		return false
	}

	go s.syncMonthlySnapshots(context.WithoutCancel(ctx))
	return true
}

// GetStatus retorna o status atual da sincronização
func (s *MonthlySnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.Enabled,
		"month_lookback":         s.config.MonthLookBack,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_results":           s.lastResults,
	}
}
