package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

// AttemptSweeper remove registros antigos do limitador de login
type AttemptSweeper interface {
	SweepAttempts(ctx context.Context) (int64, error)
}

// LoginAttemptSweepService limita o crescimento da tabela de tentativas
type LoginAttemptSweepService struct {
	scheduler   *gocron.Scheduler
	config      config.LoginRateLimit
	sweeper     AttemptSweeper
	mu          sync.Mutex
	lastSweepAt time.Time
	lastRemoved int64
}

func NewLoginAttemptSweepService(sweeper AttemptSweeper, cfg config.LoginRateLimit, loc *time.Location) *LoginAttemptSweepService {
	return &LoginAttemptSweepService{
		scheduler: gocron.NewScheduler(loc),
		config:    cfg,
		sweeper:   sweeper,
	}
}

func (s *LoginAttemptSweepService) Start(ctx context.Context) error {
	if s.config.SweepCron == "" {
		logrus.Info("Limpeza de tentativas de login desabilitada")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.SweepCron).SingletonMode().Do(func() {
		s.sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de tentativas de login: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.scheduler.Stop()
	}()

	return nil
}

func (s *LoginAttemptSweepService) sweep(ctx context.Context) {
	removed, err := s.sweeper.SweepAttempts(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("job", "login_attempt_sweep").Error("Erro ao limpar tentativas de login")
		return
	}

	s.mu.Lock()
	s.lastSweepAt = time.Now()
	s.lastRemoved = removed
	s.mu.Unlock()

	if removed > 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"job":     "login_attempt_sweep",
			"removed": removed,
		}).Info("Tentativas de login antigas removidas")
	}
}

// TriggerManualSync executa a limpeza imediatamente
func (s *LoginAttemptSweepService) TriggerManualSync(ctx context.Context) bool {
	go s.sweep(context.WithoutCancel(ctx))
	return true
}

func (s *LoginAttemptSweepService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"sweep_cron":    s.config.SweepCron,
		"attempt_ttl":   s.config.AttemptTTL.String(),
		"last_sweep_at": s.lastSweepAt,
		"last_removed":  s.lastRemoved,
	}
}
