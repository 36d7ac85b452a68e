package authenticating

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
)

// RateLimitDecision é a resposta de CheckRateLimit
type RateLimitDecision struct {
	Allowed           bool `json:"allowed"`
	RetryAfterSeconds int  `json:"retry_after_seconds,omitempty"`
}

// RateLimiter bloqueia um cliente por BlockWindow depois de MaxAttempts
// falhas de login. O mutex torna cada leitura-alteração-escrita atômica
// dentro do processo.
type RateLimiter struct {
	mu    sync.Mutex
	store AttemptStore
	cfg   config.LoginRateLimit
}

func NewRateLimiter(store AttemptStore, cfg config.LoginRateLimit) *RateLimiter {
	return &RateLimiter{
		store: store,
		cfg:   cfg,
	}
}

func (l *RateLimiter) CheckRateLimit(ctx context.Context, clientID string, now time.Time) (RateLimitDecision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempt, err := l.store.Get(ctx, clientID)
	if err != nil {
		return RateLimitDecision{}, storeError(err)
	}
	if attempt == nil {
		return RateLimitDecision{Allowed: true}, nil
	}

	if attempt.IsBlocked(now) {
		remaining := attempt.BlockedUntil.Sub(now)
		return RateLimitDecision{
			Allowed:           false,
			RetryAfterSeconds: int(math.Ceil(remaining.Seconds())),
		}, nil
	}

	// bloqueio vencido: o cliente recomeça do zero
	if !attempt.BlockedUntil.IsZero() {
		if err := l.store.Delete(ctx, clientID); err != nil {
			return RateLimitDecision{}, storeError(err)
		}
	}

	return RateLimitDecision{Allowed: true}, nil
}

// RecordFailure conta uma falha e bloqueia o cliente ao atingir o limite
func (l *RateLimiter) RecordFailure(ctx context.Context, clientID string, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	attempt, err := l.store.Get(ctx, clientID)
	if err != nil {
		return storeError(err)
	}
	if attempt == nil || (!attempt.BlockedUntil.IsZero() && !attempt.IsBlocked(now)) {
		attempt = &domain.LoginAttempt{ClientID: clientID}
	}

	attempt.Attempts++
	attempt.UpdatedAt = now
	if attempt.Attempts >= l.cfg.MaxAttempts {
		attempt.BlockedUntil = now.Add(l.cfg.BlockWindow)

		log.ForContext(ctx).WithFields(log.Fields{
			"client_id":     clientID,
			"attempts":      attempt.Attempts,
			"blocked_until": attempt.BlockedUntil,
		}).Warn("auth: cliente bloqueado por excesso de tentativas")
	}

	if err := l.store.Put(ctx, attempt); err != nil {
		return storeError(err)
	}

	return nil
}

func (l *RateLimiter) Reset(ctx context.Context, clientID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Delete(ctx, clientID); err != nil {
		return storeError(err)
	}
	return nil
}

// Sweep remove clientes sem atividade há mais de AttemptTTL
func (l *RateLimiter) Sweep(ctx context.Context, now time.Time) (int64, error) {
	removed, err := l.store.Sweep(ctx, now.Add(-l.cfg.AttemptTTL))
	if err != nil {
		return 0, storeError(err)
	}
	return removed, nil
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrAttemptStore, err)
}
