package authenticating

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/finance-tracker-api/infrastructure/repository"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
)

// AttemptStore guarda o estado do limitador por cliente. A implementação em
// memória atende uma instância; a do Postgres é compartilhada entre réplicas.
type AttemptStore interface {
	Get(ctx context.Context, clientID string) (*domain.LoginAttempt, error)
	Put(ctx context.Context, attempt *domain.LoginAttempt) error
	Delete(ctx context.Context, clientID string) error
	// Sweep remove registros sem atividade e sem bloqueio desde cutoff
	Sweep(ctx context.Context, cutoff time.Time) (int64, error)
}

var (
	_ AttemptStore = (*MemoryAttemptStore)(nil)
	_ AttemptStore = (repository.LoginAttemptRepository)(nil)
)

type MemoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string]domain.LoginAttempt
}

func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{
		attempts: make(map[string]domain.LoginAttempt),
	}
}

func (s *MemoryAttemptStore) Get(_ context.Context, clientID string) (*domain.LoginAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[clientID]
	if !ok {
		return nil, nil
	}

	return &attempt, nil
}

func (s *MemoryAttemptStore) Put(_ context.Context, attempt *domain.LoginAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[attempt.ClientID] = *attempt
	return nil
}

func (s *MemoryAttemptStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.attempts, clientID)
	return nil
}

func (s *MemoryAttemptStore) Sweep(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for clientID, attempt := range s.attempts {
		if attempt.UpdatedAt.Before(cutoff) && attempt.BlockedUntil.Before(cutoff) {
			delete(s.attempts, clientID)
			removed++
		}
	}

	return removed, nil
}

func (s *MemoryAttemptStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.attempts)
}
