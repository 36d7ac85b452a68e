package authenticating

import (
	"context"

	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/pkg/apiErrors"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"github.com/vfg2006/finance-tracker-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	Login(ctx context.Context, clientID, password string) (*domain.LoginResponse, error)
	ValidateToken(token string) (*domain.AuthToken, error)
	SweepAttempts(ctx context.Context) (int64, error)
}

type Service struct {
	signer       *TokenSigner
	limiter      *RateLimiter
	passwordHash []byte
	clock        clock.Clock
}

func NewService(cfg config.Auth, limiter *RateLimiter, clk clock.Clock) *Service {
	return &Service{
		signer:       NewTokenSigner(cfg.Secret, cfg.SubjectTag),
		limiter:      limiter,
		passwordHash: []byte(cfg.PasswordHash),
		clock:        clk,
	}
}

// Login confere o limitador antes da senha: um cliente bloqueado é recusado
// mesmo com a senha correta
func (s *Service) Login(ctx context.Context, clientID, password string) (*domain.LoginResponse, error) {
	if password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Senha é obrigatória")
	}

	now := s.clock.Now()
	logger := log.ForContext(ctx).WithField("client_id", clientID)

	decision, err := s.limiter.CheckRateLimit(ctx, clientID, now)
	if err != nil {
		logger.WithError(err).Error("auth: erro ao consultar limitador")
		return nil, NewAuthError(err, apiErrors.ErrDatabaseOperation, "Erro ao consultar tentativas de login")
	}
	if !decision.Allowed {
		return nil, NewRateLimitError(apiErrors.ErrTooManyAttempts, decision.RetryAfterSeconds)
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		if err := s.limiter.RecordFailure(ctx, clientID, now); err != nil {
			logger.WithError(err).Error("auth: erro ao registrar falha de login")
		}
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Senha incorreta")
	}

	if err := s.limiter.Reset(ctx, clientID); err != nil {
		logger.WithError(err).Warn("auth: erro ao limpar tentativas de login")
	}

	token, err := s.signer.IssueToken(now)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(TokenTTL),
	}, nil
}

func (s *Service) ValidateToken(token string) (*domain.AuthToken, error) {
	return s.signer.ParseToken(token, s.clock.Now())
}

// SweepAttempts remove registros antigos do limitador
func (s *Service) SweepAttempts(ctx context.Context) (int64, error) {
	return s.limiter.Sweep(ctx, s.clock.Now())
}
