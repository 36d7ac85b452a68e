package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/domain"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
)

type stubAuthenticator struct{}

func (stubAuthenticator) Login(context.Context, string, string) (*domain.LoginResponse, error) {
	return &domain.LoginResponse{Token: "tok"}, nil
}

func (stubAuthenticator) ValidateToken(token string) (*domain.AuthToken, error) {
	if token != "valido" {
		return nil, authenticating.ErrTokenInvalid
	}
	return &domain.AuthToken{SubjectTag: "owner"}, nil
}

func (stubAuthenticator) SweepAttempts(context.Context) (int64, error) {
	return 0, nil
}

func TestServer_Handler(t *testing.T) {
	cfg := &config.Config{Server: config.Server{Host: "127.0.0.1", Port: "0"}}

	srv, err := New(cfg, Services{
		Clock:         clock.NewFixed(time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)),
		Authenticator: stubAuthenticator{},
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{name: "healthcheck é público", method: http.MethodGet, path: "/healthcheck", status: http.StatusOK},
		{name: "rota protegida sem token", method: http.MethodGet, path: "/v1/expenses", status: http.StatusUnauthorized},
		{name: "token inválido", method: http.MethodGet, path: "/v1/cron", token: "outro", status: http.StatusUnauthorized},
		{name: "token válido", method: http.MethodGet, path: "/v1/cron", token: "valido", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestNew_RequiresAuthenticator(t *testing.T) {
	_, err := New(&config.Config{}, Services{Clock: clock.NewReal()})
	assert.Error(t, err)
}
