package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:  App{LogLevel: "info", Timezone: "America/Sao_Paulo"},
		Auth: Auth{Secret: "segredo", SubjectTag: "admin", PasswordHash: "$2a$10$hash"},
		LoginRateLimit: LoginRateLimit{
			MaxAttempts: 5,
			BlockWindow: time.Minute,
			AttemptTTL:  30 * time.Minute,
			Store:       AttemptStoreMemory,
		},
		History:             History{EpochYear: 2025, DefaultMonths: 12, MaxMonths: 60},
		Billing:             Billing{UpcomingWindowDays: 7},
		MonthlySnapshotSync: MonthlySnapshotSync{MonthLookBack: 1},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(c *Config)
		wantErrors int
	}{
		{name: "configuração válida", mutate: func(c *Config) {}},
		{name: "segredo vazio", mutate: func(c *Config) { c.Auth.Secret = "" }, wantErrors: 1},
		{name: "subject com dois pontos", mutate: func(c *Config) { c.Auth.SubjectTag = "ad:min" }, wantErrors: 1},
		{name: "store desconhecido", mutate: func(c *Config) { c.LoginRateLimit.Store = "redis" }, wantErrors: 1},
		{name: "fuso inválido", mutate: func(c *Config) { c.App.Timezone = "Marte/Olympus" }, wantErrors: 1},
		{
			name: "acumula todos os problemas",
			mutate: func(c *Config) {
				c.Auth.Secret = ""
				c.Auth.PasswordHash = ""
				c.LoginRateLimit.MaxAttempts = 0
				c.LoginRateLimit.BlockWindow = 0
				c.History.EpochYear = 0
			},
			wantErrors: 5,
		},
		{
			name:       "meses padrão acima do máximo",
			mutate:     func(c *Config) { c.History.DefaultMonths = 61 },
			wantErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErrors == 0 {
				assert.NoError(t, err)
				return
			}

			var merr *multierror.Error
			require.ErrorAs(t, err, &merr)
			assert.Len(t, merr.Errors, tt.wantErrors)
		})
	}
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("AUTH_SECRET", "segredo-de-teste")
	t.Setenv("AUTH_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("LOGIN_BLOCK_WINDOW", "90s")
	t.Setenv("HISTORY_EPOCH_YEAR", "2024")
	t.Setenv("DATABASE_USER", "finance")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("DATABASE_URL", "db:5432/finance")

	cfg, err := NewConfig()

	require.NoError(t, err)
	assert.Equal(t, "segredo-de-teste", cfg.Auth.Secret)
	assert.Equal(t, "admin", cfg.Auth.SubjectTag)
	assert.Equal(t, 90*time.Second, cfg.LoginRateLimit.BlockWindow)
	assert.Equal(t, 5, cfg.LoginRateLimit.MaxAttempts)
	assert.Equal(t, 2024, cfg.History.EpochYear)
	assert.Equal(t, "postgres://finance:secret@db:5432/finance", cfg.Database.DSN)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Location().String())
}
