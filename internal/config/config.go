package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	AttemptStoreMemory   = "memory"
	AttemptStorePostgres = "postgres"
)

type Config struct {
	App                 App                 `mapstructure:",squash"`
	Server              Server              `mapstructure:",squash"`
	Database            Database            `mapstructure:",squash"`
	Auth                Auth                `mapstructure:",squash"`
	LoginRateLimit      LoginRateLimit      `mapstructure:",squash"`
	History             History             `mapstructure:",squash"`
	Billing             Billing             `mapstructure:",squash"`
	MonthlySnapshotSync MonthlySnapshotSync `mapstructure:",squash"`
}

type Server struct {
	Host        string   `mapstructure:"host"`
	Port        string   `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	Migrate  bool   `mapstructure:"database_migrate"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	// Fuso usado para definir os limites de mês e os ciclos de cobrança
	Timezone string `mapstructure:"app_timezone"`
}

// Auth configura o token de acesso do painel. Existe um único operador,
// identificado por SubjectTag e autenticado pela senha cujo hash bcrypt está
// em PasswordHash.
type Auth struct {
	Secret       string `mapstructure:"auth_secret"`
	SubjectTag   string `mapstructure:"auth_subject_tag"`
	PasswordHash string `mapstructure:"auth_password_hash"`
}

type LoginRateLimit struct {
	MaxAttempts int           `mapstructure:"login_max_attempts"`
	BlockWindow time.Duration `mapstructure:"login_block_window"`
	AttemptTTL  time.Duration `mapstructure:"login_attempt_ttl"`
	Store       string        `mapstructure:"login_attempt_store"`
	SweepCron   string        `mapstructure:"login_attempt_sweep_cron"`
}

type History struct {
	EpochYear     int `mapstructure:"history_epoch_year"`
	DefaultMonths int `mapstructure:"history_default_months"`
	MaxMonths     int `mapstructure:"history_max_months"`
}

type Billing struct {
	UpcomingWindowDays int `mapstructure:"upcoming_window_days"`
}

type MonthlySnapshotSync struct {
	CronSchedule  string `mapstructure:"monthly_snapshot_sync_cron"`
	Enabled       bool   `mapstructure:"monthly_snapshot_sync_enabled"`
	MonthLookBack int    `mapstructure:"monthly_snapshot_sync_month_lookback"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/finance?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MIGRATE", true)

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("AUTH_SUBJECT_TAG", "admin")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")

	// Limitador de tentativas de login
	viper.SetDefault("LOGIN_MAX_ATTEMPTS", 5)                    // 5 falhas bloqueiam o cliente
	viper.SetDefault("LOGIN_BLOCK_WINDOW", "60s")                // bloqueio de 1 minuto
	viper.SetDefault("LOGIN_ATTEMPT_TTL", "30m")                 // registros parados há 30min são removidos
	viper.SetDefault("LOGIN_ATTEMPT_STORE", "memory")            // memory ou postgres
	viper.SetDefault("LOGIN_ATTEMPT_SWEEP_CRON", "*/10 * * * *") // a cada 10 minutos

	viper.SetDefault("HISTORY_EPOCH_YEAR", 2025)
	viper.SetDefault("HISTORY_DEFAULT_MONTHS", 12)
	viper.SetDefault("HISTORY_MAX_MONTHS", 60)

	viper.SetDefault("UPCOMING_WINDOW_DAYS", 7)

	// Snapshot mensal
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_CRON", "0 5 1 * *") // No primeiro dia de cada mês às 5h da manhã
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_ENABLED", false)    // Habilitar snapshot mensal
	viper.SetDefault("MONTHLY_SNAPSHOT_SYNC_MONTH_LOOKBACK", 1) // 1 mês para trás

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_TIMEZONE", "America/Sao_Paulo")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate devolve todos os problemas de configuração de uma vez
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Auth.Secret == "" {
		result = multierror.Append(result, fmt.Errorf("AUTH_SECRET é obrigatório"))
	}
	if c.Auth.SubjectTag == "" || strings.Contains(c.Auth.SubjectTag, ":") {
		result = multierror.Append(result, fmt.Errorf("AUTH_SUBJECT_TAG não pode ser vazio nem conter ':'"))
	}
	if c.Auth.PasswordHash == "" {
		result = multierror.Append(result, fmt.Errorf("AUTH_PASSWORD_HASH é obrigatório"))
	}

	if c.LoginRateLimit.MaxAttempts < 1 {
		result = multierror.Append(result, fmt.Errorf("LOGIN_MAX_ATTEMPTS deve ser ao menos 1, recebido %d", c.LoginRateLimit.MaxAttempts))
	}
	if c.LoginRateLimit.BlockWindow <= 0 {
		result = multierror.Append(result, fmt.Errorf("LOGIN_BLOCK_WINDOW deve ser positivo"))
	}
	if c.LoginRateLimit.AttemptTTL < c.LoginRateLimit.BlockWindow {
		result = multierror.Append(result, fmt.Errorf("LOGIN_ATTEMPT_TTL não pode ser menor que LOGIN_BLOCK_WINDOW"))
	}
	switch c.LoginRateLimit.Store {
	case AttemptStoreMemory, AttemptStorePostgres:
	default:
		result = multierror.Append(result, fmt.Errorf("LOGIN_ATTEMPT_STORE desconhecido: %q", c.LoginRateLimit.Store))
	}

	if c.History.EpochYear < 1970 || c.History.EpochYear > 9999 {
		result = multierror.Append(result, fmt.Errorf("HISTORY_EPOCH_YEAR fora do intervalo: %d", c.History.EpochYear))
	}
	if c.History.MaxMonths < 1 {
		result = multierror.Append(result, fmt.Errorf("HISTORY_MAX_MONTHS deve ser ao menos 1"))
	}
	if c.History.DefaultMonths < 1 || c.History.DefaultMonths > c.History.MaxMonths {
		result = multierror.Append(result, fmt.Errorf("HISTORY_DEFAULT_MONTHS deve estar entre 1 e HISTORY_MAX_MONTHS"))
	}

	if c.Billing.UpcomingWindowDays < 0 {
		result = multierror.Append(result, fmt.Errorf("UPCOMING_WINDOW_DAYS não pode ser negativo"))
	}
	if c.MonthlySnapshotSync.MonthLookBack < 1 {
		result = multierror.Append(result, fmt.Errorf("MONTHLY_SNAPSHOT_SYNC_MONTH_LOOKBACK deve ser ao menos 1"))
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		result = multierror.Append(result, fmt.Errorf("APP_TIMEZONE inválido: %w", err))
	}

	return result.ErrorOrNil()
}

// Location devolve o fuso configurado, UTC se inválido
func (a App) Location() *time.Location {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
