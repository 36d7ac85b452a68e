package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/finance-tracker-api/internal/api/handler"
	"github.com/vfg2006/finance-tracker-api/internal/api/handler/router"
	"github.com/vfg2006/finance-tracker-api/internal/config"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/authenticating"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/billing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/expensing"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/history"
	"github.com/vfg2006/finance-tracker-api/internal/usecases/selling"
	"github.com/vfg2006/finance-tracker-api/pkg/clock"
	"github.com/vfg2006/finance-tracker-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Clock         clock.Clock
	Authenticator authenticating.Authenticator
	Historian     history.Historian
	Expenser      expensing.Expenser
	Scheduler     billing.Scheduler
	Seller        selling.Seller
	CronJobs      handler.CronJobServices
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Authenticator == nil || services.Clock == nil {
		return nil, fmt.Errorf("autenticador e relógio são obrigatórios")
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Summaries(services.Historian, services.Clock, cfg.History)...),
		router.WithRoutes(handler.Expenses(services.Expenser, services.Scheduler, services.Clock, cfg.Billing)...),
		router.WithRoutes(handler.Sales(services.Seller)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.CORSOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
