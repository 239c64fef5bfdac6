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
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	cleanups   []func() error
}

// New monta o roteador com a cadeia de middlewares global.
// cleanups são executados no desligamento, na ordem recebida.
func New(
	config *config.Config,
	reporter reporting.Reporter,
	loader loading.Loader,
	authenticator authenticating.Authenticator,
	refresher handler.SnapshotRefresher,
	cleanups ...func() error,
) *Server {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, reporter, loader, authenticator, refresher),
			ReadHeaderTimeout: 2 * time.Second,
		},
		cleanups: cleanups,
	}

	return srv
}

// NewHandler devolve o http.Handler completo da API
func NewHandler(
	config *config.Config,
	reporter reporting.Reporter,
	loader loading.Loader,
	authenticator authenticating.Authenticator,
	refresher handler.SnapshotRefresher,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(loader)...),
		router.WithRoutes(handler.Branches(reporter)...),
		router.WithRoutes(handler.Snapshot(loader)...),
		router.WithRoutes(handler.CronJobs(refresher)...),
	)

	production := config.App.IsProduction()

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(production),
		middleware.LoggingMiddleware(production),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			serverErr <- err
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-serverErr:
		s.runCleanups()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	s.runCleanups()
	return nil
}

// runCleanups fecha conexões com banco e mensageria
func (s *Server) runCleanups() {
	logrus.Info("Executando operações de limpeza antes do desligamento")

	for _, cleanup := range s.cleanups {
		if err := cleanup(); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar recurso no desligamento")
		}
	}
}
