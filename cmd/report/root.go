package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/messaging"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var (
	flagVerbose bool
	flagRefresh bool
)

var rootCmd = &cobra.Command{
	Use:           "report",
	Short:         "Relatório de vendas x meta por filial",
	Long:          "Consulta a tabela de vendas e mostra no terminal o desempenho de cada filial contra a meta do ano.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute é o ponto de entrada chamado por main
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "  erro:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Mostra os logs da aplicação")
	rootCmd.PersistentFlags().BoolVar(&flagRefresh, "refresh", false, "Recarrega as vendas da fonte antes de consultar")
}

// session agrupa as dependências abertas por um comando
type session struct {
	cfg       *config.Config
	conn      *database.Connection
	publisher messaging.SnapshotPublisher
	loader    loading.Loader
	reporter  reporting.Reporter
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	level := "error"
	if flagVerbose {
		level = cfg.App.LogLevel
	}
	log.Setup(log.Options{Level: level, Output: os.Stderr})

	return cfg, nil
}

// openSession conecta à fonte de vendas e monta o carregador e o relatório
func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	conn, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, loading.NewSourceError(err)
	}

	publisher, err := messaging.NewPublisher(cfg.Messaging)
	if err != nil {
		log.L.WithError(err).Warn("Eventos de snapshot desabilitados")
		publisher = messaging.NewNoopPublisher()
	}

	repo := repository.NewSalesRepository(conn, cfg.Database.SalesTable)
	loader := loading.NewService(repo, publisher, cfg.Database.LoadTimeout, cfg.Database.SalesTable)

	s := &session{
		cfg:       cfg,
		conn:      conn,
		publisher: publisher,
		loader:    loader,
		reporter:  reporting.NewService(loader, reporting.NewSettings(cfg.Report)),
	}

	if flagRefresh {
		if _, err := loader.Refresh(ctx, loading.TriggerManual); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

func (s *session) Close() {
	if err := s.publisher.Close(); err != nil {
		log.L.WithError(err).Warn("Erro ao fechar publicador")
	}
	if err := s.conn.Close(); err != nil {
		log.L.WithError(err).Warn("Erro ao fechar conexão")
	}
}
