package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/messaging"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(log.Options{
		Level:      cfg.App.LogLevel,
		Production: cfg.App.IsProduction(),
		Output:     os.Stdout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)

	publisher, err := messaging.NewPublisher(cfg.Messaging)
	if err != nil {
		// Sem mensageria a API continua funcionando, apenas sem eventos
		logrus.WithError(err).Warn("Erro ao conectar ao RabbitMQ, eventos de snapshot desabilitados")
		publisher = messaging.NewNoopPublisher()
	}

	salesRepo := repository.NewSalesRepository(conn, cfg.Database.SalesTable)
	loader := loading.NewService(salesRepo, publisher, cfg.Database.LoadTimeout, cfg.Database.SalesTable)
	reporter := reporting.NewService(loader, reporting.NewSettings(cfg.Report))
	authenticator := authenticating.NewService(cfg.Auth)

	if !authenticator.Enabled() {
		logrus.Warn("AUTH_SECRET não configurado: API sem autenticação")
	}

	snapshotRefreshService := scheduler.NewSnapshotRefreshService(loader, cfg)
	if err := snapshotRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do snapshot")
	}

	// Carga inicial fora do caminho das requisições
	go func() {
		if _, err := loader.Snapshot(ctx); err != nil {
			logrus.WithError(err).Error("Erro na carga inicial do snapshot de vendas")
		}
	}()

	server := api.New(
		cfg,
		reporter,
		loader,
		authenticator,
		snapshotRefreshService,
		publisher.Close,
		conn.Close,
	)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// dbconn prepara o pool da fonte de vendas. Uma fonte inacessível não derruba a API:
// o carregador devolve o erro da fonte até um refresh manual.
func dbconn(ctx context.Context, dbConfig config.Database) *database.Connection {
	conn, err := database.Open(dbConfig)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Configuração inválida do banco de vendas")
	}

	if err := conn.Verify(ctx, dbConfig.LoadTimeout); err != nil {
		logrus.WithError(err).WithField("driver", conn.Driver()).Warn("Banco de vendas inacessível na inicialização")
		return conn
	}

	logrus.WithField("driver", conn.Driver()).Info("Conexão com o banco de vendas estabelecida com sucesso")
	return conn
}
