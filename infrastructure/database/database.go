package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	_ "modernc.org/sqlite"
)

const (
	defaultMaxIdleConns    = 2
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 1 * time.Minute
)

// Conn é o contrato mínimo usado pelos repositórios
type Conn interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Placeholder() squirrel.PlaceholderFormat
	Close() error
	Ping(context.Context) error
}

type Connection struct {
	*sql.DB
	driver string
}

// NewConnection abre o pool e testa a conexão, limitado por cfg.LoadTimeout
func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	conn, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := conn.Verify(ctx, cfg.LoadTimeout); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}

// Open prepara o pool sem abrir conexões de rede; falhas da fonte aparecem na primeira consulta
func Open(cfg config.Database) (*Connection, error) {
	dsn := cfg.DSN
	if dsn == "" {
		var err error
		dsn, err = config.BuildDSN(cfg)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Driver == config.DriverSQLite && cfg.Migrate {
		if err := RunMigrations(dsn); err != nil {
			return nil, fmt.Errorf("erro ao executar migrações: %w", err)
		}
		logrus.WithField("path", dsn).Info("Migrações do banco local aplicadas")
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão (%s): %w", cfg.Driver, err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(min(defaultMaxIdleConns, maxOpen))
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	return &Connection{DB: db, driver: cfg.Driver}, nil
}

// Verify testa a conexão e desiste ao fim do timeout, mesmo que o driver ignore o contexto
func (c *Connection) Verify(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.DB.PingContext(ctx)
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("erro ao testar conexão (%s): %w: %v", c.driver, ctxErr, err)
	}
	return fmt.Errorf("erro ao testar conexão (%s): %w", c.driver, err)
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) Driver() string {
	return c.driver
}

// Placeholder retorna o formato de parâmetros esperado pelo driver
func (c *Connection) Placeholder() squirrel.PlaceholderFormat {
	return PlaceholderFor(c.driver)
}

func PlaceholderFor(driver string) squirrel.PlaceholderFormat {
	switch driver {
	case config.DriverPostgres:
		return squirrel.Dollar
	case config.DriverSQLServer:
		return squirrel.AtP
	default:
		return squirrel.Question
	}
}
