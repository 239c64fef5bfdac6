package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres  = "postgres"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Report          Report          `mapstructure:",squash"`
	SnapshotRefresh SnapshotRefresh `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Messaging       Messaging       `mapstructure:",squash"`
}

type App struct {
	LogLevel    string `mapstructure:"log_level"`
	Environment string `mapstructure:"app_env"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN                    string        `mapstructure:"-"`
	Driver                 string        `mapstructure:"database_driver"`
	Host                   string        `mapstructure:"database_host"`
	Port                   int           `mapstructure:"database_port"`
	Name                   string        `mapstructure:"database_name"`
	User                   string        `mapstructure:"database_user"`
	Password               string        `mapstructure:"database_password"`
	SSLMode                string        `mapstructure:"database_sslmode"`
	Encrypt                bool          `mapstructure:"database_encrypt"`
	TrustServerCertificate bool          `mapstructure:"database_trust_server_certificate"`
	Path                   string        `mapstructure:"database_path"`
	Migrate                bool          `mapstructure:"database_migrate"`
	MaxOpenConns           int           `mapstructure:"database_max_open_conns"`
	LoadTimeout            time.Duration `mapstructure:"database_load_timeout"`
	SalesTable             string        `mapstructure:"sales_table"`
}

// Report agrupa as regras de negócio do cálculo de metas
type Report struct {
	CurrentYear      int     `mapstructure:"report_current_year"` // 0 = ano corrente do relógio
	TargetGrowthRate float64 `mapstructure:"report_target_growth_rate"`
	ForecastDays     int     `mapstructure:"report_forecast_days"`
}

type SnapshotRefresh struct {
	CronSchedule string `mapstructure:"snapshot_refresh_cron"`
	Enabled      bool   `mapstructure:"snapshot_refresh_enabled"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Messaging struct {
	URL        string `mapstructure:"amqp_url"`
	Exchange   string `mapstructure:"amqp_exchange"`
	RoutingKey string `mapstructure:"amqp_routing_key"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", "development")

	viper.SetDefault("DATABASE_DRIVER", DriverSQLServer)
	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", 0) // 0 = porta padrão do driver
	viper.SetDefault("DATABASE_NAME", "")
	viper.SetDefault("DATABASE_USER", "")
	viper.SetDefault("DATABASE_PASSWORD", "")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_ENCRYPT", true)
	viper.SetDefault("DATABASE_TRUST_SERVER_CERTIFICATE", false)
	viper.SetDefault("DATABASE_PATH", "./data/sales.db")
	viper.SetDefault("DATABASE_MIGRATE", false)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 5)
	viper.SetDefault("DATABASE_LOAD_TIMEOUT", "30s")
	viper.SetDefault("SALES_TABLE", "tbVendasDashboard")

	viper.SetDefault("REPORT_CURRENT_YEAR", 0)
	viper.SetDefault("REPORT_TARGET_GROWTH_RATE", 0.05) // meta de 5% sobre o ano anterior
	viper.SetDefault("REPORT_FORECAST_DAYS", 30)        // projeção fixa de 30 dias

	viper.SetDefault("SNAPSHOT_REFRESH_CRON", "0 6 * * *")
	viper.SetDefault("SNAPSHOT_REFRESH_ENABLED", false) // atualização apenas manual por padrão

	viper.SetDefault("AUTH_SECRET", "") // vazio = autenticação desabilitada
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("AMQP_URL", "") // vazio = sem publicação de eventos
	viper.SetDefault("AMQP_EXCHANGE", "sales-dashboard")
	viper.SetDefault("AMQP_ROUTING_KEY", "snapshot.refreshed")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
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

	if config.Report.CurrentYear == 0 {
		config.Report.CurrentYear = time.Now().Year()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN, err = BuildDSN(config.Database)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica as regras que o restante da aplicação assume
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres, DriverSQLServer, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("driver de banco não suportado: %q", c.Database.Driver))
	}

	if c.Database.SalesTable == "" {
		errs = append(errs, errors.New("SALES_TABLE não pode ser vazio"))
	}

	if c.Database.LoadTimeout <= 0 {
		errs = append(errs, errors.New("DATABASE_LOAD_TIMEOUT deve ser positivo"))
	}

	if c.Report.TargetGrowthRate <= -1 {
		errs = append(errs, fmt.Errorf("REPORT_TARGET_GROWTH_RATE inválido: %v", c.Report.TargetGrowthRate))
	}

	if c.Report.ForecastDays <= 0 {
		errs = append(errs, fmt.Errorf("REPORT_FORECAST_DAYS inválido: %d", c.Report.ForecastDays))
	}

	if c.Report.CurrentYear < 2 {
		errs = append(errs, fmt.Errorf("REPORT_CURRENT_YEAR inválido: %d", c.Report.CurrentYear))
	}

	return errors.Join(errs...)
}

// BuildDSN monta a string de conexão a partir dos parâmetros externos.
// Credenciais nunca ficam no código, apenas no ambiente.
func BuildDSN(db Database) (string, error) {
	switch db.Driver {
	case DriverPostgres:
		host := db.Host
		if db.Port > 0 {
			host = fmt.Sprintf("%s:%d", db.Host, db.Port)
		}
		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(db.User, db.Password),
			Host:   host,
			Path:   "/" + db.Name,
		}
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
		return u.String(), nil

	case DriverSQLServer:
		host := db.Host
		if db.Port > 0 {
			host = fmt.Sprintf("%s:%d", db.Host, db.Port)
		}
		u := &url.URL{
			Scheme: "sqlserver",
			User:   url.UserPassword(db.User, db.Password),
			Host:   host,
		}
		q := u.Query()
		q.Set("database", db.Name)
		q.Set("encrypt", fmt.Sprintf("%t", db.Encrypt))
		q.Set("TrustServerCertificate", fmt.Sprintf("%t", db.TrustServerCertificate))
		u.RawQuery = q.Encode()
		return u.String(), nil

	case DriverSQLite:
		if strings.TrimSpace(db.Path) == "" {
			return "", errors.New("DATABASE_PATH é obrigatório para sqlite")
		}
		return db.Path, nil
	}

	return "", fmt.Errorf("driver de banco não suportado: %q", db.Driver)
}

// IsProduction indica se o ambiente exige logs estruturados em JSON
func (a App) IsProduction() bool {
	env := strings.ToLower(a.Environment)
	return env == "production" || env == "staging"
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
