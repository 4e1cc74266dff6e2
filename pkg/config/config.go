package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FERRETERIA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	FXProviderStatic     = "static"
	FXProviderMindicador = "mindicador"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Payments PaymentsConfig
	FX       FXConfig
}

// Load reads an optional .env file and then the process environment.
// envFileFound reports whether a .env file was loaded, so the caller can warn
// once its logger exists.
func Load() (cfg *Config, envFileFound bool, err error) {
	envFileFound = godotenv.Load() == nil

	var c Config
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, envFileFound, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, envFileFound, err
	}
	return &c, envFileFound, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	switch c.FX.Provider {
	case FXProviderStatic, FXProviderMindicador:
	default:
		return fmt.Errorf("unsupported fx provider %q", c.FX.Provider)
	}
	if len(c.App.NativeCurrency) != 3 {
		return fmt.Errorf("native currency must be a 3-letter code, got %q", c.App.NativeCurrency)
	}
	c.App.NativeCurrency = strings.ToUpper(c.App.NativeCurrency)
	return nil
}

type AppConfig struct {
	Env            string `envconfig:"FERRETERIA_APP_ENV" default:"dev"`
	Port           string `envconfig:"FERRETERIA_APP_PORT" default:"3000"`
	Version        string `envconfig:"FERRETERIA_APP_VERSION" default:"1.0.0"`
	LogLevel       string `envconfig:"FERRETERIA_LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"FERRETERIA_LOG_FORMAT" default:"json"`
	SeedSampleData bool   `envconfig:"FERRETERIA_SEED_SAMPLE_DATA" default:"true"`
	NativeCurrency string `envconfig:"FERRETERIA_NATIVE_CURRENCY" default:"CLP"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver   string `envconfig:"FERRETERIA_DB_DRIVER" default:"sqlite"`
	DSN      string `envconfig:"FERRETERIA_DB_DSN" default:"ferreteria.db"`
	LogLevel string `envconfig:"FERRETERIA_DB_LOG_LEVEL" default:"warn"`

	MaxOpenConns    int           `envconfig:"FERRETERIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FERRETERIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FERRETERIA_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type RedisConfig struct {
	URL            string        `envconfig:"FERRETERIA_REDIS_URL"`
	IdempotencyTTL time.Duration `envconfig:"FERRETERIA_IDEMPOTENCY_TTL" default:"24h"`
	DialTimeout    time.Duration `envconfig:"FERRETERIA_REDIS_DIAL_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis connection was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type AuthConfig struct {
	OperatorJWTSecret string        `envconfig:"FERRETERIA_OPERATOR_JWT_SECRET"`
	OperatorTokenTTL  time.Duration `envconfig:"FERRETERIA_OPERATOR_TOKEN_TTL" default:"24h"`
}

// OperatorAuthEnabled reports whether maintenance routes require a token.
func (a AuthConfig) OperatorAuthEnabled() bool {
	return a.OperatorJWTSecret != ""
}

type PaymentsConfig struct {
	WebpayBaseURL string `envconfig:"FERRETERIA_WEBPAY_BASE_URL" default:"https://webpay-simulator.com"`
	RateLimit     string `envconfig:"FERRETERIA_PAYMENT_RATE_LIMIT" default:"120-M"`
}

type FXConfig struct {
	Provider      string        `envconfig:"FERRETERIA_FX_PROVIDER" default:"static"`
	MindicadorURL string        `envconfig:"FERRETERIA_FX_MINDICADOR_URL" default:"https://mindicador.cl/api/dolar"`
	Timeout       time.Duration `envconfig:"FERRETERIA_FX_TIMEOUT" default:"5s"`
}
