package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "CLP", cfg.App.NativeCurrency)
	assert.True(t, cfg.App.SeedSampleData)
	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "ferreteria.db", cfg.DB.DSN)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Auth.OperatorAuthEnabled())
	assert.Equal(t, "https://webpay-simulator.com", cfg.Payments.WebpayBaseURL)
	assert.Equal(t, FXProviderStatic, cfg.FX.Provider)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FERRETERIA_APP_ENV", "prod")
	t.Setenv("FERRETERIA_APP_PORT", "8080")
	t.Setenv("FERRETERIA_DB_DRIVER", "postgres")
	t.Setenv("FERRETERIA_DB_DSN", "host=localhost dbname=ferreteria")
	t.Setenv("FERRETERIA_NATIVE_CURRENCY", "usd")
	t.Setenv("FERRETERIA_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("FERRETERIA_OPERATOR_JWT_SECRET", "s3cret")
	t.Setenv("FERRETERIA_FX_PROVIDER", "mindicador")
	t.Setenv("FERRETERIA_FX_TIMEOUT", "2s")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "USD", cfg.App.NativeCurrency)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.Auth.OperatorAuthEnabled())
	assert.Equal(t, FXProviderMindicador, cfg.FX.Provider)
	assert.Equal(t, 2*time.Second, cfg.FX.Timeout)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("FERRETERIA_DB_DRIVER", "mysql")

	_, _, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported db driver")
}

func TestLoadRejectsBadCurrency(t *testing.T) {
	t.Setenv("FERRETERIA_NATIVE_CURRENCY", "PESO")

	_, _, err := Load()
	require.Error(t, err)
}
