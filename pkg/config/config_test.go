package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 12*time.Hour, cfg.Session.TTL())
	assert.Equal(t, 5, cfg.RateLimit.PINLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.PINWindow())
	assert.Equal(t, RateLimitMemory, cfg.RateLimit.Backend)
	assert.Equal(t, StoragePostgres, cfg.App.Storage)
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "8")
	t.Setenv("PIN_RATE_LIMIT", "3")
	t.Setenv("PIN_RATE_WINDOW_SECONDS", "30")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8*time.Hour, cfg.Session.TTL())
	assert.Equal(t, 3, cfg.RateLimit.PINLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.PINWindow())
	assert.Equal(t, StorageMemory, cfg.App.Storage)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_RechazaDriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestAppConfig_LocationInvalidaUsaLocal(t *testing.T) {
	c := AppConfig{Timezone: "Marte/Olympus"}
	assert.Equal(t, time.Local, c.Location())
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "ops", Password: "p@ss:w/rd", DBName: "hotel", SSLMode: "disable"}
	assert.Equal(t, "postgres://ops:p%40ss%3Aw%2Frd@db:5432/hotel?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())
}

func TestLoad_PoolTimeoutsYProxy(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("DB_MIN_CONNS", "1")
	t.Setenv("DB_STATEMENT_TIMEOUT_MS", "2500")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "7")
	t.Setenv("HTTP_PROXY_HEADER", "X-Forwarded-For")
	t.Setenv("HTTP_TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
	assert.Equal(t, 2500*time.Millisecond, cfg.DB.StatementTimeout())
	assert.Equal(t, 7*time.Second, cfg.HTTP.RequestTimeout())
	assert.Equal(t, "X-Forwarded-For", cfg.HTTP.ProxyHeader)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.HTTP.TrustedProxies)
}

func TestLoad_SinProxyConfigurado(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.HTTP.ProxyHeader)
	assert.Empty(t, cfg.HTTP.TrustedProxies)
	assert.Equal(t, 15*time.Second, cfg.HTTP.RequestTimeout())
}

func TestLoad_RechazaMinConnsMayorQueMax(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := Load()
	assert.Error(t, err)
}
