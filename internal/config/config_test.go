package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		AppMode:  "dev",
		Port:     "3000",
		Location: time.UTC,
		Database: DatabaseConfig{Driver: DriverSQLite, Path: "papatacos.db"},
		JWT: JWTConfig{
			Secret:           "access",
			RefreshSecret:    "refresh",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cache:  CacheConfig{TTL: time.Minute, MaxEntries: 10},
		Events: EventsConfig{Exchange: "papatacos.events"},
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("APP_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, 15, cfg.JWT.AccessTokenMins)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
	assert.Same(t, cfg, AppConfig)
}

func TestLoadUsesModePrefix(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_JWT_SECRET", "prod-access")
	t.Setenv("PROD_JWT_REFRESH_SECRET", "prod-refresh")
	t.Setenv("DEV_DB_HOST", "ignored")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "prod-access", cfg.JWT.Secret)
}

func TestLoadRejectsBadMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "unknown DB_DRIVER"},
		{"same secrets", func(c *Config) { c.JWT.RefreshSecret = c.JWT.Secret }, "must differ"},
		{"default secrets in prod", func(c *Config) {
			c.AppMode = "prod"
			c.JWT.Secret = defaultJWTSecret
		}, "not allowed in prod"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "CACHE_TTL_SECONDS"},
		{"amqp without exchange", func(c *Config) {
			c.Events.AMQPURL = "amqp://localhost"
			c.Events.Exchange = ""
		}, "EVENTS_EXCHANGE"},
		{"half seed", func(c *Config) { c.Seed.OwnerEmail = "papa@tacos.ci" }, "SEED_OWNER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateAggregatesErrors(t *testing.T) {
	c := validConfig()
	c.Database.Driver = "oracle"
	c.JWT.AccessTokenMins = 0

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown DB_DRIVER")
	assert.Contains(t, err.Error(), "must be positive")
}

func TestConnectSQLite(t *testing.T) {
	c := validConfig()
	c.AppMode = "prod"
	c.Database.Path = filepath.Join(t.TempDir(), "test.db")

	db, err := ConnectDatabase(c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase() })

	assert.NotNil(t, db)
	assert.NoError(t, HealthCheck())
}

func TestDSNs(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "n", SSLMode: "require", Path: "/tmp/x.db"}
	assert.Equal(t, "u:p@tcp(h:1)/n?charset=utf8mb4&parseTime=True&loc=UTC", buildMySQLDSN(d))
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=require TimeZone=UTC", buildPostgresDSN(d))
	assert.Contains(t, buildSQLiteDSN(d), "/tmp/x.db?")
}
