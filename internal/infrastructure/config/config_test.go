package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "drumflow-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 60, cfg.Scan.CooldownMinutes)
	assert.Equal(t, "trigger", cfg.Scan.TransitionMode)
	assert.Equal(t, 30*time.Second, cfg.Scan.LockTTL)
	assert.Equal(t, 500, cfg.Scan.SSEMaxClients)
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Scan.CooldownMinutes = 15
	cfg.Scan.TransitionMode = "explicit"
	applyDefaults(cfg)

	assert.Equal(t, 15, cfg.Scan.CooldownMinutes)
	assert.Equal(t, "explicit", cfg.Scan.TransitionMode)
}

func TestValidate(t *testing.T) {
	t.Run("valid defaults pass", func(t *testing.T) {
		cfg := defaultConfig()
		require.NoError(t, cfg.validate())
	})

	t.Run("idle conns cannot exceed open conns", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Database.MaxIdleConns = 50
		cfg.Database.MaxOpenConns = 10
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("unknown transition mode rejected", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.Scan.TransitionMode = "optimistic"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transition_mode")
	})

	t.Run("production requires password", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.App.Env = "production"
		cfg.Database.SSLMode = "require"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password")
	})

	t.Run("production rejects sslmode disable", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("production rejects wildcard CORS", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.App.Env = "production"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		cfg.HTTP.CORSAllowOrigins = []string{"*"}
		err := cfg.validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors_allow_origins")
	})
}

func TestDSNEscapesSpecialCharacters(t *testing.T) {
	d := &DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "scanner",
		Password: "p@ss/word#1",
		DBName:   "drumflow",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss/word#1", "password must be URL-escaped")
}

func TestRedisAddr(t *testing.T) {
	r := &RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
