package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "REDIS_ENABLED", "AUDIT_ENABLED", "PLAYS_DEFAULT_LIMIT", "PLAYS_MAX_LIMIT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 20, cfg.Plays.DefaultLimit)
	assert.Equal(t, 100, cfg.Plays.MaxLimit)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Address())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_ENABLED", "yes")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("AUDIT_ENABLED", "true")
	t.Setenv("PROBE_TIMEOUT", "5s")
	t.Setenv("PLAYS_DEFAULT_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.Address())
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Worker.ProbeTimeout)
	assert.Equal(t, 10, cfg.Plays.DefaultLimit)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("SERVER_READ_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8000"},
			Database: DatabaseConfig{Host: "db", DBName: "plays"},
			Plays:    PlaysConfig{DefaultLimit: 20, MaxLimit: 100},
			Worker:   WorkerConfig{Concurrency: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "audit without db name", mutate: func(c *Config) {
			c.Database.Enabled = true
			c.Database.DBName = ""
		}, wantErr: true},
		{name: "db name ignored when audit disabled", mutate: func(c *Config) { c.Database.DBName = "" }},
		{name: "default above max", mutate: func(c *Config) { c.Plays.DefaultLimit = 500 }, wantErr: true},
		{name: "zero max", mutate: func(c *Config) { c.Plays.MaxLimit = 0 }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Worker.Concurrency = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=d sslmode=disable", db.DSN())
}
