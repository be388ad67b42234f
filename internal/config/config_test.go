package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Contains(t, cfg.DBDSN, "port=5432")
	assert.Equal(t, 12*3600, cfg.SessionMaxAge)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_MySQLDriverSwitchesDSNDefault(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	cfg := Load()

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Contains(t, cfg.DBDSN, "tcp(localhost:3306)")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DB_DSN", "host=db user=x dbname=y")
	t.Setenv("SESSION_MAX_AGE_HOURS", "2")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "host=db user=x dbname=y", cfg.DBDSN)
	assert.Equal(t, 2*3600, cfg.SessionMaxAge)
}
