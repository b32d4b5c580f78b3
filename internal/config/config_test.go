package config_test

import (
	"testing"
	"time"

	"elec-payroll/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("ROSTER_CACHE_TTL", "")

	cfg, err := config.Load()

	assert.EqualError(t, err, "DB_HOST not set")
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "exports", cfg.ExportDir)
	assert.Equal(t, time.Hour, cfg.RosterCacheTTL)
	assert.Equal(t, "5432", cfg.Postgres.Port)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "payroll")
	t.Setenv("ROSTER_CACHE_TTL", "15m")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Contains(t, cfg.Postgres.DSN(), "dbname=payroll")
	assert.Equal(t, 15*time.Minute, cfg.RosterCacheTTL)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestLoad_WorkerSettings(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("MIGRATE_ON_START", "true")
	t.Setenv("KAFKA_CONSUMER_GROUP", "")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, time.Minute, cfg.RBACPolicyTTL)
	assert.Equal(t, "elec-payroll-export-archiver", cfg.ConsumerGroupID)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("RBAC_POLICY_TTL", "soon")
	t.Setenv("MIGRATE_ON_START", "maybe")
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg, err := config.Load()

	assert.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.RBACPolicyTTL)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, 1.0, cfg.RateLimitRPS)
}
