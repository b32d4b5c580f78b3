package config

import (
	"fmt"
	"time"

	"elec-payroll/internal/shared/connection"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

type Config struct {
	Env            string
	Port           string
	Postgres       connection.PostgresConfig
	RedisAddr      string
	KafkaBroker    string
	JWTSecret      string
	ExportDir      string
	RosterCacheTTL time.Duration
	RateLimitRPS   float64
	RateLimitBurst int

	RBACPolicyTTL      time.Duration
	OutboxPollInterval time.Duration
	ConsumerGroupID    string
	MigrateOnStart     bool
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// newViper reads every key from the environment only. Empty variables count as
// unset so defaults apply.
func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func stringValue(v *viper.Viper, key, def string) string {
	v.SetDefault(key, def)
	return v.GetString(key)
}

func intValue(v *viper.Viper, key string, def int) int {
	if n, err := cast.ToIntE(v.Get(key)); err == nil && v.IsSet(key) {
		return n
	}
	return def
}

func floatValue(v *viper.Viper, key string, def float64) float64 {
	if f, err := cast.ToFloat64E(v.Get(key)); err == nil && v.IsSet(key) {
		return f
	}
	return def
}

func boolValue(v *viper.Viper, key string, def bool) bool {
	if b, err := cast.ToBoolE(v.Get(key)); err == nil && v.IsSet(key) {
		return b
	}
	return def
}

func durationValue(v *viper.Viper, key string, def time.Duration) time.Duration {
	if d, err := cast.ToDurationE(v.Get(key)); err == nil && v.IsSet(key) {
		return d
	}
	return def
}

// Load reads configuration from the environment. The returned Config is always
// usable; a non-nil error reports a missing database host so callers can decide
// whether that is fatal.
func Load() (Config, error) {
	v := newViper()
	cfg := Config{
		Env:  stringValue(v, "app_env", "development"),
		Port: stringValue(v, "port", "3000"),
		Postgres: connection.PostgresConfig{
			Host:     stringValue(v, "db_host", ""),
			User:     stringValue(v, "db_user", "postgres"),
			Password: stringValue(v, "db_password", ""),
			Name:     stringValue(v, "db_name", "elec_payroll"),
			Port:     stringValue(v, "db_port", "5432"),
			SSLMode:  stringValue(v, "db_sslmode", "disable"),
		},
		RedisAddr:      stringValue(v, "redis_addr", "localhost:6379"),
		KafkaBroker:    stringValue(v, "kafka_broker", ""),
		JWTSecret:      stringValue(v, "jwt_secret", ""),
		ExportDir:      stringValue(v, "export_dir", "exports"),
		RosterCacheTTL: durationValue(v, "roster_cache_ttl", time.Hour),
		RateLimitRPS:   floatValue(v, "rate_limit_rps", 1),
		RateLimitBurst: intValue(v, "rate_limit_burst", 5),

		RBACPolicyTTL:      durationValue(v, "rbac_policy_ttl", time.Minute),
		OutboxPollInterval: durationValue(v, "outbox_poll_interval", 3*time.Second),
		ConsumerGroupID:    stringValue(v, "kafka_consumer_group", "elec-payroll-export-archiver"),
		MigrateOnStart:     boolValue(v, "migrate_on_start", false),
	}
	if cfg.Postgres.Host == "" {
		return cfg, fmt.Errorf("DB_HOST not set")
	}
	return cfg, nil
}
