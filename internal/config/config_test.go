package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dues?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.GetAnnualFee().Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 28, cfg.Business.GracePeriodDays)
	assert.Equal(t, 7, cfg.Business.DeactivationNoticeDays)
	assert.Equal(t, 30, cfg.Business.RecentActivityDays)
	assert.Equal(t, 48*time.Hour, cfg.GetAuditCacheTTL())
	assert.Equal(t, 5*time.Second, cfg.GetHealthTimeout())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/dues")
	t.Setenv("ENV", "production")
	t.Setenv("ANNUAL_FEE", "45.50")
	t.Setenv("GRACE_PERIOD_DAYS", "14")
	t.Setenv("SCHEDULER_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.GetAnnualFee().Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, 14, cfg.Business.GracePeriodDays)
	assert.Equal(t, time.UTC, cfg.GetLocation())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080", ReadTimeout: "1s", WriteTimeout: "1s"},
			Database:  DatabaseConfig{URL: "postgres://db", ConnMaxLifetime: "1m"},
			Redis:     RedisConfig{AuditCacheTTL: "1h"},
			Scheduler: SchedulerConfig{AuditSchedule: "0 0 2 * * *", SummarySchedule: "@weekly", Timezone: "UTC"},
			Business:  BusinessConfig{AnnualFee: "40", GracePeriodDays: 28, DeactivationNoticeDays: 7, RecentActivityDays: 30},
			Health:    HealthConfig{Timeout: "5s"},
		}
	}

	tests := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, errorContains: "SERVER_PORT"},
		{name: "missing database", mutate: func(c *Config) { c.Database.URL = "" }, errorContains: "DATABASE_URL"},
		{name: "bad fee", mutate: func(c *Config) { c.Business.AnnualFee = "forty" }, errorContains: "ANNUAL_FEE"},
		{name: "negative fee", mutate: func(c *Config) { c.Business.AnnualFee = "-1" }, errorContains: "ANNUAL_FEE"},
		{name: "zero grace", mutate: func(c *Config) { c.Business.GracePeriodDays = 0 }, errorContains: "GRACE_PERIOD_DAYS"},
		{name: "bad ttl", mutate: func(c *Config) { c.Redis.AuditCacheTTL = "soon" }, errorContains: "AUDIT_CACHE_TTL"},
		{name: "bad cron", mutate: func(c *Config) { c.Scheduler.AuditSchedule = "every day" }, errorContains: "AUDIT_SCHEDULE"},
		{name: "bad timezone", mutate: func(c *Config) { c.Scheduler.Timezone = "Mars/Olympus" }, errorContains: "SCHEDULER_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}
