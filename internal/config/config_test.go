package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := Load()

		assert.Equal(t, "0.0.0.0", cfg.ServerHost)
		assert.Equal(t, 8080, cfg.ServerPort)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 6*365*24*time.Hour, cfg.AuditRetention)
		assert.Equal(t, 0.7, cfg.QuarantineThreshold)
		assert.Equal(t, "overwrite3", cfg.ErasureMethod)
		assert.Equal(t, "phiguard", cfg.MetricsNamespace)
		assert.True(t, cfg.MetricsEnabled)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("AUDIT_RETENTION_DAYS", "2920")
		t.Setenv("QUARANTINE_THRESHOLD", "0.85")
		t.Setenv("ERASURE_METHOD", "dod5220")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		assert.Equal(t, 9090, cfg.ServerPort)
		assert.Equal(t, 2920*24*time.Hour, cfg.AuditRetention)
		assert.Equal(t, 0.85, cfg.QuarantineThreshold)
		assert.Equal(t, "dod5220", cfg.ErasureMethod)
		assert.Equal(t, "debug", cfg.GetGinMode())
	})

	t.Run("default retention meets the mandated floor", func(t *testing.T) {
		cfg := Load()
		assert.GreaterOrEqual(t, cfg.AuditRetention, MinAuditRetention)
	})
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		want     string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, cfg.GetGinMode())
		})
	}
}
