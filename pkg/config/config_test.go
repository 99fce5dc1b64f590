package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg := fromViper(newTestViper())

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, SyncBackendSheet, cfg.Sync.Backend)
	assert.Equal(t, 3, cfg.Sync.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Sync.RetryDelay)
	assert.Equal(t, "@every 5m", cfg.Sync.RefreshCron)
	assert.Empty(t, cfg.Sheet.ScriptURL)
	assert.Equal(t, 7*24*time.Hour, cfg.Redis.SnapshotTTL)
	assert.False(t, cfg.JWT.Enabled)
	assert.Equal(t, float64(5), cfg.RateLimit.RequestsPerSecond)
}

func TestFromViperOverrides(t *testing.T) {
	v := newTestViper()
	v.Set("SYNC_BACKEND", " Postgres ")
	v.Set("SHEET_SCRIPT_URL", " https://script.google.com/macros/s/abc/exec ")
	v.Set("SHEET_TIMEOUT", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	v.Set("REFRESH_CRON", "off")

	cfg := fromViper(v)

	assert.Equal(t, SyncBackendPostgres, cfg.Sync.Backend)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", cfg.Sheet.ScriptURL)
	assert.Equal(t, 15*time.Second, cfg.Sheet.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "off", cfg.Sync.RefreshCron)
}

func TestUnknownBackendFallsBackToSheet(t *testing.T) {
	v := newTestViper()
	v.Set("SYNC_BACKEND", "mongo")
	assert.Equal(t, SyncBackendSheet, fromViper(v).Sync.Backend)
}
