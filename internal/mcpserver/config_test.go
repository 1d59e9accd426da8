package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

// clearCADREFSEnv clears all CADREFS_* env vars to isolate tests from the ambient environment.
func clearCADREFSEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CADREFS_LICENSE_KEY", "CADREFS_LOG_LEVEL", "CADREFS_METRICS_ADDR",
		"CADREFS_RESULT_LIMIT", "CADREFS_MAX_LIMIT", "CADREFS_STRICT_CONFIGURATION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearCADREFSEnv(t)

	c := loadConfig()

	assert.Equal(t, "snapshot", c.LicenseKey)
	assert.Equal(t, zapcore.InfoLevel, c.LogLevel)
	assert.Empty(t, c.MetricsAddr)
	assert.Equal(t, 100, c.ResultLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.False(t, c.StrictConfiguration)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearCADREFSEnv(t)
	t.Setenv("CADREFS_LICENSE_KEY", "abc-123")
	t.Setenv("CADREFS_LOG_LEVEL", "debug")
	t.Setenv("CADREFS_METRICS_ADDR", "127.0.0.1:9464")
	t.Setenv("CADREFS_RESULT_LIMIT", "20")
	t.Setenv("CADREFS_MAX_LIMIT", "50")
	t.Setenv("CADREFS_STRICT_CONFIGURATION", "true")

	c := loadConfig()

	assert.Equal(t, "abc-123", c.LicenseKey)
	assert.Equal(t, zapcore.DebugLevel, c.LogLevel)
	assert.Equal(t, "127.0.0.1:9464", c.MetricsAddr)
	assert.Equal(t, 20, c.ResultLimit)
	assert.Equal(t, 50, c.MaxLimit)
	assert.True(t, c.StrictConfiguration)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearCADREFSEnv(t)
	t.Setenv("CADREFS_LOG_LEVEL", "loud")
	t.Setenv("CADREFS_RESULT_LIMIT", "-5")
	t.Setenv("CADREFS_MAX_LIMIT", "many")
	t.Setenv("CADREFS_STRICT_CONFIGURATION", "maybe")

	c := loadConfig()

	assert.Equal(t, zapcore.InfoLevel, c.LogLevel)
	assert.Equal(t, 100, c.ResultLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.False(t, c.StrictConfiguration)
}
