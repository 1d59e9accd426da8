package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"

	"github.com/erraggy/cadrefs/snapshot"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// LicenseKey is passed to the document-manager class factory.
	LicenseKey string

	// LogLevel is the minimum level written to stderr.
	LogLevel zapcore.Level

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string

	// Result defaults.
	ResultLimit int
	MaxLimit    int

	// StrictConfiguration rejects counts without an explicit configuration.
	StrictConfiguration bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from CADREFS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		LicenseKey:          envString("CADREFS_LICENSE_KEY", snapshot.DefaultLicenseKey),
		LogLevel:            envLevel("CADREFS_LOG_LEVEL", zapcore.InfoLevel),
		MetricsAddr:         envString("CADREFS_METRICS_ADDR", ""),
		ResultLimit:         envInt("CADREFS_RESULT_LIMIT", 100),
		MaxLimit:            envInt("CADREFS_MAX_LIMIT", 1000),
		StrictConfiguration: envBool("CADREFS_STRICT_CONFIGURATION", false),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envLevel(key string, fallback zapcore.Level) zapcore.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	level, err := zapcore.ParseLevel(v)
	if err != nil {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback.String()) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return level
}
