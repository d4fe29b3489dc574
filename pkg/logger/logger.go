// Package logger provides zap logger construction for the SDK.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration
type Config struct {
	Level       string // "debug", "info", "warn", "error"
	Environment string // "development" or "production"
}

// New creates a configured *zap.Logger. A nil config yields a production
// logger at info level.
func New(config *Config) (*zap.Logger, error) {
	if config == nil {
		config = &Config{Level: "info", Environment: "production"}
	}

	var zapConfig zap.Config
	if config.Environment == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	return zapConfig.Build()
}

// NewNop returns a no-op logger for tests.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
