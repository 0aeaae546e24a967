package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. Production mode emits JSON;
// anything else gets the colorized development encoder. The level can
// be overridden with the LOG_LEVEL environment variable.
func NewLogger(level string) (*zap.Logger, error) {
	var config zap.Config

	if os.Getenv("APP_ENV") == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}
	var parsed zapcore.Level
	if err := parsed.UnmarshalText([]byte(level)); err == nil {
		config.Level.SetLevel(parsed)
	}

	return config.Build()
}
