package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds the service-wide sugared logger. env selects the encoder:
// "production" gets JSON, everything else gets the console encoder.
func Init(serviceName, env string) *zap.SugaredLogger {
	var cfg zap.Config

	switch env {
	case "production":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		cfg.DisableStacktrace = true
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}

	z, err := cfg.Build(zap.WithCaller(false))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot init zap logger: %v\n", err)
		os.Exit(1)
	}

	return z.Named(serviceName).Sugar()
}
