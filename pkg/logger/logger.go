// Package logger builds the process-wide zap logger. Request-scoped
// enrichment lives with the HTTP context adapter, not here.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level    string
	Encoding string
	AppName  string
}

// New builds a zap.Logger writing to stdout. An unparseable level falls
// back to info rather than failing startup.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Encoding == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(zapcore.Lock(os.Stdout)), level)

	opts := []zap.Option{zap.AddCaller()}
	if cfg.AppName != "" {
		opts = append(opts, zap.Fields(zap.String("app", cfg.AppName)))
	}
	return zap.New(core, opts...), nil
}
