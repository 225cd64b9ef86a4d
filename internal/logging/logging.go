// Package logging holds the process-wide structured logger.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It discards everything until Initialize runs.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize replaces Logger. Output goes to stderr so that stdout stays free
// for generated values and the MCP stdio transport.
func Initialize(level string, jsonOutput bool) error {
	logger, err := New(level, jsonOutput, os.Stderr)
	if err != nil {
		return err
	}
	Logger = logger
	return nil
}

// New builds a logger writing to w at the given level ("debug", "info",
// "warn", "error"). An empty level means info.
func New(level string, jsonOutput bool, w io.Writer) (*zap.SugaredLogger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
	}

	var encoder zapcore.Encoder
	if jsonOutput {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core).Sugar(), nil
}

// Named returns a child of Logger tagged with component.
func Named(component string) *zap.SugaredLogger {
	return Logger.Named(component)
}
