// Package logger builds the zap loggers used by routegen.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vango-dev/routegen/internal/errors"
)

// Options configures a logger.
type Options struct {
	// Level is a zap level name: debug, info, warn or error.
	Level string

	// JSON selects structured JSON output instead of the console encoder.
	JSON bool

	// Output receives log lines. Defaults to os.Stderr so generated output
	// on stdout stays clean.
	Output io.Writer
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, errors.New("E101").
				WithLocation("", "log.level").
				WithSuggestion("Use one of debug, info, warn, error").
				Wrap(err)
		}
		level = parsed
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var encoder zapcore.Encoder
	if opts.JSON {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cfg.EncodeCaller = nil
		cfg.CallerKey = ""
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(out), level)), nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
