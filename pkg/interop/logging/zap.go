package logging

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/zap"
)

// NewZap returns a Logger backed by a zap.Logger. Passing nil yields a no-op
// zap logger. Key/value pairs follow the slog convention and are converted to
// zap fields; a trailing key without a value is logged under "!BADKEY".
func NewZap(logger *zap.Logger) Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapLogger{logger: logger}
}

type zapLogger struct {
	logger *zap.Logger
}

func (l *zapLogger) Debug(_ context.Context, msg string, args ...any) {
	l.logger.Debug(msg, zapFields(args)...)
}

func (l *zapLogger) Info(_ context.Context, msg string, args ...any) {
	l.logger.Info(msg, zapFields(args)...)
}

func (l *zapLogger) Warn(_ context.Context, msg string, args ...any) {
	l.logger.Warn(msg, zapFields(args)...)
}

func (l *zapLogger) Error(_ context.Context, msg string, args ...any) {
	l.logger.Error(msg, zapFields(args)...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{logger: l.logger.With(zapFields(args)...)}
}

func zapFields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	fields := make([]zap.Field, 0, len(args)/2+1)
	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case slog.Attr:
			fields = append(fields, zap.Any(v.Key, v.Value.Any()))
		case string:
			if i+1 >= len(args) {
				fields = append(fields, zap.String("!BADKEY", v))
				continue
			}
			fields = append(fields, zap.Any(v, args[i+1]))
			i++
		default:
			fields = append(fields, zap.String("!BADKEY", fmt.Sprint(v)))
		}
	}
	return fields
}
