package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
)

func TestSlogLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger := logging.New(base).With("scope", "ctx-1")

	logger.Debug(context.Background(), "cache miss", "category", "value")
	out := buf.String()
	assert.Contains(t, out, "cache miss")
	assert.Contains(t, out, "scope=ctx-1")
	assert.Contains(t, out, "category=value")
}

func TestSlogLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	ctx := context.Background()
	logger.Debug(ctx, "wrapper materialized")
	logger.Info(ctx, "context created")
	logger.Warn(ctx, "token released twice")
	logger.Error(ctx, "llvm diagnostic", "severity", "error")

	out := buf.String()
	assert.NotContains(t, out, "wrapper materialized")
	assert.NotContains(t, out, "context created")
	assert.Contains(t, out, "level=WARN msg=\"token released twice\"")
	assert.Contains(t, out, "level=ERROR msg=\"llvm diagnostic\" severity=error")
}

func TestHandleAttr(t *testing.T) {
	attr := logging.Handle("ref", 0x7f00)
	assert.Equal(t, "ref", attr.Key)
	assert.Equal(t, "0x7f00", attr.Value.String())
	assert.Equal(t, "null", logging.Handle("ref", 0).Value.String())
}

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZap(zap.New(core)).With("scope", "ctx-2")

	logger.Warn(context.Background(), "double release", "token", uintptr(7), logging.Handle("ptr", 0x10), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "double release", e.Message)
	assert.Equal(t, zapcore.WarnLevel, e.Level)

	fields := e.ContextMap()
	assert.Equal(t, "ctx-2", fields["scope"])
	assert.EqualValues(t, 7, fields["token"])
	assert.Equal(t, "0x10", fields["ptr"])
	assert.Equal(t, "dangling", fields["!BADKEY"])
}

func TestNopDiscards(t *testing.T) {
	logger := logging.Nop().With("a", 1)
	logger.Error(context.Background(), "ignored")
	assert.NotNil(t, logger)
	assert.NotNil(t, logging.NewZap(nil))
}
