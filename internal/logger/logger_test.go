package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quadrant-analyzer/internal/trace"
)

func observe(t *testing.T, level zapcore.Level, detailed bool) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	SetLogger(zap.New(core), detailed)
	t.Cleanup(func() { SetLogger(zap.NewNop(), false) })
	return logs
}

func TestInfo_WritesFields(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, false)

	Info(context.Background(), "Analysis started", "ticker", "AMRT", "count", 1)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Analysis started", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "AMRT", entry.ContextMap()["ticker"])
	assert.EqualValues(t, 1, entry.ContextMap()["count"])
}

func TestDebug_OnlyWhenDetailed(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel, false)
	Debug(context.Background(), "hidden")
	assert.Equal(t, 0, logs.Len())

	logs = observe(t, zapcore.DebugLevel, true)
	Debug(context.Background(), "shown")
	assert.Equal(t, 1, logs.FilterMessage("shown").Len())
}

func TestErrorWithErr(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, false)

	ErrorWithErr(context.Background(), "Analysis failed", errors.New("boom"), "ticker", "AMRT")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "boom", entry.ContextMap()["error"])
	assert.Equal(t, "AMRT", entry.ContextMap()["ticker"])
}

func TestLogWithTrace_AddsTraceIDs(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, false)
	var buf bytes.Buffer
	require.NoError(t, trace.InitWithConfig(trace.Config{Enabled: true, Writer: &buf}))
	t.Cleanup(func() { _ = trace.Shutdown(context.Background()) })

	ctx, span := trace.StartSpan(context.Background(), "quadrant.log")
	Warn(ctx, "inside span")
	span.End()

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Len(t, fields["trace_id"], 32)
	assert.Len(t, fields["span_id"], 16)
}

func TestOperationTimer(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, false)

	op := StartOperation(context.Background(), "quadrant.Analyze", "ticker", "AMRT")
	assert.NotNil(t, op.GetContext())
	op.End("quadrant", "GROWTH")

	completed := logs.FilterMessage("Operation completed").All()
	require.Len(t, completed, 1)
	fields := completed[0].ContextMap()
	assert.Equal(t, "quadrant.Analyze", fields["operation"])
	assert.Equal(t, "GROWTH", fields["quadrant"])
	assert.Contains(t, fields, "duration_ms")

	op = StartOperation(context.Background(), "quadrant.Compare")
	op.EndWithError(errors.New("bad input"))
	assert.Equal(t, 1, logs.FilterMessage("Operation failed").Len())
}

func TestClassification(t *testing.T) {
	logs := observe(t, zapcore.InfoLevel, false)

	Classification(context.Background(), "AMRT", "GROWTH", "HOLD", 2.47, 3.3)

	entries := logs.FilterMessage("Equity classified").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "CLASSIFICATION", fields["type"])
	assert.Equal(t, "GROWTH", fields["quadrant"])
	assert.Equal(t, 2.47, fields["company_score"])
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLogLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLogLevel("Error"))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel("verbose"))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_DETAILED", "true")
	t.Setenv("LOG_TRACING_ENABLED", "")

	cfg := LoadConfigFromEnv()

	assert.Equal(t, LogConfig{Level: "WARN", Format: "json", DetailedLogging: true, TracingEnabled: false}, cfg)
}

func TestInitWithConfig(t *testing.T) {
	t.Cleanup(func() { SetLogger(zap.NewNop(), false) })

	require.NoError(t, InitWithConfig(LogConfig{Level: "INFO", Format: "json"}))
	assert.False(t, isDetailed())

	require.NoError(t, InitWithConfig(LogConfig{Level: "ERROR", Format: "console", DetailedLogging: true}))
	assert.True(t, isDetailed())
}
