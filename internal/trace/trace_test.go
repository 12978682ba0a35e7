package trace

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestStartSpan_Disabled(t *testing.T) {
	require.NoError(t, InitWithConfig(Config{Enabled: false}))

	ctx, span := StartSpan(context.Background(), "quadrant.disabled")
	defer span.End()

	assert.False(t, Enabled())
	assert.False(t, span.SpanContext().IsValid())
	_, _, ok := GetTraceFields(ctx)
	assert.False(t, ok)
}

func TestStartSpan_DisabledLeavesParentOpen(t *testing.T) {
	require.NoError(t, InitWithConfig(Config{Enabled: false}))

	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	parentCtx, parent := tp.Tracer("test").Start(context.Background(), "request")
	defer parent.End()

	ctx, span := StartSpan(parentCtx, "quadrant.child")
	span.RecordError(errors.New("boom"))
	span.End()

	assert.Equal(t, parentCtx, ctx)
	assert.False(t, span.IsRecording())
	assert.True(t, parent.IsRecording())
	assert.Empty(t, parent.(sdktrace.ReadOnlySpan).Events())
}

func TestStartSpan_ExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithConfig(Config{Enabled: true, Writer: &buf}))

	ctx, span := StartSpan(context.Background(), "quadrant.test")
	traceID, spanID, ok := GetTraceFields(ctx)
	span.End()

	require.True(t, ok)
	assert.Len(t, traceID, 32)
	assert.Len(t, spanID, 16)

	require.NoError(t, Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "quadrant.test")
	assert.Contains(t, buf.String(), "quadrant-analyzer")
	assert.False(t, Enabled())
}

func TestShutdown_WithoutInit(t *testing.T) {
	assert.NoError(t, Shutdown(context.Background()))
}
