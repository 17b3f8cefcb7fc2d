package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/jgirmay/fps-trainer/pkg/config"
)

func TestInit_DisabledKeepsGlobalProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Init(context.Background(), config.TracingConfig{}, "test", "0.0.0", nil)
	require.NoError(t, err)

	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_StdoutExporter(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := Init(context.Background(), config.TracingConfig{Enabled: true, SampleRatio: 1}, "test", "0.0.0", nil)
	require.NoError(t, err)
	assert.NotEqual(t, before, otel.GetTracerProvider())

	_, span := otel.Tracer("test").Start(context.Background(), "unit")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
