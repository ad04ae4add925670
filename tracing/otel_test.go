package tracing

import (
	"context"
	"testing"

	"github.com/amirphl/email-feedback/config"
	"github.com/amirphl/email-feedback/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitDisabledKeepsNoopProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Init(context.Background(), logger.NewNop(), config.TracingConfig{Enabled: false}, config.DeploymentConfig{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Same(t, before, otel.GetTracerProvider())
}

func TestInitStdoutExporter(t *testing.T) {
	cfg := config.TracingConfig{
		Enabled:     true,
		Exporter:    "stdout",
		SampleRatio: 1,
		ServiceName: "email-feedback-test",
	}
	shutdown, err := Init(context.Background(), logger.NewNop(), cfg, config.DeploymentConfig{Environment: "test", Version: "v0"})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	_, span := otel.Tracer("test").Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsSampled())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
