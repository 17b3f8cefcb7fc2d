package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jgirmay/fps-trainer/internal/trainer/models"
)

func TestWriteActions_RecordSpans(t *testing.T) {
	setupDB(t)
	lessons := seeded(t)

	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ctx := context.Background()
	_, err := StartLesson(ctx, lessons[0].ID)
	require.NoError(t, err)

	_, err = RecordMeasurement(ctx, 9999, models.RecordMeasurementRequest{
		Kind:  models.KindAccuracy,
		Value: value(50),
	})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "StartLesson", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.Int64("lesson.id", int64(lessons[0].ID)))

	assert.Equal(t, "RecordMeasurement", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
