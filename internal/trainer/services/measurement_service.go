package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jgirmay/fps-trainer/internal/common/database"
	"github.com/jgirmay/fps-trainer/internal/common/dbctx"
	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/internal/common/events"
	"github.com/jgirmay/fps-trainer/internal/common/validation"
	"github.com/jgirmay/fps-trainer/internal/trainer/models"
	"github.com/jgirmay/fps-trainer/internal/trainer/repository"
	"github.com/jgirmay/fps-trainer/pkg/logger"
	"github.com/jgirmay/fps-trainer/pkg/metrics"
)

// RecordMeasurement appends a reading to a lesson and folds it into the
// lesson's progress when the lesson has been started. Nothing is written when
// the lesson does not exist.
func RecordMeasurement(ctx context.Context, lessonID uint, req models.RecordMeasurementRequest) (_ *models.Measurement, err error) {
	ctx, span := startSpan(ctx, "RecordMeasurement", lessonID)
	defer finishSpan(span, &err)

	if errs := validation.Validate(req); len(errs) > 0 {
		return nil, errors.Validation("invalid measurement", validation.Summary(errs))
	}
	if lessonID == 0 {
		return nil, errors.NotFound("lesson")
	}

	measurement := &models.Measurement{
		LessonID:   lessonID,
		Kind:       req.Kind,
		Value:      *req.Value,
		Unit:       req.Unit,
		RecordedAt: now(),
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		measurement.Notes = &notes
	}

	var progress *models.Progress
	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dc := dbctx.Context{Ctx: ctx, Tx: tx}

		lesson, err := repository.GetLessonByID(dc, lessonID)
		if err != nil {
			return err
		}
		if err := repository.CreateMeasurement(dc, measurement); err != nil {
			return err
		}
		progress, err = repository.ApplyScore(dc, lessonID, measurement.Value, lesson.MinimumScore, measurement.RecordedAt)
		return err
	})
	if err != nil {
		if _, ok := errors.As(err); ok {
			return nil, err
		}
		return nil, errors.Internal("failed to record measurement", err.Error())
	}

	metrics.MeasurementRecorded(string(measurement.Kind))
	fields := []zap.Field{
		zap.Uint("lesson_id", lessonID),
		zap.String("kind", string(measurement.Kind)),
		zap.Float64("value", measurement.Value),
	}
	if progress != nil {
		fields = append(fields, zap.String("status", string(progress.Status)))
	}
	logger.Debug("measurement recorded", fields...)

	events.Publish(events.Event{
		Type:       events.EventMeasurementRecorded,
		LessonID:   lessonID,
		StaleViews: staleAfterWrite(lessonID),
	})

	return measurement, nil
}
