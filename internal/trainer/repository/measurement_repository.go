package repository

import (
	"github.com/jgirmay/fps-trainer/internal/common/database"
	"github.com/jgirmay/fps-trainer/internal/common/dbctx"
	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/internal/trainer/models"
)

const newestFirst = "recorded_at DESC, id DESC"

// CreateMeasurement appends a measurement
func CreateMeasurement(dc dbctx.Context, m *models.Measurement) error {
	if err := dc.DB(database.DB).Create(m).Error; err != nil {
		return errors.Internal("failed to record measurement", err.Error())
	}
	return nil
}

// GetMeasurementsByLessonID returns a lesson's full history, newest first
func GetMeasurementsByLessonID(dc dbctx.Context, lessonID uint) ([]models.Measurement, error) {
	var measurements []models.Measurement
	result := dc.DB(database.DB).
		Where("lesson_id = ?", lessonID).
		Order(newestFirst).
		Find(&measurements)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch measurements", result.Error.Error())
	}
	return measurements, nil
}

// GetLatestMeasurements returns the newest measurement of every lesson that
// has one, keyed by lesson id.
func GetLatestMeasurements(dc dbctx.Context) (map[uint]models.Measurement, error) {
	var measurements []models.Measurement
	result := dc.DB(database.DB).
		Where("measurements.id = (SELECT m2.id FROM measurements m2 WHERE m2.lesson_id = measurements.lesson_id ORDER BY m2.recorded_at DESC, m2.id DESC LIMIT 1)").
		Find(&measurements)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch latest measurements", result.Error.Error())
	}

	latest := make(map[uint]models.Measurement, len(measurements))
	for _, m := range measurements {
		latest[m.LessonID] = m
	}
	return latest, nil
}

// CountMeasurements returns how many measurements are stored
func CountMeasurements(dc dbctx.Context) (int64, error) {
	var count int64
	if err := dc.DB(database.DB).Model(&models.Measurement{}).Count(&count).Error; err != nil {
		return 0, errors.Internal("failed to count measurements", err.Error())
	}
	return count, nil
}
