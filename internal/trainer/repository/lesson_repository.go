package repository

import (
	stderrors "errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgirmay/fps-trainer/internal/common/database"
	"github.com/jgirmay/fps-trainer/internal/common/dbctx"
	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/internal/trainer/models"
)

// Migrate creates or updates the trainer tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Lesson{}, &models.Progress{}, &models.Measurement{})
}

// CountLessons returns the number of stored lessons
func CountLessons(dc dbctx.Context) (int64, error) {
	var count int64
	if err := dc.DB(database.DB).Model(&models.Lesson{}).Count(&count).Error; err != nil {
		return 0, errors.Internal("failed to count lessons", err.Error())
	}
	return count, nil
}

// InsertLessonsIfAbsent inserts lessons whose title is not stored yet and
// returns how many rows were written.
func InsertLessonsIfAbsent(dc dbctx.Context, lessons []models.Lesson) (int64, error) {
	if len(lessons) == 0 {
		return 0, nil
	}
	result := dc.DB(database.DB).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoNothing: true,
		}).
		Create(&lessons)
	if result.Error != nil {
		return 0, errors.Internal("failed to seed lessons", result.Error.Error())
	}
	return result.RowsAffected, nil
}

// ListLessons returns every lesson with its progress, easiest first
func ListLessons(dc dbctx.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	result := dc.DB(database.DB).
		Preload("Progress").
		Order("difficulty ASC").
		Order("id ASC").
		Find(&lessons)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch lessons", result.Error.Error())
	}
	return lessons, nil
}

// GetLessonByID retrieves a lesson and its progress
func GetLessonByID(dc dbctx.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	result := dc.DB(database.DB).Preload("Progress").First(&lesson, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("lesson")
		}
		return nil, errors.Internal("failed to fetch lesson", result.Error.Error())
	}
	return &lesson, nil
}
