package repository

import (
	stderrors "errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgirmay/fps-trainer/internal/common/database"
	"github.com/jgirmay/fps-trainer/internal/common/dbctx"
	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/internal/trainer/models"
)

// FindProgressByLessonID returns the progress row of a lesson, or nil when the
// lesson was never started.
func FindProgressByLessonID(dc dbctx.Context, lessonID uint) (*models.Progress, error) {
	var progress models.Progress
	result := dc.DB(database.DB).Where("lesson_id = ?", lessonID).First(&progress)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Internal("failed to fetch progress", result.Error.Error())
	}
	return &progress, nil
}

// UpsertStarted marks a lesson in progress. The first start creates the row
// with one attempt; later starts bump the attempt counter in the same
// statement.
func UpsertStarted(dc dbctx.Context, lessonID uint, now time.Time) (*models.Progress, error) {
	row := models.Progress{
		LessonID:  lessonID,
		Status:    models.StatusInProgress,
		Attempts:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result := dc.DB(database.DB).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "lesson_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     models.StatusInProgress,
				"attempts":   gorm.Expr("lesson_progress.attempts + 1"),
				"updated_at": now,
			}),
		}).
		Create(&row)
	if result.Error != nil {
		return nil, errors.Internal("failed to start lesson", result.Error.Error())
	}

	progress, err := FindProgressByLessonID(dc, lessonID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, errors.Internal("failed to start lesson", "progress row missing after upsert")
	}
	return progress, nil
}

// ApplyScore folds a new reading into the lesson's progress. best_score only
// ever grows; completed_at keeps the first completion time. Returns nil when
// the lesson has no progress row.
func ApplyScore(dc dbctx.Context, lessonID uint, value float64, minimum *float64, now time.Time) (*models.Progress, error) {
	completed := minimum != nil && value >= *minimum
	status := models.StatusInProgress
	if completed {
		status = models.StatusCompleted
	}

	updates := map[string]interface{}{
		"last_score": value,
		"best_score": gorm.Expr("CASE WHEN best_score IS NULL OR best_score < ? THEN ? ELSE best_score END", value, value),
		"completed":  completed,
		"status":     status,
		"updated_at": now,
	}
	if completed {
		updates["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", now)
	}

	result := dc.DB(database.DB).
		Model(&models.Progress{}).
		Where("lesson_id = ?", lessonID).
		Updates(updates)
	if result.Error != nil {
		return nil, errors.Internal("failed to update progress", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return FindProgressByLessonID(dc, lessonID)
}
