package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jgirmay/fps-trainer/internal/common/dbctx"
	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/internal/common/events"
	"github.com/jgirmay/fps-trainer/internal/trainer/models"
	"github.com/jgirmay/fps-trainer/internal/trainer/repository"
	"github.com/jgirmay/fps-trainer/pkg/logger"
	"github.com/jgirmay/fps-trainer/pkg/metrics"
)

// StartLesson marks a lesson in progress and counts one more attempt.
// Completed lessons can be started again; their scores are kept.
func StartLesson(ctx context.Context, lessonID uint) (_ *models.Progress, err error) {
	ctx, span := startSpan(ctx, "StartLesson", lessonID)
	defer finishSpan(span, &err)

	if lessonID == 0 {
		return nil, errors.NotFound("lesson")
	}

	dc := dbctx.New(ctx)
	if _, err := repository.GetLessonByID(dc, lessonID); err != nil {
		return nil, err
	}

	progress, err := repository.UpsertStarted(dc, lessonID, now())
	if err != nil {
		return nil, err
	}

	metrics.LessonStarted()
	logger.Debug("lesson started",
		zap.Uint("lesson_id", lessonID),
		zap.Int("attempts", progress.Attempts),
	)
	events.Publish(events.Event{
		Type:       events.EventLessonStarted,
		LessonID:   lessonID,
		StaleViews: staleAfterWrite(lessonID),
	})

	return progress, nil
}

// GetProgressSummary returns the aggregate progress view, seeding first if
// needed.
func GetProgressSummary(ctx context.Context) (*models.ProgressSummaryResponse, error) {
	if _, err := EnsureSeeded(ctx); err != nil {
		return nil, err
	}

	lessons, err := repository.ListLessons(dbctx.New(ctx))
	if err != nil {
		return nil, err
	}

	summary := &models.ProgressSummaryResponse{
		TotalLessons: len(lessons),
		Lessons:      make([]models.LessonProgressEntry, 0, len(lessons)),
	}
	statuses := make([]models.ProgressStatus, 0, len(lessons))

	for _, l := range lessons {
		status := statusOf(l.Progress)
		statuses = append(statuses, status)
		if status.IsDone() {
			summary.CompletedLessons++
		}

		entry := models.LessonProgressEntry{
			LessonID:        l.ID,
			Title:           l.Title,
			DifficultyStars: DifficultyStars(l.Difficulty),
			MinimumScore:    l.MinimumScore,
			Status:          status,
			StatusText:      StatusText(status),
			Started:         l.Progress != nil,
		}
		if p := l.Progress; p != nil {
			entry.Attempts = p.Attempts
			entry.BestScore = p.BestScore
			entry.LastScore = p.LastScore
			summary.TotalSessions += p.Attempts
		}
		entry.ProgressPercentage = LessonProgressPercentage(status, entry.BestScore, l.MinimumScore)
		summary.Lessons = append(summary.Lessons, entry)
	}

	summary.OverallPercentage = OverallProgressPercentage(statuses)
	return summary, nil
}
