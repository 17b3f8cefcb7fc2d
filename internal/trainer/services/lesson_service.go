package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jgirmay/fps-trainer/internal/common/dbctx"
	"github.com/jgirmay/fps-trainer/internal/common/errors"
	"github.com/jgirmay/fps-trainer/internal/trainer/curriculum"
	"github.com/jgirmay/fps-trainer/internal/trainer/models"
	"github.com/jgirmay/fps-trainer/internal/trainer/repository"
	"github.com/jgirmay/fps-trainer/pkg/logger"
)

// now is swapped in tests
var now = time.Now

// EnsureSeeded inserts the curriculum when no lessons are stored and returns
// how many lessons were inserted. Existing rows are never touched.
func EnsureSeeded(ctx context.Context) (int64, error) {
	dc := dbctx.New(ctx)

	count, err := repository.CountLessons(dc)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted, err := repository.InsertLessonsIfAbsent(dc, curriculum.Lessons())
	if err != nil {
		return 0, err
	}
	if inserted > 0 {
		logger.Info("seeded lesson curriculum", zap.Int64("lessons", inserted))
	}
	return inserted, nil
}

// ListLessons returns the lesson list view, seeding first if needed
func ListLessons(ctx context.Context) (*models.LessonListResponse, error) {
	if _, err := EnsureSeeded(ctx); err != nil {
		return nil, err
	}

	dc := dbctx.New(ctx)
	lessons, err := repository.ListLessons(dc)
	if err != nil {
		return nil, err
	}
	latest, err := repository.GetLatestMeasurements(dc)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.LessonSummary, 0, len(lessons))
	for _, l := range lessons {
		status := statusOf(l.Progress)
		summary := models.LessonSummary{
			ID:                  l.ID,
			Title:               l.Title,
			Description:         l.Description,
			Objectives:          []string(l.Objectives),
			GameRecommendations: []string(l.GameRecommendations),
			Difficulty:          l.Difficulty,
			DifficultyStars:     DifficultyStars(l.Difficulty),
			MinimumScore:        l.MinimumScore,
			MeasurementKind:     l.MeasurementKind,
			Status:              status,
			StatusText:          StatusText(status),
			StatusColor:         StatusColor(status),
			ActionLabel:         ActionLabel(status),
			Progress:            l.Progress,
		}
		if m, ok := latest[l.ID]; ok {
			summary.LatestMeasurement = &m
		}
		summaries = append(summaries, summary)
	}

	return &models.LessonListResponse{
		Lessons: summaries,
		Total:   len(summaries),
	}, nil
}

// GetLesson returns the detail view of one lesson
func GetLesson(ctx context.Context, id uint) (*models.LessonDetailResponse, error) {
	if id == 0 {
		return nil, errors.NotFound("lesson")
	}

	dc := dbctx.New(ctx)
	lesson, err := repository.GetLessonByID(dc, id)
	if err != nil {
		return nil, err
	}
	history, err := repository.GetMeasurementsByLessonID(dc, id)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []models.Measurement{}
	}

	status := statusOf(lesson.Progress)
	detail := &models.LessonDetailResponse{
		ID:                  lesson.ID,
		Title:               lesson.Title,
		Description:         lesson.Description,
		Objectives:          []string(lesson.Objectives),
		GameRecommendations: []string(lesson.GameRecommendations),
		Difficulty:          lesson.Difficulty,
		DifficultyStars:     DifficultyStars(lesson.Difficulty),
		MinimumScore:        lesson.MinimumScore,
		MeasurementKind:     lesson.MeasurementKind,
		Status:              status,
		StatusText:          StatusLabel(status),
		StatusColor:         StatusColor(status),
		CanStart:            status == models.StatusNotStarted || status == models.StatusInProgress,
		CanPractice:         status == models.StatusInProgress,
		Progress:            lesson.Progress,
		Measurements:        history,
	}
	if status == models.StatusCompleted {
		detail.CompletionMessage = CompletionMessage
	}
	return detail, nil
}
