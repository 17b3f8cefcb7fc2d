package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProgressStatus is the practice state of one lesson
type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
	StatusMastered   ProgressStatus = "mastered"
)

// IsDone reports whether the status counts toward completed lessons.
func (s ProgressStatus) IsDone() bool {
	return s == StatusCompleted || s == StatusMastered
}

// MeasurementKind names what a measurement reading measures
type MeasurementKind string

const (
	KindAccuracy           MeasurementKind = "accuracy"
	KindReactionTime       MeasurementKind = "reaction_time"
	KindTrackingScore      MeasurementKind = "tracking_score"
	KindCrosshairPlacement MeasurementKind = "crosshair_placement"
	KindFlickSpeed         MeasurementKind = "flick_speed"
	KindTargetSwitching    MeasurementKind = "target_switching"
	KindCustom             MeasurementKind = "custom"
)

// Lesson is a fixed curriculum entry. Rows are written once by the seeder.
type Lesson struct {
	ID                  uint                        `gorm:"primaryKey" json:"id"`
	Title               string                      `gorm:"uniqueIndex;not null" json:"title"`
	Description         string                      `gorm:"type:text" json:"description"`
	Objectives          datatypes.JSONSlice[string] `json:"objectives"`
	GameRecommendations datatypes.JSONSlice[string] `json:"game_recommendations"`
	Difficulty          int                         `gorm:"not null;index;check:difficulty >= 1 AND difficulty <= 5" json:"difficulty"`
	MinimumScore        *float64                    `json:"minimum_score"`
	MeasurementKind     MeasurementKind             `gorm:"type:varchar(32)" json:"measurement_kind"`
	CreatedAt           time.Time                   `json:"created_at"`

	Progress     *Progress     `gorm:"foreignKey:LessonID" json:"progress,omitempty"`
	Measurements []Measurement `gorm:"foreignKey:LessonID" json:"measurements,omitempty"`
}

// Progress is the mutable practice state of one lesson
type Progress struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	LessonID    uint           `gorm:"uniqueIndex;not null" json:"lesson_id"`
	Status      ProgressStatus `gorm:"type:varchar(16);not null;default:not_started" json:"status"`
	Attempts    int            `gorm:"not null;default:0" json:"attempts"`
	BestScore   *float64       `json:"best_score"`
	LastScore   *float64       `json:"last_score"`
	Completed   bool           `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Progress) TableName() string { return "lesson_progress" }

// Measurement is one immutable performance reading
type Measurement struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	LessonID   uint            `gorm:"not null;index:idx_measurements_lesson_recorded,priority:1" json:"lesson_id"`
	Kind       MeasurementKind `gorm:"type:varchar(32);not null" json:"kind"`
	Value      float64         `gorm:"not null" json:"value"`
	Unit       string          `gorm:"type:varchar(32)" json:"unit"`
	Notes      *string         `gorm:"type:text" json:"notes,omitempty"`
	RecordedAt time.Time       `gorm:"not null;index:idx_measurements_lesson_recorded,priority:2" json:"recorded_at"`
}

// RecordMeasurementRequest is the request body for recording a measurement
type RecordMeasurementRequest struct {
	Kind  MeasurementKind `json:"kind" validate:"required,oneof=accuracy reaction_time tracking_score crosshair_placement flick_speed target_switching custom"`
	Value *float64        `json:"value" validate:"required,finite"`
	Unit  string          `json:"unit" validate:"max=32"`
	Notes string          `json:"notes" validate:"max=1000"`
}

// MeasurementKindInfo describes one selectable measurement kind
type MeasurementKindInfo struct {
	Kind        MeasurementKind `json:"kind"`
	Label       string          `json:"label"`
	DefaultUnit string          `json:"default_unit"`
}

// LessonSummary is one row of the lesson list view
type LessonSummary struct {
	ID                  uint            `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Objectives          []string        `json:"objectives"`
	GameRecommendations []string        `json:"game_recommendations"`
	Difficulty          int             `json:"difficulty"`
	DifficultyStars     string          `json:"difficulty_stars"`
	MinimumScore        *float64        `json:"minimum_score"`
	MeasurementKind     MeasurementKind `json:"measurement_kind"`
	Status              ProgressStatus  `json:"status"`
	StatusText          string          `json:"status_text"`
	StatusColor         string          `json:"status_color"`
	ActionLabel         string          `json:"action_label"`
	Progress            *Progress       `json:"progress"`
	LatestMeasurement   *Measurement    `json:"latest_measurement"`
}

// LessonListResponse is the lesson list view
type LessonListResponse struct {
	Lessons []LessonSummary `json:"lessons"`
	Total   int             `json:"total"`
	Error   string          `json:"error,omitempty"`
}

// LessonDetailResponse is the lesson detail view
type LessonDetailResponse struct {
	ID                  uint            `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Objectives          []string        `json:"objectives"`
	GameRecommendations []string        `json:"game_recommendations"`
	Difficulty          int             `json:"difficulty"`
	DifficultyStars     string          `json:"difficulty_stars"`
	MinimumScore        *float64        `json:"minimum_score"`
	MeasurementKind     MeasurementKind `json:"measurement_kind"`
	Status              ProgressStatus  `json:"status"`
	StatusText          string          `json:"status_text"`
	StatusColor         string          `json:"status_color"`
	CanStart            bool            `json:"can_start"`
	CanPractice         bool            `json:"can_practice"`
	CompletionMessage   string          `json:"completion_message,omitempty"`
	Progress            *Progress       `json:"progress"`
	Measurements        []Measurement   `json:"measurements"`
}

// LessonProgressEntry is one row of the progress breakdown
type LessonProgressEntry struct {
	LessonID           uint           `json:"lesson_id"`
	Title              string         `json:"title"`
	DifficultyStars    string         `json:"difficulty_stars"`
	MinimumScore       *float64       `json:"minimum_score"`
	Status             ProgressStatus `json:"status"`
	StatusText         string         `json:"status_text"`
	ProgressPercentage float64        `json:"progress_percentage"`
	Attempts           int            `json:"attempts"`
	BestScore          *float64       `json:"best_score"`
	LastScore          *float64       `json:"last_score"`
	Started            bool           `json:"started"`
}

// ProgressSummaryResponse is the progress summary view
type ProgressSummaryResponse struct {
	OverallPercentage float64               `json:"overall_percentage"`
	CompletedLessons  int                   `json:"completed_lessons"`
	TotalLessons      int                   `json:"total_lessons"`
	TotalSessions     int                   `json:"total_sessions"`
	Lessons           []LessonProgressEntry `json:"lessons"`
}
