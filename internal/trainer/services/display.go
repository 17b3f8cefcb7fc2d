package services

import (
	"math"
	"strings"

	"github.com/jgirmay/fps-trainer/internal/trainer/models"
)

const maxDifficulty = 5

// CompletionMessage is shown on the detail view of a completed lesson.
const CompletionMessage = "✓ Lesson completed! You can continue practicing or move to the next lesson."

// DifficultyStars renders a difficulty as five glyphs, filled stars first.
func DifficultyStars(difficulty int) string {
	if difficulty < 0 {
		difficulty = 0
	}
	if difficulty > maxDifficulty {
		difficulty = maxDifficulty
	}
	return strings.Repeat("★", difficulty) + strings.Repeat("☆", maxDifficulty-difficulty)
}

func StatusText(status models.ProgressStatus) string {
	switch status {
	case models.StatusCompleted:
		return "Completed"
	case models.StatusMastered:
		return "Mastered"
	case models.StatusInProgress:
		return "In Progress"
	default:
		return "Not Started"
	}
}

// StatusLabel is the detail view variant of StatusText.
func StatusLabel(status models.ProgressStatus) string {
	switch status {
	case models.StatusCompleted:
		return "Completed ✓"
	case models.StatusMastered:
		return "Mastered ★"
	case models.StatusInProgress:
		return "In Progress..."
	default:
		return "Not Started"
	}
}

func StatusColor(status models.ProgressStatus) string {
	switch status {
	case models.StatusCompleted, models.StatusMastered:
		return "green"
	case models.StatusInProgress:
		return "yellow"
	default:
		return "gray"
	}
}

// ActionLabel is the list view button text.
func ActionLabel(status models.ProgressStatus) string {
	if status == models.StatusNotStarted || status == "" {
		return "Start Lesson"
	}
	return "Continue"
}

// LessonProgressPercentage estimates how far a lesson is along, 0..100.
func LessonProgressPercentage(status models.ProgressStatus, bestScore, minimumScore *float64) float64 {
	if status.IsDone() {
		return 100
	}
	if bestScore != nil && minimumScore != nil && *minimumScore > 0 {
		return math.Min(*bestScore / *minimumScore * 100, 100)
	}
	if status == models.StatusInProgress {
		return 25
	}
	return 0
}

// OverallProgressPercentage is the share of lessons completed or mastered.
func OverallProgressPercentage(statuses []models.ProgressStatus) float64 {
	if len(statuses) == 0 {
		return 0
	}
	done := 0
	for _, s := range statuses {
		if s.IsDone() {
			done++
		}
	}
	return float64(done) / float64(len(statuses)) * 100
}

var measurementKinds = []models.MeasurementKindInfo{
	{Kind: models.KindAccuracy, Label: "Accuracy (%)", DefaultUnit: "%"},
	{Kind: models.KindReactionTime, Label: "Reaction Time", DefaultUnit: "ms"},
	{Kind: models.KindTrackingScore, Label: "Tracking Score", DefaultUnit: "%"},
	{Kind: models.KindCrosshairPlacement, Label: "Crosshair Placement", DefaultUnit: "%"},
	{Kind: models.KindFlickSpeed, Label: "Flick Speed", DefaultUnit: "ms"},
	{Kind: models.KindTargetSwitching, Label: "Target Switching", DefaultUnit: "%"},
	{Kind: models.KindCustom, Label: "Custom Metric", DefaultUnit: ""},
}

// MeasurementKinds lists the selectable kinds in form order.
func MeasurementKinds() []models.MeasurementKindInfo {
	out := make([]models.MeasurementKindInfo, len(measurementKinds))
	copy(out, measurementKinds)
	return out
}

func statusOf(p *models.Progress) models.ProgressStatus {
	if p == nil || p.Status == "" {
		return models.StatusNotStarted
	}
	return p.Status
}
