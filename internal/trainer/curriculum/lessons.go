// Package curriculum holds the fixed aim-training lesson catalogue.
package curriculum

import (
	"gorm.io/datatypes"

	"github.com/jgirmay/fps-trainer/internal/trainer/models"
)

// LessonData is one curriculum entry before it is stored
type LessonData struct {
	Title               string
	Description         string
	Objectives          []string
	GameRecommendations []string
	Difficulty          int
	MinimumScore        float64
	MeasurementKind     models.MeasurementKind
}

// DefaultLessons is the curriculum, ordered by difficulty.
var DefaultLessons = []LessonData{
	{
		Title:       "Crosshair Placement Fundamentals",
		Description: "Master the foundation of FPS games by learning proper crosshair positioning. Good crosshair placement reduces reaction time and improves accuracy by pre-aiming at common angles.",
		Objectives: []string{
			"Keep crosshair at head level at all times",
			"Pre-aim corners and common angles",
			"Maintain crosshair placement while moving",
			"Achieve 80%+ pre-aim accuracy in scenarios",
		},
		GameRecommendations: []string{
			"Aim Lab - Gridshot Ultimate",
			"Kovaak's - 1Wall6Targets TE",
			"CS2 - Aim_botz with crosshair placement focus",
			"Valorant - Range with Hard difficulty bots",
		},
		Difficulty:      1,
		MinimumScore:    80.0,
		MeasurementKind: models.KindCrosshairPlacement,
	},
	{
		Title:       "Tracking Moving Targets",
		Description: "Develop smooth mouse control and consistent aim while tracking moving targets. This skill is crucial for games with continuous movement and tracking scenarios.",
		Objectives: []string{
			"Maintain smooth mouse movements without micro-corrections",
			"Track targets at various speeds consistently",
			"Minimize aim deviation during tracking",
			"Achieve 75%+ accuracy on moving targets",
		},
		GameRecommendations: []string{
			"Aim Lab - Circular Tracking",
			"Kovaak's - Close Long Strafes Invincible",
			"Kovaak's - Thin Gauntlet",
			"3D Aim Trainer - Tracking scenarios",
		},
		Difficulty:      2,
		MinimumScore:    75.0,
		MeasurementKind: models.KindTrackingScore,
	},
	{
		Title:       "Flick Shot Precision",
		Description: "Build muscle memory for quick, accurate flick shots to targets at various distances and angles. Essential for quick target acquisition and reaction-based gameplay.",
		Objectives: []string{
			"Execute consistent flick shots to targets",
			"Maintain accuracy at different distances",
			"Minimize overshoot and undershoot errors",
			"Achieve sub-300ms reaction time with 70%+ accuracy",
		},
		GameRecommendations: []string{
			"Aim Lab - Sixshot",
			"Kovaak's - 1Wall6Targets TE",
			"CS2 - Aim_botz flick training",
			"Aim Lab - Spider Shot",
		},
		Difficulty:      3,
		MinimumScore:    70.0,
		MeasurementKind: models.KindFlickSpeed,
	},
	{
		Title:       "Target Switching & Multi-Target Engagement",
		Description: "Learn to efficiently switch between multiple targets while maintaining accuracy. Critical for multi-enemy scenarios and clutch situations.",
		Objectives: []string{
			"Quickly identify and prioritize multiple targets",
			"Maintain accuracy while switching between targets",
			"Develop efficient target acquisition patterns",
			"Complete multi-target scenarios with 65%+ accuracy",
		},
		GameRecommendations: []string{
			"Aim Lab - Multishot",
			"Kovaak's - 6 Sphere Hipfire Extra Small",
			"Valorant - Range with multiple targets",
			"Aim Lab - Detection",
		},
		Difficulty:      4,
		MinimumScore:    65.0,
		MeasurementKind: models.KindTargetSwitching,
	},
	{
		Title:       "Reaction Time & Accuracy Under Pressure",
		Description: "Combine speed with precision under time pressure. The ultimate test of FPS fundamentals, requiring quick decision-making and accurate execution.",
		Objectives: []string{
			"Maintain accuracy while under time constraints",
			"React quickly to visual stimuli",
			"Perform consistently under pressure",
			"Achieve sub-250ms reaction time with 60%+ accuracy",
		},
		GameRecommendations: []string{
			"Aim Lab - Reflexshot",
			"Human Benchmark - Reaction Time Test",
			"Kovaak's - 1Wall1Targets",
			"CS2 - Aim_reflex workshop maps",
		},
		Difficulty:      5,
		MinimumScore:    60.0,
		MeasurementKind: models.KindReactionTime,
	},
}

// ToModel converts the entry into an unsaved Lesson row.
func (d LessonData) ToModel() models.Lesson {
	minimum := d.MinimumScore
	return models.Lesson{
		Title:               d.Title,
		Description:         d.Description,
		Objectives:          datatypes.JSONSlice[string](append([]string(nil), d.Objectives...)),
		GameRecommendations: datatypes.JSONSlice[string](append([]string(nil), d.GameRecommendations...)),
		Difficulty:          d.Difficulty,
		MinimumScore:        &minimum,
		MeasurementKind:     d.MeasurementKind,
	}
}

// Lessons returns the whole curriculum as unsaved rows.
func Lessons() []models.Lesson {
	out := make([]models.Lesson, len(DefaultLessons))
	for i, d := range DefaultLessons {
		out[i] = d.ToModel()
	}
	return out
}
