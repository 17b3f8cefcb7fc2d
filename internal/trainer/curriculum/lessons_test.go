package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLessons_Shape(t *testing.T) {
	require.Len(t, DefaultLessons, 5)

	titles := map[string]bool{}
	for i, l := range DefaultLessons {
		assert.Equal(t, i+1, l.Difficulty, "lessons are ordered by difficulty")
		assert.Len(t, l.Objectives, 4)
		assert.Len(t, l.GameRecommendations, 4)
		assert.NotEmpty(t, l.Description)
		assert.False(t, titles[l.Title], "duplicate title %q", l.Title)
		titles[l.Title] = true
	}

	assert.Equal(t, "Crosshair Placement Fundamentals", DefaultLessons[0].Title)
	assert.Equal(t, 80.0, DefaultLessons[0].MinimumScore)
	assert.Equal(t, 60.0, DefaultLessons[4].MinimumScore)
}

func TestLessons_CopiesSlices(t *testing.T) {
	rows := Lessons()
	require.Len(t, rows, 5)

	rows[0].Objectives[0] = "changed"
	assert.Equal(t, "Keep crosshair at head level at all times", DefaultLessons[0].Objectives[0])
	require.NotNil(t, rows[0].MinimumScore)
	assert.Equal(t, 80.0, *rows[0].MinimumScore)
}
