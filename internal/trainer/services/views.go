package services

import "fmt"

// Cache keys of the read views that writes make stale.
const (
	ViewLessonList      = "lessons"
	ViewProgressSummary = "progress"
)

// LessonViewKey is the cache key of one lesson's detail view.
func LessonViewKey(lessonID uint) string {
	return fmt.Sprintf("lessons:%d", lessonID)
}

func staleAfterWrite(lessonID uint) []string {
	return []string{ViewLessonList, LessonViewKey(lessonID), ViewProgressSummary}
}
