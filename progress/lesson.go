package progress

import (
	"fmt"

	"github.com/dfawole/m4tplay/lesson"
	"github.com/dfawole/m4tplay/timeline"
)

// SavedLesson represents a single lesson entry preserved in the user's progress registry.
type SavedLesson struct {
	LessonID          string              `json:"lesson_id"`
	Title             string              `json:"title"`
	Source            string              `json:"source"`
	WatchedPercentage float64             `json:"watched_percentage"`
	Score             int                 `json:"score"`
	TotalPoints       int                 `json:"total_points"`
	Bookmarks         []timeline.Bookmark `json:"bookmarks"`
}

func (s *SavedLesson) String() string {
	return fmt.Sprintf("%s : %.0f%% watched, %d/%d points", s.Title, s.WatchedPercentage, s.Score, s.TotalPoints)
}

func newSavedLesson(l *lesson.Lesson) *SavedLesson {
	return &SavedLesson{
		LessonID:    l.ID,
		Title:       l.Title,
		Source:      l.Source,
		TotalPoints: l.TotalPoints(),
	}
}
