// Package progress provides the implementation for tracking and persisting
// per-lesson viewing and quiz results.
package progress

import (
	"github.com/metafates/gache"

	"github.com/dfawole/m4tplay/filesystem"
	"github.com/dfawole/m4tplay/lesson"
	"github.com/dfawole/m4tplay/timeline"
	"github.com/dfawole/m4tplay/where"
)

// cacher provides an abstracted, disk-backed registry for lesson progress records.
var cacher = gache.New[map[string]*SavedLesson](
	&gache.Options{
		Path:       where.Progress(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of lesson progress records from the persistent store.
func Get() (map[string]*SavedLesson, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedLesson), nil
	}
	return cached, nil
}

// Save persists the viewing progress, score and bookmarks of a lesson.
func Save(l *lesson.Lesson, percentage float64, score int, bookmarks []timeline.Bookmark) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedLesson(l)

	// The maximum observed percentage is retained so re-watching the opening
	// of a finished lesson never regresses its record.
	if existing, exists := saved[record.LessonID]; exists {
		if percentage < existing.WatchedPercentage {
			percentage = existing.WatchedPercentage
		}
		if score < existing.Score {
			score = existing.Score
		}
	}
	record.WatchedPercentage = percentage
	record.Score = score
	record.Bookmarks = bookmarks

	saved[record.LessonID] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a lesson's progress record.
func Remove(record *SavedLesson) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.LessonID)
	return cacher.Set(saved)
}
