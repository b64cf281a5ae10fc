// Package lesson defines the externally authored lesson manifest: the media
// source plus the chapters, caption tracks and quiz questions scheduled
// against it. Manifests are validated at the configuration boundary so that a
// malformed question can never reach an active playback session.
package lesson

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dfawole/m4tplay/filesystem"
	"github.com/dfawole/m4tplay/internal/cache"
	"github.com/dfawole/m4tplay/network"
	"github.com/dfawole/m4tplay/quiz"
	"github.com/dfawole/m4tplay/timeline"
)

// Lesson is a single unit of course content.
type Lesson struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Source is the media URI handed to the playback surface; opaque to the engine.
	Source string `json:"source"`

	RequiresSubscription bool `json:"requires_subscription"`

	Chapters  []timeline.Chapter      `json:"chapters"`
	Tracks    []timeline.CaptionTrack `json:"tracks"`
	Questions []quiz.Question         `json:"questions"`
}

// Load reads and validates a lesson manifest. The path may be a local JSON
// file or an http(s) URL; remote manifests are cached on disk with a TTL.
func Load(path string) (*Lesson, error) {
	var (
		l   Lesson
		err error
	)

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		err = loadRemote(path, &l)
	} else {
		err = loadLocal(path, &l)
	}
	if err != nil {
		return nil, err
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("lesson %s: %w", path, err)
	}

	return &l, nil
}

func loadLocal(path string, l *Lesson) error {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return fmt.Errorf("read lesson manifest: %w", err)
	}

	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("parse lesson manifest: %w", err)
	}

	return nil
}

func loadRemote(url string, l *Lesson) error {
	key := cache.GenerateKey(url)
	if cache.Read(key, l) {
		return nil
	}

	resp, err := network.Client.Get(url)
	if err != nil {
		return fmt.Errorf("fetch lesson manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch lesson manifest: %s returned %s", url, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(l); err != nil {
		return fmt.Errorf("parse lesson manifest: %w", err)
	}

	_ = cache.Write(key, l)
	return nil
}

// Validate rejects structurally unsound manifests before any playback starts.
func (l *Lesson) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("empty lesson id")
	}
	if l.Source == "" {
		return fmt.Errorf("empty media source")
	}

	for _, chapter := range l.Chapters {
		if chapter.Time < 0 {
			return fmt.Errorf("chapter %q: negative time %v", chapter.Title, chapter.Time)
		}
	}

	for _, track := range l.Tracks {
		if track.LanguageCode == "" {
			return fmt.Errorf("caption track %q: empty language code", track.Label)
		}
	}

	if err := quiz.ValidateQuestions(l.Questions); err != nil {
		return fmt.Errorf("questions: %w", err)
	}

	return nil
}

// TotalPoints sums the achievable quiz points of the lesson.
func (l *Lesson) TotalPoints() int {
	return quiz.TotalPoints(l.Questions)
}
