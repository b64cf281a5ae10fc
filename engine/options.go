package engine

import (
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/dfawole/m4tplay/auth"
	"github.com/dfawole/m4tplay/key"
	"github.com/dfawole/m4tplay/lesson"
	"github.com/dfawole/m4tplay/quiz"
	"github.com/dfawole/m4tplay/timeline"
)

// Options describes one lesson run. Lesson-authored fields come from the
// manifest; behavioral fields default from the configuration.
type Options struct {
	Source string
	Title  string

	Chapters  []timeline.Chapter
	Tracks    []timeline.CaptionTrack
	Questions []quiz.Question

	RequiresSubscription bool
	IsSubscribed         bool

	AutoStopOnQuiz   bool
	SelectedLanguage string
	SeekStep         float64
	VolumeStep       float64
}

// OptionsFromLesson builds run options for a manifest, filling the behavioral
// fields from the configuration.
func OptionsFromLesson(l *lesson.Lesson) Options {
	return Options{
		Source:               l.Source,
		Title:                lo.Ternary(l.Title != "", l.Title, l.ID),
		Chapters:             l.Chapters,
		Tracks:               l.Tracks,
		Questions:            l.Questions,
		RequiresSubscription: l.RequiresSubscription || viper.GetBool(key.AccessRequiresSubscription),
		IsSubscribed:         viper.GetBool(key.AccessIsSubscribed) || auth.HasToken(),
		AutoStopOnQuiz:       viper.GetBool(key.PlayerAutoStopOnQuiz),
		SelectedLanguage:     viper.GetString(key.CaptionsDefaultLanguage),
		SeekStep:             viper.GetFloat64(key.PlayerSeekStep),
		VolumeStep:           viper.GetFloat64(key.PlayerVolumeStep),
	}
}

// Callbacks is the engine's outward notification surface. Each signal is
// distinct: a per-question answer, whole-quiz completion, the media's natural
// end and bookmark mutations never share a channel.
type Callbacks struct {
	OnQuestionAnswered func(questionID string, wasCorrect bool, timeTaken time.Duration)
	OnSessionComplete  func(score, totalPossiblePoints int)
	OnPlaybackEnded    func()
	OnAddBookmark      func(bookmark timeline.Bookmark)
	OnRemoveBookmark   func(id string)
}
