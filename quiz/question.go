// Package quiz implements the interactive question engine: the time-indexed
// trigger scheduler, the single-flight attempt state machine, and idempotent
// completion tracking.
package quiz

import (
	"fmt"

	"github.com/samber/lo"
)

// Option is a single selectable answer of a question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is an immutable, externally authored quiz question scheduled
// against the playback timeline.
type Question struct {
	ID          string   `json:"id"`
	TriggerTime float64  `json:"trigger_time"`
	Text        string   `json:"text"`
	Options     []Option `json:"options"`
	Explanation string   `json:"explanation"`
	Points      int      `json:"points"`
}

// Option returns the option with the given id.
func (q Question) Option(id string) (Option, bool) {
	return lo.Find(q.Options, func(o Option) bool { return o.ID == id })
}

// CorrectOption returns the single correct option of the question.
func (q Question) CorrectOption() (Option, bool) {
	return lo.Find(q.Options, func(o Option) bool { return o.IsCorrect })
}

// Validate checks a single question for structural soundness.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("question has empty id")
	}
	if q.TriggerTime < 0 {
		return fmt.Errorf("question %s: negative trigger time %v", q.ID, q.TriggerTime)
	}
	if q.Points < 0 {
		return fmt.Errorf("question %s: negative points %d", q.ID, q.Points)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("question %s: no options", q.ID)
	}

	seen := make(map[string]struct{}, len(q.Options))
	correct := 0
	for _, o := range q.Options {
		if o.ID == "" {
			return fmt.Errorf("question %s: option with empty id", q.ID)
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("question %s: duplicate option id %s", q.ID, o.ID)
		}
		seen[o.ID] = struct{}{}

		if o.IsCorrect {
			correct++
		}
	}

	if correct != 1 {
		return fmt.Errorf("question %s: expected exactly one correct option, got %d", q.ID, correct)
	}

	return nil
}

// ValidateQuestions checks a whole schedule of questions at the configuration
// boundary. A malformed question must never reach the triggered state, so the
// schedule is rejected before any activation is possible.
func ValidateQuestions(questions []Question) error {
	ids := make(map[string]struct{}, len(questions))

	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := ids[q.ID]; dup {
			return fmt.Errorf("duplicate question id %s", q.ID)
		}
		ids[q.ID] = struct{}{}
	}

	return nil
}

// TotalPoints sums the achievable points across a question schedule.
func TotalPoints(questions []Question) int {
	return lo.SumBy(questions, func(q Question) int { return q.Points })
}
