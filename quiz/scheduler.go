package quiz

import (
	"math"

	"github.com/samber/lo"
)

// TriggerWindow is the tolerance in seconds used to match the current playback
// position against a question's trigger time. It matches the smallest
// practical clock granularity of the playback surfaces we drive.
const TriggerWindow = 0.5

// Scheduler matches the advancing playback clock against the schedule of
// unanswered questions. It is stateless beyond the shared AnsweredSet: the
// trigger rule is evaluated fresh on every tick, so seeking backward into an
// unanswered question's window triggers it, while seeking forward past the
// window skips it for good. The engine has no memory of "already passed",
// only of "already answered".
type Scheduler struct {
	questions []Question
	answered  *AnsweredSet
}

// NewScheduler creates a scheduler over the given question schedule.
// The answered set is shared with the session state machine.
func NewScheduler(questions []Question, answered *AnsweredSet) *Scheduler {
	return &Scheduler{
		questions: questions,
		answered:  answered,
	}
}

// Evaluate returns the question due at the given playback position, if any.
// A question is due when it is unanswered and the position lies strictly
// within TriggerWindow of its trigger time. When several are due at once the
// earliest trigger time wins, ties broken by ascending id. The caller owns the
// single-flight guard: Evaluate must not be consulted while a question is
// already active.
func (s *Scheduler) Evaluate(currentTime float64) (Question, bool) {
	due := lo.Filter(s.questions, func(q Question, _ int) bool {
		return !s.answered.Has(q.ID) && math.Abs(currentTime-q.TriggerTime) < TriggerWindow
	})

	if len(due) == 0 {
		return Question{}, false
	}

	pick := lo.MinBy(due, func(a, b Question) bool {
		if a.TriggerTime != b.TriggerTime {
			return a.TriggerTime < b.TriggerTime
		}
		return a.ID < b.ID
	})

	return pick, true
}
