package quiz

import (
	"time"

	"github.com/dfawole/m4tplay/log"
	"github.com/samber/mo"
)

// Phase identifies the lifecycle stage of the question state machine.
type Phase int

const (
	// PhaseIdle means no question is active.
	PhaseIdle Phase = iota
	// PhaseTriggered means a question is displayed and awaiting an answer.
	PhaseTriggered
	// PhaseResolved means the active question was answered and its outcome shown.
	PhaseResolved
)

// Attempt is the transient state of the single active question.
// It is created at activation and destroyed at Continue.
type Attempt struct {
	QuestionID string
	Selected   mo.Option[string]
	StartedAt  time.Time
	Resolved   bool
	WasCorrect bool
}

// Gate is the playback coordination surface the session drives around an
// active question. It is honored only when auto-stop is enabled.
type Gate interface {
	PauseForQuiz()
	ResumeAfterQuiz()
}

// Events is the callback surface of the session. Per-question and whole-session
// completion are deliberately distinct signals with distinct signatures.
type Events struct {
	QuestionAnswered func(questionID string, wasCorrect bool, timeTaken time.Duration)
	SessionComplete  func(score, totalPossiblePoints int)
}

// Session owns the lifecycle of one active question at a time: activation,
// answer submission, scoring and completion tracking. Illegal transitions are
// rejected as silent no-ops, since a duplicate tick arriving mid-quiz is an
// expected condition rather than an exceptional one.
type Session struct {
	questions   []Question
	byID        map[string]Question
	answered    *AnsweredSet
	totalPoints int

	phase   Phase
	attempt *Attempt
	score   int

	completeFired bool

	autoStop bool
	gate     Gate
	events   Events
	now      func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides the session's time source. Used by tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithAutoStop controls whether the gate is driven around activations.
func WithAutoStop(autoStop bool) SessionOption {
	return func(s *Session) { s.autoStop = autoStop }
}

// WithEvents installs the session callback surface.
func WithEvents(events Events) SessionOption {
	return func(s *Session) { s.events = events }
}

// NewSession creates the question state machine over a validated schedule.
// The answered set is shared with the Scheduler.
func NewSession(questions []Question, answered *AnsweredSet, gate Gate, opts ...SessionOption) *Session {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	s := &Session{
		questions:   questions,
		byID:        byID,
		answered:    answered,
		totalPoints: TotalPoints(questions),
		phase:       PhaseIdle,
		autoStop:    true,
		gate:        gate,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the accumulated score.
func (s *Session) Score() int {
	return s.score
}

// TotalPoints returns the achievable points over the whole schedule.
func (s *Session) TotalPoints() int {
	return s.totalPoints
}

// Answered exposes the shared answered set.
func (s *Session) Answered() *AnsweredSet {
	return s.answered
}

// Active returns the currently displayed question, if any.
func (s *Session) Active() (Question, bool) {
	if s.attempt == nil {
		return Question{}, false
	}
	return s.byID[s.attempt.QuestionID], true
}

// Attempt returns a snapshot of the transient attempt state, if any.
func (s *Session) Attempt() (Attempt, bool) {
	if s.attempt == nil {
		return Attempt{}, false
	}
	return *s.attempt, true
}

// Complete reports whether every scheduled question has been answered.
func (s *Session) Complete() bool {
	return s.answered.Size() == len(s.questions)
}

// Activate begins an attempt for the given question. Legal only from the idle
// phase and only for unanswered questions; anything else is a silent no-op.
func (s *Session) Activate(q Question) bool {
	if s.phase != PhaseIdle {
		return false
	}
	if s.answered.Has(q.ID) {
		return false
	}
	if _, known := s.byID[q.ID]; !known {
		return false
	}

	s.attempt = &Attempt{
		QuestionID: q.ID,
		StartedAt:  s.now(),
	}
	s.phase = PhaseTriggered

	log.Debugf("quiz: activated question %s at trigger %v", q.ID, q.TriggerTime)

	if s.autoStop && s.gate != nil {
		s.gate.PauseForQuiz()
	}

	return true
}

// SelectOption records the current selection. Legal only while triggered and
// before submission; may be called repeatedly to change the selection.
func (s *Session) SelectOption(optionID string) bool {
	if s.phase != PhaseTriggered || s.attempt.Resolved {
		return false
	}

	q := s.byID[s.attempt.QuestionID]
	if _, ok := q.Option(optionID); !ok {
		return false
	}

	s.attempt.Selected = mo.Some(optionID)
	return true
}

// Submit scores the current selection and resolves the attempt, emitting the
// per-question answered event. Legal only with a selection present.
func (s *Session) Submit() bool {
	if s.phase != PhaseTriggered {
		return false
	}

	selected, present := s.attempt.Selected.Get()
	if !present {
		return false
	}

	q := s.byID[s.attempt.QuestionID]
	option, _ := q.Option(selected)

	timeTaken := s.now().Sub(s.attempt.StartedAt)
	if timeTaken < 0 {
		timeTaken = 0
	}

	s.attempt.Resolved = true
	s.attempt.WasCorrect = option.IsCorrect

	if option.IsCorrect {
		s.score += q.Points
	}

	log.Infof("quiz: question %s answered correct=%v in %v", q.ID, option.IsCorrect, timeTaken)

	if s.events.QuestionAnswered != nil {
		s.events.QuestionAnswered(q.ID, option.IsCorrect, timeTaken)
	}

	s.phase = PhaseResolved
	return true
}

// Continue finalizes the resolved attempt: the question id enters the answered
// set, the attempt is destroyed, playback resumes (quiz context only), and the
// whole-session completion signal fires exactly once when coverage is full.
func (s *Session) Continue() bool {
	if s.phase != PhaseResolved {
		return false
	}

	s.answered.Add(s.attempt.QuestionID)
	s.attempt = nil
	s.phase = PhaseIdle

	if s.autoStop && s.gate != nil {
		s.gate.ResumeAfterQuiz()
	}

	// Completion is judged against the authoritative answered set, never a
	// locally unioned copy, and the guard keeps it from double-firing.
	if !s.completeFired && s.Complete() {
		s.completeFired = true
		if s.events.SessionComplete != nil {
			s.events.SessionComplete(s.score, s.totalPoints)
		}
	}

	return true
}
