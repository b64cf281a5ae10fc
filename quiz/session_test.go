package quiz

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeGate records pause/resume coordination calls.
type fakeGate struct {
	paused  int
	resumed int
}

func (g *fakeGate) PauseForQuiz()    { g.paused++ }
func (g *fakeGate) ResumeAfterQuiz() { g.resumed++ }

// manualClock yields a controllable time source.
type manualClock struct {
	t time.Time
}

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSessionLifecycle(t *testing.T) {
	Convey("Given a session over one question", t, func() {
		questions := schedule()[:1]
		answered := NewAnsweredSet()
		gate := &fakeGate{}
		clock := &manualClock{t: time.Unix(1000, 0)}

		var answeredEvents []string
		var lastCorrect bool
		var lastTaken time.Duration
		var completions [][2]int

		session := NewSession(questions, answered, gate,
			WithClock(clock.Now),
			WithEvents(Events{
				QuestionAnswered: func(id string, correct bool, taken time.Duration) {
					answeredEvents = append(answeredEvents, id)
					lastCorrect = correct
					lastTaken = taken
				},
				SessionComplete: func(score, total int) {
					completions = append(completions, [2]int{score, total})
				},
			}),
		)

		Convey("Activation pauses playback and starts the attempt", func() {
			So(session.Activate(questions[0]), ShouldBeTrue)
			So(session.Phase(), ShouldEqual, PhaseTriggered)
			So(gate.paused, ShouldEqual, 1)

			attempt, ok := session.Attempt()
			So(ok, ShouldBeTrue)
			So(attempt.QuestionID, ShouldEqual, "q1")
			So(attempt.Selected.IsAbsent(), ShouldBeTrue)

			Convey("Activation while a question is active is a no-op", func() {
				So(session.Activate(questions[0]), ShouldBeFalse)
				So(gate.paused, ShouldEqual, 1)
			})

			Convey("Submit without a selection is rejected", func() {
				So(session.Submit(), ShouldBeFalse)
				So(session.Phase(), ShouldEqual, PhaseTriggered)
			})

			Convey("Selection may be changed before submission", func() {
				So(session.SelectOption("b"), ShouldBeTrue)
				So(session.SelectOption("a"), ShouldBeTrue)
				So(session.SelectOption("nope"), ShouldBeFalse)
			})

			Convey("Submitting the correct option scores and emits the event", func() {
				session.SelectOption("a")
				clock.Advance(3200 * time.Millisecond)

				So(session.Submit(), ShouldBeTrue)
				So(session.Phase(), ShouldEqual, PhaseResolved)
				So(session.Score(), ShouldEqual, 5)
				So(answeredEvents, ShouldResemble, []string{"q1"})
				So(lastCorrect, ShouldBeTrue)
				So(lastTaken, ShouldEqual, 3200*time.Millisecond)

				Convey("Continue finalizes: answered set, resume, completion", func() {
					So(session.Continue(), ShouldBeTrue)
					So(session.Phase(), ShouldEqual, PhaseIdle)
					So(answered.Has("q1"), ShouldBeTrue)
					So(gate.resumed, ShouldEqual, 1)
					So(completions, ShouldResemble, [][2]int{{5, 5}})

					Convey("Completion cannot double-fire", func() {
						So(session.Continue(), ShouldBeFalse)
						So(len(completions), ShouldEqual, 1)
					})

					Convey("An answered question can never reactivate", func() {
						So(session.Activate(questions[0]), ShouldBeFalse)
					})
				})
			})

			Convey("Submitting a wrong option leaves the score unchanged", func() {
				session.SelectOption("b")
				So(session.Submit(), ShouldBeTrue)
				So(session.Score(), ShouldEqual, 0)
				So(lastCorrect, ShouldBeFalse)

				session.Continue()
				So(completions, ShouldResemble, [][2]int{{0, 5}})
			})
		})

		Convey("Continue from idle is a no-op", func() {
			So(session.Continue(), ShouldBeFalse)
		})

		Convey("SelectOption from idle is a no-op", func() {
			So(session.SelectOption("a"), ShouldBeFalse)
		})
	})
}

func TestSessionAutoStopDisabled(t *testing.T) {
	Convey("Given a session with auto-stop disabled", t, func() {
		questions := schedule()[:1]
		gate := &fakeGate{}
		session := NewSession(questions, NewAnsweredSet(), gate, WithAutoStop(false))

		Convey("Activation and continue leave the gate untouched", func() {
			So(session.Activate(questions[0]), ShouldBeTrue)
			session.SelectOption("a")
			session.Submit()
			session.Continue()

			So(gate.paused, ShouldEqual, 0)
			So(gate.resumed, ShouldEqual, 0)
		})
	})
}

func TestSessionTimeTakenNeverNegative(t *testing.T) {
	Convey("Given a clock that jumps backward mid-attempt", t, func() {
		questions := schedule()[:1]
		clock := &manualClock{t: time.Unix(1000, 0)}

		var taken time.Duration
		session := NewSession(questions, NewAnsweredSet(), nil,
			WithClock(clock.Now),
			WithEvents(Events{
				QuestionAnswered: func(_ string, _ bool, d time.Duration) { taken = d },
			}),
		)

		session.Activate(questions[0])
		clock.Advance(-10 * time.Second)
		session.SelectOption("a")

		Convey("The reported time taken is clamped to zero", func() {
			So(session.Submit(), ShouldBeTrue)
			So(taken, ShouldEqual, time.Duration(0))
		})
	})
}
