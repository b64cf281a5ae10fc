package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/dfawole/m4tplay/color"
	"github.com/dfawole/m4tplay/icon"
	"github.com/dfawole/m4tplay/key"
	"github.com/dfawole/m4tplay/quiz"
	"github.com/dfawole/m4tplay/style"
	"github.com/dfawole/m4tplay/util"
)

var (
	paddingStyle  = lipgloss.NewStyle().Padding(1, 2)
	overlayStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(style.ActiveBorderColor).Padding(1, 2)
	selectedStyle = style.Colored(color.New("230"), color.New("62")).Padding(0, 1)
)

func (b *lessonBubble) View() string {
	if b.quitting {
		return ""
	}

	if b.engine.Quiz().Phase() != quiz.PhaseIdle {
		return b.viewOverlay()
	}

	return b.viewWatching()
}

func (b *lessonBubble) viewWatching() string {
	session := b.engine.Playback()

	lines := []string{
		style.Title("Now Watching"),
		"",
		b.statusLine(),
		"",
		b.progressC.ViewAs(lo.Ternary(session.Duration > 0, session.CurrentTime/session.Duration, 0)),
		style.Faint(fmt.Sprintf("%s / %s", util.FormatTimestamp(session.CurrentTime), util.FormatTimestamp(session.Duration))),
	}

	if chapter, ok := b.engine.CurrentChapter(); ok {
		lines = append(lines, "", style.Fg(color.Purple)(chapter.Title))
	}

	if bookmarks := b.engine.Bookmarks(); len(bookmarks) > 0 {
		lines = append(lines, "", style.Faint(util.Quantify(len(bookmarks), "bookmark", "bookmarks")))
	}

	if session.Err != nil {
		lines = append(lines, "", icon.Get(icon.Fail)+" "+style.Fg(style.ErrorColor)(session.Err.Error()))
	}

	if score, ok := b.finalScore.Get(); ok {
		lines = append(lines, "", fmt.Sprintf("%s Quiz complete: %d / %d points", icon.Get(icon.Trophy), score[0], score[1]))
	}

	if b.toast != "" {
		lines = append(lines, "", style.Faint(b.toast))
	}

	if b.dispatcher.Locked() {
		lines = append(lines, "", style.Fg(style.WarningColor)("This lesson requires a subscription."))
	}

	return b.renderLines(lines)
}

func (b *lessonBubble) statusLine() string {
	session := b.engine.Playback()

	var parts []string

	if session.Ended {
		parts = append(parts, icon.Get(icon.Success)+" ended")
	} else if session.Playing {
		parts = append(parts, icon.Get(icon.Play)+" playing")
	} else {
		parts = append(parts, fmt.Sprintf("%s paused (%s)", icon.Get(icon.Pause), session.PauseReason))
	}

	parts = append(parts, fmt.Sprintf("vol %.0f%%", session.Volume*100))

	if session.Muted {
		parts = append(parts, "muted")
	}
	if session.Rate != 1 {
		parts = append(parts, fmt.Sprintf("%.2fx", session.Rate))
	}
	if session.CaptionsEnabled {
		parts = append(parts, "cc:"+session.SelectedLanguage)
	}

	return strings.Join(parts, style.Faint(" · "))
}

func (b *lessonBubble) viewOverlay() string {
	question, active := b.engine.Quiz().Active()
	if !active {
		return b.viewWatching()
	}

	width := util.Clamp(b.width-8, 20, 80)

	lines := []string{
		style.Title("Question"),
		"",
		wrap.String(question.Text, width),
		"",
	}

	attempt, _ := b.engine.Quiz().Attempt()

	for i, option := range question.Options {
		label := fmt.Sprintf("%d. %s", i+1, option.Text)

		switch {
		case attempt.Resolved && option.IsCorrect:
			label = icon.Get(icon.Success) + " " + style.Fg(style.SuccessColor)(label)
		case attempt.Resolved && attempt.Selected.OrElse("") == option.ID:
			label = icon.Get(icon.Fail) + " " + style.Fg(style.ErrorColor)(label)
		case !attempt.Resolved && attempt.Selected.OrElse("") == option.ID:
			label = selectedStyle.Render(label)
		}

		lines = append(lines, wrap.String(label, width))
	}

	lines = append(lines, "")

	if attempt.Resolved {
		if attempt.WasCorrect {
			lines = append(lines, style.Fg(style.SuccessColor)(fmt.Sprintf("Correct! +%d points", question.Points)))
		} else {
			lines = append(lines, style.Fg(style.ErrorColor)("Incorrect."))
		}
		if question.Explanation != "" {
			lines = append(lines, "", wrap.String(style.Faint(question.Explanation), width))
		}
		lines = append(lines, "", style.Faint("enter to continue"))
	} else {
		lines = append(lines, style.Faint("1-9 to choose, enter to submit"))
	}

	return paddingStyle.Render(overlayStyle.Render(strings.Join(lines, "\n")))
}

func (b *lessonBubble) renderLines(lines []string) string {
	body := strings.Join(lines, "\n")

	if b.height > len(lines) {
		body += strings.Repeat("\n", b.height-len(lines)-2)
	}
	if viper.GetBool(key.TUIShowHelp) {
		body += b.helpC.View(b.dispatcher)
	}

	return paddingStyle.Render(body)
}
