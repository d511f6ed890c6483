package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/eyeris-app/eyeris/internal/router"
	"github.com/eyeris-app/eyeris/internal/screen"
	"github.com/eyeris-app/eyeris/internal/ui/layout"
	"github.com/eyeris-app/eyeris/internal/ui/theme"
	"github.com/eyeris-app/eyeris/internal/vision"
)

// SummaryScreen shows the result of a just-finished test. The test screen
// replaces itself with this screen, so one pop returns to the dashboard.
type SummaryScreen struct {
	entry     history.Entry
	recordErr error
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary for a recorded entry. recordErr is non-nil when
// saving failed; the result is still displayed.
func New(entry history.Entry, recordErr error) *SummaryScreen {
	return &SummaryScreen{entry: entry, recordErr: recordErr}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to tests"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "space":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	e := s.entry
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(e.Kind.Label() + " complete!"))
	b.WriteString("\n\n")

	if e.DominantEye != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render("Dominant eye: " + strings.ToUpper(e.DominantEye)))
		b.WriteString("\n\n")
	} else {
		scoreLine := fmt.Sprintf("Score: %d / %d", e.Score, e.TotalQuestions)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Bold(true).
			Render(scoreLine))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Render(fmt.Sprintf("◆ +%d points", e.Points)))
	b.WriteString("\n\n")

	mins := e.DurationSeconds / 60
	secs := e.DurationSeconds % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n")

	if s.recordErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Warning).
			Render("Could not save this result: " + s.recordErr.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render(disclaimer(e.Kind)))

	return "\n\n" + b.String()
}

// disclaimer returns the per-kind footer note. None of the tests are a
// medical diagnosis; the worrying ones say so explicitly.
func disclaimer(kind vision.Kind) string {
	switch kind {
	case vision.KindAmsler, vision.KindPressure:
		return "This is a screening exercise, not a diagnosis. See an eye specialist about any concern."
	default:
		return "For fun and awareness only. Regular checkups beat any screen test."
	}
}
