package results

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/eyeris-app/eyeris/internal/router"
	"github.com/eyeris-app/eyeris/internal/screen"
	"github.com/eyeris-app/eyeris/internal/ui/layout"
	"github.com/eyeris-app/eyeris/internal/ui/theme"
)

type resultsLoadedMsg struct {
	Entries []history.Entry
	Points  int
	Err     error
}

// ResultsScreen lists past test runs, newest first.
type ResultsScreen struct {
	store    history.Store
	entries  []history.Entry
	points   int
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a new ResultsScreen.
func New(store history.Store) *ResultsScreen {
	return &ResultsScreen{
		store:    store,
		expanded: make(map[int]bool),
	}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.store.Entries()
		if err != nil {
			return resultsLoadedMsg{Err: err}
		}
		points, err := s.store.TotalPoints()
		if err != nil {
			return resultsLoadedMsg{Err: err}
		}
		return resultsLoadedMsg{Entries: entries, Points: points}
	}
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
			s.points = msg.Points
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading results...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No tests taken yet. Pick one from the dashboard!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("◆ %d points across %d tests", s.points, len(s.entries)))))
	b.WriteString("\n\n")

	// Cap the visible window so long histories don't overflow the frame.
	visible := height - 5
	if visible < 1 {
		visible = 1
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}

	for i := start; i < len(s.entries) && i < start+visible; i++ {
		entry := s.entries[i]

		dateStr := entry.Date
		if t, err := time.Parse(time.RFC3339, entry.Date); err == nil {
			dateStr = t.Format("Jan 02, 2006")
		}

		result := fmt.Sprintf("%d/%d", entry.Score, entry.TotalQuestions)
		if entry.DominantEye != "" {
			result = entry.DominantEye + " eye"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-18s %-10s +%d pts",
			prefix, dateStr, entry.Kind.Label(), result, entry.Points)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			mins := entry.DurationSeconds / 60
			secs := entry.DurationSeconds % 60
			detail := fmt.Sprintf("    took %d:%02d", mins, secs)
			if t, err := time.Parse(time.RFC3339, entry.Date); err == nil {
				detail += "  at " + t.Format("15:04")
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
