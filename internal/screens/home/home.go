package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/eyeris-app/eyeris/internal/router"
	"github.com/eyeris-app/eyeris/internal/screen"
	"github.com/eyeris-app/eyeris/internal/screens/results"
	testscreen "github.com/eyeris-app/eyeris/internal/screens/test"
	"github.com/eyeris-app/eyeris/internal/vision"
)

// menu item indexes beyond the test kinds.
const (
	itemResults = iota
	itemExit
)

// statsLoadedMsg carries the most recent run for the dashboard footer.
type statsLoadedMsg struct {
	last *history.Entry
}

// HomeScreen is the test-selection dashboard.
type HomeScreen struct {
	store    history.Store
	kinds    []vision.Kind
	labels   []string
	selected int
	last     *history.Entry
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the dashboard. The menu lists every test kind, then the
// results viewer and exit.
func New(store history.Store) *HomeScreen {
	kinds := vision.AllKinds()
	labels := make([]string, 0, len(kinds)+2)
	for _, k := range kinds {
		labels = append(labels, strings.ToUpper(k.Label()))
	}
	labels = append(labels, "RESULTS", "EXIT")

	return &HomeScreen{
		store:  store,
		kinds:  kinds,
		labels: labels,
	}
}

// Init loads the most recent run. It re-runs whenever the dashboard is
// revealed by a pop, so the line stays current after a test.
func (h *HomeScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := h.store.Entries()
		if err != nil || len(entries) == 0 {
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{last: &entries[0]}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if loaded, ok := msg.(statsLoadedMsg); ok {
		h.last = loaded.last
		return h, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if h.selected > 0 {
			h.selected--
		}
	case "down", "j":
		if h.selected < len(h.labels)-1 {
			h.selected++
		}
	case "enter":
		return h, h.activate()
	}
	return h, nil
}

func (h *HomeScreen) activate() tea.Cmd {
	if h.selected < len(h.kinds) {
		kind := h.kinds[h.selected]
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: testscreen.New(kind, h.store)}
		}
	}
	switch h.selected - len(h.kinds) {
	case itemResults:
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: results.New(h.store)}
		}
	case itemExit:
		return tea.Quit
	}
	return nil
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 26 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderTagline(cw))
	}
	sections = append(sections, renderMenu(h.labels, h.selected, cw))
	sections = append(sections, renderBlurb(h.blurb(), cw))
	if line := h.lastRunLine(); line != "" {
		sections = append(sections, renderLastRun(line, cw))
	}

	content := strings.Join(sections, "\n\n")
	return renderCabinetFrame(content, width, height)
}

// blurb returns the one-line description of the highlighted item.
func (h *HomeScreen) blurb() string {
	if h.selected < len(h.kinds) {
		return kindBlurbs[h.kinds[h.selected]]
	}
	switch h.selected - len(h.kinds) {
	case itemResults:
		return "Your past runs and total points"
	case itemExit:
		return "See you next checkup"
	}
	return ""
}

// lastRunLine summarizes the most recent recorded run, or "" before the
// first one.
func (h *HomeScreen) lastRunLine() string {
	if h.last == nil {
		return ""
	}
	e := h.last
	result := fmt.Sprintf("%d/%d", e.Score, e.TotalQuestions)
	if e.DominantEye != "" {
		result = e.DominantEye + " eye"
	}
	return fmt.Sprintf("Last: %s  %s  +%d pts", e.Kind.Label(), result, e.Points)
}

var kindBlurbs = map[vision.Kind]string{
	vision.KindColor:     "Spot the tile that doesn't match",
	vision.KindNumber:    "Find the number hidden in the dots",
	vision.KindPressure:  "Self-report how patterns feel to look at",
	vision.KindTumbling:  "Which way does the shrinking E point?",
	vision.KindContrast:  "Read stripe direction as contrast fades",
	vision.KindAmsler:    "Check your central vision on the grid",
	vision.KindReaction:  "Press the instant the panel turns green",
	vision.KindBlink:     "Count your natural blinks for a minute",
	vision.KindLight:     "How dim can a letter get before it vanishes?",
	vision.KindFocus:     "Read letters at near and far sizes",
	vision.KindDominance: "Find out which eye leads",
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}
