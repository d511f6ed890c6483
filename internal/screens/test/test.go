package test

import (
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/eyeris-app/eyeris/internal/router"
	"github.com/eyeris-app/eyeris/internal/screen"
	"github.com/eyeris-app/eyeris/internal/screens/summary"
	sess "github.com/eyeris-app/eyeris/internal/session"
	"github.com/eyeris-app/eyeris/internal/ui/components"
	"github.com/eyeris-app/eyeris/internal/ui/layout"
	"github.com/eyeris-app/eyeris/internal/vision"
)

// TestScreen runs one vision test from instructions to summary. All test
// kinds share this screen; the session controller carries the per-kind
// state machine and the view switches on the kind for stimulus rendering.
type TestScreen struct {
	store history.Store
	cfg   vision.Config
	ctrl  *sess.Controller

	input   components.TextInput
	gridSel int
	optSel  int

	quitConfirm bool
	recorded    bool
	scheduled   int // token of the last timer handed to tea.Tick
	errMsg      string
}

var _ screen.Screen = (*TestScreen)(nil)
var _ screen.KeyHintProvider = (*TestScreen)(nil)
var _ screen.EscHandler = (*TestScreen)(nil)

// New creates a test screen for the given kind with freshly generated
// questions.
func New(kind vision.Kind, store history.Store) *TestScreen {
	s := &TestScreen{store: store}

	cfg, err := vision.ConfigFor(kind)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.cfg = cfg

	gen := vision.NewRandom()
	questions, err := gen.Generate(kind, 0)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}

	ctrl, err := sess.New(cfg, questions, gen)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.ctrl = ctrl
	s.input = components.NewTextInput("Type the letter...", false, 1)
	return s
}

func (s *TestScreen) Init() tea.Cmd {
	if s.ctrl == nil {
		return nil
	}
	var cmds []tea.Cmd
	if !s.cfg.HasInstructions {
		s.ctrl.Start(time.Now())
	}
	if s.cfg.Mode == vision.ModeText {
		cmds = append(cmds, s.input.Init())
	}
	if cmd := s.scheduleTimer(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (s *TestScreen) Title() string {
	return s.cfg.Kind.Label()
}

func (s *TestScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave test"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.ctrl == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	switch s.ctrl.Phase() {
	case sess.PhaseInstructions:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
		}
	case sess.PhaseActive:
		return s.activeKeyHints()
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Leave"}}
}

func (s *TestScreen) activeKeyHints() []layout.KeyHint {
	switch s.cfg.Mode {
	case vision.ModeReaction:
		return []layout.KeyHint{{Key: "Space", Description: "React"}, {Key: "Esc", Description: "Leave"}}
	case vision.ModeTimedCount:
		return []layout.KeyHint{{Key: "Space", Description: "Count a blink"}, {Key: "Esc", Description: "Leave"}}
	case vision.ModeText:
		return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Leave"}}
	case vision.ModeSteps:
		return []layout.KeyHint{
			{Key: "1/2/3", Description: "Left / Right / Neither"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	switch s.cfg.Kind {
	case vision.KindColor:
		return []layout.KeyHint{
			{Key: "↑↓←→", Description: "Move"},
			{Key: "Enter", Description: "Pick cell"},
			{Key: "Esc", Description: "Leave"},
		}
	case vision.KindTumbling:
		return []layout.KeyHint{{Key: "↑↓←→", Description: "E direction"}, {Key: "Esc", Description: "Leave"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Leave"},
	}
}

// HandleEsc opens the quit confirmation instead of popping mid-test.
func (s *TestScreen) HandleEsc() tea.Cmd {
	if s.ctrl == nil || s.errMsg != "" {
		return popCmd()
	}
	switch s.ctrl.Phase() {
	case sess.PhaseInstructions:
		s.ctrl.Teardown()
		return popCmd()
	case sess.PhaseFinalizing, sess.PhaseComplete:
		return nil
	}
	if s.quitConfirm {
		s.quitConfirm = false
		return nil
	}
	s.quitConfirm = true
	return nil
}

func (s *TestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerFiredMsg:
		if s.ctrl != nil {
			s.ctrl.TimerFired(msg.token, time.Now())
		}
		return s, s.afterEvent()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.ctrl != nil && s.cfg.Mode == vision.ModeText && s.ctrl.Phase() == sess.PhaseActive {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *TestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, popCmd()
	}
	if s.ctrl == nil {
		return s, popCmd()
	}

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.ctrl.Teardown()
			return s, popCmd()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.ctrl.Phase() {
	case sess.PhaseInstructions:
		if key == "enter" || key == "space" {
			s.ctrl.Start(time.Now())
			return s, s.afterEvent()
		}
		return s, nil

	case sess.PhaseActive:
		return s.handleActiveKey(msg)
	}
	return s, nil
}

func (s *TestScreen) handleActiveKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	now := time.Now()
	key := msg.String()

	switch s.cfg.Mode {
	case vision.ModeReaction, vision.ModeTimedCount:
		// Any non-navigation key is the reaction click or a counted blink.
		s.ctrl.Submit("", now)
		return s, s.afterEvent()

	case vision.ModeSteps:
		switch key {
		case "1", "l":
			s.ctrl.Submit(vision.EyeLeft, now)
		case "2", "r":
			s.ctrl.Submit(vision.EyeRight, now)
		case "3", "n":
			s.ctrl.Submit(vision.EyeNeither, now)
		default:
			return s, nil
		}
		return s, s.afterEvent()

	case vision.ModeText:
		if key == "enter" {
			answer := s.input.Value()
			if answer == "" {
				return s, nil
			}
			s.ctrl.Submit(answer, now)
			return s, s.afterEvent()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if s.cfg.Kind == vision.KindColor {
		return s.handleColorKey(key, now)
	}
	if s.cfg.Kind == vision.KindTumbling {
		switch key {
		case "up":
			s.ctrl.Submit(vision.AnswerUp, now)
		case "down":
			s.ctrl.Submit(vision.AnswerDown, now)
		case "left":
			s.ctrl.Submit(vision.AnswerLeft, now)
		case "right":
			s.ctrl.Submit(vision.AnswerRight, now)
		default:
			return s, nil
		}
		return s, s.afterEvent()
	}
	return s.handleOptionKey(key, now)
}

func (s *TestScreen) handleColorKey(key string, now time.Time) (screen.Screen, tea.Cmd) {
	q := s.ctrl.Question()
	if q == nil {
		return s, nil
	}
	grid := q.GridSize
	switch key {
	case "up", "k":
		if s.gridSel >= grid {
			s.gridSel -= grid
		}
	case "down", "j":
		if s.gridSel+grid < grid*grid {
			s.gridSel += grid
		}
	case "left", "h":
		if s.gridSel%grid > 0 {
			s.gridSel--
		}
	case "right", "l":
		if s.gridSel%grid < grid-1 {
			s.gridSel++
		}
	case "enter", "space":
		s.ctrl.Submit(strconv.Itoa(s.gridSel), now)
		return s, s.afterEvent()
	}
	return s, nil
}

func (s *TestScreen) handleOptionKey(key string, now time.Time) (screen.Screen, tea.Cmd) {
	q := s.ctrl.Question()
	if q == nil {
		return s, nil
	}

	// Shortcut keys for the two-option prompts.
	switch s.cfg.Kind {
	case vision.KindAmsler:
		switch key {
		case "y":
			s.ctrl.Submit(vision.AnswerYes, now)
			return s, s.afterEvent()
		case "n":
			s.ctrl.Submit(vision.AnswerNo, now)
			return s, s.afterEvent()
		}
	case vision.KindLight:
		switch key {
		case "v":
			s.ctrl.Submit(vision.AnswerVisible, now)
			return s, s.afterEvent()
		case "x":
			s.ctrl.Submit(vision.AnswerNotVisible, now)
			return s, s.afterEvent()
		}
	}

	switch key {
	case "up", "k":
		if s.optSel > 0 {
			s.optSel--
		}
	case "down", "j":
		if s.optSel < len(q.Options)-1 {
			s.optSel++
		}
	case "enter", "space":
		if s.optSel < len(q.Options) {
			s.ctrl.Submit(q.Options[s.optSel], now)
			return s, s.afterEvent()
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(q.Options) {
			s.ctrl.Submit(q.Options[n-1], now)
			return s, s.afterEvent()
		}
	}
	return s, nil
}

// afterEvent runs after every controller mutation: resets per-question UI
// state, schedules any newly armed timer, and hands off to the summary once
// the session completes.
func (s *TestScreen) afterEvent() tea.Cmd {
	if s.ctrl.Phase() == sess.PhaseActive && !s.ctrl.AwaitingAdvance() {
		s.clampSelection()
	}

	if res := s.ctrl.TakeResult(); res != nil && !s.recorded {
		s.recorded = true
		entry := history.NewEntry(*res, time.Now())
		err := s.store.Record(entry)
		return tea.Batch(
			func() tea.Msg { return screen.RefreshStatsMsg{} },
			func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: summary.New(entry, err)}
			},
		)
	}

	return s.scheduleTimer()
}

// clampSelection keeps cursors valid when the question changes under them.
func (s *TestScreen) clampSelection() {
	q := s.ctrl.Question()
	if q == nil {
		return
	}
	if s.cfg.Kind == vision.KindColor {
		if s.gridSel >= q.GridSize*q.GridSize {
			s.gridSel = 0
		}
		return
	}
	if s.optSel >= len(q.Options) {
		s.optSel = 0
	}
	if s.cfg.Mode == vision.ModeText && s.input.Value() != "" {
		s.input = components.NewTextInput("Type the letter...", false, 1)
	}
}

// scheduleTimer hands the controller's pending timer to the runtime once.
// A token is scheduled at most one time, so duplicate afterEvent calls
// cannot double-fire.
func (s *TestScreen) scheduleTimer() tea.Cmd {
	req, ok := s.ctrl.PendingTimer()
	if !ok || req.Token == s.scheduled {
		return nil
	}
	s.scheduled = req.Token
	token := req.Token
	return tea.Tick(req.Delay, func(time.Time) tea.Msg {
		return timerFiredMsg{token: token}
	})
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
