package test

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/eyeris-app/eyeris/internal/session"
	"github.com/eyeris-app/eyeris/internal/ui/components"
	"github.com/eyeris-app/eyeris/internal/ui/theme"
	"github.com/eyeris-app/eyeris/internal/vision"
)

func (s *TestScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.ctrl == nil {
		return ""
	}
	if s.quitConfirm {
		return renderQuitConfirm(width)
	}

	switch s.ctrl.Phase() {
	case sess.PhaseInstructions:
		return s.renderInstructions(width, height)
	case sess.PhaseCountdown:
		return s.renderCountdown(width, height)
	case sess.PhaseActive:
		return s.renderActive(width, height)
	case sess.PhaseFeedback:
		return s.renderFeedback(width, height)
	case sess.PhaseFinalizing, sess.PhaseComplete:
		return s.renderFinalizing(width, height)
	}
	return ""
}

// instructionsFor holds the pre-roll text for kinds that explain themselves
// before starting. Kinds without an entry jump straight in.
var instructionsFor = map[vision.Kind][]string{
	vision.KindAmsler: {
		"Cover one eye and focus on the dot at the center of the grid.",
		"Keep your gaze on the dot while you answer each question.",
		"Healthy vision sees straight, evenly spaced lines everywhere.",
	},
	vision.KindReaction: {
		"The panel below will turn red. Wait.",
		"The moment it turns green, press any key as fast as you can.",
		"Pressing while the panel is still red restarts that round.",
	},
	vision.KindBlink: {
		"For one minute, press Space every time you blink naturally.",
		"Don't force blinks and don't hold them back.",
		"A short countdown starts the clock.",
	},
	vision.KindLight: {
		"Letters will appear at decreasing brightness.",
		"Say whether you can make the letter out, honestly.",
		"Dim your room lighting for a fair result.",
	},
	vision.KindFocus: {
		"Letters alternate between reading size and distance size.",
		"Type the letter you see and press Enter.",
		"Sit at arm's length from the screen.",
	},
	vision.KindDominance: {
		"This is a guided self-test with no right answers.",
		"Follow each step with your hands and report what you observe.",
		"Your dominant eye is the one the majority of steps point to.",
	},
}

func (s *TestScreen) renderInstructions(width, height int) string {
	lines := instructionsFor[s.cfg.Kind]

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(s.cfg.Kind.Label()))
	b.WriteString("\n\n")
	for _, line := range lines {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("Press Enter to begin"))

	cw := components.ContentWidth(width)
	card := components.PanelCard(b.String(), cw)
	return centerBlock(card, width, height)
}

func (s *TestScreen) renderCountdown(width, height int) string {
	n := s.ctrl.CountdownLeft()
	big := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(bigDigits(strconv.Itoa(n)))
	return centerBlock(big, width, height)
}

func (s *TestScreen) renderActive(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderProgressLine(width))
	b.WriteString("\n\n")

	q := s.ctrl.Question()
	var stimulus string
	switch s.cfg.Kind {
	case vision.KindColor:
		stimulus = s.renderColorGrid(q)
	case vision.KindNumber:
		stimulus = s.renderNumberField(q) + "\n\n" + s.renderOptions(q, "Which number is hidden in the pattern?")
	case vision.KindPressure:
		stimulus = renderPressurePattern(q) + "\n\n" + s.renderOptions(q, "How intense does the pattern feel to look at?")
	case vision.KindTumbling:
		stimulus = renderTumblingE(q) + "\n\n" + dimLine("Which way do the arms of the E point?")
	case vision.KindContrast:
		stimulus = renderStripes(q) + "\n\n" + s.renderOptions(q, "Which way do the stripes run?")
	case vision.KindAmsler:
		stimulus = renderAmslerGrid() + "\n\n" + s.renderOptions(q, q.Prompt)
	case vision.KindReaction:
		stimulus = s.renderReactionPanel(width)
	case vision.KindBlink:
		stimulus = s.renderBlinkTracker()
	case vision.KindLight:
		stimulus = renderDimLetter(q) + "\n\n" + s.renderOptions(q, "Can you see the letter?")
	case vision.KindFocus:
		stimulus = renderFocusLetter(q) + "\n\n" + dimLine("Type the letter:") + "\n" + s.input.View()
	case vision.KindDominance:
		stimulus = s.renderDominanceStep(q)
	}

	// The reaction panel draws its own colored box; everything else sits in
	// the shared frame so the eye returns to the same spot between questions.
	if s.cfg.Kind != vision.KindReaction {
		cw := components.ContentWidth(width)
		stimulus = components.StimulusFrame(stimulus, cw, lipgloss.Height(stimulus)+4)
	}

	b.WriteString(stimulus)
	return centerBlock(b.String(), width, height)
}

func (s *TestScreen) renderProgressLine(width int) string {
	switch s.cfg.Mode {
	case vision.ModeTimedCount:
		return "" // the tracker renders its own clock
	case vision.ModeReaction:
		return dimLine(fmt.Sprintf("Round %d of %d", s.ctrl.Index()+1, s.ctrl.QuestionCount()))
	}
	line := fmt.Sprintf("Question %d of %d", s.ctrl.Index()+1, s.ctrl.QuestionCount())
	if s.cfg.Mode != vision.ModeSteps {
		line += fmt.Sprintf("   correct %d", s.ctrl.Score())
	}
	return dimLine(line)
}

func (s *TestScreen) renderOptions(q *vision.Question, prompt string) string {
	var b strings.Builder
	if prompt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(prompt))
		b.WriteString("\n\n")
	}
	for i, opt := range q.Options {
		prefix := "  "
		if i == s.optSel {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)
		if i == s.optSel {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderColorGrid draws the odd-one-out grid. Every cell shares the base
// HSL color except the expected cell, whose lightness is shifted.
func (s *TestScreen) renderColorGrid(q *vision.Question) string {
	base := hslToHex(q.Hue, q.Sat, q.Lit)
	odd := hslToHex(q.Hue, q.Sat, q.Lit+q.LitShift)
	oddIdx, _ := strconv.Atoi(q.Expected)

	var b strings.Builder
	for row := 0; row < q.GridSize; row++ {
		for col := 0; col < q.GridSize; col++ {
			idx := row*q.GridSize + col
			color := base
			if idx == oddIdx {
				color = odd
			}
			cell := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("███")
			if idx == s.gridSel {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("["))
				b.WriteString(cell)
				b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("]"))
			} else {
				b.WriteString(" " + cell + " ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimLine("Pick the tile that doesn't match"))
	return b.String()
}

// digitRows is a 5-row bitmap font for 0-9, used to hide the number inside
// the dot field.
var digitRows = map[rune][5]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {" # ", "## ", " # ", " # ", "###"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", "###", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", "  #", "  #"},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
}

// renderNumberField hides the expected two-digit number in a dot field.
// Digit dots differ from the surround only in hue, like an Ishihara plate.
func (s *TestScreen) renderNumberField(q *vision.Question) string {
	baseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(hslToHex(10, 60, 55)))
	digitStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(hslToHex(35, 60, 55)))

	// Compose the digit mask with a one-dot margin all around.
	var mask [5]string
	for _, r := range q.Expected {
		rows := digitRows[r]
		for i := range mask {
			if mask[i] != "" {
				mask[i] += " "
			}
			mask[i] += rows[i]
		}
	}

	var b strings.Builder
	maskW := len(mask[0])
	for row := 0; row < 7; row++ {
		for col := 0; col < maskW+4; col++ {
			inDigit := false
			mr, mc := row-1, col-2
			if mr >= 0 && mr < 5 && mc >= 0 && mc < maskW {
				inDigit = mask[mr][mc] == '#'
			}
			if inDigit {
				b.WriteString(digitStyle.Render("● "))
			} else {
				b.WriteString(baseStyle.Render("● "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderPressurePattern draws the stimulus pattern at the question's
// intensity. The pattern is atmosphere, not information: the self-reported
// sensation is what gets scored.
func renderPressurePattern(q *vision.Question) string {
	shade := "░"
	if q.Intensity >= 0.5 {
		shade = "▒"
	}
	if q.Intensity >= 0.8 {
		shade = "▓"
	}
	style := lipgloss.NewStyle().Foreground(theme.Secondary)

	var rows []string
	switch q.Pattern {
	case "radial":
		rows = []string{
			`   \  |  /   `,
			`    \ | /    `,
			` ----   ---- `,
			`    / | \    `,
			`   /  |  \   `,
		}
	case "grid":
		rows = []string{
			"┼──┼──┼──┼",
			"│  │  │  │",
			"┼──┼──┼──┼",
			"│  │  │  │",
			"┼──┼──┼──┼",
		}
	case "wave":
		rows = []string{
			"∿∿∿∿∿∿∿∿∿∿",
			" ∿∿∿∿∿∿∿∿∿",
			"∿∿∿∿∿∿∿∿∿∿",
			" ∿∿∿∿∿∿∿∿∿",
			"∿∿∿∿∿∿∿∿∿∿",
		}
	default: // concentric
		rows = []string{
			"  ╭─────╮  ",
			" ╭┤     ├╮ ",
			" ││  ●  ││ ",
			" ╰┤     ├╯ ",
			"  ╰─────╯  ",
		}
	}

	var b strings.Builder
	fill := strings.Repeat(shade, 13)
	b.WriteString(style.Render(fill) + "\n")
	for _, r := range rows {
		b.WriteString(style.Render(r) + "\n")
	}
	b.WriteString(style.Render(fill))
	return b.String()
}

// tumblingArms maps direction to the open side of the E glyph.
var tumblingArms = map[string][]string{
	vision.AnswerRight: {"█▀▀▀", "█▄▄ ", "█▀▀ ", "█▄▄▄"},
	vision.AnswerLeft:  {"▀▀▀█", " ▄▄█", " ▀▀█", "▄▄▄█"},
	vision.AnswerUp:    {"█ █ █", "█ █ █", "█▄█▄█", "▀▀▀▀▀"},
	vision.AnswerDown:  {"▄▄▄▄▄", "█▀█▀█", "█ █ █", "█ █ █"},
}

// renderTumblingE scales the glyph with the question's pixel size so the
// sweep from 200px to 50px is visible in cells too.
func renderTumblingE(q *vision.Question) string {
	scale := q.SizePx / 70 // 200px -> 2x, 50px -> 0 (min 1)
	if scale < 1 {
		scale = 1
	}

	rows := tumblingArms[q.Expected]
	var b strings.Builder
	style := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	for _, row := range rows {
		var scaled strings.Builder
		for _, r := range row {
			scaled.WriteString(strings.Repeat(string(r), scale))
		}
		for i := 0; i < scale; i++ {
			b.WriteString(style.Render(scaled.String()) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderStripes draws the orientation stimulus in a gray whose distance
// from the background shrinks with the contrast parameter.
func renderStripes(q *vision.Question) string {
	// Background sits near lightness 15; the stripes approach it as
	// contrast falls.
	lit := 15 + int(q.Contrast*70)
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(hslToHex(0, 0, lit)))

	var rows []string
	switch q.Expected {
	case vision.AnswerHorizontal:
		rows = []string{
			"──────────────",
			"              ",
			"──────────────",
			"              ",
			"──────────────",
		}
	case vision.AnswerDiagonalRight:
		rows = []string{
			"    ╱   ╱   ╱ ",
			"   ╱   ╱   ╱  ",
			"  ╱   ╱   ╱   ",
			" ╱   ╱   ╱    ",
			"╱   ╱   ╱     ",
		}
	case vision.AnswerDiagonalLeft:
		rows = []string{
			" ╲   ╲   ╲    ",
			"  ╲   ╲   ╲   ",
			"   ╲   ╲   ╲  ",
			"    ╲   ╲   ╲ ",
			"     ╲   ╲   ╲",
		}
	default: // vertical
		rows = []string{
			"│  │  │  │  │ ",
			"│  │  │  │  │ ",
			"│  │  │  │  │ ",
			"│  │  │  │  │ ",
			"│  │  │  │  │ ",
		}
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(style.Render(r) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderAmslerGrid draws the fixation grid with its center dot.
func renderAmslerGrid() string {
	gridStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	dotStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	const size = 9
	var b strings.Builder
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if row == size/2 && col == size/2 {
				b.WriteString(dotStyle.Render("●"))
				b.WriteString(gridStyle.Render("─"))
				continue
			}
			b.WriteString(gridStyle.Render("┼─"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *TestScreen) renderReactionPanel(width int) string {
	panelWidth := width - 20
	if panelWidth > 50 {
		panelWidth = 50
	}
	if panelWidth < 20 {
		panelWidth = 20
	}

	var style lipgloss.Style
	var text string
	switch s.ctrl.Stage() {
	case sess.StageReady:
		style = theme.ReactionGo
		text = "PRESS NOW"
	case sess.StageTooEarly:
		style = lipgloss.NewStyle().Background(theme.Warning).Foreground(theme.BgDark).Bold(true)
		text = "Too soon! Wait for green..."
	default:
		style = theme.ReactionWait
		text = "Wait for it..."
	}

	return style.
		Width(panelWidth).
		Height(7).
		Align(lipgloss.Center, lipgloss.Center).
		Render(text)
}

func (s *TestScreen) renderBlinkTracker() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(bigDigits(fmt.Sprintf("%d", s.ctrl.TrackLeft()))))
	b.WriteString("\n")
	b.WriteString(dimLine("seconds left"))
	b.WriteString("\n\n")
	elapsed := float64(s.cfg.TrackSeconds-s.ctrl.TrackLeft()) / float64(s.cfg.TrackSeconds)
	b.WriteString(components.NewProgressBar("", elapsed, false, 40).View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Blinks counted: %d", s.ctrl.BlinkCount())))
	b.WriteString("\n\n")
	b.WriteString(dimLine("Press Space on every natural blink"))
	return b.String()
}

// renderDimLetter shows the letter in a gray derived from the brightness
// parameter. Below the visibility threshold it genuinely blends into the
// background on most terminals.
func renderDimLetter(q *vision.Question) string {
	lit := 10 + int(q.Brightness*60)
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(hslToHex(0, 0, lit))).
		Bold(true)
	return style.Render(bigDigits(q.Letter))
}

func renderFocusLetter(q *vision.Question) string {
	var letter string
	if q.SizePx >= 45 {
		letter = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(bigDigits(q.Letter))
	} else {
		letter = lipgloss.NewStyle().Foreground(theme.Text).Render(q.Letter)
	}
	label := "reading distance"
	if q.Distance == vision.DistanceFar {
		label = "far distance"
	}
	return letter + "\n" + dimLine("("+label+")")
}

func (s *TestScreen) renderDominanceStep(q *vision.Question) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(54).
		Foreground(theme.Text).
		Render(q.Prompt))
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Render(fmt.Sprintf("[%d] ", i+1)))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(opt))
		b.WriteString("   ")
	}
	return b.String()
}

func (s *TestScreen) renderFeedback(width, height int) string {
	var b strings.Builder

	if s.cfg.Mode == vision.ModeReaction {
		ms := s.ctrl.LastLatency()
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render(fmt.Sprintf("%d ms", ms)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Text).
			Render(vision.ReactionRating(ms)))
	} else if s.ctrl.LastCorrect() {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite"))
		if q := s.ctrl.Question(); q != nil && q.Expected != "" && s.cfg.Kind != vision.KindColor {
			b.WriteString("\n")
			b.WriteString(dimLine("Answer: " + q.Expected))
		}
	}

	return centerBlock(b.String(), width, height)
}

func (s *TestScreen) renderFinalizing(width, height int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Wrapping up...")
	return centerBlock(msg, width, height)
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this test?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("An unfinished test is not recorded."))
	b.WriteString("\n\n")
	buttons := lipgloss.JoinVertical(lipgloss.Center,
		components.PanelButton("[Y] Yes, leave", false, 26),
		components.PanelButton("[N] No, keep going", true, 26),
	)
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(buttons))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func dimLine(s string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}

func centerBlock(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// bigDigits renders short strings in a 5-row block font.
func bigDigits(s string) string {
	rows := [5]string{}
	for _, r := range s {
		glyph, ok := blockGlyphs[r]
		if !ok {
			glyph = [5]string{"   ", "   ", " " + string(r) + " ", "   ", "   "}
		}
		for i := range rows {
			if rows[i] != "" {
				rows[i] += "  "
			}
			rows[i] += glyph[i]
		}
	}
	return strings.Join(rows[:], "\n")
}

// blockGlyphs covers digits and the Snellen letters used by the tests.
var blockGlyphs = map[rune][5]string{
	'0': {"█████", "█   █", "█   █", "█   █", "█████"},
	'1': {"  █  ", " ██  ", "  █  ", "  █  ", "█████"},
	'2': {"█████", "    █", "█████", "█    ", "█████"},
	'3': {"█████", "    █", " ████", "    █", "█████"},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "█████", "    █", "█████"},
	'6': {"█████", "█    ", "█████", "█   █", "█████"},
	'7': {"█████", "    █", "   █ ", "  █  ", "  █  "},
	'8': {"█████", "█   █", "█████", "█   █", "█████"},
	'9': {"█████", "█   █", "█████", "    █", "█████"},
	'E': {"█████", "█    ", "████ ", "█    ", "█████"},
	'F': {"█████", "█    ", "████ ", "█    ", "█    "},
	'P': {"█████", "█   █", "█████", "█    ", "█    "},
	'T': {"█████", "  █  ", "  █  ", "  █  ", "  █  "},
	'O': {"█████", "█   █", "█   █", "█   █", "█████"},
	'Z': {"█████", "   █ ", "  █  ", " █   ", "█████"},
	'L': {"█    ", "█    ", "█    ", "█    ", "█████"},
	'D': {"████ ", "█   █", "█   █", "█   █", "████ "},
}

// hslToHex converts an HSL triple (h in degrees, s and l in percent) to a
// #rrggbb string lipgloss can consume.
func hslToHex(h, s, l int) string {
	hf := math.Mod(float64(h), 360) / 360
	sf := clamp01(float64(s) / 100)
	lf := clamp01(float64(l) / 100)

	var r, g, b float64
	if sf == 0 {
		r, g, b = lf, lf, lf
	} else {
		var q float64
		if lf < 0.5 {
			q = lf * (1 + sf)
		} else {
			q = lf + sf - lf*sf
		}
		p := 2*lf - q
		r = hueToRGB(p, q, hf+1.0/3)
		g = hueToRGB(p, q, hf)
		b = hueToRGB(p, q, hf-1.0/3)
	}
	return fmt.Sprintf("#%02x%02x%02x", int(r*255+0.5), int(g*255+0.5), int(b*255+0.5))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
