package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/eyeris-app/eyeris/internal/ui/theme"
)

// Block-letter title.
const bannerFull = ` ███████╗██╗   ██╗███████╗██████╗ ██╗███████╗
 ██╔════╝╚██╗ ██╔╝██╔════╝██╔══██╗██║██╔════╝
 █████╗   ╚████╔╝ █████╗  ██████╔╝██║███████╗
 ██╔══╝    ╚██╔╝  ██╔══╝  ██╔══██╗██║╚════██║
 ███████╗   ██║   ███████╗██║  ██║██║███████║
 ╚══════╝   ╚═╝   ╚══════╝╚═╝  ╚═╝╚═╝╚══════╝`

const bannerCompact = "E · Y · E · R · I · S"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 24 {
		w = 24
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(bannerCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(bannerFull))
}

func renderTagline(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render("eleven little check-ups for your eyes")
}

// renderMenu renders the selection list in two balanced columns so all
// entries fit inside the frame.
func renderMenu(items []string, selected int, cw int) string {
	half := (len(items) + 1) / 2
	colWidth := cw/2 - 2

	var rows []string
	for i := 0; i < half; i++ {
		left := renderItem(items[i], i == selected, colWidth)
		right := ""
		if i+half < len(items) {
			right = renderItem(items[i+half], i+half == selected, colWidth)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	}

	block := strings.Join(rows, "\n")
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

func renderItem(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Foreground(theme.BgDark).
			Background(theme.Accent).
			Bold(true).
			Render(" ▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Render("   " + label)
}

func renderBlurb(text string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(text)
}

func renderLastRun(text string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Soft).
		Italic(true).
		Render(text)
}

// renderCabinetFrame wraps content in a double-border frame, centered
// within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
