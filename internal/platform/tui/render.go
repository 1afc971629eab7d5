package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/treeclimber/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorBark:    lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorLeaf:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	core.ColorBird:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorShield:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorLock:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorAcorn:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDanger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
