package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			Padding(0, 2).
			Width(40)

	labelStyle = lipgloss.NewStyle().Width(12)
	helpStyle  = lipgloss.NewStyle().Italic(true).MarginTop(1)
)

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Secondary).MarginBottom(1)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

func statusStyle(running, done bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch {
	case done:
		return s.Foreground(CurrentTheme.Accent)
	case running:
		return s.Foreground(CurrentTheme.Success)
	default:
		return s.Foreground(CurrentTheme.Warning)
	}
}

// Bar renders a signed value in [-limit, limit] as a centered bar.
func Bar(value, limit float64, width int) string {
	half := width / 2
	if limit <= 0 {
		return strings.Repeat("─", width)
	}
	n := int(value / limit * float64(half))
	if n > half {
		n = half
	}
	if n < -half {
		n = -half
	}

	left := strings.Repeat("─", half)
	right := strings.Repeat("─", width-half)
	if n < 0 {
		left = strings.Repeat("─", half+n) + strings.Repeat("█", -n)
	} else if n > 0 {
		right = strings.Repeat("█", n) + strings.Repeat("─", width-half-n)
	}
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Render(left + "│" + right)
}
