package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/blackholes/internal/physics"
)

var (
	Title         lipgloss.Style
	Subtle        lipgloss.Style
	MetricLabel   lipgloss.Style
	MetricValue   lipgloss.Style
	Warning       lipgloss.Style
	Schwarzschild lipgloss.Style
	Newtonian     lipgloss.Style
)

func init() { refreshStyles() }

func refreshStyles() {
	t := CurrentTheme
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Title).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	MetricLabel = lipgloss.NewStyle().Foreground(t.Muted)
	MetricValue = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	Schwarzschild = lipgloss.NewStyle().Foreground(t.Schwarzschild)
	Newtonian = lipgloss.NewStyle().Foreground(t.Newtonian)
}

// TheoryStyle is the style used for everything drawn for a theory.
func TheoryStyle(th physics.Theory) lipgloss.Style {
	if th == physics.Newtonian {
		return Newtonian
	}
	return Schwarzschild
}

// kindGlyphs mark trajectory kinds in sweep maps, from tightest to loosest.
var kindGlyphs = map[physics.Kind]string{
	physics.NearCircular: "○",
	physics.Elliptic:     "◌",
	physics.FlyBy:        "→",
	physics.NearCatch:    "◎",
	physics.FallIn:       "●",
}

func KindGlyph(k physics.Kind) string {
	if g, ok := kindGlyphs[k]; ok {
		return g
	}
	return "?"
}

// KindStyle colors a trajectory kind by how close it comes to capture.
func KindStyle(k physics.Kind) lipgloss.Style {
	switch k {
	case physics.NearCircular, physics.Elliptic:
		return Newtonian
	case physics.FlyBy:
		return Subtle
	case physics.NearCatch:
		return Warning
	}
	return Schwarzschild
}

// Metric renders an aligned "label value" pair.
func Metric(label string, value float64) string {
	return MetricLabel.Render(fmt.Sprintf("%-24s", label)) + MetricValue.Render(fmt.Sprintf("%.6g", value))
}

// Sparkline renders values as one row of block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		norm := (values[int(float64(i)*step)] - lo) / span
		idx := int(norm * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return b.String()
}

func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}

// BoxWithTitle renders content in a rounded box with a title line.
func BoxWithTitle(title, content string, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Muted).
		Width(width).
		Padding(0, 1)
	return Title.Render(title) + "\n" + box.Render(content)
}
