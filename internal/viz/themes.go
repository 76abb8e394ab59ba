package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme colors the two theories and the chrome around them.
type Theme struct {
	Name          string
	Schwarzschild lipgloss.Color
	Newtonian     lipgloss.Color
	Horizon       lipgloss.Color
	Title         lipgloss.Color
	Text          lipgloss.Color
	Muted         lipgloss.Color
	Warning       lipgloss.Color

	// plot colors for asciigraph, in theory order
	SeriesColors []asciigraph.AnsiColor
}

var (
	ThemeCyberpunk = Theme{
		Name:          "cyberpunk",
		Schwarzschild: lipgloss.Color("#ff00ff"),
		Newtonian:     lipgloss.Color("#00ffff"),
		Horizon:       lipgloss.Color("#ffff00"),
		Title:         lipgloss.Color("#00ffff"),
		Text:          lipgloss.Color("#ffffff"),
		Muted:         lipgloss.Color("#666688"),
		Warning:       lipgloss.Color("#ff8800"),
		SeriesColors:  []asciigraph.AnsiColor{asciigraph.Magenta, asciigraph.Cyan},
	}

	ThemeMinimal = Theme{
		Name:          "minimal",
		Schwarzschild: lipgloss.Color("#ffffff"),
		Newtonian:     lipgloss.Color("#888888"),
		Horizon:       lipgloss.Color("#0088ff"),
		Title:         lipgloss.Color("#ffffff"),
		Text:          lipgloss.Color("#ffffff"),
		Muted:         lipgloss.Color("#888888"),
		Warning:       lipgloss.Color("#ffaa00"),
		SeriesColors:  []asciigraph.AnsiColor{asciigraph.White, asciigraph.Gray},
	}

	ThemeSunset = Theme{
		Name:          "sunset",
		Schwarzschild: lipgloss.Color("#ff6b6b"),
		Newtonian:     lipgloss.Color("#feca57"),
		Horizon:       lipgloss.Color("#ff9ff3"),
		Title:         lipgloss.Color("#feca57"),
		Text:          lipgloss.Color("#fff5f5"),
		Muted:         lipgloss.Color("#8b6b8c"),
		Warning:       lipgloss.Color("#ffc048"),
		SeriesColors:  []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Yellow},
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	refreshStyles()
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
