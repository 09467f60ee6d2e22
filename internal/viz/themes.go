package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dynmap/internal/render"
)

// Theme colours both the terminal UI and the rendered pictures.
type Theme struct {
	Name       string
	Background lipgloss.Color // picture background
	Points     lipgloss.Color // density marks and braille dots
	Cursor     lipgloss.Color // current control line
	Orbit      lipgloss.Color // orbit markers at the cursor
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:       "classic",
		Background: lipgloss.Color("#000000"),
		Points:     lipgloss.Color("#ffffff"),
		Cursor:     lipgloss.Color("#ff0000"),
		Orbit:      lipgloss.Color("#ffe650"),
		Accent:     lipgloss.Color("#00cccc"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666688"),
	}

	ThemePhosphor = Theme{
		Name:       "phosphor",
		Background: lipgloss.Color("#001100"),
		Points:     lipgloss.Color("#00ff00"), // green phosphor
		Cursor:     lipgloss.Color("#ffff00"),
		Orbit:      lipgloss.Color("#88ff88"),
		Accent:     lipgloss.Color("#00cc00"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		Background: lipgloss.Color("#2d1b2e"),
		Points:     lipgloss.Color("#feca57"),
		Cursor:     lipgloss.Color("#ff4757"),
		Orbit:      lipgloss.Color("#ff9ff3"),
		Accent:     lipgloss.Color("#ff6b6b"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: lipgloss.Color("#001a33"),
		Points:     lipgloss.Color("#00a8cc"),
		Cursor:     lipgloss.Color("#ff4444"),
		Orbit:      lipgloss.Color("#ffd700"),
		Accent:     lipgloss.Color("#0077be"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	// ThemePaper draws dark marks on a light background for print.
	ThemePaper = Theme{
		Name:       "paper",
		Background: lipgloss.Color("#fafafa"),
		Points:     lipgloss.Color("#111827"),
		Cursor:     lipgloss.Color("#dc2626"),
		Orbit:      lipgloss.Color("#2563eb"),
		Accent:     lipgloss.Color("#374151"),
		Text:       lipgloss.Color("#111827"),
		Muted:      lipgloss.Color("#9ca3af"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemePhosphor,
		ThemeEmber,
		ThemeOcean,
		ThemePaper,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next returns the theme after t in Themes, wrapping around.
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Palette derives the picture colours of t. Alphas follow the default
// palette; the field view keeps its light contour bands.
func (t Theme) Palette() render.Palette {
	p := render.DefaultPalette()
	p.Background = nrgba(t.Background, 255)
	p.Mark = nrgba(t.Points, 255)
	p.Line = nrgba(t.Cursor, p.Line.A)
	p.Indicator = nrgba(t.Cursor, p.Indicator.A)
	p.Marker = nrgba(t.Orbit, p.Marker.A)
	p.Highlight = nrgba(t.Orbit, p.Highlight.A)
	p.Label = nrgba(t.Cursor, 255)
	return p
}

func nrgba(c lipgloss.Color, a uint8) color.NRGBA {
	r, g, b := parseHex(string(c))
	return color.NRGBA{uint8(r), uint8(g), uint8(b), a}
}
