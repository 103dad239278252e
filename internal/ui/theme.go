package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Match  lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Muted:  lipgloss.Color("#a6adc8"),
		Accent: lipgloss.Color("#cba6f7"),
		Match:  lipgloss.Color("#f38ba8"),
	},
	"dracula": {
		Muted:  lipgloss.Color("#6272a4"),
		Accent: lipgloss.Color("#ff79c6"),
		Match:  lipgloss.Color("#50fa7b"),
	},
	"gruvbox": {
		Muted:  lipgloss.Color("#a89984"),
		Accent: lipgloss.Color("#fabd2f"),
		Match:  lipgloss.Color("#fe8019"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string) string {
	names := themeNames()
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	return names[(idx+1)%len(names)]
}
