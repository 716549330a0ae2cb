package commands

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the set of styles used to render command output.
type Theme struct {
	Name    string
	Title   lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Border  lipgloss.Style
	Credit  lipgloss.Style
	Debit   lipgloss.Style
}

var themes = map[string]Theme{
	"dark": newTheme("dark", palette{
		text: "#cdd6f4", muted: "#7f849c", accent: "#89b4fa",
		green: "#a6e3a1", red: "#f38ba8", border: "#45475a",
	}),
	"light": newTheme("light", palette{
		text: "#4c4f69", muted: "#8c8fa1", accent: "#1e66f5",
		green: "#40a02b", red: "#d20f39", border: "#bcc0cc",
	}),
}

type palette struct {
	text, muted, accent, green, red, border string
}

func newTheme(name string, p palette) Theme {
	return Theme{
		Name:    name,
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true).Padding(0, 1),
		Cell:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.text)).Padding(0, 1),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(p.green)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.red)),
		Border:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.border)),
		Credit:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.green)).Padding(0, 1),
		Debit:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.red)).Padding(0, 1),
	}
}

// ThemeByName returns the named theme.
func ThemeByName(name string) (Theme, error) {
	if t, ok := themes[name]; ok {
		return t, nil
	}
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return Theme{}, fmt.Errorf("unknown theme %q (available: %v)", name, names)
}
