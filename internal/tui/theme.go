package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a colour palette for the timer screen.
type Theme struct {
	Name        string
	Background  lipgloss.Color
	Foreground  lipgloss.Color
	Success     lipgloss.Color
	Destructive lipgloss.Color
	Muted       lipgloss.Color
	Accent      lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "dark",
		Background:  lipgloss.Color("#1E1E1E"),
		Foreground:  lipgloss.Color("#F0F0F0"),
		Success:     lipgloss.Color("#52C41A"),
		Destructive: lipgloss.Color("#FF4D4F"),
		Muted:       lipgloss.Color("#6E6E6E"),
		Accent:      lipgloss.Color("#C89A3A"),
	},
	{
		Name:        "light",
		Background:  lipgloss.Color("#FAFAFA"),
		Foreground:  lipgloss.Color("#1F1F1F"),
		Success:     lipgloss.Color("#389E0D"),
		Destructive: lipgloss.Color("#CF1322"),
		Muted:       lipgloss.Color("#8C8C8C"),
		Accent:      lipgloss.Color("#AD6800"),
	},
}

// ThemeNames lists the known theme names.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for _, t := range themes {
		names = append(names, t.Name)
	}
	return names
}

// ParseTheme returns the index of the named theme.
func ParseTheme(name string) (int, error) {
	for i, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(ThemeNames(), ", "))
}

type styles struct {
	text      lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	selected  lipgloss.Style
	timeIdle  lipgloss.Style
	timeReady lipgloss.Style
	timeHold  lipgloss.Style
	footer    lipgloss.Style
	sidebar   lipgloss.Style
}

func newStyles(t Theme) styles {
	timeBase := lipgloss.NewStyle().Bold(true).Padding(1, 2)
	return styles{
		text:      lipgloss.NewStyle().Foreground(t.Foreground),
		muted:     lipgloss.NewStyle().Foreground(t.Muted),
		accent:    lipgloss.NewStyle().Foreground(t.Accent),
		selected:  lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true),
		timeIdle:  timeBase.Foreground(t.Foreground),
		timeReady: timeBase.Foreground(t.Success),
		timeHold:  timeBase.Foreground(t.Destructive),
		footer:    lipgloss.NewStyle().Foreground(t.Muted),
		sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}
