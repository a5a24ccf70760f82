package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols for one color scheme. Themes are plain
// values; callers pass the one they want instead of reading a global.
type Theme struct {
	Name string

	Text       lipgloss.Color
	Background lipgloss.Color
	Icon       lipgloss.Color
	Button     lipgloss.Color
	ToggleIcon lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Pending    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	BoxUnchecked, BoxChecked string
	ToggleSymbol             string // shown on the theme toggle
}

// Light is the default scheme.
var Light = Theme{
	Name:         "light",
	Text:         lipgloss.Color("#000000"),
	Background:   lipgloss.Color("#FFFFFF"),
	Icon:         lipgloss.Color("#000000"),
	Button:       lipgloss.Color("#4169E1"), // royalblue
	ToggleIcon:   lipgloss.Color("#000000"),
	Muted:        lipgloss.Color("#808080"),
	Success:      lipgloss.Color("#008000"),
	Pending:      lipgloss.Color("#B8860B"),
	Error:        lipgloss.Color("#FF0000"),
	Border:       lipgloss.Color("#808080"),
	BoxUnchecked: "☐",
	BoxChecked:   "☑",
	ToggleSymbol: "☾",
}

// Dark inverts the light scheme.
var Dark = Theme{
	Name:         "dark",
	Text:         lipgloss.Color("#FFFFFF"),
	Background:   lipgloss.Color("#000000"),
	Icon:         lipgloss.Color("#FF0000"),
	Button:       lipgloss.Color("#FFFFFF"),
	ToggleIcon:   lipgloss.Color("#FFFFFF"),
	Muted:        lipgloss.Color("#808080"),
	Success:      lipgloss.Color("#32CD32"),
	Pending:      lipgloss.Color("#FFD700"),
	Error:        lipgloss.Color("#FF0000"),
	Border:       lipgloss.Color("#808080"),
	BoxUnchecked: "☐",
	BoxChecked:   "☑",
	ToggleSymbol: "☀",
}

// ThemeByName resolves "light" or "dark" (case-insensitive).
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return Theme{}, fmt.Errorf("unknown theme %q; use light|dark", name)
}

// Toggled returns the other scheme.
func (t Theme) Toggled() Theme {
	if t.Name == Dark.Name {
		return Light
	}
	return Dark
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Pending  lipgloss.Style
	Accent   lipgloss.Style
	Error    lipgloss.Style
	Done     lipgloss.Style
	Selected lipgloss.Style
	Button   lipgloss.Style
	Help     lipgloss.Style
	Frame    lipgloss.Style
}

// NewStyles derives styles from t.
func NewStyles(t Theme) Styles {
	return Styles{
		Theme:    t,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Text:     lipgloss.NewStyle().Foreground(t.Text),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Success:  lipgloss.NewStyle().Foreground(t.Success),
		Pending:  lipgloss.NewStyle().Foreground(t.Pending),
		Accent:   lipgloss.NewStyle().Foreground(t.Button),
		Error:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Done:     lipgloss.NewStyle().Foreground(t.Muted).Strikethrough(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Button),
		Button: lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(t.Background).Background(t.Button),
		Help: lipgloss.NewStyle().Foreground(t.Muted),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
