package ui

import (
	"fmt"
	"io"
	"strings"
)

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws lines inside a rounded frame.
func (s Styles) Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, s.PanelString(strings.Join(lines, "\n")))
}

// PanelString frames inner.
func (s Styles) PanelString(inner string) string {
	return s.Frame.Render(inner)
}

// OK prints a success line.
func (s Styles) OK(w io.Writer, msg string) {
	fmt.Fprintln(w, s.Success.Render("✔ "+msg))
}

// Fail prints an error line.
func (s Styles) Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, s.Error.Render("✖ "+msg))
}

// Checkbox returns the themed box for a completion flag.
func (s Styles) Checkbox(done bool) string {
	if done {
		return s.Success.Render(s.Theme.BoxChecked)
	}
	return s.Muted.Render(s.Theme.BoxUnchecked)
}

// Truncate shortens title to max runes, ending it with "...".
func Truncate(title string, max int) string {
	r := []rune(title)
	if max <= 3 || len(r) <= max {
		return title
	}
	return string(r[:max-3]) + "..."
}
