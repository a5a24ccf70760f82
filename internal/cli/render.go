package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/todos"
	"github.com/idilsaglam/todolist/internal/ui"
)

const barWidth = 28

// listLines lays out the panel body for ls.
func listLines(s ui.Styles, items []model.Todo, maxTitle int, group bool) []string {
	done, pending := todos.Stats(items)
	lines := []string{
		s.Title.Render("todo") + "  " + s.Muted.Render(fmt.Sprintf("%d pending · %d done", pending, done)),
		s.Accent.Render(ui.ProgressBar(done, len(items), barWidth)),
		"",
	}
	if len(items) == 0 {
		return append(lines, s.Muted.Render("nothing to do. Add one with: todo add <title>"))
	}
	if !group {
		for _, t := range items {
			lines = append(lines, itemLine(s, t, maxTitle))
		}
		return lines
	}

	lines = append(lines, s.Pending.Render(fmt.Sprintf("Pending (%d)", pending)))
	for _, t := range items {
		if !t.Completed {
			lines = append(lines, "  "+itemLine(s, t, maxTitle))
		}
	}
	lines = append(lines, "", s.Success.Render(fmt.Sprintf("Done (%d)", done)))
	for _, t := range items {
		if t.Completed {
			lines = append(lines, "  "+itemLine(s, t, maxTitle))
		}
	}
	return lines
}

func itemLine(s ui.Styles, t model.Todo, maxTitle int) string {
	title := ui.Truncate(t.Title, maxTitle)
	if t.Completed {
		title = s.Done.Render(title)
	} else {
		title = s.Text.Render(title)
	}
	return fmt.Sprintf("%3d  %s  %s", t.ID, s.Checkbox(t.Completed), title)
}

// swatchLines shows each role of a theme next to a block of its color.
func swatchLines(t ui.Theme) []string {
	s := ui.NewStyles(t)
	block := func(c lipgloss.Color) string {
		return lipgloss.NewStyle().Background(c).Render("    ")
	}
	roles := []struct {
		name  string
		color lipgloss.Color
	}{
		{"text", t.Text},
		{"background", t.Background},
		{"icon", t.Icon},
		{"button", t.Button},
		{"toggle", t.ToggleIcon},
		{"success", t.Success},
		{"pending", t.Pending},
		{"error", t.Error},
	}
	lines := []string{s.Title.Render("theme: " + t.Name + " " + t.ToggleSymbol), ""}
	for _, r := range roles {
		lines = append(lines, fmt.Sprintf("%s %-10s %s", block(r.color), r.name, s.Muted.Render(string(r.color))))
	}
	return lines
}
