// Package tui is the interactive list screen: toggle, delete, inline add
// and edit, and a light/dark theme switch. Every mutation is flushed by a
// tea.Cmd so rendering never waits on storage.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/todos"
	"github.com/idilsaglam/todolist/internal/ui"
)

// Options tune the screen.
type Options struct {
	Theme          ui.Theme
	MaxTitleLength int
	Logger         *log.Logger
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// flushedMsg reports a finished flush. Failures are already logged by
// the store; the screen only tracks how many are in flight.
type flushedMsg struct {
	id  int
	err error
}

// listItem adapts model.Todo to list.Item.
type listItem struct{ todo model.Todo }

func (i listItem) FilterValue() string { return i.todo.Title }

// itemDelegate renders each todo on a single line.
type itemDelegate struct{ styles ui.Styles }

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd     { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	text := d.styles.Text.Render(it.todo.Title)
	if it.todo.Completed {
		text = d.styles.Done.Render(it.todo.Title)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, d.styles.Checkbox(it.todo.Completed), text)
}

type keyMap struct {
	toggle, remove, add, edit, theme, quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model implements tea.Model over a loaded todos.Store.
type Model struct {
	ctx    context.Context
	store  *todos.Store
	styles ui.Styles
	logger *log.Logger
	keys   keyMap

	list     list.Model
	input    textinput.Model
	mode     mode
	editID   int
	inputErr string

	inflight int
	quitting bool
}

// New builds the screen. store must already be loaded.
func New(ctx context.Context, store *todos.Store, opts Options) Model {
	if opts.Theme.Name == "" {
		opts.Theme = ui.Light
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	styles := ui.NewStyles(opts.Theme)
	keys := newKeyMap()

	l := list.New(nil, itemDelegate{styles: styles}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("item", "items")
	l.KeyMap.Quit.SetEnabled(false)
	extra := func() []key.Binding {
		return []key.Binding{keys.toggle, keys.remove, keys.add, keys.edit, keys.theme, keys.quit}
	}
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = opts.MaxTitleLength

	m := Model{
		ctx:    ctx,
		store:  store,
		styles: styles,
		logger: opts.Logger.WithPrefix("tui"),
		keys:   keys,
		list:   l,
		input:  ti,
	}
	m.applyStyles()
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and returns once the
// user quits and every pending flush has finished.
func Run(ctx context.Context, store *todos.Store, opts Options) error {
	p := tea.NewProgram(New(ctx, store, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Theme is the active scheme.
func (m Model) Theme() ui.Theme { return m.styles.Theme }

func (m *Model) applyStyles() {
	m.list.SetDelegate(itemDelegate{styles: m.styles})
	m.list.Styles.Title = m.styles.Title
	m.list.Styles.HelpStyle = m.styles.Help
	m.list.Styles.PaginationStyle = m.styles.Help
	m.input.PromptStyle = m.styles.Accent
	m.input.TextStyle = m.styles.Text
}

// refresh rebuilds the list rows and header from the store.
func (m *Model) refresh() {
	todosNow := m.store.Items()
	items := make([]list.Item, 0, len(todosNow))
	for _, t := range todosNow {
		items = append(items, listItem{todo: t})
	}
	m.list.SetItems(items)

	done, pending := todos.Stats(todosNow)
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s",
		"Todos",
		m.styles.Success.Render("✔"), done,
		m.styles.Pending.Render("•"), pending,
		m.styles.Accent.Render("Total"), len(todosNow),
		m.styles.Muted.Render(m.styles.Theme.ToggleSymbol),
	)
}

func (m Model) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.todo, ok
}

// flush issues the write for mu as a command.
func (m *Model) flush(mu todos.Mutation) tea.Cmd {
	if !mu.Changed {
		return nil
	}
	m.inflight++
	ctx := m.ctx
	return func() tea.Msg {
		return flushedMsg{id: mu.ID, err: mu.Flush(ctx)}
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case flushedMsg:
		m.inflight--
		if msg.err == nil {
			m.logger.Debug("flushed", "id", msg.id)
		}
		if m.quitting && m.inflight <= 0 {
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		h, v := m.styles.Frame.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-3)
		m.input.Width = msg.Width - h - 6
		return m, nil
	case tea.KeyMsg:
		if m.quitting {
			// A second ctrl+c leaves without waiting on storage.
			if msg.Type == tea.KeyCtrlC {
				m.logger.Warn("quit before pending flushes finished", "inflight", m.inflight)
				return m, tea.Quit
			}
			return m, nil
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		if m.inflight > 0 {
			m.quitting = true
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggle):
		if t, ok := m.selected(); ok {
			cmd := m.flush(m.store.Toggle(t.ID))
			m.refresh()
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if t, ok := m.selected(); ok {
			cmd := m.flush(m.store.Remove(t.ID))
			m.refresh()
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		m.mode = modeAdd
		m.inputErr = ""
		m.input.SetValue("")
		m.input.Placeholder = "Add a new todo"
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.edit):
		if t, ok := m.selected(); ok {
			m.mode = modeEdit
			m.editID = t.ID
			m.inputErr = ""
			m.input.SetValue(t.Title)
			m.input.CursorEnd()
			m.input.Placeholder = "Edit todo"
			return m, m.input.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.theme):
		m.styles = ui.NewStyles(m.styles.Theme.Toggled())
		m.applyStyles()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeInput()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		if title == "" {
			m.inputErr = "Title cannot be empty"
			return m, nil
		}
		var mu todos.Mutation
		if m.mode == modeAdd {
			mu = m.store.Add(title)
		} else {
			mu = m.store.Edit(m.editID, title)
		}
		cmd := m.flush(mu)
		m.refresh()
		if m.mode == modeAdd {
			m.list.Select(0)
		}
		m.closeInput()
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.editID = 0
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) View() string {
	content := m.list.View()
	if m.mode != modeList {
		title := "Add new item"
		if m.mode == modeEdit {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += "  " + m.styles.Error.Render(m.inputErr)
		}
		bar := m.styles.Frame.Render(title + "\n" + m.input.View())
		content = lipgloss.JoinVertical(lipgloss.Left, content, bar)
	}
	if m.quitting {
		content = lipgloss.JoinVertical(lipgloss.Left, content, m.styles.Muted.Render("saving... (ctrl+c to quit now)"))
	}
	return m.styles.PanelString(content)
}
