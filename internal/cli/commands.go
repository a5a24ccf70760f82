package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/todos"
	"github.com/idilsaglam/todolist/internal/tui"
	"github.com/idilsaglam/todolist/internal/ui"
)

const idHint = "Hint: run `todo ls` to see valid ids"

func newListCmd(f *flags, stderr io.Writer) *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos, newest first",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd, f, stderr, false)
			if err != nil {
				return err
			}
			defer a.Close()
			a.styles.Panel(cmd.OutOrStdout(), listLines(a.styles, a.todos.Items(), a.cfg.MaxTitleLength, group))
			return nil
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group by pending and done")
	return cmd
}

func newAddCmd(f *flags, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo (the title can be several words)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("usage: todo add <title...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd, f, stderr, false)
			if err != nil {
				return err
			}
			defer a.Close()
			title, err := checkTitle("add", args, a.cfg.MaxTitleLength)
			if err != nil {
				return err
			}
			mu := a.todos.Add(title)
			a.flush(cmd, mu, fmt.Sprintf("added #%d", mu.ID))
			return nil
		},
	}
}

func newDoneCmd(f *flags, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a todo",
		Args:  oneID("done"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := openWithID(cmd, f, stderr, "done", args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			a.flush(cmd, a.todos.Toggle(id), fmt.Sprintf("toggled #%d", id))
			return nil
		},
	}
}

func newRemoveCmd(f *flags, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a todo",
		Args:  oneID("rm"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := openWithID(cmd, f, stderr, "rm", args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			a.flush(cmd, a.todos.Remove(id), fmt.Sprintf("removed #%d", id))
			return nil
		},
	}
}

func newEditCmd(f *flags, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title...>",
		Short: "Replace the title of a todo",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usageErrorf("usage: todo edit <id> <title...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, id, err := openWithID(cmd, f, stderr, "edit", args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			title, err := checkTitle("edit", args[1:], a.cfg.MaxTitleLength)
			if err != nil {
				return err
			}
			a.flush(cmd, a.todos.Edit(id, title), fmt.Sprintf("edited #%d", id))
			return nil
		},
	}
}

func newTUICmd(f *flags, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), cmd, f, stderr, true)
			if err != nil {
				return err
			}
			defer a.Close()
			err = tui.Run(cmd.Context(), a.todos, tui.Options{
				Theme:          a.styles.Theme,
				MaxTitleLength: a.cfg.MaxTitleLength,
				Logger:         a.logger.WithPrefix("tui"),
			})
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

func newThemeCmd(f *flags, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show the resolved theme and a swatch",
		ValidArgs: []string{"light", "dark"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageErrorf("usage: todo theme [light|dark]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			name := cfg.Theme
			if len(args) == 1 {
				name = args[0]
			}
			theme, err := ui.ThemeByName(name)
			if err != nil {
				return usageErrorf("%v", err)
			}
			ui.NewStyles(theme).Panel(cmd.OutOrStdout(), swatchLines(theme))
			return nil
		},
	}
}

// flush writes the mutation and reports it. A failed write is logged by
// the store and the command still succeeds; the change is simply not
// persisted.
func (a *app) flush(cmd *cobra.Command, mu todos.Mutation, msg string) {
	out := cmd.OutOrStdout()
	if !mu.Changed {
		a.styles.OK(out, "nothing to change")
		return
	}
	if err := mu.Flush(cmd.Context()); err != nil {
		a.styles.OK(out, msg+" (not saved)")
		return
	}
	a.styles.OK(out, msg)
}

func openWithID(cmd *cobra.Command, f *flags, stderr io.Writer, name, arg string) (*app, int, error) {
	id, err := parseID(name, arg)
	if err != nil {
		return nil, 0, err
	}
	a, err := openApp(cmd.Context(), cmd, f, stderr, false)
	if err != nil {
		return nil, 0, err
	}
	if _, ok := todos.Find(a.todos.Items(), id); !ok {
		a.Close()
		return nil, 0, usageError{msg: fmt.Sprintf("%s: no todo with id %d", name, id), hint: idHint}
	}
	return a, id, nil
}

func parseID(name, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, usageError{msg: fmt.Sprintf("%s: not a valid id: %s", name, arg), hint: idHint}
	}
	return id, nil
}

func checkTitle(name string, words []string, max int) (string, error) {
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return "", usageErrorf("%s: empty title", name)
	}
	if n := utf8.RuneCountInString(title); max > 0 && n > max {
		return "", usageErrorf("%s: title is %d characters, the limit is %d", name, n, max)
	}
	return title, nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf("usage: %s", cmd.UseLine())
	}
	return nil
}

func oneID(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return usageErrorf("usage: todo %s <id>", name)
		}
		return nil
	}
}
