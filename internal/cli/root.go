// Package cli is the todo command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type flags struct {
	configPath string
	dataDir    string
	backend    string
	key        string
	theme      string
	logLevel   string
	logFormat  string
	noSeed     bool
}

// Run executes one invocation and returns its exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	styles := ui.NewStyles(ui.Light)
	var uerr usageError
	if errors.As(err, &uerr) {
		if uerr.msg != "" {
			styles.Fail(stderr, uerr.msg)
		}
		if uerr.hint != "" {
			fmt.Fprintln(stderr, styles.Muted.Render(uerr.hint))
		}
		return ExitUsage
	}
	styles.Fail(stderr, err.Error())
	return ExitError
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny todo list",
		Long: `todo keeps a short list of things to do.

The list lives in one key of a local store and is rewritten in full after
every change. Run "todo tui" for the interactive screen.`,
		Example: `  todo add "Buy milk"
  todo ls --group
  todo done 2
  todo edit 2 Buy oat milk
  todo rm 3`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{msg: "unknown subcommand: " + args[0], hint: `Run "todo --help" for usage.`}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return usageError{}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{msg: err.Error(), hint: fmt.Sprintf("Run %q for usage.", cmd.CommandPath()+" --help")}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (toml, yaml or json)")
	pf.StringVar(&f.dataDir, "data-dir", "", "directory holding the store")
	pf.StringVar(&f.backend, "backend", "", "storage backend: file|sqlite|pebble|memory")
	pf.StringVar(&f.key, "key", "", "storage key holding the list")
	pf.StringVar(&f.theme, "theme", "", "color theme: light|dark")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&f.logFormat, "log-format", "", "log format: text|json|logfmt")
	pf.BoolVar(&f.noSeed, "no-seed", false, "start from an empty list instead of the sample todos")

	root.AddCommand(
		newListCmd(f, stderr),
		newAddCmd(f, stderr),
		newDoneCmd(f, stderr),
		newRemoveCmd(f, stderr),
		newEditCmd(f, stderr),
		newTUICmd(f, stderr),
		newThemeCmd(f, stderr),
	)
	return root
}
