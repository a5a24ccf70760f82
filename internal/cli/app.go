package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/logging"
	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/store/memstore"
	"github.com/idilsaglam/todolist/internal/store/pebblestore"
	"github.com/idilsaglam/todolist/internal/store/sqlitestore"
	"github.com/idilsaglam/todolist/internal/todos"
	"github.com/idilsaglam/todolist/internal/ui"
)

// app is everything one command invocation needs.
type app struct {
	cfg    config.Config
	logger *log.Logger
	styles ui.Styles
	kv     store.KV
	todos  *todos.Store

	closers []io.Closer
}

// loadConfig resolves defaults, then the config file, then TODO_* env,
// then flags that were set explicitly.
func loadConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	path := f.configPath
	if path == "" {
		path = config.FindUserFile()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	config.FromEnv(&cfg)

	fl := cmd.Flags()
	if fl.Changed("data-dir") {
		cfg.DataDir = f.dataDir
	}
	if fl.Changed("backend") {
		cfg.Backend = f.backend
	}
	if fl.Changed("key") {
		cfg.Key = f.key
	}
	if fl.Changed("theme") {
		cfg.Theme = f.theme
	}
	if fl.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if fl.Changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if f.noSeed {
		cfg.Seed = false
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, usageErrorf("config: %v", err)
	}
	return cfg, nil
}

// openApp loads config, builds the logger, opens the backend and hydrates
// the list. When toFile is set, logs go to a file so they don't draw over
// the TUI. A backend that fails to open is logged and replaced with
// store.Unavailable; the list then starts from the seed and writes fail
// softly.
func openApp(ctx context.Context, cmd *cobra.Command, f *flags, stderr io.Writer, toFile bool) (*app, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}
	theme, err := ui.ThemeByName(cfg.Theme)
	if err != nil {
		return nil, usageErrorf("%v", err)
	}

	a := &app{cfg: cfg, styles: ui.NewStyles(theme)}
	logOpts := logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Timestamps: cfg.Logging.Timestamps,
		Prefix:     "todo",
	}
	logPath := cfg.Logging.File
	if toFile && logPath == "" && cfg.DataDir != "" {
		logPath = filepath.Join(cfg.DataDir, "todo.log")
	}
	switch {
	case logPath != "":
		logger, closer, err := logging.OpenFile(logPath, logOpts)
		if err != nil {
			if toFile {
				a.logger = logging.New(io.Discard, logOpts)
				a.styles.Fail(stderr, "logging disabled: "+err.Error())
				break
			}
			a.logger = logging.New(stderr, logOpts)
			a.logger.Warn("log file unavailable, using stderr", "err", err)
			break
		}
		a.logger = logger
		a.closers = append(a.closers, closer)
	default:
		a.logger = logging.New(stderr, logOpts)
	}

	a.kv = openKV(cfg, a.logger)
	a.closers = append(a.closers, a.kv)

	a.todos = todos.NewStore(a.kv, todos.Options{Key: cfg.Key, Logger: a.logger.WithPrefix("todos")})
	var seed []model.Todo
	if cfg.Seed {
		seed = model.DefaultSeed()
	}
	a.todos.Load(ctx, seed)
	return a, nil
}

func openKV(cfg config.Config, logger *log.Logger) store.KV {
	var (
		kv  store.KV
		err error
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		kv, err = sqlitestore.Open(filepath.Join(cfg.DataDir, sqlitestore.FileName), logger)
	case config.BackendPebble:
		var mode pebblestore.FsyncMode
		mode, err = pebblestore.ParseFsyncMode(cfg.Pebble.Fsync)
		if err == nil {
			kv, err = pebblestore.Open(pebblestore.Options{
				DataDir: filepath.Join(cfg.DataDir, "pebble"),
				Fsync:   mode,
			})
		}
	case config.BackendMemory:
		kv = memstore.New()
	default:
		kv, err = jsonstore.Open(cfg.DataDir)
	}
	if err != nil {
		logger.Error("storage unavailable", "backend", cfg.Backend, "err", err)
		return store.Unavailable{Cause: err}
	}
	logger.Debug("storage opened", "backend", cfg.Backend, "data_dir", cfg.DataDir)
	return kv
}

func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = fmt.Errorf("close: %w", err)
		}
	}
	return first
}
