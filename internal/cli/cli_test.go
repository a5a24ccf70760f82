package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
	"github.com/idilsaglam/todolist/internal/todos"
)

// isolate points every config and data lookup at fresh temp dirs and
// returns the data dir.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	for _, k := range []string{
		"TODO_DATA_DIR", "TODO_BACKEND", "TODO_KEY", "TODO_THEME", "TODO_SEED",
		"TODO_MAX_TITLE_LENGTH", "TODO_LOG_LEVEL", "TODO_LOG_FORMAT", "TODO_LOG_FILE",
		"TODO_PEBBLE_FSYNC",
	} {
		t.Setenv(k, "")
	}
	return t.TempDir()
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func persisted(t *testing.T, dir, key string) []model.Todo {
	t.Helper()
	kv, err := jsonstore.Open(dir)
	require.NoError(t, err)
	b, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	list, err := todos.Decode(b)
	require.NoError(t, err)
	return list
}

func TestNoArgsPrintsHelp(t *testing.T) {
	isolate(t)
	code, out, _ := run(t)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "todo add")
}

func TestUnknownSubcommand(t *testing.T) {
	isolate(t)
	code, _, errOut := run(t, "nope")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "unknown subcommand: nope")
}

func TestUnknownFlag(t *testing.T) {
	dir := isolate(t)
	code, _, _ := run(t, "--data-dir", dir, "ls", "--bogus")
	assert.Equal(t, ExitUsage, code)
}

func TestListSeedsWithoutWriting(t *testing.T) {
	dir := isolate(t)
	code, out, _ := run(t, "--data-dir", dir, "ls")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Read the README")
	assert.Contains(t, out, "3 pending · 1 done")
	assert.NoFileExists(t, filepath.Join(dir, todos.DefaultKey+".json"))
}

func TestListEmpty(t *testing.T) {
	dir := isolate(t)
	code, out, _ := run(t, "--data-dir", dir, "--no-seed", "ls")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "nothing to do")
}

func TestListGrouped(t *testing.T) {
	dir := isolate(t)
	code, out, _ := run(t, "--data-dir", dir, "ls", "--group")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Pending (3)")
	assert.Contains(t, out, "Done (1)")
}

func TestAddToEmptyList(t *testing.T) {
	dir := isolate(t)
	code, out, _ := run(t, "--data-dir", dir, "--no-seed", "add", "Buy", "milk")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "added #1")
	assert.Equal(t, []model.Todo{{ID: 1, Title: "Buy milk"}}, persisted(t, dir, todos.DefaultKey))
}

func TestAddPlacesNewestFirst(t *testing.T) {
	dir := isolate(t)
	require.Equal(t, ExitOK, first(run(t, "--data-dir", dir, "--no-seed", "add", "Buy milk")))
	require.Equal(t, ExitOK, first(run(t, "--data-dir", dir, "--no-seed", "add", "Walk dog")))

	assert.Equal(t, []model.Todo{
		{ID: 2, Title: "Walk dog"},
		{ID: 1, Title: "Buy milk"},
	}, persisted(t, dir, todos.DefaultKey))
}

func TestAddRejectsBadTitles(t *testing.T) {
	dir := isolate(t)

	code, _, errOut := run(t, "--data-dir", dir, "add", "   ")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "empty title")

	code, _, errOut = run(t, "--data-dir", dir, "add", "abcdefghijklmnopqrstuvwxyz0123456789")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "the limit is 30")

	code, _, _ = run(t, "--data-dir", dir, "add")
	assert.Equal(t, ExitUsage, code)
	assert.NoFileExists(t, filepath.Join(dir, todos.DefaultKey+".json"))
}

func TestDoneTogglesOnlyTarget(t *testing.T) {
	dir := isolate(t)
	code, out, _ := run(t, "--data-dir", dir, "done", "2")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "toggled #2")

	got := persisted(t, dir, todos.DefaultKey)
	want := todos.Toggle(todos.Sort(model.DefaultSeed()), 2)
	assert.Equal(t, want, got)
}

func TestDoneBadID(t *testing.T) {
	dir := isolate(t)

	code, _, errOut := run(t, "--data-dir", dir, "done", "abc")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "not a valid id: abc")

	code, _, errOut = run(t, "--data-dir", dir, "done", "99")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "no todo with id 99")
	assert.Contains(t, errOut, "todo ls")

	code, _, _ = run(t, "--data-dir", dir, "done")
	assert.Equal(t, ExitUsage, code)
}

func TestRemove(t *testing.T) {
	dir := isolate(t)
	code, out, _ := run(t, "--data-dir", dir, "rm", "3")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "removed #3")

	got := persisted(t, dir, todos.DefaultKey)
	_, ok := todos.Find(got, 3)
	assert.False(t, ok)
	assert.Len(t, got, 3)

	code, _, _ = run(t, "--data-dir", dir, "rm", "3")
	assert.Equal(t, ExitUsage, code)
}

func TestNewIDFollowsHighestRemaining(t *testing.T) {
	dir := isolate(t)
	require.Equal(t, ExitOK, first(run(t, "--data-dir", dir, "--no-seed", "add", "a")))
	require.Equal(t, ExitOK, first(run(t, "--data-dir", dir, "--no-seed", "add", "b")))
	require.Equal(t, ExitOK, first(run(t, "--data-dir", dir, "--no-seed", "rm", "1")))

	code, out, _ := run(t, "--data-dir", dir, "--no-seed", "add", "c")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "added #3")
}

func TestEditKeepsPosition(t *testing.T) {
	dir := isolate(t)
	code, out, _ := run(t, "--data-dir", dir, "edit", "2", "Write", "a", "todo")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "edited #2")

	got := persisted(t, dir, todos.DefaultKey)
	require.Len(t, got, 4)
	assert.Equal(t, model.Todo{ID: 2, Title: "Write a todo"}, got[2])

	code, _, _ = run(t, "--data-dir", dir, "edit", "2")
	assert.Equal(t, ExitUsage, code)
}

func TestWriteFailureIsNotFatal(t *testing.T) {
	isolate(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	code, out, errOut := run(t, "--data-dir", filepath.Join(blocker, "sub"), "add", "Buy milk")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "(not saved)")
	assert.Contains(t, errOut, "storage unavailable")
	assert.Contains(t, errOut, "storage write failed")
}

func TestInvalidBackend(t *testing.T) {
	dir := isolate(t)
	code, _, errOut := run(t, "--data-dir", dir, "--backend", "floppy", "ls")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "invalid backend")
}

func TestBackendsPersistAcrossRuns(t *testing.T) {
	for _, backend := range []string{"file", "sqlite", "pebble"} {
		t.Run(backend, func(t *testing.T) {
			dir := isolate(t)
			args := []string{"--data-dir", dir, "--backend", backend, "--no-seed"}
			require.Equal(t, ExitOK, first(run(t, append(args, "add", "Buy milk")...)))

			code, out, _ := run(t, append(args, "ls")...)
			require.Equal(t, ExitOK, code)
			assert.Contains(t, out, "Buy milk")
			assert.Contains(t, out, "1 pending · 0 done")
		})
	}
}

func TestMemoryBackendStartsFresh(t *testing.T) {
	isolate(t)
	require.Equal(t, ExitOK, first(run(t, "--backend", "memory", "--no-seed", "add", "gone")))
	code, out, _ := run(t, "--backend", "memory", "--no-seed", "ls")
	require.Equal(t, ExitOK, code)
	assert.NotContains(t, out, "gone")
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "todo.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
key = "FromFile"
seed = false
max_title_length = 5
`), 0o644))
	t.Setenv("TODO_DATA_DIR", dir)

	code, _, _ := run(t, "--config", cfgPath, "add", "too long")
	assert.Equal(t, ExitUsage, code)

	require.Equal(t, ExitOK, first(run(t, "--config", cfgPath, "add", "short")))
	assert.Equal(t, []model.Todo{{ID: 1, Title: "short"}}, persisted(t, dir, "FromFile"))

	t.Setenv("TODO_KEY", "FromEnv")
	require.Equal(t, ExitOK, first(run(t, "--config", cfgPath, "add", "env")))
	assert.FileExists(t, filepath.Join(dir, "FromEnv.json"))

	require.Equal(t, ExitOK, first(run(t, "--config", cfgPath, "--key", "FromFlag", "add", "flag")))
	assert.Equal(t, []model.Todo{{ID: 1, Title: "flag"}}, persisted(t, dir, "FromFlag"))
}

func TestMissingConfigFile(t *testing.T) {
	isolate(t)
	code, _, errOut := run(t, "--config", filepath.Join(t.TempDir(), "absent.toml"), "ls")
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut, "read config")
}

func TestTheme(t *testing.T) {
	isolate(t)

	code, out, _ := run(t, "theme")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "theme: light")

	code, out, _ = run(t, "--theme", "dark", "theme")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "theme: dark")

	code, out, _ = run(t, "theme", "dark")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "#32CD32")

	code, _, _ = run(t, "theme", "purple")
	assert.Equal(t, ExitUsage, code)
}

func first(code int, _, _ string) int { return code }
