package todos

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
	"github.com/idilsaglam/todolist/internal/store/memstore"
)

func newTestStore(t *testing.T, kv store.KV) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	return NewStore(kv, Options{Logger: logger}), &buf
}

func persisted(t *testing.T, kv store.KV) []model.Todo {
	t.Helper()
	b, err := kv.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	list, err := Decode(b)
	require.NoError(t, err)
	return list
}

func TestLoadSeedsWhenAbsent(t *testing.T) {
	s, _ := newTestStore(t, memstore.New())
	assert.Equal(t, StateIdle, s.State())

	got := s.Load(context.Background(), []model.Todo{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}})
	assert.Equal(t, []model.Todo{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}, got)
	assert.Equal(t, StateReady, s.State())
}

func TestLoadSeedsWhenEmpty(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(context.Background(), DefaultKey, []byte(`[]`)))
	s, _ := newTestStore(t, kv)

	got := s.Load(context.Background(), model.DefaultSeed())
	assert.Len(t, got, len(model.DefaultSeed()))
	assert.Equal(t, 4, got[0].ID)
}

func TestLoadPersistedSortedDescending(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(context.Background(), DefaultKey,
		[]byte(`[{"id":1,"title":"a","completed":false},{"id":5,"title":"e","completed":true}]`)))
	s, _ := newTestStore(t, kv)

	got := s.Load(context.Background(), model.DefaultSeed())
	assert.Equal(t, []model.Todo{{ID: 5, Title: "e", Completed: true}, {ID: 1, Title: "a"}}, got)
}

func TestLoadUnreadableLeavesListEmpty(t *testing.T) {
	kv := memstore.New()
	require.NoError(t, kv.Set(context.Background(), DefaultKey, []byte(`{"broken":`)))
	s, logs := newTestStore(t, kv)

	got := s.Load(context.Background(), model.DefaultSeed())
	assert.Empty(t, got)
	assert.Contains(t, logs.String(), "persisted list is unreadable")
	assert.Equal(t, 1, kv.Writes(), "load must not overwrite the key")
}

func TestLoadReadFailureFallsBackToSeed(t *testing.T) {
	kv := memstore.New()
	kv.SetFailures(true, false)
	s, logs := newTestStore(t, kv)

	got := s.Load(context.Background(), []model.Todo{{ID: 1, Title: "seed"}})
	assert.Equal(t, []model.Todo{{ID: 1, Title: "seed"}}, got)
	assert.Contains(t, logs.String(), "storage read failed")
}

func TestMutationsFlushFullCollection(t *testing.T) {
	kv := memstore.New()
	s, _ := newTestStore(t, kv)
	ctx := context.Background()
	s.Load(ctx, nil)

	m := s.Add("Buy milk")
	require.True(t, m.Changed)
	assert.Equal(t, 1, m.ID)
	require.NoError(t, m.Flush(ctx))
	assert.Equal(t, []model.Todo{{ID: 1, Title: "Buy milk"}}, persisted(t, kv))

	require.NoError(t, s.Add("Walk dog").Flush(ctx))
	require.NoError(t, s.Toggle(2).Flush(ctx))
	require.NoError(t, s.Edit(1, "Buy oat milk").Flush(ctx))
	assert.Equal(t, []model.Todo{
		{ID: 2, Title: "Walk dog", Completed: true},
		{ID: 1, Title: "Buy oat milk"},
	}, persisted(t, kv))

	require.NoError(t, s.Remove(2).Flush(ctx))
	assert.Equal(t, []model.Todo{{ID: 1, Title: "Buy oat milk"}}, persisted(t, kv))
	assert.Equal(t, 5, kv.Writes())
}

func TestNoopMutationsDoNotFlush(t *testing.T) {
	kv := memstore.New()
	s, _ := newTestStore(t, kv)
	ctx := context.Background()
	s.Load(ctx, []model.Todo{{ID: 1, Title: "a"}})

	for _, m := range []Mutation{s.Add("   "), s.Toggle(9), s.Remove(9), s.Edit(9, "x"), s.Edit(1, ""), s.Edit(1, " a ")} {
		assert.False(t, m.Changed)
		require.NoError(t, m.Flush(ctx))
	}
	assert.Zero(t, kv.Writes())
}

func TestIDsNotReusedAfterDeletingNewest(t *testing.T) {
	s, _ := newTestStore(t, memstore.New())
	s.Load(context.Background(), nil)

	s.Add("a")
	b := s.Add("b")
	s.Remove(b.ID)
	c := s.Add("c")
	assert.Equal(t, 3, c.ID)
}

func TestHighWaterMarkIsPerStore(t *testing.T) {
	kv := memstore.New()
	ctx := context.Background()
	s, _ := newTestStore(t, kv)
	s.Load(ctx, nil)
	require.NoError(t, s.Add("a").Flush(ctx))
	b := s.Add("b")
	require.NoError(t, b.Flush(ctx))
	require.NoError(t, s.Remove(b.ID).Flush(ctx))

	fresh, _ := newTestStore(t, kv)
	fresh.Load(ctx, nil)
	assert.Equal(t, 2, fresh.Add("c").ID, "a new store recomputes ids from what is persisted")
}

func TestFlushFailureIsLoggedAndMemoryWins(t *testing.T) {
	kv := memstore.New()
	s, logs := newTestStore(t, kv)
	ctx := context.Background()
	s.Load(ctx, nil)

	kv.SetFailures(false, true)
	err := s.Add("Buy milk").Flush(ctx)
	var werr *store.WriteError
	require.True(t, errors.As(err, &werr))
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.Contains(t, logs.String(), "storage write failed")
	assert.Equal(t, []model.Todo{{ID: 1, Title: "Buy milk"}}, s.Items())

	kv.SetFailures(false, false)
	require.NoError(t, s.Toggle(1).Flush(ctx))
	assert.Equal(t, []model.Todo{{ID: 1, Title: "Buy milk", Completed: true}}, persisted(t, kv))
}

func TestMutationSnapshotIsStable(t *testing.T) {
	kv := memstore.New()
	s, _ := newTestStore(t, kv)
	ctx := context.Background()
	s.Load(ctx, nil)

	first := s.Add("a")
	s.Add("b")
	require.NoError(t, first.Flush(ctx))
	assert.Equal(t, []model.Todo{{ID: 1, Title: "a"}}, persisted(t, kv))
	assert.Equal(t, []model.Todo{{ID: 1, Title: "a"}}, first.Items())
}

// gatedKV blocks the first Set until release is closed.
type gatedKV struct {
	*memstore.Store
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGatedKV() *gatedKV {
	return &gatedKV{Store: memstore.New(), entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedKV) Set(ctx context.Context, key string, value []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.Store.Set(ctx, key, value)
}

func TestConcurrentFlushesEndOnNewest(t *testing.T) {
	kv := newGatedKV()
	s, _ := newTestStore(t, kv)
	ctx := context.Background()
	s.Load(ctx, []model.Todo{{ID: 1, Title: "a"}})

	older := s.Toggle(1)
	newer := s.Toggle(1)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); assert.NoError(t, older.Flush(ctx)) }()
	<-kv.entered
	go func() { defer wg.Done(); assert.NoError(t, newer.Flush(ctx)) }()
	close(kv.release)
	wg.Wait()

	assert.Equal(t, s.Items(), persisted(t, kv))
	assert.Equal(t, 2, kv.Writes())
}

func TestStaleFlushIsDropped(t *testing.T) {
	kv := memstore.New()
	s, logs := newTestStore(t, kv)
	ctx := context.Background()
	s.Load(ctx, nil)

	older := s.Add("a")
	newer := s.Add("b")
	require.NoError(t, newer.Flush(ctx))
	require.NoError(t, older.Flush(ctx))

	assert.Equal(t, []model.Todo{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}, persisted(t, kv))
	assert.Equal(t, 1, kv.Writes())
	assert.Contains(t, logs.String(), "skipping stale flush")
}

func TestItemsIsACopy(t *testing.T) {
	s, _ := newTestStore(t, memstore.New())
	s.Load(context.Background(), []model.Todo{{ID: 1, Title: "a"}})

	items := s.Items()
	items[0].Title = "changed"
	assert.Equal(t, "a", s.Items()[0].Title)
}

func TestUnavailableBackend(t *testing.T) {
	s, _ := newTestStore(t, store.Unavailable{Cause: errors.New("disk gone")})
	ctx := context.Background()

	got := s.Load(ctx, []model.Todo{{ID: 1, Title: "seed"}})
	assert.Len(t, got, 1)
	assert.ErrorIs(t, s.Add("x").Flush(ctx), store.ErrUnavailable)
	assert.Len(t, s.Items(), 2)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
}
