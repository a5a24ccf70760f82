package todos

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store"
)

// DefaultKey is the key the list is persisted under.
const DefaultKey = "ToDoApp"

// State is the lifecycle of a Store.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Options configures a Store.
type Options struct {
	// Key is the store.KV key holding the collection. Defaults to DefaultKey.
	Key string
	// Logger receives read and write failures. Defaults to log.Default().
	Logger *log.Logger
}

// Store owns the in-memory list and is the only writer of its key.
// It is not safe for concurrent mutation. Flushes may run on other
// goroutines; they are serialized and a flush older than one already
// written is dropped, so the key always ends on the newest snapshot.
type Store struct {
	kv     store.KV
	key    string
	logger *log.Logger

	state State
	items []model.Todo
	// lastID is the highest id this store has handed out or loaded, so a
	// deleted newest record does not give its id back. It is not
	// persisted: a new process recomputes it from the stored list, so
	// deleting the newest record and then adding from a fresh process
	// hands that id out again.
	lastID int
	// seq numbers mutations in the order they were applied.
	seq uint64

	wmu     sync.Mutex
	written uint64 // highest seq a write was attempted for; guarded by wmu
}

// NewStore wraps kv. Call Load before mutating.
func NewStore(kv store.KV, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Store{
		kv:     kv,
		key:    opts.Key,
		logger: opts.Logger.With("key", opts.Key),
		items:  []model.Todo{},
	}
}

// Load hydrates the list. When nothing usable is persisted (absent key,
// empty collection, unreachable storage) the list starts from seed. Bytes
// that are not a todo collection are logged and leave the list empty.
// The result is sorted newest first.
func (s *Store) Load(ctx context.Context, seed []model.Todo) []model.Todo {
	s.state = StateLoading
	defer func() { s.state = StateReady }()

	b, err := s.kv.Get(ctx, s.key)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.logger.Debug("nothing persisted, seeding", "seed", len(seed))
		s.set(seed)
	case err != nil:
		s.logger.Error("storage read failed, using defaults", "err", &store.ReadError{Key: s.key, Err: err})
		s.set(seed)
	default:
		list, err := Decode(b)
		if err != nil {
			s.logger.Error("persisted list is unreadable", "err", err, "size", len(b))
			s.set(nil)
			break
		}
		if len(list) == 0 {
			s.set(seed)
			break
		}
		s.logger.Debug("loaded", "items", len(list))
		s.set(list)
	}
	return s.Items()
}

func (s *Store) set(list []model.Todo) {
	s.items = Sort(list)
	if s.items == nil {
		s.items = []model.Todo{}
	}
	if n := NextID(s.items) - 1; n > s.lastID {
		s.lastID = n
	}
}

// State reports where the store is in its lifecycle.
func (s *Store) State() State { return s.state }

// Key is the persisted key.
func (s *Store) Key() string { return s.key }

// Items returns a copy of the current list.
func (s *Store) Items() []model.Todo { return slices.Clone(s.items) }

// Add prepends a record titled title. Blank titles change nothing.
func (s *Store) Add(title string) Mutation {
	id := NextID(s.items)
	if id <= s.lastID {
		id = s.lastID + 1
	}
	m := s.apply(insert(s.items, id, title))
	if m.Changed {
		s.lastID = id
		m.ID = id
	}
	return m
}

// Toggle flips completed on id.
func (s *Store) Toggle(id int) Mutation {
	m := s.apply(Toggle(s.items, id))
	m.ID = id
	return m
}

// Remove deletes id.
func (s *Store) Remove(id int) Mutation {
	m := s.apply(Remove(s.items, id))
	m.ID = id
	return m
}

// Edit retitles id.
func (s *Store) Edit(id int, title string) Mutation {
	m := s.apply(Edit(s.items, id, title))
	m.ID = id
	return m
}

// apply installs next if the list function returned a new slice.
// The list functions return their input unchanged on a no-op.
func (s *Store) apply(next []model.Todo) Mutation {
	if sameSlice(next, s.items) {
		return Mutation{}
	}
	s.items = next
	s.seq++
	return Mutation{
		Changed:  true,
		seq:      s.seq,
		snapshot: slices.Clone(next),
		store:    s,
	}
}

func sameSlice(a, b []model.Todo) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// Mutation is the outcome of one list operation. Flush writes the list as
// it was right after the operation.
type Mutation struct {
	// Changed is false when the operation was a no-op.
	Changed bool
	// ID is the record the operation targeted; for Add, the new id.
	ID int

	seq      uint64
	snapshot []model.Todo
	store    *Store
}

// Items is the list right after the operation, or nil for a no-op.
func (m Mutation) Items() []model.Todo { return slices.Clone(m.snapshot) }

// Flush re-serializes the whole snapshot and overwrites the key. A failure
// is logged and returned as a *store.WriteError; it is not retried and the
// in-memory list stays authoritative. Flushing a no-op does nothing, and
// neither does flushing a mutation older than the last one flushed.
func (m Mutation) Flush(ctx context.Context) error {
	if !m.Changed || m.store == nil {
		return nil
	}
	return m.store.write(ctx, m.seq, m.snapshot)
}

func (s *Store) write(ctx context.Context, seq uint64, list []model.Todo) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if seq <= s.written {
		s.logger.Debug("skipping stale flush", "seq", seq, "written", s.written)
		return nil
	}
	s.written = seq

	b, err := Encode(list)
	if err == nil {
		err = s.kv.Set(ctx, s.key, b)
	}
	if err != nil {
		werr := &store.WriteError{Key: s.key, Err: err}
		s.logger.Error("storage write failed", "err", werr, "items", len(list))
		return werr
	}
	s.logger.Debug("flushed", "items", len(list), "size", len(b))
	return nil
}
