package task

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskpad/internal/core/kv"
	"github.com/colonyops/taskpad/pkg/randid"
)

// StorageKey is the single key the task list is persisted under.
const StorageKey = "tasks"

// Store owns the in-memory task list and mirrors it to durable storage
// after every mutation. The list is ordered newest first: Create
// prepends, and every other operation preserves the relative order of
// untouched tasks.
//
// Mutations are synchronous against the in-memory list; the write-back
// to storage is fire-and-forget. Each write-back carries a snapshot of
// the full list taken at mutation time, and a sequence check ensures a
// stale snapshot never overwrites a newer one regardless of goroutine
// scheduling. Write failures are logged and never surfaced to the
// mutating caller. Call Close before process exit so the last write-back
// defines durable state.
type Store struct {
	kv  kv.KV
	key string
	log zerolog.Logger

	mu    sync.Mutex
	tasks []Task
	seq   uint64

	wmu     sync.Mutex
	wg      sync.WaitGroup
	written uint64
}

// NewStore creates a task store persisting through the given KV.
func NewStore(store kv.KV, log zerolog.Logger) *Store {
	return &Store{
		kv:    store,
		key:   StorageKey,
		log:   log,
		tasks: []Task{},
	}
}

// Load reads the persisted task list into memory. A missing, unreadable,
// or malformed blob falls back to an empty list; startup never fails on
// bad state. Load finishes with one normalizing write-back.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []Task{}

	data, ok, err := s.kv.Read(ctx, s.key)
	switch {
	case err != nil:
		s.log.Warn().Err(err).Str("key", s.key).Msg("read persisted tasks, starting empty")
	case ok:
		var tasks []Task
		if err := json.Unmarshal(data, &tasks); err != nil {
			s.log.Debug().Err(err).Str("key", s.key).Msg("malformed task blob, starting empty")
		} else if tasks != nil {
			s.tasks = tasks
		}
	}

	s.log.Debug().Int("count", len(s.tasks)).Msg("loaded tasks")
	s.persistLocked()
}

// Create prepends a new task with the trimmed text and a fresh ID.
// Returns ErrEmptyText when the trimmed text is empty.
func (s *Store) Create(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:   randid.Generate(IDLength),
		Text: text,
	}
	s.tasks = append([]Task{t}, s.tasks...)

	s.persistLocked()
	return t, nil
}

// Edit replaces the text of the task with the given id, preserving its
// position and completion state. Unknown ids are a no-op. Returns
// ErrEmptyText when the trimmed text is empty; the list is unchanged.
func (s *Store) Edit(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Text = text
			s.persistLocked()
			return nil
		}
	}

	return nil
}

// Toggle flips the completion state of the task with the given id.
// Unknown ids are a no-op.
func (s *Store) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.persistLocked()
			return
		}
	}
}

// Delete removes the task with the given id. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}

	return Task{}, false
}

// Tasks returns a copy of the current list, newest first.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Persist schedules a write-back of the current list. Mutations call
// this automatically; it is exposed for callers that want to force a
// mirror of the in-memory state.
func (s *Store) Persist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked()
}

// Flush blocks until all scheduled write-backs have finished.
func (s *Store) Flush() {
	s.wg.Wait()
}

// Close flushes pending write-backs. The store must not be mutated
// afterwards.
func (s *Store) Close() {
	s.Flush()
}

// persistLocked snapshots the list and hands it to a write-back
// goroutine. Callers must hold s.mu, which makes the snapshot and its
// sequence number consistent with mutation order.
func (s *Store) persistLocked() {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		// A []Task cannot fail to marshal; keep the guard for the log.
		s.log.Error().Err(err).Msg("marshal tasks")
		return
	}

	s.seq++
	seq := s.seq

	s.wg.Add(1)
	go s.writeBack(seq, data)
}

// writeBack mirrors one snapshot to storage. Writes are serialized by
// wmu; a snapshot older than the last written one is superseded and
// skipped.
func (s *Store) writeBack(seq uint64, data []byte) {
	defer s.wg.Done()

	s.wmu.Lock()
	defer s.wmu.Unlock()

	if seq <= s.written {
		return
	}
	s.written = seq

	if err := s.kv.Write(context.Background(), s.key, data); err != nil {
		s.log.Error().Err(err).Str("key", s.key).Msg("task write-back failed")
	}
}
