package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Store owns the canonical in-memory list of notes and mirrors it to a Storage key.
//
// Every mutation follows the same sequence: the busy flag is raised, the
// artificial delay elapses, the collection is changed and fully re-serialized
// under the store lock, and the busy flag is lowered.
type Store struct {
	storage Storage
	cfg     Config
	broker  *broker

	mu            sync.RWMutex
	notes         []Note
	lastPersisted []byte
	generation    uint64 // bumped whenever lastPersisted changes
	lastError     error

	busyMu   sync.Mutex
	inFlight int
}

// NewStore opens a Store on storage and loads the collection stored under cfg.Key.
// Malformed stored data is logged and treated as absent.
func NewStore(ctx context.Context, storage Storage, cfg Config) (*Store, error) {
	if storage == nil {
		return nil, errors.New("storage cannot be nil")
	}
	if cfg.Codec == nil {
		return nil, errors.New("codec cannot be nil")
	}
	cfg = cfg.withDefaults()

	s := &Store{
		storage: storage,
		cfg:     cfg,
		broker:  newBroker(cfg.EventBuffer, cfg.Logger),
	}

	data, notes, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.notes = notes
	s.lastPersisted = data
	s.cfg.Observer.ObserveCollection(len(notes))

	s.cfg.Logger.Debug("store initialized", "key", cfg.Key, "notes", len(notes))
	return s, nil
}

// load reads and decodes the stored collection. Only storage I/O failures are returned.
func (s *Store) load(ctx context.Context) ([]byte, []Note, error) {
	data, err := s.storage.Get(ctx, s.cfg.Key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %q: %w", s.cfg.Key, err)
	}

	decoded, skipped, err := s.cfg.Codec.Decode(data)
	if err != nil {
		s.cfg.Logger.Warn("ignoring malformed stored notes", "key", s.cfg.Key, "error", err)
		return data, nil, nil
	}
	for _, e := range skipped {
		s.cfg.Logger.Warn("skipping malformed note record", "key", s.cfg.Key, "error", e)
	}

	seen := make(map[string]struct{}, len(decoded))
	notes := make([]Note, 0, len(decoded))
	for _, n := range decoded {
		if _, dup := seen[n.ID]; dup {
			s.cfg.Logger.Warn("skipping duplicate note id", "key", s.cfg.Key, "id", n.ID)
			continue
		}
		seen[n.ID] = struct{}{}
		notes = append(notes, n)
	}
	return data, notes, nil
}

// Notes returns a copy of the collection in insertion order.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Get returns the note with the given id.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.notes[i], true
	}
	return Note{}, false
}

// IsLoading reports whether an operation is in progress.
func (s *Store) IsLoading() bool {
	s.busyMu.Lock()
	defer s.busyMu.Unlock()
	return s.inFlight > 0
}

// Key returns the storage key the store mirrors to.
func (s *Store) Key() string {
	return s.cfg.Key
}

// Subscribe returns a feed of state changes. The channel is closed when ctx is done.
// Events are dropped for subscribers whose buffer is full.
func (s *Store) Subscribe(ctx context.Context) <-chan Event {
	return s.broker.subscribe(ctx)
}

// AddNote appends a new note built from data and persists the collection.
func (s *Store) AddNote(ctx context.Context, data NoteFormData) (Note, error) {
	if err := s.validate(data); err != nil {
		return Note{}, err
	}

	var created Note
	_, err := s.mutate(ctx, "add", s.cfg.Delays.Add, func() (Event, bool) {
		now := s.now()
		created = Note{
			ID:        s.cfg.IDGenerator(),
			Title:     data.Title,
			Content:   data.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.notes = append(s.notes, created)
		return Event{Type: EventCreate, ID: created.ID}, true
	})
	if err != nil && !errors.Is(err, ErrPersist) {
		return Note{}, err
	}
	return created, err
}

// UpdateNote replaces the title and content of the note with the given id.
// A missing id is not an error: the call is a no-op and reports false.
func (s *Store) UpdateNote(ctx context.Context, id string, data NoteFormData) (bool, error) {
	if err := s.validate(data); err != nil {
		return false, err
	}

	return s.mutate(ctx, "update", s.cfg.Delays.Update, func() (Event, bool) {
		i := s.indexOf(id)
		if i < 0 {
			return Event{}, false
		}
		n := &s.notes[i]
		n.Title = data.Title
		n.Content = data.Content
		n.UpdatedAt = s.nextUpdate(n.UpdatedAt)
		return Event{Type: EventModify, ID: id}, true
	})
}

// DeleteNote removes the note with the given id.
// A missing id is not an error: the call is a no-op and reports false.
func (s *Store) DeleteNote(ctx context.Context, id string) (bool, error) {
	return s.mutate(ctx, "delete", s.cfg.Delays.Delete, func() (Event, bool) {
		i := s.indexOf(id)
		if i < 0 {
			return Event{}, false
		}
		s.notes = slices.Delete(s.notes, i, i+1)
		return Event{Type: EventDelete, ID: id}, true
	})
}

// AddNoteAsync runs AddNote in the background.
func (s *Store) AddNoteAsync(ctx context.Context, data NoteFormData) *Task[Note] {
	return runTask(ctx, func(ctx context.Context) (Note, error) {
		return s.AddNote(ctx, data)
	})
}

// UpdateNoteAsync runs UpdateNote in the background.
func (s *Store) UpdateNoteAsync(ctx context.Context, id string, data NoteFormData) *Task[bool] {
	return runTask(ctx, func(ctx context.Context) (bool, error) {
		return s.UpdateNote(ctx, id, data)
	})
}

// DeleteNoteAsync runs DeleteNote in the background.
func (s *Store) DeleteNoteAsync(ctx context.Context, id string) *Task[bool] {
	return runTask(ctx, func(ctx context.Context) (bool, error) {
		return s.DeleteNote(ctx, id)
	})
}

// Reload re-reads the storage key and replaces the in-memory collection.
// It reports false when the stored value is the one this store last wrote or read,
// or when this store wrote again while the value was being read: that write
// already superseded what was read.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	data, notes, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if s.generation != gen || bytes.Equal(data, s.lastPersisted) {
		s.mu.Unlock()
		return false, nil
	}
	s.notes = notes
	s.lastPersisted = data
	s.generation++
	size := len(notes)
	s.mu.Unlock()

	s.cfg.Observer.ObserveCollection(size)
	s.broker.publish(Event{Type: EventReload, Timestamp: time.Now().Unix()})
	s.cfg.Logger.Info("notes reloaded from storage", "key", s.cfg.Key, "notes", size)
	return true, nil
}

// Follow reloads the collection whenever the storage reports an external change
// to the store key. It blocks until ctx is done.
func (s *Store) Follow(ctx context.Context) error {
	w, ok := s.storage.(Watchable)
	if !ok {
		return errors.New("storage does not support watching")
	}

	events, err := w.Watch(ctx, s.cfg.Key)
	if err != nil {
		return fmt.Errorf("failed to watch %q: %w", s.cfg.Key, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			s.cfg.Logger.Debug("storage change", "key", e.Key)
			if _, err := s.Reload(ctx); err != nil {
				s.cfg.Logger.Warn("reload failed", "key", s.cfg.Key, "error", err)
			}
		}
	}
}

// mutate runs fn between the busy transitions. fn runs under the store lock and
// reports whether it changed the collection; only changes are persisted and published.
func (s *Store) mutate(ctx context.Context, op string, delay time.Duration, fn func() (Event, bool)) (bool, error) {
	start := time.Now()
	s.beginBusy()
	defer s.endBusy()

	if err := wait(ctx, delay); err != nil {
		s.cfg.Observer.ObserveOperation(op, time.Since(start), err)
		return false, err
	}

	s.mu.Lock()
	event, changed := fn()
	var err error
	if changed {
		// The change is already applied, so the write must not be abandoned half way.
		err = s.persistLocked(context.WithoutCancel(ctx))
	}
	size := len(s.notes)
	s.mu.Unlock()

	if changed {
		event.Timestamp = time.Now().Unix()
		s.broker.publish(event)
		s.cfg.Observer.ObserveCollection(size)
	}
	s.cfg.Observer.ObserveOperation(op, time.Since(start), err)
	return changed, err
}

func (s *Store) persistLocked(ctx context.Context) error {
	data, err := s.cfg.Codec.Encode(s.notes)
	if err == nil {
		err = s.storage.Set(ctx, s.cfg.Key, data)
	}
	s.lastError = err
	if err != nil {
		s.cfg.Logger.Error("failed to persist notes", "key", s.cfg.Key, "notes", len(s.notes), "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.lastPersisted = data
	s.generation++
	return nil
}

func (s *Store) validate(data NoteFormData) error {
	if s.cfg.Validator == nil {
		return nil
	}
	err := s.cfg.Validator.Validate(data)
	if err != nil && !errors.Is(err, ErrValidation) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return err
}

func (s *Store) beginBusy() {
	s.busyMu.Lock()
	s.inFlight++
	first := s.inFlight == 1
	s.busyMu.Unlock()

	if first {
		s.cfg.Observer.ObserveBusy(true)
		s.broker.publish(Event{Type: EventBusy, Timestamp: time.Now().Unix()})
	}
}

func (s *Store) endBusy() {
	s.busyMu.Lock()
	s.inFlight--
	last := s.inFlight == 0
	s.busyMu.Unlock()

	if last {
		s.cfg.Observer.ObserveBusy(false)
		s.broker.publish(Event{Type: EventIdle, Timestamp: time.Now().Unix()})
	}
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n Note) bool { return n.ID == id })
}

// now returns the current time at the resolution of the stored representation.
func (s *Store) now() time.Time {
	return s.cfg.Clock().UTC().Truncate(time.Millisecond)
}

// nextUpdate returns a timestamp strictly after prev.
func (s *Store) nextUpdate(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
