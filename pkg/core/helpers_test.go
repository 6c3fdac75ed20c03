package core_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/codec"
	"github.com/aretw0/scribe/pkg/core"
)

// fixedClock returns the same instant until advanced.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// failingStorage rejects every write.
type failingStorage struct {
	*memory.Storage
	err error
}

func (s *failingStorage) Set(ctx context.Context, key string, value []byte) error {
	return s.err
}

var errQuota = errors.New("quota exceeded")

func testConfig() core.Config {
	return core.Config{
		Codec:  codec.NewJSON(),
		Delays: core.NoDelays(),
	}
}

// tb is satisfied by both *testing.T and *rapid.T.
type tb interface {
	Helper()
	require.TestingT
}

func newTestStore(t tb, storage core.Storage, mutate ...func(*core.Config)) *core.Store {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	store, err := core.NewStore(context.Background(), storage, cfg)
	require.NoError(t, err)
	return store
}

// recordingObserver keeps every busy transition.
type recordingObserver struct {
	mu    sync.Mutex
	busy  []bool
	ops   []string
	errs  []error
	sizes []int
}

func (o *recordingObserver) ObserveOperation(op string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, op)
	o.errs = append(o.errs, err)
}

func (o *recordingObserver) ObserveCollection(size int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sizes = append(o.sizes, size)
}

func (o *recordingObserver) ObserveBusy(busy bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.busy = append(o.busy, busy)
}

func (o *recordingObserver) transitions() []bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]bool(nil), o.busy...)
}

// gatedStorage holds the next Get after it has read the stored value,
// until release is closed.
type gatedStorage struct {
	core.Storage

	mu      sync.Mutex
	armed   bool
	reached chan struct{}
	release chan struct{}
}

func (s *gatedStorage) arm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = true
	s.reached = make(chan struct{})
	s.release = make(chan struct{})
}

func (s *gatedStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Storage.Get(ctx, key)

	s.mu.Lock()
	armed := s.armed
	s.armed = false
	reached, release := s.reached, s.release
	s.mu.Unlock()

	if armed {
		close(reached)
		<-release
	}
	return data, err
}

// storedIDs decodes the ids currently persisted under the default key.
func storedIDs(t tb, storage core.Storage) []string {
	t.Helper()
	raw, err := storage.Get(context.Background(), core.DefaultKey)
	require.NoError(t, err)
	notes, _, err := codec.NewJSON().Decode(raw)
	require.NoError(t, err)
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}

func noteIDs(notes []core.Note) []string {
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}
	return ids
}
