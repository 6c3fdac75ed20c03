// Package memory provides a process-local core.Storage.
//
// Storages opened on the same Origin share their keys, like pages of one browser
// origin share local storage.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/scribe/pkg/core"
)

// Origin is a shared key space.
type Origin struct {
	mu       sync.RWMutex
	values   map[string][]byte
	watchers map[chan core.StorageEvent]string
}

// NewOrigin creates an empty key space.
func NewOrigin() *Origin {
	return &Origin{
		values:   make(map[string][]byte),
		watchers: make(map[chan core.StorageEvent]string),
	}
}

// Storage is a view of an Origin.
type Storage struct {
	origin   *Origin
	readOnly bool
}

// New returns a storage on its own private origin.
func New() *Storage {
	return NewOrigin().Open()
}

// Open returns a storage sharing the origin's keys.
func (o *Origin) Open() *Storage {
	return &Storage{origin: o}
}

// OpenReadOnly returns a storage that rejects writes with core.ErrReadOnly.
func (o *Origin) OpenReadOnly() *Storage {
	return &Storage{origin: o, readOnly: true}
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.origin.mu.RLock()
	defer s.origin.mu.RUnlock()

	v, ok := s.origin.values[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return slices.Clone(v), nil
}

// Set implements core.Storage.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.readOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.origin.mu.Lock()
	defer s.origin.mu.Unlock()

	s.origin.values[key] = slices.Clone(value)

	e := core.StorageEvent{Key: key, Timestamp: time.Now().Unix()}
	for ch, pattern := range s.origin.watchers {
		if ok, _ := doublestar.Match(pattern, key); !ok {
			continue
		}
		select {
		case ch <- e:
		default:
		}
	}
	return nil
}

// Watch implements core.Watchable. Patterns use doublestar syntax.
func (s *Storage) Watch(ctx context.Context, pattern string) (<-chan core.StorageEvent, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %q", pattern)
	}

	ch := make(chan core.StorageEvent, core.DefaultEventBuffer)
	s.origin.mu.Lock()
	s.origin.watchers[ch] = pattern
	s.origin.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.origin.mu.Lock()
		delete(s.origin.watchers, ch)
		close(ch)
		s.origin.mu.Unlock()
	}()

	return ch, nil
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "memory"
}

var _ core.Storage = (*Storage)(nil)
var _ core.Watchable = (*Storage)(nil)
