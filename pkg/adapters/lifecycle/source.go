package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/scribe/pkg/core"
)

// ChangeEvents are the event types that describe a change to the collection.
// BUSY and IDLE only report operation progress.
var ChangeEvents = []core.EventType{
	core.EventCreate,
	core.EventModify,
	core.EventDelete,
	core.EventReload,
}

// Source exposes a store subscription as a lifecycle.Source.
type Source struct {
	feed  <-chan core.Event
	allow map[core.EventType]bool
	out   chan lifecycle.Event
}

// NewSource forwards the store events of the given types from feed, usually
// the channel returned by core.Store.Subscribe. Every type is forwarded when
// types is empty.
func NewSource(feed <-chan core.Event, types ...core.EventType) *Source {
	var allow map[core.EventType]bool
	if len(types) > 0 {
		allow = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			allow[t] = true
		}
	}
	return &Source{feed: feed, allow: allow, out: make(chan lifecycle.Event)}
}

// Events returns the forwarded events. It is closed once the feed closes or
// the context given to Start is done.
func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events in the background until ctx is done.
func (s *Source) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			var e core.Event
			select {
			case <-ctx.Done():
				return nil
			case next, ok := <-s.feed:
				if !ok {
					return nil
				}
				e = next
			}
			if !s.accepts(e.Type) {
				continue
			}
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	})
	return nil
}

func (s *Source) accepts(t core.EventType) bool {
	return s.allow == nil || s.allow[t]
}

var _ lifecycle.Source = (*Source)(nil)
