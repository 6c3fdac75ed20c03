package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key         string `json:"key"`
	Notes       int    `json:"notes"`
	IsLoading   bool   `json:"is_loading"`
	InFlight    int    `json:"in_flight"`
	Subscribers int    `json:"subscribers"`
	StorageType string `json:"storage_type"`
	LastError   string `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	notes := len(s.notes)
	var lastError string
	if s.lastError != nil {
		lastError = s.lastError.Error()
	}
	s.mu.RUnlock()

	s.busyMu.Lock()
	inFlight := s.inFlight
	s.busyMu.Unlock()

	storageType := "storage"
	// Try to get component type if storage implements introspection.Component
	if comp, ok := s.storage.(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	return StoreState{
		Key:         s.cfg.Key,
		Notes:       notes,
		IsLoading:   inFlight > 0,
		InFlight:    inFlight,
		Subscribers: s.broker.len(),
		StorageType: storageType,
		LastError:   lastError,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
