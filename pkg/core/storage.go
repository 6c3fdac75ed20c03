package core

import "context"

// DefaultKey is the storage key holding the serialized note collection.
const DefaultKey = "savedNotes"

// Storage is a durable key-value slot shared by every Store opened on it.
// Adhering to this interface keeps the Store independent of the underlying
// persistence mechanism (local file, in-process map, remote endpoint).
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// StorageEvent reports a change to a key made through the storage, possibly by another process.
type StorageEvent struct {
	Key       string
	Timestamp int64 // Unix timestamp
}

// Watchable defines an interface for storages that can report external changes.
type Watchable interface {
	// Watch emits an event whenever a key matching pattern changes.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context, pattern string) (<-chan StorageEvent, error)
}

// Codec converts the note collection to and from its stored representation.
type Codec interface {
	// Encode serializes the full collection.
	Encode(notes []Note) ([]byte, error)

	// Decode parses a stored value. Records that cannot be decoded are skipped
	// and reported in skipped; err is only set when the value as a whole is unusable.
	Decode(data []byte) (notes []Note, skipped []error, err error)
}

// Validator checks form data before it reaches a mutation.
type Validator interface {
	Validate(data NoteFormData) error
}
