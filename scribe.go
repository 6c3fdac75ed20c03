package scribe

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/scribe/internal/platform"
	"github.com/aretw0/scribe/pkg/core"
)

// --- Types ---

// Note is a public alias for the domain entity.
type Note = core.Note

// NoteFormData is a public alias for the create/update payload.
type NoteFormData = core.NoteFormData

// Store is a public alias for the notes state container.
type Store = core.Store

// --- Configuration ---

// Option defines a functional option for configuring scribe.
type Option = platform.Option

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage adapter.
func WithStorage(s core.Storage) Option {
	return platform.WithStorage(s)
}

// WithAdapter allows specifying the storage adapter to use by name ("fs", "memory", "redis").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithKey sets the storage key holding the notes.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithCodec replaces the JSON wire format.
func WithCodec(c core.Codec) Option {
	return platform.WithCodec(c)
}

// WithValidator makes the store validate form data itself.
func WithValidator(v core.Validator) Option {
	return platform.WithValidator(v)
}

// WithObserver attaches an operations observer.
func WithObserver(obs core.Observer) Option {
	return platform.WithObserver(obs)
}

// WithIDGenerator replaces the short random identifiers.
func WithIDGenerator(gen core.IDGenerator) Option {
	return platform.WithIDGenerator(gen)
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithDelays sets the artificial busy duration of each operation.
func WithDelays(d core.Delays) Option {
	return platform.WithDelays(d)
}

// WithoutDelay disables the artificial busy duration (useful for testing).
func WithoutDelay() Option {
	return platform.WithoutDelay()
}

// WithEventBuffer allows specifying the size of each subscriber buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithMustExist ensures the data directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly enables read-only mode.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the sandbox used when running via `go run`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithRedisPrefix sets the key prefix of the redis adapter.
func WithRedisPrefix(prefix string) Option {
	return platform.WithRedisPrefix(prefix)
}

// WithWatcherErrorHandler registers a callback for watcher runtime errors.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New opens the storage at uri and loads a Store from it.
func New(ctx context.Context, uri string, opts ...Option) (*Store, error) {
	return platform.New(ctx, uri, opts...)
}

// Init opens the storage at uri without loading a Store.
func Init(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	return platform.Init(ctx, uri, opts...)
}

// FindRoot looks upwards from startDir for a scribe workspace.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
