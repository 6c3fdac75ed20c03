package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// options holds the internal configuration for the scribe store.
type options struct {
	storage   core.Storage
	logger    *slog.Logger
	adapter   string
	codec     core.Codec
	validator core.Validator
	observer  core.Observer
	idGen     core.IDGenerator
	clock     func() time.Time
	delays    *core.Delays
	config    map[string]interface{}
}

// Option defines a functional option for configuring scribe.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		config:  make(map[string]interface{}),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the store and its storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage allows injecting a custom storage adapter (e.g. mock, shared memory origin).
// If provided, the adapter selected by name is skipped.
func WithStorage(s core.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithAdapter selects the storage adapter by name: "fs", "memory" or "redis".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithKey sets the storage key holding the notes. Defaults to "savedNotes".
func WithKey(key string) Option {
	return func(o *options) {
		o.config["key"] = key
	}
}

// WithCodec replaces the JSON wire format.
// Stores written with another codec cannot be read by default clients.
func WithCodec(c core.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithValidator makes the store validate form data itself.
func WithValidator(v core.Validator) Option {
	return func(o *options) {
		o.validator = v
	}
}

// WithObserver attaches an operations observer (e.g. metrics.Observer).
func WithObserver(obs core.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithIDGenerator replaces the short random identifiers.
func WithIDGenerator(gen core.IDGenerator) Option {
	return func(o *options) {
		o.idGen = gen
	}
}

// WithClock replaces time.Now (useful for testing).
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithDelays sets the artificial busy duration of each operation.
func WithDelays(d core.Delays) Option {
	return func(o *options) {
		o.delays = &d
	}
}

// WithoutDelay disables the artificial busy duration.
func WithoutDelay() Option {
	return WithDelays(core.NoDelays())
}

// WithEventBuffer allows specifying the size of each subscriber buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithMustExist ensures the data directory must already exist (fs adapter).
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode writes return core.ErrReadOnly and the dev sandbox is bypassed.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithDevSafety controls the sandbox used when running via `go run`.
// By default (true) the fs adapter is re-rooted into a temporary directory so
// development runs never touch real notes.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithRedisPrefix sets the key prefix of the redis adapter.
func WithRedisPrefix(prefix string) Option {
	return func(o *options) {
		o.config["redis_prefix"] = prefix
	}
}

// WithWatcherErrorHandler registers a callback for errors of the fs watcher loop,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
