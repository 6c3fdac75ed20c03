package core

import (
	"log/slog"
	"time"
)

// Delays holds the artificial busy duration of each operation.
// A zero duration disables the delay for that operation.
type Delays struct {
	Add    time.Duration
	Update time.Duration
	Delete time.Duration
}

// DefaultDelays returns the delays used when none are configured.
func DefaultDelays() Delays {
	return Delays{
		Add:    500 * time.Millisecond,
		Update: 500 * time.Millisecond,
		Delete: 300 * time.Millisecond,
	}
}

// NoDelays disables the artificial delay of every operation.
func NoDelays() Delays {
	return Delays{}
}

// Observer receives operational measurements from the Store (e.g. metrics).
type Observer interface {
	// ObserveOperation is called once per mutation attempt.
	ObserveOperation(op string, elapsed time.Duration, err error)
	// ObserveCollection is called whenever the collection size may have changed.
	ObserveCollection(size int)
	// ObserveBusy is called on every busy flag transition.
	ObserveBusy(busy bool)
}

// Config holds the configuration of a Store.
type Config struct {
	Key         string           // Storage key. Defaults to DefaultKey.
	Codec       Codec            // Required.
	Delays      Delays           // Artificial busy duration per operation.
	IDGenerator IDGenerator      // Defaults to ShortIDGenerator.
	Clock       func() time.Time // Defaults to time.Now.
	Validator   Validator        // Optional. Form validation normally happens before the Store is called.
	Observer    Observer         // Optional.
	Logger      *slog.Logger     // Defaults to a discarding logger.
	EventBuffer int              // Per-subscriber buffer. Zero means DefaultEventBuffer.
}

func (c Config) withDefaults() Config {
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.IDGenerator == nil {
		c.IDGenerator = ShortIDGenerator
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Observer == nil {
		c.Observer = nopObserver{}
	}
	return c
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, time.Duration, error) {}
func (nopObserver) ObserveCollection(int)                        {}
func (nopObserver) ObserveBusy(bool)                             {}
