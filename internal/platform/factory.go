package platform

import (
	"context"

	"github.com/aretw0/scribe/pkg/codec"
	"github.com/aretw0/scribe/pkg/core"
)

// New opens the storage and loads a Store from it.
//
//	store, err := scribe.New(ctx, "./.scribe", scribe.WithoutDelay())
func New(ctx context.Context, uri string, opts ...Option) (*core.Store, error) {
	o := applyOptions(opts)

	storage, err := initStorage(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	return core.NewStore(ctx, storage, storeConfig(o))
}

func storeConfig(o *options) core.Config {
	cfg := core.Config{
		Codec:       o.codec,
		Delays:      core.DefaultDelays(),
		IDGenerator: o.idGen,
		Clock:       o.clock,
		Validator:   o.validator,
		Observer:    o.observer,
		Logger:      o.logger,
	}
	if cfg.Codec == nil {
		cfg.Codec = codec.NewJSON()
	}
	if o.delays != nil {
		cfg.Delays = *o.delays
	}
	if key, ok := o.config["key"].(string); ok {
		cfg.Key = key
	}
	if size, ok := o.config["event_buffer"].(int); ok {
		cfg.EventBuffer = size
	}
	return cfg
}
