package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/adapters/redis"
	"github.com/aretw0/scribe/pkg/core"
)

// Init opens the storage selected by the options.
// The 'uri' argument is adapter-specific: a directory for "fs", a redis:// URL
// for "redis", ignored for "memory".
func Init(ctx context.Context, uri string, opts ...Option) (core.Storage, error) {
	return initStorage(ctx, uri, applyOptions(opts))
}

func initStorage(ctx context.Context, uri string, o *options) (core.Storage, error) {
	if o.storage != nil {
		return o.storage, nil
	}

	switch o.adapter {
	case "fs":
		s := initFS(uri, o)
		if err := s.Initialize(ctx); err != nil {
			return nil, err
		}
		return s, nil
	case "memory":
		s := memory.NewOrigin()
		if readOnly, _ := o.config["read_only"].(bool); readOnly {
			return s.OpenReadOnly(), nil
		}
		return s.Open(), nil
	case "redis":
		prefix, _ := o.config["redis_prefix"].(string)
		s, err := redis.Open(ctx, redis.Config{
			URL:    uri,
			Prefix: prefix,
			Logger: o.logger,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS resolves the data directory and builds the filesystem adapter.
func initFS(path string, o *options) *fs.Storage {
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Read-only mode is inherently safe.
	bypassSafety := isReadOnly || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveDataPath(path, useTemp)

	if o.logger != nil && useTemp {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	} else if o.logger != nil && IsDevRun() && !isReadOnly {
		o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
	}

	return fs.NewStorage(fs.Config{
		Path:         resolvedPath,
		MustExist:    mustExist,
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
}
