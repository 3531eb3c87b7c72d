package platform

import (
	"context"
	"fmt"

	"github.com/aretw0/wasi/pkg/adapters/fs"
	"github.com/aretw0/wasi/pkg/adapters/memory"
	"github.com/aretw0/wasi/pkg/adapters/redis"
	"github.com/aretw0/wasi/pkg/core"
)

// Init prepares the durable slot described by the options.
// The 'uri' argument is adapter-specific: a file or directory path for 'fs',
// a host:port address for 'redis' (unless WithRedis sets one), ignored for 'memory'.
//
// It returns the initialized core.Repository.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initRepository(uri, o)
}

func initRepository(uri string, o *options) (core.Repository, error) {
	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Select the adapter
	var repo core.Repository
	var err error

	switch o.adapter {
	case AdapterFS, "":
		repo, err = initFS(uri, o)
	case AdapterRedis:
		repo, err = initRedis(uri, o)
	case AdapterMemory:
		repo = memory.NewRepository()
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownAdapter, o.adapter)
	}
	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		if c, ok := repo.(interface{ Close() error }); ok {
			_ = c.Close()
		}
		return nil, err
	}

	return repo, nil
}

// initFS handles path resolution and dev safety for the filesystem adapter.
func initFS(path string, o *options) (core.Repository, error) {
	isReadOnly := o.flag("read_only")
	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Bypass Safety if:
	// 1. ReadOnly is active (inherently safe)
	// 2. User explicitly disabled DevSafety
	bypassSafety := isReadOnly || !devSafety

	useTemp := o.flag("temp_dir") || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveStorePath(path, useTemp)

	if IsDevRun() && o.logger != nil {
		if bypassSafety {
			if isReadOnly {
				o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
			} else {
				o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
			}
		} else {
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolvedPath)
		}
	}
	if o.logger != nil && useTemp && resolvedPath != path {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	}

	serializers := make(map[string]fs.Serializer, len(o.serializers))
	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			if o.logger != nil {
				o.logger.Warn("invalid serializer type ignored", "ext", ext, "expected", "fs.Serializer")
			}
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		serializers[ext] = serializer
	}

	return fs.NewRepository(fs.Config{
		Path:        resolvedPath,
		MustExist:   o.flag("must_exist"),
		ReadOnly:    isReadOnly,
		Logger:      o.logger,
		Serializers: serializers,
	})
}

// initRedis builds the redis adapter. WithRedis settings win over the URI.
func initRedis(uri string, o *options) (core.Repository, error) {
	addr := o.str("redis_addr")
	if addr == "" {
		addr = uri
	}
	db, _ := o.config["redis_db"].(int)

	return redis.NewRepository(redis.Config{
		Addr:     addr,
		Password: o.str("redis_password"),
		DB:       db,
		Key:      o.str("redis_key"),
		ReadOnly: o.flag("read_only"),
		Logger:   o.logger,
	})
}
