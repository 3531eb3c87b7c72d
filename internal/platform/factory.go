package platform

import (
	"context"

	"github.com/aretw0/wasi/pkg/core"
)

// New opens the knowledge store and starts a session over it.
//
//	s, err := wasi.New(".wasi/knowledge.json", wasi.WithLogger(logger))
//
// The URI argument is adapter-specific (file path for 'fs', address for 'redis').
func New(uri string, opts ...Option) (*core.Session, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := openStore(uri, o)
	if err != nil {
		return nil, err
	}

	sessionOpts := append([]core.SessionOption{core.WithLogger(o.logger)}, o.session...)
	return core.NewSession(store, sessionOpts...), nil
}

// OpenStore initializes the durable slot and loads the knowledge store,
// without starting a session.
func OpenStore(uri string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return openStore(uri, o)
}

func openStore(uri string, o *options) (*core.Store, error) {
	repo, err := initRepository(uri, o)
	if err != nil {
		return nil, err
	}

	store := core.NewStore(repo, o.logger)
	if err := store.Load(context.Background()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
