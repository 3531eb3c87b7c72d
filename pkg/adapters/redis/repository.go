// Package redis stores the knowledge map under a single Redis key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aretw0/wasi/pkg/core"
)

// DefaultKey is the slot name used by the browser widget's local storage.
const DefaultKey = "wasi_knowledge_base"

// Config holds Redis connection configuration.
type Config struct {
	// Addr is the Redis server address (host:port).
	Addr string
	// Password is the Redis password (optional).
	Password string
	// DB is the Redis database number.
	DB int
	// Key holds the JSON payload (default: DefaultKey).
	Key string
	// ReadOnly rejects Save with core.ErrReadOnly.
	ReadOnly bool
	Logger   *slog.Logger
}

// Repository implements core.Repository on one Redis string key.
type Repository struct {
	client *goredis.Client
	key    string
	config Config
	logger *slog.Logger

	mu       sync.RWMutex
	closed   bool
	lastSave *time.Time
}

// NewRepository creates a Redis-backed repository.
// The connection is checked by Initialize, not here.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRepositoryFromClient(client, cfg), nil
}

// NewRepositoryFromClient wraps an existing client.
// This is useful for testing with miniredis.
func NewRepositoryFromClient(client *goredis.Client, cfg Config) *Repository {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repository{
		client: client,
		key:    key,
		config: cfg,
		logger: logger,
	}
}

// Initialize pings the server.
func (r *Repository) Initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	r.logger.Debug("redis slot ready", "key", r.key)
	return nil
}

// Load reads the JSON payload. A missing key yields an empty Knowledge.
func (r *Repository) Load(ctx context.Context) (*core.Knowledge, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return core.NewKnowledge(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", r.key, err)
	}
	if len(data) == 0 {
		return core.NewKnowledge(), nil
	}

	k := core.NewKnowledge()
	if err := json.Unmarshal(data, k); err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", core.ErrMalformed, r.key, err)
	}
	return k, nil
}

// Save replaces the payload with a single SET.
func (r *Repository) Save(ctx context.Context, k *core.Knowledge) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	data, err := json.Marshal(k)
	if err != nil {
		return fmt.Errorf("failed to marshal knowledge: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %w", r.key, err)
	}

	now := time.Now()
	r.mu.Lock()
	r.lastSave = &now
	r.mu.Unlock()
	return nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.client.Close()
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Addr     string     `json:"addr"`
	Key      string     `json:"key"`
	ReadOnly bool       `json:"read_only"`
	Closed   bool       `json:"closed"`
	LastSave *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RepositoryState{
		Addr:     r.client.Options().Addr,
		Key:      r.key,
		ReadOnly: r.config.ReadOnly,
		Closed:   r.closed,
		LastSave: r.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "redis"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
