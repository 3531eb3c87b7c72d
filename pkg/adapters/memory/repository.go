// Package memory provides an in-process knowledge slot.
// Nothing survives the process; it backs tests and ephemeral sessions.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/wasi/pkg/core"
)

// Repository implements core.Repository in memory.
// The slot holds the JSON payload, so Load and Save go through the same
// encoding as the durable adapters.
type Repository struct {
	mu    sync.RWMutex
	data  []byte
	saves int
}

// NewRepository creates an empty slot.
func NewRepository() *Repository {
	return &Repository{}
}

// NewRepositoryWithPayload creates a slot pre-filled with raw content,
// which may be malformed.
func NewRepositoryWithPayload(payload []byte) *Repository {
	return &Repository{data: append([]byte(nil), payload...)}
}

func (r *Repository) Initialize(ctx context.Context) error { return nil }

func (r *Repository) Load(ctx context.Context) (*core.Knowledge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k := core.NewKnowledge()
	if len(r.data) == 0 {
		return k, nil
	}
	if err := json.Unmarshal(r.data, k); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformed, err)
	}
	return k, nil
}

func (r *Repository) Save(ctx context.Context, k *core.Knowledge) error {
	data, err := json.Marshal(k)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = data
	r.saves++
	return nil
}

// Payload returns a copy of the raw slot content.
func (r *Repository) Payload() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.data...)
}

// Saves returns how many times Save succeeded.
func (r *Repository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory"
}

var _ core.Repository = (*Repository)(nil)
