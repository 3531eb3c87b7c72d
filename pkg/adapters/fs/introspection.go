package fs

import (
	"path/filepath"
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path        string     `json:"path"`
	Format      string     `json:"format"`
	ReadOnly    bool       `json:"read_only"`
	Initialized bool       `json:"initialized"`
	Saves       int        `json:"saves"`
	LastLoad    *time.Time `json:"last_load,omitempty"`
	LastSave    *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:        r.Path,
		Format:      filepath.Ext(r.Path),
		ReadOnly:    r.config.ReadOnly,
		Initialized: r.initialized,
		Saves:       r.saves,
		LastLoad:    r.lastLoad,
		LastSave:    r.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
