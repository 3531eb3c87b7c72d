package fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/wasi/pkg/core"
)

// DefaultFilename is the knowledge file created inside a directory path.
const DefaultFilename = "knowledge.json"

// Repository implements core.Repository on a single file.
// The file extension selects the serializer (.json, .yaml, .yml).
type Repository struct {
	Path string

	config      Config
	serializer  Serializer
	logger      *slog.Logger
	mu          sync.RWMutex
	lastLoad    *time.Time
	lastSave    *time.Time
	saves       int
	initialized bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	// Path of the knowledge file. A path without extension, or an existing
	// directory, gets DefaultFilename appended.
	Path string
	// MustExist requires the parent directory to exist already.
	MustExist bool
	// ReadOnly rejects Save with core.ErrReadOnly and skips directory creation.
	ReadOnly bool
	// Perm is the mode of the written file (default 0644).
	Perm   os.FileMode
	Logger *slog.Logger
	// Serializers overrides or extends DefaultSerializers, keyed by extension.
	Serializers map[string]Serializer
}

// NewRepository creates a new filesystem-backed repository.
// It fails if no serializer handles the file extension.
func NewRepository(config Config) (*Repository, error) {
	path := resolveFile(config.Path)

	serializers := DefaultSerializers()
	for ext, s := range config.Serializers {
		serializers[ext] = s
	}
	ext := strings.ToLower(filepath.Ext(path))
	s, ok := serializers[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer for extension %q", ext)
	}

	if config.Perm == 0 {
		config.Perm = 0644
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Repository{
		Path:       path,
		config:     config,
		serializer: s,
		logger:     logger,
	}, nil
}

func resolveFile(path string) string {
	if path == "" {
		return DefaultFilename
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DefaultFilename)
	}
	if filepath.Ext(path) == "" {
		return filepath.Join(path, DefaultFilename)
	}
	return path
}

// Initialize ensures the directory holding the knowledge file exists.
func (r *Repository) Initialize(ctx context.Context) error {
	dir := filepath.Dir(r.Path)

	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			if r.config.ReadOnly {
				// Nothing to read yet; Load will report an empty store.
				r.markInitialized()
				return nil
			}
			return fmt.Errorf("store directory does not exist: %s", dir)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", dir)
		}
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	r.markInitialized()
	r.logger.Debug("knowledge file ready", "path", r.Path, "read_only", r.config.ReadOnly)
	return nil
}

func (r *Repository) markInitialized() {
	r.mu.Lock()
	r.initialized = true
	r.mu.Unlock()
}

// Load reads and decodes the knowledge file. A missing or empty file
// yields an empty Knowledge.
func (r *Repository) Load(ctx context.Context) (*core.Knowledge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.Path)
	if os.IsNotExist(err) {
		return core.NewKnowledge(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.Path, err)
	}

	k, err := r.serializer.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Path, err)
	}

	now := time.Now()
	r.lastLoad = &now
	return k, nil
}

// Save serializes k and atomically replaces the knowledge file.
func (r *Repository) Save(ctx context.Context, k *core.Knowledge) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.serializer.Serialize(k)
	if err != nil {
		return fmt.Errorf("failed to serialize knowledge: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeFileAtomic(r.Path, data, r.config.Perm); err != nil {
		return err
	}

	now := time.Now()
	r.lastSave = &now
	r.saves++
	return nil
}
