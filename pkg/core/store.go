package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Store is the user knowledge store.
// It keeps the knowledge in memory and flushes the whole map to its
// Repository after every mutation.
type Store struct {
	repo   Repository
	logger *slog.Logger

	saveMu    sync.Mutex // serializes commit
	mu        sync.RWMutex
	knowledge *Knowledge
	loaded    bool
}

// NewStore creates a Store over repo. A nil logger discards output.
func NewStore(repo Repository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		repo:      repo,
		logger:    logger,
		knowledge: NewKnowledge(),
	}
}

// Load hydrates the store from the repository.
// A malformed payload is logged and discarded; the store starts empty.
// Stored keys are normalized; blank keys are dropped.
func (s *Store) Load(ctx context.Context) error {
	k, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrMalformed) {
			return fmt.Errorf("failed to load knowledge: %w", err)
		}
		s.logger.Warn("discarding saved knowledge", "error", err)
		k = NewKnowledge()
	}
	k = s.normalize(k)

	s.mu.Lock()
	s.knowledge = k
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("knowledge loaded", "entries", k.Len())
	return nil
}

func (s *Store) normalize(k *Knowledge) *Knowledge {
	out := NewKnowledge()
	k.Range(func(key string, e Entry) bool {
		norm := NormalizeKey(key)
		switch {
		case norm == "":
			s.logger.Warn("dropping entry with blank key")
			return true
		case norm != key:
			s.logger.Debug("normalized stored key", "key", key, "normalized", norm)
		}
		out.Set(norm, e)
		return true
	})
	return out
}

// Upsert stores e under the normalized key and persists the whole map.
// Writes are serialized and the change becomes visible only once saved;
// on a persistence error the store is left unchanged.
func (s *Store) Upsert(ctx context.Context, key string, e Entry) error {
	key = NormalizeKey(key)
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidContribution)
	}

	n, err := s.commit(ctx, func(next *Knowledge) int {
		next.Set(key, e)
		return 1
	})
	if err != nil {
		return err
	}
	s.logger.Debug("knowledge saved", "key", key, "entries", n)
	return nil
}

// Import merges every entry of k (keys normalized, last write wins) and
// persists once. It returns the number of entries merged.
func (s *Store) Import(ctx context.Context, k *Knowledge) (int, error) {
	merged := 0
	_, err := s.commit(ctx, func(next *Knowledge) int {
		k.Range(func(key string, e Entry) bool {
			if key = NormalizeKey(key); key != "" {
				next.Set(key, e)
				merged++
			}
			return true
		})
		return merged
	})
	if err != nil {
		return 0, err
	}
	return merged, nil
}

// commit applies change to a copy of the knowledge, saves the copy and
// publishes it. saveMu keeps saves in the same order as the changes.
// It returns the size of the published map.
func (s *Store) commit(ctx context.Context, change func(next *Knowledge) int) (int, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	next := s.knowledge.Clone()
	s.mu.RUnlock()

	if change(next) == 0 {
		return next.Len(), nil
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return 0, fmt.Errorf("failed to persist knowledge: %w", err)
	}

	s.mu.Lock()
	s.knowledge = next
	s.mu.Unlock()
	return next.Len(), nil
}

// Get returns the entry stored under the normalized key.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.knowledge.Get(NormalizeKey(key))
}

// Len returns the number of user entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.knowledge.Len()
}

// Keys returns the user topics in enumeration order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.knowledge.Keys()
}

// Snapshot returns a copy of the current knowledge.
func (s *Store) Snapshot() *Knowledge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.knowledge.Clone()
}

// Filter returns the entries whose key matches a doublestar glob pattern,
// e.g. "react*" or "{array,promise}". An empty pattern matches everything.
func (s *Store) Filter(pattern string) (*Knowledge, error) {
	if pattern == "" {
		return s.Snapshot(), nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	out := NewKnowledge()
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.knowledge.Range(func(key string, e Entry) bool {
		if ok, _ := doublestar.Match(pattern, key); ok {
			out.Set(key, e)
		}
		return true
	})
	return out, nil
}

// View calls fn with the live knowledge under a read lock.
// fn must not retain or modify k.
func (s *Store) View(fn func(k *Knowledge)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.knowledge)
}

// Close releases the repository if it holds resources (e.g. a connection pool).
func (s *Store) Close() error {
	if c, ok := s.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
