package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Entries        int    `json:"entries"`
	Loaded         bool   `json:"loaded"`
	RepositoryType string `json:"repository_type"`
	Repository     any    `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := StoreState{
		Entries:        s.knowledge.Len(),
		Loaded:         s.loaded,
		RepositoryType: "unknown",
	}
	if s.repo != nil {
		state.RepositoryType = "repository"
		// Try to get component type if repository implements introspection.Component
		if comp, ok := s.repo.(introspection.Component); ok {
			state.RepositoryType = comp.ComponentType()
		}
		if in, ok := s.repo.(introspection.Introspectable); ok {
			state.Repository = in.State()
		}
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

// SessionState exposes internal state for observability.
type SessionState struct {
	ID          string     `json:"id"`
	Status      Status     `json:"status"`
	Activity    string     `json:"activity,omitempty"`
	Busy        bool       `json:"busy"`
	Messages    int        `json:"messages"`
	Subscribers int        `json:"subscribers"`
	Store       StoreState `json:"store"`
}

// State implements introspection.Introspectable.
func (s *Session) State() any {
	var store StoreState
	if st, ok := s.store.State().(StoreState); ok {
		store = st
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{
		ID:          s.id,
		Status:      s.status,
		Activity:    s.activity,
		Busy:        s.busy,
		Messages:    len(s.messages),
		Subscribers: len(s.subs),
		Store:       store,
	}
}

// ComponentType implements introspection.Component.
func (s *Session) ComponentType() string {
	return "session"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
var _ introspection.Introspectable = (*Session)(nil)
var _ introspection.Component = (*Session)(nil)
