// Package lifecycle bridges session events to the lifecycle library.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/wasi/pkg/core"
)

type sessionSource struct {
	session *core.Session
	buffer  int
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits the events of a session.
// The subscription is opened by Start and released when its context ends
// or the session is closed.
func NewSource(session *core.Session, buffer int) lifecycle.Source {
	return &sessionSource{
		session: session,
		buffer:  buffer,
		out:     make(chan lifecycle.Event),
	}
}

func (s *sessionSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *sessionSource) Start(ctx context.Context) error {
	events, unsubscribe := s.session.Subscribe(s.buffer)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		defer unsubscribe()
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
