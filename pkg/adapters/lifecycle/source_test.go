package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wasi/pkg/adapters/lifecycle"
	"github.com/aretw0/wasi/pkg/adapters/memory"
	"github.com/aretw0/wasi/pkg/core"
)

func TestSource_ForwardsSessionEvents(t *testing.T) {
	store := core.NewStore(memory.NewRepository(), nil)
	session := core.NewSession(store,
		core.WithGreeting(false),
		core.WithThinkDelay(0, 0),
	)
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := lifecycle.NewSource(session, 16)
	require.NoError(t, src.Start(ctx))

	_, err := session.SubmitQuery(context.Background(), "promise")
	require.NoError(t, err)

	var got []string
	timeout := time.After(2 * time.Second)
	for len(got) < 4 {
		select {
		case e := <-src.Events():
			got = append(got, e.String())
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}

	assert.Equal(t, []string{
		"MESSAGE #1 (user)",
		"STATUS PROCESSING",
		"MESSAGE #2 (assistant)",
		"STATUS ONLINE",
	}, got)
}

func TestSource_ClosesWithSession(t *testing.T) {
	store := core.NewStore(memory.NewRepository(), nil)
	session := core.NewSession(store, core.WithGreeting(false))

	src := lifecycle.NewSource(session, 1)
	require.NoError(t, src.Start(context.Background()))
	require.NoError(t, session.Close())

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok, "expected closed channel")
	case <-time.After(2 * time.Second):
		t.Fatal("source did not close")
	}
}
