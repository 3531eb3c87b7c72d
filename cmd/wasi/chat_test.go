package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/wasi"
	"github.com/aretw0/wasi/pkg/core"
)

func newTestSession(t *testing.T) *core.Session {
	t.Helper()
	s, err := wasi.New("",
		wasi.WithAdapter(wasi.AdapterMemory),
		wasi.WithInstantReplies(),
		wasi.WithSessionOptions(core.WithGreeting(false)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { closeSession(s) })
	return s
}

func TestHandleLine(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	assert.False(t, handleLine(ctx, s, ""))
	assert.Empty(t, s.Messages())

	assert.False(t, handleLine(ctx, s, "/learn closures: functions that remember scope"))
	assert.Equal(t, 1, s.KnowledgeCount())

	assert.False(t, handleLine(ctx, s, "/learn missing colon"))
	assert.Equal(t, 1, s.KnowledgeCount())

	assert.False(t, handleLine(ctx, s, "what are closures"))
	msgs := s.Messages()
	require.NotEmpty(t, msgs)
	assert.True(t, msgs[len(msgs)-1].UserContributed)

	assert.True(t, handleLine(ctx, s, "/quit"))
}

func TestPrintReply(t *testing.T) {
	var buf bytes.Buffer
	printReply(&buf, core.Message{
		Text:            "Closures keep scope.",
		URL:             "https://example.com",
		Title:           "User Resource: closures",
		Personality:     "Fascinating.",
		UserContributed: true,
	})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Closures keep scope.\n"))
	assert.Contains(t, out, "Reference: User Resource: closures <https://example.com>")
	assert.Contains(t, out, "Source: user-contributed knowledge")
	assert.Contains(t, out, "Fascinating.")
}

func TestPrintStatus(t *testing.T) {
	s := newTestSession(t)

	var buf bytes.Buffer
	printStatus(&buf, s, core.Event{Type: core.EventStatus, Status: core.StatusError})
	printStatus(&buf, s, core.Event{Type: core.EventMessage, Message: &core.Message{ID: 1}})
	printStatus(&buf, s, core.Event{Type: core.EventStatus, Status: core.StatusOnline})

	assert.Equal(t, "[ERROR] recalibrating...\n", buf.String())
}
