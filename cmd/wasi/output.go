package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/wasi/pkg/core"
)

const wordWrap = 80

var renderer *glamour.TermRenderer

// renderMarkdown renders s for the terminal when --render is set.
// Rendering errors fall back to the raw text.
func renderMarkdown(s string) string {
	if !render {
		return s
	}
	if renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrap),
		)
		if err != nil {
			slog.Debug("markdown renderer unavailable", "error", err)
			return s
		}
		renderer = r
	}
	out, err := renderer.Render(s)
	if err != nil {
		slog.Debug("markdown render failed", "error", err)
		return s
	}
	return strings.TrimRight(out, "\n")
}

// printReply writes an assistant message with its reference link and remark.
func printReply(w io.Writer, m core.Message) {
	fmt.Fprintln(w, renderMarkdown(m.Text))
	if m.URL != "" {
		title := m.Title
		if title == "" {
			title = m.URL
		}
		fmt.Fprintf(w, "\nReference: %s <%s>\n", title, m.URL)
	}
	if m.UserContributed {
		fmt.Fprintln(w, "Source: user-contributed knowledge")
	}
	if m.Personality != "" {
		fmt.Fprintf(w, "\n%s\n", m.Personality)
	}
}
