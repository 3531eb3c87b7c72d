// Package core holds the domain of the assistant: knowledge entries, the
// match resolver, the knowledge store and the conversation session.
package core

import "strings"

// Entry is a single explanation the assistant can give.
// Field names match the payload persisted by earlier versions of the widget,
// so existing knowledge bases load unchanged.
type Entry struct {
	Text        string `json:"text" yaml:"text"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Personality string `json:"personality,omitempty" yaml:"personality,omitempty"`
}

// NormalizeKey lowercases and trims a topic or query.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Source tells where a resolved entry came from.
type Source string

const (
	SourceUser     Source = "user"
	SourceBuiltin  Source = "builtin"
	SourceFallback Source = "fallback"
)

// Match is the result of resolving a query.
type Match struct {
	Key    string
	Entry  Entry
	Source Source
}

// UserContributed reports whether the entry comes from the user store.
func (m Match) UserContributed() bool {
	return m.Source == SourceUser
}
