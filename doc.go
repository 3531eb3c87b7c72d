// Package wasi is the Composition Root for the WASI assistant.
//
// It connects the core conversation logic (Domain Layer) with the durable
// knowledge slot (Persistence Layer) using the Hexagonal Architecture pattern.
//
// WASI answers JavaScript and React questions from a built-in knowledge table
// and from entries contributed by the user. Contributions are persisted and
// take precedence over built-in answers for the same topic.
//
// Features:
//
//   - **Deterministic Matching**: exact key, synonym, then substring, user entries first.
//   - **Persistent Learning**: the whole knowledge map is flushed to one slot after every change.
//   - **Pluggable Slots**: a file (JSON or YAML), a Redis key, or memory via `core.Repository`.
//   - **Observable Sessions**: ordered message log, status changes as events, introspection state.
//
// Usage:
//
//	// Open the knowledge base and start a session
//	s, err := wasi.New(".wasi/knowledge.json",
//		wasi.WithLogger(logger),
//	)
//
//	// Ask a question
//	reply, err := s.SubmitQuery(ctx, "How do JavaScript arrays work?")
package wasi
