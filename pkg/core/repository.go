package core

import "context"

// Repository is the durable slot holding the whole user knowledge map.
// The map is always read and written in full; adapters decide the encoding
// (JSON file, YAML file, Redis key, memory).
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g. create directories, ping a server).
	Initialize(ctx context.Context) error

	// Load returns the stored knowledge. A missing slot yields an empty
	// Knowledge and no error. Undecodable content is reported wrapped
	// in ErrMalformed.
	Load(ctx context.Context) (*Knowledge, error)

	// Save replaces the slot content with k.
	Save(ctx context.Context, k *Knowledge) error
}
