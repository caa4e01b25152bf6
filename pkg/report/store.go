package report

import "context"

// Store persists run reports. Implementations must be safe for concurrent
// use; the batch runner saves exactly once per run.
type Store interface {
	// Save persists the report under its run ID.
	Save(ctx context.Context, r *Report) error

	// Close releases any underlying connections.
	Close(ctx context.Context) error
}

// NullStore discards reports. Used when no result store is configured.
type NullStore struct{}

// NewNullStore returns a store that silently drops every report.
func NewNullStore() *NullStore { return &NullStore{} }

// Save implements Store as a no-op.
func (*NullStore) Save(context.Context, *Report) error { return nil }

// Close implements Store as a no-op.
func (*NullStore) Close(context.Context) error { return nil }
