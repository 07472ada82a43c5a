package storage

import (
	"context"

	"github.com/poiesic/sift/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// HistoryRepository persists accepted (query, selection) pairs.
type HistoryRepository interface {
	Repository

	// AddEntry records that query was accepted with selection.
	// The entry ID is derived from the pair's content, so accepting the same
	// pair again increments Uses and refreshes LastUsed instead of creating
	// a new entry.
	// Returns the stored entry.
	AddEntry(ctx context.Context, query, selection string) (*core.HistoryEntry, error)

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.HistoryEntry, error)

	// RecentEntries retrieves up to limit entries, most recently used first.
	RecentEntries(ctx context.Context, limit int) ([]*core.HistoryEntry, error)

	// DeleteEntries removes entries by their IDs.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteEntries(ctx context.Context, ids ...core.ID) error

	// Prune keeps the keep most recently used entries and deletes the rest.
	// Returns the number of entries deleted.
	Prune(ctx context.Context, keep int) (int, error)
}
