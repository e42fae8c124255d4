package storage

import (
	"context"

	"github.com/ltejedor/aihacks/core"
)

// Repository provides common storage operations.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds resource rows similar to the given vector.
	// Returns rows with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first). Vectors are assumed to be
	// unit length, so the score is the dot product.
	FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.RowMatch, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// RowRepository provides operations for managing resource rows.
type RowRepository interface {
	Repository

	// AddRows adds resource rows to storage. Rows with Id=0 get a
	// content-based ID first. A row whose ID already exists is skipped, so
	// re-running an upload never duplicates rows. Returns the rows actually
	// added.
	AddRows(ctx context.Context, rows ...*core.ResourceRow) ([]*core.ResourceRow, error)

	// UpdateRows overwrites existing rows in place.
	// Returns ErrNotFound if any row doesn't exist.
	UpdateRows(ctx context.Context, rows ...*core.ResourceRow) ([]*core.ResourceRow, error)

	// GetRow retrieves a single row by ID.
	// Returns ErrNotFound if the row doesn't exist.
	GetRow(ctx context.Context, id core.ID) (*core.ResourceRow, error)

	// GetRows retrieves multiple rows by their IDs.
	// Returns only the rows that exist (no error for missing rows).
	GetRows(ctx context.Context, ids ...core.ID) ([]*core.ResourceRow, error)

	// GetRowsByDateRange retrieves rows whose resource date satisfies
	// start <= date < end, ordered by date ascending. Dates are ISO 8601
	// strings, so the comparison is lexicographic.
	GetRowsByDateRange(ctx context.Context, start, end string) ([]*core.ResourceRow, error)

	// GetRecentRows retrieves up to limit rows, most recent resource date
	// first.
	GetRecentRows(ctx context.Context, limit int) ([]*core.ResourceRow, error)
}
