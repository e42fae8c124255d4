package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
)

// RowRepository implements storage.RowRepository for BadgerDB.
type RowRepository struct {
	backend *Backend
}

var _ storage.RowRepository = (*RowRepository)(nil)

// NewRowRepository creates a new RowRepository.
func NewRowRepository(backend *Backend) (*RowRepository, error) {
	return &RowRepository{backend: backend}, nil
}

// Close is a no-op; the backend is owned and closed by the caller.
func (r *RowRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *RowRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.RowMatch, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *RowRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRows adds resource rows to storage. Rows use content-based IDs, so a
// row whose ID is already present is skipped rather than overwritten. The
// upload pipeline is append-only and safe to re-run.
func (r *RowRepository) AddRows(ctx context.Context, rows ...*core.ResourceRow) ([]*core.ResourceRow, error) {
	var added []*core.ResourceRow
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, row := range rows {
			if row.Id == 0 {
				row.Id = core.IDFromContent(row.Content)
			}

			key := makeRowKey(row.Id)
			existing, err := readRow(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}

			if err := tx.Set(key, storage.MarshalResourceRow(row)); err != nil {
				return err
			}

			dateKey := makeRowDateKey(row.Date, row.Id)
			if err := tx.Set(dateKey, storage.MarshalID(row.Id)); err != nil {
				return err
			}

			added = append(added, row)
		}
		return tx.Commit()
	}, true)

	return added, err
}

// UpdateRows overwrites existing rows in place.
func (r *RowRepository) UpdateRows(ctx context.Context, rows ...*core.ResourceRow) ([]*core.ResourceRow, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, row := range rows {
			key := makeRowKey(row.Id)

			old, err := readRow(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			if err := tx.Set(key, storage.MarshalResourceRow(row)); err != nil {
				return err
			}

			// Update date index if the date changed
			if old.Date != row.Date {
				if err := tx.Delete(makeRowDateKey(old.Date, old.Id)); err != nil {
					return err
				}
				if err := tx.Set(makeRowDateKey(row.Date, row.Id), storage.MarshalID(row.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return rows, err
}

// GetRow retrieves a single row by ID.
func (r *RowRepository) GetRow(ctx context.Context, id core.ID) (*core.ResourceRow, error) {
	var result *core.ResourceRow
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readRow(tx, makeRowKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetRows retrieves multiple rows by their IDs.
func (r *RowRepository) GetRows(ctx context.Context, ids ...core.ID) ([]*core.ResourceRow, error) {
	var result []*core.ResourceRow
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			row, err := readRow(tx, makeRowKey(id))
			if err != nil {
				return err
			}
			if row != nil {
				result = append(result, row)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetRowsByDateRange retrieves rows with start <= date < end, ordered by
// date ascending.
func (r *RowRepository) GetRowsByDateRange(ctx context.Context, start, end string) ([]*core.ResourceRow, error) {
	var results []*core.ResourceRow
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialRowDateKey(start)
		endKey := makePartialRowDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			var rowID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				rowID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			row, err := readRow(tx, makeRowKey(rowID))
			if err != nil {
				return err
			}
			if row != nil {
				results = append(results, row)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentRows retrieves up to limit rows, most recent date first.
func (r *RowRepository) GetRecentRows(ctx context.Context, limit int) ([]*core.ResourceRow, error) {
	var results []*core.ResourceRow
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek past every possible date key, then walk backwards.
		startKey := makePartialRowDateKey("~")
		prefix := []byte(rowDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var rowID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				rowID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			row, err := readRow(tx, makeRowKey(rowID))
			if err != nil {
				return err
			}
			if row != nil {
				results = append(results, row)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// readRow reads a resource row from the transaction.
// Returns nil without error if the key does not exist.
func readRow(tx *badger.Txn, key []byte) (*core.ResourceRow, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var row *core.ResourceRow
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		row, unmarshalErr = storage.UnmarshalResourceRow(val)
		return unmarshalErr
	})
	return row, err
}
