package reembed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
	"github.com/ltejedor/aihacks/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (storage.RowRepository, func()) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		backend.Close()
	}

	return repo, cleanup
}

func seedTestRows(t *testing.T, repo storage.RowRepository, n int) []*core.ResourceRow {
	t.Helper()
	rows := make([]*core.ResourceRow, n)
	for i := 0; i < n; i++ {
		rows[i] = &core.ResourceRow{
			ResourceID:  fmt.Sprintf("res-%d", i),
			Content:     fmt.Sprintf("content %d", i),
			Vector:      []float32{1, 0, 0},
			Date:        fmt.Sprintf("2025-04-%02dT00:00:00Z", i+1),
			ContentType: "resource",
		}
	}
	added, err := repo.AddRows(context.Background(), rows...)
	require.NoError(t, err)
	require.Len(t, added, n)
	return added
}

func TestRowIterator_Basic(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedTestRows(t, repo, 3)

	iter := NewRowIterator(repo, 2) // Batch size of 2
	count := 0
	batches := 0

	err := iter.ForEach(context.Background(), func(rows []*core.ResourceRow) error {
		count += len(rows)
		batches++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, count, "should iterate all 3 rows")
	assert.Equal(t, 2, batches, "should split into 2 batches")
}

func TestRowIterator_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	iter := NewRowIterator(repo, 10)
	called := false

	err := iter.ForEach(context.Background(), func(rows []*core.ResourceRow) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.False(t, called, "callback should not be called for empty database")
}

func TestRowIterator_StopsOnError(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedTestRows(t, repo, 4)

	iter := NewRowIterator(repo, 1)
	wantErr := errors.New("stop")
	batches := 0

	err := iter.ForEach(context.Background(), func(rows []*core.ResourceRow) error {
		batches++
		if batches == 2 {
			return wantErr
		}
		return nil
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, batches)
}

func TestRowIterator_ContextCancellation(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	seedTestRows(t, repo, 4)

	ctx, cancel := context.WithCancel(context.Background())
	iter := NewRowIterator(repo, 1)
	batches := 0

	err := iter.ForEach(ctx, func(rows []*core.ResourceRow) error {
		batches++
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, batches)
}
