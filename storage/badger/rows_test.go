package badger

import (
	"context"
	"testing"

	"github.com/ltejedor/aihacks/core"
	"github.com/ltejedor/aihacks/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRow(content, date string, vector []float32) *core.ResourceRow {
	return &core.ResourceRow{
		ResourceID:      "res-" + content,
		Content:         content,
		Vector:          vector,
		Title:           "title for " + content,
		Tags:            []string{"llms"},
		Date:            date,
		EvergreenRating: 2,
		ContentType:     "resource",
	}
}

func newTestRepo(t *testing.T) storage.RowRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestAddRowsAssignsContentIDs(t *testing.T) {
	repo := newTestRepo(t)

	row := testRow("some content", "2025-04-01T00:00:00Z", []float32{1, 0})
	added, err := repo.AddRows(context.Background(), row)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, core.IDFromContent("some content"), added[0].Id)
}

func TestAddRowsSkipsDuplicates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := testRow("same content", "2025-04-01T00:00:00Z", []float32{1, 0})
	added, err := repo.AddRows(ctx, first)
	require.NoError(t, err)
	require.Len(t, added, 1)

	// Identical content hashes to the same ID, so the second add is a no-op.
	second := testRow("same content", "2025-04-01T00:00:00Z", []float32{0, 1})
	added, err = repo.AddRows(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, added)

	stored, err := repo.GetRow(ctx, first.Id)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, stored.Vector)
}

func TestGetRowNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetRow(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetRowsSkipsMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	row := testRow("present", "2025-04-01T00:00:00Z", []float32{1, 0})
	_, err := repo.AddRows(ctx, row)
	require.NoError(t, err)

	rows, err := repo.GetRows(ctx, row.Id, core.ID(99999))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row.Id, rows[0].Id)
}

func TestUpdateRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	row := testRow("to update", "2025-04-01T00:00:00Z", []float32{1, 0})
	_, err := repo.AddRows(ctx, row)
	require.NoError(t, err)

	row.Vector = []float32{0, 1}
	_, err = repo.UpdateRows(ctx, row)
	require.NoError(t, err)

	stored, err := repo.GetRow(ctx, row.Id)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, stored.Vector)
}

func TestUpdateRowsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	row := testRow("never added", "2025-04-01T00:00:00Z", []float32{1, 0})
	row.Id = core.IDFromContent(row.Content)
	_, err := repo.UpdateRows(context.Background(), row)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetRowsByDateRange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddRows(ctx,
		testRow("march", "2025-03-15T00:00:00Z", []float32{1, 0}),
		testRow("april", "2025-04-15T00:00:00Z", []float32{1, 0}),
		testRow("may", "2025-05-15T00:00:00Z", []float32{1, 0}),
	)
	require.NoError(t, err)

	rows, err := repo.GetRowsByDateRange(ctx, "2025-04-01", "2025-05-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "april", rows[0].Content)

	// Wide range returns everything in date order.
	rows, err = repo.GetRowsByDateRange(ctx, "", "~")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "march", rows[0].Content)
	assert.Equal(t, "may", rows[2].Content)
}

func TestGetRecentRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddRows(ctx,
		testRow("old", "2025-03-15T00:00:00Z", []float32{1, 0}),
		testRow("mid", "2025-04-15T00:00:00Z", []float32{1, 0}),
		testRow("new", "2025-05-15T00:00:00Z", []float32{1, 0}),
	)
	require.NoError(t, err)

	rows, err := repo.GetRecentRows(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "new", rows[0].Content)
	assert.Equal(t, "mid", rows[1].Content)
}

func TestFindSimilarOrdersAndFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddRows(ctx,
		testRow("close", "2025-04-01T00:00:00Z", []float32{1, 0}),
		testRow("near", "2025-04-02T00:00:00Z", []float32{0.8, 0.6}),
		testRow("far", "2025-04-03T00:00:00Z", []float32{0, 1}),
	)
	require.NoError(t, err)

	matches, err := repo.FindSimilar(ctx, []float32{1, 0}, 0.5, 10)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "close", matches[0].Row.Content)
	assert.Equal(t, "near", matches[1].Row.Content)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestFindSimilarLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.AddRows(ctx,
		testRow("a", "2025-04-01T00:00:00Z", []float32{1, 0}),
		testRow("b", "2025-04-02T00:00:00Z", []float32{0.99, 0.14}),
		testRow("c", "2025-04-03T00:00:00Z", []float32{0.95, 0.31}),
	)
	require.NoError(t, err)

	matches, err := repo.FindSimilar(ctx, []float32{1, 0}, 0.0, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}
