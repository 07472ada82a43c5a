package badger

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestHistory returns an in-memory repository with a clock that advances
// one second per call.
func newTestHistory(t *testing.T) *HistoryRepository {
	t.Helper()
	repo, err := NewMemoryHistoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func TestAddEntry_New(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()

	entry, err := repo.AddEntry(ctx, "mr", "src/main.rs")
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, core.IDFromContent(core.HistoryKey("mr", "src/main.rs")), entry.Id)
	assert.Equal(t, "mr", entry.Query)
	assert.Equal(t, "src/main.rs", entry.Selection)
	assert.Equal(t, 1, entry.Uses)
	assert.Equal(t, entry.FirstUsed, entry.LastUsed)

	stored, err := repo.GetEntry(ctx, entry.Id)
	require.NoError(t, err)
	assert.Equal(t, entry, stored)
}

func TestAddEntry_Repeat(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()

	first, err := repo.AddEntry(ctx, "mr", "src/main.rs")
	require.NoError(t, err)
	second, err := repo.AddEntry(ctx, "mr", "src/main.rs")
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, 2, second.Uses)
	assert.Equal(t, first.FirstUsed, second.FirstUsed)
	assert.True(t, second.LastUsed.After(first.LastUsed))

	// The recency index holds exactly one key per entry
	recent, err := repo.RecentEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 2, recent[0].Uses)
}

func TestAddEntry_Validation(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()

	_, err := repo.AddEntry(ctx, "", "")
	assert.ErrorIs(t, err, core.ErrInvalidHistoryEntry)
	assert.ErrorIs(t, err, core.ErrEmptyHistoryEntry)

	// Either side alone is enough
	_, err = repo.AddEntry(ctx, "", "selection")
	assert.NoError(t, err)
	_, err = repo.AddEntry(ctx, "query", "")
	assert.NoError(t, err)
}

func TestGetEntry_NotFound(t *testing.T) {
	repo := newTestHistory(t)

	_, err := repo.GetEntry(context.Background(), core.ID(999))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecentEntries(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()

	for _, q := range []string{"one", "two", "three"} {
		_, err := repo.AddEntry(ctx, q, q+".txt")
		require.NoError(t, err)
	}
	// Touching "one" makes it the most recent
	_, err := repo.AddEntry(ctx, "one", "one.txt")
	require.NoError(t, err)

	recent, err := repo.RecentEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "one", recent[0].Query)
	assert.Equal(t, "three", recent[1].Query)
	assert.Equal(t, "two", recent[2].Query)

	limited, err := repo.RecentEntries(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, recent[:2], limited)

	_, err = repo.RecentEntries(ctx, 0)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestRecentEntries_Empty(t *testing.T) {
	repo := newTestHistory(t)

	recent, err := repo.RecentEntries(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestDeleteEntries(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()

	a, err := repo.AddEntry(ctx, "a", "a.go")
	require.NoError(t, err)
	b, err := repo.AddEntry(ctx, "b", "b.go")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEntries(ctx, a.Id))

	_, err = repo.GetEntry(ctx, a.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	recent, err := repo.RecentEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, b.Id, recent[0].Id)

	// Missing IDs fail the whole batch
	err = repo.DeleteEntries(ctx, b.Id, a.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.GetEntry(ctx, b.Id)
	assert.NoError(t, err)
}

func TestPrune(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()

	for _, q := range []string{"a", "b", "c", "d", "e"} {
		_, err := repo.AddEntry(ctx, q, "")
		require.NoError(t, err)
	}

	pruned, err := repo.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, pruned)

	recent, err := repo.RecentEntries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "e", recent[0].Query)
	assert.Equal(t, "d", recent[1].Query)

	_, err = repo.GetEntry(ctx, core.IDFromContent(core.HistoryKey("a", "")))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	pruned, err = repo.Prune(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, pruned)

	_, err = repo.Prune(ctx, -1)
	assert.ErrorIs(t, err, storage.ErrInvalidQuery)
}

func TestPrune_SpansTransactions(t *testing.T) {
	repo := newTestHistory(t)
	ctx := context.Background()

	total := 2*pruneBatchSize + 37
	for i := range total {
		_, err := repo.AddEntry(ctx, fmt.Sprintf("q%05d", i), "")
		require.NoError(t, err)
	}

	pruned, err := repo.Prune(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, total-10, pruned)

	recent, err := repo.RecentEntries(ctx, total)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	for i, entry := range recent {
		assert.Equal(t, fmt.Sprintf("q%05d", total-1-i), entry.Query)
	}

	_, err = repo.GetEntry(ctx, core.IDFromContent(core.HistoryKey("q00000", "")))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPrune_CanceledContext(t *testing.T) {
	repo := newTestHistory(t)
	for _, q := range []string{"a", "b", "c"} {
		_, err := repo.AddEntry(context.Background(), q, "")
		require.NoError(t, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pruned, err := repo.Prune(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, pruned)

	recent, err := repo.RecentEntries(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}

func TestHistoryRepository_Closed(t *testing.T) {
	repo, err := NewMemoryHistoryRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	// Closing twice is harmless
	require.NoError(t, repo.Close())

	ctx := context.Background()
	_, err = repo.AddEntry(ctx, "q", "s")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = repo.GetEntry(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	_, err = repo.RecentEntries(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, repo.DeleteEntries(ctx, 1), storage.ErrStorageClosed)
	_, err = repo.Prune(ctx, 1)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestHistoryRepository_Persists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	ctx := context.Background()

	repo, err := OpenHistoryRepository(dir, false, nil)
	require.NoError(t, err)
	entry, err := repo.AddEntry(ctx, "mr", "src/main.rs")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := OpenHistoryRepository(dir, false, nil)
	require.NoError(t, err)
	defer reopened.Close()

	stored, err := reopened.GetEntry(ctx, entry.Id)
	require.NoError(t, err)
	assert.Equal(t, entry.Query, stored.Query)
	assert.Equal(t, entry.Selection, stored.Selection)
	assert.True(t, entry.LastUsed.Equal(stored.LastUsed))
}

func TestNewHistoryRepository_SharedBackend(t *testing.T) {
	backend, err := OpenBackend("", true, nil)
	require.NoError(t, err)
	defer backend.Close()

	repo, err := NewHistoryRepository(backend)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	// The backend is still open after closing a repository that borrowed it
	assert.False(t, backend.IsClosed())
}
