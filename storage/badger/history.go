package badger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// pruneBatchSize is the number of entries Prune deletes per transaction.
const pruneBatchSize = 1000

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
type HistoryRepository struct {
	backend     *Backend
	ownsBackend bool
	now         func() time.Time
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a new HistoryRepository on an open backend.
// The caller remains responsible for closing the backend.
func NewHistoryRepository(backend *Backend) (*HistoryRepository, error) {
	return &HistoryRepository{
		backend: backend,
		now:     time.Now,
	}, nil
}

// OpenHistoryRepository opens the history database in dir, creating it if
// needed. Closing the repository closes the database.
func OpenHistoryRepository(dir string, inMemory bool, logger *slog.Logger) (*HistoryRepository, error) {
	backend, err := OpenBackend(dir, inMemory, logger)
	if err != nil {
		return nil, err
	}
	repo, err := NewHistoryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	repo.ownsBackend = true
	return repo, nil
}

// Close releases resources. The backend is closed only if the repository
// opened it.
func (r *HistoryRepository) Close() error {
	if r.ownsBackend && !r.backend.IsClosed() {
		return r.backend.Close()
	}
	return nil
}

// WithTransaction delegates to the backend.
func (r *HistoryRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// timestamp returns the current time at the precision entries are stored with.
func (r *HistoryRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// AddEntry records that query was accepted with selection.
func (r *HistoryRepository) AddEntry(ctx context.Context, query, selection string) (*core.HistoryEntry, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	id := core.IDFromContent(core.HistoryKey(query, selection))
	var entry *core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeHistoryEntryKey(id)
		existing, err := readHistoryEntry(tx, key)
		if err != nil {
			return err
		}

		now := r.timestamp()
		if existing != nil {
			// Move the entry within the recency index
			if err := tx.Delete(makeHistoryRecencyKey(existing.LastUsed, id)); err != nil {
				return err
			}
			entry = existing
			entry.Uses++
			if now.After(entry.LastUsed) {
				entry.LastUsed = now
			}
		} else {
			entry = &core.HistoryEntry{
				Id:        id,
				Query:     query,
				Selection: selection,
				Uses:      1,
				FirstUsed: now,
				LastUsed:  now,
			}
		}

		if err := core.ValidateHistoryEntry(entry); err != nil {
			return err
		}

		if err := tx.Set(key, storage.MarshalHistoryEntry(entry)); err != nil {
			return err
		}
		if err := tx.Set(makeHistoryRecencyKey(entry.LastUsed, id), storage.MarshalID(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.backend.logger.Debug("recorded history entry", "id", entry.Id, "uses", entry.Uses)
	return entry, nil
}

// GetEntry retrieves a single entry by ID.
func (r *HistoryRepository) GetEntry(ctx context.Context, id core.ID) (*core.HistoryEntry, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var result *core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readHistoryEntry(tx, makeHistoryEntryKey(id))
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

// RecentEntries retrieves up to limit entries, most recently used first.
func (r *HistoryRepository) RecentEntries(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}

	var results []*core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		ids, _, err := scanRecency(tx, limit)
		if err != nil {
			return err
		}
		for _, id := range ids {
			entry, err := readHistoryEntry(tx, makeHistoryEntryKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteEntries removes entries by their IDs.
func (r *HistoryRepository) DeleteEntries(ctx context.Context, ids ...core.ID) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeHistoryEntryKey(id)

			// Read entry to find its recency index key
			entry, err := readHistoryEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return fmt.Errorf("%w: %d", storage.ErrNotFound, id)
			}

			if err := tx.Delete(makeHistoryRecencyKey(entry.LastUsed, id)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Prune keeps the keep most recently used entries and deletes the rest.
func (r *HistoryRepository) Prune(ctx context.Context, keep int) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}
	if keep < 0 {
		return 0, fmt.Errorf("%w: keep must not be negative, got %d", storage.ErrInvalidQuery, keep)
	}

	var ids []core.ID
	var indexKeys [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		ids, indexKeys, err = scanRecency(tx, -1)
		return err
	}, false)
	if err != nil {
		return 0, err
	}

	// Each transaction deletes at most pruneBatchSize entries.
	pruned := 0
	for start := keep; start < len(ids); start += pruneBatchSize {
		if err := ctx.Err(); err != nil {
			return pruned, err
		}
		end := min(start+pruneBatchSize, len(ids))
		deleted := 0
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for i := start; i < end; i++ {
				// Entries used again since the scan have a new index key.
				if _, err := tx.Get(indexKeys[i]); err != nil {
					if err == badger.ErrKeyNotFound {
						continue
					}
					return err
				}
				if err := tx.Delete(indexKeys[i]); err != nil {
					return err
				}
				if err := tx.Delete(makeHistoryEntryKey(ids[i])); err != nil {
					return err
				}
				deleted++
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return pruned, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
		}
		pruned += deleted
	}

	if pruned > 0 {
		r.backend.logger.Debug("pruned history", "deleted", pruned, "kept", keep)
	}
	return pruned, nil
}

// Helper methods

// scanRecency walks the recency index from most to least recent and returns
// up to limit entry IDs with their index keys. A negative limit scans all.
func scanRecency(tx *badger.Txn, limit int) ([]core.ID, [][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Reverse = true
	opts.Prefix = historyRecencyIndexPrefix()

	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []core.ID
	var keys [][]byte
	for iter.Seek(historyRecencySeekKey()); iter.Valid(); iter.Next() {
		if limit >= 0 && len(ids) >= limit {
			break
		}
		item := iter.Item()

		var id core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		keys = append(keys, item.KeyCopy(nil))
	}
	return ids, keys, nil
}

// readHistoryEntry reads an entry from the transaction.
// Returns nil, nil if the key does not exist.
func readHistoryEntry(tx *badger.Txn, key []byte) (*core.HistoryEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.HistoryEntry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalHistoryEntry(val)
		return err
	})
	return entry, err
}
