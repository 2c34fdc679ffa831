package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/filescout/core"
	"github.com/poiesic/filescout/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
	runSeq  *badger.Sequence
	rowSeq  *badger.Sequence
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	runSeq, err := backend.GetSequence(runIDSeq)
	if err != nil {
		return nil, err
	}

	rowSeq, err := backend.GetSequence(rowIDSeq)
	if err != nil {
		runSeq.Release()
		return nil, err
	}

	return &RunRepository{
		backend: backend,
		runSeq:  runSeq,
		rowSeq:  rowSeq,
	}, nil
}

// Close releases the ID sequences.
func (r *RunRepository) Close() error {
	if err := r.runSeq.Release(); err != nil {
		r.rowSeq.Release()
		return err
	}
	return r.rowSeq.Release()
}

// AddRun adds a run to storage, assigning its ID from the run sequence.
func (r *RunRepository) AddRun(ctx context.Context, run *core.Run) (*core.Run, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.nextID(r.runSeq)
		if err != nil {
			return err
		}
		run.Id = nextID

		if run.StartedAt.IsZero() {
			run.StartedAt = time.Now().UTC()
		}

		// Store primary record
		key := makeRunKey(run.Id)
		value := storage.MarshalRun(run)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update started-at index
		startedKey := makeRunStartedKey(run.StartedAt, run.Id)
		if err := tx.Set(startedKey, storage.MarshalID(run.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return run, err
}

// UpdateRun overwrites an existing run.
func (r *RunRepository) UpdateRun(ctx context.Context, run *core.Run) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(run.Id)

		// Read old record to detect index changes
		old, err := readRun(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		value := storage.MarshalRun(run)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update started-at index if the timestamp changed
		if !old.StartedAt.Equal(run.StartedAt) {
			oldStartedKey := makeRunStartedKey(old.StartedAt, old.Id)
			if err := tx.Delete(oldStartedKey); err != nil {
				return err
			}
			newStartedKey := makeRunStartedKey(run.StartedAt, run.Id)
			if err := tx.Set(newStartedKey, storage.MarshalID(run.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// GetRun retrieves a single run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.ID) (*core.Run, error) {
	var result *core.Run
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(id)
		var err error
		result, err = readRun(tx, key)
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

// ListRuns retrieves up to limit runs, most recently started first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	var results []*core.Run
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recently started runs first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the started-at index
		startKey := makePartialRunStartedKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		prefix := []byte(runStartedPrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			if limit > 0 && count >= limit {
				break
			}
			key := iter.Item().Key()

			// Check if we're still in the started-at index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var runID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				runID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			run, err := readRun(tx, makeRunKey(runID))
			if err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteRun removes a run together with its match and exception rows.
func (r *RunRepository) DeleteRun(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRunKey(id)

		run, err := readRun(tx, key)
		if err != nil {
			return err
		}
		if run == nil {
			return storage.ErrNotFound
		}

		// Delete from started-at index
		startedKey := makeRunStartedKey(run.StartedAt, run.Id)
		if err := tx.Delete(startedKey); err != nil {
			return err
		}

		// Delete match and exception rows
		if err := deleteRows(tx, matchRecordPrefix, id); err != nil {
			return err
		}
		if err := deleteRows(tx, exceptionRowPrefix, id); err != nil {
			return err
		}

		// Delete primary record
		if err := tx.Delete(key); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// AddMatches appends match rows to a run.
func (r *RunRepository) AddMatches(ctx context.Context, runID core.ID, records ...*core.MatchRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			rowID, err := r.nextID(r.rowSeq)
			if err != nil {
				return err
			}
			record.Id = rowID
			record.RunId = runID
			if record.RecordedAt.IsZero() {
				record.RecordedAt = time.Now().UTC()
			}

			key := makeRowKey(matchRecordPrefix, runID, record.Id)
			if err := tx.Set(key, storage.MarshalMatchRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetMatches retrieves up to limit match rows of a run in insertion order.
func (r *RunRepository) GetMatches(ctx context.Context, runID core.ID, limit int) ([]*core.MatchRecord, error) {
	var results []*core.MatchRecord
	err := r.iterateRows(matchRecordPrefix, runID, limit, func(val []byte) error {
		record, err := storage.UnmarshalMatchRecord(val)
		if err != nil {
			return err
		}
		results = append(results, record)
		return nil
	})
	return results, err
}

// AddExceptions appends exception rows to a run.
func (r *RunRepository) AddExceptions(ctx context.Context, runID core.ID, records ...*core.ExceptionRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			rowID, err := r.nextID(r.rowSeq)
			if err != nil {
				return err
			}
			record.Id = rowID
			record.RunId = runID
			if record.RecordedAt.IsZero() {
				record.RecordedAt = time.Now().UTC()
			}

			key := makeRowKey(exceptionRowPrefix, runID, record.Id)
			if err := tx.Set(key, storage.MarshalExceptionRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetExceptions retrieves up to limit exception rows of a run in insertion order.
func (r *RunRepository) GetExceptions(ctx context.Context, runID core.ID, limit int) ([]*core.ExceptionRecord, error) {
	var results []*core.ExceptionRecord
	err := r.iterateRows(exceptionRowPrefix, runID, limit, func(val []byte) error {
		record, err := storage.UnmarshalExceptionRecord(val)
		if err != nil {
			return err
		}
		results = append(results, record)
		return nil
	})
	return results, err
}

// Helper methods

// nextID draws the next ID from a sequence.
// BadgerDB sequences can return 0 on first call, so we skip it.
func (r *RunRepository) nextID(seq *badger.Sequence) (core.ID, error) {
	next, err := seq.Next()
	if err != nil {
		return 0, err
	}
	if next == 0 {
		next, err = seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(next), nil
}

// iterateRows walks a run's rows in key order and passes each value to fn.
func (r *RunRepository) iterateRows(prefix string, runID core.ID, limit int, fn func(val []byte) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialRowKey(prefix, runID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		count := 0
		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			if limit > 0 && count >= limit {
				break
			}
			key := iter.Item().Key()
			// Check if key still has our runID prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			if err := iter.Item().Value(fn); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)
}

// readRun reads a run from the transaction. Returns nil when absent.
func readRun(tx *badger.Txn, key []byte) (*core.Run, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var run *core.Run
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		run, unmarshalErr = storage.UnmarshalRun(val)
		return unmarshalErr
	})
	return run, err
}

// deleteRows removes every row of a run under the given prefix.
func deleteRows(tx *badger.Txn, prefix string, runID core.ID) error {
	startKey := makePartialRowKey(prefix, runID)

	var keys [][]byte
	iter := tx.NewIterator(badger.DefaultIteratorOptions)
	for iter.Seek(startKey); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if len(key) < len(startKey) {
			break
		}
		if slices.Compare(key[:len(startKey)], startKey) != 0 {
			break
		}
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	iter.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
