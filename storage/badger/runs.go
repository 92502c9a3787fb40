package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/librit/core"
	"github.com/poiesic/librit/storage"
)

// farFuture bounds reverse scans over the run date index.
var farFuture = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	idSeq, err := backend.GetSequence(runRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &RunRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RunRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *RunRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveRun persists an ingestion record.
func (r *RunRepository) SaveRun(ctx context.Context, record *core.IngestionRecord) (*core.IngestionRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Generate ID from sequence unless the caller assigned one
		if record.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Id = core.ID(nextID)
		}

		// Store primary record
		key := makeRunKey(record.Id)
		value := storage.MarshalIngestionRecord(record)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update date index
		dateKey := makeRunDateKey(record.StartedAt, record.Id)
		if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}

		// Update per-dataset index
		datasetID := makeDatasetID(record.Namespace, record.Project, record.Dataset)
		datasetKey := makeRunDatasetKey(datasetID, record.StartedAt, record.Id)
		if err := tx.Set(datasetKey, storage.MarshalID(record.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return record, err
}

// GetRun retrieves a single ingestion record by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.ID) (*core.IngestionRecord, error) {
	var result *core.IngestionRecord
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

// ListRuns retrieves the N most recent ingestion records, ordered by start
// time descending.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*core.IngestionRecord, error) {
	var results []*core.IngestionRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent runs first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialRunDateKey(farFuture)

		// Prefix for run date index keys
		prefix := []byte(runRecordDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the run date index
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
			runKey := makeRunKey(runID)
			record, err := readRun(tx, runKey)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// ListDatasetRuns retrieves the N most recent ingestion records for a single
// dataset, ordered by start time descending.
func (r *RunRepository) ListDatasetRuns(ctx context.Context, namespace, project, dataset string, limit int) ([]*core.IngestionRecord, error) {
	datasetID := makeDatasetID(namespace, project, dataset)

	var results []*core.IngestionRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key for this dataset
		startKey := makePartialRunDatasetKey(datasetID, farFuture)

		// Prefix limiting the scan to this dataset's index entries
		prefix := makeRunDatasetPrefix(datasetID)

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in this dataset's index entries
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
			runKey := makeRunKey(runID)
			record, err := readRun(tx, runKey)
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// readRun reads an ingestion record from the transaction.
func readRun(tx *badger.Txn, key []byte) (*core.IngestionRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.IngestionRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalIngestionRecord(val)
		return unmarshalErr
	})
	return record, err
}
