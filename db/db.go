package db

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"invoiceqa/models"
)

const historyPrefix = "history:"

type DB struct {
	badgerDB *badger.DB
	seq      atomic.Uint64
}

func New(dbPath string) (*DB, error) {
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Disable badger logging for cleaner output

	return open(opts)
}

// NewInMemory opens a history store that lives only for the process lifetime.
func NewInMemory() (*DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	return open(opts)
}

func open(opts badger.Options) (*DB, error) {
	badgerDB, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{badgerDB: badgerDB}, nil
}

func (d *DB) Close() error {
	return d.badgerDB.Close()
}

// Record appends entry to the history. ID and Timestamp are filled in when
// empty. Keys sort by time, so iteration order is chronological.
func (d *DB) Record(entry models.HistoryEntry) (models.HistoryEntry, error) {
	now := time.Now().UTC()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = now.Format(time.RFC3339Nano)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return entry, err
	}

	err = d.badgerDB.Update(func(txn *badger.Txn) error {
		key := []byte(fmt.Sprintf("%s%020d:%010d:%s", historyPrefix, now.UnixNano(), d.seq.Add(1), entry.ID))
		return txn.Set(key, data)
	})
	return entry, err
}

// Recent returns up to limit entries, newest first.
func (d *DB) Recent(limit int) ([]models.HistoryEntry, error) {
	entries := []models.HistoryEntry{}
	if limit <= 0 {
		return entries, nil
	}

	err := d.badgerDB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(historyPrefix)
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration must start past the last key carrying the prefix.
		seek := append([]byte(historyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix) && len(entries) < limit; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var e models.HistoryEntry
				if err := json.Unmarshal(val, &e); err != nil {
					return err
				}
				entries = append(entries, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return entries, err
}
