// Package boltsink journals form commits to a bbolt database: one bucket per
// form, sequence-numbered keys, JSON-encoded records.
package boltsink

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/goliatone/go-formflow/pkg/sink"
)

// Entry is one journaled commit read back from the store.
type Entry struct {
	Seq       uint64            `json:"-"`
	Values    map[string]string `json:"values"`
	Committed time.Time         `json:"committed"`
}

// Store is a durable sink.Sink backed by a single bbolt file.
type Store struct {
	db *bolt.DB
}

var _ sink.Sink = (*Store)(nil)

// Open opens (creating if needed) the journal at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("boltsink: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Commit appends a record to the form's bucket under the next sequence
// number.
func (s *Store) Commit(ctx context.Context, form string, values map[string]string) (sink.Receipt, error) {
	if ctx == nil {
		return sink.Receipt{}, errors.New("boltsink: context is required")
	}
	if err := ctx.Err(); err != nil {
		return sink.Receipt{}, err
	}
	if form == "" {
		return sink.Receipt{}, errors.New("boltsink: form name is required")
	}

	receipt := sink.Receipt{Committed: time.Now()}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(form))
		if err != nil {
			return err
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(Entry{Values: values, Committed: receipt.Committed})
		if err != nil {
			return err
		}
		receipt.Seq = seq
		return b.Put(marshalSeq(seq), data)
	})
	if err != nil {
		return sink.Receipt{}, fmt.Errorf("boltsink: commit %q: %w", form, err)
	}
	return receipt, nil
}

// Entries reads every journaled commit for a form, in sequence order. A form
// that never committed yields no entries and no error.
func (s *Store) Entries(form string) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(form))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entry.Seq = unmarshalSeq(k)
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("boltsink: read %q: %w", form, err)
	}
	return entries, nil
}

func marshalSeq(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
