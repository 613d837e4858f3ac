package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/heavycoin/heavyminer/pkg/core/types"
)

var (
	ErrShareNotFound = errors.New("share not found in store")
)

// ShareStore defines the interface for persistent share storage.
type ShareStore interface {
	SaveShare(share *types.Share) error
	GetShare(hash types.Hash) (*types.Share, error)
	Shares(fn func(*types.Share) error) error
	Count() (uint64, error)
	Close() error
}

// BadgerStore implements ShareStore using BadgerDB.
type BadgerStore struct {
	db *badger.DB
	mu sync.Mutex
}

var _ ShareStore = (*BadgerStore)(nil)

// NewBadgerStore creates or opens a BadgerDB store at the given path.
// If path is empty, it opens an in-memory store (for testing).
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	// Reduce logging noise
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open share store: %w", err)
	}

	return &BadgerStore{
		db: db,
	}, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Keys:
// Share by Hash: "share:hash:<hash>" -> serialized share
// Share count:   "share:count" -> big-endian uint64

const sharePrefix = "share:hash:"

var countKey = []byte("share:count")

func shareKey(hash types.Hash) []byte {
	return []byte(fmt.Sprintf("%s%x", sharePrefix, hash))
}

// SaveShare stores a share. Saving a share that is already present is a
// no-op and does not change the count.
func (s *BadgerStore) SaveShare(share *types.Share) error {
	// The count is read-modify-write; serialize writers instead of retrying
	// on badger conflicts.
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		key := shareKey(share.Hash)
		if _, err := txn.Get(key); err == nil {
			return nil
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(share); err != nil {
			return err
		}
		if err := txn.Set(key, buf.Bytes()); err != nil {
			return err
		}

		count, err := readCount(txn)
		if err != nil {
			return err
		}
		var val [8]byte
		binary.BigEndian.PutUint64(val[:], count+1)
		return txn.Set(countKey, val[:])
	})
}

func (s *BadgerStore) GetShare(hash types.Hash) (*types.Share, error) {
	var share types.Share
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(shareKey(hash))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrShareNotFound
			}
			return err
		}

		return item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&share)
		})
	})

	if err != nil {
		return nil, err
	}
	return &share, nil
}

// Shares calls fn for every stored share in key order. Iteration stops at
// the first error fn returns.
func (s *BadgerStore) Shares(fn func(*types.Share) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sharePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var share types.Share
			err := it.Item().Value(func(val []byte) error {
				return gob.NewDecoder(bytes.NewReader(val)).Decode(&share)
			})
			if err != nil {
				return err
			}
			if err := fn(&share); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BadgerStore) Count() (uint64, error) {
	var count uint64
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		count, err = readCount(txn)
		return err
	})
	return count, err
}

func readCount(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get(countKey)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var count uint64
	err = item.Value(func(val []byte) error {
		count = binary.BigEndian.Uint64(val)
		return nil
	})
	return count, err
}
