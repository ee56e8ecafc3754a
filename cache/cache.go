// Package cache provides the per-user compile cache the driver
// consults before re-lexing, re-parsing, and re-emitting a source
// file it has already compiled (spec.md §6).
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

var (
	sourceBucket = []byte("source")
	binaryBucket = []byte("binary")
)

// Cache is the minimal lookup surface the driver needs.
type Cache interface {
	Get(string) ([]byte, error)
}

// Store is a bbolt-backed Cache keyed by a hash of the input source.
// One bucket holds hash -> emitted source bytes, a second holds
// hash -> produced binary path, so a cache hit can skip emission
// and, separately, skip invoking the backend compiler.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(sourceBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(binaryBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Hash returns the cache key for source.
func Hash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Get satisfies Cache by returning the cached emitted source for key,
// if any.
func (s *Store) Get(key string) ([]byte, error) {
	return s.lookup(sourceBucket, key)
}

func (s *Store) GetSource(key string) ([]byte, error) {
	return s.lookup(sourceBucket, key)
}

func (s *Store) PutSource(key string, emitted []byte) error {
	return s.store(sourceBucket, key, emitted)
}

func (s *Store) GetBinary(key string) ([]byte, error) {
	return s.lookup(binaryBucket, key)
}

func (s *Store) PutBinary(key string, binaryPath []byte) error {
	return s.store(binaryBucket, key, binaryPath)
}

func (s *Store) lookup(bucket []byte, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		v := b.Get([]byte(key))
		if v == nil {
			return fmt.Errorf("cache: %s: not found", key)
		}
		value = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Store) store(bucket []byte, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), value)
	})
}
