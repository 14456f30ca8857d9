package storage

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// BoltBackend implements Backend on a bbolt database file.
type BoltBackend struct {
	db *bolt.DB
}

// NewBoltBackend opens (or creates) the database at dbPath.
func NewBoltBackend(dbPath string) (*BoltBackend, error) {
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bbolt database: %w", err)
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) CreateBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
}

func (b *BoltBackend) Put(bucket, key, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("%s: %w", bucket, ErrBucketNotFound)
		}
		return bkt.Put(key, value)
	})
}

func (b *BoltBackend) Get(bucket, key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("%s: %w", bucket, ErrBucketNotFound)
		}
		if v := bkt.Get(key); v != nil {
			// Copy out: bbolt values are only valid inside the transaction.
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	return value, err
}

func (b *BoltBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)
		if bkt == nil {
			return fmt.Errorf("%s: %w", bucket, ErrBucketNotFound)
		}
		return bkt.ForEach(fn)
	})
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
