// Package feedcache keeps the last successfully fetched copy of each
// feed on disk, so a flaky source degrades to slightly stale rules
// instead of dropping out of its group entirely.
package feedcache

import (
	"encoding/binary"
	"time"

	bbolt "go.etcd.io/bbolt"
)

var (
	bucketFeeds = []byte("feeds")
	bucketMeta  = []byte("meta")
)

// Store is a bbolt-backed URL -> last-good-body map.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the cache database at path and ensures the
// buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketFeeds); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put records body as the last good copy for url, fetched at the given
// unix time.
func (s *Store) Put(url, body string, fetchedAt int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketFeeds).Put([]byte(url), []byte(body)); err != nil {
			return err
		}
		var ts [8]byte
		binary.BigEndian.PutUint64(ts[:], uint64(fetchedAt))
		return tx.Bucket(bucketMeta).Put([]byte(url), ts[:])
	})
}

// Get returns the cached copy for url and when it was fetched. ok is
// false when the URL has never been cached.
func (s *Store) Get(url string) (body string, fetchedAt int64, ok bool, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketFeeds).Get([]byte(url))
		if v == nil {
			return nil
		}
		body = string(v)
		ok = true
		if m := tx.Bucket(bucketMeta).Get([]byte(url)); len(m) == 8 {
			fetchedAt = int64(binary.BigEndian.Uint64(m))
		}
		return nil
	})
	if err != nil {
		return "", 0, false, err
	}
	return body, fetchedAt, ok, nil
}
