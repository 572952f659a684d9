package tokstore

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"io/fs"
	"time"

	"github.com/EllipX/libtoken/tokcall"
	bolt "go.etcd.io/bbolt"
)

// SimpleGet retrieves a value from the bolt key-value store.
// If the bucket or key doesn't exist, returns fs.ErrNotExist
func (s *Store) SimpleGet(bucket, key []byte) (r []byte, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return fs.ErrNotExist
		}
		v := b.Get(key)
		if v == nil {
			return fs.ErrNotExist
		}
		r = make([]byte, len(v))
		copy(r, v)
		return nil
	})
	return
}

// SimpleSet stores a key-value pair, creating the bucket if it doesn't exist
func (s *Store) SimpleSet(bucket, key, val []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put(key, val)
	})
}

// SimpleDel deletes one or more keys from a bucket. A missing bucket is not
// an error.
func (s *Store) SimpleDel(bucket []byte, keys ...[]byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		for _, key := range keys {
			if err := b.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}

var callCacheBucket = []byte("call_cache")

// CachedCaller wraps a Caller and caches successful call results in the
// store. Failures are never cached so a flaky endpoint can recover.
type CachedCaller struct {
	C       tokcall.Caller
	Store   *Store
	ChainId string
	Refresh time.Duration // how long a cached response stays fresh, 1h if zero
}

func (c *CachedCaller) cacheKey(to string, data []byte) []byte {
	h := sha256.New()
	h.Write([]byte(c.ChainId))
	h.Write([]byte{0})
	h.Write([]byte(to))
	h.Write([]byte{0})
	h.Write(data)
	return h.Sum(nil)
}

func (c *CachedCaller) Call(ctx context.Context, to string, data []byte, max int) tokcall.Result {
	key := c.cacheKey(to, data)

	refresh := c.Refresh
	if refresh == 0 {
		refresh = time.Hour
	}

	// check if in cache
	if cachebuf, err := c.Store.SimpleGet(callCacheBucket, key); err == nil && len(cachebuf) >= 8 {
		cacheTime := time.Unix(int64(binary.BigEndian.Uint64(cachebuf[:8])), 0)
		if time.Since(cacheTime) <= refresh {
			// still fresh enough
			buf := cachebuf[8:]
			if max > 0 && len(buf) > max {
				buf = buf[:max]
			}
			return tokcall.Success(buf)
		}
	}

	res := c.C.Call(ctx, to, data, max)
	buf, ok := res.Bytes()
	if !ok {
		return res
	}

	// current timestamp
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(time.Now().Unix()))

	// save in cache (ignore errors)
	c.Store.SimpleSet(callCacheBucket, key, append(ts, buf...))

	return res
}
