package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// BoltFile is the database file name inside the cache directory.
const BoltFile = "fronts.db"

// BoltCache keeps fronts in a single bbolt database file. Only one process
// can hold the file open; others wait up to the open timeout.
type BoltCache struct {
	store *bolthold.Store
	path  string
}

type boltEntry struct {
	Key       string `boltholdKey:"Key"`
	Data      []byte
	ExpiresAt int64 `boltholdIndex:"ExpiresAt"` // unix nanoseconds, 0 = never
}

// NewBoltCache opens (or creates) dir/fronts.db and drops expired entries.
func NewBoltCache(dir string) (*BoltCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, BoltFile)
	store, err := bolthold.Open(path, 0o644, &bolthold.Options{
		Encoder: json.Marshal,
		Decoder: json.Unmarshal,
		Options: &bbolt.Options{
			Timeout:      5 * time.Second,
			NoGrowSync:   bbolt.DefaultOptions.NoGrowSync,
			FreelistType: bbolt.DefaultOptions.FreelistType,
		},
	})
	if err != nil {
		return nil, err
	}
	c := &BoltCache{store: store, path: path}
	if err := c.purge(time.Now()); err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

// Path returns the database file.
func (c *BoltCache) Path() string { return c.path }

func (c *BoltCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var e boltEntry
	err := c.store.Get(key, &e)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if e.ExpiresAt > 0 && time.Now().UnixNano() > e.ExpiresAt {
		_ = c.store.Delete(key, boltEntry{})
		return nil, false, nil
	}
	return e.Data, true, nil
}

func (c *BoltCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := boltEntry{Key: key, Data: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl).UnixNano()
	}
	return c.store.Upsert(key, e)
}

func (c *BoltCache) Delete(_ context.Context, key string) error {
	err := c.store.Delete(key, boltEntry{})
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil
	}
	return err
}

// Clear removes every entry and returns how many were deleted.
func (c *BoltCache) Clear() (int, error) {
	var all []boltEntry
	if err := c.store.Find(&all, nil); err != nil {
		return 0, err
	}
	for _, e := range all {
		if err := c.store.Delete(e.Key, boltEntry{}); err != nil && !errors.Is(err, bolthold.ErrNotFound) {
			return 0, err
		}
	}
	return len(all), nil
}

func (c *BoltCache) Close() error { return c.store.Close() }

func (c *BoltCache) purge(now time.Time) error {
	return c.store.DeleteMatching(&boltEntry{},
		bolthold.Where("ExpiresAt").Gt(int64(0)).And("ExpiresAt").Lt(now.UnixNano()))
}

var _ Cache = (*BoltCache)(nil)
