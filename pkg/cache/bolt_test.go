package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openBolt(t *testing.T, dir string) *BoltCache {
	t.Helper()
	c, err := NewBoltCache(dir)
	if err != nil {
		t.Fatalf("NewBoltCache: %v", err)
	}
	return c
}

func TestBoltCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c := openBolt(t, dir)
	defer c.Close()

	if c.Path() != filepath.Join(dir, BoltFile) {
		t.Errorf("Path() = %q", c.Path())
	}
	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "front:1", []byte(`[[10,20]]`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "front:1")
	if err != nil || !hit || string(data) != "[[10,20]]" {
		t.Fatalf("Get = %q, hit %v, err %v", data, hit, err)
	}

	// Overwrite keeps a single entry.
	if err := c.Set(ctx, "front:1", []byte(`[]`), 0); err != nil {
		t.Fatal(err)
	}
	if data, _, _ := c.Get(ctx, "front:1"); string(data) != "[]" {
		t.Errorf("Get after overwrite = %q", data)
	}

	if err := c.Delete(ctx, "front:1"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "front:1"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "front:1"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestBoltCacheExpiryAndReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c := openBolt(t, dir)

	if err := c.Set(ctx, "short", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "long", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c = openBolt(t, dir)
	defer c.Close()
	if _, hit, _ := c.Get(ctx, "long"); !hit {
		t.Error("entry should survive reopening")
	}
}

func TestLocalClearers(t *testing.T) {
	ctx := context.Background()
	backends := map[string]func(dir string) (Cache, error){
		"file": func(dir string) (Cache, error) { return NewFileCache(dir) },
		"bolt": func(dir string) (Cache, error) { return NewBoltCache(dir) },
	}
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			c, err := open(t.TempDir())
			if err != nil {
				t.Fatal(err)
			}
			defer c.Close()

			for _, k := range []string{"a", "b", "c"} {
				if err := c.Set(ctx, k, []byte(k), 0); err != nil {
					t.Fatal(err)
				}
			}
			clr, ok := c.(Clearer)
			if !ok {
				t.Fatalf("%T does not implement Clearer", c)
			}
			n, err := clr.Clear()
			if err != nil || n != 3 {
				t.Fatalf("Clear() = %d, %v; want 3", n, err)
			}
			if _, hit, _ := c.Get(ctx, "a"); hit {
				t.Error("Get after Clear should miss")
			}
		})
	}
}
