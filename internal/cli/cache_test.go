package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"github.com/matzehuels/rootfront/pkg/config"
)

func TestCacheDirXDG(t *testing.T) {
	dir := t.TempDir()
	old, had := os.LookupEnv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", dir)
	xdg.Reload()
	t.Cleanup(func() {
		if had {
			os.Setenv("XDG_CACHE_HOME", old)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
		xdg.Reload()
	})

	if got, want := cacheDir(config.Default()), filepath.Join(dir, "rootfront"); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Dir = "/srv/fronts"
	if got := cacheDir(cfg); got != "/srv/fronts" {
		t.Errorf("cacheDir() = %q, want /srv/fronts", got)
	}
}
