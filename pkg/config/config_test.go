package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"

	"github.com/matzehuels/rootfront/pkg/errors"
)

// setXDG sets an XDG variable and reloads the xdg paths, undoing both at
// cleanup.
func setXDG(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	xdg.Reload()
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
		xdg.Reload()
	})
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Scale.Factor != 1.0 {
		t.Errorf("Scale.Factor = %v, want 1.0", cfg.Scale.Factor)
	}
	if cfg.Scale.Unit != "px" {
		t.Errorf("Scale.Unit = %q, want px", cfg.Scale.Unit)
	}
	if cfg.Analysis.Enable3D {
		t.Error("Enable3D should default to false")
	}
	if cfg.Analysis.RandomSamples != 1000 {
		t.Errorf("RandomSamples = %d, want 1000", cfg.Analysis.RandomSamples)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[scale]
factor = 0.5
unit = "mm"

[analysis]
enable_3d = true
random_samples = 250

[cache]
backend = "redis"
ttl = "2h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scale.Factor != 0.5 || cfg.Scale.Unit != "mm" {
		t.Errorf("Scale = %+v, want {0.5 mm}", cfg.Scale)
	}
	if !cfg.Analysis.Enable3D {
		t.Error("Enable3D = false, want true")
	}
	if cfg.Analysis.RandomSamples != 250 {
		t.Errorf("RandomSamples = %d, want 250", cfg.Analysis.RandomSamples)
	}
	if cfg.Analysis.Steps != 100 {
		t.Errorf("Steps = %d, want default 100", cfg.Analysis.Steps)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("Backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL != 2*time.Hour {
		t.Errorf("TTL = %v, want 2h", cfg.Cache.TTL)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[scale\nfactor = 1", errors.ErrCodeInvalidConfig},
		{"negative factor", "[scale]\nfactor = -1.0", errors.ErrCodeInvalidConfig},
		{"bad unit", "[scale]\nunit = \"m m\"", errors.ErrCodeInvalidConfig},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfig},
		{"zero samples", "[analysis]\nrandom_samples = 0", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file error = %v, want FILE_NOT_FOUND", err)
	}

	setXDG(t, "XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") with no default file: %v", err)
	}
	if cfg.Scale.Unit != "px" {
		t.Errorf("Unit = %q, want default px", cfg.Scale.Unit)
	}
}

func TestDefaultPaths(t *testing.T) {
	setXDG(t, "XDG_CONFIG_HOME", "/tmp/xdg-config")
	setXDG(t, "XDG_CACHE_HOME", "/tmp/xdg-cache")

	if got, want := DefaultPath(), filepath.Join("/tmp/xdg-config", "rootfront", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
	if got, want := DefaultCacheDir(), filepath.Join("/tmp/xdg-cache", "rootfront"); got != want {
		t.Errorf("DefaultCacheDir() = %q, want %q", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvScaleFactor:   "0.0254",
		EnvScaleUnit:     "mm",
		EnvCacheBackend:  BackendBolt,
		EnvCachePassword: "s3cret",
		EnvServerAddr:    ":9090",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Scale.Factor != 0.0254 || cfg.Scale.Unit != "mm" {
		t.Errorf("Scale = %+v", cfg.Scale)
	}
	if cfg.Cache.Backend != BackendBolt || cfg.Cache.Password != "s3cret" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Redis != "localhost:6379" {
		t.Errorf("unset variable changed Redis to %q", cfg.Cache.Redis)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}

	env[EnvScaleFactor] = "wide"
	if err := cfg.ApplyEnv(lookup); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad factor error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ROOTFRONT_SCALE_UNIT=cm\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvScaleUnit, "")
	os.Unsetenv(EnvScaleUnit)

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	setXDG(t, "XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scale.Unit != "cm" {
		t.Errorf("Unit = %q, want cm from env file", cfg.Scale.Unit)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing env file error = %v, want FILE_NOT_FOUND", err)
	}
}
