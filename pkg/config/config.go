// Package config loads rootfront settings from a TOML file.
//
// Every setting has a default, so a missing file is fine. ROOTFRONT_*
// environment variables override the file (see [Config.ApplyEnv]), and
// command-line flags and HTTP query parameters override both.
//
// Example file:
//
//	[scale]
//	factor = 0.0254
//	unit   = "mm"
//
//	[analysis]
//	enable_3d      = true
//	random_samples = 500
//
//	[cache]
//	backend = "redis"
//	redis   = "cache.internal:6379"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/matzehuels/rootfront/pkg/errors"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendBolt  = "bolt"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full set of file-configurable settings.
type Config struct {
	Scale    Scale    `toml:"scale"`
	Analysis Analysis `toml:"analysis"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
}

// Scale converts pixel measurements into physical units in reports.
type Scale struct {
	Factor float64 `toml:"factor"` // multiply lengths by this
	Unit   string  `toml:"unit"`   // label appended to report headers
}

// Analysis controls the front sweep and random baseline.
type Analysis struct {
	Enable3D      bool   `toml:"enable_3d"`
	RandomSamples int    `toml:"random_samples"`
	Steps         int    `toml:"steps"`
	Midpoints     int    `toml:"midpoints"`
	Workers       int    `toml:"workers"` // 0 = GOMAXPROCS
	Seed          uint64 `toml:"seed"`    // 0 = reseed every run
}

// Cache selects where computed fronts are stored.
type Cache struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	Redis    string        `toml:"redis"`
	Password string        `toml:"password"`
	DB       int           `toml:"db"`
	Prefix   string        `toml:"prefix"`
	TTL      time.Duration `toml:"ttl"`
}

// Server configures `rootfront serve`.
type Server struct {
	Addr    string   `toml:"addr"`
	Origins []string `toml:"origins"`
	// Timeout bounds each request, including the analysis it runs.
	Timeout time.Duration `toml:"timeout"`
	// MaxBody limits request bodies, in bytes.
	MaxBody int64 `toml:"max_body"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Scale: Scale{Factor: 1.0, Unit: "px"},
		Analysis: Analysis{
			RandomSamples: 1000,
			Steps:         100,
			Midpoints:     10,
		},
		Cache: Cache{
			Backend: BackendFile,
			Redis:   "localhost:6379",
			TTL:     7 * 24 * time.Hour,
		},
		Server: Server{
			Addr:    ":8080",
			Origins: []string{"*"},
			Timeout: 2 * time.Minute,
			MaxBody: 10 << 20,
		},
	}
}

// Load reads path over the defaults, then applies the environment. An empty
// path loads [DefaultPath] if it exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		switch {
		case !os.IsNotExist(err):
			return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		case explicit:
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadEnvFile adds the variables of a dotenv file to the process
// environment. Variables that are already set keep their values.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "env file %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "env file %s", path)
	}
	return nil
}

// Environment variables read by [Config.ApplyEnv].
const (
	EnvScaleFactor   = "ROOTFRONT_SCALE_FACTOR"
	EnvScaleUnit     = "ROOTFRONT_SCALE_UNIT"
	EnvCacheBackend  = "ROOTFRONT_CACHE_BACKEND"
	EnvCacheRedis    = "ROOTFRONT_CACHE_REDIS"
	EnvCachePassword = "ROOTFRONT_CACHE_PASSWORD"
	EnvServerAddr    = "ROOTFRONT_SERVER_ADDR"
)

// ApplyEnv overrides settings with the variables lookup reports as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}
	str(EnvScaleUnit, &c.Scale.Unit)
	str(EnvCacheBackend, &c.Cache.Backend)
	str(EnvCacheRedis, &c.Cache.Redis)
	str(EnvCachePassword, &c.Cache.Password)
	str(EnvServerAddr, &c.Server.Addr)

	if v, ok := lookup(EnvScaleFactor); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvScaleFactor)
		}
		c.Scale.Factor = f
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := errors.ValidateScaleFactor(c.Scale.Factor); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scale.factor")
	}
	if err := errors.ValidateUnit(c.Scale.Unit); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scale.unit")
	}
	if err := errors.ValidateSamples(c.Analysis.RandomSamples); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "analysis.random_samples")
	}
	if err := errors.ValidateSteps(c.Analysis.Steps); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "analysis.steps")
	}
	if c.Analysis.Midpoints < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "analysis.midpoints must not be negative")
	}
	if c.Analysis.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "analysis.workers must not be negative")
	}
	if c.Server.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.timeout must be positive")
	}
	if c.Server.MaxBody <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body must be positive")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendBolt, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, bolt, redis or none, got %q", c.Cache.Backend)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/rootfront/config.toml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "rootfront", "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/rootfront.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "rootfront")
}
