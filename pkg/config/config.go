// Package config loads mindmap settings from a TOML file and the environment.
//
// Precedence, highest first: command-line flags (applied by the CLI), then
// environment variables, then the config file, then built-in defaults. A
// missing config file is not an error.
//
//	[layout]
//	direction = "right"
//	horizontal_spacing = 160
//
//	[render]
//	style = "dark"
//	formats = ["svg", "png"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/diagram"
	"github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/layout"
)

const appName = "mindmap"

// Environment variables that override file values.
const (
	EnvCacheBackend = "MINDMAP_CACHE_BACKEND"
	EnvCacheDir     = "MINDMAP_CACHE_DIR"
	EnvRedisAddr    = "MINDMAP_REDIS_ADDR"
	EnvRedisDB      = "MINDMAP_REDIS_DB"
	EnvMongoURI     = "MINDMAP_MONGO_URI"
	EnvAddr         = "MINDMAP_ADDR"
)

// Measure modes.
const (
	MeasureHeuristic = "heuristic"
	MeasureFont      = "font"
)

type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

type LayoutConfig struct {
	Direction         string  `toml:"direction"`
	HorizontalSpacing float64 `toml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing"`
	CenterOffset      float64 `toml:"center_offset"`
	// Measure is "heuristic" (character widths) or "font" (embedded font metrics).
	Measure string `toml:"measure"`
	// ExpandDepth expands nodes shallower than this depth; zero keeps only the root open.
	ExpandDepth int  `toml:"expand_depth"`
	ExpandAll   bool `toml:"expand_all"`
}

type RenderConfig struct {
	Style   string   `toml:"style"`
	Formats []string `toml:"formats"`
	Padding float64  `toml:"padding"`
	Scale   float64  `toml:"scale"`
}

type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	RedisDB   int           `toml:"redis_db"`
	MongoURI  string        `toml:"mongo_uri"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl"`
}

type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
	MaxBodyBytes    int64         `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Direction:         string(layout.DefaultDirection),
			HorizontalSpacing: layout.DefaultHorizontalSpacing,
			VerticalSpacing:   layout.DefaultVerticalSpacing,
			Measure:           MeasureHeuristic,
		},
		Render: RenderConfig{
			Style:   diagram.StyleSimple,
			Formats: []string{diagram.FormatSVG},
			Padding: 40,
			Scale:   2,
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			Dir:     defaultCacheDir(),
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    2 * errors.MaxOutlineBytes,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path selects [DefaultPath]; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// Decode parses TOML data over the defaults without consulting the environment.
func Decode(data string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Cache.Backend = envOr(EnvCacheBackend, c.Cache.Backend)
	c.Cache.Dir = envOr(EnvCacheDir, c.Cache.Dir)
	c.Cache.RedisAddr = envOr(EnvRedisAddr, c.Cache.RedisAddr)
	c.Cache.RedisDB = envInt(EnvRedisDB, c.Cache.RedisDB)
	c.Cache.MongoURI = envOr(EnvMongoURI, c.Cache.MongoURI)
	c.Server.Addr = envOr(EnvAddr, c.Server.Addr)
}

// Validate checks every section and returns the first coded error.
func (c Config) Validate() error {
	if _, err := layout.ParseDirection(c.Layout.Direction); err != nil {
		return err
	}
	if c.Layout.HorizontalSpacing < 0 || c.Layout.VerticalSpacing < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "layout spacing must not be negative")
	}
	if c.Layout.ExpandDepth < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "expand_depth must not be negative")
	}
	switch c.Layout.Measure {
	case "", MeasureHeuristic, MeasureFont:
	default:
		return errors.New(errors.ErrCodeInvalidOption, "unknown measure %q (want heuristic or font)", c.Layout.Measure)
	}
	if c.Render.Style != "" && !diagram.IsValidStyle(c.Render.Style) {
		return errors.New(errors.ErrCodeInvalidStyle, "unknown style %q", c.Render.Style)
	}
	for _, f := range c.Render.Formats {
		if !diagram.IsValidFormat(f) {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
		}
	}
	if c.Render.Padding < 0 || c.Render.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "padding and scale must not be negative")
	}
	backends := []string{"", cache.BackendNone, cache.BackendMemory, cache.BackendFile, cache.BackendRedis, cache.BackendMongo}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidOption, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// CacheConfig converts the cache section into [cache.Config].
func (c Config) CacheConfig() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Addr:    c.Cache.RedisAddr,
		DB:      c.Cache.RedisDB,
		URI:     c.Cache.MongoURI,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mindmap/config.toml, falling back to
// ~/.config. It returns "" when no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// defaultCacheDir returns the cache directory using XDG standard (~/.cache/mindmap/).
func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
