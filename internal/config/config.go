package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model. It captures cache bounds,
// batch concurrency, trend inputs, and metrics exposition.
type Config struct {
	Cache   CacheConfig   `yaml:"cache"`
	Batch   BatchConfig   `yaml:"batch"`
	Trends  TrendsConfig  `yaml:"trends"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type CacheConfig struct {
	// SQLite path backing the prediction cache. ":memory:" keeps the cache
	// process-local; a file path survives restarts.
	Path string `yaml:"path"`
	// Max retained entries; least-recently-accessed entries are trimmed
	// past this. 0 disables the bound.
	Capacity int `yaml:"capacity"`
	// Entry time-to-live in seconds. 0 disables expiry.
	TTLSeconds int `yaml:"ttlSeconds"`
}

// TTL returns the configured entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type BatchConfig struct {
	// Worker goroutines for batch prediction.
	Workers int `yaml:"workers"`
	// Optional pacing of batch predictions per second. 0 disables.
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type TrendsConfig struct {
	// Hashtags currently considered trending. Feeds the trend-alignment
	// virality factor; empty by default (no external trend source).
	Hashtags []string `yaml:"hashtags"`
}

type MetricsConfig struct {
	// Listen address for /metrics, e.g. ":9090". Empty disables.
	Addr string `yaml:"addr"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Cache:   CacheConfig{Path: ":memory:", Capacity: 1024, TTLSeconds: 3600},
		Batch:   BatchConfig{Workers: 4, RPS: 0, Burst: 0},
		Trends:  TrendsConfig{Hashtags: nil},
		Metrics: MetricsConfig{Addr: ""},
	}
}

// ResolveEnv fills in config fields from environment variables if not set.
func (c *Config) ResolveEnv() {
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = os.Getenv("METRICS_ADDR")
	}
	if c.Cache.Path == "" {
		if v := os.Getenv("SURGECAST_CACHE_PATH"); v != "" {
			c.Cache.Path = v
		} else {
			c.Cache.Path = ":memory:"
		}
	}
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
