package config

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults applied before file and environment values are read.
const (
	DefaultCacheSize         = 1024
	DefaultWatchPort         = 4900
	DefaultWatchDebounceMS   = 300
	DefaultObjectStoreUseSSL = true
)

// Config is the top-level configuration struct for solgather.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Base        string            `mapstructure:"base"`
	Sources     []string          `mapstructure:"sources"`
	Remappings  []string          `mapstructure:"remappings"`
	Output      string            `mapstructure:"output"`
	GitHub      GitHubConfig      `mapstructure:"github"`
	ObjectStore ObjectStoreConfig `mapstructure:"objectstore"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Watch       WatchConfig       `mapstructure:"watch"`
}

// GitHubConfig holds settings for the GitHub resolver backend.
type GitHubConfig struct {
	Token string `mapstructure:"token"`
	Ref   string `mapstructure:"ref"`
}

// ObjectStoreConfig holds S3-compatible object store settings. The
// backend is enabled only when Endpoint is set; buckets are named by
// the s3://bucket/key references themselves.
type ObjectStoreConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// CacheConfig sizes the in-process resolution cache.
type CacheConfig struct {
	Size int `mapstructure:"size"`
}

// WatchConfig holds watch mode settings.
type WatchConfig struct {
	Port       int `mapstructure:"port"`
	DebounceMS int `mapstructure:"debounce_ms"`
}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidCacheSize indicates the cache size is negative.
	ErrInvalidCacheSize = errors.New("cache.size must be non-negative")
	// ErrInvalidWatchPort indicates the watch port is out of range.
	ErrInvalidWatchPort = errors.New("watch.port must be between 1 and 65535")
	// ErrInvalidWatchDebounce indicates the debounce interval is negative.
	ErrInvalidWatchDebounce = errors.New("watch.debounce_ms must be non-negative")
	// ErrInvalidRemapping indicates a remapping entry is not prefix=target.
	ErrInvalidRemapping = errors.New("remappings entries must look like prefix=target")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Cache.Size < 0 {
		return ErrInvalidCacheSize
	}

	if c.Watch.Port < 1 || c.Watch.Port > 65535 {
		return ErrInvalidWatchPort
	}

	if c.Watch.DebounceMS < 0 {
		return ErrInvalidWatchDebounce
	}

	for _, remapping := range c.Remappings {
		prefix, _, ok := strings.Cut(remapping, "=")
		if !ok || prefix == "" {
			return fmt.Errorf("%w: %q", ErrInvalidRemapping, remapping)
		}
	}

	return nil
}
