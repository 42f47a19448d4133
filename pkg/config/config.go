// Package config loads the hubsync configuration from a YAML file, applying
// defaults and environment overrides for settings that operators commonly
// control through the environment (cache root, credentials mode).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/modelops/hubsync/pkg/storage"
)

// Config is the top-level hubsync configuration.
type Config struct {
	// CacheRoot is the root directory of the hub-style model cache. All
	// derived paths (models--*, refs, snapshots) live under it.
	CacheRoot string `yaml:"cache_root,omitempty"`

	// RefFile is the local file the resolved commit hash is written to.
	// Defaults to "main" in the working directory for compatibility with
	// existing training jobs.
	RefFile string `yaml:"ref_file,omitempty"`

	Store   StoreConfig   `yaml:"store,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// StoreConfig configures access to the object store.
type StoreConfig struct {
	// DefaultBucketURI is used when a command is invoked without an
	// explicit bucket URI. May be empty.
	DefaultBucketURI string `yaml:"default_bucket_uri,omitempty"`
	// Anonymous selects unsigned requests (public buckets).
	Anonymous bool `yaml:"anonymous,omitempty"`
	// Region overrides the region from the ambient AWS configuration.
	Region string `yaml:"region,omitempty"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level       string `yaml:"level,omitempty"`
	Encoding    string `yaml:"encoding,omitempty"`
	Development bool   `yaml:"development,omitempty"`
}

var (
	config     *Config
	configOnce sync.Once
	configErr  error
	configMu   sync.RWMutex
)

// Default returns a Config populated from the environment only, without
// reading any file. The cache root resolution order matches the hub
// convention: HUBSYNC_CACHE_ROOT, HF_HUB_CACHE, HF_HOME/hub, then
// ~/.cache/huggingface/hub.
func Default() *Config {
	cfg := &Config{RefFile: "main"}
	cfg.CacheRoot = defaultCacheRoot()
	return cfg
}

func defaultCacheRoot() string {
	if v := os.Getenv("HUBSYNC_CACHE_ROOT"); v != "" {
		return v
	}
	if v := os.Getenv("HF_HUB_CACHE"); v != "" {
		return v
	}
	if v := os.Getenv("HF_HOME"); v != "" {
		return filepath.Join(v, "hub")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".cache", "huggingface", "hub")
	}
	return filepath.Join(home, ".cache", "huggingface", "hub")
}

// Load loads the configuration from the specified YAML file once and caches
// it globally.
func Load(configPath string) (*Config, error) {
	configOnce.Do(func() {
		cfg, err := Parse(configPath)
		if err != nil {
			configErr = err
			return
		}
		configMu.Lock()
		config = cfg
		configMu.Unlock()
	})
	if configErr != nil {
		return nil, configErr
	}
	configMu.RLock()
	defer configMu.RUnlock()
	return config, nil
}

// Parse parses the YAML config file without touching the global cache.
// Settings absent from the file keep their environment-derived defaults.
func Parse(configPath string) (*Config, error) {
	// Resolve symlinks to handle Kubernetes ConfigMap mounts
	resolved, _ := filepath.EvalSymlinks(configPath)
	if resolved == "" {
		resolved = configPath
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.CacheRoot == "" {
		return fmt.Errorf("cache_root must not be empty")
	}
	if cfg.RefFile == "" {
		cfg.RefFile = "main"
	}
	if cfg.Store.DefaultBucketURI != "" {
		if _, _, err := storage.ParseURI(cfg.Store.DefaultBucketURI); err != nil {
			return fmt.Errorf("store.default_bucket_uri: %w", err)
		}
	}
	return nil
}
