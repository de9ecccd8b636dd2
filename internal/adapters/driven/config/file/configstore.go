// Package file loads and persists the CLI configuration as TOML.
package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/doclane/doclane-cli/internal/core/domain"
)

// Config holds the tunable settings for the doclane CLI. Every field has a
// default so a missing config file is never an error.
type Config struct {
	APIBaseURL    string `toml:"api_base_url"`
	WebhookURL    string `toml:"webhook_url"`
	CallbackPort  int    `toml:"callback_port"`
	BatchSize     int    `toml:"batch_size"`
	BatchInterval string `toml:"batch_interval"`
	DocExtension  string `toml:"doc_extension"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIBaseURL:    "https://app.doclane.com",
		WebhookURL:    "https://hooks.doclane.com/github",
		CallbackPort:  8008,
		BatchSize:     10,
		BatchInterval: "1s",
		DocExtension:  domain.DocExtension,
	}
}

// BatchPause parses the configured inter-batch interval, falling back to
// one second when unset or unparsable.
func (c Config) BatchPause() time.Duration {
	d, err := time.ParseDuration(c.BatchInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// ConfigStore reads and writes the TOML config file.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a store rooted at configDir.
// If configDir is empty, defaults to ~/.doclane.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".doclane")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Load reads the config file, filling unset fields from the defaults.
// A missing file yields the defaults.
func (s *ConfigStore) Load() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := Defaults()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return withDefaults(cfg), nil
}

// Save persists the configuration with restricted permissions.
func (s *ConfigStore) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Dir returns the directory holding the config file and sibling state.
func (s *ConfigStore) Dir() string {
	return filepath.Dir(s.filePath)
}

func withDefaults(cfg Config) Config {
	def := Defaults()
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = def.APIBaseURL
	}
	if cfg.WebhookURL == "" {
		cfg.WebhookURL = def.WebhookURL
	}
	if cfg.CallbackPort <= 0 {
		cfg.CallbackPort = def.CallbackPort
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.BatchInterval == "" {
		cfg.BatchInterval = def.BatchInterval
	}
	if cfg.DocExtension == "" {
		cfg.DocExtension = def.DocExtension
	}
	return cfg
}
