// Package config loads and saves zdir's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/zarlcorp/zdir/internal/directory"
	"github.com/zarlcorp/zdir/internal/placeholder"
)

// FileName is the config file inside the data directory.
const FileName = "config.toml"

// Config holds user-tunable settings.
type Config struct {
	API  APIConfig  `toml:"api"`
	Sort SortConfig `toml:"sort"`
}

// APIConfig configures the remote users API.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// SortConfig sets the default listing order.
type SortConfig struct {
	Key   string `toml:"key"`   // "name" or "company"
	Order string `toml:"order"` // "asc" or "desc"
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API:  APIConfig{BaseURL: "https://jsonplaceholder.typicode.com", TimeoutSeconds: 30},
		Sort: SortConfig{Key: "name", Order: "asc"},
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// a malformed file is an error so a typo never silently reverts settings.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = Default().API.BaseURL
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = Default().API.TimeoutSeconds
	}

	return cfg, nil
}

// Save writes the config file, creating its directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("save config: encode: %w", err)
	}

	return nil
}

// ClientConfig converts the API section for the placeholder client.
func (c Config) ClientConfig() placeholder.Config {
	return placeholder.Config{
		BaseURL: c.API.BaseURL,
		Timeout: time.Duration(c.API.TimeoutSeconds) * time.Second,
	}
}

// SortSpec parses the configured default sort. Unknown values fall back to
// name ascending rather than failing startup.
func (c Config) SortSpec() (directory.SortKey, directory.SortOrder) {
	key, err := directory.ParseSortKey(c.Sort.Key)
	if err != nil {
		key = directory.SortByName
	}
	order, err := directory.ParseSortOrder(c.Sort.Order)
	if err != nil {
		order = directory.Ascending
	}
	return key, order
}
