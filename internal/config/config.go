package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration.
type Config struct {
	// Catalog settings
	CatalogSource string `json:"catalog_source"`
	TMDBAPIKey    string `json:"tmdb_api_key"`
	OMDBAPIKey    string `json:"omdb_api_key"`
	TVDBAPIKey    string `json:"tvdb_api_key"`
	Language      string `json:"language"`

	// File sources
	DriveAPIKey string `json:"drive_api_key"`
	LibraryPath string `json:"library_path"`

	// Behaviour
	EnableLogging    bool `json:"enable_logging"`
	LogRetentionDays int  `json:"log_retention_days"`
	CacheEnabled     bool `json:"cache_enabled"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CatalogSource:    "tmdb",
		Language:         "en-US",
		EnableLogging:    true,
		LogRetentionDays: 30,
		CacheEnabled:     true,
	}
}

// ConfigDir returns the application configuration directory
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".showdeck"), nil
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// CacheDir returns the directory used for catalog response caches
func CacheDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tmdb_cache"), nil
}

// Load reads the configuration from disk. Missing fields keep their
// defaults, and SHOWDECK_* environment variables win over file values.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Fill in any missing fields with defaults
	defaults := DefaultConfig()
	if cfg.CatalogSource == "" {
		cfg.CatalogSource = defaults.CatalogSource
	}
	if cfg.Language == "" {
		cfg.Language = defaults.Language
	}
	if cfg.LogRetentionDays == 0 {
		cfg.LogRetentionDays = defaults.LogRetentionDays
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrides := map[string]*string{
		"SHOWDECK_CATALOG_SOURCE": &cfg.CatalogSource,
		"SHOWDECK_TMDB_API_KEY":   &cfg.TMDBAPIKey,
		"SHOWDECK_OMDB_API_KEY":   &cfg.OMDBAPIKey,
		"SHOWDECK_TVDB_API_KEY":   &cfg.TVDBAPIKey,
		"SHOWDECK_LANGUAGE":       &cfg.Language,
		"SHOWDECK_DRIVE_API_KEY":  &cfg.DriveAPIKey,
		"SHOWDECK_LIBRARY_PATH":   &cfg.LibraryPath,
	}
	for name, field := range overrides {
		if value := os.Getenv(name); value != "" {
			*field = value
		}
	}
}

// APIKeyFor returns the configured key for the named catalog source.
func (cfg *Config) APIKeyFor(source string) string {
	switch source {
	case "tmdb":
		return cfg.TMDBAPIKey
	case "omdb":
		return cfg.OMDBAPIKey
	case "tvdb":
		return cfg.TVDBAPIKey
	}
	return ""
}

// Save writes the configuration to disk
func (cfg *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
