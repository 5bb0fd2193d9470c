// ABOUTME: Configuration loader for the teambuilder CLI
// ABOUTME: Merges defaults, an optional YAML config file, and environment overrides

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds client settings resolved from file, environment, and defaults.
type Config struct {
	// APIURL is the base URL of the team builder backend.
	APIURL string `yaml:"api_url"`
	// CatalogURL is the base URL of the public Pokemon catalog API.
	CatalogURL string `yaml:"catalog_url"`
	// PageSize is how many entries each "load more" fetches.
	PageSize int `yaml:"page_size"`
	// SearchLimit bounds how many catalog entries a client-side search scans.
	SearchLimit int `yaml:"search_limit"`
}

const (
	defaultAPIURL      = "http://localhost:3001"
	defaultCatalogURL  = "https://pokeapi.co/api/v2"
	defaultPageSize    = 20
	defaultSearchLimit = 2000
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:      defaultAPIURL,
		CatalogURL:  defaultCatalogURL,
		PageSize:    defaultPageSize,
		SearchLimit: defaultSearchLimit,
	}
}

// DefaultPath returns the config file location following the XDG spec.
func DefaultPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DefaultConfigDir returns the teambuilder config directory following the XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "teambuilder")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "teambuilder")
}

// Load reads configuration from the given path (optional) and applies
// environment overrides. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.SearchLimit <= 0 {
		return nil, fmt.Errorf("search_limit must be positive, got %d", cfg.SearchLimit)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.APIURL = getEnv("TEAMBUILDER_API_URL", cfg.APIURL)
	cfg.CatalogURL = getEnv("TEAMBUILDER_CATALOG_URL", cfg.CatalogURL)
	cfg.PageSize = getEnvInt("TEAMBUILDER_PAGE_SIZE", cfg.PageSize)
	cfg.SearchLimit = getEnvInt("TEAMBUILDER_SEARCH_LIMIT", cfg.SearchLimit)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
