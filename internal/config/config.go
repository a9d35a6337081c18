// Package config handles jfp configuration file location and parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the parsed jfp configuration.
type Config struct {
	// Feed identifies the repository whose releases the updater follows.
	Feed Feed `toml:"feed" yaml:"feed" json:"feed"`
	// Referral configures outbound-link referral codes.
	Referral Referral `toml:"referral" yaml:"referral" json:"referral"`
	// Output is the default output format (text, json, yaml).
	Output string `toml:"output" yaml:"output" json:"output"`
}

// Feed identifies a release feed repository. BaseURL overrides the API
// endpoint, for GitHub Enterprise installs or mirrors.
type Feed struct {
	Owner   string `toml:"owner" yaml:"owner" json:"owner"`
	Repo    string `toml:"repo" yaml:"repo" json:"repo"`
	BaseURL string `toml:"base_url" yaml:"base_url" json:"base_url"`
}

// Referral configures outbound referral codes per host.
type Referral struct {
	Disabled bool              `toml:"disabled" yaml:"disabled" json:"disabled"`
	Codes    map[string]string `toml:"codes" yaml:"codes" json:"codes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Feed:   Feed{Owner: "jfplabs", Repo: "jfp"},
		Output: "text",
	}
}

// candidateNames are tried in order inside the config directory.
var candidateNames = []string{"config.toml", "config.yaml", "config.yml", "config.json"}

// Locate returns the path of the first existing config file, or "" when no
// config file exists (the defaults apply).
func Locate() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range candidateNames {
		path := filepath.Join(dir, "jfp", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the config at path, applying defaults for unset fields. An
// empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := unmarshal(path, content, cfg); err != nil {
		return nil, err
	}

	if cfg.Feed.Owner == "" || cfg.Feed.Repo == "" {
		return nil, fmt.Errorf("config %s: feed owner and repo must both be set", path)
	}
	return cfg, nil
}
