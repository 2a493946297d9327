// Package config loads voxpilot's on-disk configuration from
// ~/.voxpilot/config.yaml. A missing file yields the defaults; a
// malformed one is an error rather than a silent fallback.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for voxpilot.
type Config struct {
	// Browser controls the Playwright session
	Browser BrowserConfig `yaml:"browser"`

	// Match tunes tab selection and the navigation fallback
	Match MatchConfig `yaml:"match"`

	// Sites are extra spoken-keyword entries, tried before the
	// built-in table
	Sites []SiteEntry `yaml:"sites"`

	// Policy restricts where voice navigation may go
	Policy PolicyConfig `yaml:"policy"`

	// LLM configures the intent classifier
	LLM LLMConfig `yaml:"llm"`
}

// BrowserConfig controls the assistant's browser session.
type BrowserConfig struct {
	Headless bool   `yaml:"headless"`
	StartURL string `yaml:"start_url"`
}

// MatchConfig tunes the resolver.
type MatchConfig struct {
	// Threshold is the minimum 0-100 score for a tab switch
	Threshold float64 `yaml:"threshold"`

	// SearchURL is the search-engine base for unresolvable input
	SearchURL string `yaml:"search_url"`
}

// SiteEntry maps a spoken keyword to a URL.
type SiteEntry struct {
	Keyword string `yaml:"keyword"`
	URL     string `yaml:"url"`
}

// PolicyConfig lists hostname globs that voice navigation must refuse.
type PolicyConfig struct {
	DeniedDomains []string `yaml:"denied_domains"`
}

// LLMConfig configures the intent classifier. The API key is read
// from the environment variable named by APIKeyEnv, never from the
// file itself.
type LLMConfig struct {
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Browser: BrowserConfig{
			Headless: false,
			StartURL: "https://www.google.com",
		},
		Match: MatchConfig{
			Threshold: 30,
			SearchURL: "https://www.google.com/search?q=",
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
	}
}

// DefaultPath returns ~/.voxpilot/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".voxpilot", "config.yaml"), nil
}

// Load reads the configuration at path, layering it over the defaults.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Match.Threshold < 0 || c.Match.Threshold > 100 {
		return fmt.Errorf("match.threshold must be in [0,100], got %v", c.Match.Threshold)
	}
	if c.Match.SearchURL == "" {
		return fmt.Errorf("match.search_url must not be empty")
	}
	for i, s := range c.Sites {
		if s.Keyword == "" || s.URL == "" {
			return fmt.Errorf("sites[%d]: keyword and url are both required", i)
		}
	}
	return nil
}
