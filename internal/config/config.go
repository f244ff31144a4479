package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds Confluence and Gemini connection settings.
type Config struct {
	URL       string `yaml:"url"        mapstructure:"url"`
	Username  string `yaml:"username"   mapstructure:"username"`
	Token     string `yaml:"token"      mapstructure:"token"`
	GeminiKey string `yaml:"gemini_key" mapstructure:"gemini_key"`
	// GeminiURL overrides the Gemini API base URL, e.g. for an egress proxy.
	// Empty means the public endpoint.
	GeminiURL string `yaml:"gemini_url,omitempty" mapstructure:"gemini_url"`
}

// DefaultPath returns the default config file path (~/.confluence-md.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".confluence-md.yaml"
	}
	return filepath.Join(home, ".confluence-md.yaml")
}

// Load reads config from the YAML file and applies env var overrides.
// configPath may be empty to use the default path.
func Load(configPath string) (Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = DefaultPath()
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Env var overrides
	v.BindEnv("url", "CONFLUENCE_URL")
	v.BindEnv("username", "CONFLUENCE_USERNAME")
	v.BindEnv("token", "CONFLUENCE_API_TOKEN")
	v.BindEnv("gemini_key", "GEMINI_API_KEY")
	v.BindEnv("gemini_url", "GEMINI_API_URL")

	// Read the config file (ignore "not found" errors so env vars still work)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only ignore file-not-found; other errors (e.g. parse) are real
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the Confluence fields are present. The Gemini key is
// checked separately by ValidateGemini since it is only needed when a
// template merge is requested.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("Confluence URL is required (set in config file or CONFLUENCE_URL env var)")
	}
	if c.Username == "" {
		return fmt.Errorf("Confluence username is required (set in config file or CONFLUENCE_USERNAME env var)")
	}
	if c.Token == "" {
		return fmt.Errorf("Confluence API token is required (set in config file or CONFLUENCE_API_TOKEN env var)")
	}
	return nil
}

// ValidateGemini checks that the Gemini API key is present.
func (c Config) ValidateGemini() error {
	if c.GeminiKey == "" {
		return fmt.Errorf("Gemini API key is required for template merging (set in config file or GEMINI_API_KEY env var)")
	}
	return nil
}

// Save writes the config to the given path (or default path if empty).
func Save(cfg Config, configPath string) error {
	if configPath == "" {
		configPath = DefaultPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
