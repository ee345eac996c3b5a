package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel     = "claude-3-haiku-20240307"
	DefaultMaxTokens = 1024
	DefaultTimeout   = 60 * time.Second
	DefaultHistory   = 100
)

// Environment variables read on top of the config file.
const (
	EnvAPIKey          = "CLAUDE_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvModel           = "ASK_MODEL"
)

// Config represents the application configuration, persisted in
// ~/.ask/config.yaml. Every field is optional.
type Config struct {
	Model       string        `yaml:"model,omitempty"`
	MaxTokens   int           `yaml:"max_tokens,omitempty"`
	Timeout     string        `yaml:"timeout,omitempty"` // e.g. "60s"
	APIKey      string        `yaml:"api_key,omitempty"`
	BaseURL     string        `yaml:"base_url,omitempty"`
	ReplayFile  string        `yaml:"replay_file,omitempty"`
	HistoryFile string        `yaml:"history_file,omitempty"`
	HistorySize int           `yaml:"history_size,omitempty"` // negative turns history off
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Render      RenderConfig  `yaml:"render,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

type RenderConfig struct {
	Width int    `yaml:"width,omitempty"`
	Style string `yaml:"style,omitempty"` // glamour style name, "auto" by default
}

// Load reads configuration from path. An empty path means
// ~/.ask/config.yaml. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	if path == "" {
		path = filepath.Join(UserConfigDir(home), "config.yaml")
	}

	cfg := &Config{}
	data, err := os.ReadFile(expandHome(path, home))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyDefaults(home)

	// Override with environment variables if present
	if apiKey := os.Getenv(EnvAnthropicAPIKey); apiKey != "" {
		cfg.APIKey = apiKey
	}
	if apiKey := os.Getenv(EnvAPIKey); apiKey != "" {
		cfg.APIKey = apiKey
	}
	if model := os.Getenv(EnvModel); model != "" {
		cfg.Model = model
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults(home string) {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout.String()
	}
	if c.ReplayFile == "" {
		c.ReplayFile = ReplayPath(home)
	}
	if c.HistoryFile == "" {
		c.HistoryFile = filepath.Join(UserConfigDir(home), "history.db")
	}
	if c.HistorySize == 0 {
		c.HistorySize = DefaultHistory
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.File == "" {
		c.Logging.File = filepath.Join(UserConfigDir(home), "ask.log")
	}
	if c.Render.Width == 0 {
		c.Render.Width = 80
	}
	if c.Render.Style == "" {
		c.Render.Style = "auto"
	}

	c.ReplayFile = expandHome(c.ReplayFile, home)
	c.HistoryFile = expandHome(c.HistoryFile, home)
	c.Logging.File = expandHome(c.Logging.File, home)
}

// Validate checks if the configuration is valid. A missing API key is not
// a configuration error: the REPL starts and chat turns report it.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	if c.Render.Width < 20 {
		return fmt.Errorf("render.width must be at least 20")
	}
	return nil
}

// HistoryEnabled reports whether input lines are recorded across runs.
func (c *Config) HistoryEnabled() bool {
	return c.HistorySize > 0
}

// TimeoutDuration returns the per-call network timeout. Validate has
// already rejected unparsable values.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
