package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvAnthropicAPIKey, "")
	t.Setenv(EnvModel, "")
	return home
}

func TestLoadMissingFileDefaults(t *testing.T) {
	home := setHome(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("max_tokens = %d, want %d", cfg.MaxTokens, DefaultMaxTokens)
	}
	if cfg.TimeoutDuration() != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", cfg.TimeoutDuration(), DefaultTimeout)
	}
	if want := filepath.Join(home, ".ask_replay"); cfg.ReplayFile != want {
		t.Errorf("replay file = %q, want %q", cfg.ReplayFile, want)
	}
	if want := filepath.Join(home, ".ask", "history.db"); cfg.HistoryFile != want {
		t.Errorf("history file = %q, want %q", cfg.HistoryFile, want)
	}
	if cfg.HistorySize != DefaultHistory {
		t.Errorf("history size = %d, want %d", cfg.HistorySize, DefaultHistory)
	}
	if cfg.APIKey != "" {
		t.Errorf("api key = %q, want empty", cfg.APIKey)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".ask")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	body := `
model: claude-from-file
max_tokens: 2048
timeout: 15s
api_key: file-key
replay_file: ~/saved/replay.json
logging:
  level: debug
render:
  width: 100
  style: dark
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvModel, "claude-from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "claude-from-env" {
		t.Errorf("model = %q, env should win", cfg.Model)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("api key = %q, env should win", cfg.APIKey)
	}
	if cfg.MaxTokens != 2048 {
		t.Errorf("max_tokens = %d", cfg.MaxTokens)
	}
	if cfg.TimeoutDuration() != 15*time.Second {
		t.Errorf("timeout = %v", cfg.TimeoutDuration())
	}
	if want := filepath.Join(home, "saved", "replay.json"); cfg.ReplayFile != want {
		t.Errorf("replay file = %q, want %q", cfg.ReplayFile, want)
	}
	if cfg.Logging.Level != "debug" || cfg.Render.Width != 100 || cfg.Render.Style != "dark" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestAnthropicKeyFallback(t *testing.T) {
	setHome(t)
	t.Setenv(EnvAnthropicAPIKey, "anthropic-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIKey != "anthropic-key" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
}

func TestLoadExplicitPathInvalid(t *testing.T) {
	home := setHome(t)
	path := filepath.Join(home, "bad.yaml")
	if err := os.WriteFile(path, []byte("timeout: forever\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestLoadUnparsable(t *testing.T) {
	home := setHome(t)
	path := filepath.Join(home, "broken.yaml")
	if err := os.WriteFile(path, []byte("model: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.applyDefaults("/home/u")
		return c
	}
	if err := base().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max tokens", func(c *Config) { c.MaxTokens = -1 }},
		{"negative timeout", func(c *Config) { c.Timeout = "-5s" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"narrow render", func(c *Config) { c.Render.Width = 5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base()
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestHistorySizeNegativeDisables(t *testing.T) {
	home := setHome(t)
	path := filepath.Join(home, "config.yaml")
	if err := os.WriteFile(path, []byte("history_size: -1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HistoryEnabled() {
		t.Errorf("history enabled with history_size = %d", cfg.HistorySize)
	}

	if err := os.WriteFile(path, []byte("history_size: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.HistoryEnabled() || cfg.HistorySize != DefaultHistory {
		t.Errorf("history_size 0: enabled=%v size=%d, want default %d", cfg.HistoryEnabled(), cfg.HistorySize, DefaultHistory)
	}
}
