// Package config manages application configuration for the quote
// service: network addresses, delivery endpoints, rate overrides and
// logging settings. Configuration is stored as JSON and overridable per
// field from the environment at the call sites that consume it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lender-quote/internal/logging"
)

// Config is the application configuration
type Config struct {
	// ListenAddr is the HTTP API bind address
	ListenAddr string `json:"listen_addr"`

	// WebhookURL receives delivered quote leads; empty disables delivery
	WebhookURL string `json:"webhook_url"`

	// RedisAddr enables the Redis quote cache; empty falls back to the
	// in-process cache
	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// RatesFile points at an HCL rate-override file; empty uses the
	// built-in rate sheets
	RatesFile string `json:"rates_file"`

	// StandardBBR and CurrentMVR override the built-in base rates when
	// positive
	StandardBBR float64 `json:"standard_bbr"`
	CurrentMVR  float64 `json:"current_mvr"`

	Logging logging.Config `json:"logging"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		ListenAddr: ":8080",
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

var (
	current *Config
	mu      sync.RWMutex
)

// Get returns the current configuration, initializing defaults on first
// use
func Get() *Config {
	mu.RLock()
	if current != nil {
		defer mu.RUnlock()
		return current
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = Default()
	}
	return current
}

// Set replaces the current configuration
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// Load reads configuration from a JSON file, layering it over defaults.
// A missing file is not an error; the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to a JSON file, creating parent
// directories as needed
func Save(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(home, ".lender-quote", "config.json")
}
