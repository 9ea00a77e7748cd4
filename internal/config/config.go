// Package config loads and saves tripkit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all tripkit configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`

	// Rates is the supplied exchange-rate table: units of home
	// currency per one unit of the keyed currency. There is no rate
	// fetching; users maintain this table themselves.
	Rates map[string]float64 `toml:"rates,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency     string `toml:"currency"`
	DefaultStyle string `toml:"default_style"`
	DataDir      string `toml:"data_dir,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:     "USD",
			DefaultStyle: "balanced",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tripkit")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tripkit")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// CostsPath returns the path to the cost-data override file.
func CostsPath() string {
	return filepath.Join(Dir(), "costs.toml")
}

// DefaultDataDir returns the default location of the trip database.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "tripkit")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "tripkit")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Rate returns the conversion rate from the given currency into the
// home currency. Same-currency and unknown currencies return 1 with
// ok=false only in the unknown case.
func (c Config) Rate(currency string) (float64, bool) {
	if currency == "" || currency == c.General.Currency {
		return 1, true
	}
	r, ok := c.Rates[currency]
	if !ok || r <= 0 {
		return 1, false
	}
	return r, true
}
