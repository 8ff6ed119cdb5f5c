package library

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// Config holds the tunable parts of a simulation.
type Config struct {
	FinePerDay  float64 `toml:"fine_per_day"`
	JournalName string  `toml:"journal_name"`
	Catalog     string  `toml:"catalog"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		FinePerDay:  DefaultFinePerDay,
		JournalName: "circulation",
	}
}

// LoadConfig decodes a TOML file over the defaults. A missing file yields the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to decode TOML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	if c.FinePerDay < 0 {
		return fmt.Errorf("fine_per_day must not be negative, got %v", c.FinePerDay)
	}
	if c.JournalName == "" {
		return fmt.Errorf("journal_name must not be empty")
	}
	return nil
}
