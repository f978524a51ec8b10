// Package settings persists the user display settings as a small JSON
// file next to the process. Reads fall back to defaults on any failure;
// saves overwrite the file wholesale. There is no locking: concurrent
// saves are last-writer-wins.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Settings struct {
	Theme          string `json:"theme"`
	CurrencySymbol string `json:"currency_symbol"`
}

// Defaults returns the settings used whenever the file is missing or
// unreadable.
func Defaults() Settings {
	return Settings{Theme: ThemeLight, CurrencySymbol: "$"}
}

// Store reads and writes the settings file at a fixed path.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted settings, or Defaults() on any error.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Defaults()
	}
	var cfg Settings
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults()
	}
	if cfg.Theme == "" {
		cfg.Theme = ThemeLight
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "$"
	}
	return cfg
}

// Save overwrites the settings file with cfg.
func (s *Store) Save(cfg Settings) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
