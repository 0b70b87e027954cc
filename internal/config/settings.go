package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"expensetracker/internal/core"
)

// Settings is the optional YAML settings file. It tailors the category
// set offered by the presentation layer and the currency symbol used
// in rendering. A missing file yields the defaults.
type Settings struct {
	Categories []string `yaml:"categories,omitempty"`
	Currency   string   `yaml:"currency,omitempty"`
}

// DefaultSettings returns the built-in category set and currency.
func DefaultSettings() *Settings {
	return &Settings{
		Categories: append([]string(nil), core.Categories...),
		Currency:   "$",
	}
}

// LoadSettings reads the settings file. Absence is not an error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	if len(s.Categories) == 0 {
		s.Categories = append([]string(nil), core.Categories...)
	}
	if s.Currency == "" {
		s.Currency = "$"
	}
	return &s, nil
}

// Save writes the settings back to disk.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// HasCategory reports whether the label is in the configured set. The
// core accepts unknown labels; this only drives the pickers.
func (s *Settings) HasCategory(label string) bool {
	for _, c := range s.Categories {
		if c == label {
			return true
		}
	}
	return false
}
