// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/vitae/internal/status"
)

// Config is repository configuration stored in .vitae/config.json.
type Config struct {
	// CiteStyle is the default citation style name.
	CiteStyle string `json:"cite_style,omitempty"`
	// StyleDir holds project-level style definitions, relative to the
	// repository root unless absolute.
	StyleDir string `json:"style_dir,omitempty"`
	// StatusRanges overrides the stage intervals. Published is shipped as
	// [50,100) so the terminal "Resting" code stays citable; narrow it to
	// [50,90) to exclude resting records instead.
	StatusRanges *status.Ranges `json:"status_ranges,omitempty"`
	// StatusChoices overrides the ordinal status label set.
	StatusChoices []status.Choice `json:"status_choices,omitempty"`
}

// Repository layout.
const (
	VitaeDir   = ".vitae"
	ConfigFile = "config.json"
	DBFile     = "cv.db"
	ExportFile = "cv.jsonl"
	StylesDir  = "styles"
)

// DefaultCiteStyle is used when the config names no style.
const DefaultCiteStyle = "apa"

// VitaePath returns the path to the .vitae directory from a root path.
func VitaePath(root string) string {
	return filepath.Join(root, VitaeDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, VitaeDir, ConfigFile)
}

// DBPath returns the path to the SQLite database from a root path.
func DBPath(root string) string {
	return filepath.Join(root, VitaeDir, DBFile)
}

// StylePath returns the conventional project style directory from a root path.
func StylePath(root string) string {
	return filepath.Join(root, VitaeDir, StylesDir)
}

// ExportPath returns the path to the JSONL export from a root path.
func ExportPath(root string) string {
	return filepath.Join(root, VitaeDir, ExportFile)
}

// IsRepository checks if the given path contains a vitae repository.
func IsRepository(root string) bool {
	info, err := os.Stat(VitaePath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a vitae repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a vitae repository (no %s directory found)", VitaeDir)
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root. A
// missing config file yields the defaults, not an error.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Style returns the configured citation style, falling back to the global
// config's default and then to the bundled default.
func (c *Config) Style() string {
	if c.CiteStyle != "" {
		return c.CiteStyle
	}
	if global, err := LoadGlobalConfig(); err == nil && global.DefaultStyle != "" {
		return global.DefaultStyle
	}
	return DefaultCiteStyle
}

// ProjectStyleDir resolves the project style directory against root.
// Returns "" when none is configured and the conventional .vitae/styles
// directory does not exist.
func (c *Config) ProjectStyleDir(root string) string {
	if c.StyleDir != "" {
		if filepath.IsAbs(c.StyleDir) {
			return c.StyleDir
		}
		return filepath.Join(root, c.StyleDir)
	}
	conventional := filepath.Join(root, VitaeDir, StylesDir)
	if info, err := os.Stat(conventional); err == nil && info.IsDir() {
		return conventional
	}
	return ""
}

// Scheme builds the status scheme from the config, validating any
// overridden ranges.
func (c *Config) Scheme() (*status.Scheme, error) {
	scheme := status.DefaultScheme()
	if c.StatusRanges != nil {
		if err := c.StatusRanges.Validate(); err != nil {
			return nil, fmt.Errorf("invalid status ranges: %w", err)
		}
		scheme.Ranges = *c.StatusRanges
	}
	if len(c.StatusChoices) > 0 {
		scheme.Choices = c.StatusChoices
	}
	return scheme, nil
}
