package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/vitae/config.yml.
type GlobalConfig struct {
	// DefaultStyle is the citation style used when a repository config
	// names none.
	DefaultStyle string `yaml:"default_style,omitempty"`
	// StyleDir is a site-wide directory of style definitions, searched
	// after the project style directory.
	StyleDir string `yaml:"style_dir,omitempty"`
	// CrossrefMailto identifies the user to the Crossref polite pool.
	CrossrefMailto string `yaml:"crossref_mailto,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "vitae"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/vitae/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.StyleDir != "" {
		cfg.StyleDir = ExpandTilde(cfg.StyleDir)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetCrossrefMailto returns the Crossref polite-pool address, preferring
// the CROSSREF_MAILTO environment variable over the global config.
func GetCrossrefMailto() string {
	if mailto := os.Getenv("CROSSREF_MAILTO"); mailto != "" {
		return mailto
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.CrossrefMailto
}

// GetPackageStyleDir returns the site-wide style directory from global
// config, or "" when unset.
func GetPackageStyleDir() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.StyleDir
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// HelpfulConfigMessage returns guidance printed when no repository is found.
func HelpfulConfigMessage() string {
	return `No vitae repository found.

Tip: Run "vitae init" in the directory where your CV data should live,
or cd into an existing repository (one containing a .vitae directory).`
}
