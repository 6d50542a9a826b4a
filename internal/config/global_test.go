package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGlobalConfig(t *testing.T, content string) {
	t.Helper()
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	dir := filepath.Join(configHome, GlobalConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/vitae/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error: %v", err)
	}
	if cfg.DefaultStyle != "" || cfg.CrossrefMailto != "" {
		t.Errorf("missing file should yield empty config, got %+v", cfg)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	writeGlobalConfig(t, strings.Join([]string{
		"default_style: chicago-author-date",
		"crossref_mailto: user@example.org",
	}, "\n"))

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error: %v", err)
	}
	if cfg.DefaultStyle != "chicago-author-date" {
		t.Errorf("DefaultStyle = %q", cfg.DefaultStyle)
	}
	if cfg.CrossrefMailto != "user@example.org" {
		t.Errorf("CrossrefMailto = %q", cfg.CrossrefMailto)
	}
}

func TestLoadGlobalConfig_Invalid(t *testing.T) {
	writeGlobalConfig(t, "default_style: [unclosed")
	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() on invalid YAML passed, want error")
	}
}

func TestLoadGlobalConfig_Cache(t *testing.T) {
	writeGlobalConfig(t, "default_style: apa")

	first, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	second, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("second load did not hit the cache")
	}

	ResetGlobalConfigCache()
	third, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if first == third {
		t.Error("reset did not clear the cache")
	}
}

func TestGetCrossrefMailto(t *testing.T) {
	writeGlobalConfig(t, "crossref_mailto: config@example.org")

	t.Setenv("CROSSREF_MAILTO", "")
	if got := GetCrossrefMailto(); got != "config@example.org" {
		t.Errorf("GetCrossrefMailto() = %q, want config value", got)
	}

	t.Setenv("CROSSREF_MAILTO", "env@example.org")
	if got := GetCrossrefMailto(); got != "env@example.org" {
		t.Errorf("GetCrossrefMailto() = %q, want env override", got)
	}
}

func TestGetPackageStyleDir(t *testing.T) {
	writeGlobalConfig(t, "style_dir: /site/styles")
	if got := GetPackageStyleDir(); got != "/site/styles" {
		t.Errorf("GetPackageStyleDir() = %q", got)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/styles", filepath.Join(home, "styles")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~user/styles", "~user/styles"}, // Other users' homes are not expanded
	}
	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHelpfulConfigMessage(t *testing.T) {
	msg := HelpfulConfigMessage()
	if !strings.Contains(msg, "vitae init") {
		t.Errorf("message %q does not mention vitae init", msg)
	}
}
