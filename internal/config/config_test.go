package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/vitae/internal/status"
)

func TestPathFunctions(t *testing.T) {
	root := "/some/root"

	if got, want := VitaePath(root), filepath.Join(root, ".vitae"); got != want {
		t.Errorf("VitaePath() = %q, want %q", got, want)
	}
	if got, want := ConfigPath(root), filepath.Join(root, ".vitae", "config.json"); got != want {
		t.Errorf("ConfigPath() = %q, want %q", got, want)
	}
	if got, want := DBPath(root), filepath.Join(root, ".vitae", "cv.db"); got != want {
		t.Errorf("DBPath() = %q, want %q", got, want)
	}
	if got, want := ExportPath(root), filepath.Join(root, ".vitae", "cv.jsonl"); got != want {
		t.Errorf("ExportPath() = %q, want %q", got, want)
	}
	if got, want := StylePath(root), filepath.Join(root, ".vitae", "styles"); got != want {
		t.Errorf("StylePath() = %q, want %q", got, want)
	}
}

func TestIsRepository(t *testing.T) {
	dir := t.TempDir()
	if IsRepository(dir) {
		t.Error("empty dir reported as repository")
	}

	if err := os.Mkdir(VitaePath(dir), 0755); err != nil {
		t.Fatal(err)
	}
	if !IsRepository(dir) {
		t.Error("dir with .vitae not reported as repository")
	}
}

func TestIsRepository_FileNotDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(VitaePath(dir), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if IsRepository(dir) {
		t.Error("a .vitae file (not dir) reported as repository")
	}
}

func TestFindRepository(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(VitaePath(root), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRepository(nested)
	if err != nil {
		t.Fatalf("FindRepository() error: %v", err)
	}
	// Compare via Stat; t.TempDir may sit behind a symlink.
	wantInfo, _ := os.Stat(root)
	gotInfo, _ := os.Stat(found)
	if !os.SameFile(wantInfo, gotInfo) {
		t.Errorf("FindRepository() = %q, want %q", found, root)
	}
}

func TestFindRepository_NotFound(t *testing.T) {
	_, err := FindRepository(t.TempDir())
	if err == nil {
		t.Fatal("FindRepository() in bare tree passed, want error")
	}
	if !strings.Contains(err.Error(), ".vitae") {
		t.Errorf("error = %v, want mention of .vitae", err)
	}
}

func TestConfig_SaveAndLoad(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(VitaePath(root), 0755); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{
		CiteStyle: "chicago-author-date",
		StyleDir:  "styles",
		StatusRanges: &status.Ranges{
			InPrep:     status.Range{Min: 0, Max: 10},
			InRevision: status.Range{Min: 20, Max: 50},
			Published:  status.Range{Min: 50, Max: 90},
		},
	}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.CiteStyle != "chicago-author-date" || loaded.StyleDir != "styles" {
		t.Errorf("Load() = %+v", loaded)
	}
	if loaded.StatusRanges == nil || loaded.StatusRanges.Published.Max != 90 {
		t.Errorf("status ranges = %+v", loaded.StatusRanges)
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(VitaePath(root), 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CiteStyle != "" || cfg.StatusRanges != nil {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(VitaePath(root), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(root), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(root); err == nil {
		t.Error("Load() on invalid JSON passed, want error")
	}
}

func TestConfig_Style(t *testing.T) {
	ResetGlobalConfigCache()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defer ResetGlobalConfigCache()

	cfg := &Config{CiteStyle: "mla"}
	if got := cfg.Style(); got != "mla" {
		t.Errorf("Style() = %q, want repo value", got)
	}

	cfg = &Config{}
	if got := cfg.Style(); got != DefaultCiteStyle {
		t.Errorf("Style() = %q, want bundled default", got)
	}
}

func TestProjectStyleDir(t *testing.T) {
	root := t.TempDir()

	cfg := &Config{}
	if got := cfg.ProjectStyleDir(root); got != "" {
		t.Errorf("ProjectStyleDir() = %q, want empty without config or conventional dir", got)
	}

	if err := os.MkdirAll(StylePath(root), 0755); err != nil {
		t.Fatal(err)
	}
	if got := cfg.ProjectStyleDir(root); got != StylePath(root) {
		t.Errorf("ProjectStyleDir() = %q, want conventional dir", got)
	}

	cfg = &Config{StyleDir: "custom-styles"}
	if got, want := cfg.ProjectStyleDir(root), filepath.Join(root, "custom-styles"); got != want {
		t.Errorf("ProjectStyleDir() = %q, want %q", got, want)
	}

	cfg = &Config{StyleDir: "/abs/styles"}
	if got := cfg.ProjectStyleDir(root); got != "/abs/styles" {
		t.Errorf("ProjectStyleDir() = %q, want absolute path kept", got)
	}
}

func TestConfig_Scheme(t *testing.T) {
	cfg := &Config{}
	scheme, err := cfg.Scheme()
	if err != nil {
		t.Fatalf("Scheme() error: %v", err)
	}
	if scheme.Ranges != status.DefaultRanges() {
		t.Errorf("default scheme ranges = %+v", scheme.Ranges)
	}

	cfg = &Config{StatusRanges: &status.Ranges{
		InPrep:     status.Range{Min: 0, Max: 30},
		InRevision: status.Range{Min: 20, Max: 50},
		Published:  status.Range{Min: 50, Max: 90},
	}}
	if _, err := cfg.Scheme(); err == nil {
		t.Error("Scheme() with overlapping ranges passed, want error")
	}

	cfg = &Config{
		StatusRanges: &status.Ranges{
			InPrep:     status.Range{Min: 0, Max: 10},
			InRevision: status.Range{Min: 20, Max: 50},
			Published:  status.Range{Min: 50, Max: 90},
		},
		StatusChoices: []status.Choice{{Code: 0, Label: "Draft"}},
	}
	scheme, err = cfg.Scheme()
	if err != nil {
		t.Fatalf("Scheme() error: %v", err)
	}
	code := 0
	if got := scheme.Label(&code); got != "Draft" {
		t.Errorf("overridden label = %q, want Draft", got)
	}
}
