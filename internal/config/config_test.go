package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := DefaultSettings()
	if cfg.MinLines != def.MinLines || cfg.SaveDebounceMS != def.SaveDebounceMS {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
}

func TestLoad_ReadsHuJSON(t *testing.T) {
	dir := t.TempDir()
	raw := `{
  // threshold tuning for a large screen
  "min_lines": 20,
  "ignore": [
    "**/.git/**",
    "**/*.log", // trailing comma is fine
  ],
}`
	if err := os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MinLines != 20 {
		t.Errorf("min_lines = %d, want 20", cfg.MinLines)
	}
	if len(cfg.Ignore) != 2 {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
	// Unset keys keep their defaults.
	if cfg.MaxAutoMarks != DefaultSettings().MaxAutoMarks {
		t.Errorf("max_automarks = %d, want default", cfg.MaxAutoMarks)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SettingsFileName), []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("malformed settings file did not fail")
	}
}

func TestLoad_NormalizesOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	raw := `{"min_lines": -3, "save_debounce_ms": 0, "max_automarks": -1}`
	if err := os.WriteFile(filepath.Join(dir, SettingsFileName), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := DefaultSettings()
	if cfg.MinLines != def.MinLines {
		t.Errorf("min_lines = %d, want %d", cfg.MinLines, def.MinLines)
	}
	if cfg.SaveDebounceMS != def.SaveDebounceMS {
		t.Errorf("save_debounce_ms = %d, want %d", cfg.SaveDebounceMS, def.SaveDebounceMS)
	}
	if cfg.MaxAutoMarks != def.MaxAutoMarks {
		t.Errorf("max_automarks = %d, want %d", cfg.MaxAutoMarks, def.MaxAutoMarks)
	}
}

func TestJournalPath(t *testing.T) {
	got := JournalPath("/data/waymark")
	want := filepath.Join("/data/waymark", "bookmarks.json")
	if got != want {
		t.Errorf("JournalPath = %q, want %q", got, want)
	}
}

func TestDataDir_EnvOverride(t *testing.T) {
	t.Setenv("WAYMARK_DATA", "/custom/data")
	if got := DataDir(); got != "/custom/data" {
		t.Errorf("DataDir = %q, want /custom/data", got)
	}
}
