package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Settings holds the mark engine tunables. All durations are plain
// integer milliseconds to match the settings file.
type Settings struct {
	// DataDir is where the bookmark journal lives.
	DataDir string `json:"data_dir,omitempty"`

	// MinLines is the row distance that always justifies a new automark.
	MinLines int `json:"min_lines"`

	// MinIntervalMS allows a new automark after this much idle time,
	// provided the cursor moved at least one row.
	MinIntervalMS int `json:"min_interval_ms"`

	// CleanupLines is the proximity band within which older automarks
	// in the same window and tab are pruned when a new one is recorded.
	CleanupLines int `json:"cleanup_lines"`

	// RecentMS protects automarks younger than this from proximity
	// cleanup, so an intentional nearby mark survives cursor churn.
	RecentMS int `json:"recent_ms"`

	// MaxAutoMarks bounds the automark list; the oldest entry is
	// evicted right after an insertion pushes past the limit.
	MaxAutoMarks int `json:"max_automarks"`

	// SaveDebounceMS is the quiet period before a scheduled journal save.
	SaveDebounceMS int `json:"save_debounce_ms"`

	// NavResetMS is the fallback window after which a stuck
	// "navigating" flag is cleared.
	NavResetMS int `json:"nav_reset_ms"`

	// Ignore lists doublestar globs of files that never get automarks.
	Ignore []string `json:"ignore,omitempty"`
}

// SettingsFileName is looked up inside the data directory.
const SettingsFileName = "settings.jsonc"

// DefaultSettings returns the built-in tunables.
func DefaultSettings() Settings {
	return Settings{
		DataDir:        DataDir(),
		MinLines:       8,
		MinIntervalMS:  30_000,
		CleanupLines:   15,
		RecentMS:       60_000,
		MaxAutoMarks:   30,
		SaveDebounceMS: 300,
		NavResetMS:     2_000,
	}
}

// DataDir returns the data directory from the WAYMARK_DATA env var,
// falling back to ~/.local/share/waymark.
func DataDir() string {
	if env := os.Getenv("WAYMARK_DATA"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".waymark"
	}
	return filepath.Join(home, ".local", "share", "waymark")
}

// ExpandHome resolves a leading ~ against the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}

// JournalPath returns the canonical bookmark file for a data directory.
func JournalPath(dataDir string) string {
	return filepath.Join(ExpandHome(dataDir), "bookmarks.json")
}

// Load reads settings.jsonc from dataDir, layered over the defaults.
// The file may carry comments and trailing commas (HuJSON). A missing
// file yields the defaults; a malformed file is an error.
func Load(dataDir string) (Settings, error) {
	cfg := DefaultSettings()
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	path := filepath.Join(ExpandHome(cfg.DataDir), SettingsFileName)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg.normalized(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	return cfg.normalized(), nil
}

// normalized corrects out-of-range values back to their defaults
// instead of failing startup.
func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.MinLines <= 0 {
		s.MinLines = def.MinLines
	}
	if s.MinIntervalMS <= 0 {
		s.MinIntervalMS = def.MinIntervalMS
	}
	if s.CleanupLines <= 0 {
		s.CleanupLines = def.CleanupLines
	}
	if s.RecentMS < 0 {
		s.RecentMS = def.RecentMS
	}
	if s.MaxAutoMarks <= 0 {
		s.MaxAutoMarks = def.MaxAutoMarks
	}
	if s.SaveDebounceMS <= 0 {
		s.SaveDebounceMS = def.SaveDebounceMS
	}
	if s.NavResetMS <= 0 {
		s.NavResetMS = def.NavResetMS
	}
	if s.DataDir == "" {
		s.DataDir = def.DataDir
	}
	return s
}
