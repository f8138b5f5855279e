package config

import (
	"os"
	"path/filepath"
)

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their
// meanings. This is the single source of truth for default values and
// generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		// Core paths
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; DB is data_dir/canopy.db"},

		// Browser
		{Key: "ui.fps", Default: 60, Comment: "Frame rate used when filter.wait_ms is 0 and updates coalesce per frame (1-240)"},
		{Key: "ui.headers", Default: true, Comment: "Show the title header row in the browser"},

		// Filter debounce
		{Key: "filter.wait_ms", Default: 250, Comment: "Quiet period after the last keystroke before the filter applies; 0 coalesces per frame"},
		{Key: "filter.max_wait_ms", Default: 1000, Comment: "Ceiling on filter delay while typing continuously; 0 disables the ceiling"},
		{Key: "filter.leading", Default: false, Comment: "Apply the filter on the first keystroke of a burst"},
		{Key: "filter.trailing", Default: true, Comment: "Apply the filter once a burst goes quiet"},
	}
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/canopy or ~/.local/share/canopy
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "canopy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "canopy")
}

// DefaultDBPath builds the default sqlite DB path from data_dir rules.
func DefaultDBPath() string {
	return filepath.Join(defaultDataDir(), "canopy.db")
}
