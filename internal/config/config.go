package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// Configure Viper search paths. If SetConfigFile was provided upstream,
	// it takes precedence; these paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "canopy"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "canopy"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: CANOPY_* (highest among these sources)
	v.SetEnvPrefix("canopy")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Normalize dependent values post-merge
	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "canopy", "config.toml")
}

// ResolveDBPath uses data_dir and defaults to return the sqlite DB file path.
func ResolveDBPath(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return filepath.Join(dir, "canopy.db")
}

// CheckConfigValidity reports every problem found, not just the first.
func CheckConfigValidity(v *viper.Viper) error {
	var problems []string

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		problems = append(problems, "data_dir is required")
	}
	if fps := v.GetInt("ui.fps"); fps < 1 || fps > 240 {
		problems = append(problems, "ui.fps must be between 1 and 240")
	}
	wait := v.GetInt("filter.wait_ms")
	if wait < 0 {
		problems = append(problems, "filter.wait_ms must not be negative")
	}
	maxWait := v.GetInt("filter.max_wait_ms")
	if maxWait < 0 {
		problems = append(problems, "filter.max_wait_ms must not be negative")
	}
	if maxWait > 0 && maxWait < wait {
		problems = append(problems, "filter.max_wait_ms must be at least filter.wait_ms")
	}
	if !v.GetBool("filter.leading") && !v.GetBool("filter.trailing") {
		problems = append(problems, "at least one of filter.leading and filter.trailing must be true")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Config is the typed view the browser consumes.
type Config struct {
	DataDir        string
	FPS            int
	Headers        bool
	FilterWait     time.Duration
	FilterMaxWait  time.Duration
	FilterLeading  bool
	FilterTrailing bool
}

// FromViper snapshots the merged settings into a Config.
func FromViper(v *viper.Viper) Config {
	return Config{
		DataDir:        v.GetString("data_dir"),
		FPS:            v.GetInt("ui.fps"),
		Headers:        v.GetBool("ui.headers"),
		FilterWait:     time.Duration(v.GetInt("filter.wait_ms")) * time.Millisecond,
		FilterMaxWait:  time.Duration(v.GetInt("filter.max_wait_ms")) * time.Millisecond,
		FilterLeading:  v.GetBool("filter.leading"),
		FilterTrailing: v.GetBool("filter.trailing"),
	}
}

// Default returns the Config built from defaults alone.
func Default() Config {
	v := viper.New()
	applyDefaults(v)
	return FromViper(v)
}
