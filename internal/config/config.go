// Package config loads user-level settings through a viper singleton.
//
// Settings are optional tuning knobs, distinct from the hub configuration
// document (internal/hubconfig), which is authoritative sync state.
// Precedence: project .memory/config.yaml, then ~/.config/svetlio/config.yaml.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

var v *viper.Viper

// Initialize sets up the viper singleton. Call once at startup; commands
// read settings through the accessors below. Missing config files are fine.
func Initialize() error {
	v = viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("sync.debounce_seconds", 30)
	v.SetDefault("viewer.port", 7421)
	v.SetDefault("rules.targets", []string{"cursor", "windsurf", "cline", "claude"})

	configFileSet := false

	// Project-level settings win: walk up from CWD to the memory directory.
	if cwd, err := os.Getwd(); err == nil {
		if root := memory.FindProjectRoot(cwd); root != "" {
			path := filepath.Join(memory.Dir(root), "config.yaml")
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				configFileSet = true
			}
		}
	}

	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			path := filepath.Join(configDir, "svetlio", "config.yaml")
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				configFileSet = true
			}
		}
	}

	if !configFileSet {
		return nil // defaults only
	}
	if err := v.ReadInConfig(); err != nil {
		// A broken settings file must not disable the tool; fall back to
		// defaults.
		v = viper.New()
		v.SetDefault("sync.debounce_seconds", 30)
		v.SetDefault("viewer.port", 7421)
		v.SetDefault("rules.targets", []string{"cursor", "windsurf", "cline", "claude"})
	}
	return nil
}

func active() *viper.Viper {
	if v == nil {
		_ = Initialize()
	}
	return v
}

// DebounceWindow returns the minimum gap between auto-sync push attempts.
func DebounceWindow() time.Duration {
	secs := active().GetInt("sync.debounce_seconds")
	if secs < 1 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}

// ViewerPort returns the local HTTP viewer port.
func ViewerPort() int {
	port := active().GetInt("viewer.port")
	if port <= 0 || port > 65535 {
		return 7421
	}
	return port
}

// RulesTargets returns the IDE integrations `svetlio rules` generates for
// when no --target flag is given.
func RulesTargets() []string {
	return active().GetStringSlice("rules.targets")
}
