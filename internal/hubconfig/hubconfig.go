// Package hubconfig persists the machine-global hub configuration.
//
// One JSON document describes the hub repository, the auto-sync flag, and
// every project registered on this machine. The file lives outside any
// project so all projects share it.
package hubconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const ConfigFileName = "hub.json"

// ProjectSyncConfig binds one local project to its folder inside the hub.
type ProjectSyncConfig struct {
	LocalPath string     `json:"localPath"`
	HubFolder string     `json:"hubFolder"`
	LastPush  *time.Time `json:"lastPush,omitempty"`
	LastPull  *time.Time `json:"lastPull,omitempty"`
}

// HubConfig is the single persisted configuration document.
type HubConfig struct {
	HubRepoURL      string                        `json:"hubRepoUrl"`
	HubLocalPath    string                        `json:"hubLocalPath"`
	AutoSyncEnabled bool                          `json:"autoSyncEnabled"`
	LastHubUpdate   *time.Time                    `json:"lastHubUpdate,omitempty"`
	Projects        map[string]*ProjectSyncConfig `json:"projects"`
}

// NewHubConfig returns a config for a freshly bootstrapped hub.
func NewHubConfig(repoURL, localPath string) *HubConfig {
	return &HubConfig{
		HubRepoURL:   repoURL,
		HubLocalPath: localPath,
		Projects:     make(map[string]*ProjectSyncConfig),
	}
}

// Store reads and writes the HubConfig document at a fixed path.
// All components share one Store handle rather than re-opening the file
// ad hoc.
type Store struct {
	path string
}

// NewStore returns a store at the conventional per-user location,
// honoring SVETLIO_CONFIG_DIR for tests and non-standard setups.
func NewStore() (*Store, error) {
	dir := os.Getenv("SVETLIO_CONFIG_DIR")
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user config dir: %w", err)
		}
		dir = filepath.Join(configDir, "svetlio")
	}
	return NewStoreAt(filepath.Join(dir, ConfigFileName)), nil
}

// NewStoreAt returns a store using an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns the config file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config. A missing or unparseable file yields (nil, nil):
// callers treat absence as "no hub bootstrapped yet" and a corrupt file the
// same way rather than failing every command.
func (s *Store) Load() (*HubConfig, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 - fixed per-user path
	if err != nil {
		return nil, nil
	}

	var cfg HubConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil
	}
	if cfg.Projects == nil {
		cfg.Projects = make(map[string]*ProjectSyncConfig)
	}
	return &cfg, nil
}

// Save writes the config atomically: marshal, write a temp file in the same
// directory, then rename over the previous document. A crash mid-write
// leaves the old config intact. A file lock serializes competing processes.
func (s *Store) Save(cfg *HubConfig) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking config: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ConfigFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp config: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting config permissions: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing config: %w", err)
	}
	return nil
}
