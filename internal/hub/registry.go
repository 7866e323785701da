package hub

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/SPartenev/ai-svetlio-pro/internal/hubconfig"
)

// Registry binds local projects to folders inside the hub clone and
// persists the binding through the config store.
type Registry struct {
	store *hubconfig.Store
}

// NewRegistry returns a registry persisting through store.
func NewRegistry(store *hubconfig.Store) *Registry {
	return &Registry{store: store}
}

// ValidateFolderName rejects empty names and anything that could escape the
// hub clone or break across filesystems.
func ValidateFolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("folder name must not be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("folder name %q is reserved", name)
	}
	if strings.ContainsAny(name, `/\:*?"<>|`) {
		return fmt.Errorf("folder name %q contains path-unsafe characters", name)
	}
	return nil
}

// Register binds localPath to folderName inside the hub, creating the hub
// subfolder if absent, and persists the entry.
//
// Entries are keyed by the project directory's basename. Two differently
// located projects can share a basename, so a colliding name gets a short
// generated suffix instead of silently overwriting the other project's
// entry. Re-registering the same local path updates its entry in place.
// Returns the key under which the project was stored.
func (r *Registry) Register(cfg *hubconfig.HubConfig, localPath, folderName string) (string, error) {
	if err := ValidateFolderName(folderName); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(localPath)
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}

	hubFolder := filepath.Join(cfg.HubLocalPath, folderName)
	if err := os.MkdirAll(hubFolder, 0750); err != nil {
		return "", fmt.Errorf("creating hub folder: %w", err)
	}

	// A previous registration of this same path may live under any key
	// (possibly a suffixed one); reuse it so sync timestamps survive.
	key := filepath.Base(abs)
	for name, p := range cfg.Projects {
		if p.LocalPath == abs {
			key = name
			break
		}
	}
	if existing, ok := cfg.Projects[key]; ok && existing.LocalPath != abs {
		key = fmt.Sprintf("%s-%s", key, uuid.NewString()[:8])
	}

	entry := cfg.Projects[key]
	if entry == nil {
		entry = &hubconfig.ProjectSyncConfig{LocalPath: abs}
	}
	entry.HubFolder = folderName
	cfg.Projects[key] = entry
	if err := r.store.Save(cfg); err != nil {
		return "", fmt.Errorf("saving config: %w", err)
	}
	return key, nil
}

// Remove deletes a project's config entry. Hub files outlive deregistration
// on purpose: data in the hub is never deleted here.
func (r *Registry) Remove(cfg *hubconfig.HubConfig, projectName string) error {
	if _, ok := cfg.Projects[projectName]; !ok {
		return ErrProjectNotRegistered
	}
	delete(cfg.Projects, projectName)
	if err := r.store.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
