package hub

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

// FileState classifies one syncable file of the current project relative to
// the local hub clone. The comparison is purely local: it reflects staleness
// since the last `git pull`, not true remote state.
type FileState string

const (
	FileInSync     FileState = "in sync"
	FileDiffers    FileState = "content differs"
	FileNewLocally FileState = "new locally"
	FileRemoteOnly FileState = "only in hub"
)

// ProjectStatus describes one registered project in a status report.
type ProjectStatus struct {
	Name      string
	HubFolder string
	LocalPath string
	LastPush  string // human-relative
	LastPull  string // human-relative
	Current   bool

	// Files is populated only for the current project.
	Files map[string]FileState
}

// StatusReport is the read-only state summary shown by `svetlio hub status`.
type StatusReport struct {
	HubRepoURL    string
	HubLocalPath  string
	AutoSync      bool
	LastHubUpdate string // human-relative
	Projects      []ProjectStatus
}

// Status builds a report without touching the network: the per-file diff for
// the current project compares against the already-cloned hub copy only.
func (e *Engine) Status(currentDir string) (*StatusReport, error) {
	cfg, _ := e.store.Load()
	if cfg == nil || cfg.HubLocalPath == "" {
		return nil, ErrConfigUnavailable
	}

	currentName, _ := resolveProject(cfg, currentDir)

	report := &StatusReport{
		HubRepoURL:    cfg.HubRepoURL,
		HubLocalPath:  cfg.HubLocalPath,
		AutoSync:      cfg.AutoSyncEnabled,
		LastHubUpdate: RelativeTime(cfg.LastHubUpdate),
	}

	names := make([]string, 0, len(cfg.Projects))
	for name := range cfg.Projects {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := cfg.Projects[name]
		ps := ProjectStatus{
			Name:      name,
			HubFolder: p.HubFolder,
			LocalPath: p.LocalPath,
			LastPush:  RelativeTime(p.LastPush),
			LastPull:  RelativeTime(p.LastPull),
			Current:   name == currentName,
		}
		if ps.Current {
			ps.Files = diffAgainstClone(p.LocalPath, filepath.Join(cfg.HubLocalPath, p.HubFolder))
		}
		report.Projects = append(report.Projects, ps)
	}
	return report, nil
}

func diffAgainstClone(projectDir, hubFolder string) map[string]FileState {
	states := make(map[string]FileState)
	memDir := memory.Dir(projectDir)

	for _, name := range memory.SyncableFiles {
		localData, localErr := os.ReadFile(filepath.Join(memDir, name)) // #nosec G304 - fixed filename set
		hubData, hubErr := os.ReadFile(filepath.Join(hubFolder, name))  // #nosec G304 - fixed filename set

		switch {
		case localErr != nil && hubErr != nil:
			// Absent on both sides: not reported.
		case localErr == nil && hubErr != nil:
			states[name] = FileNewLocally
		case localErr != nil && hubErr == nil:
			states[name] = FileRemoteOnly
		case bytes.Equal(localData, hubData):
			states[name] = FileInSync
		default:
			states[name] = FileDiffers
		}
	}
	return states
}
