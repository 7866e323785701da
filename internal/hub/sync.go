// Package hub implements git-backed synchronization of a project's memory
// directory through a central hub repository.
//
// The hub is an ordinary git repository cloned locally; each registered
// project owns one subfolder inside it. Sync is last-writer-wins at file
// granularity over a fixed set of filenames, with a backup taken before any
// local file is overwritten on pull. All git transport is delegated to the
// external git binary.
package hub

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/SPartenev/ai-svetlio-pro/internal/gitx"
	"github.com/SPartenev/ai-svetlio-pro/internal/hubconfig"
	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

// GitRunner is the narrow command surface the engine needs from git.
// Production code uses *gitx.Executor; tests substitute a fake so no git
// binary is required.
type GitRunner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// GitFactory produces a GitRunner bound to a working directory.
type GitFactory func(dir string) GitRunner

func defaultGitFactory(dir string) GitRunner {
	return gitx.New(dir)
}

// Engine implements push, pull, status and their silent auto-sync variants.
type Engine struct {
	store *hubconfig.Store
	git   GitFactory
	now   func() time.Time
}

// NewEngine returns an engine persisting through store and shelling out to
// the real git binary.
func NewEngine(store *hubconfig.Store) *Engine {
	return &Engine{store: store, git: defaultGitFactory, now: time.Now}
}

// NewEngineWithGit returns an engine with an injected git factory.
func NewEngineWithGit(store *hubconfig.Store, git GitFactory) *Engine {
	return &Engine{store: store, git: git, now: time.Now}
}

// resolveProject locates the config entry for projectDir. Entries are keyed
// by project name, which may carry a disambiguation suffix, so matching is
// by registered local path first and by directory basename as a fallback.
func resolveProject(cfg *hubconfig.HubConfig, projectDir string) (string, *hubconfig.ProjectSyncConfig) {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		abs = projectDir
	}
	for name, p := range cfg.Projects {
		if p.LocalPath == abs {
			return name, p
		}
	}
	base := filepath.Base(abs)
	if p, ok := cfg.Projects[base]; ok {
		return base, p
	}
	return "", nil
}

// preflight runs the registration and clone-existence checks shared by push
// and pull.
func (e *Engine) preflight(projectDir string) (*hubconfig.HubConfig, string, *hubconfig.ProjectSyncConfig, error) {
	cfg, _ := e.store.Load()
	if cfg == nil || cfg.HubLocalPath == "" {
		return nil, "", nil, ErrConfigUnavailable
	}
	name, proj := resolveProject(cfg, projectDir)
	if proj == nil {
		return nil, "", nil, ErrProjectNotRegistered
	}
	if !hubCloneExists(cfg.HubLocalPath) {
		return nil, "", nil, ErrHubNotCloned
	}
	return cfg, name, proj, nil
}

func hubCloneExists(hubLocalPath string) bool {
	info, err := os.Stat(filepath.Join(hubLocalPath, ".git"))
	return err == nil && info.IsDir()
}

// Push copies changed memory files project→hub, commits, and pushes.
//
// The pre-push `pull --rebase` is tolerant: a brand-new or unreachable
// remote must not stop a push. Nothing is committed or pushed when no file
// differs.
func (e *Engine) Push(ctx context.Context, projectDir string) *SyncResult {
	cfg, _, proj, err := e.preflight(projectDir)
	if err != nil {
		return failure(err, remediation(err))
	}

	git := e.git(cfg.HubLocalPath)

	// Best effort: a failure here (empty remote, offline) must not block
	// the push itself.
	_, _ = git.Run(ctx, "pull", "--rebase")

	hubFolder := filepath.Join(cfg.HubLocalPath, proj.HubFolder)
	if err := os.MkdirAll(hubFolder, 0750); err != nil {
		return failure(err, fmt.Sprintf("cannot create hub folder: %v", err))
	}

	memDir := memory.Dir(projectDir)
	var changed []string
	for _, name := range memory.SyncableFiles {
		src := filepath.Join(memDir, name)
		srcData, err := os.ReadFile(src) // #nosec G304 - fixed filename set
		if err != nil {
			continue // absent locally: nothing to send for this file
		}
		dst := filepath.Join(hubFolder, name)
		dstData, err := os.ReadFile(dst) // #nosec G304 - fixed filename set
		if err == nil && bytes.Equal(srcData, dstData) {
			continue
		}
		if err := os.WriteFile(dst, srcData, 0600); err != nil {
			return &SyncResult{
				Message:      fmt.Sprintf("copy to hub failed: %v", err),
				ChangedFiles: changed,
				Err:          err,
			}
		}
		changed = append(changed, name)
	}

	if len(changed) == 0 {
		return success("nothing to send, hub already up to date", nil)
	}

	stamp := e.now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf("svetlio sync: %s @ %s (%d files)", proj.HubFolder, stamp, len(changed))

	for _, args := range [][]string{
		{"add", "."},
		{"commit", "-m", msg},
		{"push"},
	} {
		if _, err := git.Run(ctx, args...); err != nil {
			// Files already copied into the working tree stay copied; the
			// next push re-commits them.
			return &SyncResult{
				Message:      fmt.Sprintf("git %s failed: %v", args[0], err),
				ChangedFiles: changed,
				Err:          err,
			}
		}
	}

	now := e.now()
	proj.LastPush = &now
	cfg.LastHubUpdate = &now
	if err := e.store.Save(cfg); err != nil {
		return &SyncResult{
			Message:      fmt.Sprintf("synced, but saving config failed: %v", err),
			ChangedFiles: changed,
			Err:          err,
		}
	}

	return success(fmt.Sprintf("pushed %d file(s) to hub", len(changed)), changed)
}

// Pull brings hub content into the project, backing up any local file it
// overwrites. Unlike push, a failing `git pull` is fatal here: pulling
// stale hub content would silently hand out old data.
func (e *Engine) Pull(ctx context.Context, projectDir string) *SyncResult {
	cfg, _, proj, err := e.preflight(projectDir)
	if err != nil {
		return failure(err, remediation(err))
	}

	git := e.git(cfg.HubLocalPath)
	if _, err := git.Run(ctx, "pull"); err != nil {
		return failure(err, fmt.Sprintf("git pull failed: %v", err))
	}

	hubFolder := filepath.Join(cfg.HubLocalPath, proj.HubFolder)
	if info, err := os.Stat(hubFolder); err != nil || !info.IsDir() {
		// Registered but never pushed from anywhere: valid, not an error.
		e.recordPull(cfg, proj)
		return success("no data in hub for this project yet", nil)
	}

	memDir := memory.Dir(projectDir)
	if err := os.MkdirAll(memDir, 0750); err != nil {
		return failure(err, fmt.Sprintf("cannot create memory directory: %v", err))
	}

	var changed []string
	backupDir := ""
	for _, name := range memory.SyncableFiles {
		hubPath := filepath.Join(hubFolder, name)
		hubData, err := os.ReadFile(hubPath) // #nosec G304 - fixed filename set
		if err != nil {
			continue // not present in hub
		}
		localPath := filepath.Join(memDir, name)
		localData, localErr := os.ReadFile(localPath) // #nosec G304 - fixed filename set
		if localErr == nil && bytes.Equal(hubData, localData) {
			continue
		}

		// Back up the pre-overwrite local copy, lazily creating the backup
		// directory on the first difference.
		if localErr == nil {
			if backupDir == "" {
				backupDir = filepath.Join(memory.BackupsDir(projectDir),
					fmt.Sprintf("pre-pull-%s-%s", e.now().Format("20060102-150405"), uuid.NewString()[:8]))
				if err := os.MkdirAll(backupDir, 0750); err != nil {
					return &SyncResult{
						Message:      fmt.Sprintf("cannot create backup directory: %v", err),
						ChangedFiles: changed,
						Err:          err,
					}
				}
			}
			if err := os.WriteFile(filepath.Join(backupDir, name), localData, 0600); err != nil {
				return &SyncResult{
					Message:      fmt.Sprintf("backup of %s failed: %v", name, err),
					ChangedFiles: changed,
					Err:          err,
				}
			}
		}

		if err := os.WriteFile(localPath, hubData, 0600); err != nil {
			return &SyncResult{
				Message:      fmt.Sprintf("writing %s failed: %v", name, err),
				ChangedFiles: changed,
				Err:          err,
			}
		}
		changed = append(changed, name)
	}

	// Defensive: drop the backup dir if it was created but holds nothing.
	if backupDir != "" {
		if entries, err := os.ReadDir(backupDir); err == nil && len(entries) == 0 {
			_ = os.Remove(backupDir)
		}
	}

	e.recordPull(cfg, proj)

	if len(changed) == 0 {
		return success("already up to date with hub", nil)
	}
	return success(fmt.Sprintf("pulled %d file(s) from hub", len(changed)), changed)
}

// recordPull updates pull timestamps regardless of whether any file changed.
func (e *Engine) recordPull(cfg *hubconfig.HubConfig, proj *hubconfig.ProjectSyncConfig) {
	now := e.now()
	proj.LastPull = &now
	cfg.LastHubUpdate = &now
	_ = e.store.Save(cfg)
}

// PushSilent is the auto-sync variant of Push: gated on the auto-sync flag,
// no output, and every failure is swallowed so background sync never
// interrupts the caller's session. Debouncing happens upstream in the
// trigger that calls this.
func (e *Engine) PushSilent(ctx context.Context, projectDir string) {
	cfg, _ := e.store.Load()
	if cfg == nil || !cfg.AutoSyncEnabled {
		return
	}
	defer func() { _ = recover() }()
	_ = e.Push(ctx, projectDir)
}

// AutoPull is the silent, best-effort variant of Pull.
func (e *Engine) AutoPull(ctx context.Context, projectDir string) {
	cfg, _ := e.store.Load()
	if cfg == nil || !cfg.AutoSyncEnabled {
		return
	}
	defer func() { _ = recover() }()
	_ = e.Pull(ctx, projectDir)
}

// ToggleAutoSync flips the auto-sync flag and persists it.
// Returns the new state.
func (e *Engine) ToggleAutoSync() (bool, error) {
	cfg, _ := e.store.Load()
	if cfg == nil {
		return false, ErrConfigUnavailable
	}
	cfg.AutoSyncEnabled = !cfg.AutoSyncEnabled
	if err := e.store.Save(cfg); err != nil {
		return false, err
	}
	return cfg.AutoSyncEnabled, nil
}

func remediation(err error) string {
	switch err {
	case ErrConfigUnavailable:
		return "hub not configured, run `svetlio hub init` first"
	case ErrProjectNotRegistered:
		return "this project is not registered with the hub, run `svetlio hub init` here"
	case ErrHubNotCloned:
		return "hub clone is missing, run `svetlio hub init` to restore it"
	default:
		return err.Error()
	}
}
