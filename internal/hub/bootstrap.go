package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/SPartenev/ai-svetlio-pro/internal/hubconfig"
	"github.com/SPartenev/ai-svetlio-pro/internal/version"
)

// defaultBranches are tried in order for the initial push; the first one
// failing is not fatal.
var defaultBranches = []string{"main", "master"}

// hubMetaFileName is the metadata document written at the hub root.
const hubMetaFileName = "svetlio-hub.json"

// hubMeta records who created the hub and when.
type hubMeta struct {
	CreatedAt string `json:"createdAt"`
	Tool      string `json:"tool"`
	Version   string `json:"version"`
}

// Bootstrapper establishes the local hub clone and its config. It is an
// interactive, single-shot operation driven by the CLI layer, which owns all
// prompting; the bootstrapper only takes parameters.
type Bootstrapper struct {
	store *hubconfig.Store
	git   GitFactory

	// lookPath and runCmd are swappable for tests.
	lookPath func(string) (string, error)
	runCmd   func(ctx context.Context, name string, args ...string) (string, error)
}

// NewBootstrapper returns a bootstrapper using the real git binary and PATH
// lookup.
func NewBootstrapper(store *hubconfig.Store) *Bootstrapper {
	return &Bootstrapper{
		store:    store,
		git:      defaultGitFactory,
		lookPath: exec.LookPath,
		runCmd:   runCommand,
	}
}

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 - fixed binary names, args assembled internally
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s failed: %s", name, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Bootstrapped reports whether a hub is already configured and cloned on
// this machine. Callers use it to offer reconfigure/status/cancel instead of
// silently overwriting an existing setup.
func (b *Bootstrapper) Bootstrapped() bool {
	cfg, _ := b.store.Load()
	return cfg != nil && cfg.HubLocalPath != "" && hubCloneExists(cfg.HubLocalPath)
}

// CreateRemoteRepo creates a private remote repository through the gh CLI
// and returns its clone URL. Returns ErrHostingCLIUnavailable when gh is not
// installed or not authenticated, so the caller can fall back to asking the
// user for a manually created repository URL.
func (b *Bootstrapper) CreateRemoteRepo(ctx context.Context, repoName string) (string, error) {
	if _, err := b.lookPath("gh"); err != nil {
		return "", ErrHostingCLIUnavailable
	}
	if _, err := b.runCmd(ctx, "gh", "auth", "status"); err != nil {
		return "", ErrHostingCLIUnavailable
	}

	if _, err := b.runCmd(ctx, "gh", "repo", "create", repoName, "--private"); err != nil {
		return "", fmt.Errorf("creating remote repository: %w", err)
	}
	url, err := b.runCmd(ctx, "gh", "repo", "view", repoName, "--json", "sshUrl", "--jq", ".sshUrl")
	if err != nil || url == "" {
		return "", fmt.Errorf("resolving repository URL: %w", err)
	}
	return url, nil
}

// InitFresh clones a just-created empty repository, seeds it with the hub
// metadata files and a README, commits, and pushes to the first default
// branch name that works. Returns the new persisted config.
func (b *Bootstrapper) InitFresh(ctx context.Context, repoURL, localPath string) (*hubconfig.HubConfig, error) {
	if err := b.cloneFresh(ctx, repoURL, localPath); err != nil {
		return nil, err
	}
	if err := b.seedHub(localPath); err != nil {
		return nil, err
	}

	git := b.git(localPath)
	if _, err := git.Run(ctx, "add", "."); err != nil {
		return nil, fmt.Errorf("staging hub metadata: %w", err)
	}
	if _, err := git.Run(ctx, "commit", "-m", "svetlio hub: initial setup"); err != nil {
		return nil, fmt.Errorf("initial commit: %w", err)
	}

	// An empty remote may use either conventional default branch name; the
	// first push failing only means we try the other.
	var pushErr error
	for _, branch := range defaultBranches {
		if _, pushErr = git.Run(ctx, "push", "-u", "origin", "HEAD:"+branch); pushErr == nil {
			break
		}
	}
	if pushErr != nil {
		return nil, fmt.Errorf("initial push: %w", pushErr)
	}

	return b.persist(repoURL, localPath)
}

// AttachExisting removes any stale local clone and clones the given
// repository fresh. Used when the hub already exists remotely (created on
// another machine or manually).
func (b *Bootstrapper) AttachExisting(ctx context.Context, repoURL, localPath string) (*hubconfig.HubConfig, error) {
	if err := b.cloneFresh(ctx, repoURL, localPath); err != nil {
		return nil, err
	}
	return b.persist(repoURL, localPath)
}

func (b *Bootstrapper) cloneFresh(ctx context.Context, repoURL, localPath string) error {
	if err := os.RemoveAll(localPath); err != nil {
		return fmt.Errorf("removing stale clone: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(localPath), 0750); err != nil {
		return fmt.Errorf("creating clone parent: %w", err)
	}

	// Clone from the parent so git creates localPath itself.
	git := b.git(filepath.Dir(localPath))
	if cloner, ok := git.(interface {
		Clone(ctx context.Context, url, dest string) error
	}); ok {
		if err := cloner.Clone(ctx, repoURL, localPath); err != nil {
			return fmt.Errorf("cloning hub: %w", err)
		}
		return nil
	}
	if _, err := git.Run(ctx, "clone", repoURL, localPath); err != nil {
		return fmt.Errorf("cloning hub: %w", err)
	}
	return nil
}

// seedHub writes the fixed repository-level files: line-ending
// normalization, creation metadata, and a README.
func (b *Bootstrapper) seedHub(localPath string) error {
	gitattributes := "* text=auto\n*.md text eol=lf\n*.json text eol=lf\n"
	if err := os.WriteFile(filepath.Join(localPath, ".gitattributes"), []byte(gitattributes), 0600); err != nil {
		return fmt.Errorf("writing .gitattributes: %w", err)
	}

	meta := hubMeta{
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Tool:      "svetlio",
		Version:   version.Version,
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling hub metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(localPath, hubMetaFileName), data, 0600); err != nil {
		return fmt.Errorf("writing hub metadata: %w", err)
	}

	readme := "# Svetlio Memory Hub\n\n" +
		"Central synchronization repository for project memory directories.\n" +
		"Managed by `svetlio hub`; one subfolder per registered project.\n" +
		"Do not edit files here by hand - push from a project instead.\n"
	if err := os.WriteFile(filepath.Join(localPath, "README.md"), []byte(readme), 0600); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}
	return nil
}

func (b *Bootstrapper) persist(repoURL, localPath string) (*hubconfig.HubConfig, error) {
	abs, err := filepath.Abs(localPath)
	if err != nil {
		abs = localPath
	}

	// Keep existing project registrations when re-bootstrapping.
	cfg, _ := b.store.Load()
	if cfg == nil {
		cfg = hubconfig.NewHubConfig(repoURL, abs)
	} else {
		cfg.HubRepoURL = repoURL
		cfg.HubLocalPath = abs
	}
	if err := b.store.Save(cfg); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	return cfg, nil
}
