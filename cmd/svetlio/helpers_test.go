package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SPartenev/ai-svetlio-pro/internal/hub"
	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

func TestRequireProjectRoot(t *testing.T) {
	root := t.TempDir()
	if _, err := memory.Scaffold(root, "alpha"); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src")
	if err := os.MkdirAll(nested, 0750); err != nil {
		t.Fatal(err)
	}

	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}

	got, err := requireProjectRoot()
	if err != nil {
		t.Fatalf("requireProjectRoot() failed: %v", err)
	}
	resolvedGot, _ := filepath.EvalSymlinks(got)
	resolvedRoot, _ := filepath.EvalSymlinks(root)
	if resolvedGot != resolvedRoot {
		t.Errorf("requireProjectRoot() = %q, want %q", got, root)
	}
}

func TestRequireProjectRootMissing(t *testing.T) {
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	if _, err := requireProjectRoot(); err == nil {
		t.Fatal("requireProjectRoot() succeeded outside any project")
	}
}

func TestSortedFileNames(t *testing.T) {
	m := map[string]hub.FileState{
		"TODO.md":  hub.FileInSync,
		"LOG.md":   hub.FileDiffers,
		"STATE.md": hub.FileNewLocally,
	}
	got := sortedFileNames(m)
	want := []string{"LOG.md", "STATE.md", "TODO.md"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedFileNames() = %v, want %v", got, want)
		}
	}
}

func TestPrintSyncResultFailureMentionsPartialProgress(t *testing.T) {
	res := &hub.SyncResult{
		Message:      "git push failed: remote rejected",
		ChangedFiles: []string{"STATE.md"},
	}
	err := printSyncResult("push", res)
	if err == nil {
		t.Fatal("printSyncResult for failed result returned nil error")
	}
}

func TestDefaultHubClonePath(t *testing.T) {
	path := defaultHubClonePath()
	if filepath.Base(path) != ".svetlio-hub" {
		t.Errorf("defaultHubClonePath() = %q, want .svetlio-hub basename", path)
	}
}
