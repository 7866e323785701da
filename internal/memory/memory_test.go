package memory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSyncableSetIsExactlyEight(t *testing.T) {
	if len(SyncableFiles) != 8 {
		t.Fatalf("len(SyncableFiles) = %d, want 8", len(SyncableFiles))
	}

	seen := make(map[string]bool)
	for _, f := range SyncableFiles {
		if seen[f] {
			t.Errorf("duplicate syncable filename %q", f)
		}
		seen[f] = true
		if !IsSyncable(f) {
			t.Errorf("IsSyncable(%q) = false, want true", f)
		}
	}
}

func TestIsSyncableRejectsOutsiders(t *testing.T) {
	for _, name := range []string{"NOTES.md", "backups", "config.yaml", "state.md", ""} {
		if IsSyncable(name) {
			t.Errorf("IsSyncable(%q) = true, want false", name)
		}
	}
}

func TestScaffoldCreatesAllFiles(t *testing.T) {
	root := t.TempDir()

	created, err := Scaffold(root, "alpha")
	if err != nil {
		t.Fatalf("Scaffold() failed: %v", err)
	}
	if len(created) != len(SyncableFiles) {
		t.Errorf("created %d files, want %d", len(created), len(SyncableFiles))
	}

	for _, f := range SyncableFiles {
		data, err := os.ReadFile(filepath.Join(Dir(root), f))
		if err != nil {
			t.Errorf("reading %s: %v", f, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s scaffolded empty", f)
		}
	}
}

func TestScaffoldPreservesExistingFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(Dir(root), 0750); err != nil {
		t.Fatal(err)
	}
	statePath := filepath.Join(Dir(root), "STATE.md")
	if err := os.WriteFile(statePath, []byte("hand-written"), 0600); err != nil {
		t.Fatal(err)
	}

	created, err := Scaffold(root, "alpha")
	if err != nil {
		t.Fatalf("Scaffold() failed: %v", err)
	}
	if len(created) != len(SyncableFiles)-1 {
		t.Errorf("created %d files, want %d (STATE.md already present)", len(created), len(SyncableFiles)-1)
	}

	data, _ := os.ReadFile(statePath)
	if string(data) != "hand-written" {
		t.Errorf("STATE.md = %q, want existing content preserved", data)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if _, err := Scaffold(root, "alpha"); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0750); err != nil {
		t.Fatal(err)
	}

	// TempDir may be a symlink on macOS; resolve for comparison
	resolvedRoot, _ := filepath.EvalSymlinks(root)

	got := FindProjectRoot(nested)
	resolvedGot, _ := filepath.EvalSymlinks(got)
	if resolvedGot != resolvedRoot {
		t.Errorf("FindProjectRoot(%q) = %q, want %q", nested, got, root)
	}
}

func TestFindProjectRootNotFound(t *testing.T) {
	if got := FindProjectRoot(t.TempDir()); got != "" {
		t.Errorf("FindProjectRoot() = %q, want empty", got)
	}
}

type recordingNotifier struct {
	calls []string
}

func (r *recordingNotifier) FileChanged(projectRoot, filename string) {
	r.calls = append(r.calls, filename)
}

func TestWriterNotifiesOnTrackedWrite(t *testing.T) {
	root := t.TempDir()
	n := &recordingNotifier{}
	w := NewWriter(root, n)

	if err := w.Write("STATE.md", []byte("v1")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if len(n.calls) != 1 || n.calls[0] != "STATE.md" {
		t.Errorf("notifier calls = %v, want [STATE.md]", n.calls)
	}

	data, _ := os.ReadFile(filepath.Join(Dir(root), "STATE.md"))
	if string(data) != "v1" {
		t.Errorf("STATE.md = %q, want v1", data)
	}
}

func TestWriterRejectsUntrackedFile(t *testing.T) {
	n := &recordingNotifier{}
	w := NewWriter(t.TempDir(), n)

	if err := w.Write("SECRETS.md", []byte("x")); err == nil {
		t.Fatal("Write(SECRETS.md) succeeded, want error")
	}
	if len(n.calls) != 0 {
		t.Errorf("notifier called %d times for rejected write, want 0", len(n.calls))
	}
}

func TestWriterNilNotifier(t *testing.T) {
	w := NewWriter(t.TempDir(), nil)
	if err := w.Write("TODO.md", []byte("- item")); err != nil {
		t.Fatalf("Write() with nil notifier failed: %v", err)
	}
}

func TestAppendLog(t *testing.T) {
	root := t.TempDir()
	n := &recordingNotifier{}
	w := NewWriter(root, n)

	if err := w.AppendLog("first"); err != nil {
		t.Fatalf("AppendLog() failed: %v", err)
	}
	if err := w.AppendLog("second"); err != nil {
		t.Fatalf("AppendLog() failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(Dir(root), "LOG.md"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "first") || !strings.Contains(content, "second") {
		t.Errorf("LOG.md = %q, want both entries", content)
	}
	if len(n.calls) != 2 {
		t.Errorf("notifier calls = %d, want 2", len(n.calls))
	}
}
