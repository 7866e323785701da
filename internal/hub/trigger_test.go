package hub

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SPartenev/ai-svetlio-pro/internal/hubconfig"
	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

func newTriggerEnv(t *testing.T) (*testEnv, *AutoTrigger) {
	t.Helper()
	env := newTestEnv(t)
	trigger := NewAutoTriggerWithWindow(env.engine, 30*time.Second)
	return env, trigger
}

func TestTriggerDebouncesWithinWindow(t *testing.T) {
	env, trigger := newTriggerEnv(t)
	env.writeLocal(t, "STATE.md", "v1")

	base := time.Now()
	clock := base
	trigger.now = func() time.Time { return clock }

	trigger.FileChanged(env.project, "STATE.md")
	pushes := env.git.count("push")

	// Second trigger inside the window: at most one underlying attempt.
	clock = base.Add(10 * time.Second)
	env.writeLocal(t, "STATE.md", "v2")
	trigger.FileChanged(env.project, "STATE.md")
	if got := env.git.count("push"); got != pushes {
		t.Errorf("push count after debounced trigger = %d, want %d", got, pushes)
	}

	// Past the window the next trigger goes through.
	clock = base.Add(31 * time.Second)
	trigger.FileChanged(env.project, "STATE.md")
	if got := env.git.count("push"); got != pushes+1 {
		t.Errorf("push count after window elapsed = %d, want %d", got, pushes+1)
	}
}

func TestTriggerIgnoresUntrackedFiles(t *testing.T) {
	env, trigger := newTriggerEnv(t)

	trigger.FileChanged(env.project, "SCRATCH.md")
	if len(env.git.calls) != 0 {
		t.Errorf("git invoked for untracked file, want no calls")
	}
}

func TestTriggerNeverRaisesIntoWriter(t *testing.T) {
	// No hub config at all: the trigger must absorb the failure.
	store := hubconfig.NewStoreAt(filepath.Join(t.TempDir(), "hub.json"))
	engine := NewEngineWithGit(store, func(string) GitRunner { return &fakeGit{} })
	trigger := NewAutoTriggerWithWindow(engine, time.Second)

	trigger.FileChanged(t.TempDir(), "STATE.md")
}

func TestWriterToTriggerIntegration(t *testing.T) {
	env, trigger := newTriggerEnv(t)

	w := memory.NewWriter(env.project, trigger)
	if err := w.Write("STATE.md", []byte("v1")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if env.git.count("push") != 1 {
		t.Errorf("push count after tracked write = %d, want 1", env.git.count("push"))
	}
	if got := env.readHub(t, "STATE.md"); got != "v1" {
		t.Errorf("hub STATE.md = %q, want v1", got)
	}

	// Ensure nothing leaked outside the memory dir convention.
	if _, err := os.Stat(filepath.Join(env.hubPath, "alpha", "backups")); !os.IsNotExist(err) {
		t.Error("backups directory synced to hub, want excluded")
	}
}
