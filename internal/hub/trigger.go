package hub

import (
	"context"
	"sync"
	"time"

	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

// DefaultDebounceWindow is the minimum gap between two automatic push
// attempts triggered by memory writes.
const DefaultDebounceWindow = 30 * time.Second

// AutoTrigger turns memory-file change notifications into debounced silent
// pushes. It owns the debounce state itself; the file writer only holds it
// as a memory.Notifier capability and never learns about sync.
//
// Thread-safe for concurrent notifications.
type AutoTrigger struct {
	engine *Engine
	window time.Duration

	mu   sync.Mutex
	last time.Time

	now func() time.Time
}

// NewAutoTrigger returns a trigger pushing through engine with the default
// debounce window.
func NewAutoTrigger(engine *Engine) *AutoTrigger {
	return NewAutoTriggerWithWindow(engine, DefaultDebounceWindow)
}

// NewAutoTriggerWithWindow allows overriding the window (user setting,
// tests).
func NewAutoTriggerWithWindow(engine *Engine, window time.Duration) *AutoTrigger {
	return &AutoTrigger{engine: engine, window: window, now: time.Now}
}

// FileChanged implements memory.Notifier. Untracked files are ignored;
// tracked changes inside the debounce window are dropped, so any burst of
// writes results in at most one underlying push attempt. The push itself is
// the silent variant and can never raise into the writer.
func (t *AutoTrigger) FileChanged(projectRoot, filename string) {
	if !memory.IsSyncable(filename) {
		return
	}

	t.mu.Lock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.window {
		t.mu.Unlock()
		return
	}
	t.last = now
	t.mu.Unlock()

	t.engine.PushSilent(context.Background(), projectRoot)
}
