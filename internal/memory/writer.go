package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Notifier receives a notification after a tracked memory file has been
// written. Implementations must not block the writer beyond their own work
// and must never return an error into the write path; the hub auto-sync
// trigger satisfies this.
type Notifier interface {
	FileChanged(projectRoot, filename string)
}

// Writer writes memory files for one project and notifies an optional
// Notifier after each tracked write. The writer holds the notifier as an
// injected capability; it has no global sync state of its own.
type Writer struct {
	projectRoot string
	notifier    Notifier
}

// NewWriter returns a writer for projectRoot. notifier may be nil.
func NewWriter(projectRoot string, notifier Notifier) *Writer {
	return &Writer{projectRoot: projectRoot, notifier: notifier}
}

// Write replaces the content of a syncable memory file.
func (w *Writer) Write(filename string, content []byte) error {
	if !IsSyncable(filename) {
		return fmt.Errorf("%s is not a tracked memory file", filename)
	}

	path := filepath.Join(Dir(w.projectRoot), filename)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating memory directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}

	w.notify(filename)
	return nil
}

// AppendLog appends a dated entry to LOG.md, creating it if needed.
func (w *Writer) AppendLog(entry string) error {
	path := filepath.Join(Dir(w.projectRoot), "LOG.md")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // #nosec G304 - path derived from project root
	if err != nil {
		return fmt.Errorf("opening LOG.md: %w", err)
	}
	line := fmt.Sprintf("- %s %s\n", time.Now().Format("2006-01-02 15:04"), entry)
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("appending to LOG.md: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing LOG.md: %w", err)
	}

	w.notify("LOG.md")
	return nil
}

func (w *Writer) notify(filename string) {
	if w.notifier != nil {
		w.notifier.FileChanged(w.projectRoot, filename)
	}
}
