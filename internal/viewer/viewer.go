// Package viewer renders memory files read-only, either straight to the
// terminal or through a local HTTP server. It never writes to the memory
// directory.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"

	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

// RenderFile renders one syncable memory file as styled terminal output.
func RenderFile(projectRoot, filename string) (string, error) {
	if !memory.IsSyncable(filename) {
		return "", fmt.Errorf("%s is not a memory file", filename)
	}
	data, err := os.ReadFile(filepath.Join(memory.Dir(projectRoot), filename)) // #nosec G304 - fixed filename set
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(string(data))
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", filename, err)
	}
	return out, nil
}

// ListPresent returns the syncable files that exist in the project's memory
// directory, in canonical order.
func ListPresent(projectRoot string) []string {
	var present []string
	for _, name := range memory.SyncableFiles {
		if _, err := os.Stat(filepath.Join(memory.Dir(projectRoot), name)); err == nil {
			present = append(present, name)
		}
	}
	return present
}
