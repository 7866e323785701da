package viewer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

func scaffolded(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if _, err := memory.Scaffold(root, "alpha"); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestRenderFile(t *testing.T) {
	root := scaffolded(t)

	out, err := RenderFile(root, "STATE.md")
	if err != nil {
		t.Fatalf("RenderFile() failed: %v", err)
	}
	if !strings.Contains(out, "alpha") {
		t.Errorf("rendered output missing project name:\n%s", out)
	}
}

func TestRenderFileRejectsUntracked(t *testing.T) {
	root := scaffolded(t)
	if err := os.WriteFile(filepath.Join(memory.Dir(root), "SECRET.md"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := RenderFile(root, "SECRET.md"); err == nil {
		t.Fatal("RenderFile(SECRET.md) succeeded, want error")
	}
}

func TestListPresent(t *testing.T) {
	root := scaffolded(t)

	present := ListPresent(root)
	if len(present) != len(memory.SyncableFiles) {
		t.Errorf("ListPresent() = %d files, want %d", len(present), len(memory.SyncableFiles))
	}
}

func TestHandlerRendersHTML(t *testing.T) {
	root := scaffolded(t)
	srv := httptest.NewServer(Handler(root))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/STATE.md")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /STATE.md = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<h1") {
		t.Errorf("body missing rendered heading:\n%s", body)
	}
}

func TestHandlerRootServesState(t *testing.T) {
	root := scaffolded(t)
	srv := httptest.NewServer(Handler(root))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Project State") {
		t.Errorf("root page does not show STATE.md:\n%s", body)
	}
}

func TestHandlerRejectsUntrackedAndTraversal(t *testing.T) {
	root := scaffolded(t)
	srv := httptest.NewServer(Handler(root))
	defer srv.Close()

	for _, path := range []string{"/NOTES.md", "/../hub.json", "/backups"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, resp.StatusCode)
		}
	}
}

func TestHandlerReadOnly(t *testing.T) {
	root := scaffolded(t)
	srv := httptest.NewServer(Handler(root))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/STATE.md", "text/plain", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST = %d, want 405", resp.StatusCode)
	}
}
