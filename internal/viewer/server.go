package viewer

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s - svetlio memory</title>
<style>
body { max-width: 72rem; margin: 2rem auto; padding: 0 1rem; font-family: system-ui, sans-serif; line-height: 1.5; }
nav { border-bottom: 1px solid #ccc; padding-bottom: 0.5rem; margin-bottom: 1.5rem; }
nav a { margin-right: 1rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.6rem; }
pre { background: #f5f5f5; padding: 0.75rem; overflow-x: auto; }
</style>
</head>
<body>
<nav>%s</nav>
%s
</body>
</html>
`

// Handler serves the project's memory files as rendered HTML. Read-only:
// only GET is accepted and only the fixed syncable filenames resolve.
func Handler(projectRoot string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "read-only viewer", http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "" {
			name = "STATE.md"
		}
		if !memory.IsSyncable(name) {
			http.NotFound(w, r)
			return
		}

		data, err := os.ReadFile(filepath.Join(memory.Dir(projectRoot), name)) // #nosec G304 - name checked against fixed set
		if err != nil {
			http.NotFound(w, r)
			return
		}

		var body bytes.Buffer
		if err := md.Convert(data, &body); err != nil {
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, pageShell, html.EscapeString(name), navLinks(projectRoot, name), body.String())
	})
	return mux
}

func navLinks(projectRoot, current string) string {
	var b strings.Builder
	for _, name := range ListPresent(projectRoot) {
		if name == current {
			fmt.Fprintf(&b, "<strong>%s</strong> ", html.EscapeString(name))
		} else {
			fmt.Fprintf(&b, `<a href="/%s">%s</a>`, html.EscapeString(name), html.EscapeString(name))
		}
	}
	return b.String()
}

// ListenAndServe runs the viewer on localhost only.
func ListenAndServe(projectRoot string, port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	return http.ListenAndServe(addr, Handler(projectRoot)) // #nosec G114 - localhost-only convenience server
}
