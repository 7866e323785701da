// Package rules generates IDE/agent rule files pointing coding assistants at
// the project's memory directory.
//
// Each integration gets its own output path and framing; the body comes from
// one shared template plus an optional per-project manifest
// (.memory/rules.yaml) with extra rule lines.
package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SPartenev/ai-svetlio-pro/internal/memory"
)

// ManifestFileName is the optional per-project rules manifest inside the
// memory directory. It is not part of the syncable set.
const ManifestFileName = "rules.yaml"

// Manifest customizes generated rule files.
type Manifest struct {
	ProjectName string   `yaml:"project_name,omitempty"`
	ExtraRules  []string `yaml:"extra_rules,omitempty"`
}

// Target describes one IDE/agent integration.
type Target struct {
	Name string // flag value, e.g. "cursor"
	Path string // output path relative to the project root
}

// Targets lists the supported integrations in generation order.
var Targets = []Target{
	{Name: "cursor", Path: filepath.Join(".cursor", "rules", "memory.mdc")},
	{Name: "windsurf", Path: ".windsurfrules"},
	{Name: "cline", Path: ".clinerules"},
	{Name: "claude", Path: "CLAUDE.md"},
}

func targetByName(name string) (Target, bool) {
	for _, t := range Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

const bodyTemplate = `# Project Memory: {{.ProjectName}}

This project keeps its working context in {{.MemoryDir}}/. Read these files
before making changes and keep them current as you work:

{{range .Files}}- {{$.MemoryDir}}/{{.}}
{{end}}
Rules:

- Read {{.MemoryDir}}/STATE.md at the start of every session.
- Record notable changes in {{.MemoryDir}}/LOG.md.
- Record design choices in {{.MemoryDir}}/DECISIONS.md with a rationale.
- Keep {{.MemoryDir}}/TODO.md in sync with the actual work queue.
{{range .ExtraRules}}- {{.}}
{{end}}
Generated by svetlio on {{.Date}}. Regenerate with ` + "`svetlio rules`" + `; do not edit by hand.
`

var cursorFrontMatter = "---\ndescription: Project memory conventions\nalwaysApply: true\n---\n\n"

type templateData struct {
	ProjectName string
	MemoryDir   string
	Files       []string
	ExtraRules  []string
	Date        string
}

// Generate writes rule files for the named targets (all known targets when
// names is empty) and returns the paths written, relative to projectRoot.
func Generate(projectRoot string, names []string) ([]string, error) {
	manifest, err := loadManifest(projectRoot)
	if err != nil {
		return nil, err
	}

	projectName := manifest.ProjectName
	if projectName == "" {
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			abs = projectRoot
		}
		projectName = filepath.Base(abs)
	}

	data := templateData{
		ProjectName: projectName,
		MemoryDir:   memory.DirName,
		Files:       memory.SyncableFiles,
		ExtraRules:  manifest.ExtraRules,
		Date:        time.Now().Format("2006-01-02"),
	}

	tmpl, err := template.New("rules").Parse(bodyTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing rules template: %w", err)
	}
	var body strings.Builder
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("rendering rules template: %w", err)
	}

	targets := Targets
	if len(names) > 0 {
		targets = nil
		for _, name := range names {
			t, ok := targetByName(name)
			if !ok {
				return nil, fmt.Errorf("unknown rules target %q", name)
			}
			targets = append(targets, t)
		}
	}

	var written []string
	for _, t := range targets {
		outPath := filepath.Join(projectRoot, t.Path)
		if err := os.MkdirAll(filepath.Dir(outPath), 0750); err != nil {
			return written, fmt.Errorf("creating %s: %w", filepath.Dir(t.Path), err)
		}
		content := body.String()
		if t.Name == "cursor" {
			content = cursorFrontMatter + content
		}
		if err := os.WriteFile(outPath, []byte(content), 0600); err != nil {
			return written, fmt.Errorf("writing %s: %w", t.Path, err)
		}
		written = append(written, t.Path)
	}
	return written, nil
}

func loadManifest(projectRoot string) (*Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(filepath.Join(memory.Dir(projectRoot), ManifestFileName)) // #nosec G304 - fixed filename
	if err != nil {
		return &m, nil // manifest is optional
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFileName, err)
	}
	return &m, nil
}
