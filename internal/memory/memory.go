// Package memory manages the per-project .memory directory: the fixed set of
// syncable context files, directory discovery, and initial scaffolding.
package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DirName is the conventional memory directory name at a project root.
const DirName = ".memory"

// BackupsDirName holds pre-overwrite copies taken during hub pulls.
// It lives inside the memory directory but is never synced.
const BackupsDirName = "backups"

// SyncableFiles is the closed set of filenames eligible for hub
// synchronization. Nothing else in the memory directory is ever copied in
// either direction.
var SyncableFiles = []string{
	"STATE.md",
	"LOG.md",
	"ARCHITECTURE.md",
	"TOOLS.md",
	"TODO.md",
	"DECISIONS.md",
	"PROBLEMS.md",
	"MODES.md",
}

// IsSyncable reports whether name is one of the eight syncable filenames.
func IsSyncable(name string) bool {
	for _, f := range SyncableFiles {
		if name == f {
			return true
		}
	}
	return false
}

// Dir returns the memory directory path for a project root.
func Dir(projectRoot string) string {
	return filepath.Join(projectRoot, DirName)
}

// BackupsDir returns the backups location for a project root.
func BackupsDir(projectRoot string) string {
	return filepath.Join(projectRoot, DirName, BackupsDirName)
}

// FindProjectRoot walks up from startDir looking for a directory containing
// .memory. Returns empty string if none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if info, err := os.Stat(filepath.Join(dir, DirName)); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Exists reports whether projectRoot already has a memory directory.
func Exists(projectRoot string) bool {
	info, err := os.Stat(Dir(projectRoot))
	return err == nil && info.IsDir()
}

// Scaffold creates the memory directory and all eight syncable files with
// initial templated content. Existing files are left untouched, so Scaffold
// is safe to re-run on a partially initialized project.
// Returns the list of files actually created.
func Scaffold(projectRoot, projectName string) ([]string, error) {
	memDir := Dir(projectRoot)
	if err := os.MkdirAll(memDir, 0750); err != nil {
		return nil, fmt.Errorf("creating memory directory: %w", err)
	}

	now := time.Now().Format("2006-01-02")
	var created []string
	for _, name := range SyncableFiles {
		path := filepath.Join(memDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		content := initialContent(name, projectName, now)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			return created, fmt.Errorf("writing %s: %w", name, err)
		}
		created = append(created, name)
	}
	return created, nil
}

func initialContent(name, projectName, date string) string {
	switch name {
	case "STATE.md":
		return fmt.Sprintf("# Project State: %s\n\n_Initialized %s._\n\n## Current Focus\n\n(not set)\n\n## Session Notes\n\n", projectName, date)
	case "LOG.md":
		return fmt.Sprintf("# Work Log: %s\n\n## %s\n\n- Memory initialized\n", projectName, date)
	case "ARCHITECTURE.md":
		return fmt.Sprintf("# Architecture: %s\n\n## Overview\n\n(describe the system here)\n\n## Components\n\n", projectName)
	case "TOOLS.md":
		return fmt.Sprintf("# Tools & Commands: %s\n\n## Build\n\n## Test\n\n## Run\n\n", projectName)
	case "TODO.md":
		return fmt.Sprintf("# TODO: %s\n\n## Now\n\n## Next\n\n## Later\n\n", projectName)
	case "DECISIONS.md":
		return fmt.Sprintf("# Decisions: %s\n\n| Date | Decision | Rationale |\n|------|----------|-----------|\n", projectName)
	case "PROBLEMS.md":
		return fmt.Sprintf("# Known Problems: %s\n\n_None recorded._\n", projectName)
	case "MODES.md":
		return fmt.Sprintf("# Working Modes: %s\n\n## Active Mode\n\ndefault\n\n## Mode History\n\n| Date | Mode | Notes |\n|------|------|-------|\n| %s | default | initialized |\n", projectName, date)
	}
	return fmt.Sprintf("# %s\n", name)
}
