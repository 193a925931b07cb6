package project_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"langcore/internal/project"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestManifestLoadValidatesRequiredFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "langproject.toml", `
[package]
name = "demo"
version = "0.1.0"

[build]
sources = ["main.lang"]
`)
	m, err := project.Load(filepath.Join(dir, "langproject.toml"))
	if err != nil {
		t.Fatalf("unexpected error loading manifest: %v", err)
	}
	if m.Package.Name != "demo" {
		t.Fatalf("expected package name 'demo', got %q", m.Package.Name)
	}
	if len(m.Build.Sources) != 1 || m.Build.Sources[0] != "main.lang" {
		t.Fatalf("expected one source 'main.lang', got %v", m.Build.Sources)
	}
	if m.Build.MaxDiagnostics != 100 {
		t.Fatalf("expected default MaxDiagnostics of 100, got %d", m.Build.MaxDiagnostics)
	}
	paths := m.SourcePaths()
	if len(paths) != 1 || paths[0] != filepath.Join(dir, "main.lang") {
		t.Fatalf("expected resolved source path under manifest dir, got %v", paths)
	}
}

func TestManifestLoadRejectsMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "langproject.toml", `
[package]
version = "0.1.0"

[build]
sources = ["main.lang"]
`)
	if _, err := project.Load(filepath.Join(dir, "langproject.toml")); err == nil {
		t.Fatalf("expected an error for a manifest missing [package].name")
	}
}

func TestManifestLoadRejectsEmptySources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "langproject.toml", `
[package]
name = "demo"

[build]
sources = []
`)
	if _, err := project.Load(filepath.Join(dir, "langproject.toml")); err == nil {
		t.Fatalf("expected an error for a manifest with no [build].sources")
	}
}

// TestBuildCompilesFilesInParallelAndMergesCleanly checks spec §5's
// concurrency model: independent files compile without errors and their
// per-file symbol tables fold into one project table without conflicts
// when names don't collide.
func TestBuildCompilesFilesInParallelAndMergesCleanly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "langproject.toml", `
[package]
name = "demo"

[build]
sources = ["a.lang", "b.lang"]
`)
	writeFile(t, dir, "a.lang", "fn helperA() : i32 { return 1; }")
	writeFile(t, dir, "b.lang", "fn helperB() : i32 { return 2; }")

	m, err := project.Load(filepath.Join(dir, "langproject.toml"))
	if err != nil {
		t.Fatalf("unexpected manifest error: %v", err)
	}
	result, err := project.Build(context.Background(), m, 2)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 compiled files, got %d", len(result.Files))
	}
	for _, f := range result.Files {
		if f.Bag.HasErrors() {
			t.Errorf("unexpected diagnostics for %s: %v", f.Path, f.Bag.Items())
		}
	}
	if len(result.Conflicts) != 0 {
		t.Fatalf("expected no merge conflicts for disjoint names, got %v", result.Conflicts)
	}
}

// TestBuildReportsCrossFileMergeConflict checks spec §8.2 scenario 5 at
// the project level: a function in one file and a variable of the same
// name in another file conflict once their tables are merged.
func TestBuildReportsCrossFileMergeConflict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "langproject.toml", `
[package]
name = "demo"

[build]
sources = ["a.lang", "b.lang"]
`)
	writeFile(t, dir, "a.lang", "fn foo() {}")
	writeFile(t, dir, "b.lang", "i32 foo;")

	m, err := project.Load(filepath.Join(dir, "langproject.toml"))
	if err != nil {
		t.Fatalf("unexpected manifest error: %v", err)
	}
	result, err := project.Build(context.Background(), m, 0)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("expected exactly 1 merge conflict, got %d: %v", len(result.Conflicts), result.Conflicts)
	}
}
