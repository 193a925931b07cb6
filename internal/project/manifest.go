// Package project loads a langproject.toml manifest and drives a
// parallel, per-file compile of the sources it names (spec §5's
// concurrency model; SPEC_FULL.md §A/§C.7), grounded on the teacher's
// surge.toml/project_manifest.go decode pattern and its errgroup-based
// directory driver in internal/driver/parallel.go.
package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded form of a langproject.toml file.
type Manifest struct {
	Path    string
	Root    string
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

// PackageConfig describes the [package] table.
type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// BuildConfig describes the [build] table: the source files (or globs)
// making up the compilation, and diagnostic limits.
type BuildConfig struct {
	Sources        []string `toml:"sources"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

// Load decodes path as a langproject.toml manifest, validating the
// required [package].name and [build].sources fields the way the
// teacher's loadProjectConfig validates [package]/[run].
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build") {
		return nil, fmt.Errorf("%s: missing [build]", path)
	}
	if len(m.Build.Sources) == 0 {
		return nil, fmt.Errorf("%s: [build].sources must list at least one file", path)
	}
	if m.Build.MaxDiagnostics <= 0 {
		m.Build.MaxDiagnostics = 100
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

// SourcePaths returns the manifest's source file paths resolved relative
// to the manifest's directory.
func (m *Manifest) SourcePaths() []string {
	out := make([]string, len(m.Build.Sources))
	for i, s := range m.Build.Sources {
		out[i] = filepath.Join(m.Root, filepath.FromSlash(s))
	}
	return out
}
