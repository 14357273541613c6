// Package sources resolves named source references into absolute paths.
//
// A Source is the capability of turning a relative skill path into an
// absolute filesystem path. Local trees are the only variant today; the
// interface leaves room for remote kinds without touching the planner or
// installer.
package sources

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cha9ro/agent-skills/internal/manifest"
)

var (
	// ErrUnknownSource indicates a reference to a source not declared in
	// the manifest.
	ErrUnknownSource = errors.New("unknown source")

	// ErrUnsupportedType indicates a source type this tool cannot resolve.
	ErrUnsupportedType = errors.New("unsupported source type")

	// ErrPathTraversal indicates a relative path that would escape its
	// source root.
	ErrPathTraversal = errors.New("path traversal")
)

// Source resolves a relative skill path to an absolute path.
type Source interface {
	Resolve(relPath string) (string, error)
}

// Local is a source backed by a directory tree on the local filesystem.
type Local struct {
	// root is the absolute source root.
	root string

	// skillsRoot is the skills directory, relative to root.
	skillsRoot string
}

// NewLocal creates a Local source. Root is resolved against baseDir unless
// it is already absolute.
func NewLocal(spec manifest.SourceSpec, baseDir string) *Local {
	root := spec.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(baseDir, root)
	}
	return &Local{
		root:       filepath.Clean(root),
		skillsRoot: spec.SkillsRoot,
	}
}

// Resolve computes root/skills_root/relPath and rejects any result that
// escapes the source root.
func (l *Local) Resolve(relPath string) (string, error) {
	if relPath == "" {
		return "", fmt.Errorf("%w: empty relative path", ErrPathTraversal)
	}
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("%w: absolute path %q not allowed in source reference", ErrPathTraversal, relPath)
	}

	resolved := filepath.Join(l.root, l.skillsRoot, relPath)

	rel, err := filepath.Rel(l.root, resolved)
	if err != nil {
		return "", fmt.Errorf("%w: cannot relate %q to source root", ErrPathTraversal, relPath)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes source root %s", ErrPathTraversal, relPath, l.root)
	}

	return resolved, nil
}

// Root returns the absolute source root.
func (l *Local) Root() string {
	return l.root
}

// SkillsDir returns the absolute skills directory of the source.
func (l *Local) SkillsDir() string {
	return filepath.Join(l.root, l.skillsRoot)
}

// Resolver looks up named sources declared in a manifest.
type Resolver struct {
	specs   map[string]manifest.SourceSpec
	baseDir string
}

// NewResolver creates a Resolver over the manifest's sources, resolving
// relative roots against baseDir.
func NewResolver(specs map[string]manifest.SourceSpec, baseDir string) *Resolver {
	return &Resolver{specs: specs, baseDir: baseDir}
}

// Lookup returns the Source for a declared name. Pure lookup, no I/O.
func (r *Resolver) Lookup(name string) (Source, error) {
	spec, ok := r.specs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	switch spec.Type {
	case manifest.SourceTypeLocal:
		return NewLocal(spec, r.baseDir), nil
	default:
		return nil, fmt.Errorf("%w: source %s has type %q", ErrUnsupportedType, name, spec.Type)
	}
}
