package manifest

import (
	"fmt"
	"strings"
)

// SupportedVersion is the only manifest schema version this tool accepts.
const SupportedVersion = 1

// DefaultName is the manifest filename looked up when --manifest is not given.
const DefaultName = "skills.yaml"

// Manifest represents a parsed skills.yaml document.
//
// BaseDir is the absolute directory containing the manifest file. All
// relative paths in the manifest (source roots and install destinations)
// resolve against it, never against the process working directory.
type Manifest struct {
	Version int                   `yaml:"version"`
	Sources map[string]SourceSpec `yaml:"sources"`
	Install []InstallEntry        `yaml:"install"`

	BaseDir string `yaml:"-"`
}

// SourceSpec describes a named location skills are read from.
type SourceSpec struct {
	// Type is the source kind. Only "local" is supported.
	Type string `yaml:"type"`

	// Root is the source tree root, relative to the manifest directory
	// (absolute paths are honored as-is).
	Root string `yaml:"root"`

	// SkillsRoot is the skills directory inside Root.
	SkillsRoot string `yaml:"skills_root"`
}

// InstallEntry is one declared installation request.
type InstallEntry struct {
	// ID names the entry in reports.
	ID string `yaml:"id"`

	// From is a source reference of the form "<source-name>:<relative-path>".
	From string `yaml:"from"`

	// To is the destination, relative to the manifest directory.
	To string `yaml:"to"`
}

// SourceTypeLocal is the only source type currently supported.
const SourceTypeLocal = "local"

// SplitRef splits a "<source-name>:<relative-path>" reference on the first
// colon. Both halves must be non-empty.
func SplitRef(ref string) (name, relPath string, err error) {
	i := strings.Index(ref, ":")
	if i <= 0 || i == len(ref)-1 {
		return "", "", fmt.Errorf("%w: reference %q must have the form <source>:<path>", ErrInvalidEntry, ref)
	}
	return ref[:i], ref[i+1:], nil
}
