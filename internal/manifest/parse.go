// Package manifest loads and validates the skills.yaml manifest.
//
// The manifest declares named sources (local trees skills are read from)
// and an ordered list of install entries. Validation failures here are
// fatal: no install entry runs against a manifest that did not fully
// validate.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedVersion indicates a missing or unsupported version field.
	ErrUnsupportedVersion = errors.New("unsupported manifest version")

	// ErrInvalidSource indicates a malformed source spec.
	ErrInvalidSource = errors.New("invalid source spec")

	// ErrInvalidEntry indicates a malformed install entry.
	ErrInvalidEntry = errors.New("invalid install entry")
)

// Load reads and validates a manifest file. BaseDir is set to the absolute
// directory containing the file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving manifest directory: %w", err)
	}
	m.BaseDir = baseDir
	return m, nil
}

// Parse parses and validates manifest content. BaseDir is left empty.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest YAML: %w", err)
	}
	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func validate(m *Manifest) error {
	if m.Version != SupportedVersion {
		return fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, m.Version, SupportedVersion)
	}
	if len(m.Sources) == 0 {
		return fmt.Errorf("%w: manifest must declare a sources section", ErrInvalidSource)
	}
	for name, spec := range m.Sources {
		if err := validateSource(name, spec); err != nil {
			return err
		}
	}
	// An explicitly empty list (install: []) is a valid no-op manifest;
	// omitting the section entirely is not.
	if m.Install == nil {
		return fmt.Errorf("%w: manifest must declare an install section", ErrInvalidEntry)
	}
	for i, entry := range m.Install {
		if err := validateEntry(i, entry); err != nil {
			return err
		}
	}
	return nil
}

func validateSource(name string, spec SourceSpec) error {
	if name == "" {
		return fmt.Errorf("%w: source name must not be empty", ErrInvalidSource)
	}
	if spec.Type == "" {
		return fmt.Errorf("%w: source %q is missing type", ErrInvalidSource, name)
	}
	if spec.Root == "" {
		return fmt.Errorf("%w: source %q is missing root", ErrInvalidSource, name)
	}
	if spec.SkillsRoot == "" {
		return fmt.Errorf("%w: source %q is missing skills_root", ErrInvalidSource, name)
	}
	return nil
}

func validateEntry(i int, entry InstallEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("%w: install[%d].id is required", ErrInvalidEntry, i)
	}
	if entry.From == "" {
		return fmt.Errorf("%w: install[%d] (%s).from is required", ErrInvalidEntry, i, entry.ID)
	}
	if _, _, err := SplitRef(entry.From); err != nil {
		return fmt.Errorf("install[%d] (%s): %w", i, entry.ID, err)
	}
	if entry.To == "" {
		return fmt.Errorf("%w: install[%d] (%s).to is required", ErrInvalidEntry, i, entry.ID)
	}
	return nil
}
