package engine

import (
	"time"

	"github.com/cha9ro/agent-skills/internal/report"
	"github.com/cha9ro/agent-skills/internal/skills"
)

// InstallResult represents the result of an install run.
type InstallResult struct {
	// BaseDir is the manifest's directory, against which all paths resolved.
	BaseDir string `json:"base_dir"`

	// DryRun records whether the run was simulated.
	DryRun bool `json:"dry_run"`

	// Outcomes is the per-entry record, in manifest order.
	Outcomes []report.Outcome `json:"outcomes"`

	// Summary counts outcomes by kind.
	Summary report.Summary `json:"summary"`

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed_ns"`
}

// EntryState describes how an installed entry compares to its source.
type EntryState string

const (
	// StateMissing means the destination does not exist.
	StateMissing EntryState = "missing"

	// StateInstalled means the destination matches the source exactly.
	StateInstalled EntryState = "installed"

	// StateModified means the destination differs from the source.
	StateModified EntryState = "modified"

	// StateError means the entry could not be resolved or compared.
	StateError EntryState = "error"
)

// EntryStatus is the status of one install entry.
type EntryStatus struct {
	ID     string     `json:"id"`
	From   string     `json:"from,omitempty"`
	To     string     `json:"to"`
	State  EntryState `json:"state"`
	Detail string     `json:"detail,omitempty"`
}

// StatusResult represents the result of a status check.
type StatusResult struct {
	BaseDir string        `json:"base_dir"`
	Entries []EntryStatus `json:"entries"`
}

// Problem is one validation finding against a manifest entry.
type Problem struct {
	EntryID string `json:"entry_id"`
	Detail  string `json:"detail"`
}

// ValidateResult represents the result of validating a manifest.
// A fatal schema failure is returned as an error instead; Problems holds
// per-entry reference issues found in an otherwise well-formed manifest.
type ValidateResult struct {
	SourceCount int       `json:"source_count"`
	EntryCount  int       `json:"entry_count"`
	Problems    []Problem `json:"problems,omitempty"`
}

// Valid reports whether the manifest passed every check.
func (r *ValidateResult) Valid() bool {
	return len(r.Problems) == 0
}

// SourceSkills lists the skills discovered under one source.
type SourceSkills struct {
	Source string         `json:"source"`
	Skills []skills.Skill `json:"skills"`
	Error  string         `json:"error,omitempty"`
}

// ListResult represents the result of listing available skills.
type ListResult struct {
	Sources []SourceSkills `json:"sources"`
}
