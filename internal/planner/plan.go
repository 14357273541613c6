// Package planner decides, per install entry, which filesystem action the
// installer must take.
//
// Entries are planned independently: a failure resolving one entry is
// recorded on that entry's ResolvedInstall and never blocks the others.
package planner

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/cha9ro/agent-skills/internal/fsops"
	"github.com/cha9ro/agent-skills/internal/manifest"
	"github.com/cha9ro/agent-skills/internal/sources"
)

// Action is the planned filesystem action for one install entry.
type Action string

const (
	// ActionCreate installs into a destination that does not exist yet.
	ActionCreate Action = "create"

	// ActionOverwrite replaces an existing destination (force only).
	ActionOverwrite Action = "overwrite"

	// ActionSkip leaves an existing destination untouched.
	ActionSkip Action = "skip-exists"

	// ActionError marks an entry that cannot be installed.
	ActionError Action = "error"
)

// ErrMissingSource indicates a resolved source path that does not exist.
var ErrMissingSource = errors.New("source path not found")

// ResolvedInstall is the fully resolved form of one install entry.
// Values are built during planning and consumed immediately by the
// installer; they are never persisted.
type ResolvedInstall struct {
	// ID is the entry's id from the manifest.
	ID string

	// SourceName is the source half of the entry's from reference.
	SourceName string

	// From is the absolute source path (empty if resolution failed).
	From string

	// To is the absolute destination path.
	To string

	// Action is the planned action.
	Action Action

	// Err is set when Action is ActionError.
	Err error
}

// InstallPlan is the ordered set of resolved installs for one run.
type InstallPlan struct {
	Installs []ResolvedInstall
}

// HasErrors reports whether any entry planned to ActionError.
func (p *InstallPlan) HasErrors() bool {
	for _, ri := range p.Installs {
		if ri.Action == ActionError {
			return true
		}
	}
	return false
}

// BuildInstallPlan plans every install entry of the manifest in order.
func BuildInstallPlan(m *manifest.Manifest, resolver *sources.Resolver, fs fsops.FS, force bool) *InstallPlan {
	plan := &InstallPlan{Installs: make([]ResolvedInstall, 0, len(m.Install))}
	for _, entry := range m.Install {
		plan.Installs = append(plan.Installs, PlanEntry(entry, resolver, m.BaseDir, fs, force))
	}
	return plan
}

// PlanEntry resolves a single entry and decides its action based on the
// current filesystem state and the force flag.
func PlanEntry(entry manifest.InstallEntry, resolver *sources.Resolver, baseDir string, fs fsops.FS, force bool) ResolvedInstall {
	ri := ResolvedInstall{ID: entry.ID}

	if filepath.IsAbs(entry.To) {
		ri.To = filepath.Clean(entry.To)
	} else {
		if err := fs.ValidateRelPath(entry.To); err != nil {
			return ri.failed(fmt.Errorf("invalid destination: %w", err))
		}
		ri.To = filepath.Join(baseDir, entry.To)
	}

	name, relPath, err := manifest.SplitRef(entry.From)
	if err != nil {
		return ri.failed(err)
	}
	ri.SourceName = name

	src, err := resolver.Lookup(name)
	if err != nil {
		return ri.failed(err)
	}

	from, err := src.Resolve(relPath)
	if err != nil {
		return ri.failed(err)
	}
	ri.From = from

	info, err := fs.Stat(from)
	if err != nil {
		return ri.failed(fmt.Errorf("%w: %s", ErrMissingSource, from))
	}
	if !info.IsDir() {
		return ri.failed(fmt.Errorf("source must be a directory: %s", from))
	}

	exists, err := fs.Exists(ri.To)
	if err != nil {
		return ri.failed(fmt.Errorf("failed to check destination: %w", err))
	}

	switch {
	case !exists:
		ri.Action = ActionCreate
	case force:
		ri.Action = ActionOverwrite
	default:
		ri.Action = ActionSkip
	}
	return ri
}

func (ri ResolvedInstall) failed(err error) ResolvedInstall {
	ri.Action = ActionError
	ri.Err = err
	return ri
}
