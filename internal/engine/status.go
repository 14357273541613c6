package engine

import (
	"context"

	"github.com/cha9ro/agent-skills/internal/manifest"
	"github.com/cha9ro/agent-skills/internal/planner"
	"github.com/cha9ro/agent-skills/internal/sources"
)

// Status reports, per install entry, whether the destination is missing,
// matches the source exactly, or has drifted. Nothing is mutated.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	m, err := manifest.Load(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	resolver := sources.NewResolver(m.Sources, m.BaseDir)
	plan := planner.BuildInstallPlan(m, resolver, e.fs, false)

	entries := make([]EntryStatus, 0, len(plan.Installs))
	for _, ri := range plan.Installs {
		entries = append(entries, e.entryStatus(ri))
	}

	return &StatusResult{BaseDir: m.BaseDir, Entries: entries}, nil
}

func (e *Engine) entryStatus(ri planner.ResolvedInstall) EntryStatus {
	st := EntryStatus{
		ID:   ri.ID,
		From: ri.From,
		To:   ri.To,
	}

	switch ri.Action {
	case planner.ActionError:
		st.State = StateError
		st.Detail = ri.Err.Error()
		return st
	case planner.ActionCreate:
		st.State = StateMissing
		return st
	}

	// Destination exists (planned without force, so the action is skip).
	// Compare tree hashes to distinguish an exact install from drift.
	srcHash, err := e.hasher.HashTree(ri.From)
	if err != nil {
		st.State = StateError
		st.Detail = err.Error()
		return st
	}
	dstHash, err := e.hasher.HashTree(ri.To)
	if err != nil {
		st.State = StateError
		st.Detail = err.Error()
		return st
	}

	if srcHash == dstHash {
		st.State = StateInstalled
	} else {
		st.State = StateModified
	}
	return st
}
