package engine

import (
	"context"

	"github.com/cha9ro/agent-skills/internal/manifest"
	"github.com/cha9ro/agent-skills/internal/planner"
	"github.com/cha9ro/agent-skills/internal/report"
	"github.com/cha9ro/agent-skills/internal/skills"
	"github.com/cha9ro/agent-skills/internal/sources"
)

// Install loads the manifest, plans every install entry, and executes (or
// simulates) the plan in manifest order.
//
// The error return covers fatal problems only: an unreadable or invalid
// manifest. Per-entry failures are isolated in the result's outcomes; use
// the summary to derive the exit status.
func (e *Engine) Install(ctx context.Context, req *InstallRequest) (*InstallResult, error) {
	start := e.clock.Now()

	m, err := manifest.Load(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	resolver := sources.NewResolver(m.Sources, m.BaseDir)
	plan := planner.BuildInstallPlan(m, resolver, e.fs, req.Force)

	outcomes := make([]report.Outcome, 0, len(plan.Installs))
	for _, ri := range plan.Installs {
		outcomes = append(outcomes, e.executeInstall(ri, req.DryRun))
	}

	return &InstallResult{
		BaseDir:  m.BaseDir,
		DryRun:   req.DryRun,
		Outcomes: outcomes,
		Summary:  report.Summarize(outcomes),
		Elapsed:  e.clock.Now().Sub(start),
	}, nil
}

// executeInstall performs the planned action for one entry. In dry-run
// mode nothing is touched and the would-be status is recorded instead.
func (e *Engine) executeInstall(ri planner.ResolvedInstall, dryRun bool) report.Outcome {
	out := report.Outcome{
		ID:   ri.ID,
		From: ri.From,
		To:   ri.To,
	}

	if dryRun {
		switch ri.Action {
		case planner.ActionCreate:
			out.Status = report.StatusWouldInstall
		case planner.ActionOverwrite:
			out.Status = report.StatusWouldOverwrite
		case planner.ActionSkip:
			out.Status = report.StatusWouldSkip
		case planner.ActionError:
			out.Status = report.StatusWouldFail
			out.Error = ri.Err.Error()
		}
		return out
	}

	switch ri.Action {
	case planner.ActionError:
		out.Status = report.StatusFailed
		out.Error = ri.Err.Error()

	case planner.ActionSkip:
		out.Status = report.StatusSkipped

	case planner.ActionCreate, planner.ActionOverwrite:
		replace := ri.Action == planner.ActionOverwrite
		if err := e.fs.InstallTree(ri.From, ri.To, replace); err != nil {
			out.Status = report.StatusFailed
			out.Error = err.Error()
			return out
		}
		if replace {
			out.Status = report.StatusOverwritten
		} else {
			out.Status = report.StatusInstalled
		}
		if !skills.HasSkillFile(ri.To) {
			out.Warning = "SKILL.md not found in installed skill"
		}
	}

	return out
}
