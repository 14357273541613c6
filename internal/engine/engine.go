// Package engine provides the core install logic behind the CLI commands.
//
// The engine coordinates manifest loading, source resolution, per-entry
// planning, and plan execution. Fatal manifest problems are returned as
// errors before any entry runs; per-entry failures are recorded in the
// result's outcomes and never abort the run.
package engine

import (
	"github.com/cha9ro/agent-skills/internal/clock"
	"github.com/cha9ro/agent-skills/internal/fsops"
	"github.com/cha9ro/agent-skills/internal/hash"
)

// Engine orchestrates all skill install operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	hasher hash.Hasher
	clock  clock.Clock
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, hasher hash.Hasher, clk clock.Clock) *Engine {
	return &Engine{
		fs:     fs,
		hasher: hasher,
		clock:  clk,
	}
}
