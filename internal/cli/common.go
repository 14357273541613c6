package cli

import (
	"encoding/json"
	"os"

	"github.com/cha9ro/agent-skills/internal/clock"
	"github.com/cha9ro/agent-skills/internal/engine"
	"github.com/cha9ro/agent-skills/internal/fsops"
	"github.com/cha9ro/agent-skills/internal/hash"
)

// newEngine creates an engine with real implementations of all dependencies.
func newEngine() *engine.Engine {
	return engine.New(fsops.NewRealFS(), hash.NewSHA256Hasher(), &clock.RealClock{})
}

// outputJSON outputs a value as indented JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
