package engine

import (
	"context"

	"github.com/cha9ro/agent-skills/internal/manifest"
	"github.com/cha9ro/agent-skills/internal/sources"
)

// Validate loads a manifest and statically checks every install entry's
// source reference: the source name must be declared, its type supported,
// and the relative path must stay inside the source root. No destination
// is touched and no source content is required to exist.
//
// Schema failures (bad version, malformed sources or entries) return an
// error; reference problems in a well-formed manifest are collected in
// the result.
func (e *Engine) Validate(ctx context.Context, req *ValidateRequest) (*ValidateResult, error) {
	m, err := manifest.Load(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	resolver := sources.NewResolver(m.Sources, m.BaseDir)

	result := &ValidateResult{
		SourceCount: len(m.Sources),
		EntryCount:  len(m.Install),
	}

	for _, entry := range m.Install {
		name, relPath, err := manifest.SplitRef(entry.From)
		if err != nil {
			result.Problems = append(result.Problems, Problem{EntryID: entry.ID, Detail: err.Error()})
			continue
		}
		src, err := resolver.Lookup(name)
		if err != nil {
			result.Problems = append(result.Problems, Problem{EntryID: entry.ID, Detail: err.Error()})
			continue
		}
		if _, err := src.Resolve(relPath); err != nil {
			result.Problems = append(result.Problems, Problem{EntryID: entry.ID, Detail: err.Error()})
		}
	}

	return result, nil
}
