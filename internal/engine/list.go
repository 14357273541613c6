package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/cha9ro/agent-skills/internal/manifest"
	"github.com/cha9ro/agent-skills/internal/skills"
	"github.com/cha9ro/agent-skills/internal/sources"
)

// ListSkills discovers the skills available under each source's skills
// root. Sources are reported in name order; a source that cannot be
// resolved or read is reported with its error rather than aborting the
// listing.
func (e *Engine) ListSkills(ctx context.Context, req *ListRequest) (*ListResult, error) {
	m, err := manifest.Load(req.ManifestPath)
	if err != nil {
		return nil, err
	}

	resolver := sources.NewResolver(m.Sources, m.BaseDir)

	names := make([]string, 0, len(m.Sources))
	for name := range m.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	result := &ListResult{Sources: make([]SourceSkills, 0, len(names))}
	for _, name := range names {
		result.Sources = append(result.Sources, e.listSource(resolver, name))
	}
	return result, nil
}

func (e *Engine) listSource(resolver *sources.Resolver, name string) SourceSkills {
	ss := SourceSkills{Source: name}

	src, err := resolver.Lookup(name)
	if err != nil {
		ss.Error = err.Error()
		return ss
	}
	local, ok := src.(*sources.Local)
	if !ok {
		ss.Error = fmt.Sprintf("source %s cannot be listed", name)
		return ss
	}

	skillsDir := local.SkillsDir()
	exists, err := e.fs.Exists(skillsDir)
	if err != nil {
		ss.Error = err.Error()
		return ss
	}
	if !exists {
		ss.Error = fmt.Sprintf("skills root not found: %s", skillsDir)
		return ss
	}

	found, err := skills.Discover(skillsDir)
	if err != nil {
		ss.Error = err.Error()
		return ss
	}
	ss.Skills = found
	return ss
}
