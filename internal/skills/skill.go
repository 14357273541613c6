// Package skills reads skill metadata from SKILL.md files.
//
// A skill is a directory whose root contains a SKILL.md file with YAML
// frontmatter. Only the metadata is interpreted here; the installer copies
// skill content as-is.
package skills

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillFileName is the metadata file expected at the root of a skill.
const SkillFileName = "SKILL.md"

// Skill holds the frontmatter metadata of one skill directory.
type Skill struct {
	// Name from the frontmatter, falling back to the directory name.
	Name string `json:"name" yaml:"name"`

	// Description from the frontmatter.
	Description string `json:"description,omitempty" yaml:"description"`

	// Metadata carries any extra frontmatter key/value pairs.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata"`

	// RelPath is the skill directory relative to the source's skills root.
	RelPath string `json:"path" yaml:"-"`
}

// HasSkillFile reports whether dir contains a SKILL.md.
func HasSkillFile(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, SkillFileName))
	return err == nil && !info.IsDir()
}

// LoadFromDir parses the SKILL.md of a skill directory. A missing or empty
// frontmatter name falls back to the directory name.
func LoadFromDir(dir string) (*Skill, error) {
	data, err := os.ReadFile(filepath.Join(dir, SkillFileName))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SkillFileName, err)
	}

	skill, err := parse(string(data))
	if err != nil {
		return nil, err
	}
	if skill.Name == "" {
		skill.Name = filepath.Base(dir)
	}
	return skill, nil
}

// parse extracts the YAML frontmatter from SKILL.md content.
func parse(content string) (*Skill, error) {
	frontmatter, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	var skill Skill
	if err := yaml.Unmarshal([]byte(frontmatter), &skill); err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return &skill, nil
}

// splitFrontmatter returns the YAML between the leading --- delimiters.
func splitFrontmatter(content string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		if strings.TrimSpace(line) != "" {
			return "", fmt.Errorf("%s must start with YAML frontmatter (---)", SkillFileName)
		}
	}

	var lines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		lines = append(lines, line)
	}
	if !closed || len(lines) == 0 {
		return "", fmt.Errorf("missing or empty frontmatter in %s", SkillFileName)
	}

	return strings.Join(lines, "\n"), nil
}

// Discover walks a skills root and returns every skill directory beneath
// it, sorted by relative path. Directories inside a skill are not searched
// for nested skills.
func Discover(skillsRoot string) ([]Skill, error) {
	var found []Skill

	err := filepath.WalkDir(skillsRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == skillsRoot {
			return nil
		}
		if !HasSkillFile(path) {
			return nil
		}

		rel, err := filepath.Rel(skillsRoot, path)
		if err != nil {
			return err
		}

		skill, err := LoadFromDir(path)
		if err != nil {
			// A broken SKILL.md still marks a skill directory; surface it
			// by name so list output stays complete.
			skill = &Skill{Name: filepath.Base(path)}
		}
		skill.RelPath = rel
		found = append(found, *skill)
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("walking skills root %s: %w", skillsRoot, err)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].RelPath < found[j].RelPath
	})
	return found, nil
}
