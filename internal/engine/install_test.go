package engine

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/cha9ro/agent-skills/internal/clock"
	"github.com/cha9ro/agent-skills/internal/fsops"
	"github.com/cha9ro/agent-skills/internal/hash"
	"github.com/cha9ro/agent-skills/internal/report"
)

// newTestEngine returns an engine backed by real filesystem operations and
// a fixed clock.
func newTestEngine() *Engine {
	return New(fsops.NewRealFS(), hash.NewSHA256Hasher(), clock.NewFakeClock(time.Unix(1700000000, 0)))
}

// writeFiles creates files under base from relative path -> content.
func writeFiles(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(base, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// snapshotTree reads every file under root into relative path -> content.
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil || info.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(data)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	return files
}

// setupProject writes a project directory holding a manifest and a hub
// source with one real skill, then returns the base dir and manifest path.
func setupProject(t *testing.T, manifestContent string) (base, manifestPath string) {
	t.Helper()
	base = t.TempDir()
	writeFiles(t, base, map[string]string{
		".skills-hub/skills/custom/unit-test-generator/SKILL.md":          "---\nname: unit-test-generator\ndescription: Generates unit tests\n---\n\n# Usage\n",
		".skills-hub/skills/custom/unit-test-generator/references/how.md": "reference content",
	})
	manifestPath = filepath.Join(base, "skills.yaml")
	if err := os.WriteFile(manifestPath, []byte(manifestContent), 0644); err != nil {
		t.Fatal(err)
	}
	return base, manifestPath
}

const projectManifest = `
version: 1
sources:
  hub:
    type: local
    root: .skills-hub
    skills_root: skills
install:
  - id: unit-test-generator
    from: hub:custom/unit-test-generator
    to: .agent/skills/unit-test-generator
`

func TestInstall_CreatesSkill(t *testing.T) {
	base, manifestPath := setupProject(t, projectManifest)
	eng := newTestEngine()

	result, err := eng.Install(context.Background(), &InstallRequest{ManifestPath: manifestPath})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	if len(result.Outcomes) != 1 {
		t.Fatalf("len(Outcomes) = %d, want 1", len(result.Outcomes))
	}
	out := result.Outcomes[0]
	if out.Status != report.StatusInstalled {
		t.Fatalf("Status = %s, want %s (error: %s)", out.Status, report.StatusInstalled, out.Error)
	}
	if out.Warning != "" {
		t.Errorf("unexpected warning: %s", out.Warning)
	}
	if !result.Summary.OK() {
		t.Error("Summary.OK() = false, want true")
	}

	src := snapshotTree(t, filepath.Join(base, ".skills-hub", "skills", "custom", "unit-test-generator"))
	dst := snapshotTree(t, filepath.Join(base, ".agent", "skills", "unit-test-generator"))
	if !reflect.DeepEqual(src, dst) {
		t.Errorf("installed tree differs from source:\nsrc: %v\ndst: %v", src, dst)
	}
}

func TestInstall_SecondRunSkips(t *testing.T) {
	base, manifestPath := setupProject(t, projectManifest)
	eng := newTestEngine()
	ctx := context.Background()

	if _, err := eng.Install(ctx, &InstallRequest{ManifestPath: manifestPath}); err != nil {
		t.Fatal(err)
	}
	before := snapshotTree(t, filepath.Join(base, ".agent"))

	result, err := eng.Install(ctx, &InstallRequest{ManifestPath: manifestPath})
	if err != nil {
		t.Fatalf("second Install() error = %v", err)
	}
	if result.Outcomes[0].Status != report.StatusSkipped {
		t.Errorf("Status = %s, want %s", result.Outcomes[0].Status, report.StatusSkipped)
	}
	if !result.Summary.OK() {
		t.Error("skip must not fail the run")
	}

	after := snapshotTree(t, filepath.Join(base, ".agent"))
	if !reflect.DeepEqual(before, after) {
		t.Error("second run without force changed the destination tree")
	}
}

func TestInstall_ForceRestoresModifiedSkill(t *testing.T) {
	base, manifestPath := setupProject(t, projectManifest)
	eng := newTestEngine()
	ctx := context.Background()

	if _, err := eng.Install(ctx, &InstallRequest{ManifestPath: manifestPath}); err != nil {
		t.Fatal(err)
	}

	// Tamper with the installed skill and add a stale file.
	dest := filepath.Join(base, ".agent", "skills", "unit-test-generator")
	writeFiles(t, dest, map[string]string{
		"SKILL.md": "tampered",
		"stale.md": "should be removed by force install",
	})

	result, err := eng.Install(ctx, &InstallRequest{ManifestPath: manifestPath, Force: true})
	if err != nil {
		t.Fatalf("Install(force) error = %v", err)
	}
	if result.Outcomes[0].Status != report.StatusOverwritten {
		t.Errorf("Status = %s, want %s", result.Outcomes[0].Status, report.StatusOverwritten)
	}

	src := snapshotTree(t, filepath.Join(base, ".skills-hub", "skills", "custom", "unit-test-generator"))
	dst := snapshotTree(t, dest)
	if !reflect.DeepEqual(src, dst) {
		t.Errorf("force install did not restore the destination:\nsrc: %v\ndst: %v", src, dst)
	}
}

func TestInstall_DryRunNeverMutates(t *testing.T) {
	base, manifestPath := setupProject(t, projectManifest)
	eng := newTestEngine()
	ctx := context.Background()

	before := snapshotTree(t, base)

	result, err := eng.Install(ctx, &InstallRequest{ManifestPath: manifestPath, DryRun: true})
	if err != nil {
		t.Fatalf("Install(dry-run) error = %v", err)
	}
	if result.Outcomes[0].Status != report.StatusWouldInstall {
		t.Errorf("Status = %s, want %s", result.Outcomes[0].Status, report.StatusWouldInstall)
	}

	after := snapshotTree(t, base)
	if !reflect.DeepEqual(before, after) {
		t.Error("dry run mutated the filesystem")
	}
}

func TestInstall_DryRunWithForceReportsWouldOverwrite(t *testing.T) {
	base, manifestPath := setupProject(t, projectManifest)
	eng := newTestEngine()
	ctx := context.Background()

	if _, err := eng.Install(ctx, &InstallRequest{ManifestPath: manifestPath}); err != nil {
		t.Fatal(err)
	}
	before := snapshotTree(t, base)

	result, err := eng.Install(ctx, &InstallRequest{ManifestPath: manifestPath, DryRun: true, Force: true})
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcomes[0].Status != report.StatusWouldOverwrite {
		t.Errorf("Status = %s, want %s", result.Outcomes[0].Status, report.StatusWouldOverwrite)
	}

	after := snapshotTree(t, base)
	if !reflect.DeepEqual(before, after) {
		t.Error("dry run with force mutated the filesystem")
	}
}

func TestInstall_PartialFailureIsolation(t *testing.T) {
	manifestContent := `
version: 1
sources:
  hub:
    type: local
    root: .skills-hub
    skills_root: skills
install:
  - id: broken
    from: ghost:custom/unit-test-generator
    to: .agent/skills/broken
  - id: unit-test-generator
    from: hub:custom/unit-test-generator
    to: .agent/skills/unit-test-generator
`
	base, manifestPath := setupProject(t, manifestContent)
	eng := newTestEngine()

	result, err := eng.Install(context.Background(), &InstallRequest{ManifestPath: manifestPath})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	if len(result.Outcomes) != 2 {
		t.Fatalf("len(Outcomes) = %d, want 2", len(result.Outcomes))
	}
	if result.Outcomes[0].Status != report.StatusFailed {
		t.Errorf("broken entry Status = %s, want %s", result.Outcomes[0].Status, report.StatusFailed)
	}
	if result.Outcomes[0].Error == "" {
		t.Error("failed outcome is missing its error message")
	}
	if result.Outcomes[1].Status != report.StatusInstalled {
		t.Errorf("valid entry Status = %s, want %s", result.Outcomes[1].Status, report.StatusInstalled)
	}
	if result.Summary.OK() {
		t.Error("Summary.OK() = true, want false when an entry failed")
	}

	if _, err := os.Stat(filepath.Join(base, ".agent", "skills", "unit-test-generator", "SKILL.md")); err != nil {
		t.Errorf("valid entry was not installed: %v", err)
	}
}

func TestInstall_FatalManifestErrorWritesNothing(t *testing.T) {
	base, manifestPath := setupProject(t, "sources:\n  hub: {type: local, root: ., skills_root: skills}\n")
	eng := newTestEngine()

	_, err := eng.Install(context.Background(), &InstallRequest{ManifestPath: manifestPath})
	if err == nil {
		t.Fatal("Install() expected fatal error for manifest without version")
	}
	if _, statErr := os.Stat(filepath.Join(base, ".agent")); !os.IsNotExist(statErr) {
		t.Error("fatal manifest error must not produce filesystem writes")
	}
}

func TestInstall_WarnsWhenSkillFileMissing(t *testing.T) {
	base, manifestPath := setupProject(t, `
version: 1
sources:
  hub:
    type: local
    root: .skills-hub
    skills_root: skills
install:
  - id: bare
    from: hub:custom/bare-dir
    to: .agent/skills/bare-dir
`)
	writeFiles(t, base, map[string]string{
		".skills-hub/skills/custom/bare-dir/notes.md": "no SKILL.md here",
	})
	eng := newTestEngine()

	result, err := eng.Install(context.Background(), &InstallRequest{ManifestPath: manifestPath})
	if err != nil {
		t.Fatal(err)
	}
	out := result.Outcomes[0]
	if out.Status != report.StatusInstalled {
		t.Fatalf("Status = %s, want %s", out.Status, report.StatusInstalled)
	}
	if out.Warning == "" {
		t.Error("expected a warning for a skill without SKILL.md")
	}
}

func TestInstall_ElapsedUsesClock(t *testing.T) {
	_, manifestPath := setupProject(t, projectManifest)
	clk := clock.NewFakeClock(time.Unix(1700000000, 0))
	eng := New(fsops.NewRealFS(), hash.NewSHA256Hasher(), clk)

	result, err := eng.Install(context.Background(), &InstallRequest{ManifestPath: manifestPath})
	if err != nil {
		t.Fatal(err)
	}
	if result.Elapsed != 0 {
		t.Errorf("Elapsed = %v, want 0 with a fixed clock", result.Elapsed)
	}
}
