package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProject writes a manifest plus one hub skill and returns the
// manifest path.
func writeProject(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	skillDir := filepath.Join(base, "hub", "skills", "custom", "demo")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	skillMD := "---\nname: demo\ndescription: Demo skill\n---\n"
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(skillMD), 0644); err != nil {
		t.Fatal(err)
	}

	manifestContent := `
version: 1
sources:
  hub:
    type: local
    root: hub
    skills_root: skills
install:
  - id: demo
    from: hub:custom/demo
    to: out/demo
`
	path := filepath.Join(base, "skills.yaml")
	if err := os.WriteFile(path, []byte(manifestContent), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the root command with args and returns its error.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Cleanup(func() {
		// Reset flag state mutated by the run.
		manifestPath = "skills.yaml"
		jsonOutput = false
		installForce = false
		installDryRun = false
	})

	rootCmd.SetArgs(args)
	var bufOut, bufErr bytes.Buffer
	rootCmd.SetOut(&bufOut)
	rootCmd.SetErr(&bufErr)
	return rootCmd.Execute()
}

func TestInstallCommand(t *testing.T) {
	path := writeProject(t)

	if err := execute(t, "install", "--manifest", path); err != nil {
		t.Fatalf("install error = %v", err)
	}

	installed := filepath.Join(filepath.Dir(path), "out", "demo", "SKILL.md")
	if _, err := os.Stat(installed); err != nil {
		t.Errorf("skill not installed: %v", err)
	}
}

func TestInstallCommand_FailureExitsNonZero(t *testing.T) {
	path := writeProject(t)
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	broken := strings.Replace(string(content), "hub:custom/demo", "ghost:custom/demo", 1)
	if err := os.WriteFile(path, []byte(broken), 0644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "install", "--manifest", path); err == nil {
		t.Fatal("install expected error for unknown source")
	}
}

func TestInstallCommand_MissingManifest(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "skills.yaml")
	if err := execute(t, "install", "--manifest", missing); err == nil {
		t.Fatal("install expected error for missing manifest")
	}
}

func TestValidateCommand(t *testing.T) {
	path := writeProject(t)
	if err := execute(t, "validate", "--manifest", path); err != nil {
		t.Fatalf("validate error = %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	path := writeProject(t)
	if err := execute(t, "status", "--manifest", path); err != nil {
		t.Fatalf("status error = %v", err)
	}
}

func TestListCommand(t *testing.T) {
	path := writeProject(t)
	if err := execute(t, "list", "--manifest", path); err != nil {
		t.Fatalf("list error = %v", err)
	}
}

func TestListCommand_SourceErrorExitsNonZero(t *testing.T) {
	path := writeProject(t)
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	broken := strings.Replace(string(content), "root: hub", "root: no-such-dir", 1)
	if err := os.WriteFile(path, []byte(broken), 0644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "list", "--manifest", path); err == nil {
		t.Fatal("list expected error for a source that cannot be listed")
	}
}
