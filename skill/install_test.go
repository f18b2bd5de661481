package skill

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hrslides/plan"
)

func TestInstall(t *testing.T) {
	dir := t.TempDir()

	path, err := Install(Options{SkillsDir: dir, ModulePath: "/opt/bin/hrslides"})
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	if want := filepath.Join(dir, "hr-slides", "SKILL.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read installed skill: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "{MODULE_PATH}") {
		t.Error("placeholder was not replaced")
	}
	if !strings.Contains(content, "/opt/bin/hrslides build plan.json") {
		t.Error("module path missing from build command")
	}
}

func TestInstall_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	if _, err := Install(Options{SkillsDir: dir, ModulePath: "a"}); err != nil {
		t.Fatalf("first Install failed: %v", err)
	}

	_, err := Install(Options{SkillsDir: dir, ModulePath: "b"})
	if !errors.Is(err, ErrAlreadyInstalled) {
		t.Fatalf("expected ErrAlreadyInstalled, got %v", err)
	}

	path, err := Install(Options{SkillsDir: dir, ModulePath: "b", Force: true})
	if err != nil {
		t.Fatalf("forced Install failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "b build plan.json") {
		t.Error("forced install should rewrite the module path")
	}
}

func TestInstall_RequiresDir(t *testing.T) {
	if _, err := Install(Options{}); err == nil {
		t.Error("expected error without a skills directory")
	}
}

func TestSkillListsEveryLayout(t *testing.T) {
	content := Render("hrslides")
	for _, name := range plan.LayoutNames() {
		if !strings.Contains(content, "| "+name+" |") {
			t.Errorf("SKILL.md does not document layout %q", name)
		}
	}
}
