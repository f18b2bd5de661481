// Package skill installs the assistant skill that drives hrslides.
package skill

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed SKILL.md
var skillTemplate string

// Name is the skill's directory under the skills dir.
const Name = "hr-slides"

const placeholder = "{MODULE_PATH}"

// ErrAlreadyInstalled is returned when the skill exists and Force is off.
var ErrAlreadyInstalled = errors.New("skill already installed")

// Options controls an install.
type Options struct {
	// SkillsDir is the assistant's skills directory, e.g. ~/.claude/skills.
	SkillsDir string
	// ModulePath replaces {MODULE_PATH} in SKILL.md. Empty uses the
	// running executable.
	ModulePath string
	// Force overwrites an existing install.
	Force bool
}

// Render returns SKILL.md with the placeholder replaced.
func Render(modulePath string) string {
	return strings.ReplaceAll(skillTemplate, placeholder, modulePath)
}

// Install writes SKILL.md into <SkillsDir>/hr-slides and returns its path.
func Install(opts Options) (string, error) {
	if opts.SkillsDir == "" {
		return "", fmt.Errorf("skills directory is required")
	}

	modulePath := opts.ModulePath
	if modulePath == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to locate executable: %w", err)
		}
		modulePath = exe
	}

	dir := filepath.Join(opts.SkillsDir, Name)
	target := filepath.Join(dir, "SKILL.md")

	if _, err := os.Stat(target); err == nil && !opts.Force {
		return target, fmt.Errorf("%w: %s", ErrAlreadyInstalled, target)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to check existing skill: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(Render(modulePath)), 0644); err != nil {
		return "", fmt.Errorf("failed to write skill: %w", err)
	}
	return target, nil
}
