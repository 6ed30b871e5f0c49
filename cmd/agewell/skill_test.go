// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation, and file content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSkillFSReadEmbeddedContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	text := string(content)
	if !strings.HasPrefix(text, "---\n") {
		t.Error("Expected SKILL.md to start with YAML frontmatter")
	}
	for _, marker := range []string{"name: agewell", "agewell habit", "agewell cycle", "agewell bmi"} {
		if !strings.Contains(text, marker) {
			t.Errorf("Expected SKILL.md to contain %q", marker)
		}
	}
}

func TestSkillInstallWritesFile(t *testing.T) {
	home := t.TempDir()
	skillSkipConfirm = true
	defer func() { skillSkipConfirm = false }()

	var out bytes.Buffer
	if err := installSkill(strings.NewReader(""), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(home, ".claude", "skills", "agewell", "SKILL.md")
	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	if !bytes.Equal(written, embedded) {
		t.Error("Installed skill does not match embedded content")
	}

	info, err := os.Stat(skillPath)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected permissions 0600, got %o", perm)
	}
	if !strings.Contains(out.String(), "Installed agewell skill") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSkillInstallOverwritesExistingFile(t *testing.T) {
	home := t.TempDir()
	skillDir := filepath.Join(home, ".claude", "skills", "agewell")
	if err := os.MkdirAll(skillDir, 0750); err != nil {
		t.Fatal(err)
	}
	skillPath := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := installSkill(strings.NewReader("yes\n"), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("Expected overwrite notice:\n%s", out.String())
	}
	written, _ := os.ReadFile(skillPath)
	if string(written) == "old" {
		t.Error("Expected existing skill to be overwritten")
	}
}

func TestSkillInstallCanceled(t *testing.T) {
	home := t.TempDir()

	var out bytes.Buffer
	if err := installSkill(strings.NewReader("n\n"), &out, home); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	if !strings.Contains(out.String(), "Installation canceled") {
		t.Errorf("Expected cancel message:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(home, ".claude", "skills", "agewell")); !os.IsNotExist(err) {
		t.Error("Expected no skill directory after cancel")
	}
}

func TestSkillSkipConfirmFlag(t *testing.T) {
	flag := installSkillCmd.Flags().Lookup("yes")
	if flag == nil {
		t.Fatal("Expected --yes flag")
	}
	if flag.Shorthand != "y" {
		t.Errorf("Expected shorthand 'y', got %q", flag.Shorthand)
	}
	if flag.DefValue != "false" {
		t.Errorf("Expected default false, got %s", flag.DefValue)
	}
}
