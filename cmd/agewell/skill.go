// ABOUTME: Install Claude Code skill for agewell
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the agewell skill for Claude Code.

This copies the skill definition to ~/.claude/skills/agewell/
so Claude Code can use agewell commands contextually.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd.InOrStdin(), cmd.OutOrStdout(), home)
	},
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}

func installSkill(in io.Reader, out io.Writer, home string) error {
	skillDir := filepath.Join(home, ".claude", "skills", "agewell")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	fmt.Fprintln(out, "┌─────────────────────────────────────────────────────────────┐")
	fmt.Fprintln(out, "│             AGE-WELL Skill for Claude Code                  │")
	fmt.Fprintln(out, "└─────────────────────────────────────────────────────────────┘")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "This will install the agewell skill, enabling Claude Code to:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  • Check BMI and estimate insurance savings")
	fmt.Fprintln(out, "  • Tick off daily habits and show progress")
	fmt.Fprintln(out, "  • Log cycles and predict the next period")
	fmt.Fprintln(out, "  • Suggest meal plans and answer nutrition questions")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Destination:")
	fmt.Fprintf(out, "  %s\n", skillPath)
	fmt.Fprintln(out)

	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(out)
	}

	if !skillSkipConfirm {
		fmt.Fprint(out, "Install the agewell skill? [y/N] ")
		reader := bufio.NewReader(in)
		response, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read response: %w", err)
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
		fmt.Fprintln(out)
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	fmt.Fprintln(out, "✓ Installed agewell skill successfully!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Try asking Claude: \"Mark my water habit done\" or \"When is my next period due?\"")
	return nil
}
