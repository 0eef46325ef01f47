// ABOUTME: Install Claude Code skill for curio
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

const skillFile = "skill/SKILL.md"

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the curio skill for Claude Code.

This copies the skill definition to ~/.claude/skills/curio/
so Claude Code can use curio commands contextually.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := homedir.Dir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		skillPath := filepath.Join(home, ".claude", "skills", "curio", "SKILL.md")
		if err := installSkillTo(skillPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Installed curio skill to %s\n", skillPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installSkillCmd)
}

// installSkillTo writes the embedded skill file to skillPath, creating
// parent directories and replacing any existing file.
func installSkillTo(skillPath string) error {
	content, err := skillFS.ReadFile(skillFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(skillPath), 0755); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}

	if err := os.WriteFile(skillPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}
	return nil
}
