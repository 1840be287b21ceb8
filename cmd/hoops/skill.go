// ABOUTME: install-skill command for the embedded Claude Code skill.
// ABOUTME: Installs, refreshes, prints, or removes ~/.claude/skills/hoops/SKILL.md.

package main

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

const skillFile = "skill/SKILL.md"

var (
	skillSkipConfirm bool
	skillForce       bool
	skillPrint       bool
	skillRemove      bool
)

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the hoops skill for Claude Code at ~/.claude/skills/hoops/.

An installed copy that already matches this build is left alone unless
--force is given. --print writes the skill to stdout instead, and --remove
deletes the installed copy.`,
	Annotations: map[string]string{skipStorage: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return installSkill(cmd)
	},
}

func init() {
	f := installSkillCmd.Flags()
	f.BoolVarP(&skillSkipConfirm, "yes", "y", false, "skip confirmation prompt")
	f.BoolVar(&skillForce, "force", false, "rewrite the skill even if it is up to date")
	f.BoolVar(&skillPrint, "print", false, "write the skill to stdout and exit")
	f.BoolVar(&skillRemove, "remove", false, "delete the installed skill")
	installSkillCmd.MarkFlagsMutuallyExclusive("print", "remove")
	rootCmd.AddCommand(installSkillCmd)
}

// skillPath returns where the skill file is installed.
func skillPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "skills", "hoops", "SKILL.md"), nil
}

type skillState int

const (
	skillMissing skillState = iota
	skillStale
	skillCurrent
)

// installedSkillState compares the file at dest with want.
func installedSkillState(dest string, want []byte) (skillState, error) {
	have, err := os.ReadFile(dest)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return skillMissing, nil
	case err != nil:
		return skillMissing, fmt.Errorf("failed to read installed skill: %w", err)
	case bytes.Equal(have, want):
		return skillCurrent, nil
	default:
		return skillStale, nil
	}
}

func installSkill(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	content, err := skillFS.ReadFile(skillFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if skillPrint {
		_, err := out.Write(content)
		return err
	}

	dest, err := skillPath()
	if err != nil {
		return err
	}
	if skillRemove {
		return removeSkill(out, dest)
	}

	state, err := installedSkillState(dest, content)
	if err != nil {
		return err
	}
	if state == skillCurrent && !skillForce {
		fmt.Fprintf(out, "Skill already up to date at %s (use --force to rewrite)\n", dest)
		return nil
	}

	if !skillSkipConfirm && !skillForce {
		question := "Install the hoops skill to " + dest + "?"
		if state == skillStale {
			question = "Replace the existing skill at " + dest + "?"
		}
		ok, err := confirm(cmd.InOrStdin(), out, question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
	}

	if err := writeSkill(dest, content); err != nil {
		return err
	}
	verb := "Installed"
	if state != skillMissing {
		verb = "Updated"
	}
	fmt.Fprintf(out, "%s %s skill at %s\n", color.GreenString("✓"), verb, dest)
	fmt.Fprintln(out, `Try asking Claude: "Log 8 of 10 free throws" or "What should I practice today?"`)
	return nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func writeSkill(dest string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(dest, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}
	return nil
}

func removeSkill(out io.Writer, dest string) error {
	err := os.Remove(dest)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(out, "No skill installed.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove skill: %w", err)
	}
	// the hoops directory is ours; leave ~/.claude/skills alone
	_ = os.Remove(filepath.Dir(dest))
	fmt.Fprintf(out, "Removed skill from %s\n", dest)
	return nil
}
