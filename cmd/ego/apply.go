package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"egokit/internal/compile"
	"egokit/internal/policy"
)

var (
	applyRegistry string
	applyRepo     string
	applyScopes   []string
	applyForce    bool
	applyDryRun   bool
	applyYes      bool
)

var (
	styleWritten = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleSkipped = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleHeld    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Compile the registry and place artifacts in the target repository",
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().StringVar(&applyRegistry, "registry", ".egokit/registry", "policy registry directory")
	applyCmd.Flags().StringVar(&applyRepo, "repo", ".", "target repository root")
	applyCmd.Flags().StringArrayVar(&applyScopes, "scope", nil, "scope chain entry, repeatable (e.g. team:backend)")
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "write even when existing markers are malformed")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "preview the primary artifact without writing")
	applyCmd.Flags().BoolVar(&applyYes, "yes", false, "answer yes to confirmation prompts")
}

func runApply(cmd *cobra.Command, args []string) error {
	chain, err := policy.ParseChain(applyScopes)
	if err != nil {
		return err
	}
	res, err := compile.Run(compile.Options{
		RegistryDir: applyRegistry,
		RepoDir:     applyRepo,
		Chain:       chain,
		Force:       applyForce,
		DryRun:      applyDryRun,
		Confirm:     confirmAppend,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if applyDryRun {
		if out, rerr := glamour.Render(res.Primary, "auto"); rerr == nil {
			fmt.Print(out)
		} else {
			fmt.Print(res.Primary)
		}
	}
	for _, o := range res.Outcomes {
		fmt.Println(outcomeLine(o))
	}
	if res.Failed() {
		return fmt.Errorf("some artifacts failed to write")
	}
	return nil
}

func outcomeLine(o compile.Outcome) string {
	switch o.Status {
	case compile.StatusWritten:
		return styleWritten.Render("  written  ") + o.Path
	case compile.StatusSkipped:
		return styleSkipped.Render("  skipped  ") + o.Path
	case compile.StatusNeedsConfirm:
		return styleHeld.Render("  withheld ") + o.Path + "  (malformed markers, rerun with --force or confirm)"
	default:
		return styleFailed.Render("  failed   ") + fmt.Sprintf("%s  (%v)", o.Path, o.Err)
	}
}

// confirmAppend asks before appending a fresh managed block into a
// file whose markers are broken.
func confirmAppend(path string) bool {
	if applyYes {
		return true
	}
	fmt.Printf("%s has malformed policy markers. Append a fresh managed block? [y/N] ", path)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
