package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"egokit/internal/policy"
	"egokit/internal/registry"
	"egokit/internal/resolver"
)

var (
	doctorRegistry string
	doctorScopes   []string
)

var (
	styleHeading  = lipgloss.NewStyle().Bold(true)
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleScope    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Show the effective configuration for a scope chain",
	RunE:  runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorRegistry, "registry", ".egokit/registry", "policy registry directory")
	doctorCmd.Flags().StringArrayVar(&doctorScopes, "scope", nil, "scope chain entry, repeatable")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	chain, err := policy.ParseChain(doctorScopes)
	if err != nil {
		return err
	}
	reg, err := registry.Load(doctorRegistry)
	if err != nil {
		return err
	}
	ctx, err := resolver.Resolve(&reg.Charter, reg.Behaviors, chain)
	if err != nil {
		return err
	}

	fmt.Println(styleHeading.Render("Registry"), doctorRegistry)
	fmt.Println(styleHeading.Render("Charter version"), reg.Charter.Version)
	fmt.Println(styleHeading.Render("Scope chain"), ctx.ChainString())

	counts := ctx.RuleCount()
	fmt.Printf("%s %s / %s / %s\n", styleHeading.Render("Rules"),
		styleCritical.Render(fmt.Sprintf("%d critical", counts[policy.SeverityCritical])),
		styleWarning.Render(fmt.Sprintf("%d warning", counts[policy.SeverityWarning])),
		styleInfo.Render(fmt.Sprintf("%d info", counts[policy.SeverityInfo])))

	for _, cat := range ctx.Categories {
		fmt.Println()
		fmt.Println(styleHeading.Render(cat.Name))
		for _, r := range cat.Rules {
			fmt.Printf("  %s %-10s %s  %s\n",
				severityStyle(r.Severity).Render(string(r.Severity)),
				r.ID, r.Rule.Rule,
				styleScope.Render("["+r.Scope.String()+"]"))
		}
	}

	if !ctx.Behavior.IsZero() {
		fmt.Println()
		fmt.Println(styleHeading.Render("Behavior"))
		if ctx.Behavior.Role != "" {
			fmt.Println("  role:", ctx.Behavior.Role)
		}
		if ctx.Behavior.Tone != nil {
			fmt.Printf("  tone: voice=%s verbosity=%s\n", ctx.Behavior.Tone.Voice, ctx.Behavior.Tone.Verbosity)
		}
		fmt.Printf("  personas: %d  defaults: %d\n", len(ctx.Behavior.Personas), len(ctx.Behavior.Defaults))
	}
	return nil
}

func severityStyle(s policy.Severity) lipgloss.Style {
	switch s {
	case policy.SeverityCritical:
		return styleCritical
	case policy.SeverityWarning:
		return styleWarning
	}
	return styleInfo
}
