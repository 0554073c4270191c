package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"egokit/internal/policy"
	"egokit/internal/registry"
	"egokit/internal/render"
	"egokit/internal/resolver"
)

var (
	exportRegistry string
	exportScopes   []string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export-system-prompt",
	Short: "Render a system-prompt fragment for the resolved policy",
	Long: `export-system-prompt resolves the scope chain and prints a compact
fragment suitable for an assistant's system prompt: the critical rules
inline, with a pointer to the full compiled document.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportRegistry, "registry", ".egokit/registry", "policy registry directory")
	exportCmd.Flags().StringArrayVar(&exportScopes, "scope", nil, "scope chain entry, repeatable")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write the fragment to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	chain, err := policy.ParseChain(exportScopes)
	if err != nil {
		return err
	}
	reg, err := registry.Load(exportRegistry)
	if err != nil {
		return err
	}
	ctx, err := resolver.Resolve(&reg.Charter, reg.Behaviors, chain)
	if err != nil {
		return err
	}

	fragment := render.SystemPrompt(ctx)
	if exportOut == "" {
		fmt.Print(fragment)
		return nil
	}
	if err := os.WriteFile(exportOut, []byte(fragment), 0o644); err != nil {
		return fmt.Errorf("write fragment: %w", err)
	}
	fmt.Println("wrote system prompt fragment to", exportOut)
	return nil
}
