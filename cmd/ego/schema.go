package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"egokit/internal/registry"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [charter|behavior]",
	Short:     "Print the published JSON-Schema for registry documents",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"charter", "behavior"},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "charter":
			fmt.Print(registry.CharterSchema)
		case "behavior":
			fmt.Print(registry.BehaviorSchema)
		default:
			return fmt.Errorf("unknown schema %q", args[0])
		}
		return nil
	},
}
