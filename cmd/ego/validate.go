package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"egokit/internal/registry"
)

var validateRegistry string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry and report a verdict without writing anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Load(validateRegistry)
		if err != nil {
			fmt.Println(styleFailed.Render("registry invalid"))
			return err
		}
		ruleCount := 0
		for _, sp := range reg.Charter.Scopes {
			for _, cat := range sp.Categories {
				ruleCount += len(cat.Rules)
			}
		}
		fmt.Println(styleWritten.Render("registry valid"))
		fmt.Printf("charter %s: %d scopes, %d rules, %d behavior documents\n",
			reg.Charter.Version, len(reg.Charter.Scopes), ruleCount, len(reg.Behaviors))
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateRegistry, "registry", ".egokit/registry", "policy registry directory")
}
