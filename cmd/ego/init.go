package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"egokit/internal/registry"
)

var initRegistry string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a starter policy registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := registry.Scaffold(initRegistry); err != nil {
			return err
		}
		fmt.Println("initialized registry at", initRegistry)
		fmt.Println("next: edit charter.yaml, then run `ego apply`")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initRegistry, "registry", ".egokit/registry", "where to create the registry")
}
