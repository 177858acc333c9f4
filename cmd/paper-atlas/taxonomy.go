// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Print the active domain taxonomy as YAML",
	Long: `Taxonomy prints the registry in effect (the --taxonomy file, or the
built-in calculus of variations registry) in the format --taxonomy reads,
as a starting point for an override file.`,
	RunE: runTaxonomy,
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomy(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(reg.File()); err != nil {
		return err
	}
	return enc.Close()
}
