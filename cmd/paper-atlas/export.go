// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-atlas/internal/corpusfile"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus database as CSL-YAML, JSON or YAML",
	Long: `Export converts the corpus database. csl writes a CSL-YAML bibliography
usable by pandoc and reference managers; json and yaml rewrite the
database in that encoding.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("db", corpusfile.DatabaseFile, "corpus database (.json or .yaml)")
	exportCmd.Flags().String("format", "csl", "export format: csl, json or yaml")
	exportCmd.Flags().StringP("out", "o", "", "output file (default: stdout for csl)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("db")
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	db, err := corpusfile.ReadDatabase(path)
	if err != nil {
		return err
	}

	switch format {
	case "csl":
		var w io.Writer = os.Stdout
		if out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			defer f.Close()
			w = f
		}
		return corpusfile.FormatCSL(db.Papers, w)
	case "json", "yaml":
		if out == "" {
			return fmt.Errorf("--out is required for %s export", format)
		}
		ext := strings.ToLower(filepath.Ext(out))
		if yamlOut := ext == ".yaml" || ext == ".yml"; yamlOut != (format == "yaml") {
			return fmt.Errorf("--out %s does not match format %s", out, format)
		}
		return corpusfile.WriteDatabase(out, db)
	default:
		return fmt.Errorf("unsupported format %q: use csl, json or yaml", format)
	}
}
