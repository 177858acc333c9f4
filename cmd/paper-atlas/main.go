// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-atlas CLI.
// Stages: build (discovery into papers-db.json), analyze (views for the
// web front end), and the SQLite store for ad hoc queries.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-atlas/internal/logging"
	"github.com/pdiddy/paper-atlas/internal/taxonomy"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and shared by every command.
var logger = zap.NewNop()

// rootCmd is the base command for the paper-atlas CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-atlas",
	Short: "Build and analyze a calculus of variations paper corpus",
	Long: `paper-atlas discovers papers on OpenAlex, scores them against a research
domain taxonomy, deduplicates and expands the corpus along citations, and
derives ranked views of threads, authors and citation graphs.

The build stage writes papers-db.json; analyze reads it and writes the
view files consumed by the web front end. The store subcommands load a
corpus into SQLite for full-text queries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Credentials may come from a .env file; a missing file is fine.
		_ = godotenv.Load()

		l, err := logging.New(viper.GetString("log.mode"), viper.GetBool("verbose"))
		if err != nil {
			return err
		}
		logger = l
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./paper-atlas.yaml or ~/.config/paper-atlas/paper-atlas.yaml)")
	pf.String("taxonomy", "", "research domain taxonomy YAML (default: built-in calculus of variations registry)")
	pf.String("log-mode", logging.ModeDev, "log output: dev (console) or prod (JSON)")
	pf.BoolP("verbose", "v", false, "debug logging")

	bindFlags(pf, map[string]string{
		"taxonomy": "taxonomy",
		"log.mode": "log-mode",
		"verbose":  "verbose",
	})
}

// bindFlags binds viper keys to the named flags of fs.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		viper.BindPFlag(key, fs.Lookup(name))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-atlas")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-atlas"))
		}
	}

	viper.SetEnvPrefix("PAPER_ATLAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	registerKeys(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "reading config:", err)
		}
	}
}

// loadRegistry returns the taxonomy named by --taxonomy, or the built-in
// registry.
func loadRegistry() (*taxonomy.Registry, error) {
	path := viper.GetString("taxonomy")
	if path == "" {
		return taxonomy.Default(), nil
	}
	reg, err := taxonomy.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info("taxonomy loaded", zap.String("path", path), zap.Int("domains", len(reg.IDs())))
	return reg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
