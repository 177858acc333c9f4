// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-atlas/internal/corpusfile"
	"github.com/pdiddy/paper-atlas/internal/discover"
	"github.com/pdiddy/paper-atlas/internal/openalex"
	"github.com/pdiddy/paper-atlas/internal/secrets"
	"github.com/pdiddy/paper-atlas/internal/semanticscholar"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// s2AnonymousRate is the request rate used against Semantic Scholar
// without an API key.
const s2AnonymousRate = 1.0

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Discover papers on OpenAlex and write the corpus database",
	Long: `Build runs the keyword and author passes against OpenAlex, scores every
candidate against the taxonomy, keeps those above the relevance threshold,
overlays the curated seed papers, deduplicates, expands the corpus along
frequently cited references and optionally raises citation counts from
Semantic Scholar.

OPENALEX_EMAIL and S2_API_KEY are read from the configuration, the
environment, a .env file or the files of the secrets directory.`,
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("seed", corpusfile.SeedFile, "curated seed papers (JSON or YAML)")
	f.StringP("out", "o", corpusfile.DatabaseFile, "output database (.json or .yaml)")
	f.Float64("min-score", 0, "minimum relevance score (default 8)")
	f.Int("min-year", 0, "earliest publication year (default 1950)")
	f.Int("query-pages", 0, "pages per keyword query (default 2)")
	f.Int("author-pages", 0, "pages per resolved author (default 1)")
	f.Int("per-page", 0, "OpenAlex page size, 1..200 (default 100)")
	f.Int("expansion-min", 0, "corpus papers that must cite an external work before it is fetched (default 3)")
	f.Bool("skip-s2", false, "skip Semantic Scholar citation enrichment")
	f.Int("concurrency", 0, "in-flight requests per pass (default 4)")
	f.Float64("rps", 0, "requests per second per API (default 8)")
	f.Duration("timeout", 0, "HTTP request timeout (default 30s)")
	f.String("secrets-dir", secrets.DefaultDir, "directory of credential files (openalex-email, semantic-scholar-api-key)")

	bindFlags(f, map[string]string{
		"build.seed":                  "seed",
		"build.out":                   "out",
		"build.min_score":             "min-score",
		"build.min_year":              "min-year",
		"build.query_pages":           "query-pages",
		"build.author_pages":          "author-pages",
		"build.per_page":              "per-page",
		"build.expansion_min":         "expansion-min",
		"build.skip_semantic_scholar": "skip-s2",
		"http.concurrency":            "concurrency",
		"http.requests_per_second":    "rps",
		"http.timeout":                "timeout",
		"secrets_dir":                 "secrets-dir",
	})

	rootCmd.AddCommand(buildCmd)
}

// buildConfig reads the build and http sections. Credentials left empty
// are taken from the environment, then from the secrets directory.
func buildConfig() (types.BuildConfig, error) {
	sec, err := readSections(viper.GetViper())
	if err != nil {
		return types.BuildConfig{}, err
	}
	cfg := sec.Build

	files, err := secrets.Load(viper.GetString("secrets_dir"), logger)
	if err != nil {
		return types.BuildConfig{}, err
	}
	creds := secrets.Resolve(secrets.Credentials{
		OpenAlexEmail:         cfg.OpenAlexEmail,
		SemanticScholarAPIKey: cfg.SemanticScholarAPIKey,
	}, os.Getenv, files)
	cfg.OpenAlexEmail = creds.OpenAlexEmail
	cfg.SemanticScholarAPIKey = creds.SemanticScholarAPIKey
	return cfg.WithDefaults(), nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	seedPath := viper.GetString("build.seed")
	seeds, err := corpusfile.ReadSeed(seedPath)
	if err != nil {
		return err
	}
	logger.Info("seed papers loaded", zap.String("path", seedPath), zap.Int("papers", len(seeds)))

	opts := discover.Options{
		Config:   cfg,
		Registry: reg,
		Seeds:    seeds,
		Source:   openalex.New(cfg.HTTPConfig, cfg.OpenAlexEmail, logger),
		Logger:   logger,
	}
	if !cfg.SkipSemanticScholar {
		s2cfg := cfg.HTTPConfig
		if cfg.SemanticScholarAPIKey == "" {
			s2cfg.RequestsPerSecond = s2AnonymousRate
		}
		opts.Citations = semanticscholar.New(s2cfg, cfg.SemanticScholarAPIKey, logger)
	}

	db, err := discover.Run(ctx, opts)
	if err != nil {
		return err
	}

	out := viper.GetString("build.out")
	if err := corpusfile.WriteDatabase(out, db); err != nil {
		return err
	}
	logger.Info("database written",
		zap.String("path", out),
		zap.Int("papers", len(db.Papers)),
		zap.Int("candidates", db.Stats.CandidateCount),
		zap.Int("rejected", db.Stats.RejectedCount),
		zap.Int("expansion_added", db.Stats.ExpansionAdded),
		zap.Any("domains", db.Stats.DomainBreakdown),
	)
	return nil
}
