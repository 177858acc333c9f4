// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-atlas/internal/analyze"
	"github.com/pdiddy/paper-atlas/internal/corpusfile"
	"github.com/pdiddy/paper-atlas/internal/rank"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

const defaultViewDir = "data"

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank the corpus and write the front-end views",
	Long: `Analyze reads the corpus database, assigns every paper to a thread,
builds the in-corpus citation graph, scores influence, aggregates threads
and authors, lays out the graph and writes core.json, papers.json,
graph.json and coauthor.json.`,
	RunE: runAnalyze,
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the most influential papers",
	RunE:  runTop,
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, topCmd} {
		f := c.Flags()
		f.String("db", corpusfile.DatabaseFile, "corpus database (.json or .yaml)")
		f.Int("current-year", 0, "year anchoring the recency term (default 2025)")
	}
	analyzeCmd.Flags().String("out-dir", defaultViewDir, "directory for the view files")
	analyzeCmd.Flags().Int("top-papers", 0, "papers in the core view (default 800)")
	analyzeCmd.Flags().Int("graph-nodes", 0, "paper nodes in the unified graph (default 600)")
	topCmd.Flags().IntP("limit", "n", 25, "papers to print")
	topCmd.Flags().String("thread", "", "only papers of this thread")

	bindFlags(analyzeCmd.Flags(), map[string]string{
		"analyze.out_dir":     "out-dir",
		"analyze.top_papers":  "top-papers",
		"analyze.graph_nodes": "graph-nodes",
	})

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(topCmd)
}

// analyzeConfig reads the analyze section; --current-year overrides it.
func analyzeConfig(cmd *cobra.Command) (types.AnalyzeConfig, error) {
	sec, err := readSections(viper.GetViper())
	if err != nil {
		return types.AnalyzeConfig{}, err
	}
	cfg := sec.Analyze
	if y, _ := cmd.Flags().GetInt("current-year"); y > 0 {
		cfg.CurrentYear = y
	}
	return cfg.WithDefaults(), nil
}

// analyzeDatabase loads the database named by --db and analyzes it.
func analyzeDatabase(cmd *cobra.Command) (types.Database, analyze.Result, error) {
	path, _ := cmd.Flags().GetString("db")
	db, err := corpusfile.ReadDatabase(path)
	if err != nil {
		return types.Database{}, analyze.Result{}, err
	}
	reg, err := loadRegistry()
	if err != nil {
		return types.Database{}, analyze.Result{}, err
	}
	cfg, err := analyzeConfig(cmd)
	if err != nil {
		return types.Database{}, analyze.Result{}, err
	}
	res := analyze.Run(db.Papers, reg, cfg, time.Now())
	return db, res, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, res, err := analyzeDatabase(cmd)
	if err != nil {
		return err
	}
	dir := viper.GetString("analyze.out_dir")
	if err := corpusfile.WriteViews(dir, res.Views); err != nil {
		return err
	}
	s := res.Summary
	logger.Info("views written",
		zap.String("dir", dir),
		zap.Int("papers", s.TotalPapers),
		zap.Int("core_papers", s.TopPapers),
		zap.Int("citation_edges", s.CitationEdges),
		zap.Int("core_edges", s.CoreEdges),
		zap.Int("graph_nodes", s.GraphNodes),
		zap.Int("graph_edges", s.GraphEdges),
		zap.Int("authors", s.Authors),
		zap.Int("coauthor_edges", s.CoauthorEdges),
		zap.Any("threads", s.ThreadCounts),
	)
	return nil
}

func runTop(cmd *cobra.Command, args []string) error {
	_, res, err := analyzeDatabase(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	thread, _ := cmd.Flags().GetString("thread")

	var picked []rank.Ranked
	for _, r := range res.Ranked {
		if limit > 0 && len(picked) == limit {
			break
		}
		if thread == "" || r.Thread == thread {
			picked = append(picked, r)
		}
	}
	corpusfile.FormatTable(picked, os.Stdout)
	return nil
}
