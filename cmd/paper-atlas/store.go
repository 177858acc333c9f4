// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-atlas/internal/citegraph"
	"github.com/pdiddy/paper-atlas/internal/corpusfile"
	"github.com/pdiddy/paper-atlas/internal/store"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Load the analyzed corpus into SQLite and query it",
	Long: `Store keeps the analyzed corpus in a SQLite database with an FTS5 index
over titles. Ingest replaces the stored corpus; query, show, stats and
export read it.`,
}

var storeIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Analyze the corpus database and load it into the store",
	RunE:  runStoreIngest,
}

var storeQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search titles and filter by thread, author or tag",
	Long: `Query matches every word of the text against paper titles and ranks the
matches; without text it lists papers by influence. Filters combine with
AND semantics.`,
	RunE: runStoreQuery,
}

var storeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one paper by id or superseded id, with its citations",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreShow,
}

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print row counts of the store",
	RunE:  runStoreStats,
}

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored papers as YAML, JSON or CSL-YAML",
	RunE:  runStoreExport,
}

func openStore() (*store.Store, error) {
	return store.Open(viper.GetString("store.path"))
}

func storeQueryOptions(cmd *cobra.Command, args []string) store.QueryOptions {
	text, _ := cmd.Flags().GetString("query")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}
	thread, _ := cmd.Flags().GetString("thread")
	author, _ := cmd.Flags().GetString("author")
	tag, _ := cmd.Flags().GetString("tag")
	limit, _ := cmd.Flags().GetInt("limit")
	return store.QueryOptions{Text: text, Thread: thread, Author: author, Tag: tag, Limit: limit}
}

func runStoreIngest(cmd *cobra.Command, args []string) error {
	db, res, err := analyzeDatabase(cmd)
	if err != nil {
		return err
	}
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	edges := make([]types.Edge, len(res.Graph.Edges))
	for i, e := range res.Graph.Edges {
		edges[i] = types.Edge{Source: e.Source, Target: e.Target, Type: citegraph.EdgeTypeCites}
	}
	summary, err := s.Ingest(context.Background(), store.Snapshot{
		GeneratedAt: db.GeneratedAt,
		Papers:      res.Ranked,
		Edges:       edges,
	})
	if err != nil {
		return err
	}
	logger.Info("store ingested",
		zap.String("path", viper.GetString("store.path")),
		zap.Int("papers", summary.Papers),
		zap.Int("aliases", summary.Aliases),
		zap.Int("edges", summary.Edges),
	)
	return nil
}

func runStoreQuery(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.Query(context.Background(), storeQueryOptions(cmd, args))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(store.Papers(results))
	}
	corpusfile.FormatTable(results, os.Stdout)
	return nil
}

func runStoreShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	p, err := s.Paper(ctx, args[0])
	if err != nil {
		return err
	}
	cites, citedBy, err := s.Citations(ctx, p.ID)
	if err != nil {
		return err
	}

	w := os.Stdout
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "  id:         %s\n", p.ID)
	if len(p.Aliases) > 0 {
		fmt.Fprintf(w, "  aliases:    %s\n", strings.Join(p.Aliases, ", "))
	}
	fmt.Fprintf(w, "  authors:    %s\n", strings.Join(p.Authors, ", "))
	fmt.Fprintf(w, "  year:       %d\n", p.Year)
	fmt.Fprintf(w, "  thread:     %s\n", p.Thread)
	fmt.Fprintf(w, "  influence:  %.4f\n", p.Influence)
	fmt.Fprintf(w, "  citations:  %d (%d in corpus)\n", p.CitedByCount, p.InCorpusCitations)
	fmt.Fprintf(w, "  tags:       %s\n", strings.Join(p.Tags, ", "))
	if p.URL != "" {
		fmt.Fprintf(w, "  url:        %s\n", p.URL)
	}
	fmt.Fprintf(w, "  cites:      %d\n", len(cites))
	for _, id := range cites {
		fmt.Fprintf(w, "    %s\n", id)
	}
	fmt.Fprintf(w, "  cited by:   %d\n", len(citedBy))
	for _, id := range citedBy {
		fmt.Fprintf(w, "    %s\n", id)
	}
	return nil
}

func runStoreStats(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("generated_at: %s\npapers: %d\naliases: %d\nedges: %d\n",
		st.GeneratedAt, st.Papers, st.Aliases, st.Edges)
	return nil
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	opts := storeQueryOptions(cmd, args)
	switch format {
	case "yaml", "":
		return s.ExportYAML(ctx, opts, os.Stdout)
	case "json":
		return s.ExportJSON(ctx, opts, os.Stdout)
	case "csl":
		results, err := s.Export(ctx, opts)
		if err != nil {
			return err
		}
		return corpusfile.FormatCSL(store.Papers(results), os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use yaml, json or csl", format)
	}
}

func init() {
	storeCmd.PersistentFlags().String("store", store.DefaultFile, "SQLite store path")
	bindFlags(storeCmd.PersistentFlags(), map[string]string{"store.path": "store"})

	storeIngestCmd.Flags().String("db", corpusfile.DatabaseFile, "corpus database (.json or .yaml)")
	storeIngestCmd.Flags().Int("current-year", 0, "year anchoring the recency term (default 2025)")

	for _, c := range []*cobra.Command{storeQueryCmd, storeExportCmd} {
		f := c.Flags()
		f.String("query", "", "title search text")
		f.String("thread", "", "filter by thread id")
		f.String("author", "", "filter by author name")
		f.String("tag", "", "filter by tag")
	}
	storeQueryCmd.Flags().Int("limit", 0, "maximum results (0 = default 20)")
	storeQueryCmd.Flags().Bool("json", false, "output results as JSON")
	storeExportCmd.Flags().String("format", "yaml", "export format: yaml, json or csl")

	storeCmd.AddCommand(storeIngestCmd)
	storeCmd.AddCommand(storeQueryCmd)
	storeCmd.AddCommand(storeShowCmd)
	storeCmd.AddCommand(storeStatsCmd)
	storeCmd.AddCommand(storeExportCmd)

	rootCmd.AddCommand(storeCmd)
}
