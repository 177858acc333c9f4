// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-atlas/internal/rank"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// ExportEntry is one paper in a store export.
type ExportEntry struct {
	ID                string   `json:"id" yaml:"id"`
	Title             string   `json:"title" yaml:"title"`
	Authors           []string `json:"authors" yaml:"authors"`
	Year              int      `json:"year,omitempty" yaml:"year,omitempty"`
	DOI               string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	Thread            string   `json:"thread" yaml:"thread"`
	Influence         float64  `json:"influence" yaml:"influence"`
	CitedByCount      int      `json:"cited_by_count" yaml:"cited_by_count"`
	InCorpusCitations int      `json:"in_corpus_citations" yaml:"in_corpus_citations"`
	Tags              []string `json:"tags" yaml:"tags"`
}

const exportLimit = 100000

// Export returns every paper matching opts, ignoring opts.Limit.
func (s *Store) Export(ctx context.Context, opts QueryOptions) ([]rank.Ranked, error) {
	opts.Limit = exportLimit
	results, err := s.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return results, nil
}

// ExportYAML writes the matching papers to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, w io.Writer) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the matching papers to w as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, w io.Writer) error {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	results, err := s.Export(ctx, opts)
	if err != nil {
		return nil, err
	}
	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			ID:                r.ID,
			Title:             r.Title,
			Authors:           nonNil(r.Authors),
			Year:              r.Year,
			DOI:               r.DOI,
			Thread:            r.Thread,
			Influence:         r.Influence,
			CitedByCount:      r.CitedByCount,
			InCorpusCitations: r.InCorpusCitations,
			Tags:              nonNil(r.Tags),
		}
	}
	return entries, nil
}

// Papers strips the ranking fields and returns the plain paper records.
func Papers(ranked []rank.Ranked) []types.Paper {
	out := make([]types.Paper, len(ranked))
	for i, r := range ranked {
		out[i] = r.Paper
	}
	return out
}
