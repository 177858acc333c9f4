// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-atlas/internal/rank"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

func openTest(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index", DefaultFile)
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func ranked(p types.Paper, thread string, influence float64, icc int) rank.Ranked {
	return rank.Ranked{Paper: p, Thread: thread, Influence: influence, InCorpusCitations: icc}
}

func fixture() Snapshot {
	return Snapshot{
		GeneratedAt: "2025-03-01T09:30:00Z",
		Papers: []rank.Ranked{
			ranked(types.Paper{
				ID: "doi:10.1/a", Title: "Regularity of minimizers", Year: 1990,
				Authors: []string{"Ann Author", "Bo Seed"}, DOI: "10.1/a", CitedByCount: 100,
				Tags: []string{"regularity"}, Aliases: []string{"openalex:W1"}, Seed: true,
				RelevanceScore: 12.5,
			}, "regularity", 0.9, 2),
			ranked(types.Paper{
				ID: "openalex:W2", Title: "Gamma-convergence of functionals", Year: 2001,
				Authors: []string{"Bo Seed"}, CitedByCount: 50, Tags: []string{"gamma"},
				Aliases: []string{"doi:10.1/a", "arxiv:2001.1"},
			}, "gamma", 0.5, 1),
			ranked(types.Paper{
				ID: "openalex:W3", Title: "Partial regularity for elliptic systems", Year: 2010,
				Authors: []string{"Cy"}, CitedByCount: 10, Tags: []string{"core", "regularity"},
			}, "regularity", 0.7, 0),
		},
		Edges: []types.Edge{
			{Source: "openalex:W2", Target: "doi:10.1/a", Type: "paper_cites"},
			{Source: "openalex:W3", Target: "doi:10.1/a", Type: "paper_cites"},
			{Source: "openalex:W3", Target: "openalex:W2", Type: "paper_cites"},
			{Source: "openalex:W3", Target: "doi:10.1/a", Type: "paper_cites"},
			{Source: "openalex:W404", Target: "doi:10.1/a", Type: "paper_cites"},
		},
	}
}

func ingested(t *testing.T) *Store {
	t.Helper()
	s, _ := openTest(t)
	_, err := s.Ingest(context.Background(), fixture())
	require.NoError(t, err)
	return s
}

func ids(rs []rank.Ranked) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestNotIngested(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()

	_, err := s.Query(ctx, QueryOptions{})
	assert.ErrorIs(t, err, ErrNotIngested)
	_, err = s.Stats(ctx)
	assert.ErrorIs(t, err, ErrNotIngested)
	_, err = s.Paper(ctx, "doi:10.1/a")
	assert.ErrorIs(t, err, ErrNotIngested)
}

func TestIngestSummary(t *testing.T) {
	s, _ := openTest(t)
	summary, err := s.Ingest(context.Background(), fixture())
	require.NoError(t, err)
	assert.Equal(t, IngestSummary{Papers: 3, Aliases: 2, Edges: 3}, summary)

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{GeneratedAt: "2025-03-01T09:30:00Z", Papers: 3, Aliases: 2, Edges: 3}, st)
}

func TestIngestReplaces(t *testing.T) {
	s := ingested(t)
	ctx := context.Background()

	snap := fixture()
	snap.GeneratedAt = "2025-04-01T00:00:00Z"
	snap.Papers = snap.Papers[2:]
	_, err := s.Ingest(ctx, snap)
	require.NoError(t, err)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{GeneratedAt: "2025-04-01T00:00:00Z", Papers: 1}, st)

	got, err := s.Query(ctx, QueryOptions{Text: "regularity"})
	require.NoError(t, err)
	assert.Equal(t, []string{"openalex:W3"}, ids(got))
}

func TestReopenKeepsCorpus(t *testing.T) {
	s, path := openTest(t)
	_, err := s.Ingest(context.Background(), fixture())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()
	st, err := again.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, st.Papers)
}

func TestQuery(t *testing.T) {
	s := ingested(t)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"all by influence", QueryOptions{}, []string{"doi:10.1/a", "openalex:W3", "openalex:W2"}},
		{"thread", QueryOptions{Thread: "regularity"}, []string{"doi:10.1/a", "openalex:W3"}},
		{"author case-insensitive", QueryOptions{Author: "bo seed"}, []string{"doi:10.1/a", "openalex:W2"}},
		{"tag", QueryOptions{Tag: "core"}, []string{"openalex:W3"}},
		{"limit", QueryOptions{Limit: 1}, []string{"doi:10.1/a"}},
		{"hyphenated text", QueryOptions{Text: "gamma-convergence"}, []string{"openalex:W2"}},
		{"every word required", QueryOptions{Text: "partial regularity"}, []string{"openalex:W3"}},
		{"text and thread", QueryOptions{Text: "regularity", Thread: "gamma"}, nil},
		{"no match", QueryOptions{Text: "homogenization"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Query(context.Background(), tc.opts)
			require.NoError(t, err)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, ids(got))
		})
	}
}

func TestQueryTextMatchesTitles(t *testing.T) {
	s := ingested(t)
	got, err := s.Query(context.Background(), QueryOptions{Text: "regularity"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"doi:10.1/a", "openalex:W3"}, ids(got))
}

func TestPaper(t *testing.T) {
	s := ingested(t)
	ctx := context.Background()

	// W2 also lists doi:10.1/a as an alias; the id wins.
	p, err := s.Paper(ctx, "doi:10.1/a")
	require.NoError(t, err)
	assert.Equal(t, "Regularity of minimizers", p.Title)
	assert.Equal(t, []string{"Ann Author", "Bo Seed"}, p.Authors)
	assert.Equal(t, []string{"regularity"}, p.Tags)
	assert.Equal(t, []string{"openalex:W1"}, p.Aliases)
	assert.Equal(t, "regularity", p.Thread)
	assert.Equal(t, 0.9, p.Influence)
	assert.Equal(t, 2, p.InCorpusCitations)
	assert.Equal(t, 12.5, p.RelevanceScore)
	assert.True(t, p.Seed)

	byAlias, err := s.Paper(ctx, "openalex:W1")
	require.NoError(t, err)
	assert.Equal(t, "doi:10.1/a", byAlias.ID)

	w2, err := s.Paper(ctx, "arxiv:2001.1")
	require.NoError(t, err)
	assert.Equal(t, "openalex:W2", w2.ID)
	assert.Equal(t, []string{"arxiv:2001.1"}, w2.Aliases)

	_, err = s.Paper(ctx, "openalex:W404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCitations(t *testing.T) {
	s := ingested(t)
	cites, citedBy, err := s.Citations(context.Background(), "doi:10.1/a")
	require.NoError(t, err)
	assert.Empty(t, cites)
	assert.Equal(t, []string{"openalex:W2", "openalex:W3"}, citedBy)

	cites, citedBy, err = s.Citations(context.Background(), "openalex:W3")
	require.NoError(t, err)
	assert.Equal(t, []string{"doi:10.1/a", "openalex:W2"}, cites)
	assert.Empty(t, citedBy)
}

func TestExport(t *testing.T) {
	s := ingested(t)
	ctx := context.Background()

	all, err := s.Export(ctx, QueryOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "Regularity of minimizers", Papers(all)[0].Title)

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, QueryOptions{Thread: "regularity"}, &buf))
	var entries []ExportEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "doi:10.1/a", entries[0].ID)
	assert.Equal(t, "regularity", entries[0].Thread)

	buf.Reset()
	require.NoError(t, s.ExportYAML(ctx, QueryOptions{Tag: "gamma"}, &buf))
	entries = nil
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Bo Seed"}, entries[0].Authors)
}

func TestFTSQuery(t *testing.T) {
	assert.Equal(t, `"gamma-convergence" "of"`, ftsQuery("  gamma-convergence of "))
	assert.Equal(t, `"say" """hi"""`, ftsQuery(`say "hi"`))
	assert.Empty(t, ftsQuery("   "))
}
