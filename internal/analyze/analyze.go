// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze turns a finalized corpus into the four output views:
// it builds the citation graph, ranks papers by influence, aggregates
// threads and authors, seeds the graph layout and assembles the compact
// view documents. Run is a pure batch computation.
package analyze

import (
	"fmt"
	"time"

	"github.com/pdiddy/paper-atlas/internal/aggregate"
	"github.com/pdiddy/paper-atlas/internal/citegraph"
	"github.com/pdiddy/paper-atlas/internal/layout"
	"github.com/pdiddy/paper-atlas/internal/rank"
	"github.com/pdiddy/paper-atlas/internal/taxonomy"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Node type of paper nodes in graph views.
const NodeTypePaper = "paper"

// Summary reports counts of one run for logging.
type Summary struct {
	TotalPapers   int
	TopPapers     int
	CitationEdges int
	CoreEdges     int
	GraphNodes    int
	GraphEdges    int
	Authors       int
	CoauthorEdges int
	ThreadCounts  map[string]int
}

// Result is the output of Run.
type Result struct {
	Views   types.Views
	Ranked  []rank.Ranked
	Graph   citegraph.Graph
	Summary Summary
}

// Run analyzes papers. now only stamps generated_at; the recency term is
// anchored to cfg.CurrentYear. An empty corpus yields empty views.
func Run(papers []types.Paper, reg *taxonomy.Registry, cfg types.AnalyzeConfig, now time.Time) Result {
	cfg = cfg.WithDefaults()
	stamp := now.UTC().Format(time.RFC3339)

	graph := citegraph.Build(papers, citegraph.NewLookup(papers))
	ranked := rank.Rank(papers, reg, graph.InDegree, cfg.CurrentYear)

	limits := aggregate.Limits{
		ThreadTop:          cfg.ThreadTop,
		ThreadKeyAuthors:   cfg.ThreadKeyAuthors,
		AuthorTopPapers:    cfg.AuthorTopPapers,
		AuthorTopCoauthors: cfg.AuthorTopCoauthors,
	}
	threads := aggregate.Threads(reg, ranked, limits)
	authors := aggregate.Authors(ranked, limits)
	coauthor := aggregate.Coauthors(ranked, authors)

	core := buildCore(ranked, graph, threads, authors, cfg.TopPapers, cfg.CurrentYear, stamp)
	index := buildIndex(ranked, stamp)
	unified := buildGraph(ranked, graph, reg.IDs(), cfg.GraphNodes, stamp)

	counts := make(map[string]int, len(threads))
	for id, ts := range threads {
		counts[id] = ts.PaperCount
	}

	return Result{
		Views: types.Views{
			Core:     core,
			Papers:   index,
			Graph:    unified,
			Coauthor: coauthor,
		},
		Ranked: ranked,
		Graph:  graph,
		Summary: Summary{
			TotalPapers:   len(ranked),
			TopPapers:     len(core.Papers),
			CitationEdges: len(graph.Edges),
			CoreEdges:     len(core.Graph.Edges),
			GraphNodes:    len(unified.UnifiedGraph.Nodes),
			GraphEdges:    len(unified.UnifiedGraph.Edges),
			Authors:       len(authors),
			CoauthorEdges: len(coauthor.Edges),
			ThreadCounts:  counts,
		},
	}
}

func prefix(ranked []rank.Ranked, n int) []rank.Ranked {
	if n > 0 && len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

func buildCore(ranked []rank.Ranked, graph citegraph.Graph, threads map[string]types.ThreadStats,
	authors map[string]types.AuthorStats, top, currentYear int, stamp string) types.CoreView {
	topSet := prefix(ranked, top)
	keep := make(map[string]bool, len(topSet))
	papers := make(map[string]types.CorePaper, len(topSet))
	nodes := make([]types.GraphNodeRef, 0, len(topSet))
	for _, r := range topSet {
		keep[r.ID] = true
		refs := graph.Refs[r.ID]
		if refs == nil {
			refs = []string{}
		}
		papers[r.ID] = types.CorePaper{
			ID:                r.ID,
			Title:             r.Title,
			Authors:           capAuthors(r.Authors),
			Date:              dateOf(r.Year),
			Influence:         r.Influence,
			Thread:            r.Thread,
			CitedByCount:      r.CitedByCount,
			References:        refs,
			Tags:              nonNil(r.Tags),
			InCorpusCitations: r.InCorpusCitations,
		}
		nodes = append(nodes, types.GraphNodeRef{ID: r.ID, Type: NodeTypePaper})
	}

	edges := []types.Edge{}
	for _, e := range graph.Edges {
		if keep[e.Source] && keep[e.Target] {
			edges = append(edges, e)
		}
	}

	return types.CoreView{
		Metadata: types.CoreMetadata{
			GeneratedAt:   stamp,
			TotalPapers:   len(ranked),
			TopPapers:     len(papers),
			CitationEdges: len(edges),
			Authors:       len(authors),
			CurrentYear:   currentYear,
		},
		Threads: threads,
		Authors: authors,
		Papers:  papers,
		Graph:   types.CitationGraph{Nodes: nodes, Edges: edges},
	}
}

func buildIndex(ranked []rank.Ranked, stamp string) types.PapersView {
	papers := make(map[string]types.IndexPaper, len(ranked))
	for _, r := range ranked {
		papers[r.ID] = types.IndexPaper{
			ID:           r.ID,
			Title:        r.Title,
			Authors:      capAuthors(r.Authors),
			Year:         optionalInt(r.Year),
			CitedByCount: r.CitedByCount,
			Influence:    r.Influence,
			Relevance:    r.RelevanceScore,
			Thread:       r.Thread,
			Tags:         nonNil(r.Tags),
			DOI:          optionalString(r.DOI),
			ArxivID:      optionalString(r.ArxivID),
			URL:          optionalString(r.URL),
			Venue:        optionalString(r.Venue),
		}
	}
	return types.PapersView{
		Metadata: types.PapersMetadata{GeneratedAt: stamp, Total: len(papers)},
		Papers:   papers,
	}
}

func buildGraph(ranked []rank.Ranked, graph citegraph.Graph, threadOrder []string, limit int, stamp string) types.GraphView {
	subset := prefix(ranked, limit)
	pos := layout.Positions(subset, threadOrder)

	keep := make(map[string]bool, len(subset))
	nodes := make([]types.GraphNode, 0, len(subset))
	for _, r := range subset {
		keep[r.ID] = true
		p := pos[r.ID]
		nodes = append(nodes, types.GraphNode{
			ID:        r.ID,
			Type:      NodeTypePaper,
			Title:     r.Title,
			Influence: r.Influence,
			Thread:    r.Thread,
			X:         p.X,
			Y:         p.Y,
		})
	}
	edges := graph.Restrict(keep, citegraph.EdgeTypeCites)

	return types.GraphView{
		Metadata:     types.GraphMetadata{GeneratedAt: stamp, Nodes: len(nodes), Edges: len(edges)},
		UnifiedGraph: types.UnifiedGraph{Nodes: nodes, Edges: edges},
	}
}

const maxDisplayAuthors = 10

func capAuthors(a []string) []string {
	if len(a) > maxDisplayAuthors {
		a = a[:maxDisplayAuthors]
	}
	return nonNil(append([]string(nil), a...))
}

func dateOf(year int) string {
	if year == 0 {
		year = layout.DefaultYear
	}
	return fmt.Sprintf("%d-01-01", year)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
