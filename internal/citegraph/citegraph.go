// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citegraph resolves reference identifiers to corpus papers and
// builds the directed in-corpus citation graph.
package citegraph

import (
	"sort"
	"strings"

	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// EdgeTypeCites labels citation edges in the unified graph.
const EdgeTypeCites = "paper_cites"

// Lookup maps external reference identifiers to corpus paper ids.
type Lookup map[string]string

// NewLookup indexes every paper under its full and short OpenAlex ids and
// under the short ids embedded in its openalex: aliases. Primary ids are
// indexed first and win; an alias only fills an unclaimed key. Among
// papers claiming the same key the earlier one in papers wins. Later
// claims, aliases included, never overwrite an earlier one.
func NewLookup(papers []types.Paper) Lookup {
	l := make(Lookup, len(papers)*2)
	claim := func(key, id string) {
		if key == "" {
			return
		}
		if _, taken := l[key]; !taken {
			l[key] = id
		}
	}
	for _, p := range papers {
		if p.OpenAlexID == "" {
			continue
		}
		claim(ident.ShortOpenAlexID(p.OpenAlexID), p.ID)
		claim(strings.TrimSpace(p.OpenAlexID), p.ID)
	}
	for _, p := range papers {
		for _, a := range p.Aliases {
			if rest, ok := strings.CutPrefix(a, ident.PrefixOpenAlex); ok {
				claim(ident.ShortOpenAlexID(rest), p.ID)
			}
		}
	}
	return l
}

// Resolve returns the corpus id for ref, trying ref as given and then its
// short form.
func (l Lookup) Resolve(ref string) (string, bool) {
	if id, ok := l[ref]; ok {
		return id, true
	}
	id, ok := l[ident.ShortOpenAlexID(ref)]
	return id, ok
}

// Graph is the in-corpus citation structure.
type Graph struct {
	// Edges lists source-cites-target pairs in paper order, then reference
	// order. Repeated references yield repeated edges.
	Edges []types.Edge

	// InDegree counts resolved reference occurrences per target.
	InDegree map[string]int

	// Refs lists each paper's resolved in-corpus targets in reference order.
	Refs map[string][]string
}

// Build resolves every paper's references. References that do not resolve
// to a corpus paper, or that resolve to the citing paper itself, are
// dropped.
func Build(papers []types.Paper, lookup Lookup) Graph {
	ids := make(map[string]bool, len(papers))
	for _, p := range papers {
		ids[p.ID] = true
	}
	g := Graph{
		Edges:    []types.Edge{},
		InDegree: make(map[string]int),
		Refs:     make(map[string][]string),
	}
	for _, p := range papers {
		for _, ref := range p.ReferencedWorks {
			target, ok := lookup.Resolve(ref)
			if !ok || !ids[target] || target == p.ID {
				continue
			}
			g.Edges = append(g.Edges, types.Edge{Source: p.ID, Target: target})
			g.InDegree[target]++
			g.Refs[p.ID] = append(g.Refs[p.ID], target)
		}
	}
	return g
}

// Restrict returns the edges whose endpoints are both in keep, labelled
// with edgeType.
func (g Graph) Restrict(keep map[string]bool, edgeType string) []types.Edge {
	out := []types.Edge{}
	for _, e := range g.Edges {
		if keep[e.Source] && keep[e.Target] {
			out = append(out, types.Edge{Source: e.Source, Target: e.Target, Type: edgeType})
		}
	}
	return out
}

// ExternalRef is a referenced work outside the corpus.
type ExternalRef struct {
	ID    string
	Count int
}

// ExternalRefs counts references to works not in the corpus, by short
// OpenAlex id, and returns those cited at least minCount times ordered by count
// desc then id.
func ExternalRefs(papers []types.Paper, minCount int) []ExternalRef {
	known := make(map[string]bool, len(papers)*2)
	for _, p := range papers {
		if p.OpenAlexID != "" {
			known[p.OpenAlexID] = true
			known[ident.ShortOpenAlexID(p.OpenAlexID)] = true
		}
	}
	counts := make(map[string]int)
	for _, p := range papers {
		for _, ref := range p.ReferencedWorks {
			if !known[ref] {
				counts[ref]++
			}
		}
	}
	out := make([]ExternalRef, 0, len(counts))
	for id, n := range counts {
		if n >= minCount {
			out = append(out, ExternalRef{ID: id, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ID < out[j].ID
	})
	return out
}
