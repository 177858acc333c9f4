// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-atlas/pkg/types"
)

func paper(id, oa string, refs ...string) types.Paper {
	return types.Paper{ID: id, Title: id, OpenAlexID: oa, ReferencedWorks: refs}
}

func TestBuildScenario(t *testing.T) {
	papers := []types.Paper{
		paper("A", "https://openalex.org/W1", "W2", "W3"),
		paper("B", "https://openalex.org/W2"),
		paper("C", "https://openalex.org/W3"),
		paper("D", "https://openalex.org/W4", "W2"),
	}
	g := Build(papers, NewLookup(papers))

	assert.Len(t, g.Edges, 3)
	assert.Equal(t, 2, g.InDegree["B"])
	assert.Equal(t, 1, g.InDegree["C"])
	assert.Equal(t, 0, g.InDegree["A"])
	assert.Equal(t, 0, g.InDegree["D"])
	assert.Equal(t, []string{"B", "C"}, g.Refs["A"])
	assert.Equal(t, []string{"B"}, g.Refs["D"])
}

func TestBuildDropsSelfAndUnresolved(t *testing.T) {
	papers := []types.Paper{
		paper("A", "W1", "W1", "W99", "https://openalex.org/W2", "W2"),
		paper("B", "W2"),
	}
	g := Build(papers, NewLookup(papers))

	ids := map[string]bool{"A": true, "B": true}
	for _, e := range g.Edges {
		assert.NotEqual(t, e.Source, e.Target)
		assert.True(t, ids[e.Source])
		assert.True(t, ids[e.Target])
	}
	// Both spellings of W2 resolve; multiplicity is kept.
	assert.Len(t, g.Edges, 2)
	assert.Equal(t, 2, g.InDegree["B"])
}

func TestLookupAliases(t *testing.T) {
	papers := []types.Paper{
		{ID: "doi:10.1/a", OpenAlexID: "https://openalex.org/W10", Aliases: []string{"openalex:W11", "arxiv:1"}},
		{ID: "doi:10.1/b", OpenAlexID: "W11"},
	}
	l := NewLookup(papers)

	id, ok := l.Resolve("W10")
	require.True(t, ok)
	assert.Equal(t, "doi:10.1/a", id)

	id, ok = l.Resolve("https://openalex.org/W10")
	require.True(t, ok)
	assert.Equal(t, "doi:10.1/a", id)

	// The primary id wins over an alias.
	id, _ = l.Resolve("W11")
	assert.Equal(t, "doi:10.1/b", id)

	_, ok = l.Resolve("W12")
	assert.False(t, ok)
}

func TestLookupAliasOnly(t *testing.T) {
	papers := []types.Paper{{ID: "doi:10.1/a", Aliases: []string{"openalex:W7"}}}
	id, ok := NewLookup(papers).Resolve("https://openalex.org/W7")
	require.True(t, ok)
	assert.Equal(t, "doi:10.1/a", id)
}

func TestRestrict(t *testing.T) {
	papers := []types.Paper{
		paper("A", "W1", "W2", "W3"),
		paper("B", "W2", "W3"),
		paper("C", "W3"),
	}
	g := Build(papers, NewLookup(papers))
	got := g.Restrict(map[string]bool{"A": true, "B": true}, EdgeTypeCites)
	assert.Equal(t, []types.Edge{{Source: "A", Target: "B", Type: EdgeTypeCites}}, got)
	assert.Empty(t, g.Restrict(nil, ""))
}

func TestExternalRefs(t *testing.T) {
	papers := []types.Paper{
		paper("A", "https://openalex.org/W1", "W9", "W8", "W2"),
		paper("B", "https://openalex.org/W2", "W9", "W8"),
		paper("C", "W3", "W9", "W7"),
	}
	got := ExternalRefs(papers, 2)
	assert.Equal(t, []ExternalRef{{ID: "W9", Count: 3}, {ID: "W8", Count: 2}}, got)
	assert.Empty(t, ExternalRefs(nil, 1))
}
