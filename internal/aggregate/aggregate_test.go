// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-atlas/internal/rank"
	"github.com/pdiddy/paper-atlas/internal/taxonomy"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

func ranked(id, thread string, year int, inf float64, cites int, authors ...string) rank.Ranked {
	return rank.Ranked{
		Paper:     types.Paper{ID: id, Year: year, CitedByCount: cites, Authors: authors},
		Thread:    thread,
		Influence: inf,
	}
}

func fixture() []rank.Ranked {
	return []rank.Ranked{
		ranked("p1", "geometric", 2001, 0.9, 100, "Ann", "Bob"),
		ranked("p2", "geometric", 2003, 0.7, 10, "Bob", "Cy"),
		ranked("p3", "regularity", 1999, 0.5, 5, "Ann"),
		ranked("p4", "geometric", 2003, 0.3, 1, "Bob", "Ann"),
		ranked("p5", "geometric", 0, 0.0, 0, "Zed"),
	}
}

func TestThreads(t *testing.T) {
	reg := taxonomy.Default()
	got := Threads(reg, fixture(), Limits{ThreadTop: 2, ThreadKeyAuthors: 2})

	require.Len(t, got, len(reg.IDs()))
	g := got["geometric"]
	assert.Equal(t, "Geometric Problems", g.Name)
	assert.Equal(t, 4, g.PaperCount)
	assert.Equal(t, []types.YearCount{{Year: 2001, Count: 1}, {Year: 2002, Count: 0}, {Year: 2003, Count: 2}}, g.Yearly)
	require.NotNil(t, g.PeakYear)
	assert.Equal(t, 2003, *g.PeakYear)
	assert.Equal(t, 4, g.AuthorCount)
	assert.Equal(t, map[string]int{"Bob": 3, "Ann": 2}, g.KeyAuthors)
	assert.Equal(t, []string{"p1", "p2"}, g.TopPapers)

	empty := got["optimal_transport"]
	assert.Equal(t, 0, empty.PaperCount)
	assert.Empty(t, empty.Yearly)
	assert.Nil(t, empty.PeakYear)
	assert.Empty(t, empty.TopPapers)
	assert.NotNil(t, empty.KeyAuthors)
}

func TestThreadsSeparateCaps(t *testing.T) {
	reg := taxonomy.Default()
	got := Threads(reg, fixture(), Limits{ThreadTop: 1, ThreadKeyAuthors: 3})

	g := got["geometric"]
	assert.Equal(t, []string{"p1"}, g.TopPapers)
	assert.Len(t, g.KeyAuthors, 3)
}

func TestHistogramPeakTieTakesEarliest(t *testing.T) {
	hist, peak := histogram(map[int]int{2010: 2, 2008: 2, 2009: 1})
	assert.Len(t, hist, 3)
	require.NotNil(t, peak)
	assert.Equal(t, 2008, *peak)
}

func TestAuthors(t *testing.T) {
	got := Authors(fixture(), Limits{AuthorTopPapers: 2, AuthorTopCoauthors: 1})

	bob := got["Bob"]
	assert.Equal(t, 3, bob.PaperCount)
	assert.Equal(t, 111, bob.Citations)
	assert.InDelta(t, 1.9, bob.Influence, 1e-9)
	assert.Equal(t, []int{2001, 2003}, bob.Years)
	assert.Equal(t, map[string]int{"geometric": 3}, bob.Threads)
	assert.Equal(t, []string{"p1", "p2"}, bob.TopPapers)
	assert.Equal(t, map[string]int{"Ann": 2}, bob.Coauthors)
	assert.Equal(t, []string{"p1", "p2", "p4"}, bob.PaperIDs)

	ann := got["Ann"]
	assert.Equal(t, map[string]int{"geometric": 2, "regularity": 1}, ann.Threads)
	assert.Equal(t, []int{1999, 2001, 2003}, ann.Years)

	zed := got["Zed"]
	assert.Empty(t, zed.Years)
	assert.Empty(t, zed.Coauthors)
	assert.Equal(t, 0.0, zed.Influence)
}

func TestCoauthors(t *testing.T) {
	rs := fixture()
	rs = append(rs, ranked("p6", "geometric", 2004, 0.1, 0, "Dee", "Dee", "Zed"))
	view := Coauthors(rs, Authors(rs, Limits{}))

	ids := []string{}
	for _, n := range view.Nodes {
		ids = append(ids, n.ID)
		assert.Greater(t, n.Influence, 0.0)
	}
	assert.Equal(t, []string{"ann", "bob", "cy", "dee", "zed"}, ids)

	require.NotEmpty(t, view.Edges)
	assert.Equal(t, types.CoauthorEdge{Source: "ann", Target: "bob", Weight: 2}, view.Edges[0])

	nodes := map[string]bool{}
	for _, id := range ids {
		nodes[id] = true
	}
	for _, e := range view.Edges {
		assert.True(t, nodes[e.Source])
		assert.True(t, nodes[e.Target])
		assert.NotEqual(t, e.Source, e.Target)
	}
}

func TestCoauthorsExcludesZeroInfluence(t *testing.T) {
	rs := []rank.Ranked{ranked("p", "geometric", 2000, 0, 0, "Ann", "Bob")}
	view := Coauthors(rs, Authors(rs, Limits{}))
	assert.Empty(t, view.Nodes)
	assert.Empty(t, view.Edges)
}
