// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-atlas/internal/taxonomy"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

func TestInfluenceFormula(t *testing.T) {
	m := Maxima{CitedByCount: 1000, Relevance: 20}
	p := types.Paper{CitedByCount: 100, RelevanceScore: 10, Year: 2010}

	want := 0.4*math.Log1p(100)/math.Log1p(1000) +
		0.3*0.5 +
		0.2*math.Log1p(5)/math.Log1p(50) +
		0.1*(15.0/30.0)
	assert.InDelta(t, math.Round(want*1e4)/1e4, Influence(p, 5, m, 2025), 1e-12)
}

func TestInfluenceMissingYearAndEmptyMaxima(t *testing.T) {
	p := types.Paper{}
	assert.Equal(t, 0.0, Influence(p, 0, Maxima{}, 2025))

	// 1950 is 45 years before 2025: no recency credit.
	assert.Equal(t, 0.0, Influence(types.Paper{Year: 0}, 0, Maxima{}, 2025))
	assert.Equal(t, 0.1, Influence(types.Paper{Year: 0}, 0, Maxima{}, 1950))
}

func TestInfluenceBounds(t *testing.T) {
	m := Maxima{CitedByCount: 10, Relevance: 5}
	cases := []types.Paper{
		{CitedByCount: 10, RelevanceScore: 5, Year: 2030},
		{CitedByCount: 5000, RelevanceScore: 99, Year: 2025},
		{CitedByCount: -3, RelevanceScore: -999, Year: 1800},
		{},
	}
	for _, p := range cases {
		for _, icc := range []int{0, 1, 50, 10000} {
			v := Influence(p, icc, m, 2025)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.Equal(t, 1.0, Influence(cases[0], 50, m, 2025))
}

func TestRankSortsStable(t *testing.T) {
	papers := []types.Paper{
		{ID: "low", CitedByCount: 1, Year: 1990},
		{ID: "tie-1", CitedByCount: 10, Year: 2000, Tags: []string{"geometric"}},
		{ID: "top", CitedByCount: 100, RelevanceScore: 10, Year: 2020},
		{ID: "tie-2", CitedByCount: 10, Year: 2000},
	}
	got := Rank(papers, taxonomy.Default(), map[string]int{"top": 3}, 2025)
	require.Len(t, got, 4)

	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"top", "tie-1", "tie-2", "low"}, ids)
	assert.Equal(t, "geometric", got[1].Thread)
	assert.Equal(t, "classical_calcvar", got[2].Thread)
	assert.Equal(t, 3, got[0].InCorpusCitations)
}

func TestCorpusMaxima(t *testing.T) {
	m := CorpusMaxima([]types.Paper{{CitedByCount: 4, RelevanceScore: 9.5}, {CitedByCount: 7, RelevanceScore: 2}})
	assert.Equal(t, Maxima{CitedByCount: 7, Relevance: 9.5}, m)
	assert.Equal(t, Maxima{}, CorpusMaxima(nil))
}
