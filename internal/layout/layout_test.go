// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-atlas/internal/rank"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

func r(id, thread string, year int) rank.Ranked {
	return rank.Ranked{Paper: types.Paper{ID: id, Year: year}, Thread: thread}
}

func TestJitterStableAndBounded(t *testing.T) {
	ids := []string{"doi:10.1000/x", "arxiv:2001.00001", "openalex:W1", "title:a:na", ""}
	for _, id := range ids {
		j := Jitter(id)
		assert.Equal(t, j, Jitter(id))
		assert.GreaterOrEqual(t, j, -30)
		assert.Less(t, j, 30)
	}
}

func TestPositions(t *testing.T) {
	order := []string{"classical_calcvar", "direct_methods", "regularity"}
	papers := []rank.Ranked{
		r("a", "classical_calcvar", 1980),
		r("b", "regularity", 2020),
		r("c", "direct_methods", 0),
		r("d", "unknown", 1990),
	}
	pos := Positions(papers, order)
	require.Len(t, pos, 4)

	assert.Equal(t, -400.0, pos["a"].X)
	assert.Equal(t, 400.0, pos["b"].X)
	assert.Equal(t, 0.0, pos["c"].X, "missing year sits at 2000")
	assert.Equal(t, -200.0, pos["d"].X)

	assert.Equal(t, float64(Jitter("a")), pos["a"].Y)
	assert.Equal(t, 200+float64(Jitter("b")), pos["b"].Y)
	assert.Equal(t, 100+float64(Jitter("c")), pos["c"].Y)
	assert.Equal(t, float64(Jitter("d")), pos["d"].Y)

	assert.Equal(t, pos, Positions(papers, order))
}

func TestPositionsSingleYear(t *testing.T) {
	pos := Positions([]rank.Ranked{r("a", "x", 2010), r("b", "x", 2010)}, nil)
	assert.Equal(t, -400.0, pos["a"].X)
	assert.Equal(t, -400.0, pos["b"].X)
	assert.Empty(t, Positions(nil, nil))
}

func TestPositionsRounding(t *testing.T) {
	pos := Positions([]rank.Ranked{r("a", "x", 2000), r("b", "x", 2001), r("c", "x", 2003)}, nil)
	assert.Equal(t, -133.3, pos["b"].X)
}
