// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"math"
	"regexp"
	"strings"

	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Author-candidate weights.
const (
	exactWeight   = 100.0
	prefixWeight  = 20.0
	overlapWeight = 8.0
	citesWeight   = 0.2
)

var nameToken = regexp.MustCompile(`[a-z0-9]+`)

func nameTokens(name string) map[string]bool {
	out := make(map[string]bool)
	for _, t := range nameToken.FindAllString(strings.ToLower(name), -1) {
		out[t] = true
	}
	return out
}

// AuthorScore rates how well a search candidate matches the requested
// name: exact match, prefix match, shared name tokens, and a small log
// bonus for productive and well-cited authors.
func AuthorScore(name string, cand types.Author) float64 {
	want := strings.ToLower(strings.TrimSpace(name))
	got := strings.ToLower(strings.TrimSpace(cand.DisplayName))

	score := 0.0
	if got == want {
		score += exactWeight
	}
	if strings.HasPrefix(got, want) {
		score += prefixWeight
	}
	wantTokens := nameTokens(want)
	for t := range nameTokens(got) {
		if wantTokens[t] {
			score += overlapWeight
		}
	}
	score += math.Log1p(float64(max(cand.WorksCount, 0)))
	score += citesWeight * math.Log1p(float64(max(cand.CitedByCount, 0)))
	return score
}

// BestAuthor picks the highest scoring candidate; the first one wins a
// tie. It returns false for an empty list.
func BestAuthor(name string, candidates []types.Author) (types.Author, bool) {
	var best types.Author
	bestScore := math.Inf(-1)
	found := false
	for _, c := range candidates {
		if s := AuthorScore(name, c); s > bestScore {
			best, bestScore, found = c, s, true
		}
	}
	if !found {
		return types.Author{}, false
	}
	best.ID = ident.ShortOpenAlexID(best.ID)
	return best, true
}
