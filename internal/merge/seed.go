// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"sort"
	"strings"

	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Seed provenance labels.
const (
	ReasonCuratedSeed = "curated_seed"
	SourceSeed        = "seed"
	SourceSeedMerged  = "seed+openalex"
	SeedRelevance     = 10.0
)

// NormalizeSeed cleans a curated seed row: identifiers are normalized,
// text is whitespace-collapsed, tags are lower-cased and sorted, and a
// missing id is derived canonically. An explicit id is kept as given.
func NormalizeSeed(row types.Paper) types.Paper {
	p := row.Clone()
	p.DOI = ident.NormalizeDOI(p.DOI)
	p.ArxivID = ident.NormalizeArxiv(p.ArxivID)
	p.Title = ident.NormalizeSpace(p.Title)
	p.Venue = ident.NormalizeSpace(p.Venue)
	p.EprintID = ident.NormalizeSpace(p.EprintID)

	authors := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		if a = ident.NormalizeSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	p.Authors = authors

	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(t)))
	}
	p.Tags = unionSorted(tags, nil)

	if p.ID == "" {
		p.ID = ident.CanonicalID(p.DOI, p.ArxivID, p.OpenAlexID, p.Title, p.Year)
	}
	if p.Source == "" {
		p.Source = SourceSeed
	}
	p.Seed = true
	return p
}

// OverlaySeeds merges curated seed rows into the accepted set regardless
// of score. A seed whose id matches an accepted paper contributes its
// tags, fills arxiv id and venue, and marks the paper as a merged seed.
// Other seeds are appended with relevance max(minScore, 10). Seeds are
// applied in id order; accepted is not modified.
func OverlaySeeds(accepted, seeds []types.Paper, minScore float64) []types.Paper {
	out := make([]types.Paper, len(accepted), len(accepted)+len(seeds))
	byID := make(map[string]int, len(accepted))
	for i, p := range accepted {
		out[i] = p.Clone()
		if _, dup := byID[p.ID]; !dup {
			byID[p.ID] = i
		}
	}

	ordered := append([]types.Paper(nil), seeds...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	for _, s := range ordered {
		if i, ok := byID[s.ID]; ok {
			p := &out[i]
			p.Tags = unionSorted(p.Tags, s.Tags)
			p.Seed = true
			p.Source = SourceSeedMerged
			p.RelevanceReasons = unionSorted(p.RelevanceReasons, []string{ReasonCuratedSeed})
			if p.ArxivID == "" {
				p.ArxivID = s.ArxivID
			}
			if p.Venue == "" {
				p.Venue = s.Venue
			}
			continue
		}
		seeded := s.Clone()
		seeded.RelevanceScore = max(minScore, SeedRelevance)
		seeded.RelevanceReasons = []string{ReasonCuratedSeed}
		seeded.MatchedQueries = []string{}
		seeded.SourceTypes = []string{SourceSeed}
		byID[seeded.ID] = len(out)
		out = append(out, seeded)
	}
	return out
}
