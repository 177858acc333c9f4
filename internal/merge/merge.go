// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge reconciles duplicate paper records. Merge is a pure
// function over two records; Dedupe groups a batch by title key and folds
// each group in a fixed order so that the result does not depend on the
// order in which discovery surfaced the records.
package merge

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Merge folds incoming into existing and returns the merged record. Neither
// argument is modified.
//
// The record with the strictly higher relevance score becomes the base and
// supplies scalar fields; the other contributes its id and aliases to the
// alias set. Counts and relevance take the maximum, set fields are
// unioned, missing identifiers are filled, and a published DOI wins over
// an arXiv DOI. The id is then recomputed from the merged identifiers.
func Merge(existing, incoming types.Paper) types.Paper {
	dois := nonEmpty(existing.DOI, incoming.DOI)
	arxiv := nonEmpty(existing.ArxivID, incoming.ArxivID)
	openalex := nonEmpty(existing.OpenAlexID, incoming.OpenAlexID)
	urls := nonEmpty(existing.URL, incoming.URL)
	venues := nonEmpty(existing.Venue, incoming.Venue)

	var base, other types.Paper
	if incoming.RelevanceScore > existing.RelevanceScore {
		base, other = incoming.Clone(), existing
	} else {
		base, other = existing.Clone(), incoming
	}

	aliases := make([]string, 0, len(base.Aliases)+len(other.Aliases)+1)
	aliases = append(aliases, base.Aliases...)
	aliases = append(aliases, other.ID)
	aliases = append(aliases, other.Aliases...)
	base.Aliases = aliases

	base.CitedByCount = max(base.CitedByCount, other.CitedByCount)
	base.SSCitedByCount = max(base.SSCitedByCount, other.SSCitedByCount)
	base.RelevanceScore = max(base.RelevanceScore, other.RelevanceScore)

	if len(other.ReferencedWorks) > len(base.ReferencedWorks) {
		base.ReferencedWorks = cloneStrings(other.ReferencedWorks)
	}

	base.Authors = appendNew(base.Authors, other.Authors)
	base.Tags = unionSorted(base.Tags, other.Tags)
	base.RelevanceReasons = unionSorted(base.RelevanceReasons, other.RelevanceReasons)
	base.MatchedQueries = unionSorted(base.MatchedQueries, other.MatchedQueries)
	base.SourceTypes = unionSorted(base.SourceTypes, other.SourceTypes)

	published := make([]string, 0, len(dois))
	for _, d := range dois {
		if !ident.IsArxivDOI(d) {
			published = append(published, d)
		}
	}
	switch {
	case len(published) > 0:
		base.DOI = published[0]
	case len(dois) > 0:
		base.DOI = dois[0]
	}
	base.ArxivID = fill(base.ArxivID, arxiv)
	base.OpenAlexID = fill(base.OpenAlexID, openalex)
	base.URL = fill(base.URL, urls)
	base.Venue = fill(base.Venue, venues)
	base.EprintID = fill(base.EprintID, nonEmpty(other.EprintID))
	base.Type = fill(base.Type, nonEmpty(other.Type))
	base.Abstract = fill(base.Abstract, nonEmpty(other.Abstract))
	base.Seed = base.Seed || other.Seed

	base.Year = max(existing.Year, incoming.Year)

	return Canonicalize(base)
}

// Canonicalize recomputes the canonical id from the identifier fields.
// A superseded id moves into the alias set. Set-valued fields are
// normalized: aliases, tags, reasons, queries and source types become
// sorted and unique, authors lose exact duplicates, and the id is never
// an alias.
func Canonicalize(p types.Paper) types.Paper {
	p = p.Clone()
	id := ident.CanonicalID(p.DOI, p.ArxivID, p.OpenAlexID, p.Title, p.Year)
	if id != p.ID {
		p.Aliases = append(p.Aliases, p.ID)
		p.ID = id
	}
	p.Aliases = without(unionSorted(p.Aliases, nil), p.ID)
	p.Authors = appendNew(nil, p.Authors)
	p.Tags = unionSorted(p.Tags, nil)
	p.RelevanceReasons = unionSorted(p.RelevanceReasons, nil)
	p.MatchedQueries = unionSorted(p.MatchedQueries, nil)
	p.SourceTypes = unionSorted(p.SourceTypes, nil)
	return p
}

// Dedupe returns exactly one canonical record per title key. Records in a
// group are folded in a fixed total order (relevance desc, citations desc,
// then id and full content), and the output is sorted by title key, so
// any permutation of the input yields the same result. Dedupe of its own
// output, or of its output concatenated with itself, is the identity.
func Dedupe(papers []types.Paper) []types.Paper {
	groups := make(map[string][]types.Paper)
	for _, p := range papers {
		k := ident.TitleKey(p.Title)
		groups[k] = append(groups[k], p)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]types.Paper, 0, len(keys))
	for _, k := range keys {
		group := sortGroup(groups[k])
		acc := Canonicalize(group[0])
		for _, p := range group[1:] {
			acc = Merge(acc, p)
		}
		out = append(out, acc)
	}
	return out
}

type sortable struct {
	p   types.Paper
	enc []byte
}

func sortGroup(group []types.Paper) []types.Paper {
	items := make([]sortable, len(group))
	for i, p := range group {
		enc, _ := json.Marshal(p)
		items[i] = sortable{p: p, enc: enc}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].p, items[j].p
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if a.CitedByCount != b.CitedByCount {
			return a.CitedByCount > b.CitedByCount
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return bytes.Compare(items[i].enc, items[j].enc) < 0
	})
	out := make([]types.Paper, len(items))
	for i, it := range items {
		out[i] = it.p
	}
	return out
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func fill(current string, candidates []string) string {
	if current != "" || len(candidates) == 0 {
		return current
	}
	return candidates[0]
}

// unionSorted returns the sorted, de-duplicated union of a and b without
// blank entries. The result is never nil.
func unionSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// appendNew appends the entries of add missing from base, keeping order.
// The result is never nil.
func appendNew(base, add []string) []string {
	seen := make(map[string]bool, len(base)+len(add))
	out := make([]string, 0, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, v := range list {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func without(list []string, drop string) []string {
	out := list[:0]
	for _, v := range list {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
