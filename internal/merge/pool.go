// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"sort"

	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Pool collects raw candidates across discovery passes, keyed by candidate
// id. A repeated candidate keeps its first record and absorbs better
// metadata from later sightings; every sighting records its source type
// and label. Pool is not safe for concurrent use.
type Pool struct {
	entries map[string]*poolEntry
}

type poolEntry struct {
	paper   types.Paper
	sources map[string]bool
	labels  map[string]bool
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{entries: make(map[string]*poolEntry)}
}

// Len is the number of distinct candidates.
func (p *Pool) Len() int { return len(p.entries) }

// Upsert records a sighting of paper from a pass of sourceType (keyword,
// author, ...) with a pass-specific label such as the query text. Papers
// without an id are ignored.
func (p *Pool) Upsert(paper types.Paper, sourceType, label string) {
	if paper.ID == "" {
		return
	}
	e, ok := p.entries[paper.ID]
	if !ok {
		p.entries[paper.ID] = &poolEntry{
			paper:   paper.Clone(),
			sources: map[string]bool{sourceType: true},
			labels:  map[string]bool{label: true},
		}
		return
	}
	e.sources[sourceType] = true
	e.labels[label] = true

	cur := &e.paper
	cur.CitedByCount = max(cur.CitedByCount, paper.CitedByCount)
	if cur.Abstract == "" {
		cur.Abstract = paper.Abstract
	}
	if len(paper.ReferencedWorks) > len(cur.ReferencedWorks) {
		cur.ReferencedWorks = cloneStrings(paper.ReferencedWorks)
	}
	if cur.Venue == "" {
		cur.Venue = paper.Venue
	}
	if cur.URL == "" {
		cur.URL = paper.URL
	}
	if cur.OpenAlexID == "" {
		cur.OpenAlexID = paper.OpenAlexID
	}
	cur.Authors = appendNew(cur.Authors, paper.Authors)
	cur.Concepts = appendNew(cur.Concepts, paper.Concepts)
	cur.Keywords = appendNew(cur.Keywords, paper.Keywords)
}

// Candidates returns every candidate sorted by id, with MatchedQueries and
// SourceTypes set from the recorded sightings.
func (p *Pool) Candidates() []types.Paper {
	ids := make([]string, 0, len(p.entries))
	for id := range p.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]types.Paper, 0, len(ids))
	for _, id := range ids {
		e := p.entries[id]
		c := e.paper.Clone()
		c.MatchedQueries = sortedKeys(e.labels)
		c.SourceTypes = sortedKeys(e.sources)
		out = append(out, c)
	}
	return out
}

// Has reports whether the pool holds a candidate with id.
func (p *Pool) Has(id string) bool {
	_, ok := p.entries[id]
	return ok
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
