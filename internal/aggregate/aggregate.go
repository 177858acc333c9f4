// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate derives per-thread and per-author statistics and the
// co-author network from an influence-sorted corpus. Every top-K list is
// a prefix of that order or a count-sorted list with first-seen tie
// breaks, so results are deterministic.
package aggregate

import (
	"math"
	"sort"

	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/internal/rank"
	"github.com/pdiddy/paper-atlas/internal/taxonomy"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Limits bound the top-K lists.
type Limits struct {
	ThreadTop          int
	ThreadKeyAuthors   int
	AuthorTopPapers    int
	AuthorTopCoauthors int
}

// Threads builds statistics for every registered thread, including threads
// with no papers. ranked must be sorted by influence descending.
func Threads(reg *taxonomy.Registry, ranked []rank.Ranked, limits Limits) map[string]types.ThreadStats {
	out := make(map[string]types.ThreadStats, len(reg.IDs()))
	for _, d := range reg.Domains() {
		yearly := map[int]int{}
		authors := newCounter()
		tops := []string{}
		count := 0
		for _, r := range ranked {
			if r.Thread != d.ID {
				continue
			}
			count++
			if r.Year != 0 {
				yearly[r.Year]++
			}
			for _, a := range r.Authors {
				authors.add(a)
			}
			if limits.ThreadTop <= 0 || len(tops) < limits.ThreadTop {
				tops = append(tops, r.ID)
			}
		}
		hist, peak := histogram(yearly)
		out[d.ID] = types.ThreadStats{
			Name:        d.Name,
			Description: d.Description,
			PaperCount:  count,
			Yearly:      hist,
			PeakYear:    peak,
			AuthorCount: authors.len(),
			KeyAuthors:  authors.topMap(limits.ThreadKeyAuthors),
			TopPapers:   tops,
		}
	}
	return out
}

// histogram zero-fills min..max. The peak is the year with the highest
// count, the earliest on ties; nil when there are no dated papers.
func histogram(yearly map[int]int) ([]types.YearCount, *int) {
	if len(yearly) == 0 {
		return []types.YearCount{}, nil
	}
	lo, hi := math.MaxInt, math.MinInt
	for y := range yearly {
		lo, hi = min(lo, y), max(hi, y)
	}
	out := make([]types.YearCount, 0, hi-lo+1)
	peak, best := lo, -1
	for y := lo; y <= hi; y++ {
		c := yearly[y]
		out = append(out, types.YearCount{Year: y, Count: c})
		if c > best {
			peak, best = y, c
		}
	}
	return out, &peak
}

// Authors accumulates statistics per exact display name. Influence is the
// sum over the author's papers, rounded to four decimals. ranked must be
// sorted by influence descending.
func Authors(ranked []rank.Ranked, limits Limits) map[string]types.AuthorStats {
	type acc struct {
		ids       []string
		cites     int
		influence float64
		years     map[int]bool
		threads   map[string]int
		tops      []string
		co        *counter
	}
	byName := map[string]*acc{}
	for _, r := range ranked {
		for _, a := range r.Authors {
			s, ok := byName[a]
			if !ok {
				s = &acc{years: map[int]bool{}, threads: map[string]int{}, co: newCounter(), tops: []string{}}
				byName[a] = s
			}
			s.ids = append(s.ids, r.ID)
			s.cites += r.CitedByCount
			s.influence += r.Influence
			if r.Year != 0 {
				s.years[r.Year] = true
			}
			s.threads[r.Thread]++
			if limits.AuthorTopPapers <= 0 || len(s.tops) < limits.AuthorTopPapers {
				s.tops = append(s.tops, r.ID)
			}
			for _, other := range r.Authors {
				if other != a {
					s.co.add(other)
				}
			}
		}
	}

	out := make(map[string]types.AuthorStats, len(byName))
	for name, s := range byName {
		years := make([]int, 0, len(s.years))
		for y := range s.years {
			years = append(years, y)
		}
		sort.Ints(years)
		out[name] = types.AuthorStats{
			Name:       name,
			PaperCount: len(s.ids),
			Influence:  round4(s.influence),
			Citations:  s.cites,
			Years:      years,
			Threads:    s.threads,
			TopPapers:  s.tops,
			Coauthors:  s.co.topMap(limits.AuthorTopCoauthors),
			PaperIDs:   s.ids,
		}
	}
	return out
}

// Coauthors builds the collaboration network. Every unordered pair of
// distinct names on a paper adds one to the pair weight. Nodes are the
// authors with positive influence, sorted by name; edges join two nodes
// and are sorted by weight desc, ties in first-seen order.
func Coauthors(ranked []rank.Ranked, authors map[string]types.AuthorStats) types.CoauthorView {
	type pair struct{ a, b string }
	weights := map[pair]int{}
	var order []pair
	for _, r := range ranked {
		for i := 0; i < len(r.Authors); i++ {
			for j := i + 1; j < len(r.Authors); j++ {
				a, b := r.Authors[i], r.Authors[j]
				if a == b {
					continue
				}
				if b < a {
					a, b = b, a
				}
				k := pair{a, b}
				if _, ok := weights[k]; !ok {
					order = append(order, k)
				}
				weights[k]++
			}
		}
	}

	names := make([]string, 0, len(authors))
	for name, s := range authors {
		if s.Influence > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	view := types.CoauthorView{Nodes: []types.CoauthorNode{}, Edges: []types.CoauthorEdge{}}
	nodeID := make(map[string]string, len(names))
	for _, name := range names {
		id := ident.AuthorNodeID(name)
		nodeID[name] = id
		view.Nodes = append(view.Nodes, types.CoauthorNode{ID: id, Author: name, Influence: authors[name].Influence})
	}

	sort.SliceStable(order, func(i, j int) bool { return weights[order[i]] > weights[order[j]] })
	for _, k := range order {
		src, okA := nodeID[k.a]
		dst, okB := nodeID[k.b]
		if !okA || !okB {
			continue
		}
		view.Edges = append(view.Edges, types.CoauthorEdge{Source: src, Target: dst, Weight: weights[k]})
	}
	return view
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
