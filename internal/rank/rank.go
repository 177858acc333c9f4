// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank computes the composite influence score and orders the
// corpus by it. Influence is relative to the corpus maxima of one run.
package rank

import (
	"math"
	"sort"

	"github.com/pdiddy/paper-atlas/internal/score"
	"github.com/pdiddy/paper-atlas/internal/taxonomy"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Weights and constants of the influence formula.
const (
	CitationWeight  = 0.4
	RelevanceWeight = 0.3
	InCorpusWeight  = 0.2
	RecencyWeight   = 0.1

	InCorpusSaturation = 50
	RecencyWindow      = 30
	MissingYear        = 1950
)

// Ranked is a finalized paper with its derived thread, in-corpus citation
// count and influence.
type Ranked struct {
	types.Paper
	Thread            string
	InCorpusCitations int
	Influence         float64
}

// Maxima are the corpus-wide normalizers.
type Maxima struct {
	CitedByCount int
	Relevance    float64
}

// CorpusMaxima scans papers once for the largest citation count and
// relevance score.
func CorpusMaxima(papers []types.Paper) Maxima {
	var m Maxima
	for _, p := range papers {
		m.CitedByCount = max(m.CitedByCount, p.CitedByCount)
		m.Relevance = max(m.Relevance, p.RelevanceScore)
	}
	return m
}

// Influence blends log-scaled citations, normalized relevance, saturating
// in-corpus citations and recency, rounded to four decimals. Negative
// inputs count as zero and a zero year counts as 1950, so the result is
// always in [0, 1].
func Influence(p types.Paper, inCorpus int, m Maxima, currentYear int) float64 {
	cited := float64(max(p.CitedByCount, 0))
	rel := math.Max(p.RelevanceScore, 0)
	year := p.Year
	if year == 0 {
		year = MissingYear
	}

	citeNorm := math.Log1p(cited) / math.Log1p(float64(max(m.CitedByCount, 1)))
	relNorm := rel / math.Max(m.Relevance, 1.0)
	inNorm := math.Min(1.0, math.Log1p(float64(max(inCorpus, 0)))/math.Log1p(InCorpusSaturation))
	recency := clamp(float64(year-(currentYear-RecencyWindow))/RecencyWindow, 0, 1)

	v := CitationWeight*math.Min(citeNorm, 1) +
		RelevanceWeight*math.Min(relNorm, 1) +
		InCorpusWeight*inNorm +
		RecencyWeight*recency
	return math.Round(v*1e4) / 1e4
}

// Rank assigns threads and influence to every paper and returns them
// sorted by influence descending. Ties keep input order.
func Rank(papers []types.Paper, reg *taxonomy.Registry, inDegree map[string]int, currentYear int) []Ranked {
	m := CorpusMaxima(papers)
	out := make([]Ranked, len(papers))
	for i, p := range papers {
		icc := inDegree[p.ID]
		out[i] = Ranked{
			Paper:             p,
			Thread:            score.AssignThread(reg, p.Tags),
			InCorpusCitations: icc,
			Influence:         Influence(p, icc, m, currentYear),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Influence > out[j].Influence })
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
