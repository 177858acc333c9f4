// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover builds the corpus database. It runs the keyword and
// author passes against a catalog Source, scores and filters the pooled
// candidates, overlays curated seeds, deduplicates, expands the corpus
// along frequently cited references and optionally enriches citation
// counts.
package discover

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-atlas/internal/citegraph"
	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/internal/merge"
	"github.com/pdiddy/paper-atlas/internal/score"
	"github.com/pdiddy/paper-atlas/internal/taxonomy"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Source types and provenance labels recorded on candidates.
const (
	SourceKeyword   = "keyword"
	SourceAuthor    = "author"
	SourceExpansion = "citation_expansion"
	SourceOpenAlex  = "openalex"

	TagExpanded = "citation-expanded"
)

// DatabaseVersion is the schema version written to papers-db.json.
const DatabaseVersion = 1

const (
	description    = "Broad calculus of variations paper corpus from OpenAlex, filtered by explicit minimum relevance threshold."
	expansionCap   = 30.0
	expansionScale = 2.0
)

// Source is a bibliographic catalog. Page numbers start at 1; an empty
// page marks the end of a listing.
type Source interface {
	SearchWorks(ctx context.Context, query string, page, perPage, minYear int) ([]types.Paper, error)
	AuthorWorks(ctx context.Context, authorID string, page, perPage, minYear int) ([]types.Paper, error)
	ResolveAuthor(ctx context.Context, name string) (types.Author, bool, error)
	WorksByIDs(ctx context.Context, ids []string) ([]types.Paper, error)
}

// CitationSource reports citation counts by paper id for the papers it
// knows.
type CitationSource interface {
	CitationCounts(ctx context.Context, papers []types.Paper) (map[string]int, error)
}

// Options configures Run.
type Options struct {
	Config   types.BuildConfig
	Registry *taxonomy.Registry

	// Seeds are curated rows merged regardless of score.
	Seeds []types.Paper

	Source Source

	// Citations enriches citation counts; nil skips enrichment.
	Citations CitationSource

	Logger *zap.Logger

	// Now stamps generated_at; zero means time.Now.
	Now time.Time
}

// Run executes every discovery pass and returns the finished database.
func Run(ctx context.Context, opts Options) (types.Database, error) {
	cfg := opts.Config.WithDefaults()
	reg := opts.Registry
	if reg == nil {
		reg = taxonomy.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Source == nil {
		return types.Database{}, fmt.Errorf("discover: no source configured")
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	seeds := make([]types.Paper, 0, len(opts.Seeds))
	for _, row := range opts.Seeds {
		seeds = append(seeds, merge.NormalizeSeed(row))
	}
	authorNames := AuthorNames(reg.AuthorSeeds(), seeds)
	known := knownResearchers(reg.AuthorSeeds(), seeds)

	pool := merge.NewPool()
	p := &passes{src: opts.Source, cfg: cfg, log: log}

	queries := reg.KeywordQueries()
	log.Info("keyword pass", zap.Int("queries", len(queries)), zap.Int("pages", cfg.QueryPages))
	if err := p.keywordPass(ctx, queries, pool); err != nil {
		return types.Database{}, err
	}
	log.Info("keyword pass done", zap.Int("candidates", pool.Len()))

	resolved, err := p.resolveAuthors(ctx, authorNames)
	if err != nil {
		return types.Database{}, err
	}
	log.Info("authors resolved", zap.Int("names", len(authorNames)), zap.Int("resolved", len(resolved)))
	if err := p.authorPass(ctx, resolved, pool); err != nil {
		return types.Database{}, err
	}
	log.Info("author pass done", zap.Int("candidates", pool.Len()))

	scorer := score.New(reg, cfg.MinYear, known)
	accepted, rejected := filterCandidates(scorer, pool.Candidates(), cfg.MinScore)
	log.Info("candidates scored", zap.Int("accepted", len(accepted)), zap.Int("rejected", rejected))

	accepted = merge.OverlaySeeds(accepted, seeds, cfg.MinScore)
	accepted = merge.Dedupe(accepted)

	added, err := p.expand(ctx, scorer, accepted)
	if err != nil {
		return types.Database{}, err
	}
	if len(added) > 0 {
		accepted = merge.Dedupe(append(accepted, added...))
	}
	log.Info("citation expansion done", zap.Int("added", len(added)), zap.Int("papers", len(accepted)))

	SortPapers(accepted)

	stats := types.BuildStats{
		CandidateCount:    pool.Len(),
		AcceptedCount:     len(accepted),
		RejectedCount:     rejected,
		MinRelevanceScore: cfg.MinScore,
		MinYear:           cfg.MinYear,
		KeywordQueries:    len(queries),
		ResolvedAuthors:   len(resolved),
		ExpansionAdded:    len(added),
	}
	stats.SourceBreakdown, stats.DomainBreakdown = breakdowns(reg, accepted)

	enrich := opts.Citations != nil && !cfg.SkipSemanticScholar
	if enrich {
		counts, err := opts.Citations.CitationCounts(ctx, accepted)
		if err != nil {
			if ctx.Err() != nil {
				return types.Database{}, ctx.Err()
			}
			log.Warn("citation enrichment failed", zap.Error(err))
		}
		stats.SSEnriched, stats.SSNotFound = ApplyCitationCounts(accepted, counts)
		log.Info("citation enrichment done", zap.Int("enriched", stats.SSEnriched), zap.Int("not_found", stats.SSNotFound))
	}

	return types.Database{
		Version:     DatabaseVersion,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Description: description,
		Config: types.DatabaseConfig{
			MinRelevanceScore: cfg.MinScore,
			MinYear:           cfg.MinYear,
			QueryPages:        cfg.QueryPages,
			AuthorPages:       cfg.AuthorPages,
			PerPage:           cfg.PerPage,
			SemanticScholar:   enrich,
		},
		Queries:     queries,
		AuthorSeeds: authorNames,
		Stats:       stats,
		Papers:      accepted,
	}, nil
}

// AuthorNames is the sorted, quote-normalized union of the registry's
// author seeds and the authors of curated seed papers.
func AuthorNames(seedNames []string, seeds []types.Paper) []string {
	set := make(map[string]bool)
	add := func(name string) {
		if n := ident.NormalizeQuotes(ident.NormalizeSpace(name)); n != "" {
			set[n] = true
		}
	}
	for _, n := range seedNames {
		add(n)
	}
	for _, s := range seeds {
		for _, a := range s.Authors {
			add(a)
		}
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func knownResearchers(seedNames []string, seeds []types.Paper) []string {
	out := append([]string(nil), seedNames...)
	for _, s := range seeds {
		out = append(out, s.Authors...)
	}
	return out
}

// filterCandidates scores every candidate, records the score on it and
// splits the pool into accepted papers and a rejected count.
func filterCandidates(scorer *score.Scorer, candidates []types.Paper, minScore float64) ([]types.Paper, int) {
	accepted := make([]types.Paper, 0, len(candidates))
	rejected := 0
	for _, c := range candidates {
		r := scorer.Score(c)
		c.RelevanceScore = r.Score
		c.RelevanceReasons = r.Reasons
		c.Tags = r.Tags
		c.Source = SourceOpenAlex
		c.StripScoringText()
		if !score.Accept(r, minScore) {
			rejected++
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted, rejected
}

// expansionPaper turns a fetched referenced work into an accepted paper,
// or returns false when it lacks topical evidence.
func expansionPaper(scorer *score.Scorer, p types.Paper, citedBy int, minScore float64) (types.Paper, bool) {
	r := scorer.Score(p)
	if !r.Strong() {
		return types.Paper{}, false
	}
	p.RelevanceScore = max(minScore, min(expansionCap, expansionScale*float64(citedBy)))
	p.RelevanceReasons = append([]string{fmt.Sprintf("citation_expansion(cited_by=%d)", citedBy)}, r.Reasons...)
	p.Tags = appendTag(r.Tags, TagExpanded)
	p.MatchedQueries = []string{}
	p.SourceTypes = []string{SourceExpansion}
	p.Source = SourceExpansion
	p.StripScoringText()
	return p, true
}

func appendTag(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	out := append(append([]string(nil), tags...), tag)
	sort.Strings(out)
	return out
}

// SortPapers orders the corpus by relevance desc, citations desc, year
// desc, then lower-cased title and id.
func SortPapers(papers []types.Paper) {
	sort.SliceStable(papers, func(i, j int) bool {
		a, b := papers[i], papers[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if a.CitedByCount != b.CitedByCount {
			return a.CitedByCount > b.CitedByCount
		}
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if ta, tb := strings.ToLower(a.Title), strings.ToLower(b.Title); ta != tb {
			return ta < tb
		}
		return a.ID < b.ID
	})
}

// ApplyCitationCounts records Semantic Scholar counts on papers and raises
// cited_by_count where the external count is larger. It returns how many
// papers were raised and how many were not found.
func ApplyCitationCounts(papers []types.Paper, counts map[string]int) (enriched, notFound int) {
	for i := range papers {
		p := &papers[i]
		n, ok := counts[p.ID]
		if !ok {
			p.SSCitedByCount = 0
			notFound++
			continue
		}
		p.SSCitedByCount = n
		if n > p.CitedByCount {
			p.CitedByCount = n
			enriched++
		}
	}
	return enriched, notFound
}

func breakdowns(reg *taxonomy.Registry, papers []types.Paper) (sources, domains map[string]int) {
	sources = make(map[string]int)
	domains = make(map[string]int)
	for _, p := range papers {
		for _, s := range p.SourceTypes {
			sources[s]++
		}
		for _, t := range p.Tags {
			if reg.Has(t) {
				domains[t]++
			}
		}
	}
	return sources, domains
}

// expansionCounts indexes external reference counts by short id.
func expansionCounts(refs []citegraph.ExternalRef) ([]string, map[string]int) {
	ids := make([]string, len(refs))
	counts := make(map[string]int, len(refs))
	for i, r := range refs {
		ids[i] = r.ID
		counts[r.ID] = r.Count
	}
	return ids, counts
}
