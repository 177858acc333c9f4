// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package discover

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-atlas/internal/citegraph"
	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/internal/merge"
	"github.com/pdiddy/paper-atlas/internal/score"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// passes runs the network passes. Fetches fan out over an errgroup bounded
// by the configured concurrency; each task writes only its own result
// slot, and slots are folded into the pool in input order afterwards so
// that the pool content does not depend on completion order.
type passes struct {
	src Source
	cfg types.BuildConfig
	log *zap.Logger
}

// listing is the outcome of one paged listing: a query, or an author
// keyed by catalog id and labelled with the seed name.
type listing struct {
	key      string
	label    string
	papers   []types.Paper
	requests int
	failures int
}

// pageFunc fetches one page of a listing.
type pageFunc func(ctx context.Context, page int) ([]types.Paper, error)

// pages fetches up to n pages, stopping at the first empty page. A failed
// page is logged and ends the listing.
func (p *passes) pages(ctx context.Context, l *listing, n int, fetch pageFunc) {
	for page := 1; page <= n; page++ {
		if ctx.Err() != nil {
			return
		}
		l.requests++
		got, err := fetch(ctx, page)
		if err != nil {
			l.failures++
			p.log.Warn("page failed", zap.String("listing", l.label), zap.Int("page", page), zap.Error(err))
			return
		}
		p.log.Debug("page fetched", zap.String("listing", l.label), zap.Int("page", page), zap.Int("works", len(got)))
		if len(got) == 0 {
			return
		}
		l.papers = append(l.papers, got...)
	}
}

// run fans out one listing per slot and waits. It returns an error when
// the context ends or when every request of the pass failed.
func (p *passes) run(ctx context.Context, name string, slots []listing, fill func(ctx context.Context, l *listing)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i := range slots {
		l := &slots[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			fill(gctx, l)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s pass: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s pass: %w", name, err)
	}

	requests, failures := 0, 0
	for _, l := range slots {
		requests += l.requests
		failures += l.failures
	}
	if requests > 0 && failures == requests {
		return fmt.Errorf("%s pass: all %d requests failed", name, requests)
	}
	return nil
}

func (p *passes) keywordPass(ctx context.Context, queries []string, pool *merge.Pool) error {
	slots := make([]listing, len(queries))
	for i, q := range queries {
		slots[i].key, slots[i].label = q, q
	}
	err := p.run(ctx, SourceKeyword, slots, func(ctx context.Context, l *listing) {
		p.pages(ctx, l, p.cfg.QueryPages, func(ctx context.Context, page int) ([]types.Paper, error) {
			return p.src.SearchWorks(ctx, l.key, page, p.cfg.PerPage, p.cfg.MinYear)
		})
	})
	if err != nil {
		return err
	}
	for _, l := range slots {
		for _, paper := range l.papers {
			pool.Upsert(paper, SourceKeyword, l.label)
		}
	}
	return nil
}

// resolvedAuthor pairs a seed name with its catalog author.
type resolvedAuthor struct {
	name   string
	author types.Author
}

// resolveAuthors resolves names concurrently, then keeps the first name
// (in sorted order) for each catalog author id.
func (p *passes) resolveAuthors(ctx context.Context, names []string) ([]resolvedAuthor, error) {
	type slot struct {
		author types.Author
		ok     bool
		err    error
	}
	slots := make([]slot, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Concurrency)
	for i, name := range names {
		s := &slots[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			s.author, s.ok, s.err = p.src.ResolveAuthor(gctx, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolving authors: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resolving authors: %w", err)
	}

	seen := make(map[string]bool)
	var out []resolvedAuthor
	failures := 0
	for i, s := range slots {
		if s.err != nil {
			failures++
			p.log.Warn("author resolution failed", zap.String("author", names[i]), zap.Error(s.err))
			continue
		}
		id := ident.ShortOpenAlexID(s.author.ID)
		if !s.ok || id == "" || seen[id] {
			continue
		}
		seen[id] = true
		s.author.ID = id
		out = append(out, resolvedAuthor{name: names[i], author: s.author})
	}
	if len(names) > 0 && failures == len(names) {
		return nil, fmt.Errorf("resolving authors: all %d requests failed", failures)
	}
	return out, nil
}

func (p *passes) authorPass(ctx context.Context, authors []resolvedAuthor, pool *merge.Pool) error {
	slots := make([]listing, len(authors))
	for i, a := range authors {
		slots[i].key, slots[i].label = a.author.ID, a.name
	}
	err := p.run(ctx, SourceAuthor, slots, func(ctx context.Context, l *listing) {
		p.pages(ctx, l, p.cfg.AuthorPages, func(ctx context.Context, page int) ([]types.Paper, error) {
			return p.src.AuthorWorks(ctx, l.key, page, p.cfg.PerPage, p.cfg.MinYear)
		})
	})
	if err != nil {
		return err
	}
	for _, l := range slots {
		for _, paper := range l.papers {
			pool.Upsert(paper, SourceAuthor, l.label)
		}
	}
	return nil
}

// expand fetches external works cited by at least ExpansionMin accepted
// papers and returns the ones with enough topical evidence. A failed
// fetch is logged; whatever was fetched is still used.
func (p *passes) expand(ctx context.Context, scorer *score.Scorer, accepted []types.Paper) ([]types.Paper, error) {
	refs := citegraph.ExternalRefs(accepted, p.cfg.ExpansionMin)
	if len(refs) == 0 {
		return nil, nil
	}
	ids, counts := expansionCounts(refs)
	p.log.Info("citation expansion", zap.Int("external_works", len(ids)), zap.Int("min_citing", p.cfg.ExpansionMin))

	fetched, err := p.src.WorksByIDs(ctx, ids)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("citation expansion: %w", ctx.Err())
		}
		p.log.Warn("citation expansion fetch failed", zap.Int("fetched", len(fetched)), zap.Error(err))
	}

	have := make(map[string]bool, len(accepted))
	for _, a := range accepted {
		have[a.ID] = true
	}
	var added []types.Paper
	for _, w := range fetched {
		if have[w.ID] {
			continue
		}
		citedBy := counts[ident.ShortOpenAlexID(w.OpenAlexID)]
		paper, ok := expansionPaper(scorer, w, citedBy, p.cfg.MinScore)
		if !ok {
			continue
		}
		have[paper.ID] = true
		added = append(added, paper)
	}
	return added, nil
}
