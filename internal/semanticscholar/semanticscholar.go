// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package semanticscholar looks up citation counts through the Semantic
// Scholar batch endpoint.
package semanticscholar

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-atlas/internal/httputil"
	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// apiBase is the Semantic Scholar Graph API root. Declared as a var so
// tests can substitute an httptest server.
var apiBase = "https://api.semanticscholar.org/graph/v1"

// BatchSize is the maximum number of ids per batch request.
const BatchSize = 500

const batchFields = "citationCount,externalIds"

// Client queries Semantic Scholar. It is safe for concurrent use.
type Client struct {
	http   *httputil.Client
	logger *zap.Logger
}

// New builds a client. apiKey is optional and raises the rate limit.
func New(cfg types.HTTPConfig, apiKey string, logger *zap.Logger, opts ...httputil.Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]httputil.Option{httputil.WithHeader("x-api-key", apiKey)}, opts...)
	return &Client{http: httputil.NewClient(cfg, opts...), logger: logger}
}

type batchRequest struct {
	IDs []string `json:"ids"`
}

type batchResult struct {
	PaperID       string `json:"paperId"`
	CitationCount int    `json:"citationCount"`
}

// IDsForPaper lists the Semantic Scholar ids under which p may be known:
// ARXIV: and DOI: forms of its own identifiers and of its doi:/arxiv:
// aliases. arXiv DOIs are queried as ARXIV ids. The result is sorted.
func IDsForPaper(p types.Paper) []string {
	set := make(map[string]bool)
	addDOI := func(doi string) {
		if doi == "" {
			return
		}
		if arxiv := ident.StripArxivDOI(doi); arxiv != "" {
			set["ARXIV:"+arxiv] = true
			return
		}
		set["DOI:"+doi] = true
	}

	switch {
	case ident.IsArxivDOI(p.DOI):
		addDOI(p.DOI)
	case p.ArxivID != "":
		set["ARXIV:"+p.ArxivID] = true
	default:
		addDOI(p.DOI)
	}
	for _, a := range p.Aliases {
		switch {
		case strings.HasPrefix(a, ident.PrefixDOI):
			addDOI(strings.TrimPrefix(a, ident.PrefixDOI))
		case strings.HasPrefix(a, ident.PrefixArxiv):
			set["ARXIV:"+strings.TrimPrefix(a, ident.PrefixArxiv)] = true
		}
	}

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// CitationCounts returns the best Semantic Scholar citation count per
// paper id for every paper found under any of its ids. A failed batch is
// logged and skipped; an error is returned only when every batch fails.
func (c *Client) CitationCounts(ctx context.Context, papers []types.Paper) (map[string]int, error) {
	owner := make(map[string]string)
	for _, p := range papers {
		for _, id := range IDsForPaper(p) {
			owner[id] = p.ID
		}
	}
	counts := make(map[string]int)
	if len(owner) == 0 {
		return counts, nil
	}

	ids := make([]string, 0, len(owner))
	for id := range owner {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	url := apiBase + "/paper/batch?fields=" + batchFields
	total := (len(ids) + BatchSize - 1) / BatchSize
	failed := 0
	var lastErr error
	for n, start := 1, 0; start < len(ids); n, start = n+1, start+BatchSize {
		chunk := ids[start:min(start+BatchSize, len(ids))]
		c.logger.Info("semantic scholar batch", zap.Int("batch", n), zap.Int("of", total), zap.Int("ids", len(chunk)))

		var results []*batchResult
		if err := c.http.PostJSON(ctx, url, batchRequest{IDs: chunk}, &results); err != nil {
			if ctx.Err() != nil {
				return counts, ctx.Err()
			}
			c.logger.Warn("semantic scholar batch failed", zap.Int("batch", n), zap.Error(err))
			failed++
			lastErr = err
			continue
		}
		for i, r := range results {
			if r == nil || i >= len(chunk) {
				continue
			}
			pid := owner[chunk[i]]
			if cur, ok := counts[pid]; !ok || r.CitationCount > cur {
				counts[pid] = r.CitationCount
			}
		}
	}
	if failed == total {
		return counts, fmt.Errorf("all %d semantic scholar batches failed: %w", total, lastErr)
	}
	return counts, nil
}
