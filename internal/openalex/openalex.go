// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex is the OpenAlex works and authors client used by the
// discovery passes. Responses are mapped to raw candidate papers.
package openalex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/paper-atlas/internal/httputil"
	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// apiBase is the OpenAlex API root. Declared as a var so tests can
// substitute an httptest server.
var apiBase = "https://api.openalex.org"

// Request limits.
const (
	MaxPerPage      = 200
	IDChunkSize     = 50
	authorCandidate = 10
	authorSelect    = "id,display_name,works_count,cited_by_count"
)

// Client queries OpenAlex. It is safe for concurrent use.
type Client struct {
	http   *httputil.Client
	email  string
	logger *zap.Logger
}

// New builds a client. email, when set, is sent as mailto for the polite
// pool.
func New(cfg types.HTTPConfig, email string, logger *zap.Logger, opts ...httputil.Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{http: httputil.NewClient(cfg, opts...), email: email, logger: logger}
}

type worksResponse struct {
	Meta struct {
		Count      int    `json:"count"`
		NextCursor string `json:"next_cursor"`
	} `json:"meta"`
	Results []Work `json:"results"`
}

type authorsResponse struct {
	Results []types.Author `json:"results"`
}

func (c *Client) endpoint(path string, params url.Values) string {
	if c.email != "" {
		params.Set("mailto", c.email)
	}
	return apiBase + path + "?" + params.Encode()
}

func fromYear(minYear int) string {
	return fmt.Sprintf("from_publication_date:%d-01-01", minYear)
}

func clampPerPage(n int) int {
	return min(max(n, 1), MaxPerPage)
}

func (c *Client) works(ctx context.Context, params url.Values) (worksResponse, error) {
	params.Set("select", workSelect)
	var resp worksResponse
	if err := c.http.GetJSON(ctx, c.endpoint("/works", params), &resp); err != nil {
		return worksResponse{}, fmt.Errorf("OpenAlex works: %w", err)
	}
	return resp, nil
}

func papers(ws []Work) []types.Paper {
	out := make([]types.Paper, 0, len(ws))
	for _, w := range ws {
		if p, ok := PaperFromWork(w); ok {
			out = append(out, p)
		}
	}
	return out
}

// SearchWorks returns one page of a keyword search restricted to works
// published from minYear on. An empty slice marks the last page.
func (c *Client) SearchWorks(ctx context.Context, query string, page, perPage, minYear int) ([]types.Paper, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty OpenAlex query")
	}
	resp, err := c.works(ctx, url.Values{
		"search":   {query},
		"page":     {strconv.Itoa(max(page, 1))},
		"per-page": {strconv.Itoa(clampPerPage(perPage))},
		"filter":   {fromYear(minYear)},
	})
	if err != nil {
		return nil, fmt.Errorf("searching %q page %d: %w", query, page, err)
	}
	return papers(resp.Results), nil
}

// AuthorWorks returns one page of an author's works, most cited first.
func (c *Client) AuthorWorks(ctx context.Context, authorID string, page, perPage, minYear int) ([]types.Paper, error) {
	id := ident.ShortOpenAlexID(authorID)
	if id == "" {
		return nil, fmt.Errorf("empty OpenAlex author id")
	}
	resp, err := c.works(ctx, url.Values{
		"filter":   {"authorships.author.id:" + id + "," + fromYear(minYear)},
		"sort":     {"cited_by_count:desc"},
		"page":     {strconv.Itoa(max(page, 1))},
		"per-page": {strconv.Itoa(clampPerPage(perPage))},
	})
	if err != nil {
		return nil, fmt.Errorf("works of author %s page %d: %w", id, page, err)
	}
	return papers(resp.Results), nil
}

// ResolveAuthor searches authors by name and returns the best matching
// candidate, or false when the search finds nobody.
func (c *Client) ResolveAuthor(ctx context.Context, name string) (types.Author, bool, error) {
	params := url.Values{
		"search":   {name},
		"per-page": {strconv.Itoa(authorCandidate)},
		"select":   {authorSelect},
	}
	var resp authorsResponse
	if err := c.http.GetJSON(ctx, c.endpoint("/authors", params), &resp); err != nil {
		return types.Author{}, false, fmt.Errorf("resolving author %q: %w", name, err)
	}
	best, ok := BestAuthor(name, resp.Results)
	if !ok || best.ID == "" {
		return types.Author{}, false, nil
	}
	return best, true, nil
}

// WorksByIDs fetches works by short OpenAlex id in chunks of IDChunkSize,
// following the cursor of each chunk until it is exhausted. A failed chunk
// is logged and skipped; an error is returned only when every chunk fails
// or ctx is done.
func (c *Client) WorksByIDs(ctx context.Context, ids []string) ([]types.Paper, error) {
	var out []types.Paper
	total := (len(ids) + IDChunkSize - 1) / IDChunkSize
	failed := 0
	var lastErr error
	for start := 0; start < len(ids); start += IDChunkSize {
		chunk := ids[start:min(start+IDChunkSize, len(ids))]
		full := make([]string, len(chunk))
		for i, id := range chunk {
			full[i] = "https://openalex.org/" + ident.ShortOpenAlexID(id)
		}

		cursor := "*"
		for cursor != "" {
			resp, err := c.works(ctx, url.Values{
				"filter":   {"openalex:" + strings.Join(full, "|")},
				"per-page": {strconv.Itoa(MaxPerPage)},
				"cursor":   {cursor},
			})
			if err != nil {
				if ctx.Err() != nil {
					return out, ctx.Err()
				}
				lastErr = fmt.Errorf("fetching works %d-%d: %w", start, start+len(chunk), err)
				c.logger.Warn("OpenAlex id chunk failed", zap.Int("start", start), zap.Int("ids", len(chunk)), zap.Error(err))
				failed++
				break
			}
			out = append(out, papers(resp.Results)...)
			if len(resp.Results) == 0 {
				break
			}
			cursor = resp.Meta.NextCursor
		}
	}
	if total > 0 && failed == total {
		return out, fmt.Errorf("all %d OpenAlex id chunks failed: %w", total, lastErr)
	}
	return out, nil
}
