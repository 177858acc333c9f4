// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semanticscholar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-atlas/internal/httputil"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := apiBase
	apiBase = ts.URL
	t.Cleanup(func() { apiBase = old })

	return New(types.HTTPConfig{MaxRetries: 1}, "key-1", nil, httputil.WithHTTPClient(ts.Client()))
}

func TestIDsForPaper(t *testing.T) {
	tests := []struct {
		name  string
		paper types.Paper
		want  []string
	}{
		{"doi", types.Paper{DOI: "10.1/x"}, []string{"DOI:10.1/x"}},
		{"arxiv doi", types.Paper{DOI: "10.48550/arxiv.2101.00001", ArxivID: "2101.00001"}, []string{"ARXIV:2101.00001"}},
		{"arxiv id", types.Paper{ArxivID: "2001.1"}, []string{"ARXIV:2001.1"}},
		{"aliases", types.Paper{DOI: "10.1/x", Aliases: []string{"arxiv:2001.1", "doi:10.48550/arxiv.2001.1", "doi:10.2/y", "openalex:W1"}},
			[]string{"ARXIV:2001.1", "DOI:10.1/x", "DOI:10.2/y"}},
		{"nothing", types.Paper{OpenAlexID: "W1"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IDsForPaper(tt.paper))
		})
	}
}

func TestCitationCounts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/paper/batch", r.URL.Path)
		assert.Equal(t, "citationCount,externalIds", r.URL.Query().Get("fields"))
		assert.Equal(t, "key-1", r.Header.Get("x-api-key"))

		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"ARXIV:2001.1", "DOI:10.1/a", "DOI:10.1/x"}, req.IDs)

		json.NewEncoder(w).Encode([]any{
			map[string]any{"paperId": "s1", "citationCount": 40},
			map[string]any{"paperId": "s2", "citationCount": 7},
			nil,
		})
	})

	papers := []types.Paper{
		{ID: "doi:10.1/a", DOI: "10.1/a", Aliases: []string{"arxiv:2001.1"}},
		{ID: "doi:10.1/x", DOI: "10.1/x"},
		{ID: "openalex:W9"},
	}
	got, err := c.CitationCounts(context.Background(), papers)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"doi:10.1/a": 40}, got)
}

func TestCitationCountsBatches(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		out := make([]map[string]int, len(req.IDs))
		for i := range out {
			out[i] = map[string]int{"citationCount": 1}
		}
		json.NewEncoder(w).Encode(out)
	})

	papers := make([]types.Paper, 0, BatchSize+1)
	for i := 0; i <= BatchSize; i++ {
		doi := fmt.Sprintf("10.9/%d", i)
		papers = append(papers, types.Paper{ID: "doi:" + doi, DOI: doi})
	}
	got, err := c.CitationCounts(context.Background(), papers)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Len(t, got, BatchSize+1)
}

func TestCitationCountsAllFailed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.CitationCounts(context.Background(), []types.Paper{{ID: "doi:10.1/a", DOI: "10.1/a"}})
	assert.Error(t, err)
}

func TestCitationCountsNoIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	got, err := c.CitationCounts(context.Background(), []types.Paper{{ID: "openalex:W1"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}
