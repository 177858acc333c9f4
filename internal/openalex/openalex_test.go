// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-atlas/internal/httputil"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := apiBase
	apiBase = ts.URL
	t.Cleanup(func() { apiBase = old })

	return New(types.HTTPConfig{UserAgent: "paper-atlas/test"}, "me@example.org", nil, httputil.WithHTTPClient(ts.Client()))
}

func TestSearchWorks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/works", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "gamma convergence", q.Get("search"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "200", q.Get("per-page"))
		assert.Equal(t, "from_publication_date:1950-01-01", q.Get("filter"))
		assert.Equal(t, "me@example.org", q.Get("mailto"))
		assert.Contains(t, q.Get("select"), "abstract_inverted_index")
		fmt.Fprint(w, `{"results":[{"id":"https://openalex.org/W1","title":"Gamma convergence","publication_year":1990},{"id":"https://openalex.org/W2"}]}`)
	})

	got, err := c.SearchWorks(context.Background(), "gamma convergence", 2, 500, 1950)
	require.NoError(t, err)
	require.Len(t, got, 1, "untitled works are skipped")
	assert.Equal(t, "openalex:W1", got[0].ID)
}

func TestSearchWorksEmptyQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent for empty query")
	})
	_, err := c.SearchWorks(context.Background(), "  ", 1, 10, 1950)
	assert.Error(t, err)
}

func TestAuthorWorks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "authorships.author.id:A5,from_publication_date:1960-01-01", q.Get("filter"))
		assert.Equal(t, "cited_by_count:desc", q.Get("sort"))
		fmt.Fprint(w, `{"results":[{"id":"https://openalex.org/W3","doi":"10.1/z","title":"Z"}]}`)
	})

	got, err := c.AuthorWorks(context.Background(), "https://openalex.org/A5", 1, 50, 1960)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "doi:10.1/z", got[0].ID)
}

func TestResolveAuthor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/authors", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("per-page"))
		if r.URL.Query().Get("search") == "Nobody" {
			fmt.Fprint(w, `{"results":[]}`)
			return
		}
		fmt.Fprint(w, `{"results":[
			{"id":"https://openalex.org/A8","display_name":"N. Fusco","works_count":300,"cited_by_count":9000},
			{"id":"https://openalex.org/A7","display_name":"Nicola Fusco","works_count":200,"cited_by_count":8000}
		]}`)
	})

	a, ok, err := c.ResolveAuthor(context.Background(), "Nicola Fusco")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "A7", a.ID)

	_, ok, err = c.ResolveAuthor(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWorksByIDsChunksAndCursor(t *testing.T) {
	var filters []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := q.Get("filter")
		filters = append(filters, filter)
		ids := strings.Split(strings.TrimPrefix(filter, "openalex:"), "|")
		switch q.Get("cursor") {
		case "*":
			last := ids[len(ids)-1]
			fmt.Fprintf(w, `{"meta":{"next_cursor":"c2"},"results":[{"id":%q,"title":"first"}]}`, last)
		case "c2":
			fmt.Fprint(w, `{"meta":{"next_cursor":"c3"},"results":[]}`)
		default:
			t.Errorf("unexpected cursor %q", q.Get("cursor"))
			fmt.Fprint(w, `{"results":[]}`)
		}
	})

	ids := make([]string, 0, 60)
	for i := 1; i <= 60; i++ {
		ids = append(ids, fmt.Sprintf("W%d", i))
	}
	got, err := c.WorksByIDs(context.Background(), ids)
	require.NoError(t, err)

	require.Len(t, filters, 4, "two chunks, two cursor pages each")
	assert.Equal(t, IDChunkSize, strings.Count(filters[0], "https://openalex.org/"))
	assert.Equal(t, 10, strings.Count(filters[2], "https://openalex.org/"))
	require.Len(t, got, 2)
	assert.Equal(t, "openalex:W50", got[0].ID)
	assert.Equal(t, "openalex:W60", got[1].ID)
}

func TestWorksByIDsAllChunksFail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	_, err := c.WorksByIDs(context.Background(), []string{"W1"})
	var se *httputil.StatusError
	assert.ErrorAs(t, err, &se)
}

func TestWorksByIDsSkipsFailedChunk(t *testing.T) {
	var requests int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		ids := strings.Split(strings.TrimPrefix(r.URL.Query().Get("filter"), "openalex:"), "|")
		if ids[0] == "https://openalex.org/W1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("cursor") != "*" {
			fmt.Fprint(w, `{"results":[]}`)
			return
		}
		fmt.Fprintf(w, `{"meta":{"next_cursor":"c2"},"results":[{"id":%q,"title":"second chunk"}]}`, ids[0])
	})

	ids := make([]string, 0, 60)
	for i := 1; i <= 60; i++ {
		ids = append(ids, fmt.Sprintf("W%d", i))
	}
	got, err := c.WorksByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "openalex:W51", got[0].ID)
	assert.Equal(t, 3, requests, "failed chunk once, second chunk two cursor pages")
}
