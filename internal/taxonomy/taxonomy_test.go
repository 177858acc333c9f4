// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestDefault(t *testing.T) {
	r := Default()

	assert.Equal(t, []string{
		"classical_calcvar",
		"direct_methods",
		"regularity",
		"geometric",
		"optimal_control",
		"convexity",
		"gamma_convergence",
		"optimal_transport",
		"free_discontinuity",
	}, r.IDs())
	assert.Equal(t, "classical_calcvar", r.Fallback())
	assert.Len(t, r.KeywordQueries(), 50)
	assert.Len(t, r.CorePhrases(), 5)
	assert.Len(t, r.SecondaryPhrases(), 6)
	assert.Contains(t, r.AuthorSeeds(), "Luigi Ambrosio")

	d, ok := r.Domain("optimal_transport")
	require.True(t, ok)
	assert.Equal(t, "Optimal Transport", d.Name)
	assert.Contains(t, d.Terms, "wasserstein")

	p, ok := r.Priority("direct_methods")
	require.True(t, ok)
	assert.Equal(t, 1, p)
	assert.False(t, r.Has("known-authors"))
}

func TestDefaultAuthorSeedsUnique(t *testing.T) {
	seeds := Default().AuthorSeeds()
	seen := map[string]bool{}
	for _, s := range seeds {
		assert.False(t, seen[s], "duplicate seed %q", s)
		seen[s] = true
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	r := Default()
	ids := r.IDs()
	ids[0] = "mutated"
	d := r.Domains()
	d[0].Terms[0] = "mutated"

	assert.Equal(t, "classical_calcvar", r.IDs()[0])
	assert.Equal(t, "euler-lagrange", r.Domains()[0].Terms[0])
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		file File
		want error
	}{
		{
			name: "no domains",
			file: File{},
			want: ErrNoDomains,
		},
		{
			name: "duplicate",
			file: File{Domains: []Domain{{ID: "a"}, {ID: "a"}}},
			want: ErrDuplicateDomain,
		},
		{
			name: "unknown fallback",
			file: File{Fallback: "z", Domains: []Domain{{ID: "a"}}},
			want: ErrUnknownFallback,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.file)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewDefaultsFallbackToFirstDomain(t *testing.T) {
	r, err := New(File{Domains: []Domain{{ID: "b", Terms: []string{"  Foo Bar "}}, {ID: "a"}}})
	require.NoError(t, err)
	assert.Equal(t, "b", r.Fallback())
	d, _ := r.Domain("b")
	assert.Equal(t, []string{"foo bar"}, d.Terms)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	content := `
fallback: general
core_phrases: [graph theory]
domains:
  - id: spectral
    name: Spectral
    terms: [eigenvalue, laplacian]
  - id: general
    name: General
keyword_queries: [spectral graph theory]
author_seeds: [Fan Chung]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"spectral", "general"}, r.IDs())
	assert.Equal(t, "general", r.Fallback())
	assert.Equal(t, []string{"Fan Chung"}, r.AuthorSeeds())
	assert.Equal(t, []string{"graph theory"}, r.CorePhrases())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("domains: [\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	r := Default()
	data, err := yaml.Marshal(r.File())
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, r.File(), back.File())
}
