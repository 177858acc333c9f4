// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on 429, 5xx and transport errors (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// RequestsPerSecond caps the request rate per API client.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Concurrency bounds the number of in-flight requests in a pass.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`
}

// BuildConfig holds settings for the discovery/build stage.
type BuildConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MinScore is the minimum relevance score for acceptance (default 8).
	MinScore float64 `json:"min_score" yaml:"min_score" mapstructure:"min_score"`

	// MinYear rejects papers published before this year (default 1950).
	MinYear int `json:"min_year" yaml:"min_year" mapstructure:"min_year"`

	// QueryPages is the number of result pages fetched per keyword query (default 2).
	QueryPages int `json:"query_pages" yaml:"query_pages" mapstructure:"query_pages"`

	// AuthorPages is the number of result pages fetched per resolved author (default 1).
	AuthorPages int `json:"author_pages" yaml:"author_pages" mapstructure:"author_pages"`

	// PerPage is the OpenAlex page size, clamped to 1..200 (default 100).
	PerPage int `json:"per_page" yaml:"per_page" mapstructure:"per_page"`

	// ExpansionMin is how many corpus papers must cite an external work
	// before citation expansion fetches it (default 3).
	ExpansionMin int `json:"expansion_min" yaml:"expansion_min" mapstructure:"expansion_min"`

	// SkipSemanticScholar disables Semantic Scholar citation enrichment.
	SkipSemanticScholar bool `json:"skip_semantic_scholar" yaml:"skip_semantic_scholar" mapstructure:"skip_semantic_scholar"`

	// OpenAlexEmail is sent as mailto for the OpenAlex polite pool.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty" mapstructure:"openalex_email"`

	// SemanticScholarAPIKey is an optional key for higher S2 rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`
}

// AnalyzeConfig holds settings for the analysis stage.
type AnalyzeConfig struct {
	// TopPapers caps the paper dictionary in the core view (default 800).
	TopPapers int `json:"top_papers" yaml:"top_papers" mapstructure:"top_papers"`

	// GraphNodes caps the unified graph node prefix (default 600).
	GraphNodes int `json:"graph_nodes" yaml:"graph_nodes" mapstructure:"graph_nodes"`

	// ThreadTop caps each thread's top paper list (default 15).
	ThreadTop int `json:"thread_top" yaml:"thread_top" mapstructure:"thread_top"`

	// ThreadKeyAuthors caps each thread's key author map (default 15).
	ThreadKeyAuthors int `json:"thread_key_authors" yaml:"thread_key_authors" mapstructure:"thread_key_authors"`

	// AuthorTopPapers caps each author's top paper list (default 10).
	AuthorTopPapers int `json:"author_top_papers" yaml:"author_top_papers" mapstructure:"author_top_papers"`

	// AuthorTopCoauthors caps each author's co-author list (default 20).
	AuthorTopCoauthors int `json:"author_top_coauthors" yaml:"author_top_coauthors" mapstructure:"author_top_coauthors"`

	// CurrentYear anchors the recency term (default DefaultCurrentYear).
	// It is fixed rather than read from the clock so a database always
	// ranks the same way.
	CurrentYear int `json:"current_year" yaml:"current_year" mapstructure:"current_year"`
}

// DefaultCurrentYear is the recency anchor used when none is configured.
const DefaultCurrentYear = 2025

// WithDefaults returns a copy with zero fields replaced by their defaults.
func (c AnalyzeConfig) WithDefaults() AnalyzeConfig {
	if c.TopPapers <= 0 {
		c.TopPapers = 800
	}
	if c.GraphNodes <= 0 {
		c.GraphNodes = 600
	}
	if c.ThreadTop <= 0 {
		c.ThreadTop = 15
	}
	if c.ThreadKeyAuthors <= 0 {
		c.ThreadKeyAuthors = 15
	}
	if c.AuthorTopPapers <= 0 {
		c.AuthorTopPapers = 10
	}
	if c.AuthorTopCoauthors <= 0 {
		c.AuthorTopCoauthors = 20
	}
	if c.CurrentYear <= 0 {
		c.CurrentYear = DefaultCurrentYear
	}
	return c
}

// WithDefaults returns a copy with zero fields replaced by their defaults.
func (c BuildConfig) WithDefaults() BuildConfig {
	if c.MinScore == 0 {
		c.MinScore = 8.0
	}
	if c.MinYear == 0 {
		c.MinYear = 1950
	}
	if c.QueryPages <= 0 {
		c.QueryPages = 2
	}
	if c.AuthorPages <= 0 {
		c.AuthorPages = 1
	}
	if c.PerPage <= 0 {
		c.PerPage = 100
	}
	if c.PerPage > 200 {
		c.PerPage = 200
	}
	if c.ExpansionMin <= 0 {
		c.ExpansionMin = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.UserAgent == "" {
		c.UserAgent = "paper-atlas/0.1"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 5
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 8
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	return c
}
