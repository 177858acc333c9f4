// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Database is the deduplicated corpus written by the build stage and read
// by the analyze stage (papers-db.json).
type Database struct {
	Version     int            `json:"version" yaml:"version"`
	GeneratedAt string         `json:"generated_at" yaml:"generated_at"`
	Description string         `json:"description" yaml:"description"`
	Config      DatabaseConfig `json:"config" yaml:"config"`
	Queries     []string       `json:"queries" yaml:"queries"`
	AuthorSeeds []string       `json:"author_seeds" yaml:"author_seeds"`
	Stats       BuildStats     `json:"stats" yaml:"stats"`
	Papers      []Paper        `json:"papers" yaml:"papers"`
}

// DatabaseConfig echoes the build parameters that produced a database.
type DatabaseConfig struct {
	MinRelevanceScore float64 `json:"min_relevance_score" yaml:"min_relevance_score"`
	MinYear           int     `json:"min_year" yaml:"min_year"`
	QueryPages        int     `json:"query_pages" yaml:"query_pages"`
	AuthorPages       int     `json:"author_pages" yaml:"author_pages"`
	PerPage           int     `json:"per_page" yaml:"per_page"`
	SemanticScholar   bool    `json:"semantic_scholar,omitempty" yaml:"semantic_scholar,omitempty"`
}

// BuildStats summarizes a discovery run.
type BuildStats struct {
	CandidateCount    int            `json:"candidate_count" yaml:"candidate_count"`
	AcceptedCount     int            `json:"accepted_count" yaml:"accepted_count"`
	RejectedCount     int            `json:"rejected_count" yaml:"rejected_count"`
	MinRelevanceScore float64        `json:"min_relevance_score" yaml:"min_relevance_score"`
	MinYear           int            `json:"min_year" yaml:"min_year"`
	KeywordQueries    int            `json:"keyword_queries" yaml:"keyword_queries"`
	ResolvedAuthors   int            `json:"resolved_authors" yaml:"resolved_authors"`
	SourceBreakdown   map[string]int `json:"source_breakdown" yaml:"source_breakdown"`
	DomainBreakdown   map[string]int `json:"domain_breakdown" yaml:"domain_breakdown"`
	ExpansionAdded    int            `json:"expansion_added,omitempty" yaml:"expansion_added,omitempty"`
	SSEnriched        int            `json:"ss_enriched,omitempty" yaml:"ss_enriched,omitempty"`
	SSNotFound        int            `json:"ss_not_found,omitempty" yaml:"ss_not_found,omitempty"`
}
