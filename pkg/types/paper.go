// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Paper is the canonical bibliographic record. Raw candidates handed over by
// the discovery stage and deduplicated corpus entries share this shape; the
// scoring-only text fields are cleared once a candidate has been scored.
type Paper struct {
	// ID is the canonical identity: doi:, arxiv:, openalex: or title: prefixed.
	ID string `json:"id" yaml:"id"`

	// Title is the display title, whitespace-collapsed.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year. Zero means unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Authors lists display names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	Venue      string `json:"venue,omitempty" yaml:"venue,omitempty"`
	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`
	ArxivID    string `json:"arxiv_id,omitempty" yaml:"arxiv_id,omitempty"`
	EprintID   string `json:"eprint_id,omitempty" yaml:"eprint_id,omitempty"`
	OpenAlexID string `json:"openalex_id,omitempty" yaml:"openalex_id,omitempty"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`

	// Type is the OpenAlex work type (article, book-chapter, ...).
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// CitedByCount is the maximum citation count reported by any source.
	CitedByCount int `json:"cited_by_count" yaml:"cited_by_count"`

	// SSCitedByCount is the Semantic Scholar citation count, when enriched.
	SSCitedByCount int `json:"ss_cited_by_count,omitempty" yaml:"ss_cited_by_count,omitempty"`

	// ReferencedWorks holds short OpenAlex ids (W...) of cited works.
	ReferencedWorks []string `json:"referenced_works,omitempty" yaml:"referenced_works,omitempty"`

	Tags             []string `json:"tags" yaml:"tags"`
	RelevanceScore   float64  `json:"relevance_score" yaml:"relevance_score"`
	RelevanceReasons []string `json:"relevance_reasons,omitempty" yaml:"relevance_reasons,omitempty"`

	// MatchedQueries and SourceTypes record which discovery passes surfaced the paper.
	MatchedQueries []string `json:"matched_queries,omitempty" yaml:"matched_queries,omitempty"`
	SourceTypes    []string `json:"source_types,omitempty" yaml:"source_types,omitempty"`

	// Source is a provenance label ("openalex", "seed", "seed+openalex", ...).
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
	Seed   bool   `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Aliases are superseded identifiers that once denoted this paper.
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Scoring input only. Never persisted in the final database.
	Abstract string   `json:"abstract_text,omitempty" yaml:"abstract_text,omitempty"`
	Concepts []string `json:"concept_terms,omitempty" yaml:"concept_terms,omitempty"`
	Keywords []string `json:"keyword_terms,omitempty" yaml:"keyword_terms,omitempty"`
}

// StripScoringText clears the free-text fields used only by the scorer.
func (p *Paper) StripScoringText() {
	p.Abstract = ""
	p.Concepts = nil
	p.Keywords = nil
}

// Clone returns a deep copy so that callers can modify slices freely.
func (p Paper) Clone() Paper {
	c := p
	c.Authors = cloneStrings(p.Authors)
	c.ReferencedWorks = cloneStrings(p.ReferencedWorks)
	c.Tags = cloneStrings(p.Tags)
	c.RelevanceReasons = cloneStrings(p.RelevanceReasons)
	c.MatchedQueries = cloneStrings(p.MatchedQueries)
	c.SourceTypes = cloneStrings(p.SourceTypes)
	c.Aliases = cloneStrings(p.Aliases)
	c.Concepts = cloneStrings(p.Concepts)
	c.Keywords = cloneStrings(p.Keywords)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
