// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"strings"

	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Caps on scoring terms taken from a work.
const (
	maxConcepts = 15
	maxKeywords = 20
)

// workSelect is the field projection requested for every works query.
var workSelect = strings.Join([]string{
	"id",
	"doi",
	"title",
	"display_name",
	"publication_year",
	"cited_by_count",
	"type",
	"ids",
	"authorships",
	"primary_location",
	"abstract_inverted_index",
	"concepts",
	"keywords",
	"referenced_works",
}, ",")

// Work is the subset of an OpenAlex work object the pipeline reads.
type Work struct {
	ID                    string           `json:"id"`
	DOI                   string           `json:"doi"`
	Title                 string           `json:"title"`
	DisplayName           string           `json:"display_name"`
	PublicationYear       int              `json:"publication_year"`
	CitedByCount          int              `json:"cited_by_count"`
	Type                  string           `json:"type"`
	IDs                   WorkIDs          `json:"ids"`
	Authorships           []Authorship     `json:"authorships"`
	PrimaryLocation       *Location        `json:"primary_location"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
	Concepts              []Term           `json:"concepts"`
	Keywords              []Term           `json:"keywords"`
	ReferencedWorks       []string         `json:"referenced_works"`
}

// WorkIDs holds the external identifiers of a work.
type WorkIDs struct {
	OpenAlex string `json:"openalex"`
	DOI      string `json:"doi"`
	Arxiv    string `json:"arxiv"`
}

type Authorship struct {
	Author struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"author"`
}

type Location struct {
	LandingPageURL string `json:"landing_page_url"`
	Source         *struct {
		DisplayName string `json:"display_name"`
	} `json:"source"`
}

// Term is a concept or keyword entry.
type Term struct {
	DisplayName string `json:"display_name"`
}

// PaperFromWork maps a work to a raw candidate. It returns false when the
// work has no usable title.
func PaperFromWork(w Work) (types.Paper, bool) {
	title := ident.NormalizeText(w.Title)
	if title == "" {
		title = ident.NormalizeText(w.DisplayName)
	}
	if title == "" {
		return types.Paper{}, false
	}

	doi := w.DOI
	if doi == "" {
		doi = w.IDs.DOI
	}
	doi = ident.NormalizeDOI(doi)
	arxiv := ident.NormalizeArxiv(w.IDs.Arxiv)
	if arxiv == "" {
		arxiv = ident.ArxivIDFromDOI(doi)
	}
	openAlexID := w.ID
	if openAlexID == "" {
		openAlexID = w.IDs.OpenAlex
	}

	var venue, url string
	if loc := w.PrimaryLocation; loc != nil {
		url = strings.TrimSpace(loc.LandingPageURL)
		if loc.Source != nil {
			venue = ident.NormalizeSpace(loc.Source.DisplayName)
		}
	}
	if url == "" && doi != "" {
		url = "https://doi.org/" + doi
	}
	if url == "" {
		url = openAlexID
	}

	authors := make([]string, 0, len(w.Authorships))
	for _, a := range w.Authorships {
		if name := ident.NormalizeName(a.Author.DisplayName); name != "" {
			authors = append(authors, name)
		}
	}

	refs := make([]string, 0, len(w.ReferencedWorks))
	for _, r := range w.ReferencedWorks {
		if short := ident.ShortOpenAlexID(r); short != "" {
			refs = append(refs, short)
		}
	}

	return types.Paper{
		ID:              ident.CanonicalID(doi, arxiv, openAlexID, title, w.PublicationYear),
		Title:           title,
		Year:            w.PublicationYear,
		Authors:         authors,
		Venue:           venue,
		DOI:             doi,
		ArxivID:         arxiv,
		URL:             url,
		OpenAlexID:      openAlexID,
		Type:            w.Type,
		CitedByCount:    max(w.CitedByCount, 0),
		ReferencedWorks: refs,
		Abstract:        ident.AbstractFromInvertedIndex(w.AbstractInvertedIndex),
		Concepts:        terms(w.Concepts, maxConcepts),
		Keywords:        terms(w.Keywords, maxKeywords),
	}, true
}

func terms(in []Term, limit int) []string {
	if len(in) > limit {
		in = in[:limit]
	}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if name := ident.NormalizeSpace(t.DisplayName); name != "" {
			out = append(out, strings.ToLower(name))
		}
	}
	return out
}
