// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ident canonicalizes external paper identifiers into one stable
// identity string and normalizes the free-text fields that feed
// deduplication and scoring.
package ident

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical id prefixes, in precedence order.
const (
	PrefixDOI      = "doi:"
	PrefixArxiv    = "arxiv:"
	PrefixOpenAlex = "openalex:"
	PrefixTitle    = "title:"
)

var (
	doiURLPattern   = regexp.MustCompile(`(?i)^https?://(dx\.)?doi\.org/`)
	arxivURLPattern = regexp.MustCompile(`(?i)^https?://arxiv\.org/abs/`)
	openAlexSuffix  = regexp.MustCompile(`/([AW]\d+)$`)
	arxivDOIPattern = regexp.MustCompile(`(?i)^10\.48550/arxiv\.`)
	arxivFromDOI    = regexp.MustCompile(`(?i)^10\.48550/arxiv\.(\d{4}\.\d{4,5})`)
	literalEscapes  = regexp.MustCompile(`\\[nrt]`)
	nonAlnumRun     = regexp.MustCompile(`[^a-z0-9]+`)
	quoteReplacer   = strings.NewReplacer("‘", "'", "’", "'", "“", `"`, "”", `"`, "`", "'")
)

// NormalizeDOI strips a doi.org resolver prefix and lower-cases the rest.
// It returns "" for blank input.
func NormalizeDOI(doi string) string {
	v := strings.TrimSpace(doi)
	v = doiURLPattern.ReplaceAllString(v, "")
	return strings.ToLower(strings.TrimSpace(v))
}

// NormalizeArxiv strips an arxiv.org/abs/ prefix and lower-cases the rest.
func NormalizeArxiv(id string) string {
	v := strings.TrimSpace(id)
	v = arxivURLPattern.ReplaceAllString(v, "")
	return strings.ToLower(v)
}

// ShortOpenAlexID reduces "https://openalex.org/W123" to "W123". Values that
// do not end in an A/W id are returned trimmed.
func ShortOpenAlexID(id string) string {
	v := strings.TrimSpace(id)
	if v == "" {
		return ""
	}
	if m := openAlexSuffix.FindStringSubmatch(v); m != nil {
		return m[1]
	}
	return v
}

// IsArxivDOI reports whether doi is an arXiv preprint DOI (10.48550/arxiv.*).
func IsArxivDOI(doi string) bool {
	return doi != "" && arxivDOIPattern.MatchString(doi)
}

// ArxivIDFromDOI extracts the arXiv id from an arXiv DOI, or "".
func ArxivIDFromDOI(doi string) string {
	if m := arxivFromDOI.FindStringSubmatch(doi); m != nil {
		return m[1]
	}
	return ""
}

// StripArxivDOI returns the arXiv id embedded in an arXiv DOI of any
// suffix form, or "".
func StripArxivDOI(doi string) string {
	if !IsArxivDOI(doi) {
		return ""
	}
	return arxivDOIPattern.ReplaceAllString(doi, "")
}

// CanonicalID picks the paper identity with precedence
// DOI > arXiv > OpenAlex > title+year. Identifiers must already be
// normalized. Two papers with the same title slug and year collide by
// construction.
func CanonicalID(doi, arxivID, openAlexID, title string, year int) string {
	switch {
	case doi != "":
		return PrefixDOI + doi
	case arxivID != "":
		return PrefixArxiv + arxivID
	case openAlexID != "":
		return PrefixOpenAlex + ShortOpenAlexID(openAlexID)
	}
	slug := strings.Trim(nonAlnumRun.ReplaceAllString(strings.ToLower(title), "-"), "-")
	y := "na"
	if year != 0 {
		y = strconv.Itoa(year)
	}
	return PrefixTitle + slug + ":" + y
}

// TitleKey is the deduplication key: lower-cased ASCII alphanumerics
// separated by single spaces. Literal "\n", "\r", "\t" escape sequences
// that leak into some OpenAlex titles count as separators.
func TitleKey(title string) string {
	t := strings.ToLower(title)
	t = literalEscapes.ReplaceAllString(t, " ")
	return strings.TrimSpace(nonAlnumRun.ReplaceAllString(t, " "))
}

// NormalizeSpace collapses whitespace runs and trims.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeText applies NFC composition and whitespace collapsing, so that
// precomposed and decomposed spellings of the same name compare equal.
func NormalizeText(s string) string {
	return NormalizeSpace(norm.NFC.String(s))
}

// NormalizeQuotes replaces curly quotes and backticks with ASCII quotes.
func NormalizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

// NormalizeName prepares an author display name for identity comparison.
func NormalizeName(name string) string {
	return NormalizeQuotes(NormalizeText(name))
}

// MaxAbstractPositions bounds the word positions read from an inverted
// index.
const MaxAbstractPositions = 100_000

// AbstractFromInvertedIndex rebuilds plain text from an OpenAlex
// abstract_inverted_index (word -> positions). Each token is placed at its
// positions; positions claimed twice keep the lexically first token, and
// unfilled positions collapse away when spaces are normalized. Positions
// at or beyond MaxAbstractPositions are ignored.
func AbstractFromInvertedIndex(index map[string][]int) string {
	if len(index) == 0 {
		return ""
	}
	maxPos := -1
	for _, positions := range index {
		for _, p := range positions {
			if p > maxPos && p < MaxAbstractPositions {
				maxPos = p
			}
		}
	}
	if maxPos < 0 {
		return ""
	}

	tokens := make([]string, 0, len(index))
	for tok := range index {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	words := make([]string, maxPos+1)
	for _, tok := range tokens {
		for _, p := range index[tok] {
			if p >= 0 && p < len(words) && words[p] == "" {
				words[p] = tok
			}
		}
	}
	return NormalizeSpace(strings.Join(words, " "))
}

// AuthorNodeID derives the co-author network node id from a display name.
func AuthorNodeID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
