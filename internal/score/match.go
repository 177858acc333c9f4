// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"regexp"
	"strings"
)

var (
	shortTerm      = regexp.MustCompile(`^[a-z0-9]{1,4}$`)
	separatorChars = regexp.MustCompile(`[\s\-]+`)
)

// phrase is a compiled term matcher. Matching is case-sensitive against
// already lower-cased text.
type phrase struct {
	term string
	re   *regexp.Regexp
}

// compilePhrase builds a word-bounded matcher for term. Internal spaces and
// hyphens match any run of whitespace or hyphens, so "euler lagrange" and
// "euler-lagrange" find both spellings. Short alphanumeric terms use \b;
// longer ones require a non-alphanumeric neighbour or the text edge.
func compilePhrase(term string) phrase {
	t := strings.ToLower(strings.TrimSpace(term))
	parts := separatorChars.Split(t, -1)
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
	}
	body := strings.Join(quoted, `[\s\-]+`)

	var pattern string
	if shortTerm.MatchString(t) {
		pattern = `\b` + body + `\b`
	} else {
		pattern = `(?:^|[^a-z0-9])` + body + `(?:[^a-z0-9]|$)`
	}
	return phrase{term: t, re: regexp.MustCompile(pattern)}
}

func compilePhrases(terms []string) []phrase {
	out := make([]phrase, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		p := compilePhrase(term)
		if p.term == "" || seen[p.term] {
			continue
		}
		seen[p.term] = true
		out = append(out, p)
	}
	return out
}

func (p phrase) in(text string) bool {
	return p.re.MatchString(text)
}

// countMatches returns the number of distinct phrases found in text.
func countMatches(phrases []phrase, text string) int {
	n := 0
	for _, p := range phrases {
		if p.in(text) {
			n++
		}
	}
	return n
}

// TermInText reports whether term occurs in text under the scorer's
// boundary and separator rules. text is lower-cased before matching.
func TermInText(term, text string) bool {
	p := compilePhrase(term)
	if p.term == "" {
		return false
	}
	return p.in(strings.ToLower(text))
}
