// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes the deterministic relevance heuristic for a
// candidate paper and assigns its primary thread. It is pure: a Scorer
// holds only compiled, read-only matchers.
package score

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/paper-atlas/internal/ident"
	"github.com/pdiddy/paper-atlas/internal/taxonomy"
	"github.com/pdiddy/paper-atlas/pkg/types"
)

// Tag added when at least one author is a known researcher.
const TagKnownAuthors = "known-authors"

// Scores and reasons.
const (
	BelowMinYearScore = -999.0

	ReasonBelowMinYear = "below_min_year"
	ReasonCoreMatch    = "mentions_calcvar(+6)"
	ReasonWeakSignal   = "weak_calcvar_signal(-4)"
	ReasonHighCited    = "high_citations_200(+2)"
	ReasonCited        = "citations_50(+1)"
	ReasonLandmark     = "landmark_classic(+1.5)"
)

const (
	coreBonus         = 6.0
	secondaryStep     = 1.5
	secondaryCap      = 4.0
	domainStep        = 0.8
	domainCap         = 3.0
	authorStep        = 2.0
	authorCap         = 6.0
	highCitations     = 200
	citations         = 50
	weakSignalPenalty = 4.0
	landmarkYear      = 1980
	landmarkCitations = 100
	landmarkBonus     = 1.5
)

// Result is the scored evidence for one paper.
type Result struct {
	Score          float64
	Reasons        []string
	Tags           []string
	MatchedDomains int
	CoreMatch      bool
	KnownAuthor    bool
}

// Strong reports whether the paper carries topical evidence on its own: a
// core phrase or at least two domains.
func (r Result) Strong() bool {
	return r.CoreMatch || r.MatchedDomains >= 2
}

type domainMatcher struct {
	id      string
	phrases []phrase
}

// Scorer scores papers against one registry and known-researcher set.
type Scorer struct {
	fallback  string
	minYear   int
	known     map[string]bool
	core      []phrase
	secondary []phrase
	domains   []domainMatcher
}

// New compiles a Scorer. knownResearchers are display names compared
// case-insensitively.
func New(reg *taxonomy.Registry, minYear int, knownResearchers []string) *Scorer {
	s := &Scorer{
		fallback:  reg.Fallback(),
		minYear:   minYear,
		known:     make(map[string]bool, len(knownResearchers)),
		core:      compilePhrases(reg.CorePhrases()),
		secondary: compilePhrases(reg.SecondaryPhrases()),
	}
	for _, name := range knownResearchers {
		if k := researcherKey(name); k != "" {
			s.known[k] = true
		}
	}
	for _, d := range reg.Domains() {
		s.domains = append(s.domains, domainMatcher{id: d.ID, phrases: compilePhrases(d.Terms)})
	}
	return s
}

func researcherKey(name string) string {
	return strings.ToLower(ident.NormalizeName(name))
}

// KnownResearcher reports whether name is in the trusted set.
func (s *Scorer) KnownResearcher(name string) bool {
	return s.known[researcherKey(name)]
}

// ScoringText is the lower-cased concatenation of title, abstract, concept
// and keyword terms that phrases are matched against.
func ScoringText(p types.Paper) string {
	parts := []string{
		p.Title,
		p.Abstract,
		strings.Join(p.Concepts, " "),
		strings.Join(p.Keywords, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Score applies the rules in order: year gate, core phrases, secondary
// phrases, per-domain phrases, known researchers, citation tiers, the
// weak-signal guardrail and the landmark bonus. The total is rounded to
// three decimals; reasons keep rule order; tags are sorted.
func (s *Scorer) Score(p types.Paper) Result {
	if p.Year == 0 || p.Year < s.minYear {
		return Result{
			Score:   BelowMinYearScore,
			Reasons: []string{ReasonBelowMinYear},
			Tags:    []string{},
		}
	}

	text := ScoringText(p)
	var (
		total   float64
		reasons []string
		res     Result
	)
	tags := map[string]bool{}

	for _, ph := range s.core {
		if ph.in(text) {
			res.CoreMatch = true
			break
		}
	}
	if res.CoreMatch {
		total += coreBonus
		reasons = append(reasons, ReasonCoreMatch)
		tags[s.fallback] = true
	}

	if n := countMatches(s.secondary, text); n > 0 {
		pts := math.Min(secondaryCap, secondaryStep*float64(n))
		total += pts
		reasons = append(reasons, fmt.Sprintf("core_variational(+%.1f)", pts))
		tags[s.fallback] = true
	}

	for _, d := range s.domains {
		n := countMatches(d.phrases, text)
		if n == 0 {
			continue
		}
		res.MatchedDomains++
		tags[d.id] = true
		pts := math.Min(domainCap, domainStep*float64(n))
		total += pts
		reasons = append(reasons, fmt.Sprintf("domain_%s(+%.1f)", d.id, pts))
	}

	matched := map[string]bool{}
	for _, a := range p.Authors {
		if s.KnownResearcher(a) {
			matched[a] = true
		}
	}
	if len(matched) > 0 {
		res.KnownAuthor = true
		pts := math.Min(authorCap, authorStep*float64(len(matched)))
		total += pts
		reasons = append(reasons, fmt.Sprintf("known_researcher(+%.1f)", pts))
		tags[TagKnownAuthors] = true
	}

	switch {
	case p.CitedByCount >= highCitations:
		total += 2
		reasons = append(reasons, ReasonHighCited)
	case p.CitedByCount >= citations:
		total++
		reasons = append(reasons, ReasonCited)
	}

	if !res.CoreMatch && res.MatchedDomains < 2 && !res.KnownAuthor {
		total -= weakSignalPenalty
		reasons = append(reasons, ReasonWeakSignal)
	}

	if p.Year < landmarkYear && p.CitedByCount >= landmarkCitations {
		total += landmarkBonus
		reasons = append(reasons, ReasonLandmark)
	}

	res.Score = round(total, 3)
	res.Reasons = reasons
	res.Tags = make([]string, 0, len(tags))
	for t := range tags {
		res.Tags = append(res.Tags, t)
	}
	sort.Strings(res.Tags)
	return res
}

// Accept applies the acceptance gate. Known-author papers need only half
// of minScore; everything else additionally needs a core match or two
// domains.
func Accept(r Result, minScore float64) bool {
	threshold := minScore
	if r.KnownAuthor {
		threshold = minScore * 0.5
	}
	if r.Score < threshold {
		return false
	}
	return r.Strong() || r.KnownAuthor
}

// AssignThread picks the primary thread from a tag set: the registered,
// non-fallback tag with the lowest priority index, else the fallback. The
// result is always a registered domain id.
func AssignThread(reg *taxonomy.Registry, tags []string) string {
	best, bestPri := "", math.MaxInt
	for _, t := range tags {
		if t == reg.Fallback() {
			continue
		}
		if pri, ok := reg.Priority(t); ok && pri < bestPri {
			best, bestPri = t, pri
		}
	}
	if best == "" {
		return reg.Fallback()
	}
	return best
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
