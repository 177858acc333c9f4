// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package taxonomy holds the immutable domain registry: the ordered thread
// list with labels and phrase lists, the core topic phrases, the trusted
// researcher seeds and the discovery keyword queries. A Registry is built
// once at startup and shared read-only by the scorer and the aggregator.
package taxonomy

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

var (
	// ErrUnknownFallback is returned when the fallback thread is not a
	// registered domain.
	ErrUnknownFallback = errors.New("fallback thread is not a registered domain")

	// ErrDuplicateDomain is returned when two domains share an id.
	ErrDuplicateDomain = errors.New("duplicate domain id")

	// ErrNoDomains is returned for a registry file without domains.
	ErrNoDomains = errors.New("no domains configured")
)

// Domain is one topical thread.
type Domain struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Terms       []string `yaml:"terms"`
}

// File is the on-disk registry format. Domains are listed in priority
// order: earlier entries win thread assignment.
type File struct {
	Fallback         string   `yaml:"fallback"`
	CorePhrases      []string `yaml:"core_phrases"`
	SecondaryPhrases []string `yaml:"secondary_phrases"`
	Domains          []Domain `yaml:"domains"`
	AuthorSeeds      []string `yaml:"author_seeds"`
	KeywordQueries   []string `yaml:"keyword_queries"`
}

// Registry is the validated, read-only form of a File. Accessors return
// copies.
type Registry struct {
	file     File
	priority map[string]int
}

// Default returns the built-in calculus of variations registry.
func Default() *Registry {
	r, err := New(defaultFile)
	if err != nil {
		panic(fmt.Sprintf("taxonomy: invalid built-in registry: %v", err))
	}
	return r
}

// New validates f and builds a Registry from a deep copy of it. Terms and
// phrases are lower-cased and trimmed; blank entries are dropped.
func New(f File) (*Registry, error) {
	if len(f.Domains) == 0 {
		return nil, ErrNoDomains
	}
	r := &Registry{priority: make(map[string]int, len(f.Domains))}
	r.file.Fallback = strings.TrimSpace(f.Fallback)
	r.file.CorePhrases = cleanPhrases(f.CorePhrases)
	r.file.SecondaryPhrases = cleanPhrases(f.SecondaryPhrases)
	r.file.AuthorSeeds = cleanNames(f.AuthorSeeds)
	r.file.KeywordQueries = cleanNames(f.KeywordQueries)

	for i, d := range f.Domains {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return nil, fmt.Errorf("domain %d: empty id", i)
		}
		if _, dup := r.priority[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDomain, id)
		}
		r.priority[id] = i
		r.file.Domains = append(r.file.Domains, Domain{
			ID:          id,
			Name:        strings.TrimSpace(d.Name),
			Description: strings.TrimSpace(d.Description),
			Terms:       cleanPhrases(d.Terms),
		})
	}

	if r.file.Fallback == "" {
		r.file.Fallback = r.file.Domains[0].ID
	}
	if _, ok := r.priority[r.file.Fallback]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFallback, r.file.Fallback)
	}
	return r, nil
}

// Parse decodes a YAML registry file.
func Parse(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}
	return New(f)
}

// Load reads a YAML registry file from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading taxonomy: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Domains returns the domains in priority order.
func (r *Registry) Domains() []Domain {
	out := make([]Domain, len(r.file.Domains))
	for i, d := range r.file.Domains {
		d.Terms = append([]string(nil), d.Terms...)
		out[i] = d
	}
	return out
}

// IDs returns the domain ids in priority order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.file.Domains))
	for i, d := range r.file.Domains {
		out[i] = d.ID
	}
	return out
}

// Domain looks up a domain by id.
func (r *Registry) Domain(id string) (Domain, bool) {
	i, ok := r.priority[id]
	if !ok {
		return Domain{}, false
	}
	d := r.file.Domains[i]
	d.Terms = append([]string(nil), d.Terms...)
	return d, true
}

// Priority returns the priority index of a domain; lower wins.
func (r *Registry) Priority(id string) (int, bool) {
	i, ok := r.priority[id]
	return i, ok
}

// Has reports whether id is a registered domain.
func (r *Registry) Has(id string) bool {
	_, ok := r.priority[id]
	return ok
}

// Fallback is the thread assigned when no specific domain tag is present.
func (r *Registry) Fallback() string { return r.file.Fallback }

// CorePhrases are the headline topic phrases.
func (r *Registry) CorePhrases() []string { return append([]string(nil), r.file.CorePhrases...) }

// SecondaryPhrases are the supporting topic phrases.
func (r *Registry) SecondaryPhrases() []string {
	return append([]string(nil), r.file.SecondaryPhrases...)
}

// AuthorSeeds are the trusted researcher display names.
func (r *Registry) AuthorSeeds() []string { return append([]string(nil), r.file.AuthorSeeds...) }

// KeywordQueries are the discovery search queries.
func (r *Registry) KeywordQueries() []string {
	return append([]string(nil), r.file.KeywordQueries...)
}

// File returns a copy of the registry in its on-disk form.
func (r *Registry) File() File {
	return File{
		Fallback:         r.file.Fallback,
		CorePhrases:      r.CorePhrases(),
		SecondaryPhrases: r.SecondaryPhrases(),
		Domains:          r.Domains(),
		AuthorSeeds:      r.AuthorSeeds(),
		KeywordQueries:   r.KeywordQueries(),
	}
}

func cleanPhrases(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cleanNames trims and drops blanks, keeping case and order. Duplicates
// are removed.
func cleanNames(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
