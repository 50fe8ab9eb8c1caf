package docindex

import (
	"strings"

	"golang.org/x/text/cases"
)

// Searcher answers lookup queries over documentation entries.
type Searcher interface {
	// Search returns the entries matching query in collection order.
	// It never fails; an empty query returns every entry.
	Search(query string) []Entry
}

// Prefilter cheaply rules out entries before the exact substring check.
type Prefilter interface {
	// MayContain reports whether the haystack of entry i may contain the
	// case-folded token. It must never return false when it does.
	MayContain(i int, token string) bool
}

// PrefilterBuilder builds a Prefilter over case-folded entry haystacks,
// indexed in collection order.
type PrefilterBuilder func(haystacks []string) Prefilter

// Compile-time interface verification.
var _ Searcher = (*Index)(nil)

// Index is an immutable, ordered collection of entries.
// It is safe for concurrent use once returned by Load.
type Index struct {
	entries   []Entry
	haystacks []string
	prefilter Prefilter
}

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	prefilter PrefilterBuilder
}

// WithPrefilter attaches a prefilter built from the loaded entries.
func WithPrefilter(b PrefilterBuilder) Option {
	return func(c *loadConfig) {
		c.prefilter = b
	}
}

// Load validates records and builds an Index over a private copy of them.
// Any invalid record aborts the whole load with EMALFORMED; no partial
// index is ever returned.
func Load(records []Entry, opts ...Option) (*Index, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	entries := make([]Entry, len(records))
	copy(entries, records)

	fold := cases.Fold()
	haystacks := make([]string, len(entries))
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, Errorf(EMALFORMED, "record %d: %s", i, ErrorMessage(err))
		}
		haystacks[i] = haystack(fold, &entries[i])
	}

	idx := &Index{
		entries:   entries,
		haystacks: haystacks,
	}
	if cfg.prefilter != nil {
		idx.prefilter = cfg.prefilter(haystacks)
	}
	return idx, nil
}

// haystack joins the searchable fields with newlines. Tokens never contain
// whitespace, so a match cannot span two fields.
func haystack(fold cases.Caser, e *Entry) string {
	return fold.String(e.Page) + "\n" + fold.String(e.Title) + "\n" + fold.String(e.Text)
}

// Tokenize splits a query on whitespace and case-folds each token.
func Tokenize(query string) []string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return nil
	}
	fold := cases.Fold()
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = fold.String(f)
	}
	return tokens
}

// Search returns, in collection order, every entry for which each
// whitespace-separated query token is a case-insensitive substring of the
// entry's page, title, or text. A query without tokens returns all entries.
// Substrings are compared over valid UTF-8 after case folding, so a query
// that cuts a multi-byte character in half (e.g. "Stra\xc3" of "Straße")
// does not match.
func (idx *Index) Search(query string) []Entry {
	tokens := Tokenize(query)
	if len(tokens) == 0 {
		return idx.Entries()
	}

	results := make([]Entry, 0)
	for i := range idx.entries {
		if idx.match(i, tokens) {
			results = append(results, idx.entries[i])
		}
	}
	return results
}

func (idx *Index) match(i int, tokens []string) bool {
	for _, tok := range tokens {
		if idx.prefilter != nil && !idx.prefilter.MayContain(i, tok) {
			return false
		}
		if !strings.Contains(idx.haystacks[i], tok) {
			return false
		}
	}
	return true
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// At returns the entry at position i.
func (idx *Index) At(i int) Entry {
	return idx.entries[i]
}

// Entries returns a copy of all entries in collection order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Pages returns the first page-category entry for each distinct location,
// in collection order.
func (idx *Index) Pages() []Entry {
	seen := make(map[string]struct{})
	var pages []Entry
	for _, e := range idx.entries {
		if e.Category != CategoryPage {
			continue
		}
		if _, ok := seen[e.Location]; ok {
			continue
		}
		seen[e.Location] = struct{}{}
		pages = append(pages, e)
	}
	return pages
}
