// Package bloom provides a trigram prefilter for index search using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/docindex"
)

// DefaultFalsePositiveRate is used when a non-positive rate is given.
const DefaultFalsePositiveRate = 0.01

// gram is the n-gram width in bytes.
const gram = 3

// Ensure TrigramFilter implements docindex.Prefilter at compile time.
var _ docindex.Prefilter = (*TrigramFilter)(nil)

// TrigramFilter keeps one Bloom filter of byte trigrams per entry haystack.
// A token whose trigrams are not all present cannot be a substring of the
// haystack, so the exact check can be skipped. Tokens shorter than a
// trigram always pass.
type TrigramFilter struct {
	filters []*bloom.BloomFilter
}

// NewTrigramPrefilter returns a builder for docindex.WithPrefilter.
func NewTrigramPrefilter(fpRate float64) docindex.PrefilterBuilder {
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return func(haystacks []string) docindex.Prefilter {
		return NewTrigramFilter(haystacks, fpRate)
	}
}

// NewTrigramFilter builds filters for each haystack.
func NewTrigramFilter(haystacks []string, fpRate float64) *TrigramFilter {
	filters := make([]*bloom.BloomFilter, len(haystacks))
	for i, h := range haystacks {
		n := len(h) - gram + 1
		if n < 1 {
			n = 1
		}
		f := bloom.NewWithEstimates(uint(n), fpRate)
		for j := 0; j+gram <= len(h); j++ {
			f.AddString(h[j : j+gram])
		}
		filters[i] = f
	}
	return &TrigramFilter{filters: filters}
}

// MayContain reports whether every trigram of token is present for entry i.
func (f *TrigramFilter) MayContain(i int, token string) bool {
	if len(token) < gram {
		return true
	}
	bf := f.filters[i]
	for j := 0; j+gram <= len(token); j++ {
		if !bf.TestString(token[j : j+gram]) {
			return false
		}
	}
	return true
}

// EstimatedCount returns the approximate number of distinct trigrams
// recorded for entry i.
func (f *TrigramFilter) EstimatedCount(i int) uint {
	return uint(f.filters[i].ApproximatedSize())
}
