package mock

import "github.com/fwojciec/docindex"

var _ docindex.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of docindex.Searcher.
type Searcher struct {
	SearchFn func(query string) []docindex.Entry
}

func (s *Searcher) Search(query string) []docindex.Entry {
	return s.SearchFn(query)
}
