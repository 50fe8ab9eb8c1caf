package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingIndexLoader implements docindex.IndexLoader.
var _ docindex.IndexLoader = (*LoggingIndexLoader)(nil)

// LoggingIndexLoader wraps an IndexLoader with logging.
type LoggingIndexLoader struct {
	next   docindex.IndexLoader
	logger *slog.Logger
}

// NewLoggingIndexLoader creates a new LoggingIndexLoader.
func NewLoggingIndexLoader(next docindex.IndexLoader, logger *slog.Logger) *LoggingIndexLoader {
	return &LoggingIndexLoader{next: next, logger: logger}
}

// LoadIndex delegates to the wrapped loader and logs the resulting index size.
func (l *LoggingIndexLoader) LoadIndex(ctx context.Context, source string) (snap *docindex.Snapshot, err error) {
	defer func(begin time.Time) {
		attrs := []any{"source", source}
		if snap != nil {
			attrs = append(attrs,
				"artifact", snap.Source,
				"entries", snap.Index.Len(),
				"hash", snap.ContentHash,
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		l.logger.Info("load index", attrs...)
	}(time.Now())
	return l.next.LoadIndex(ctx, source)
}

// Ensure LoggingSearcher implements docindex.Searcher.
var _ docindex.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with debug logging.
type LoggingSearcher struct {
	next   docindex.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next docindex.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the match count.
func (s *LoggingSearcher) Search(query string) (results []docindex.Entry) {
	defer func(begin time.Time) {
		s.logger.Debug("search",
			"query", query,
			"matches", len(results),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Search(query)
}
