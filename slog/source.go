// Package slog provides log/slog decorators for docindex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingSource implements docindex.ArtifactSource.
var _ docindex.ArtifactSource = (*LoggingSource)(nil)

// LoggingSource wraps an ArtifactSource with logging.
type LoggingSource struct {
	next   docindex.ArtifactSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next docindex.ArtifactSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Fetch delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Fetch(ctx context.Context, location string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("fetch",
			"location", location,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Fetch(ctx, location)
}
