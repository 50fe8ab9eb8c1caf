package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingSiteService implements docindex.SiteService.
var _ docindex.SiteService = (*LoggingSiteService)(nil)

// LoggingSiteService wraps a SiteService and logs writes. Reads pass
// through silently.
type LoggingSiteService struct {
	next   docindex.SiteService
	logger *slog.Logger
}

// NewLoggingSiteService creates a new LoggingSiteService.
func NewLoggingSiteService(next docindex.SiteService, logger *slog.Logger) *LoggingSiteService {
	return &LoggingSiteService{next: next, logger: logger}
}

func (s *LoggingSiteService) CreateSite(ctx context.Context, site *docindex.Site) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create site",
			"name", site.Name,
			"source", site.Source,
			"id", site.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSite(ctx, site)
}

func (s *LoggingSiteService) FindSiteByID(ctx context.Context, id string) (*docindex.Site, error) {
	return s.next.FindSiteByID(ctx, id)
}

func (s *LoggingSiteService) FindSites(ctx context.Context, filter docindex.SiteFilter) ([]*docindex.Site, error) {
	return s.next.FindSites(ctx, filter)
}

func (s *LoggingSiteService) UpdateSite(ctx context.Context, id string, upd docindex.SiteUpdate) (site *docindex.Site, err error) {
	defer func(begin time.Time) {
		attrs := []any{"id", id}
		if upd.ContentHash != nil {
			attrs = append(attrs, "hash", *upd.ContentHash)
		}
		if upd.EntryCount != nil {
			attrs = append(attrs, "entries", *upd.EntryCount)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("update site", attrs...)
	}(time.Now())
	return s.next.UpdateSite(ctx, id, upd)
}

func (s *LoggingSiteService) DeleteSite(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete site",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSite(ctx, id)
}
