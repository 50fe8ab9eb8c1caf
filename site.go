package docindex

import (
	"context"
	"time"
)

// Site represents a named documentation site whose search-index artifact
// can be loaded on demand.
type Site struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"`
	ContentHash string    `json:"contentHash"`
	EntryCount  int       `json:"entryCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the site contains invalid fields.
func (s *Site) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	if s.Source == "" {
		return Errorf(EINVALID, "site source required")
	}
	if s.EntryCount < 0 {
		return Errorf(EINVALID, "site entry count must not be negative")
	}
	return nil
}

// SiteService represents a service for managing sites.
type SiteService interface {
	// CreateSite creates a new site.
	// Returns ECONFLICT if a site with the same name exists.
	CreateSite(ctx context.Context, site *Site) error

	// FindSiteByID retrieves a site by ID.
	// Returns ENOTFOUND if site does not exist.
	FindSiteByID(ctx context.Context, id string) (*Site, error)

	// FindSites retrieves sites matching the filter, ordered by name.
	FindSites(ctx context.Context, filter SiteFilter) ([]*Site, error)

	// UpdateSite updates an existing site.
	// Returns ENOTFOUND if site does not exist.
	UpdateSite(ctx context.Context, id string, upd SiteUpdate) (*Site, error)

	// DeleteSite permanently removes a site.
	// Returns ENOTFOUND if site does not exist.
	DeleteSite(ctx context.Context, id string) error
}

// SiteFilter represents a filter for FindSites.
type SiteFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SiteUpdate represents fields that can be updated on a site.
type SiteUpdate struct {
	Name        *string `json:"name"`
	Source      *string `json:"source"`
	ContentHash *string `json:"contentHash"`
	EntryCount  *int    `json:"entryCount"`
}
