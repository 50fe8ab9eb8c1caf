package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/google/uuid"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ docindex.SiteService = (*SiteService)(nil)

const siteColumns = "id, name, source, content_hash, entry_count, created_at, updated_at"

// SiteService implements docindex.SiteService using SQLite.
type SiteService struct {
	db *DB
}

// NewSiteService creates a new SiteService.
func NewSiteService(db *DB) *SiteService {
	return &SiteService{db: db}
}

// CreateSite creates a new site.
func (s *SiteService) CreateSite(ctx context.Context, site *docindex.Site) error {
	if err := site.Validate(); err != nil {
		return err
	}

	site.ID = uuid.New().String()
	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sites (id, name, source, content_hash, entry_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, site.ID, site.Name, site.Source, site.ContentHash, site.EntryCount,
		site.CreatedAt.Format(time.RFC3339), site.UpdatedAt.Format(time.RFC3339))

	return conflictError(err, site.Name)
}

// FindSiteByID retrieves a site by ID.
func (s *SiteService) FindSiteByID(ctx context.Context, id string) (*docindex.Site, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+siteColumns+" FROM sites WHERE id = ?", id)

	site, err := scanSite(row)
	if err == sql.ErrNoRows {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "site not found")
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

// FindSites retrieves sites matching the filter, ordered by name.
func (s *SiteService) FindSites(ctx context.Context, filter docindex.SiteFilter) ([]*docindex.Site, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + siteColumns + " FROM sites WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*docindex.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	return sites, rows.Err()
}

// UpdateSite updates an existing site.
func (s *SiteService) UpdateSite(ctx context.Context, id string, upd docindex.SiteUpdate) (*docindex.Site, error) {
	site, err := s.FindSiteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		site.Name = *upd.Name
	}
	if upd.Source != nil {
		site.Source = *upd.Source
	}
	if upd.ContentHash != nil {
		site.ContentHash = *upd.ContentHash
	}
	if upd.EntryCount != nil {
		site.EntryCount = *upd.EntryCount
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}

	site.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE sites
		SET name = ?, source = ?, content_hash = ?, entry_count = ?, updated_at = ?
		WHERE id = ?
	`, site.Name, site.Source, site.ContentHash, site.EntryCount,
		site.UpdatedAt.Format(time.RFC3339), id)
	if err := conflictError(err, site.Name); err != nil {
		return nil, err
	}

	return site, nil
}

// DeleteSite permanently removes a site.
func (s *SiteService) DeleteSite(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docindex.Errorf(docindex.ENOTFOUND, "site not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSite(row scanner) (*docindex.Site, error) {
	var site docindex.Site
	var createdAt, updatedAt string

	if err := row.Scan(&site.ID, &site.Name, &site.Source, &site.ContentHash, &site.EntryCount,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if site.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if site.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &site, nil
}

// conflictError maps unique-constraint violations on the site name to ECONFLICT.
func conflictError(err error, name string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return docindex.Errorf(docindex.ECONFLICT, "site %q already exists", name)
	}
	return err
}
