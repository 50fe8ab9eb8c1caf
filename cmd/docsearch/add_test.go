package main_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docindex"
	main "github.com/fwojciec/docindex/cmd/docsearch"
	"github.com/fwojciec/docindex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("indexes source and creates site", func(t *testing.T) {
		t.Parallel()

		var created *docindex.Site
		sites := sitesByName()
		sites.CreateSiteFn = func(_ context.Context, s *docindex.Site) error {
			s.ID = "site-123"
			created = s
			return nil
		}
		loader := &mock.IndexLoader{
			LoadIndexFn: func(_ context.Context, _ string) (*docindex.Snapshot, error) {
				return testSnapshot(t, "abc"), nil
			},
		}

		deps, stdout, stderr := newDeps(sites, loader)
		cmd := &main.AddCmd{Name: "toolkit", Source: "https://docs.example.org/dev/"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "toolkit", created.Name)
		assert.Equal(t, "https://docs.example.org/dev/", created.Source)
		assert.Equal(t, "abc", created.ContentHash)
		assert.Equal(t, 4, created.EntryCount)
		assert.Contains(t, stdout.String(), `Added site "toolkit" (site-123)`)
		assert.Contains(t, stdout.String(), "Found index at /srv/toolkit/search_index.js")
		assert.Contains(t, stdout.String(), "4 entries, 3 pages")
		assert.Empty(t, stderr.String())
	})

	t.Run("refuses existing name without force", func(t *testing.T) {
		t.Parallel()

		sites := sitesByName(&docindex.Site{ID: "1", Name: "toolkit"})
		loader := &mock.IndexLoader{
			LoadIndexFn: func(_ context.Context, _ string) (*docindex.Snapshot, error) {
				t.Fatal("LoadIndex should not be called")
				return nil, nil
			},
		}

		deps, _, stderr := newDeps(sites, loader)
		err := (&main.AddCmd{Name: "toolkit", Source: "x"}).Run(deps)

		assert.Equal(t, docindex.ECONFLICT, docindex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("force updates existing site in place", func(t *testing.T) {
		t.Parallel()

		var updatedID string
		var upd docindex.SiteUpdate
		sites := sitesByName(&docindex.Site{ID: "old-id", Name: "toolkit", Source: "old"})
		sites.UpdateSiteFn = func(_ context.Context, id string, u docindex.SiteUpdate) (*docindex.Site, error) {
			updatedID = id
			upd = u
			return &docindex.Site{ID: id, Name: "toolkit", Source: *u.Source, ContentHash: *u.ContentHash, EntryCount: *u.EntryCount}, nil
		}
		sites.DeleteSiteFn = func(_ context.Context, _ string) error {
			t.Fatal("DeleteSite should not be called")
			return nil
		}
		loader := &mock.IndexLoader{
			LoadIndexFn: func(_ context.Context, _ string) (*docindex.Snapshot, error) {
				return testSnapshot(t, "abc"), nil
			},
		}

		deps, stdout, _ := newDeps(sites, loader)
		err := (&main.AddCmd{Name: "toolkit", Source: "x", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "old-id", updatedID)
		assert.Equal(t, "x", *upd.Source)
		assert.Equal(t, "abc", *upd.ContentHash)
		assert.Equal(t, 4, *upd.EntryCount)
		assert.Contains(t, stdout.String(), `Added site "toolkit" (old-id)`)
	})

	t.Run("keeps existing site when update fails", func(t *testing.T) {
		t.Parallel()

		sites := sitesByName(&docindex.Site{ID: "old-id", Name: "toolkit", Source: "old"})
		sites.UpdateSiteFn = func(_ context.Context, _ string, _ docindex.SiteUpdate) (*docindex.Site, error) {
			return nil, docindex.Errorf(docindex.EINTERNAL, "disk full")
		}
		sites.DeleteSiteFn = func(_ context.Context, _ string) error {
			t.Fatal("DeleteSite should not be called")
			return nil
		}
		loader := &mock.IndexLoader{
			LoadIndexFn: func(_ context.Context, _ string) (*docindex.Snapshot, error) {
				return testSnapshot(t, "abc"), nil
			},
		}

		deps, _, stderr := newDeps(sites, loader)
		err := (&main.AddCmd{Name: "toolkit", Source: "x", Force: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "disk full")
	})

	t.Run("keeps existing site when source fails to index", func(t *testing.T) {
		t.Parallel()

		sites := sitesByName(&docindex.Site{ID: "old-id", Name: "toolkit"})
		sites.DeleteSiteFn = func(_ context.Context, _ string) error {
			t.Fatal("DeleteSite should not be called")
			return nil
		}
		loader := &mock.IndexLoader{
			LoadIndexFn: func(_ context.Context, _ string) (*docindex.Snapshot, error) {
				return nil, docindex.Errorf(docindex.EMALFORMED, `"docs" is not a sequence`)
			},
		}

		deps, _, stderr := newDeps(sites, loader)
		err := (&main.AddCmd{Name: "toolkit", Source: "x", Force: true}).Run(deps)

		assert.Equal(t, docindex.EMALFORMED, docindex.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not a sequence")
	})
}
