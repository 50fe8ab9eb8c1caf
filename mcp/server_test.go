package mcp_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/mcp"
	"github.com/fwojciec/docindex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteEntries() []docindex.Entry {
	return []docindex.Entry{
		{Location: "", Page: "Home", Title: "Home", Text: "Welcome to the toolkit", Category: docindex.CategoryPage},
		{Location: "saveload/sqlite/", Page: "SQLite", Title: "SQLite", Text: "Load and save SQLite databases", Category: docindex.CategoryPage},
		{Location: "saveload/sqlite/#SQLite", Page: "SQLite", Title: "SQLite", Text: "", Category: docindex.CategorySection},
		{Location: "saveload/csv/", Page: "CSV", Title: "CSV", Text: "Read delimited files", Category: docindex.CategoryPage},
	}
}

type fixture struct {
	server *mcp.Server
	loads  *atomic.Int32
	sites  []*docindex.Site
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		loads: &atomic.Int32{},
		sites: []*docindex.Site{
			{ID: "1", Name: "toolkit", Source: "/srv/toolkit/search_index.js", ContentHash: "h1", EntryCount: 4},
			{ID: "2", Name: "empty", Source: "/srv/empty/search_index.js", ContentHash: "h2"},
		},
	}

	sites := &mock.SiteService{
		FindSitesFn: func(_ context.Context, filter docindex.SiteFilter) ([]*docindex.Site, error) {
			if filter.Name == nil {
				return f.sites, nil
			}
			for _, s := range f.sites {
				if s.Name == *filter.Name {
					return []*docindex.Site{s}, nil
				}
			}
			return nil, nil
		},
	}

	loader := &mock.IndexLoader{
		LoadIndexFn: func(_ context.Context, source string) (*docindex.Snapshot, error) {
			f.loads.Add(1)
			var entries []docindex.Entry
			if source == "/srv/toolkit/search_index.js" {
				entries = siteEntries()
			}
			idx, err := docindex.Load(entries)
			if err != nil {
				return nil, err
			}
			return &docindex.Snapshot{Index: idx, Source: source}, nil
		},
	}

	f.server = mcp.NewServer(sites, loader, nil)
	return f
}

func TestServer_SearchDocs(t *testing.T) {
	t.Parallel()

	t.Run("returns matches in site order", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, out, err := f.server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "toolkit", Query: "sqlite"})

		require.NoError(t, err)
		assert.Equal(t, 2, out.Total)
		require.Len(t, out.Results, 2)
		assert.Equal(t, "saveload/sqlite/", out.Results[0].Location)
		assert.Equal(t, "page", out.Results[0].Category)
		assert.Equal(t, "Load and save SQLite databases", out.Results[0].Excerpt)
		assert.Equal(t, "section", out.Results[1].Category)
	})

	t.Run("empty query returns every entry", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, out, err := f.server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "toolkit"})

		require.NoError(t, err)
		assert.Equal(t, 4, out.Total)
		assert.Len(t, out.Results, 4)
	})

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, out, err := f.server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "toolkit", Query: "sqlite", Category: "section"})

		require.NoError(t, err)
		require.Len(t, out.Results, 1)
		assert.Equal(t, "saveload/sqlite/#SQLite", out.Results[0].Location)
	})

	t.Run("applies limit after counting total", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, out, err := f.server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "toolkit", Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 4, out.Total)
		require.Len(t, out.Results, 1)
		assert.Equal(t, "Home", out.Results[0].Page)
	})

	t.Run("returns empty results for no match", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, out, err := f.server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "toolkit", Query: "parquet"})

		require.NoError(t, err)
		assert.Equal(t, 0, out.Total)
		assert.NotNil(t, out.Results)
		assert.Empty(t, out.Results)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx := context.Background()

		_, _, err := f.server.SearchDocs(ctx, nil, mcp.SearchDocsInput{})
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))

		_, _, err = f.server.SearchDocs(ctx, nil, mcp.SearchDocsInput{Site: "toolkit", Limit: -1})
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))

		_, _, err = f.server.SearchDocs(ctx, nil, mcp.SearchDocsInput{Site: "toolkit", Category: "chapter"})
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown site", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, _, err := f.server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "missing", Query: "x"})

		assert.Equal(t, docindex.ENOTFOUND, docindex.ErrorCode(err))
	})

	t.Run("loads each site once", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _, _ = f.server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "toolkit", Query: "csv"})
			}()
		}
		wg.Wait()

		_, out, err := f.server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "toolkit", Query: "csv"})
		require.NoError(t, err)
		assert.Len(t, out.Results, 1)
		assert.Equal(t, int32(1), f.loads.Load())
	})

	t.Run("finishes load when first caller cancels", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		loaderErr := make(chan error, 2)
		site := &docindex.Site{ID: "1", Name: "toolkit", Source: "/srv/toolkit/search_index.js", ContentHash: "h1"}

		sites := &mock.SiteService{
			FindSitesFn: func(_ context.Context, _ docindex.SiteFilter) ([]*docindex.Site, error) {
				return []*docindex.Site{site}, nil
			},
		}
		var once sync.Once
		loader := &mock.IndexLoader{
			LoadIndexFn: func(ctx context.Context, source string) (*docindex.Snapshot, error) {
				once.Do(func() { close(started) })
				<-release
				loaderErr <- ctx.Err()
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				idx, err := docindex.Load(siteEntries())
				if err != nil {
					return nil, err
				}
				return &docindex.Snapshot{Index: idx, Source: source}, nil
			},
		}
		server := mcp.NewServer(sites, loader, nil)

		ctx, cancel := context.WithCancel(context.Background())
		firstErr := make(chan error, 1)
		go func() {
			_, _, err := server.SearchDocs(ctx, nil, mcp.SearchDocsInput{Site: "toolkit"})
			firstErr <- err
		}()
		<-started

		cancel()
		assert.ErrorIs(t, <-firstErr, context.Canceled)

		type result struct {
			out mcp.SearchDocsOutput
			err error
		}
		second := make(chan result, 1)
		go func() {
			_, out, err := server.SearchDocs(context.Background(), nil, mcp.SearchDocsInput{Site: "toolkit"})
			second <- result{out, err}
		}()
		close(release)

		res := <-second
		require.NoError(t, res.err)
		assert.Equal(t, 4, res.out.Total)
		assert.NoError(t, <-loaderErr, "load must not inherit the caller's cancellation")
	})

	t.Run("reloads after stored hash changes", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		ctx := context.Background()

		_, _, err := f.server.SearchDocs(ctx, nil, mcp.SearchDocsInput{Site: "toolkit"})
		require.NoError(t, err)
		require.Equal(t, int32(1), f.loads.Load())

		f.sites[0] = &docindex.Site{ID: "1", Name: "toolkit", Source: f.sites[0].Source, ContentHash: "h1-new"}

		_, _, err = f.server.SearchDocs(ctx, nil, mcp.SearchDocsInput{Site: "toolkit"})
		require.NoError(t, err)
		assert.Equal(t, int32(2), f.loads.Load())
	})
}

func TestServer_ListSites(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, out, err := f.server.ListSites(context.Background(), nil, mcp.ListSitesInput{})

	require.NoError(t, err)
	require.Len(t, out.Sites, 2)
	assert.Equal(t, mcp.SiteInfo{Name: "toolkit", Source: "/srv/toolkit/search_index.js", Entries: 4}, out.Sites[0])
	assert.Equal(t, int32(0), f.loads.Load(), "listing must not load indexes")
}

func TestServer_ListPages(t *testing.T) {
	t.Parallel()

	t.Run("returns one entry per page location", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, out, err := f.server.ListPages(context.Background(), nil, mcp.ListPagesInput{Site: "toolkit"})

		require.NoError(t, err)
		require.Len(t, out.Pages, 3)
		assert.Equal(t, "Home", out.Pages[0].Page)
		assert.Equal(t, "SQLite", out.Pages[1].Page)
		assert.Equal(t, "CSV", out.Pages[2].Page)
	})

	t.Run("returns empty list for empty site", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, out, err := f.server.ListPages(context.Background(), nil, mcp.ListPagesInput{Site: "empty"})

		require.NoError(t, err)
		assert.Empty(t, out.Pages)
	})

	t.Run("requires site", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)

		_, _, err := f.server.ListPages(context.Background(), nil, mcp.ListPagesInput{})

		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})
}

func TestServer_PageResults(t *testing.T) {
	t.Parallel()

	site := &docindex.Site{ID: "1", Name: "toolkit", Source: "/srv/toolkit/search_index.js"}
	sites := &mock.SiteService{
		FindSitesFn: func(_ context.Context, _ docindex.SiteFilter) ([]*docindex.Site, error) {
			return []*docindex.Site{site}, nil
		},
	}
	loader := &mock.IndexLoader{
		LoadIndexFn: func(_ context.Context, source string) (*docindex.Snapshot, error) {
			idx, err := docindex.Load([]docindex.Entry{
				{Location: "saveload/sqlite/", Page: "SQLite", Title: "SQLite", Text: `EditURL="/Common/src/transformers/saveload/sqlite.jl"`, Category: docindex.CategoryPage},
				{Location: "saveload/sqlite/#SQLite", Page: "SQLite", Title: "SQLite", Text: "", Category: docindex.CategorySection},
				{Location: "saveload/sqlite/", Page: "SQLite", Title: "SQLite", Text: "Main.DataToolkitCommon.tdocs(:sqlite)", Category: docindex.CategoryPage},
			})
			if err != nil {
				return nil, err
			}
			return &docindex.Snapshot{Index: idx, Source: source}, nil
		},
	}
	server := mcp.NewServer(sites, loader, nil)
	ctx := context.Background()

	_, search, err := server.SearchDocs(ctx, nil, mcp.SearchDocsInput{Site: "toolkit", Category: "page"})
	require.NoError(t, err)
	assert.Len(t, search.Results, 2, "page category keeps every page record")

	_, pages, err := server.ListPages(ctx, nil, mcp.ListPagesInput{Site: "toolkit"})
	require.NoError(t, err)
	require.Len(t, pages.Pages, 1)
	assert.Equal(t, "saveload/sqlite/", pages.Pages[0].Location)
}

func TestServer_MCPServer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	assert.NotNil(t, f.server.MCPServer())
}
