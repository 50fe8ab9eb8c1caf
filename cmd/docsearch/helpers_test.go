package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/docindex"
	main "github.com/fwojciec/docindex/cmd/docsearch"
	"github.com/fwojciec/docindex/mock"
	"github.com/stretchr/testify/require"
)

func testEntries() []docindex.Entry {
	return []docindex.Entry{
		{Location: "", Page: "Home", Title: "Home", Text: "Welcome to the toolkit", Category: docindex.CategoryPage},
		{Location: "saveload/sqlite/", Page: "SQLite", Title: "SQLite", Text: "Load and save SQLite databases", Category: docindex.CategoryPage},
		{Location: "saveload/sqlite/#SQLite", Page: "SQLite", Title: "SQLite", Text: "", Category: docindex.CategorySection},
		{Location: "saveload/csv/", Page: "CSV", Title: "CSV", Text: "Read delimited files", Category: docindex.CategoryPage},
	}
}

func testSnapshot(t *testing.T, hash string) *docindex.Snapshot {
	t.Helper()
	idx, err := docindex.Load(testEntries())
	require.NoError(t, err)
	return &docindex.Snapshot{Index: idx, Source: "/srv/toolkit/search_index.js", ContentHash: hash, Size: 2048}
}

// sitesByName returns a SiteService mock whose FindSites resolves names
// against sites.
func sitesByName(sites ...*docindex.Site) *mock.SiteService {
	return &mock.SiteService{
		FindSitesFn: func(_ context.Context, filter docindex.SiteFilter) ([]*docindex.Site, error) {
			if filter.Name == nil {
				return sites, nil
			}
			for _, s := range sites {
				if s.Name == *filter.Name {
					return []*docindex.Site{s}, nil
				}
			}
			return nil, nil
		},
	}
}

func newDeps(sites docindex.SiteService, loader docindex.IndexLoader) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Sites:  sites,
		Loader: loader,
	}, stdout, stderr
}
