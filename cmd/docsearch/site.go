package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
)

// findSite looks up a site by name, reporting failures on stderr.
func findSite(deps *Dependencies, name string) (*docindex.Site, error) {
	sites, err := deps.Sites.FindSites(deps.Ctx, docindex.SiteFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return nil, err
	}
	if len(sites) == 0 {
		fmt.Fprintf(deps.Stderr, "error: site %q not found. Use 'docsearch list' to see available sites.\n", name)
		return nil, docindex.Errorf(docindex.ENOTFOUND, "site %q not found", name)
	}
	return sites[0], nil
}

// loadSite loads the index of a registered site and warns when the
// artifact changed since the last refresh.
func loadSite(deps *Dependencies, site *docindex.Site) (*docindex.Snapshot, error) {
	snap, err := deps.Loader.LoadIndex(deps.Ctx, site.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: loading %s: %s\n", site.Name, errorText(err))
		return nil, err
	}
	if site.ContentHash != "" && snap.ContentHash != site.ContentHash {
		fmt.Fprintf(deps.Stderr, "note: %s changed since it was last indexed. Run 'docsearch refresh %s' to record it.\n", site.Name, site.Name)
	}
	return snap, nil
}

// parseCategory converts an optional category flag.
func parseCategory(deps *Dependencies, s string) (docindex.Category, error) {
	if s == "" {
		return docindex.CategoryUnknown, nil
	}
	c, err := docindex.ParseCategory(s)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: category must be page or section\n")
		return docindex.CategoryUnknown, docindex.Errorf(docindex.EINVALID, "invalid category %q", s)
	}
	return c, nil
}

// errorText prefers the message of application errors and falls back to
// the full chain for infrastructure failures.
func errorText(err error) string {
	if docindex.ErrorCode(err) == docindex.EINTERNAL {
		return err.Error()
	}
	return docindex.ErrorMessage(err)
}
