package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/loader"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	existing, err := deps.Sites.FindSites(deps.Ctx, docindex.SiteFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}
	if len(existing) > 0 && !c.Force {
		fmt.Fprintf(deps.Stderr, "error: site %q already exists. Use --force to replace it.\n", c.Name)
		return docindex.Errorf(docindex.ECONFLICT, "site %q already exists", c.Name)
	}

	// A source that fails to index never replaces the existing site.
	snap, err := deps.Loader.LoadIndex(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	site, err := saveSite(deps, existing, c, snap)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added site %q (%s)\n", site.Name, site.ID)
	if snap.Source != c.Source {
		fmt.Fprintf(deps.Stdout, "  Found index at %s\n", snap.Source)
	}
	fmt.Fprintf(deps.Stdout, "  Indexed %s, %d pages (%s)\n",
		loader.FormatEntries(site.EntryCount), len(snap.Index.Pages()), loader.FormatBytes(snap.Size))

	return nil
}

// saveSite updates an existing site in place or creates a new one.
func saveSite(deps *Dependencies, existing []*docindex.Site, c *AddCmd, snap *docindex.Snapshot) (*docindex.Site, error) {
	count := snap.Index.Len()
	if len(existing) > 0 {
		return deps.Sites.UpdateSite(deps.Ctx, existing[0].ID, docindex.SiteUpdate{
			Source:      &c.Source,
			ContentHash: &snap.ContentHash,
			EntryCount:  &count,
		})
	}

	site := &docindex.Site{
		Name:        c.Name,
		Source:      c.Source,
		ContentHash: snap.ContentHash,
		EntryCount:  count,
	}
	if err := deps.Sites.CreateSite(deps.Ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}
