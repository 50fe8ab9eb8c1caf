package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/loader"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	var sites []*docindex.Site
	if len(c.Names) == 0 {
		all, err := deps.Sites.FindSites(deps.Ctx, docindex.SiteFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
			return err
		}
		sites = all
	} else {
		for _, name := range c.Names {
			site, err := findSite(deps, name)
			if err != nil {
				return err
			}
			sites = append(sites, site)
		}
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites found. Use 'docsearch add' to register one.")
		return nil
	}

	if c.Concurrency > 0 {
		deps.Refresher.Concurrency = c.Concurrency
	}

	progress := func(event loader.ProgressEvent) {
		if event.Type == loader.ProgressStarted {
			fmt.Fprintf(deps.Stdout, "Refreshing %d sites\n", event.Total)
		}
	}

	results, err := deps.Refresher.Refresh(deps.Ctx, sites, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var failed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(deps.Stderr, "  %s: failed: %s\n", res.Site.Name, errorText(res.Err))
		case res.Changed:
			fmt.Fprintf(deps.Stdout, "  %s: updated (%s)\n", res.Site.Name, loader.FormatEntries(res.Entries))
		default:
			fmt.Fprintf(deps.Stdout, "  %s: unchanged\n", res.Site.Name)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sites failed to refresh", failed, len(results))
	}
	return nil
}
