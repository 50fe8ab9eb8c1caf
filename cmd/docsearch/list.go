package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/loader"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx, docindex.SiteFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites found. Use 'docsearch add' to register one.")
		return nil
	}

	for _, s := range sites {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.Name, loader.FormatEntries(s.EntryCount), loader.TruncateLocation(s.Source, 60))
	}

	return nil
}
