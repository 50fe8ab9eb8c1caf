package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docindex"
	dislog "github.com/fwojciec/docindex/slog"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	category, err := parseCategory(deps, c.Category)
	if err != nil {
		return err
	}
	if c.Limit < 0 {
		fmt.Fprintf(deps.Stderr, "error: --limit must not be negative\n")
		return docindex.Errorf(docindex.EINVALID, "limit must not be negative")
	}

	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	snap, err := loadSite(deps, site)
	if err != nil {
		return err
	}

	var searcher docindex.Searcher = snap.Index
	if deps.Logger != nil {
		searcher = dislog.NewLoggingSearcher(snap.Index, deps.Logger)
	}

	query := strings.Join(c.Query, " ")
	matches := searcher.Search(query)
	if category != docindex.CategoryUnknown {
		matches = docindex.FilterCategory(matches, category)
	}

	if len(matches) == 0 {
		fmt.Fprintf(deps.Stdout, "No matches for %q in %s.\n", query, site.Name)
		return nil
	}

	shown := docindex.Limit(matches, c.Limit)
	fmt.Fprintln(deps.Stdout, docindex.FormatEntries(shown, c.Excerpt))
	if len(shown) < len(matches) {
		fmt.Fprintf(deps.Stdout, "\nShowing %d of %d matches. Use --limit to see more.\n", len(shown), len(matches))
	}

	return nil
}
