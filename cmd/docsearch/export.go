package main

import (
	"fmt"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/documenter"
	"github.com/fwojciec/docindex/loader"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	category, err := parseCategory(deps, c.Category)
	if err != nil {
		return err
	}

	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	snap, err := loadSite(deps, site)
	if err != nil {
		return err
	}

	entries := snap.Index.Search(c.Query)
	if category != docindex.CategoryUnknown {
		entries = docindex.FilterCategory(entries, category)
	}

	data, err := documenter.Encode(entries)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	if err := deps.Writer.WriteArtifact(c.Path, data); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %s from %s to %s (%s)\n",
		loader.FormatEntries(len(entries)), site.Name, c.Path, loader.FormatBytes(len(data)))
	return nil
}
