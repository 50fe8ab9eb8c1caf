package main

import "fmt"

// Run executes the pages command.
func (c *PagesCmd) Run(deps *Dependencies) error {
	site, err := findSite(deps, c.Name)
	if err != nil {
		return err
	}

	snap, err := loadSite(deps, site)
	if err != nil {
		return err
	}

	pages := snap.Index.Pages()
	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "Site %s has no pages.\n", site.Name)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Pages of %s (%d total):\n\n", site.Name, len(pages))
	for i, p := range pages {
		location := p.Location
		if location == "" {
			location = "/"
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, p.Title, location)
	}

	return nil
}
