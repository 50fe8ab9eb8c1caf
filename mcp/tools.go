package mcp

import (
	"context"

	"github.com/fwojciec/docindex"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchDocsInput defines input for the search_docs tool.
type SearchDocsInput struct {
	Site     string `json:"site" jsonschema:"Name of a registered site (see list_sites)"`
	Query    string `json:"query" jsonschema:"Space-separated keywords; all must match. Empty returns every entry"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of results (optional, defaults to 20)"`
	Category string `json:"category,omitempty" jsonschema:"Restrict to page or section entries (optional)"`
}

// SearchDocsOutput defines output for the search_docs tool.
type SearchDocsOutput struct {
	Site    string   `json:"site"`
	Query   string   `json:"query"`
	Total   int      `json:"total"`
	Results []Result `json:"results"`
}

// Result is one matching entry. Category is carried as its wire name.
type Result struct {
	Location string `json:"location"`
	Page     string `json:"page"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// ListSitesInput defines input for the list_sites tool.
type ListSitesInput struct{}

// ListSitesOutput defines output for the list_sites tool.
type ListSitesOutput struct {
	Sites []SiteInfo `json:"sites"`
}

// SiteInfo describes one registered site.
type SiteInfo struct {
	Name    string `json:"name"`
	Source  string `json:"source"`
	Entries int    `json:"entries"`
}

// ListPagesInput defines input for the list_pages tool.
type ListPagesInput struct {
	Site string `json:"site" jsonschema:"Name of a registered site (see list_sites)"`
}

// ListPagesOutput defines output for the list_pages tool.
type ListPagesOutput struct {
	Site  string   `json:"site"`
	Pages []Result `json:"pages"`
}

// SearchDocs handles the search_docs tool.
func (s *Server) SearchDocs(ctx context.Context, _ *mcp.CallToolRequest, input SearchDocsInput) (*mcp.CallToolResult, SearchDocsOutput, error) {
	if input.Site == "" {
		return nil, SearchDocsOutput{}, docindex.Errorf(docindex.EINVALID, "site is required")
	}
	if input.Limit < 0 {
		return nil, SearchDocsOutput{}, docindex.Errorf(docindex.EINVALID, "limit must not be negative")
	}

	var category docindex.Category
	if input.Category != "" {
		c, err := docindex.ParseCategory(input.Category)
		if err != nil {
			return nil, SearchDocsOutput{}, docindex.Errorf(docindex.EINVALID, "category must be page or section")
		}
		category = c
	}

	_, idx, err := s.index(ctx, input.Site)
	if err != nil {
		return nil, SearchDocsOutput{}, err
	}

	matches := idx.Search(input.Query)
	if category != docindex.CategoryUnknown {
		matches = docindex.FilterCategory(matches, category)
	}
	total := len(matches)

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	matches = docindex.Limit(matches, limit)

	s.Logger.Debug("search_docs", "site", input.Site, "query", input.Query, "total", total)

	return nil, SearchDocsOutput{
		Site:    input.Site,
		Query:   input.Query,
		Total:   total,
		Results: s.results(matches),
	}, nil
}

// ListSites handles the list_sites tool.
func (s *Server) ListSites(ctx context.Context, _ *mcp.CallToolRequest, _ ListSitesInput) (*mcp.CallToolResult, ListSitesOutput, error) {
	sites, err := s.Sites.FindSites(ctx, docindex.SiteFilter{})
	if err != nil {
		return nil, ListSitesOutput{}, err
	}

	out := ListSitesOutput{Sites: make([]SiteInfo, 0, len(sites))}
	for _, site := range sites {
		out.Sites = append(out.Sites, SiteInfo{
			Name:    site.Name,
			Source:  site.Source,
			Entries: site.EntryCount,
		})
	}
	return nil, out, nil
}

// ListPages handles the list_pages tool.
func (s *Server) ListPages(ctx context.Context, _ *mcp.CallToolRequest, input ListPagesInput) (*mcp.CallToolResult, ListPagesOutput, error) {
	if input.Site == "" {
		return nil, ListPagesOutput{}, docindex.Errorf(docindex.EINVALID, "site is required")
	}

	_, idx, err := s.index(ctx, input.Site)
	if err != nil {
		return nil, ListPagesOutput{}, err
	}

	pages := idx.Pages()
	out := ListPagesOutput{Site: input.Site, Pages: make([]Result, 0, len(pages))}
	for _, p := range pages {
		out.Pages = append(out.Pages, Result{
			Location: p.Location,
			Page:     p.Page,
			Title:    p.Title,
			Category: p.Category.String(),
		})
	}
	return nil, out, nil
}

func (s *Server) results(entries []docindex.Entry) []Result {
	out := make([]Result, 0, len(entries))
	for _, e := range entries {
		out = append(out, Result{
			Location: e.Location,
			Page:     e.Page,
			Title:    e.Title,
			Category: e.Category.String(),
			Excerpt:  docindex.Excerpt(e.Text, s.ExcerptLen),
		})
	}
	return out
}
