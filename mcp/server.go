// Package mcp exposes registered documentation sites as Model Context
// Protocol tools over stdio.
package mcp

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/docindex"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/singleflight"
)

//go:embed instructions.md
var instructions string

const (
	serverName = "docsearch"

	// DefaultLimit caps search results when the caller does not.
	DefaultLimit = 20

	// DefaultExcerptLen is the number of runes of entry text in results.
	DefaultExcerptLen = 240
)

// Server answers tool calls against registered sites. Indexes are loaded
// on first use and kept until the site's stored content hash changes.
type Server struct {
	Sites      docindex.SiteService
	Loader     docindex.IndexLoader
	Logger     *slog.Logger
	Version    string
	ExcerptLen int

	mu    sync.RWMutex
	cache map[string]*cachedIndex
	group singleflight.Group
}

type cachedIndex struct {
	hash  string
	index *docindex.Index
}

// NewServer creates a new Server.
func NewServer(sites docindex.SiteService, loader docindex.IndexLoader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		Sites:      sites,
		Loader:     loader,
		Logger:     logger,
		Version:    "dev",
		ExcerptLen: DefaultExcerptLen,
		cache:      make(map[string]*cachedIndex),
	}
}

// MCPServer builds the protocol server with every tool registered.
func (s *Server) MCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: s.Version,
		},
		&mcp.ServerOptions{Instructions: instructions},
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_docs",
			Description: "Search a registered documentation site. Every query word must appear in the page name, heading, or text of a result (case-insensitive). Results keep site order.",
		},
		s.SearchDocs,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_sites",
			Description: "List registered documentation sites with their entry counts.",
		},
		s.ListSites,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_pages",
			Description: "List the pages of a registered documentation site in site order.",
		},
		s.ListPages,
	)

	return server
}

// Run serves tools over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("mcp server starting", "name", serverName, "version", s.Version)
	return s.MCPServer().Run(ctx, &mcp.StdioTransport{})
}

// index returns the index for the named site, loading it if the cache is
// empty or stale. Concurrent loads of the same site share one fetch.
func (s *Server) index(ctx context.Context, name string) (*docindex.Site, *docindex.Index, error) {
	sites, err := s.Sites.FindSites(ctx, docindex.SiteFilter{Name: &name})
	if err != nil {
		return nil, nil, err
	}
	if len(sites) == 0 {
		return nil, nil, docindex.Errorf(docindex.ENOTFOUND, "site %q not found", name)
	}
	site := sites[0]

	s.mu.RLock()
	cached, ok := s.cache[site.ID]
	s.mu.RUnlock()
	if ok && cached.hash == site.ContentHash {
		return site, cached.index, nil
	}

	// The load outlives any one caller; each caller stops waiting when its
	// own ctx ends.
	ch := s.group.DoChan(site.ID, func() (any, error) {
		s.mu.RLock()
		cached, ok := s.cache[site.ID]
		s.mu.RUnlock()
		if ok && cached.hash == site.ContentHash {
			return cached, nil
		}

		snap, err := s.Loader.LoadIndex(context.WithoutCancel(ctx), site.Source)
		if err != nil {
			return nil, err
		}
		// Keyed by the stored hash, not the snapshot's.
		entry := &cachedIndex{hash: site.ContentHash, index: snap.Index}
		s.mu.Lock()
		s.cache[site.ID] = entry
		s.mu.Unlock()
		return entry, nil
	})

	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", name, res.Err)
		}
		return site, res.Val.(*cachedIndex).index, nil
	}
}
