package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/loader"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Sites     docindex.SiteService
	Loader    docindex.IndexLoader
	Refresher *loader.Refresher
	Writer    ArtifactWriter
	Server    MCPServer
}

// ArtifactWriter stores an encoded artifact at a path.
type ArtifactWriter interface {
	WriteArtifact(path string, data []byte) error
}

// MCPServer serves tool calls until the context ends.
type MCPServer interface {
	Run(ctx context.Context) error
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string        `name:"db" help:"Database path (default ~/.docsearch/docsearch.db)" env:"DOCSEARCH_DB"`
	Verbose bool          `short:"v" help:"Log debug output to stderr"`
	Timeout time.Duration `default:"10s" env:"DOCSEARCH_TIMEOUT" help:"Timeout for each remote request"`

	Add     AddCmd     `cmd:"" help:"Register a documentation site and index it"`
	List    ListCmd    `cmd:"" help:"List registered sites"`
	Delete  DeleteCmd  `cmd:"" help:"Remove a registered site"`
	Search  SearchCmd  `cmd:"" help:"Search a site; every query word must match"`
	Pages   PagesCmd   `cmd:"" help:"List the pages of a site"`
	Refresh RefreshCmd `cmd:"" help:"Reload sites and record changes"`
	Export  ExportCmd  `cmd:"" help:"Write a site's index, or a filtered part of it, to a file"`
	Serve   ServeCmd   `cmd:"" help:"Serve registered sites as MCP tools over stdio"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name   string `arg:"" help:"Site name"`
	Source string `arg:"" help:"Search index URL or path, or a page of the built site"`
	Force  bool   `short:"f" help:"Replace an existing site with the same name"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Site name"`
	Force bool   `help:"Confirm deletion"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Name     string   `arg:"" help:"Site name"`
	Query    []string `arg:"" optional:"" help:"Query words; omit to list every entry"`
	Limit    int      `short:"n" default:"10" help:"Maximum results (0 for all)"`
	Category string   `short:"c" help:"Restrict to page or section entries"`
	Excerpt  int      `default:"160" help:"Excerpt length in characters (0 for full text)"`
}

// PagesCmd is the "pages" subcommand.
type PagesCmd struct {
	Name string `arg:"" help:"Site name"`
}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct {
	Names       []string `arg:"" optional:"" help:"Sites to refresh (default all)"`
	Concurrency int      `short:"c" default:"4" help:"Sites loaded at once"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name     string `arg:"" help:"Site name"`
	Path     string `arg:"" help:"Output file or directory"`
	Query    string `short:"q" help:"Only export entries matching this query"`
	Category string `short:"c" help:"Only export page or section entries"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}
