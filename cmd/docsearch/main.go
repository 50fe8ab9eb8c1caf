package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/bloom"
	"github.com/fwojciec/docindex/documenter"
	"github.com/fwojciec/docindex/fs"
	"github.com/fwojciec/docindex/goquery"
	dihttp "github.com/fwojciec/docindex/http"
	"github.com/fwojciec/docindex/loader"
	"github.com/fwojciec/docindex/mcp"
	dislog "github.com/fwojciec/docindex/slog"
	"github.com/fwojciec/docindex/sqlite"
)

// version is set at build time with -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Source used to fetch artifacts. Defaults to HTTP plus local files.
	Source docindex.ArtifactSource

	// Services for end-to-end testing.
	SiteService docindex.SiteService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsearch"),
		kong.Description("Search static documentation sites offline."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsearch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)
	deps.Logger = logger

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if m.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(m.DBPath), 0755); err != nil {
			fmt.Fprintf(stderr, "Hint: Set DOCSEARCH_DB to use a different database path\n")
			return fmt.Errorf("failed to create database directory for %q: %w", m.DBPath, err)
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCSEARCH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.SiteService = dislog.NewLoggingSiteService(sqlite.NewSiteService(m.DB), logger)
	deps.Sites = m.SiteService

	source := m.Source
	if source == nil {
		source = &loader.Router{
			Remote: dihttp.NewFetcher(dihttp.WithTimeout(cli.Timeout)),
			Local:  fs.NewSource(),
		}
	}

	ldr := &loader.Loader{
		Source:      dislog.NewLoggingSource(source, logger),
		Decoder:     documenter.NewDecoder(),
		Locator:     goquery.NewLocator(),
		RateLimiter: loader.NewHostLimiter(loader.DefaultRequestsPerSecond, 1),
		RetryDelays: loader.DefaultRetryDelays(),
		Options: []docindex.Option{
			docindex.WithPrefilter(bloom.NewTrigramPrefilter(bloom.DefaultFalsePositiveRate)),
		},
		Logf: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}
	deps.Loader = dislog.NewLoggingIndexLoader(ldr, logger)

	deps.Refresher = &loader.Refresher{
		Loader:      deps.Loader,
		Sites:       deps.Sites,
		Concurrency: cli.Refresh.Concurrency,
	}
	deps.Writer = fs.NewWriter()

	server := mcp.NewServer(deps.Sites, deps.Loader, logger)
	server.Version = version
	deps.Server = server

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("DOCSEARCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docsearch.db"
	}
	return filepath.Join(home, ".docsearch", "docsearch.db")
}
