package loader

import (
	"context"
	"fmt"

	"github.com/fwojciec/docindex"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many sites are loaded at once.
const DefaultConcurrency = 4

// Refresher reloads registered sites and records their new content hash.
type Refresher struct {
	Loader      docindex.IndexLoader
	Sites       docindex.SiteService
	Concurrency int
}

// RefreshResult is the outcome of refreshing one site.
type RefreshResult struct {
	Site    *docindex.Site
	Changed bool
	Entries int
	Err     error
}

// ProgressEvent reports progress during a refresh.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Site      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting refresh progress.
type ProgressFunc func(event ProgressEvent)

type loadResult struct {
	position int
	snapshot *docindex.Snapshot
	err      error
}

// Refresh loads every site concurrently and persists the hash and entry
// count of those that loaded. A site that fails to load keeps its stored
// record. Results are returned in the order of sites.
func (r *Refresher) Refresh(ctx context.Context, sites []*docindex.Site, progress ProgressFunc) ([]RefreshResult, error) {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sites)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan loadResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, site := range sites {
			g.Go(func() error {
				snap, err := r.Loader.LoadIndex(gctx, site.Source)
				resultCh <- loadResult{position: i, snapshot: snap, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	loaded := make([]loadResult, total)
	var completed int
	for res := range resultCh {
		completed++
		loaded[res.position] = res

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Site:      sites[res.position].Name,
		}
		if res.err != nil {
			event.Type = ProgressFailed
			event.Error = res.err
		}
		progress(event)
	}

	results := make([]RefreshResult, total)
	for i, site := range sites {
		results[i] = r.record(ctx, site, loaded[i])
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return results, ctx.Err()
}

// record persists a successful load and describes the outcome.
func (r *Refresher) record(ctx context.Context, site *docindex.Site, res loadResult) RefreshResult {
	if res.err != nil {
		return RefreshResult{Site: site, Err: res.err}
	}

	snap := res.snapshot
	result := RefreshResult{
		Site:    site,
		Changed: snap.ContentHash != site.ContentHash,
		Entries: snap.Index.Len(),
	}
	if !result.Changed && result.Entries == site.EntryCount {
		return result
	}

	updated, err := r.Sites.UpdateSite(ctx, site.ID, docindex.SiteUpdate{
		ContentHash: &snap.ContentHash,
		EntryCount:  &result.Entries,
	})
	if err != nil {
		result.Err = fmt.Errorf("save %s: %w", site.Name, err)
		return result
	}
	result.Site = updated
	return result
}
