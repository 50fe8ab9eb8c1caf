package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var (
	_ docindex.ArtifactSource  = (*ArtifactSource)(nil)
	_ docindex.ArtifactDecoder = (*ArtifactDecoder)(nil)
	_ docindex.ArtifactLocator = (*ArtifactLocator)(nil)
	_ docindex.IndexLoader     = (*IndexLoader)(nil)
	_ docindex.HostLimiter     = (*HostLimiter)(nil)
)

// ArtifactSource is a mock implementation of docindex.ArtifactSource.
type ArtifactSource struct {
	FetchFn func(ctx context.Context, location string) ([]byte, error)
}

func (s *ArtifactSource) Fetch(ctx context.Context, location string) ([]byte, error) {
	return s.FetchFn(ctx, location)
}

// ArtifactDecoder is a mock implementation of docindex.ArtifactDecoder.
type ArtifactDecoder struct {
	DecodeFn func(data []byte) ([]docindex.Entry, error)
}

func (d *ArtifactDecoder) Decode(data []byte) ([]docindex.Entry, error) {
	return d.DecodeFn(data)
}

// ArtifactLocator is a mock implementation of docindex.ArtifactLocator.
type ArtifactLocator struct {
	LocateFn func(html string, pageURL string) (string, error)
}

func (l *ArtifactLocator) Locate(html string, pageURL string) (string, error) {
	return l.LocateFn(html, pageURL)
}

// IndexLoader is a mock implementation of docindex.IndexLoader.
type IndexLoader struct {
	LoadIndexFn func(ctx context.Context, source string) (*docindex.Snapshot, error)
}

func (l *IndexLoader) LoadIndex(ctx context.Context, source string) (*docindex.Snapshot, error) {
	return l.LoadIndexFn(ctx, source)
}

// HostLimiter is a mock implementation of docindex.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
