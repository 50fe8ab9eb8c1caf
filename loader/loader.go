// Package loader builds search indexes from artifact locations and keeps
// registered sites up to date.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docindex"
)

// Ensure Loader implements docindex.IndexLoader at compile time.
var _ docindex.IndexLoader = (*Loader)(nil)

// Loader fetches an artifact, decodes it, and builds an Index.
// Source and Decoder are required; the rest are optional.
type Loader struct {
	Source  docindex.ArtifactSource
	Decoder docindex.ArtifactDecoder
	// Locator resolves site pages to their artifact. Without it an HTML
	// payload is rejected as malformed.
	Locator     docindex.ArtifactLocator
	RateLimiter docindex.HostLimiter
	RetryDelays []time.Duration
	Options     []docindex.Option
	Logf        LogFunc
}

// LoadIndex fetches the artifact at source and indexes it. When source is
// a rendered site page the artifact it references is loaded instead.
func (l *Loader) LoadIndex(ctx context.Context, source string) (*docindex.Snapshot, error) {
	data, err := l.fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	location := source
	if looksLikeHTML(data) {
		if l.Locator == nil {
			return nil, docindex.Errorf(docindex.EMALFORMED, "%s is an HTML page, not a search index", source)
		}
		location, err = l.Locator.Locate(string(data), source)
		if err != nil {
			return nil, err
		}
		if data, err = l.fetch(ctx, location); err != nil {
			return nil, err
		}
	}

	entries, err := l.Decoder.Decode(data)
	if err != nil {
		return nil, err
	}

	idx, err := docindex.Load(entries, l.Options...)
	if err != nil {
		return nil, err
	}

	return &docindex.Snapshot{
		Index:       idx,
		Source:      location,
		ContentHash: ComputeHash(data),
		Size:        len(data),
	}, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	if l.RateLimiter != nil {
		if host := Host(location); host != "" {
			if err := l.RateLimiter.Wait(ctx, host); err != nil {
				return nil, err
			}
		}
	}
	return fetchWithRetry(ctx, l.Source, location, l.RetryDelays, l.Logf)
}

// ComputeHash returns the hex xxhash of data.
func ComputeHash(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

var htmlPrefixes = [][]byte{
	[]byte("<!doctype html"),
	[]byte("<html"),
	[]byte("<head"),
	[]byte("<!--"),
}

// looksLikeHTML reports whether data starts like an HTML document.
func looksLikeHTML(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	data = bytes.TrimLeft(data, " \t\r\n")
	head := bytes.ToLower(data[:min(len(data), 16)])
	for _, p := range htmlPrefixes {
		if bytes.HasPrefix(head, p) {
			return true
		}
	}
	return false
}
