// Package fs provides file-based artifact storage.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docindex"
)

// ArtifactName is the file a generated site keeps its search index in.
const ArtifactName = "search_index.js"

// Ensure Source implements docindex.ArtifactSource at compile time.
var _ docindex.ArtifactSource = (*Source)(nil)

// Source reads artifacts from the local filesystem.
type Source struct{}

// NewSource creates a new Source.
func NewSource() *Source {
	return &Source{}
}

// Fetch reads the artifact at location, which may be a plain path or a
// file:// URL. A directory is treated as a built site and its
// search_index.js is read instead.
func (s *Source) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := PathFromLocation(location)
	if path == "" {
		return nil, docindex.Errorf(docindex.EINVALID, "empty path")
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "no artifact at %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, ArtifactName)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docindex.Errorf(docindex.ENOTFOUND, "no artifact at %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// PathFromLocation strips a file:// scheme from location.
// Example: file:///srv/docs/search_index.js → /srv/docs/search_index.js
func PathFromLocation(location string) string {
	return strings.TrimPrefix(location, "file://")
}
