package loader

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/docindex"
)

var _ docindex.ArtifactSource = (*Router)(nil)

// Router sends http and https locations to Remote and everything else,
// including file:// URLs and plain paths, to Local.
type Router struct {
	Remote docindex.ArtifactSource
	Local  docindex.ArtifactSource
}

// Fetch dispatches location to the matching source.
func (r *Router) Fetch(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		if r.Remote == nil {
			return nil, docindex.Errorf(docindex.EINVALID, "remote sources are not supported")
		}
		return r.Remote.Fetch(ctx, location)
	}
	if r.Local == nil {
		return nil, docindex.Errorf(docindex.EINVALID, "local sources are not supported")
	}
	return r.Local.Fetch(ctx, location)
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Host returns the host of a remote location, or "" for local ones.
func Host(location string) string {
	if !IsRemote(location) {
		return ""
	}
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}
	return u.Host
}
