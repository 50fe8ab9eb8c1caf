package docindex

import "context"

// ArtifactSource retrieves raw artifact bytes from a location.
type ArtifactSource interface {
	// Fetch returns the content stored at location.
	// Returns ENOTFOUND if nothing exists there.
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// ArtifactDecoder turns artifact bytes into entries.
type ArtifactDecoder interface {
	// Decode parses data into entries in artifact order.
	// Returns EMALFORMED if data does not have the artifact shape.
	Decode(data []byte) ([]Entry, error)
}

// ArtifactLocator finds the artifact referenced by a rendered site page.
type ArtifactLocator interface {
	// Locate returns the absolute location of the artifact referenced by
	// html, resolved against pageURL.
	// Returns ENOTFOUND if the page does not reference one.
	Locate(html string, pageURL string) (string, error)
}

// Snapshot is an Index together with the artifact it was built from.
type Snapshot struct {
	Index *Index
	// Source is the location actually decoded, which differs from the
	// requested one when the artifact was located through a site page.
	Source      string
	ContentHash string
	Size        int
}

// IndexLoader builds indexes from artifact locations.
type IndexLoader interface {
	// LoadIndex fetches and decodes the artifact at source.
	// Returns EMALFORMED if the artifact cannot be indexed.
	LoadIndex(ctx context.Context, source string) (*Snapshot, error)
}

// HostLimiter throttles requests per remote host.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
