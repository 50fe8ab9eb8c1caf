// Package goquery finds search-index artifacts referenced by rendered
// documentation pages.
package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docindex"
)

// DefaultArtifactName is the script file generated sites load their index from.
const DefaultArtifactName = "search_index.js"

// Ensure Locator implements docindex.ArtifactLocator at compile time.
var _ docindex.ArtifactLocator = (*Locator)(nil)

// Locator extracts the artifact location from a site page's script tags.
type Locator struct {
	name string
}

// Option configures a Locator.
type Option func(*Locator)

// WithArtifactName sets the file name the locator looks for.
func WithArtifactName(name string) Option {
	return func(l *Locator) {
		l.name = name
	}
}

// NewLocator creates a new Locator.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{name: DefaultArtifactName}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate returns the absolute URL of the first script whose path ends in
// the artifact name, resolved against pageURL.
func (l *Locator) Locate(html string, pageURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", docindex.Errorf(docindex.EINVALID, "invalid page URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", docindex.Errorf(docindex.EINVALID, "failed to parse HTML: %v", err)
	}

	var found string
	doc.Find("script[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, _ := sel.Attr("src")
		if isNonHTTPLink(src) {
			return true
		}
		resolved := resolveURL(base, src)
		if resolved == nil || path.Base(resolved.Path) != l.name {
			return true
		}
		found = resolved.String()
		return false
	})

	if found == "" {
		return "", docindex.Errorf(docindex.ENOTFOUND, "page does not reference %s", l.name)
	}
	return found, nil
}

// resolveURL resolves src against base, dropping query and fragment.
func resolveURL(base *url.URL, src string) *url.URL {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil
	}
	ref, err := url.Parse(src)
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.RawQuery = ""
	resolved.Fragment = ""
	return resolved
}

// isNonHTTPLink checks if a src cannot point at a fetchable file.
func isNonHTTPLink(src string) bool {
	src = strings.ToLower(strings.TrimSpace(src))
	return strings.HasPrefix(src, "javascript:") ||
		strings.HasPrefix(src, "data:") ||
		strings.HasPrefix(src, "blob:")
}
