// Package docindex provides a local, CLI-based search over the search-index
// artifacts that static documentation generators ship with their sites.
// An artifact is loaded once into an immutable Index which answers
// case-insensitive token queries in artifact order.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, bloom/).
package docindex
