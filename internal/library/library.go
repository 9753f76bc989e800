// Package library stores the user's own movies and the full-length assets
// attached to catalog titles.
package library

import (
	"time"
)

// Movie is an entry in the user's local library. ID is a UUID.
// A nil URL is absent; the store never turns it into "".
type Movie struct {
	ID          string
	Title       string
	Description string
	Year        int
	TMDBID      *int64 // optional link to the catalog title
	StreamURL   *string
	DirectURL   *string
	AddedAt     time.Time
	UpdatedAt   time.Time
}

// CatalogAsset is a full-length asset for a catalog title, keyed by TMDB id.
type CatalogAsset struct {
	TMDBID    int64
	StreamURL *string
	DirectURL *string
	UpdatedAt time.Time
}
