// Package media defines the movie data model shared by the resolver,
// the playback controller and the read API.
package media

import (
	"fmt"
	"net/url"
	"strings"
)

// Origin identifies which backing collection a content id belongs to.
type Origin string

const (
	OriginLocal   Origin = "local"
	OriginCatalog Origin = "catalog"
)

// ContentRef identifies what to resolve.
type ContentRef struct {
	ID     string `json:"id"`
	Origin Origin `json:"origin"`
}

// String returns "origin/id", used as the entity id in events and logs.
func (r ContentRef) String() string {
	return string(r.Origin) + "/" + r.ID
}

// AssetRef addresses one playable media resource.
// A nil URL is absent; an empty string is present but not playable.
type AssetRef struct {
	StreamURL *string `json:"stream_url,omitempty"`
	DirectURL *string `json:"direct_url,omitempty"`
}

func usable(u *string) bool {
	return u != nil && strings.TrimSpace(*u) != ""
}

// Playable reports whether at least one URL can be loaded.
func (a *AssetRef) Playable() bool {
	if a == nil {
		return false
	}
	return usable(a.StreamURL) || usable(a.DirectURL)
}

// Candidates returns the load order: stream URL first, then the direct URL
// when it differs from the stream URL.
func (a *AssetRef) Candidates() []string {
	if a == nil {
		return nil
	}
	var urls []string
	if usable(a.StreamURL) {
		urls = append(urls, *a.StreamURL)
	}
	if usable(a.DirectURL) && (len(urls) == 0 || urls[0] != *a.DirectURL) {
		urls = append(urls, *a.DirectURL)
	}
	return urls
}

// TrailerProviderYouTube is the only trailer host that is modeled.
const TrailerProviderYouTube = "youtube"

// TrailerRef references an externally hosted trailer.
type TrailerRef struct {
	Provider string `json:"provider"`
	Key      string `json:"key"`
}

// EmbedURL builds the web player URL for the trailer on host
// (e.g. "www.youtube.com").
func (t TrailerRef) EmbedURL(host string) string {
	return fmt.Sprintf("https://%s/embed/%s?autoplay=1&controls=1", host, url.PathEscape(t.Key))
}

// Presentation is catalog-only display metadata.
type Presentation struct {
	BackdropURL    string   `json:"backdrop_url,omitempty"`
	ReleaseYear    int      `json:"release_year,omitempty"`
	RuntimeMinutes int      `json:"runtime_minutes,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Genres         []string `json:"genres,omitempty"`
}

// MovieRecord is the normalized description of a single title.
// Fields foreign to Origin are always nil.
type MovieRecord struct {
	Origin       Origin        `json:"origin"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	PrimaryAsset *AssetRef     `json:"primary_asset,omitempty"` // local only
	FullAsset    *AssetRef     `json:"full_asset,omitempty"`    // catalog only
	Trailer      *TrailerRef   `json:"trailer,omitempty"`       // catalog only
	Presentation *Presentation `json:"presentation,omitempty"`  // catalog only
}
