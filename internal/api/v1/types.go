// internal/api/v1/types.go
package v1

import (
	"time"

	"github.com/vmunix/netlee/internal/library"
	"github.com/vmunix/netlee/internal/media"
)

// movieResponse is the API representation of a library movie.
type movieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Year        int       `json:"year,omitempty"`
	TMDBID      *int64    `json:"tmdb_id,omitempty"`
	StreamURL   *string   `json:"stream_url,omitempty"`
	DirectURL   *string   `json:"direct_url,omitempty"`
	AddedAt     time.Time `json:"added_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func movieToResponse(m *library.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Year:        m.Year,
		TMDBID:      m.TMDBID,
		StreamURL:   m.StreamURL,
		DirectURL:   m.DirectURL,
		AddedAt:     m.AddedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// listMoviesResponse is the response for GET /library.
type listMoviesResponse struct {
	Items  []movieResponse `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// movieRequest is the body for POST and PUT /library.
// Omitted URLs are stored as absent, never as "".
type movieRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Year        int     `json:"year"`
	TMDBID      *int64  `json:"tmdb_id"`
	StreamURL   *string `json:"stream_url"`
	DirectURL   *string `json:"direct_url"`
}

// searchResult is one hit in GET /library/search.
type searchResult struct {
	movieResponse
	Score float64 `json:"score"`
}

type searchResponse struct {
	Query string         `json:"query"`
	Items []searchResult `json:"items"`
}

// assetRequest is the body for PUT /catalog/{tmdb_id}/asset.
type assetRequest struct {
	StreamURL *string `json:"stream_url"`
	DirectURL *string `json:"direct_url"`
}

type assetResponse struct {
	TMDBID    int64     `json:"tmdb_id"`
	StreamURL *string   `json:"stream_url,omitempty"`
	DirectURL *string   `json:"direct_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// resolveResponse is the response for GET /resolve.
type resolveResponse struct {
	Ref    media.ContentRef   `json:"ref"`
	Record *media.MovieRecord `json:"record"`

	// Actions available on the details screen.
	CanPlayFull    bool   `json:"can_play_full"`
	CanPlayTrailer bool   `json:"can_play_trailer"`
	TrailerURL     string `json:"trailer_url,omitempty"`
}

// EventResponse is the API representation of a persisted event.
type EventResponse struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Payload    string `json:"payload,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type listEventsResponse struct {
	Items []EventResponse `json:"items"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Movies   int    `json:"movies"`
	Catalog  bool   `json:"catalog"`
	EventLog bool   `json:"event_log"`
}
