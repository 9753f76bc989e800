package remote

import (
	"time"

	"github.com/vmunix/netlee/internal/media"
)

// API response types (mirror server types)

type StatusResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Movies   int    `json:"movies"`
	Catalog  bool   `json:"catalog"`
	EventLog bool   `json:"event_log"`
}

type ResolveResponse struct {
	Ref            media.ContentRef   `json:"ref"`
	Record         *media.MovieRecord `json:"record"`
	CanPlayFull    bool               `json:"can_play_full"`
	CanPlayTrailer bool               `json:"can_play_trailer"`
	TrailerURL     string             `json:"trailer_url,omitempty"`
}

type Movie struct {
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

type MovieRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Year        int     `json:"year,omitempty"`
	TMDBID      *int64  `json:"tmdb_id,omitempty"`
	StreamURL   *string `json:"stream_url,omitempty"`
	DirectURL   *string `json:"direct_url,omitempty"`
}

type ListMoviesResponse struct {
	Items  []Movie `json:"items"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

type SearchResult struct {
	Movie
	Score float64 `json:"score"`
}

type SearchResponse struct {
	Query string         `json:"query"`
	Items []SearchResult `json:"items"`
}

type CatalogAsset struct {
	TMDBID    int64     `json:"tmdb_id"`
	StreamURL *string   `json:"stream_url,omitempty"`
	DirectURL *string   `json:"direct_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Event struct {
	ID         int64  `json:"id"`
	EventType  string `json:"event_type"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Payload    string `json:"payload,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type EventsResponse struct {
	Items []Event `json:"items"`
	Total int     `json:"total"`
	Limit int     `json:"limit"`
}
