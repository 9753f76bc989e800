package media

// LocalPayload is the read API shape for a user-library title.
type LocalPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	StreamURL   *string `json:"streamUrl,omitempty"`
	DirectURL   *string `json:"directUrl,omitempty"`
}

// Video is one entry of a catalog title's associated videos.
type Video struct {
	Type string `json:"type"` // "Trailer", "Teaser", "Clip", ...
	Site string `json:"site"` // "YouTube", "Vimeo", ...
	Key  string `json:"key"`
}

// CatalogPayload is the read API shape for a third-party catalog title.
type CatalogPayload struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	BackdropPath       string   `json:"backdropPath,omitempty"`
	ReleaseDate        string   `json:"releaseDate,omitempty"` // "2024-03-01"
	Runtime            int      `json:"runtime,omitempty"`     // minutes
	VoteAverage        float64  `json:"voteAverage,omitempty"`
	Genres             []string `json:"genres,omitempty"`
	Videos             []Video  `json:"videos"`
	FullMovieStreamURL *string  `json:"fullMovieStreamUrl,omitempty"`
	FullMovieDirectURL *string  `json:"fullMovieDirectUrl,omitempty"`
}
