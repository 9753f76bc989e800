// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

// Movie represents TMDB movie metadata.
type Movie struct {
	ID           int64   `json:"id"`
	IMDBID       string  `json:"imdb_id,omitempty"` // e.g., "tt0133093"
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"` // "2024-03-01"
	PosterPath   string  `json:"poster_path"`  // "/abc123.jpg"
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Runtime      int     `json:"runtime"` // minutes
	Genres       []Genre `json:"genres"`
	Videos       Videos  `json:"videos"` // present with append_to_response=videos
}

// Videos wraps the appended video list.
type Videos struct {
	Results []Video `json:"results"`
}

// Video is a clip associated with a movie, in TMDB's order.
type Video struct {
	Type     string `json:"type"` // "Trailer", "Teaser", "Featurette", ...
	Site     string `json:"site"` // "YouTube", "Vimeo"
	Key      string `json:"key"`
	Name     string `json:"name,omitempty"`
	Official bool   `json:"official,omitempty"`
}

// Genre represents a movie genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// GenreNames returns genre names in order.
func (m *Movie) GenreNames() []string {
	if len(m.Genres) == 0 {
		return nil
	}
	names := make([]string, len(m.Genres))
	for i, g := range m.Genres {
		names[i] = g.Name
	}
	return names
}
