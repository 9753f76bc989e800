// Package catalog serves the raw movie payloads behind the read API:
// local movies from the library store, catalog movies from TMDB combined
// with any stored full-length asset.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/vmunix/netlee/internal/library"
	"github.com/vmunix/netlee/internal/media"
	"github.com/vmunix/netlee/internal/tmdb"
)

// MovieStore reads local movies.
type MovieStore interface {
	GetMovie(id string) (*library.Movie, error)
}

// AssetStore reads full-length assets for catalog titles.
type AssetStore interface {
	GetCatalogAsset(tmdbID int64) (*library.CatalogAsset, error)
}

// MetadataClient fetches catalog metadata.
type MetadataClient interface {
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
}

// LocalSource adapts the library store to the local payload shape.
type LocalSource struct {
	store MovieStore
}

// NewLocalSource creates a LocalSource.
func NewLocalSource(store MovieStore) *LocalSource {
	return &LocalSource{store: store}
}

// LocalMovie returns the payload for a library movie.
func (s *LocalSource) LocalMovie(_ context.Context, id string) (*media.LocalPayload, error) {
	m, err := s.store.GetMovie(id)
	if errors.Is(err, library.ErrNotFound) {
		return nil, fmt.Errorf("local movie %s: %w", id, media.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("local movie %s: %w: %w", id, media.ErrTransport, err)
	}
	return &media.LocalPayload{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		StreamURL:   m.StreamURL,
		DirectURL:   m.DirectURL,
	}, nil
}

// TMDBSource builds catalog payloads from TMDB metadata and stored assets.
type TMDBSource struct {
	client MetadataClient
	assets AssetStore
	logger *slog.Logger
}

// NewTMDBSource creates a TMDBSource. assets may be nil, in which case
// no catalog title has a full-length asset.
func NewTMDBSource(client MetadataClient, assets AssetStore, logger *slog.Logger) *TMDBSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &TMDBSource{client: client, assets: assets, logger: logger}
}

// CatalogMovie returns the payload for a TMDB movie id.
func (s *TMDBSource) CatalogMovie(ctx context.Context, id string) (*media.CatalogPayload, error) {
	tmdbID, err := ParseTMDBID(id)
	if err != nil {
		return nil, err
	}

	m, err := s.client.GetMovie(ctx, tmdbID)
	if errors.Is(err, tmdb.ErrNotFound) {
		return nil, fmt.Errorf("catalog movie %d: %w", tmdbID, media.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog movie %d: %w: %w", tmdbID, media.ErrTransport, err)
	}

	p := &media.CatalogPayload{
		ID:           strconv.FormatInt(m.ID, 10),
		Title:        m.Title,
		Description:  m.Overview,
		BackdropPath: m.BackdropPath,
		ReleaseDate:  m.ReleaseDate,
		Runtime:      m.Runtime,
		VoteAverage:  m.VoteAverage,
		Genres:       m.GenreNames(),
		Videos:       make([]media.Video, 0, len(m.Videos.Results)),
	}
	for _, v := range m.Videos.Results {
		p.Videos = append(p.Videos, media.Video{Type: v.Type, Site: v.Site, Key: v.Key})
	}

	if s.assets == nil {
		return p, nil
	}
	asset, err := s.assets.GetCatalogAsset(tmdbID)
	switch {
	case errors.Is(err, library.ErrNotFound):
		// Most catalog titles have no full-length asset.
	case err != nil:
		return nil, fmt.Errorf("catalog asset %d: %w: %w", tmdbID, media.ErrTransport, err)
	default:
		p.FullMovieStreamURL = asset.StreamURL
		p.FullMovieDirectURL = asset.DirectURL
	}

	s.logger.Debug("catalog payload built", "tmdb_id", tmdbID, "videos", len(p.Videos), "full_asset", asset != nil)
	return p, nil
}

// ParseTMDBID parses a catalog id. Ids that cannot name a TMDB movie are
// reported as not found.
func ParseTMDBID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("catalog movie %q: %w", id, media.ErrNotFound)
	}
	return n, nil
}
