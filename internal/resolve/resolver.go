// Package resolve turns a content reference into a normalized movie record.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vmunix/netlee/internal/media"
)

const defaultImageBaseURL = "https://image.tmdb.org/t/p/w780"

// Resolver dispatches a ContentRef to the source for its origin and
// normalizes the payload into a media.MovieRecord. It never retries.
type Resolver struct {
	local        LocalSource
	catalog      CatalogSource
	imageBaseURL string
	logger       *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithImageBaseURL sets the prefix used to build backdrop URLs from
// catalog image paths.
func WithImageBaseURL(url string) Option {
	return func(r *Resolver) {
		r.imageBaseURL = strings.TrimSuffix(url, "/")
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver. Either source may be nil, in which case refs of
// that origin fail with ErrNoSource.
func New(local LocalSource, catalog CatalogSource, opts ...Option) *Resolver {
	r := &Resolver{
		local:        local,
		catalog:      catalog,
		imageBaseURL: defaultImageBaseURL,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Resolve fetches and normalizes the record for ref.
// Errors wrap ErrMissingIdentifier, ErrNotFound or ErrTransport.
func (r *Resolver) Resolve(ctx context.Context, ref media.ContentRef) (*media.MovieRecord, error) {
	if ref.ID == "" {
		return nil, fmt.Errorf("resolve %s: %w", ref.Origin, ErrMissingIdentifier)
	}

	var (
		rec *media.MovieRecord
		err error
	)
	switch ref.Origin {
	case media.OriginLocal:
		rec, err = r.resolveLocal(ctx, ref.ID)
	case media.OriginCatalog:
		rec, err = r.resolveCatalog(ctx, ref.ID)
	default:
		return nil, fmt.Errorf("resolve %s: %w: %q", ref, media.ErrInvalidOrigin, ref.Origin)
	}
	if err != nil {
		r.logger.Debug("resolve failed", "id", ref.ID, "origin", ref.Origin, "error", err)
		return nil, fmt.Errorf("resolve %s: %w", ref, classify(err))
	}

	r.logger.Debug("resolved", "id", ref.ID, "origin", ref.Origin, "title", rec.Title)
	return rec, nil
}

// classify makes sure every source error carries a resolution kind.
func classify(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

func (r *Resolver) resolveLocal(ctx context.Context, id string) (*media.MovieRecord, error) {
	if r.local == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, media.OriginLocal)
	}
	p, err := r.local.LocalMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return &media.MovieRecord{
		Origin:       media.OriginLocal,
		Title:        p.Title,
		Description:  p.Description,
		PrimaryAsset: &media.AssetRef{StreamURL: copyURL(p.StreamURL), DirectURL: copyURL(p.DirectURL)},
	}, nil
}

func (r *Resolver) resolveCatalog(ctx context.Context, id string) (*media.MovieRecord, error) {
	if r.catalog == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, media.OriginCatalog)
	}
	p, err := r.catalog.CatalogMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	rec := &media.MovieRecord{
		Origin:      media.OriginCatalog,
		Title:       p.Title,
		Description: p.Description,
		Trailer:     FirstTrailer(p.Videos),
		Presentation: &media.Presentation{
			BackdropURL:    r.backdropURL(p.BackdropPath),
			ReleaseYear:    releaseYear(p.ReleaseDate),
			RuntimeMinutes: p.Runtime,
			Rating:         p.VoteAverage,
			Genres:         append([]string(nil), p.Genres...),
		},
	}
	if p.FullMovieStreamURL != nil || p.FullMovieDirectURL != nil {
		rec.FullAsset = &media.AssetRef{
			StreamURL: copyURL(p.FullMovieStreamURL),
			DirectURL: copyURL(p.FullMovieDirectURL),
		}
	}
	return rec, nil
}

func (r *Resolver) backdropURL(path string) string {
	switch {
	case path == "":
		return ""
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	default:
		return r.imageBaseURL + "/" + strings.TrimPrefix(path, "/")
	}
}

// copyURL copies a URL pointer, keeping nil as nil and "" as "".
func copyURL(u *string) *string {
	if u == nil {
		return nil
	}
	v := *u
	return &v
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
