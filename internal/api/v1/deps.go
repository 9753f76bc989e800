package v1

import (
	"context"
	"errors"

	"github.com/vmunix/netlee/internal/events"
	"github.com/vmunix/netlee/internal/library"
	"github.com/vmunix/netlee/internal/media"
	"github.com/vmunix/netlee/internal/resolve"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// Resolver turns a content reference into a normalized record.
type Resolver interface {
	Resolve(ctx context.Context, ref media.ContentRef) (*media.MovieRecord, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Library  *library.Store
	Local    resolve.LocalSource
	Resolver Resolver

	// Optional dependencies (nil if not configured)
	Catalog  resolve.CatalogSource // nil without a TMDB API key
	Bus      *events.Bus           // resolve outcomes are published here
	EventLog *events.EventLog      // event audit log
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Library == nil {
		return errors.New("library store is required")
	}
	if d.Local == nil {
		return errors.New("local source is required")
	}
	if d.Resolver == nil {
		return errors.New("resolver is required")
	}
	return nil
}
