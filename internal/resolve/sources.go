package resolve

//go:generate mockgen -source=sources.go -destination=mocks/mock_sources.go -package=mocks

import (
	"context"

	"github.com/vmunix/netlee/internal/media"
)

// LocalSource reads titles from the user's own library.
// Implementations wrap media.ErrNotFound when the id does not exist.
type LocalSource interface {
	LocalMovie(ctx context.Context, id string) (*media.LocalPayload, error)
}

// CatalogSource reads titles from the third-party catalog.
// Implementations wrap media.ErrNotFound when the id does not exist.
type CatalogSource interface {
	CatalogMovie(ctx context.Context, id string) (*media.CatalogPayload, error)
}
