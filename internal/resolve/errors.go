package resolve

import (
	"errors"

	"github.com/vmunix/netlee/internal/media"
)

// Resolution errors. They alias the media sentinels so that
// media.KindOf classifies them without importing this package.
var (
	ErrMissingIdentifier = media.ErrMissingIdentifier
	ErrNotFound          = media.ErrNotFound
	ErrTransport         = media.ErrTransport

	// ErrNoSource is returned when the source for an origin is not configured.
	ErrNoSource = errors.New("no source configured for origin")
)
