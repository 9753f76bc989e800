package playback

import (
	"context"

	"github.com/vmunix/netlee/internal/media"
)

// Status is one event from the native player's status stream.
// URL names the asset the status refers to.
type Status struct {
	URL    string
	Loaded bool
	Err    error
}

// StatusFunc receives native player status events. It may be called from
// any goroutine.
type StatusFunc func(Status)

// NativePlayer is the host's media playback capability.
type NativePlayer interface {
	// Load starts playing url and reports status through onStatus.
	Load(url string, onStatus StatusFunc) error
	// Reload replaces the current asset, keeping the status callback.
	Reload(url string) error
	// Stop tears the player down. Statuses may still arrive afterwards.
	Stop()
}

// ErrorFunc receives embedded player failures. It may be called from any
// goroutine.
type ErrorFunc func(error)

// WebPlayer is the embedded web playback capability used for trailers.
type WebPlayer interface {
	Open(embedURL string, onError ErrorFunc) error
	Close()
}

// Navigator receives the "go back" signal.
type Navigator interface {
	Back()
}

// Resolver turns a content reference into a movie record.
type Resolver interface {
	Resolve(ctx context.Context, ref media.ContentRef) (*media.MovieRecord, error)
}
