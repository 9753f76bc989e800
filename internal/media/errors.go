package media

import "errors"

// Resolution and playback errors. Sources and players wrap these so callers
// can classify failures with errors.Is or KindOf.
var (
	// ErrMissingIdentifier is returned when a ContentRef has an empty id.
	ErrMissingIdentifier = errors.New("missing identifier")

	// ErrNotFound indicates the record is absent upstream.
	ErrNotFound = errors.New("record not found")

	// ErrTransport indicates a network, timeout or upstream failure.
	ErrTransport = errors.New("transport error")

	// ErrPlayback indicates the player could not play the chosen asset.
	ErrPlayback = errors.New("playback error")

	// ErrInvalidOrigin is returned for unknown or missing origin tags.
	ErrInvalidOrigin = errors.New("invalid origin")
)

// ErrorKind is the user-facing error taxonomy.
type ErrorKind string

const (
	KindNone              ErrorKind = ""
	KindMissingIdentifier ErrorKind = "missing_identifier"
	KindNotFound          ErrorKind = "not_found"
	KindTransport         ErrorKind = "transport_error"
	KindPlayback          ErrorKind = "playback_error"
)

// KindOf classifies err. Unrecognized errors are reported as transport
// errors since the remedy (try again later) is the same.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingIdentifier):
		return KindMissingIdentifier
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPlayback):
		return KindPlayback
	default:
		return KindTransport
	}
}

// Resolution reports whether k is a resolution-phase kind.
func (k ErrorKind) Resolution() bool {
	return k == KindMissingIdentifier || k == KindNotFound || k == KindTransport
}
