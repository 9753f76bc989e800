// internal/events/playback.go
package events

// Entity types
const (
	EntityMovie = "movie"
)

// Event type constants
const (
	EventResolveCompleted  = "resolve.completed"
	EventResolveFailed     = "resolve.failed"
	EventResolveDiscarded  = "resolve.discarded"
	EventPhaseChanged      = "playback.phase.changed"
	EventPlaybackLoaded    = "playback.loaded"
	EventFallbackTriggered = "playback.fallback"
	EventPlaybackFailed    = "playback.failed"
)

// ResolveCompleted is emitted when a content ref resolved to a record.
type ResolveCompleted struct {
	BaseEvent
	Origin     string `json:"origin"`
	Title      string `json:"title"`
	HasTrailer bool   `json:"has_trailer"`
}

// ResolveFailed is emitted when resolution ends in an error.
type ResolveFailed struct {
	BaseEvent
	Origin string `json:"origin"`
	Kind   string `json:"kind"` // media.ErrorKind
	Reason string `json:"reason"`
}

// ResolveDiscarded is emitted when a resolution result arrives for a mount
// that is gone or whose identifier has changed.
type ResolveDiscarded struct {
	BaseEvent
	CurrentID string `json:"current_id,omitempty"` // "" when unmounted
}

// PhaseChanged is emitted on every playback state transition.
type PhaseChanged struct {
	BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

// PlaybackLoaded is emitted when the native player reports a loaded asset.
type PlaybackLoaded struct {
	BaseEvent
	URL          string `json:"url"`
	UsedFallback bool   `json:"used_fallback"`
}

// FallbackTriggered is emitted when the stream URL failed and the
// direct URL is loaded instead.
type FallbackTriggered struct {
	BaseEvent
	FromURL string `json:"from_url"`
	ToURL   string `json:"to_url"`
	Reason  string `json:"reason"`
}

// PlaybackFailed is emitted when a session enters the failed phase.
type PlaybackFailed struct {
	BaseEvent
	Kind   string `json:"kind"` // media.ErrorKind
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason"`
}
