package playback

import (
	"errors"
	"fmt"

	"github.com/vmunix/netlee/internal/media"
)

var (
	// ErrInvalidTransition is returned when a user action is not allowed
	// in the current phase.
	ErrInvalidTransition = errors.New("invalid phase transition")

	// ErrNotMounted is returned when an action arrives with no content mounted.
	ErrNotMounted = errors.New("no content mounted")

	// ErrNoPlayableAsset is the failure for local content whose record
	// carries neither a usable stream URL nor a usable direct URL.
	ErrNoPlayableAsset = fmt.Errorf("%w: no playable asset", media.ErrPlayback)

	// ErrLoopStopped is returned when work is submitted to a stopped loop.
	ErrLoopStopped = errors.New("event loop stopped")
)
