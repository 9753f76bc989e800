package playback

// Phase is the lifecycle position of a playback session.
type Phase string

const (
	PhaseResolving      Phase = "resolving"
	PhaseDetailsReady   Phase = "details_ready"
	PhasePlaying        Phase = "playing" // local content, native player
	PhasePlayingFull    Phase = "playing_full"
	PhasePlayingTrailer Phase = "playing_trailer"
	PhaseUnavailable    Phase = "unavailable"
	PhaseFailed         Phase = "failed"
)

// validTransitions defines allowed phase transitions.
// Key is the "from" phase, value is list of valid "to" phases.
var validTransitions = map[Phase][]Phase{
	PhaseResolving:      {PhaseDetailsReady, PhasePlaying, PhaseFailed},
	PhaseDetailsReady:   {PhasePlayingFull, PhasePlayingTrailer, PhaseUnavailable},
	PhasePlaying:        {PhaseFailed},
	PhasePlayingFull:    {PhaseDetailsReady, PhaseFailed},
	PhasePlayingTrailer: {PhaseDetailsReady, PhaseFailed},
	PhaseUnavailable:    {}, // terminal - navigation away only
	PhaseFailed:         {}, // terminal - re-enter the view to retry
}

// CanTransitionTo returns true if transitioning from p to target is valid.
func (p Phase) CanTransitionTo(target Phase) bool {
	valid, ok := validTransitions[p]
	if !ok {
		return false
	}
	for _, v := range valid {
		if v == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if this phase has no valid outgoing transitions.
func (p Phase) IsTerminal() bool {
	return p == PhaseUnavailable || p == PhaseFailed
}

// UsesNativePlayer reports whether an asset is loaded in the native player.
func (p Phase) UsesNativePlayer() bool {
	return p == PhasePlaying || p == PhasePlayingFull
}

// IsPlaying reports whether any player is active.
func (p Phase) IsPlaying() bool {
	return p.UsesNativePlayer() || p == PhasePlayingTrailer
}
