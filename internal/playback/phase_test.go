package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhase_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from Phase
		to   Phase
		want bool
	}{
		// Valid transitions
		{PhaseResolving, PhaseDetailsReady, true},
		{PhaseResolving, PhasePlaying, true},
		{PhaseResolving, PhaseFailed, true},
		{PhaseDetailsReady, PhasePlayingFull, true},
		{PhaseDetailsReady, PhasePlayingTrailer, true},
		{PhaseDetailsReady, PhaseUnavailable, true},
		{PhasePlaying, PhaseFailed, true},
		{PhasePlayingFull, PhaseDetailsReady, true},
		{PhasePlayingFull, PhaseFailed, true},
		{PhasePlayingTrailer, PhaseDetailsReady, true},
		{PhasePlayingTrailer, PhaseFailed, true},

		// Invalid transitions
		{PhaseResolving, PhaseUnavailable, false},
		{PhaseResolving, PhasePlayingTrailer, false},
		{PhaseDetailsReady, PhaseFailed, false},
		{PhaseDetailsReady, PhasePlaying, false},
		{PhasePlaying, PhaseDetailsReady, false},
		{PhasePlayingTrailer, PhasePlayingFull, false},
		{PhaseUnavailable, PhaseDetailsReady, false},
		{PhaseUnavailable, PhasePlayingFull, false},
		{PhaseFailed, PhaseResolving, false},
		{PhaseFailed, PhaseDetailsReady, false},
		{Phase("bogus"), PhaseFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPhase_IsTerminal(t *testing.T) {
	assert.True(t, PhaseUnavailable.IsTerminal())
	assert.True(t, PhaseFailed.IsTerminal())
	for _, p := range []Phase{PhaseResolving, PhaseDetailsReady, PhasePlaying, PhasePlayingFull, PhasePlayingTrailer} {
		assert.False(t, p.IsTerminal(), p)
	}
}

func TestPhase_Players(t *testing.T) {
	assert.True(t, PhasePlaying.UsesNativePlayer())
	assert.True(t, PhasePlayingFull.UsesNativePlayer())
	assert.False(t, PhasePlayingTrailer.UsesNativePlayer())
	assert.True(t, PhasePlayingTrailer.IsPlaying())
	assert.False(t, PhaseDetailsReady.IsPlaying())
}
