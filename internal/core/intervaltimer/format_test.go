package intervaltimer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{60, "01:00"},
		{185, "03:05"},
		{6000, "100:00"},
		{-4, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRemaining(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestSnapshot_Progress(t *testing.T) {
	assert.Equal(t, 0.0, Snapshot{}.Progress())
	assert.Equal(t, 1.0, Snapshot{Finished: true}.Progress())
	assert.Equal(t, 0.5, Snapshot{PhaseSeconds: 10, RemainingSeconds: 5}.Progress())
	assert.Equal(t, 0.0, Snapshot{PhaseSeconds: 10, RemainingSeconds: 15}.Progress())
}

func TestTransition_String(t *testing.T) {
	assert.Equal(t, "phase_changed", TransitionPhaseChanged.String())
	assert.Equal(t, "none", TransitionNone.String())
	assert.Equal(t, "halted", TransitionHalted.String())
}
