package event_test

import (
	"testing"

	"github.com/avm2/avm2/event"
	"github.com/stretchr/testify/assert"
)

func TestIsBroadcastTypeWhitelist(t *testing.T) {
	assert.True(t, event.IsBroadcastType("enterFrame"))
	assert.True(t, event.IsBroadcastType("exitFrame"))
	assert.True(t, event.IsBroadcastType("frameConstructed"))
	assert.False(t, event.IsBroadcastType("click"))
	assert.False(t, event.IsBroadcastType(""))
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "capturingPhase", event.PhaseCapture.String())
	assert.Equal(t, "atTarget", event.PhaseAtTarget.String())
	assert.Equal(t, "bubblingPhase", event.PhaseBubble.String())
	assert.Equal(t, "unknown", event.Phase(99).String())
}
