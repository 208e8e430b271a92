// Package event holds the event-system constants shared by the VM's
// dispatch machinery (spec §4.8): dispatch phases and the broadcast-event
// whitelist. The dispatcher itself (capture/target/bubble walking,
// listener invocation) lives in vm/broadcast.go, since it needs the
// Object/Scope/Method machinery that would create an import cycle if this
// package depended on vm; this package stays a leaf so both vm and any
// future host-side code can share one definition of "what a broadcast
// event is" without it.
package event

// Phase is one of the three DOM-style dispatch phases (spec §4.8).
type Phase int

const (
	PhaseCapture Phase = iota
	PhaseAtTarget
	PhaseBubble
)

func (p Phase) String() string {
	switch p {
	case PhaseCapture:
		return "capturingPhase"
	case PhaseAtTarget:
		return "atTarget"
	case PhaseBubble:
		return "bubblingPhase"
	default:
		return "unknown"
	}
}

// BroadcastWhitelist is the closed set of event types permitted to use
// broadcast dispatch (every live display-list object, not just those on
// the stage, receives the event) — spec §4.8. Registering a broadcast
// listener for any other type is rejected with an error; pumping any
// other type reaches no listener and returns without error.
var BroadcastWhitelist = map[string]bool{
	"enterFrame":       true,
	"exitFrame":        true,
	"frameConstructed": true,
}

// IsBroadcastType reports whether eventType may be broadcast-dispatched.
func IsBroadcastType(eventType string) bool {
	return BroadcastWhitelist[eventType]
}
