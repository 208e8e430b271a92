package vm

import (
	"fmt"
	"sync"

	"github.com/avm2/avm2/event"
	"github.com/avm2/avm2/values"
)

// BroadcastRegistry tracks listeners for the broadcast-only event types
// (spec §4.8, §9): every registered target is invoked on each pump
// regardless of display-list membership. Entries are kept as strong
// references and are never automatically pruned when a target becomes
// otherwise unreachable — this is a deliberate, documented leak (spec §9
// Open Question: "weak broadcast references" resolved to strong
// references, see SPEC_FULL.md §5 and DESIGN.md; Go has no ergonomic weak
// reference in this corpus's dependency set, and synthesizing one would
// introduce infrastructure the spec asks to avoid).
type BroadcastRegistry struct {
	mu        sync.Mutex
	listeners map[string][]*Object // identity-deduped, registration order
}

// NewBroadcastRegistry returns an empty registry.
func NewBroadcastRegistry() *BroadcastRegistry {
	return &BroadcastRegistry{listeners: make(map[string][]*Object)}
}

// Register adds target to eventType's listener list, deduping by pointer
// identity (registering the same object twice for the same type is a
// no-op, per spec §4.8). Returns an error if eventType is not in the
// broadcast whitelist.
func (r *BroadcastRegistry) Register(eventType string, target *Object) error {
	if !event.IsBroadcastType(eventType) {
		return fmt.Errorf("%q is not a broadcast-eligible event type", eventType)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.listeners[eventType] {
		if existing == target {
			return nil
		}
	}
	r.listeners[eventType] = append(r.listeners[eventType], target)
	return nil
}

// Unregister removes target from eventType's listener list, if present.
// This is the only way an entry is ever removed — there is no automatic
// cleanup (see the strong-reference note above).
func (r *BroadcastRegistry) Unregister(eventType string, target *Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.listeners[eventType]
	for i, existing := range list {
		if existing == target {
			r.listeners[eventType] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// snapshot returns eventType's listener list as it stood at the instant
// of the call, for the "snapshot-length pump" semantics below.
func (r *BroadcastRegistry) snapshot(eventType string) []*Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Object, len(r.listeners[eventType]))
	copy(out, r.listeners[eventType])
	return out
}

// Pump dispatches eventType to every currently registered listener whose
// target class is-a onType (spec §4.8: broadcast events skip the
// capture/target/bubble walk entirely and go straight to every eligible
// listener). onType == nil imposes no class filter. The listener list
// length is captured once at the start of the pump ("snapshot-length
// pump"): a listener registered mid-pump by a handler does not receive
// this pump's event, and a listener unregistered mid-pump is still
// invoked if it was present at snapshot time, matching AVM2's
// iterate-a-fixed-length-array behavior rather than Go's live-slice
// semantics. The pump walks its own copy of the list, so an Unregister
// during the pump changes only later pumps.
func (vm *VM) Pump(eventType string, onType *Object) error {
	targets := vm.broadcast.snapshot(eventType)
	if vm.metrics != nil {
		vm.metrics.BroadcastPumps.Inc()
		vm.metrics.BroadcastQueueLen.Set(float64(len(targets)))
	}
	evt := vm.newEventObject(eventType, false, false)
	evt.EventPhase = int(event.PhaseAtTarget)
	for _, target := range targets {
		if onType != nil && !target.IsInstanceOf(onType) {
			continue
		}
		evt.EventTarget = target
		evt.CurrentTarget = target
		if err := vm.invokeListeners(target, eventType, evt); err != nil {
			return err
		}
	}
	return nil
}

// RegisterBroadcastListener is the host-facing entry point spec §4.8
// names, delegating to the VM's BroadcastRegistry.
func (vm *VM) RegisterBroadcastListener(eventType string, target *Object) error {
	return vm.broadcast.Register(eventType, target)
}

// BroadcastEvent is the host-facing entry point for Pump, named to match
// spec §4.8's vocabulary (`broadcast_event(ctx, event, on_type)`).
func (vm *VM) BroadcastEvent(eventType string, onType *Object) error {
	return vm.Pump(eventType, onType)
}

func (vm *VM) newEventObject(eventType string, bubbles, cancelable bool) *Object {
	return &Object{
		Variant:    VariantEvent,
		Class:      vm.Classes.Object,
		Proto:      vm.Prototypes.Object,
		EventType:  eventType,
		Bubbles:    bubbles,
		Cancelable: cancelable,
	}
}

// invokeListeners calls every handler registered on target for
// eventType, in the order they were added (Listener.Priority is not
// consulted), ignoring
// target/eventType combinations with no listeners.
func (vm *VM) invokeListeners(target *Object, eventType string, evt *Object) error {
	if target.Listeners == nil {
		return nil
	}
	handlers := append([]*Listener(nil), target.Listeners[eventType]...)
	for _, l := range handlers {
		if evt.StopImmediateFlag {
			break
		}
		if _, err := vm.CallMethod(l.Handler.Method, l.Handler.BoundThis, []*values.Value{values.NewObject(evt)}); err != nil {
			return err
		}
	}
	return nil
}

// DispatchEvent implements the standard (non-broadcast) capture/target/
// bubble dispatch for display-list objects using the Parent/Children
// stand-in on VariantStage objects (spec §4.8).
func (vm *VM) DispatchEvent(target *Object, eventType string, bubbles, cancelable bool) (bool, error) {
	evt := vm.newEventObject(eventType, bubbles, cancelable)
	evt.EventTarget = target

	chain := ancestorChain(target)

	evt.EventPhase = int(event.PhaseCapture)
	for i := len(chain) - 1; i >= 0; i-- {
		evt.CurrentTarget = chain[i]
		if err := vm.invokeListeners(chain[i], eventType, evt); err != nil {
			return false, err
		}
		if evt.StopPropagationFlag || evt.StopImmediateFlag {
			return !evt.DefaultPrevented, nil
		}
	}

	evt.EventPhase = int(event.PhaseAtTarget)
	evt.CurrentTarget = target
	if err := vm.invokeListeners(target, eventType, evt); err != nil {
		return false, err
	}

	if bubbles && !evt.StopPropagationFlag && !evt.StopImmediateFlag {
		evt.EventPhase = int(event.PhaseBubble)
		for _, ancestor := range chain {
			evt.CurrentTarget = ancestor
			if err := vm.invokeListeners(ancestor, eventType, evt); err != nil {
				return false, err
			}
			if evt.StopPropagationFlag || evt.StopImmediateFlag {
				break
			}
		}
	}

	return !evt.DefaultPrevented, nil
}

func ancestorChain(target *Object) []*Object {
	var chain []*Object
	for p := target.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	return chain
}
