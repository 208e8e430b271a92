package vm_test

import (
	"testing"

	"github.com/avm2/avm2/registry"
	"github.com/avm2/avm2/values"
	"github.com/avm2/avm2/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nativeHandler(host *vm.VM, fn func()) *vm.Object {
	ref := &registry.MethodRef{
		Name: "handler",
		Kind: registry.MethodNative,
		Body: vm.NativeFunc(func(host *vm.VM, this *vm.Object, args []*values.Value) (*values.Value, error) {
			fn()
			return values.Undefined(), nil
		}),
	}
	return vm.NewClosure(host, ref, nil)
}

// TestBroadcastDedupAndWhitelist covers spec §8 scenario 3: registering
// the same target twice for one broadcast type is a no-op, distinct
// broadcast types pump independently, and a non-whitelisted type is
// rejected outright.
func TestBroadcastDedupAndWhitelist(t *testing.T) {
	machine := vm.New()
	target := vm.NewPlainObject(machine.Classes.Object, machine.Prototypes.Object)
	target.Listeners = make(map[string][]*vm.Listener)

	enterFrameCount := 0
	handler := nativeHandler(machine, func() { enterFrameCount++ })
	target.Listeners["enterFrame"] = append(target.Listeners["enterFrame"], &vm.Listener{Type: "enterFrame", Handler: handler})

	require.NoError(t, machine.RegisterBroadcastListener("enterFrame", target))
	require.NoError(t, machine.RegisterBroadcastListener("enterFrame", target)) // dedup: no-op

	frameConstructedCount := 0
	fcHandler := nativeHandler(machine, func() { frameConstructedCount++ })
	target.Listeners["frameConstructed"] = append(target.Listeners["frameConstructed"], &vm.Listener{Type: "frameConstructed", Handler: fcHandler})
	require.NoError(t, machine.RegisterBroadcastListener("frameConstructed", target))

	require.NoError(t, machine.Pump("enterFrame", nil))
	assert.Equal(t, 1, enterFrameCount, "deduped registration must still fire exactly once per pump")
	assert.Equal(t, 0, frameConstructedCount, "pumping one type must not fire listeners of another")

	require.NoError(t, machine.Pump("frameConstructed", nil))
	assert.Equal(t, 1, frameConstructedCount)

	err := machine.RegisterBroadcastListener("notAnEvent", target)
	assert.Error(t, err, "non-whitelisted event types must be rejected")
}

// TestBroadcastOnTypeFilter covers spec §4.8's broadcast_event(ctx, event,
// on_type) argument: a pump only reaches targets whose class is-a on_type.
func TestBroadcastOnTypeFilter(t *testing.T) {
	machine := vm.New()

	arrayTarget := vm.NewPlainObject(machine.Classes.Array, machine.Prototypes.Array)
	arrayTarget.Listeners = make(map[string][]*vm.Listener)
	arrayCount := 0
	arrayTarget.Listeners["enterFrame"] = append(arrayTarget.Listeners["enterFrame"], &vm.Listener{
		Type: "enterFrame", Handler: nativeHandler(machine, func() { arrayCount++ }),
	})
	require.NoError(t, machine.RegisterBroadcastListener("enterFrame", arrayTarget))

	errorTarget := vm.NewPlainObject(machine.Classes.Error, machine.Prototypes.Error)
	errorTarget.Listeners = make(map[string][]*vm.Listener)
	errorCount := 0
	errorTarget.Listeners["enterFrame"] = append(errorTarget.Listeners["enterFrame"], &vm.Listener{
		Type: "enterFrame", Handler: nativeHandler(machine, func() { errorCount++ }),
	})
	require.NoError(t, machine.RegisterBroadcastListener("enterFrame", errorTarget))

	require.NoError(t, machine.Pump("enterFrame", machine.Classes.Array))
	assert.Equal(t, 1, arrayCount, "target whose class is-a on_type must fire")
	assert.Equal(t, 0, errorCount, "target whose class is not-a on_type must not fire")

	require.NoError(t, machine.Pump("enterFrame", nil))
	assert.Equal(t, 2, arrayCount, "nil on_type imposes no filter")
	assert.Equal(t, 1, errorCount)
}
