package vm_test

import (
	"testing"

	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBootstrapPrimordials covers spec §8 scenario 1: after
// load_player_globals (here, vm.New's implicit bootstrap), the three
// primordial ClassObjects are distinct and non-nil, and a freshly
// constructed plain object's proto is Object.prototype.
func TestBootstrapPrimordials(t *testing.T) {
	machine := vm.New()

	require.NotNil(t, machine.Classes.Object)
	require.NotNil(t, machine.Classes.Function)
	require.NotNil(t, machine.Classes.Class)
	assert.NotSame(t, machine.Classes.Object, machine.Classes.Function)
	assert.NotSame(t, machine.Classes.Function, machine.Classes.Class)
	assert.NotSame(t, machine.Classes.Object, machine.Classes.Class)

	obj := vm.NewPlainObject(machine.Classes.Object, machine.Prototypes.Object)
	assert.Same(t, machine.Prototypes.Object, obj.Proto)
}

func TestGlobalDomainResolvesObject(t *testing.T) {
	machine := vm.New()
	ns := names.NewNamespace(names.Public, "")
	mn := names.NewQNameMultiname(ns, "Object")

	qn, err := machine.GlobalDomain.ResolveMultiname(machine, mn)
	require.NoError(t, err)
	assert.Equal(t, "Object", qn.Local)

	resolved, err := machine.GlobalDomain.GetProperty(machine, qn)
	require.NoError(t, err)
	assert.Same(t, machine.Classes.Object, resolved)
}

func TestAmbiguousMultinameResolutionIsAnError(t *testing.T) {
	machine := vm.New()
	nsA := names.NewNamespace(names.Public, "a.pkg")
	nsB := names.NewNamespace(names.Public, "b.pkg")

	domain := vm.NewDomain(nil)
	domain.Export(names.NewQName(nsA, "X"), machine.Classes.Object)
	domain.Export(names.NewQName(nsB, "X"), machine.Classes.Array)

	mn := names.NewMultiname([]*names.Namespace{nsA, nsB}, "X")
	_, err := domain.ResolveMultiname(machine, mn)
	assert.Error(t, err)
}
