package vm_test

import (
	"bytes"
	"testing"

	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/registry"
	"github.com/avm2/avm2/values"
	"github.com/avm2/avm2/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestArithmeticTrace covers spec §8 scenario 2: a script that pushes 1,
// 2, adds them, and calls trace() should write exactly "3" to the trace
// sink.
func TestArithmeticTrace(t *testing.T) {
	var out bytes.Buffer
	machine := vm.New(vm.WithTraceWriter(&out))

	file := &abc.File{}
	ns := publicNS()
	traceMN := names.NewQNameMultiname(ns, "trace")
	file.MultinamePool = []*names.Multiname{traceMN}

	init := bytecodeMethod("script_init", file, 4, 1,
		inst("findpropstrict", 0),
		inst("pushbyte", 1),
		inst("pushbyte", 2),
		inst("add"),
		inst("callpropvoid", 0, 1),
		inst("returnvoid"),
	)
	script := &abc.ScriptData{Name: "main", Init: init}
	file.Scripts = []*abc.ScriptData{script}

	_, err := machine.LoadABC(file, machine.GlobalDomain, true)
	require.NoError(t, err)

	assert.Equal(t, "3\n", out.String())
}

// TestExceptionUnwinding covers spec §8 scenario 5: a thrown value is
// caught by a matching (catch-all) exception-table entry and execution
// resumes at the handler with the thrown value available.
func TestExceptionUnwinding(t *testing.T) {
	machine := vm.New()

	file := &abc.File{StringPool: []string{"boom"}}
	body := bytecodeMethod("thrower", file, 4, 1,
		inst("pushbyte", 1),
		inst("pushbyte", 2),
		inst("add"),
		inst("pop"),
		inst("pushstring", 0),
		inst("throw"),
		inst("returnvalue"),
	)
	body.Body.(*abc.MethodBodyData).ExceptionTable = []abc.ExceptionEntry{
		{From: 0, To: 6, TargetIP: 6},
	}

	result, err := machine.CallMethod(body, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "boom", result.ToString(machine))
}

// TestLazyScriptInit covers spec §8 scenario 6: loading two scripts
// lazily, resolving an export declared by the first must run only the
// first script's initializer.
func TestLazyScriptInit(t *testing.T) {
	machine := vm.New()
	ns := publicNS()
	flag0 := names.NewQName(ns, "flag0")
	flag1 := names.NewQName(ns, "flag1")

	file := &abc.File{}
	noop := bytecodeMethod("init", file, 0, 1, inst("returnvoid"))

	script0 := &abc.ScriptData{
		Name: "script0",
		Init: noop,
		Traits: []abc.ScriptTrait{
			{Name: flag0, Kind: abc.ScriptTraitSlot},
		},
	}
	script1 := &abc.ScriptData{
		Name: "script1",
		Init: noop,
		Traits: []abc.ScriptTrait{
			{Name: flag1, Kind: abc.ScriptTraitSlot},
		},
	}
	file.Scripts = []*abc.ScriptData{script0, script1}

	unit, err := machine.LoadABC(file, machine.GlobalDomain, false)
	require.NoError(t, err)

	for _, s := range unit.Scripts() {
		assert.False(t, s.IsInitialized(), "no script should be initialized before any lookup")
	}

	_, _ = machine.GlobalDomain.GetProperty(machine, flag0)

	for _, s := range unit.Scripts() {
		if s.Data.Name == "script0" {
			assert.True(t, s.IsInitialized(), "script declaring the resolved export must have run")
		} else {
			assert.False(t, s.IsInitialized(), "unrelated script must stay uninitialized")
		}
	}
}

// TestModuloTakesDividendSign covers AS3/C fmod semantics: the result's
// sign follows the dividend, not the divisor (-10 % 3 == -1, never 2).
func TestModuloTakesDividendSign(t *testing.T) {
	machine := vm.New()
	file := &abc.File{}
	body := bytecodeMethod("mod", file, 4, 1,
		inst("pushbyte", -10),
		inst("pushbyte", 3),
		inst("modulo"),
		inst("returnvalue"),
	)

	result, err := machine.CallMethod(body, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(-1), result.ToNumber(machine))
}

// TestModuloNegativeDivisorTerminates guards against a prior bug where a
// negative divisor made the hand-rolled modulo loop's termination
// condition always true, hanging the VM instead of returning a result.
func TestModuloNegativeDivisorTerminates(t *testing.T) {
	machine := vm.New()
	file := &abc.File{}
	body := bytecodeMethod("mod", file, 4, 1,
		inst("pushbyte", 10),
		inst("pushbyte", -3),
		inst("modulo"),
		inst("returnvalue"),
	)

	result, err := machine.CallMethod(body, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, float64(1), result.ToNumber(machine))
}

// TestAddObjectValueOfConcatenatesWhenStringValued covers ECMA-262
// 11.6.1's ToPrimitive-then-decide rule: an object whose valueOf()
// returns a string must concatenate with "+", not silently numeric-add
// (the prior bug computed ToPrimitive and then discarded it).
func TestAddObjectValueOfConcatenatesWhenStringValued(t *testing.T) {
	machine := vm.New()
	ns := publicNS()

	obj := vm.NewPlainObject(machine.Classes.Object, machine.Prototypes.Object)
	valueOfRef := &registry.MethodRef{
		Name: "valueOf",
		Kind: registry.MethodNative,
		Body: vm.NativeFunc(func(host *vm.VM, this *vm.Object, args []*values.Value) (*values.Value, error) {
			return values.NewString("left"), nil
		}),
	}
	require.NoError(t, obj.SetProperty(machine, names.NewQNameMultiname(ns, "valueOf"), values.NewObject(vm.NewClosure(machine, valueOfRef, nil))))

	file := &abc.File{StringPool: []string{"right"}}
	body := bytecodeMethod("concat", file, 4, 1,
		inst("getlocal", 0),
		inst("pushstring", 0),
		inst("add"),
		inst("returnvalue"),
	)

	result, err := machine.CallMethod(body, obj, nil)
	require.NoError(t, err)
	assert.Equal(t, "leftright", result.ToString(machine))
}
