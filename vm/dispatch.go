package vm

import (
	"fmt"

	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/registry"
	"github.com/avm2/avm2/values"
)

// NewBoundMethod wraps ref as a callable FunctionObject bound to this
// (spec §4.4's "call" contract for a method extracted off an instance).
func NewBoundMethod(host *VM, ref *registry.MethodRef, this *Object) *Object {
	return &Object{
		Variant:         VariantFunction,
		Class:           host.Classes.Function,
		Proto:           host.Prototypes.Function,
		Method:          ref,
		BoundThis:       this,
		IsMethodClosure: true,
	}
}

// NewClosure wraps ref as a FunctionObject capturing scope (the newfunction
// opcode's result, spec §4.3): unlike a bound method, its `this` is
// resolved dynamically at call time unless later bound.
func NewClosure(host *VM, ref *registry.MethodRef, scope *Scope) *Object {
	return &Object{
		Variant:  VariantFunction,
		Class:    host.Classes.Function,
		Proto:    host.Prototypes.Function,
		Method:   ref,
		Closure:  scope,
	}
}

// CallMethod implements the "call" contract of spec §4.4: it either
// invokes the native Go closure (MethodNative) with args exactly as
// given, or runs the bytecode body (MethodBytecode/MethodEntry) through
// the interpreter loop after resolving argument coercion via an
// Activation.
func (vm *VM) CallMethod(ref *registry.MethodRef, this *Object, args []*values.Value) (*values.Value, error) {
	if ref == nil {
		return values.Undefined(), nil
	}
	switch ref.Kind {
	case registry.MethodNative:
		fn, ok := ref.Body.(NativeFunc)
		if !ok {
			return nil, NewError(HostError, "native method %s has no callable body", ref.Name)
		}
		return fn(vm, this, args)
	case registry.MethodBytecode, registry.MethodEntry:
		scope := (&Scope{}).Push(vm.GlobalDomainObject(), false)
		if this != nil && this.Class != nil {
			scope = scope.Push(this.Class, false)
		}
		return vm.invokeMethodBody(ref, this, args, scope)
	default:
		return nil, NewError(HostError, "unknown method kind for %s", ref.Name)
	}
}

// NativeFunc is the Go-side shape a MethodNative's Body holds: a host
// function receiving the VM, the bound `this`, and positional arguments.
// Mirrors the teacher's registry.BuiltinImplementation (registry/types.go)
// for the same "native function pointer behind an opaque interface{}"
// reason: registry cannot import vm, so the concrete func type lives here
// instead and is stored as interface{} in registry.MethodRef.Body.
type NativeFunc func(host *VM, this *Object, args []*values.Value) (*values.Value, error)

// invokeMethodBody runs ref's bytecode body as a fresh Activation chained
// under the caller via scope, driving it through the interpreter loop to
// completion (spec §4.3's full state machine).
func (vm *VM) invokeMethodBody(ref *registry.MethodRef, this *Object, args []*values.Value, scope *Scope) (*values.Value, error) {
	body, _ := ref.Body.(*abc.MethodBodyData)
	act := NewActivation(ref, body, this, scope)

	if err := act.ResolveParameters(vm, args); err != nil {
		return nil, err
	}
	act.InstallScope()

	if body == nil {
		// A bytecode-kind method with no decoded body is a decode-layer
		// defect, not a VM runtime condition (spec §1: the ABC decoder is
		// external and responsible for supplying bodies).
		return nil, NewError(DecodeError, "method %s declared MethodBytecode with no body", ref.Name)
	}

	if vm.metrics != nil {
		vm.metrics.ActivationDepth.Inc()
		defer vm.metrics.ActivationDepth.Dec()
	}
	vm.callDepth++
	defer func() { vm.callDepth-- }()
	vm.debugf(DebugLevelDetailed, "entering %s, %s", ref.Name, describeActivationDepth(vm.callDepth))

	act.State = StateRunning
	result, err := vm.run(act)
	if err != nil {
		act.State = StateThrew
		return nil, err
	}
	act.State = StateSettled
	return result, nil
}

// ConstructObject implements spec §4.4's "construct" contract: allocates
// a new instance chained to classObj's InstancePrototype, runs classObj's
// own instance initializer (if any) with the instance as receiver, and
// returns the new instance. Superclass initializers are not run here;
// they run only when that initializer's body executes constructsuper.
func (vm *VM) ConstructObject(classObj *Object, args []*values.Value) (*Object, error) {
	if classObj == nil || classObj.Variant != VariantClass {
		return nil, NewError(TypeError, "cannot construct a non-class value")
	}
	instance := NewPlainObject(classObj, classObj.InstancePrototype)

	if classObj.ClassTemplate.InstanceInit != nil {
		if _, err := vm.CallMethod(classObj.ClassTemplate.InstanceInit, instance, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// ConstructSuper runs this.Class.Super's instance initializer against an
// already-allocated instance, the constructsuper opcode's contract.
func (vm *VM) ConstructSuper(instance *Object, args []*values.Value) error {
	if instance.Class == nil || instance.Class.Super == nil {
		return nil
	}
	super := instance.Class.Super
	if super.ClassTemplate.InstanceInit == nil {
		return nil
	}
	_, err := vm.CallMethod(super.ClassTemplate.InstanceInit, instance, args)
	return err
}

// RunStackFrameForCallable is the host API entry point spec §6 names for
// invoking an exported definition directly: it resolves name in domain
// and calls it with args.
func (vm *VM) RunStackFrameForCallable(domain *Domain, qname string, ns *names.Namespace, args []*values.Value) (*values.Value, error) {
	obj, err := domain.GetProperty(vm, names.NewQName(ns, qname))
	if err != nil {
		return nil, err
	}
	if obj.Variant != VariantFunction {
		return nil, fmt.Errorf("%s is not callable", qname)
	}
	return vm.CallMethod(obj.Method, obj.BoundThis, args)
}
