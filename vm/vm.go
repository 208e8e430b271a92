// Package vm implements the mutually-referential core of the AS3 virtual
// machine: Object, Scope, Domain, TranslationUnit/Script, Activation,
// Method dispatch, and Bootstrap all live here together because each
// depends on the others (an Object's Class is a ClassObject, which is
// itself an Object; a Domain's exports are Objects; an Activation holds a
// Scope of Objects) — precisely the shape the teacher's own vm package
// takes with ExecutionContext, CallFrame, and ClassManager (vm/context.go,
// vm/call_stack.go, vm/class_manager.go) all co-resident for the same
// reason. Leaf packages (values, names, propmap, opcodes, abc, registry)
// never import this package, breaking what would otherwise be a cycle.
package vm

import (
	"io"
	"sync"

	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/propmap"
	"github.com/avm2/avm2/registry"
	"github.com/avm2/avm2/values"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// VM is the host-facing entry point: one VM owns one bootstrap-realized
// built-in class graph, one system domain tree, and the loaded
// TranslationUnits running against it (spec §3, §6).
type VM struct {
	ID uuid.UUID

	mu    sync.Mutex
	units []*TranslationUnit

	GlobalDomain       *Domain
	globalDomainObject *Object

	Prototypes *SystemPrototypes
	Classes    *SystemClasses

	broadcast *BroadcastRegistry

	traceWriter   io.Writer
	debugLevel    DebugLevel
	strictStack   bool
	outputBuffers *OutputBufferStack

	metrics *Metrics

	// executionBudget caps the number of opcodes a single method
	// activation (one pass of the interpreter loop; each nested call
	// counts separately) may execute before returning a HostError, the "design-level
	// hook point for a per-opcode budget counter" spec §5 calls for.
	// Zero means unlimited.
	executionBudget int64

	breakpoints map[int]struct{}
	watchNames  map[names.QName]struct{}

	profile *profileState

	callDepth int
}

// Option configures a VM at construction time, grounded on the teacher's
// VMFactory constructor-injection pattern (vmfactory/factory.go) expressed
// as idiomatic functional options instead of a single factory struct.
type Option func(*VM)

// WithTraceWriter directs trace()/diagnostic output to w.
func WithTraceWriter(w io.Writer) Option {
	return func(vm *VM) { vm.traceWriter = w }
}

// WithDebugLevel sets the verbosity of interpreter tracing.
func WithDebugLevel(level DebugLevel) Option {
	return func(vm *VM) { vm.debugLevel = level }
}

// WithStrictStack enables strict-mode operand-stack-underflow panics
// instead of the lenient Undefined-on-underflow default (SPEC_FULL.md §5).
func WithStrictStack() Option {
	return func(vm *VM) { vm.strictStack = true }
}

// WithMetrics registers a Prometheus metric set against reg and attaches
// it to the VM.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(vm *VM) { vm.metrics = NewMetrics(reg) }
}

// WithExecutionBudget caps bytecode dispatch at n instructions per method
// activation; nested calls each get their own count of n.
func WithExecutionBudget(n int64) Option {
	return func(vm *VM) { vm.executionBudget = n }
}

// New constructs a VM, runs the bootstrap sequence, and applies opts.
func New(opts ...Option) *VM {
	vm := &VM{
		ID:            uuid.New(),
		broadcast:     NewBroadcastRegistry(),
		outputBuffers: &OutputBufferStack{},
		breakpoints:   make(map[int]struct{}),
		watchNames:    make(map[names.QName]struct{}),
		profile:       newProfileState(),
	}
	vm.GlobalDomain = NewDomain(nil)
	vm.bootstrap()

	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// GlobalDomainObject returns the DomainObject wrapping the VM's system
// domain, the outermost cell every Script's scope chain is built on
// (spec §3).
func (vm *VM) GlobalDomainObject() *Object { return vm.globalDomainObject }

// ActivationDepth returns the number of bytecode method invocations
// currently nested on vm's Go call stack, for the REPL's `:stack`
// introspection command and DebugLevelDetailed tracing.
func (vm *VM) ActivationDepth() int { return vm.callDepth }

// SetBreakpoint arms a breakpoint at bytecode offset ip, gated behind
// DebugLevelBasic tracing the same way the teacher's
// VirtualMachine.SetBreakpoint (vm/vm.go) does for PHP instruction
// offsets.
func (vm *VM) SetBreakpoint(ip int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.breakpoints[ip] = struct{}{}
}

// WatchName arms a watch on qname, causing get/set-property dispatch
// against that name to emit a DebugLevelBasic trace line.
func (vm *VM) WatchName(qname names.QName) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.watchNames[qname] = struct{}{}
}

func (vm *VM) isBreakpoint(ip int) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.breakpoints[ip]
	return ok
}

func (vm *VM) isWatched(qname names.QName) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.watchNames[qname]
	return ok
}

// --- values.Host implementation ---

// ToPrimitiveNumber implements ECMA-262 [[DefaultValue]]("number") for
// object values: valueOf() then toString(), the first that yields a
// primitive.
func (vm *VM) ToPrimitiveNumber(v *values.Value) float64 {
	obj := asObject(v)
	if obj == nil {
		return 0
	}
	if prim, ok := vm.tryDefaultValue(obj, "valueOf"); ok {
		return prim.ToNumber(vm)
	}
	if prim, ok := vm.tryDefaultValue(obj, "toString"); ok {
		return prim.ToNumber(vm)
	}
	return 0
}

// ToPrimitiveString implements [[DefaultValue]]("string"): toString()
// then valueOf().
func (vm *VM) ToPrimitiveString(v *values.Value) string {
	obj := asObject(v)
	if obj == nil {
		return "[object Object]"
	}
	if prim, ok := vm.tryDefaultValue(obj, "toString"); ok {
		return prim.ToString(vm)
	}
	if prim, ok := vm.tryDefaultValue(obj, "valueOf"); ok {
		return prim.ToString(vm)
	}
	return "[object " + classNameOf(obj) + "]"
}

func (vm *VM) tryDefaultValue(obj *Object, methodName string) (*values.Value, bool) {
	mn := names.NewQNameMultiname(publicNS, methodName)
	val, err := obj.GetProperty(vm, mn)
	if err != nil || val == nil || !val.IsObject() {
		return nil, false
	}
	fnObj := asObject(val)
	if fnObj == nil || fnObj.Variant != VariantFunction {
		return nil, false
	}
	result, err := vm.CallMethod(fnObj.Method, obj, nil)
	if err != nil || result == nil || result.IsObject() {
		return nil, false
	}
	return result, true
}

// Box implements ToObject for primitives by wrapping primitive in a plain
// Object instance whose dynamic "valueOf" property holds the primitive
// value itself. No Boolean/int/uint/Number/String wrapper class is used.
func (vm *VM) Box(primitive *values.Value) *values.Value {
	obj := NewPlainObject(vm.Classes.Object, vm.Prototypes.Object)
	obj.Dynamic = map[names.QName]*values.Value{
		names.NewQName(publicNS, "valueOf"): primitive,
	}
	obj.dynamicOrder = []names.QName{names.NewQName(publicNS, "valueOf")}
	return values.NewObject(obj)
}

// CoerceToType implements the ToType(T) coercion spec §4.1 describes:
// for class types null passes through unchanged and undefined becomes
// null, objects are checked against the class chain, and primitives
// widen structurally to the five primitive AS3 types (int, uint, Number,
// String, Boolean).
func (vm *VM) CoerceToType(v *values.Value, typeName string) (*values.Value, error) {
	switch typeName {
	case "", "*":
		return v, nil
	case "int":
		return values.NewInt(v.ToInt32(vm)), nil
	case "uint":
		return values.NewUint(v.ToUint32(vm)), nil
	case "Number":
		return values.NewNumber(v.ToNumber(vm)), nil
	case "String":
		if v.IsNullOrUndefined() {
			return v, nil
		}
		return values.NewString(v.ToString(vm)), nil
	case "Boolean":
		return values.NewBoolean(v.ToBoolean()), nil
	default:
		if v.IsNull() {
			return v, nil
		}
		if v.IsUndefined() {
			return values.Null(), nil
		}
		obj := asObject(v)
		if obj == nil {
			return nil, NewError(TypeError, "cannot coerce %s to %s", v.Kind, typeName)
		}
		target, err := vm.GlobalDomain.GetProperty(vm, names.NewQName(publicNS, typeName))
		if err == nil && target != nil && !obj.IsInstanceOf(target) {
			return nil, NewError(TypeError, "type mismatch: %s is not a %s", classNameOf(obj), typeName)
		}
		return v, nil
	}
}

func asObject(v *values.Value) *Object {
	raw, ok := v.Object()
	if !ok {
		return nil
	}
	obj, _ := raw.(*Object)
	return obj
}

// realizeClass performs ClassObject.from_class (spec §4.5): given a
// declarative registry.Class template pair (instance-side, static-side),
// construct a live ClassObject with populated InstanceTraits/ClassTraits
// maps, chained to its superclass, and run its static initializer.
func (vm *VM) realizeClass(data *abc.ClassData, domain *Domain) (*Object, error) {
	instanceTpl := data.Instance
	staticTpl := data.Static

	var super *Object
	if instanceTpl.Super != nil {
		var err error
		super, err = domain.GetProperty(vm, names.NewQName(instanceTpl.Super.Namespaces[0], instanceTpl.Super.Local))
		if err != nil {
			return nil, err
		}
	} else {
		super = vm.Classes.Object
	}

	instanceTraits := propmap.ClonePropertyMap(super.InstanceTraits)
	populateTraits(instanceTraits, instanceTpl.InstanceTraits)

	classTraits := propmap.NewPropertyMap()
	populateTraits(classTraits, staticTpl.InstanceTraits)

	proto := NewPlainObject(super, super.InstancePrototype)
	proto.Variant = VariantScript

	classObj := &Object{
		Variant:           VariantClass,
		Class:             vm.Classes.Class,
		Proto:             vm.Prototypes.Class,
		ClassTemplate:     instanceTpl,
		InstanceTraits:    instanceTraits,
		ClassTraits:       classTraits,
		Super:             super,
		InstancePrototype: proto,
		Slots:             make([]*values.Value, classTraits.NextSlot()),
	}
	for i := range classObj.Slots {
		classObj.Slots[i] = values.Undefined()
	}
	proto.Class = classObj

	if staticTpl.ClassInit != nil {
		scope := (&Scope{}).Push(vm.GlobalDomainObject(), false)
		if _, err := vm.invokeMethodBody(staticTpl.ClassInit, classObj, nil, scope); err != nil {
			return nil, err
		}
	}

	if vm.metrics != nil {
		vm.metrics.ScriptInits.Inc()
	}

	return classObj, nil
}

func populateTraits(m *propmap.PropertyMap, traits []propmap.Trait) {
	for _, t := range traits {
		switch t.Kind {
		case propmap.KindSlot:
			m.DefineSlot(t.Name, t.DeclaredType, false, t.SlotIndex)
		case propmap.KindConst:
			m.DefineSlot(t.Name, t.DeclaredType, true, t.SlotIndex)
		case propmap.KindMethod:
			m.DefineMethod(t.Name, t.Ref, t.Final, t.Override)
		case propmap.KindGetter:
			ref, _ := t.Ref.(*registry.MethodRef)
			m.DefineGetter(t.Name, ref, t.Final, t.Override)
		case propmap.KindSetter:
			ref, _ := t.Ref.(*registry.MethodRef)
			m.DefineSetter(t.Name, ref, t.Final, t.Override)
		}
	}
}
