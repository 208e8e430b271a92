package vm

import (
	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/registry"
	"github.com/avm2/avm2/values"
)

// ActivationState is the state machine an Activation moves through
// exactly once, in order, per spec §4.3.
type ActivationState byte

const (
	StateConstructed ActivationState = iota
	StateArgsCoerced
	StateScopeInstalled
	StateRunning
	StateReturned
	StateThrew
	StateUnwinding
	StateSettled
)

// exceptionHandler is one active exception-table entry for the current
// Activation, grounded on the teacher's exceptionHandler (vm/context.go):
// catch/finally target offsets paired with the guarded [From, To) range.
type exceptionHandler struct {
	from, to int
	catchIP  int
	typeName *names.Multiname
	varName  *names.Multiname
}

// Activation is one call frame: the operand-stack window, local variable
// slots, scope chain, and bytecode cursor for a single method invocation
// (spec §3, §4.3). Grounded on the teacher's CallFrame (vm/context.go),
// generalized from PHP's register/temp-var model to AVM2's combined
// operand-stack-plus-locals model.
type Activation struct {
	State ActivationState

	Method *registry.MethodRef
	Body   *abc.MethodBodyData

	This   *Object
	Locals []*values.Value
	Stack  []*values.Value // operand stack window, grows to Body.MaxStack
	Scope  *Scope

	IP int

	handlers []exceptionHandler

	pendingException *values.Value

	ReturnValue *values.Value
	Caller      *Activation
}

// NewActivation constructs an Activation ready for argument resolution.
// Grounded on CallFrame construction in the teacher's vm.Execute
// (vm/vm.go), which likewise allocates Locals/TempVars sized from the
// compiled function before argument binding.
func NewActivation(method *registry.MethodRef, body *abc.MethodBodyData, this *Object, scope *Scope) *Activation {
	maxLocals := 1
	if body != nil {
		maxLocals = body.MaxLocals
		if maxLocals < 1 {
			maxLocals = 1
		}
	}
	locals := make([]*values.Value, maxLocals)
	for i := range locals {
		locals[i] = values.Undefined()
	}
	locals[0] = values.NewObject(this)

	act := &Activation{
		State:  StateConstructed,
		Method: method,
		Body:   body,
		This:   this,
		Locals: locals,
		Scope:  scope,
	}
	if body != nil {
		act.Stack = make([]*values.Value, 0, body.MaxStack)
		for _, e := range body.ExceptionTable {
			act.handlers = append(act.handlers, exceptionHandler{
				from: e.From, to: e.To, catchIP: e.TargetIP,
				typeName: e.TypeName, varName: e.VarName,
			})
		}
	}
	return act
}

// ResolveParameters implements spec §4.3's resolve_parameters: binds argc
// positional args into Locals[1:], applying optional defaults and
// coercing each to its declared type, then collects a rest array if the
// method declares one. Moves the Activation from Constructed to
// ArgsCoerced, or returns an ArityError without changing state when argc
// falls outside [minArgs, maxArgs] and the method takes no rest param.
func (a *Activation) ResolveParameters(host *VM, args []*values.Value) error {
	if a.State != StateConstructed {
		return NewError(HostError, "ResolveParameters called out of order (state=%d)", a.State)
	}

	min := a.Method.MinArgs()
	max := a.Method.MaxArgs()
	if len(args) < min || (len(args) > max && !a.Method.NeedsRest) {
		return NewError(ArityError, "expected between %d and %d arguments, got %d", min, max, len(args))
	}

	for i, typeName := range a.Method.ParamTypes {
		var raw *values.Value
		switch {
		case i < len(args):
			raw = args[i]
		case i-min < len(a.Method.OptionalDefaults):
			if dv, ok := a.Method.OptionalDefaults[i-min].(*values.Value); ok {
				raw = dv
			} else {
				raw = values.Undefined()
			}
		default:
			raw = values.Undefined()
		}
		coerced, err := raw.ToType(host, typeName)
		if err != nil {
			return Wrap(TypeError, a.IP, err)
		}
		a.setLocalGrow(i+1, coerced)
	}

	if a.Method.NeedsRest {
		restStart := len(a.Method.ParamTypes)
		var rest []*values.Value
		if len(args) > restStart {
			rest = append(rest, args[restStart:]...)
		}
		restObj := &Object{Variant: VariantArray, Class: host.Classes.Array, Proto: host.Prototypes.Array, Elements: rest}
		a.setLocalGrow(len(a.Method.ParamTypes)+1, values.NewObject(restObj))
	}

	a.State = StateArgsCoerced
	return nil
}

func (a *Activation) setLocalGrow(slot int, v *values.Value) {
	if slot >= len(a.Locals) {
		grown := make([]*values.Value, slot+1)
		copy(grown, a.Locals)
		for i := len(a.Locals); i < len(grown); i++ {
			grown[i] = values.Undefined()
		}
		a.Locals = grown
	}
	a.Locals[slot] = v
}

// InstallScope moves the Activation to ScopeInstalled. It does not change
// the scope chain: that is the chain passed to NewActivation, which
// CallMethod builds from the global domain object and the receiver's
// class.
func (a *Activation) InstallScope() {
	a.State = StateScopeInstalled
}

// Push appends v to the operand stack window.
func (a *Activation) Push(v *values.Value) {
	a.Stack = append(a.Stack, v)
}

// Pop removes and returns the top of the operand stack. On underflow it
// follows the lenient default from SPEC_FULL.md §5: return Undefined
// (logging via the host trace sink when the debug level is at least
// DebugLevelBasic), unless the host is in strict-stack
// mode, in which case it panics (caught by the interpreter's dispatch
// loop and converted into a HostError).
func (a *Activation) Pop(host *VM) *values.Value {
	if len(a.Stack) == 0 {
		if host.strictStack {
			panic(NewErrorAt(HostError, a.IP, "operand stack underflow"))
		}
		host.debugf(DebugLevelBasic, "operand stack underflow at ip=%d, returning Undefined", a.IP)
		return values.Undefined()
	}
	v := a.Stack[len(a.Stack)-1]
	a.Stack = a.Stack[:len(a.Stack)-1]
	return v
}

// PopN pops n values and returns them in original (bottom-to-top) order,
// the shape call/construct-family opcodes need for argument lists.
func (a *Activation) PopN(host *VM, n int) []*values.Value {
	out := make([]*values.Value, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = a.Pop(host)
	}
	return out
}

// Peek returns the top of the operand stack without removing it.
func (a *Activation) Peek() *values.Value {
	if len(a.Stack) == 0 {
		return values.Undefined()
	}
	return a.Stack[len(a.Stack)-1]
}

// handlerFor returns the innermost exception handler guarding ip that
// accepts exc (nil typeName/any catches everything), or nil.
func (a *Activation) handlerFor(ip int, exc *values.Value, host *VM) *exceptionHandler {
	for i := len(a.handlers) - 1; i >= 0; i-- {
		h := a.handlers[i]
		if ip < h.from || ip >= h.to {
			continue
		}
		if h.typeName == nil {
			return &a.handlers[i]
		}
		obj := asObject(exc)
		if obj == nil {
			continue
		}
		owner := a.Scope.FindProperty(h.typeName)
		if owner == nil {
			continue
		}
		classVal, gerr := owner.GetProperty(host, h.typeName)
		if gerr != nil || classVal == nil {
			continue
		}
		classObj := asObject(classVal)
		if classObj != nil && obj.IsInstanceOf(classObj) {
			return &a.handlers[i]
		}
	}
	return nil
}
