package vm

import (
	"fmt"
	"math"

	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/opcodes"
	"github.com/avm2/avm2/values"
)

// run drives act's bytecode to completion, dispatching one instruction at
// a time. Grounded on the teacher's vm.run/executeInstruction (vm/vm.go):
// the same fetch -> profile.observe -> breakpoint-check -> dispatch ->
// advance-IP-unless-the-instruction-branched loop shape, generalized from
// the teacher's (advance bool, err error) per-opcode convention to AVM2's
// operand-stack instruction set.
func (vm *VM) run(act *Activation) (result *values.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if verr, ok := r.(*VMError); ok {
				err = verr
				return
			}
			err = NewErrorAt(HostError, act.IP, "panic during dispatch: %v", r)
		}
	}()

	var executed int64
	for {
		if act.IP < 0 || act.IP >= len(act.Body.Code) {
			return values.Undefined(), nil
		}
		if vm.executionBudget > 0 {
			executed++
			if executed > vm.executionBudget {
				return nil, NewErrorAt(HostError, act.IP, "execution budget exceeded")
			}
		}

		inst := act.Body.Code[act.IP]
		vm.profile.observe(inst.Op)
		if vm.metrics != nil {
			vm.metrics.OpcodesExecuted.Inc()
		}
		if vm.isBreakpoint(act.IP) {
			vm.debugf(DebugLevelBasic, "breakpoint hit at ip=%d op=%v", act.IP, inst.Op)
		}

		advance, execErr := vm.dispatch(act, inst)
		if execErr != nil {
			handled, retResult, handleErr := vm.handleThrow(act, execErr)
			if handleErr != nil {
				return nil, handleErr
			}
			if handled {
				continue
			}
			return retResult, nil
		}

		if act.State == StateReturned {
			return act.ReturnValue, nil
		}

		if advance {
			act.IP++
		}
	}
}

// handleThrow looks for a guarding exception handler for execErr at act's
// current IP; if one exists it pushes the caught value onto the operand
// stack (and, when the entry names a variable, also stores it under that
// name on the innermost scope object) and jumps to the catch target, continuing the same Activation's loop. If
// none exists, execErr propagates to the caller as the method's error
// (spec §4.3's Threw -> Unwinding transition happens one frame at a time,
// driven by invokeMethodBody's caller).
func (vm *VM) handleThrow(act *Activation, execErr error) (handled bool, result *values.Value, err error) {
	excVal, isThrow := errAsValue(execErr)
	if !isThrow {
		return false, nil, execErr
	}
	h := act.handlerFor(act.IP, excVal, vm)
	if h == nil {
		return false, nil, execErr
	}
	if h.varName != nil && h.varName.HasLocal {
		qn := names.NewQName(h.varName.Namespaces[0], h.varName.Local)
		act.Scope.Object.SetProperty(vm, names.NewQNameMultiname(qn.NS, qn.Local), excVal)
	}
	act.Push(excVal)
	act.IP = h.catchIP
	return true, nil, nil
}

// thrownValue wraps a thrown AS3 value so it can travel through the
// standard Go error interface between dispatch and handleThrow.
type thrownValue struct{ v *values.Value }

func (t *thrownValue) Error() string { return fmt.Sprintf("uncaught throw: %s", t.v.String()) }

func errAsValue(err error) (*values.Value, bool) {
	tv, ok := err.(*thrownValue)
	if !ok {
		return nil, false
	}
	return tv.v, true
}

// dispatch executes one instruction, returning whether the interpreter
// should auto-advance IP (false when the instruction already set it, e.g.
// a taken branch, explicit jump, or return).
func (vm *VM) dispatch(act *Activation, inst *opcodes.Instruction) (advance bool, err error) {
	pools := act.Body.Pools

	switch inst.Op {
	case opcodes.OpNop, opcodes.OpLabel, opcodes.OpDebug, opcodes.OpDebugLine, opcodes.OpDebugFile, opcodes.OpBkpt:
		return true, nil

	case opcodes.OpPushByte:
		act.Push(values.NewInt(inst.Operands[0]))
	case opcodes.OpPushShort:
		act.Push(values.NewInt(inst.Operands[0]))
	case opcodes.OpPushInt:
		act.Push(values.NewInt(pools.IntPool[inst.Operands[0]]))
	case opcodes.OpPushUint:
		act.Push(values.NewUint(pools.UintPool[inst.Operands[0]]))
	case opcodes.OpPushDouble:
		act.Push(values.NewNumber(pools.DoublePool[inst.Operands[0]]))
	case opcodes.OpPushString:
		act.Push(values.NewString(pools.StringPool[inst.Operands[0]]))
	case opcodes.OpPushNamespace:
		act.Push(values.NewNamespace(pools.NamespacePool[inst.Operands[0]]))
	case opcodes.OpPushTrue:
		act.Push(values.NewBoolean(true))
	case opcodes.OpPushFalse:
		act.Push(values.NewBoolean(false))
	case opcodes.OpPushNaN:
		act.Push(values.NewNumber(math.NaN()))
	case opcodes.OpPushUndefined:
		act.Push(values.Undefined())
	case opcodes.OpPushNull:
		act.Push(values.Null())
	case opcodes.OpDup:
		act.Push(act.Peek())
	case opcodes.OpPop:
		act.Pop(vm)
	case opcodes.OpSwap:
		b := act.Pop(vm)
		a := act.Pop(vm)
		act.Push(b)
		act.Push(a)

	case opcodes.OpGetLocal:
		slot := int(inst.Operands[0])
		if slot < len(act.Locals) {
			act.Push(act.Locals[slot])
		} else {
			act.Push(values.Undefined())
		}
	case opcodes.OpSetLocal:
		act.setLocalGrow(int(inst.Operands[0]), act.Pop(vm))
	case opcodes.OpKill:
		act.setLocalGrow(int(inst.Operands[0]), values.Undefined())

	case opcodes.OpGetGlobalScope:
		act.Push(values.NewObject(vm.GlobalDomainObject()))
	case opcodes.OpGetScopeObject:
		act.Push(values.NewObject(act.Scope.At(int(inst.Operands[0]))))
	case opcodes.OpPushScope:
		obj := asObject(act.Pop(vm))
		act.Scope = act.Scope.Push(obj, false)
	case opcodes.OpPushWith:
		obj := asObject(act.Pop(vm))
		act.Scope = act.Scope.Push(obj, true)
	case opcodes.OpPopScope:
		if act.Scope.Parent != nil {
			act.Scope = act.Scope.Parent
		}
	case opcodes.OpNewActivation:
		act.Push(values.NewObject(NewPlainObject(vm.Classes.Object, vm.Prototypes.Object)))

	case opcodes.OpFindPropStrict, opcodes.OpFindProperty:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		owner := act.Scope.FindProperty(mn)
		if owner == nil {
			if inst.Op == opcodes.OpFindPropStrict {
				return false, NewErrorAt(ReferenceError, act.IP, "unresolved reference to %s", mn)
			}
			owner = vm.GlobalDomainObject()
		}
		act.Push(values.NewObject(owner))
	case opcodes.OpGetLex:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		owner := act.Scope.FindProperty(mn)
		if owner == nil {
			return false, NewErrorAt(ReferenceError, act.IP, "unresolved reference to %s", mn)
		}
		val, gerr := owner.GetProperty(vm, mn)
		if gerr != nil {
			return false, Wrap(ReferenceError, act.IP, gerr)
		}
		act.Push(val)
	case opcodes.OpGetProperty:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		if mn.IsQName() && vm.isWatched(names.NewQName(mn.Namespaces[0], mn.Local)) {
			vm.debugf(DebugLevelBasic, "watch: getproperty %s at ip=%d", mn, act.IP)
		}
		obj := asObject(act.Pop(vm))
		if obj == nil {
			act.Push(values.Undefined())
		} else {
			val, gerr := obj.GetProperty(vm, mn)
			if gerr != nil {
				return false, Wrap(ReferenceError, act.IP, gerr)
			}
			act.Push(val)
		}
	case opcodes.OpSetProperty:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		if mn.IsQName() && vm.isWatched(names.NewQName(mn.Namespaces[0], mn.Local)) {
			vm.debugf(DebugLevelBasic, "watch: setproperty %s at ip=%d", mn, act.IP)
		}
		val := act.Pop(vm)
		obj := asObject(act.Pop(vm))
		if obj != nil {
			if serr := obj.SetProperty(vm, mn, val); serr != nil {
				return false, Wrap(ReferenceError, act.IP, serr)
			}
		}
	case opcodes.OpInitProperty:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		val := act.Pop(vm)
		obj := asObject(act.Pop(vm))
		if obj != nil {
			if serr := obj.SetProperty(vm, mn, val); serr != nil {
				return false, Wrap(ReferenceError, act.IP, serr)
			}
		}
	case opcodes.OpDeleteProperty:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		obj := asObject(act.Pop(vm))
		ok := obj != nil && obj.DeleteProperty(mn)
		act.Push(values.NewBoolean(ok))
	case opcodes.OpGetSlot:
		obj := asObject(act.Pop(vm))
		idx := int(inst.Operands[0])
		if obj != nil && idx < len(obj.Slots) {
			act.Push(obj.Slots[idx])
		} else {
			act.Push(values.Undefined())
		}
	case opcodes.OpSetSlot:
		val := act.Pop(vm)
		obj := asObject(act.Pop(vm))
		idx := int(inst.Operands[0])
		if obj != nil && idx < len(obj.Slots) {
			obj.Slots[idx] = val
		}

	case opcodes.OpCall:
		argc := int(inst.Operands[0])
		args := act.PopN(vm, argc)
		this := asObject(act.Pop(vm))
		fnVal := act.Pop(vm)
		result, cerr := vm.invokeValue(fnVal, this, args)
		if cerr != nil {
			return false, cerr
		}
		act.Push(result)
	case opcodes.OpCallProperty, opcodes.OpCallPropVoid, opcodes.OpCallPropLex:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		argc := int(inst.Operands[1])
		args := act.PopN(vm, argc)
		obj := asObject(act.Pop(vm))
		if obj == nil {
			return false, NewErrorAt(TypeError, act.IP, "cannot call property on null/undefined")
		}
		val, gerr := obj.GetProperty(vm, mn)
		if gerr != nil {
			return false, Wrap(ReferenceError, act.IP, gerr)
		}
		fnObj := asObject(val)
		if fnObj == nil || fnObj.Variant != VariantFunction {
			return false, NewErrorAt(TypeError, act.IP, "%s is not a function", mn)
		}
		thisArg := obj
		if fnObj.BoundThis != nil {
			thisArg = fnObj.BoundThis
		}
		result, cerr := vm.CallMethod(fnObj.Method, thisArg, args)
		if cerr != nil {
			return false, cerr
		}
		if inst.Op != opcodes.OpCallPropVoid {
			act.Push(result)
		}
	case opcodes.OpConstruct:
		argc := int(inst.Operands[0])
		args := act.PopN(vm, argc)
		classVal := act.Pop(vm)
		classObj := asObject(classVal)
		inst2, cerr := vm.ConstructObject(classObj, args)
		if cerr != nil {
			return false, cerr
		}
		act.Push(values.NewObject(inst2))
	case opcodes.OpConstructProp:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		argc := int(inst.Operands[1])
		args := act.PopN(vm, argc)
		obj := asObject(act.Pop(vm))
		if obj == nil {
			return false, NewErrorAt(TypeError, act.IP, "cannot construct property on null/undefined")
		}
		val, gerr := obj.GetProperty(vm, mn)
		if gerr != nil {
			return false, Wrap(ReferenceError, act.IP, gerr)
		}
		classObj := asObject(val)
		instObj, cerr := vm.ConstructObject(classObj, args)
		if cerr != nil {
			return false, cerr
		}
		act.Push(values.NewObject(instObj))
	case opcodes.OpConstructSuper:
		argc := int(inst.Operands[0])
		args := act.PopN(vm, argc)
		this := asObject(act.Pop(vm))
		if this != nil {
			if serr := vm.ConstructSuper(this, args); serr != nil {
				return false, serr
			}
		}
	case opcodes.OpNewObject:
		count := int(inst.Operands[0])
		obj := NewPlainObject(vm.Classes.Object, vm.Prototypes.Object)
		for i := 0; i < count; i++ {
			val := act.Pop(vm)
			keyVal := act.Pop(vm)
			obj.SetProperty(vm, names.NewQNameMultiname(publicNS, keyVal.ToString(vm)), val)
		}
		act.Push(values.NewObject(obj))
	case opcodes.OpNewArray:
		count := int(inst.Operands[0])
		elems := act.PopN(vm, count)
		arr := &Object{Variant: VariantArray, Class: vm.Classes.Array, Proto: vm.Prototypes.Array, Elements: elems}
		act.Push(values.NewObject(arr))

	case opcodes.OpReturnValue:
		act.ReturnValue = act.Pop(vm)
		act.State = StateReturned
		return false, nil
	case opcodes.OpReturnVoid:
		act.ReturnValue = values.Undefined()
		act.State = StateReturned
		return false, nil
	case opcodes.OpThrow:
		v := act.Pop(vm)
		return false, &thrownValue{v: v}

	case opcodes.OpJump:
		act.IP += int(inst.Operands[0])
		return false, nil
	case opcodes.OpIfTrue:
		if act.Pop(vm).ToBoolean() {
			act.IP += int(inst.Operands[0])
			return false, nil
		}
	case opcodes.OpIfFalse:
		if !act.Pop(vm).ToBoolean() {
			act.IP += int(inst.Operands[0])
			return false, nil
		}
	case opcodes.OpIfEq, opcodes.OpIfNe, opcodes.OpIfStrictEq, opcodes.OpIfStrictNe:
		b := act.Pop(vm)
		a := act.Pop(vm)
		var eq bool
		if inst.Op == opcodes.OpIfStrictEq || inst.Op == opcodes.OpIfStrictNe {
			eq = a.StrictEquals(b)
		} else {
			eq = a.Equals(vm, b)
		}
		taken := eq
		if inst.Op == opcodes.OpIfNe || inst.Op == opcodes.OpIfStrictNe {
			taken = !eq
		}
		if taken {
			act.IP += int(inst.Operands[0])
			return false, nil
		}
	case opcodes.OpIfLt, opcodes.OpIfLe, opcodes.OpIfGt, opcodes.OpIfGe:
		b := act.Pop(vm)
		a := act.Pop(vm)
		cmp, undef := values.Compare(vm, a, b)
		taken := false
		if !undef {
			switch inst.Op {
			case opcodes.OpIfLt:
				taken = cmp < 0
			case opcodes.OpIfLe:
				taken = cmp <= 0
			case opcodes.OpIfGt:
				taken = cmp > 0
			case opcodes.OpIfGe:
				taken = cmp >= 0
			}
		}
		if taken {
			act.IP += int(inst.Operands[0])
			return false, nil
		}
	case opcodes.OpLookupSwitch:
		idx := act.Pop(vm).ToInt32(vm)
		delta := inst.Operands[0]
		if int(idx)+1 < len(inst.Operands) {
			delta = inst.Operands[idx+1]
		}
		act.IP += int(delta)
		return false, nil

	case opcodes.OpAdd:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(addValues(vm, a, b))
	case opcodes.OpSubtract:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewNumber(a.ToNumber(vm) - b.ToNumber(vm)))
	case opcodes.OpMultiply:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewNumber(a.ToNumber(vm) * b.ToNumber(vm)))
	case opcodes.OpDivide:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewNumber(a.ToNumber(vm) / b.ToNumber(vm)))
	case opcodes.OpModulo:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewNumber(floatMod(a.ToNumber(vm), b.ToNumber(vm))))
	case opcodes.OpNegate:
		act.Push(values.NewNumber(-act.Pop(vm).ToNumber(vm)))
	case opcodes.OpIncrement:
		act.Push(values.NewNumber(act.Pop(vm).ToNumber(vm) + 1))
	case opcodes.OpDecrement:
		act.Push(values.NewNumber(act.Pop(vm).ToNumber(vm) - 1))
	case opcodes.OpBitAnd:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewInt(a.ToInt32(vm) & b.ToInt32(vm)))
	case opcodes.OpBitOr:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewInt(a.ToInt32(vm) | b.ToInt32(vm)))
	case opcodes.OpBitXor:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewInt(a.ToInt32(vm) ^ b.ToInt32(vm)))
	case opcodes.OpBitNot:
		act.Push(values.NewInt(^act.Pop(vm).ToInt32(vm)))
	case opcodes.OpLShift:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewInt(a.ToInt32(vm) << (uint32(b.ToInt32(vm)) & 31)))
	case opcodes.OpRShift:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewInt(a.ToInt32(vm) >> (uint32(b.ToInt32(vm)) & 31)))
	case opcodes.OpURShift:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewUint(a.ToUint32(vm) >> (uint32(b.ToInt32(vm)) & 31)))

	case opcodes.OpNot:
		act.Push(values.NewBoolean(!act.Pop(vm).ToBoolean()))
	case opcodes.OpEquals:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewBoolean(a.Equals(vm, b)))
	case opcodes.OpStrictEquals:
		b, a := act.Pop(vm), act.Pop(vm)
		act.Push(values.NewBoolean(a.StrictEquals(b)))
	case opcodes.OpLessThan, opcodes.OpLessEquals, opcodes.OpGreaterThan, opcodes.OpGreaterEquals:
		b, a := act.Pop(vm), act.Pop(vm)
		cmp, undef := values.Compare(vm, a, b)
		var result bool
		if !undef {
			switch inst.Op {
			case opcodes.OpLessThan:
				result = cmp < 0
			case opcodes.OpLessEquals:
				result = cmp <= 0
			case opcodes.OpGreaterThan:
				result = cmp > 0
			case opcodes.OpGreaterEquals:
				result = cmp >= 0
			}
		}
		act.Push(values.NewBoolean(result))
	case opcodes.OpInstanceOf:
		classVal, obj := act.Pop(vm), act.Pop(vm)
		classObj := asObject(classVal)
		target := asObject(obj)
		act.Push(values.NewBoolean(target != nil && classObj != nil && target.IsInstanceOf(classObj)))
	case opcodes.OpIsType, opcodes.OpAsType:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		v := act.Pop(vm)
		owner := act.Scope.FindProperty(mn)
		var classObj *Object
		if owner != nil {
			if cv, _ := owner.GetProperty(vm, mn); cv != nil {
				classObj = asObject(cv)
			}
		}
		target := asObject(v)
		isType := target != nil && classObj != nil && target.IsInstanceOf(classObj)
		if inst.Op == opcodes.OpIsType {
			act.Push(values.NewBoolean(isType))
		} else if isType {
			act.Push(v)
		} else {
			act.Push(values.Null())
		}
	case opcodes.OpTypeOf:
		act.Push(values.NewString(typeOfName(act.Pop(vm))))
	case opcodes.OpIn:
		obj := asObject(act.Pop(vm))
		key := act.Pop(vm)
		mn := names.NewQNameMultiname(publicNS, key.ToString(vm))
		act.Push(values.NewBoolean(obj != nil && obj.HasProperty(mn)))

	case opcodes.OpCoerce:
		mn := vm.resolveMultiname(act, int(inst.Operands[0]))
		v := act.Pop(vm)
		coerced, cerr := v.ToType(vm, mn.Local)
		if cerr != nil {
			return false, Wrap(TypeError, act.IP, cerr)
		}
		act.Push(coerced)
	case opcodes.OpCoerceA:
		// no-op: value is already "any"-typed on the stack
	case opcodes.OpCoerceS:
		v := act.Pop(vm)
		if v.IsNullOrUndefined() {
			act.Push(v)
		} else {
			act.Push(values.NewString(v.ToString(vm)))
		}
	case opcodes.OpConvertI:
		act.Push(values.NewInt(act.Pop(vm).ToInt32(vm)))
	case opcodes.OpConvertU:
		act.Push(values.NewUint(act.Pop(vm).ToUint32(vm)))
	case opcodes.OpConvertD:
		act.Push(values.NewNumber(act.Pop(vm).ToNumber(vm)))
	case opcodes.OpConvertB:
		act.Push(values.NewBoolean(act.Pop(vm).ToBoolean()))
	case opcodes.OpConvertS:
		act.Push(values.NewString(act.Pop(vm).ToString(vm)))
	case opcodes.OpConvertO:
		v := act.Pop(vm)
		boxed, cerr := v.ToObject(vm)
		if cerr != nil {
			return false, Wrap(TypeError, act.IP, cerr)
		}
		act.Push(boxed)

	default:
		return false, NewErrorAt(HostError, act.IP, "unimplemented opcode %v", inst.Op)
	}

	return true, nil
}

// invokeValue calls fnVal (expected to be a FunctionObject) with this and
// args, the shape the plain `call` opcode needs.
func (vm *VM) invokeValue(fnVal *values.Value, this *Object, args []*values.Value) (*values.Value, error) {
	fnObj := asObject(fnVal)
	if fnObj == nil || fnObj.Variant != VariantFunction {
		return nil, NewError(TypeError, "value is not callable")
	}
	thisArg := this
	if fnObj.BoundThis != nil {
		thisArg = fnObj.BoundThis
	}
	return vm.CallMethod(fnObj.Method, thisArg, args)
}

// resolveMultiname fetches the compile-time multiname at poolIndex,
// substituting runtime-supplied namespace/local components from the
// operand stack for *RTQName*/*L opcode forms (spec §4.2).
func (vm *VM) resolveMultiname(act *Activation, poolIndex int) *names.Multiname {
	mn := act.Body.Pools.MultinamePool[poolIndex]
	if mn.RuntimeLocal {
		local := act.Pop(vm).ToString(vm)
		mn = mn.WithRuntimeName(local)
	}
	if mn.RuntimeNamespace {
		nsVal := act.Pop(vm)
		ns, _ := nsVal.Namespace()
		if concreteNS, ok := ns.(*names.Namespace); ok {
			mn = mn.WithRuntimeNamespace(concreteNS)
		}
	}
	return mn
}

// addValues implements ECMA-262 11.6.1: both operands go through
// ToPrimitive (default hint) first, and the result is a string
// concatenation if either *resulting primitive* is a string.
func addValues(host *VM, a, b *values.Value) *values.Value {
	ap := toAddPrimitive(host, a)
	bp := toAddPrimitive(host, b)
	if ap.IsString() || bp.IsString() {
		return values.NewString(ap.ToString(host) + bp.ToString(host))
	}
	return values.NewNumber(ap.ToNumber(host) + bp.ToNumber(host))
}

// toAddPrimitive applies ToPrimitive with the default hint (valueOf, then
// toString) to an object operand, matching the order VM.ToPrimitiveNumber
// uses but preserving the primitive's own kind instead of forcing it to a
// number, so a valueOf() that returns a string still concatenates.
func toAddPrimitive(host *VM, v *values.Value) *values.Value {
	if !v.IsObject() {
		return v
	}
	obj := asObject(v)
	if obj == nil {
		return v
	}
	if prim, ok := host.tryDefaultValue(obj, "valueOf"); ok {
		return prim
	}
	if prim, ok := host.tryDefaultValue(obj, "toString"); ok {
		return prim
	}
	return values.NewNumber(0)
}

func typeOfName(v *values.Value) string {
	switch v.Kind {
	case values.KindUndefined:
		return "undefined"
	case values.KindBoolean:
		return "boolean"
	case values.KindInt, values.KindUint, values.KindNumber:
		return "number"
	case values.KindString:
		return "string"
	case values.KindObject:
		obj := asObject(v)
		if obj != nil && obj.Variant == VariantFunction {
			return "function"
		}
		return "object"
	default:
		return "object"
	}
}

// floatMod implements AS3 "%": C fmod semantics, where the result takes
// the dividend's sign (-10 % 3 == -1, not 2).
func floatMod(a, b float64) float64 {
	return math.Mod(a, b)
}
