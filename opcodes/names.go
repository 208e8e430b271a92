package opcodes

// names is the canonical mnemonic table for every OpCode, used both for
// diagnostic rendering (String) and by external ABC decoders (e.g.
// abcjson) that encode instructions by name rather than by raw byte.
var names = map[OpCode]string{
	OpNop: "nop", OpPushByte: "pushbyte", OpPushShort: "pushshort",
	OpPushInt: "pushint", OpPushUint: "pushuint", OpPushDouble: "pushdouble",
	OpPushString: "pushstring", OpPushNamespace: "pushnamespace",
	OpPushTrue: "pushtrue", OpPushFalse: "pushfalse", OpPushNaN: "pushnan",
	OpPushUndefined: "pushundefined", OpPushNull: "pushnull",
	OpDup: "dup", OpPop: "pop", OpSwap: "swap",

	OpGetLocal: "getlocal", OpSetLocal: "setlocal", OpKill: "kill",
	OpGetGlobalScope: "getglobalscope", OpGetScopeObject: "getscopeobject",
	OpPushScope: "pushscope", OpPushWith: "pushwith", OpPopScope: "popscope",
	OpNewActivation: "newactivation", OpNewCatch: "newcatch",

	OpFindPropStrict: "findpropstrict", OpFindProperty: "findproperty",
	OpGetLex: "getlex", OpGetProperty: "getproperty", OpSetProperty: "setproperty",
	OpInitProperty: "initproperty", OpDeleteProperty: "deleteproperty",
	OpGetSlot: "getslot", OpSetSlot: "setslot",
	OpGetSuper: "getsuper", OpSetSuper: "setsuper",
	OpHasNext: "hasnext", OpHasNext2: "hasnext2",
	OpNextName: "nextname", OpNextValue: "nextvalue",
	OpGetDescendants: "getdescendants",

	OpCall: "call", OpCallProperty: "callproperty", OpCallPropVoid: "callpropvoid",
	OpCallPropLex: "callproplex", OpCallSuper: "callsuper", OpCallSuperVoid: "callsupervoid",
	OpConstruct: "construct", OpConstructProp: "constructprop", OpConstructSuper: "constructsuper",
	OpNewObject: "newobject", OpNewArray: "newarray", OpNewClass: "newclass",
	OpNewFunction: "newfunction", OpApplyType: "applytype",

	OpReturnValue: "returnvalue", OpReturnVoid: "returnvoid", OpThrow: "throw",

	OpLabel: "label", OpJump: "jump", OpIfTrue: "iftrue", OpIfFalse: "iffalse",
	OpIfEq: "ifeq", OpIfNe: "ifne", OpIfLt: "iflt", OpIfLe: "ifle",
	OpIfGt: "ifgt", OpIfGe: "ifge", OpIfStrictEq: "ifstricteq", OpIfStrictNe: "ifstrictne",
	OpLookupSwitch: "lookupswitch",

	OpAdd: "add", OpSubtract: "subtract", OpMultiply: "multiply", OpDivide: "divide",
	OpModulo: "modulo", OpNegate: "negate", OpIncrement: "increment", OpDecrement: "decrement",
	OpBitAnd: "bitand", OpBitOr: "bitor", OpBitXor: "bitxor", OpBitNot: "bitnot",
	OpLShift: "lshift", OpRShift: "rshift", OpURShift: "urshift",

	OpNot: "not", OpEquals: "equals", OpStrictEquals: "strictequals",
	OpLessThan: "lessthan", OpLessEquals: "lessequals",
	OpGreaterThan: "greaterthan", OpGreaterEquals: "greaterequals",
	OpInstanceOf: "instanceof", OpIsType: "istype", OpIsTypeLate: "istypelate",
	OpAsType: "astype", OpAsTypeLate: "astypelate", OpTypeOf: "typeof", OpIn: "in",

	OpCoerce: "coerce", OpCoerceA: "coerce_a", OpCoerceS: "coerce_s",
	OpConvertI: "convert_i", OpConvertU: "convert_u", OpConvertD: "convert_d",
	OpConvertB: "convert_b", OpConvertS: "convert_s", OpConvertO: "convert_o",

	OpDebug: "debug", OpDebugLine: "debugline", OpDebugFile: "debugfile", OpBkpt: "bkpt",
}

var byName map[string]OpCode

func init() {
	byName = make(map[string]OpCode, len(names))
	for op, name := range names {
		byName[name] = op
	}
}

func (op OpCode) String() string {
	if n, ok := names[op]; ok {
		return n
	}
	return "unknown"
}

// Lookup resolves a mnemonic to its OpCode, for decoders that encode
// instructions by name (e.g. abcjson).
func Lookup(mnemonic string) (OpCode, bool) {
	op, ok := byName[mnemonic]
	return op, ok
}
