// Package values implements the AS3 tagged-value union and its coercion
// laws (spec §3, §4.1).
package values

import (
	"fmt"
	"math"
)

// Kind discriminates the variants of Value.
type Kind byte

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindInt    // 32-bit signed
	KindUint   // 32-bit unsigned
	KindNumber // IEEE-754 double
	KindString
	KindNamespace
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindNamespace:
		return "namespace"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Namespacer is the minimal shape a Namespace value must provide. Defined
// here (rather than importing the names package) so values has no
// dependency on the naming layer; names.Namespace satisfies it.
type Namespacer interface {
	URI() string
	VariantName() string
}

// Value is a tagged scalar/reference union. Data holds the payload for
// the active Kind: bool for KindBoolean, int32 for KindInt, uint32 for
// KindUint, float64 for KindNumber, string for KindString, Namespacer for
// KindNamespace, and an opaque object handle (implementation-defined,
// normally *vm.Object) for KindObject. Undefined and Null carry no data.
type Value struct {
	Kind Kind
	Data interface{}
}

var (
	undefinedValue = &Value{Kind: KindUndefined}
	nullValue      = &Value{Kind: KindNull}
	trueValue      = &Value{Kind: KindBoolean, Data: true}
	falseValue     = &Value{Kind: KindBoolean, Data: false}
)

func Undefined() *Value { return undefinedValue }
func Null() *Value      { return nullValue }

func NewBoolean(b bool) *Value {
	if b {
		return trueValue
	}
	return falseValue
}

func NewInt(i int32) *Value        { return &Value{Kind: KindInt, Data: i} }
func NewUint(u uint32) *Value      { return &Value{Kind: KindUint, Data: u} }
func NewNumber(f float64) *Value   { return &Value{Kind: KindNumber, Data: f} }
func NewString(s string) *Value    { return &Value{Kind: KindString, Data: s} }
func NewNamespace(n Namespacer) *Value {
	return &Value{Kind: KindNamespace, Data: n}
}

// NewObject wraps an opaque object handle. Callers in the vm package pass
// their concrete *Object; Value never inspects it directly except through
// the Host interface below.
func NewObject(obj interface{}) *Value {
	if obj == nil {
		return nullValue
	}
	return &Value{Kind: KindObject, Data: obj}
}

func (v *Value) IsUndefined() bool { return v.Kind == KindUndefined }
func (v *Value) IsNull() bool      { return v.Kind == KindNull }
func (v *Value) IsBoolean() bool   { return v.Kind == KindBoolean }
func (v *Value) IsInt() bool       { return v.Kind == KindInt }
func (v *Value) IsUint() bool      { return v.Kind == KindUint }
func (v *Value) IsNumber() bool    { return v.Kind == KindNumber }
func (v *Value) IsString() bool    { return v.Kind == KindString }
func (v *Value) IsNamespace() bool { return v.Kind == KindNamespace }
func (v *Value) IsObject() bool    { return v.Kind == KindObject }

// IsNullOrUndefined reports the two AS3 "no value" variants at once; a lot
// of coercion and lookup code branches on this pair together.
func (v *Value) IsNullOrUndefined() bool {
	return v.Kind == KindNull || v.Kind == KindUndefined
}

// Object returns the opaque object payload and whether Kind was Object.
func (v *Value) Object() (interface{}, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	return v.Data, true
}

func (v *Value) Namespace() (Namespacer, bool) {
	if v.Kind != KindNamespace {
		return nil, false
	}
	return v.Data.(Namespacer), true
}

// ToBoolean implements ECMA-262 ToBoolean as adapted by AS3.
func (v *Value) ToBoolean() bool {
	switch v.Kind {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		return v.Data.(bool)
	case KindInt:
		return v.Data.(int32) != 0
	case KindUint:
		return v.Data.(uint32) != 0
	case KindNumber:
		f := v.Data.(float64)
		return f != 0 && !math.IsNaN(f)
	case KindString:
		return v.Data.(string) != ""
	case KindNamespace, KindObject:
		return true
	default:
		return false
	}
}

// ToNumber implements ECMA-262 ToNumber (§9.3) as adapted by AS3. Object
// coercion (valueOf/toString dispatch) is handled by the Host when present;
// without a host, objects coerce to NaN, matching the "no value" default.
func (v *Value) ToNumber(host Host) float64 {
	switch v.Kind {
	case KindUndefined:
		return math.NaN()
	case KindNull:
		return 0
	case KindBoolean:
		if v.Data.(bool) {
			return 1
		}
		return 0
	case KindInt:
		return float64(v.Data.(int32))
	case KindUint:
		return float64(v.Data.(uint32))
	case KindNumber:
		return v.Data.(float64)
	case KindString:
		return stringToNumber(v.Data.(string))
	case KindObject:
		if host != nil {
			return host.ToPrimitiveNumber(v)
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// ToInt32 implements ECMA-262 ToInt32 (§9.5).
func (v *Value) ToInt32(host Host) int32 {
	if v.Kind == KindInt {
		return v.Data.(int32)
	}
	return toInt32(v.ToNumber(host))
}

// ToUint32 implements ECMA-262 ToUint32 (§9.6).
func (v *Value) ToUint32(host Host) uint32 {
	if v.Kind == KindUint {
		return v.Data.(uint32)
	}
	return uint32(toInt32(v.ToNumber(host)))
}

func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	// ECMA-262 modulo-2^32 reduction with sign-aware wraparound.
	posInt := math.Trunc(f)
	m := math.Mod(posInt, 4294967296)
	if m < 0 {
		m += 4294967296
	}
	if m >= 2147483648 {
		return int32(m - 4294967296)
	}
	return int32(m)
}

// ToString implements ECMA-262 ToString (§9.8), with the numeric rendering
// rule from §9.8.1: fixed precision, no trailing zeros, NaN/Infinity
// specials. Object coercion is delegated to the Host.
func (v *Value) ToString(host Host) string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.Data.(int32))
	case KindUint:
		return fmt.Sprintf("%d", v.Data.(uint32))
	case KindNumber:
		return numberToString(v.Data.(float64))
	case KindString:
		return v.Data.(string)
	case KindNamespace:
		ns, _ := v.Namespace()
		return ns.URI()
	case KindObject:
		if host != nil {
			return host.ToPrimitiveString(v)
		}
		return "[object Object]"
	default:
		return ""
	}
}

// numberToString follows ECMA-262 §9.8.1: shortest round-tripping decimal
// representation, "NaN"/"Infinity"/"-Infinity" specials, no trailing zeros.
func numberToString(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "0" // AS3's Number#toString prints "0" for -0, unlike print_r's "-0"
		}
		return "0"
	}
	return formatShortest(f)
}

// ToObject implements ECMA-262 ToObject (§9.9) by delegating to the Host,
// which knows how to box primitives against the realized built-in classes.
// Returns an error for undefined/null, which have no object representation.
func (v *Value) ToObject(host Host) (*Value, error) {
	switch v.Kind {
	case KindUndefined, KindNull:
		return nil, fmt.Errorf("cannot convert %s to Object", v.Kind)
	case KindObject:
		return v, nil
	default:
		if host == nil {
			return nil, fmt.Errorf("no host available to box %s", v.Kind)
		}
		return host.Box(v), nil
	}
}

// ToType coerces v to the named concrete type, per spec §4.1's ToType(T):
// may throw when a non-nullable concrete type cannot accept the value.
func (v *Value) ToType(host Host, typeName string) (*Value, error) {
	if host == nil {
		return v, nil
	}
	return host.CoerceToType(v, typeName)
}

// StrictEquals implements AS3 "===": variant+bit-pattern equality, with
// NaN != NaN (spec §4.1).
func (v *Value) StrictEquals(other *Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindUndefined, KindNull:
		return true
	case KindBoolean:
		return v.Data.(bool) == other.Data.(bool)
	case KindInt:
		return v.Data.(int32) == other.Data.(int32)
	case KindUint:
		return v.Data.(uint32) == other.Data.(uint32)
	case KindNumber:
		return v.Data.(float64) == other.Data.(float64)
	case KindString:
		return v.Data.(string) == other.Data.(string)
	case KindNamespace:
		a, _ := v.Namespace()
		b, _ := other.Namespace()
		return a.VariantName() == b.VariantName() && a.URI() == b.URI()
	case KindObject:
		return v.Data == other.Data
	default:
		return false
	}
}

// Equals implements AS3 "==": ECMA-262 §11.9.3 with AS3 addenda (Namespace
// compares by URI; both sides numeric-kind collapse to Number comparison).
func (v *Value) Equals(host Host, other *Value) bool {
	if v.Kind == other.Kind {
		return v.StrictEquals(other)
	}

	if v.IsNullOrUndefined() && other.IsNullOrUndefined() {
		return true
	}
	if v.IsNullOrUndefined() || other.IsNullOrUndefined() {
		return false
	}

	if v.IsNamespace() && other.IsNamespace() {
		return v.StrictEquals(other)
	}

	if isNumericKind(v.Kind) && isNumericKind(other.Kind) {
		return v.ToNumber(host) == other.ToNumber(host)
	}
	if isNumericKind(v.Kind) && other.Kind == KindString {
		return v.ToNumber(host) == other.ToNumber(host)
	}
	if v.Kind == KindString && isNumericKind(other.Kind) {
		return v.ToNumber(host) == other.ToNumber(host)
	}
	if v.Kind == KindBoolean || other.Kind == KindBoolean {
		return v.ToNumber(host) == other.ToNumber(host)
	}
	if v.Kind == KindObject && (isNumericKind(other.Kind) || other.Kind == KindString) {
		return equalsPrimitive(host, v, other)
	}
	if other.Kind == KindObject && (isNumericKind(v.Kind) || v.Kind == KindString) {
		return equalsPrimitive(host, other, v)
	}
	return false
}

func isNumericKind(k Kind) bool {
	return k == KindInt || k == KindUint || k == KindNumber
}

// equalsPrimitive implements the Object-vs-primitive branches of ECMA-262
// §11.9.3: obj is reduced via ToPrimitive (default "number" hint) rather
// than ToObject, which would hand back obj unchanged and recurse forever.
func equalsPrimitive(host Host, obj, other *Value) bool {
	if host == nil {
		return false
	}
	return NewNumber(host.ToPrimitiveNumber(obj)).Equals(host, other)
}

func (v *Value) String() string {
	return fmt.Sprintf("%s(%v)", v.Kind, v.Data)
}
