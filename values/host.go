package values

// Host is satisfied by the VM (see vm.VM) and supplies the object-model
// operations that values cannot perform on its own without creating an
// import cycle between values and vm. This mirrors the teacher's
// registry.BuiltinCallContext decoupling-interface pattern (registry/types.go),
// which lets registry-level code call back into the VM without registry
// importing vm.
type Host interface {
	// ToPrimitiveNumber applies the object's [[DefaultValue]] ("number" hint)
	// algorithm: valueOf() then toString(), coerced with ToNumber.
	ToPrimitiveNumber(obj *Value) float64

	// ToPrimitiveString applies the object's [[DefaultValue]] ("string" hint)
	// algorithm: toString() then valueOf().
	ToPrimitiveString(obj *Value) string

	// Box wraps a primitive Value in an object for ECMA-262 ToObject. The
	// VM's implementation returns a plain Object holding the primitive,
	// not a Boolean/int/uint/Number/String wrapper instance.
	Box(primitive *Value) *Value

	// CoerceToType implements the AS3 ToType(T) coercion: null passes
	// through for nullable types, numeric/string widen structurally, and
	// object values are checked against the class hierarchy, raising a
	// TypeError-shaped error when incompatible.
	CoerceToType(v *Value, typeName string) (*Value, error)
}
