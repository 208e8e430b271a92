// Package propmap implements the AS3 trait and property-map layer (spec
// §3): the ordered QName->descriptor map that backs every class and
// instance's fixed property set, plus the Trait declarations that populate
// it during class realization. Method/accessor bodies are stored as
// opaque interface{} handles so this package has no dependency on vm,
// mirroring the teacher's registry.Class storing Methods as
// map[string]interface{} (registry/types.go) to avoid the same cycle.
package propmap

import "github.com/avm2/avm2/names"

// Kind discriminates the seven trait kinds (spec §3).
type Kind byte

const (
	KindSlot Kind = iota
	KindConst
	KindMethod
	KindGetter
	KindSetter
	KindClass
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindSlot:
		return "slot"
	case KindConst:
		return "const"
	case KindMethod:
		return "method"
	case KindGetter:
		return "getter"
	case KindSetter:
		return "setter"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Trait is a declarative member of a class or instance template, exactly
// as it appears in the ABC traits_info structure (spec §3): a qualified
// name, a kind, slot index (when the kind is slot-addressed), attributes,
// and an opaque reference to the method/class/function body.
type Trait struct {
	Name      names.QName
	Kind      Kind
	SlotIndex uint32 // meaningful for KindSlot/KindConst/KindClass/KindMethod-dispatch-id

	Final    bool
	Override bool

	// Ref is the opaque payload: *registry.MethodRef for Method/Getter/
	// Setter/Function, a type-name string for Slot/Const (the declared
	// type, used by resolve_parameters-style coercion), or a *registry.Class
	// for KindClass. Populated and interpreted by vm/registry, never by
	// propmap itself.
	Ref interface{}

	// DeclaredType names the compile-time type of a Slot/Const trait, or
	// the nominal return type of a Method/Getter — "*" (the any-type) when
	// untyped. Left empty for Class/Function traits.
	DeclaredType string
}

// IsAccessor reports whether t is a getter or setter, which share a single
// PropertyMap slot and participate in getter/setter pairing (spec §3).
func (t Trait) IsAccessor() bool {
	return t.Kind == KindGetter || t.Kind == KindSetter
}

// IsSlotAddressed reports whether t occupies a numbered slot reachable by
// getslot/setslot opcodes.
func (t Trait) IsSlotAddressed() bool {
	return t.Kind == KindSlot || t.Kind == KindConst || t.Kind == KindClass
}
