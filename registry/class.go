// Package registry holds the declarative Class template layer (spec §3,
// §4.5): the immutable, ABC-shaped description of a class that
// ClassObject.from_class realizes into a live ClassObject. This mirrors
// the teacher's registry.Class/ClassDescriptor (registry/types.go), which
// plays the same "declarative template separate from the runtime object"
// role for PHP classes; it is a leaf package with no dependency on vm so
// that both vm and abc can depend on it without a cycle.
package registry

import (
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/propmap"
)

// MethodKind discriminates how a method's body is supplied (spec §4.4).
type MethodKind byte

const (
	MethodNative MethodKind = iota
	MethodBytecode
	MethodEntry // a synthetic entry trampoline, e.g. a default constructor
)

// MethodRef is a declarative method reference: enough to realize a
// callable Method object without this package depending on vm. Body holds
// the opaque payload — a NativeFunc-shaped value for MethodNative, an
// *abc.MethodBodyData for MethodBytecode — interpreted only by vm.
type MethodRef struct {
	Name       string
	Kind       MethodKind
	ParamTypes []string // declared parameter types, "*" for untyped/any
	OptionalDefaults []interface{} // default values for trailing optional params, opaque *values.Value
	ReturnType string
	NeedsRest  bool // method declares a "..." rest parameter
	NeedsArgs  bool // method reads the arguments object

	Body interface{}
}

// MinArgs reports the number of required (non-optional, non-rest)
// parameters.
func (m *MethodRef) MinArgs() int {
	return len(m.ParamTypes) - len(m.OptionalDefaults)
}

// MaxArgs reports the number of positionally bindable parameters,
// excluding any trailing rest parameter.
func (m *MethodRef) MaxArgs() int {
	return len(m.ParamTypes)
}

// ClassFlags carries the ABC-level class attributes (spec §3).
type ClassFlags struct {
	Sealed    bool // no dynamic properties permitted on instances
	Final     bool // cannot be subclassed
	Interface bool // this "class" is actually an interface definition
}

// Class is the immutable, declarative template for a class, exactly the
// shape load_abc populates from a ClassData entry and that
// ClassObject.from_class (spec §4.5) consumes to realize a live
// ClassObject. Once registered in a Domain it is never mutated.
type Class struct {
	Name  names.QName
	Super *names.Multiname // nil for Object itself

	Flags ClassFlags

	// ProtectedNS is the namespace protected members of this class (and
	// its subclasses, via StaticProtected name resolution) are declared
	// in; nil if the class declares no protected members.
	ProtectedNS *names.Namespace

	Interfaces []*names.Multiname

	InstanceInit *MethodRef // the constructor body
	ClassInit    *MethodRef // static initializer, run once at realization

	InstanceTraits []propmap.Trait
	ClassTraits    []propmap.Trait
}

// NewClass returns an empty, unsealed class template for name with no
// superclass — callers fill in Super/Flags/traits before handing it to a
// TranslationUnit for registration.
func NewClass(name names.QName) *Class {
	return &Class{Name: name}
}
