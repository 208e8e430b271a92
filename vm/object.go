package vm

import (
	"fmt"

	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/propmap"
	"github.com/avm2/avm2/registry"
	"github.com/avm2/avm2/values"
)

// Variant discriminates the Object kinds spec §3 describes as a single
// capability-set family. A single tagged struct plays all of them
// (mirroring the teacher's single ExecutionContext/CallFrame structs
// carrying variant-specific optional fields) rather than an interface
// hierarchy, since every variant shares the bulk of its machinery
// (property storage, prototype chain, class pointer).
type Variant byte

const (
	VariantScript Variant = iota
	VariantClass
	VariantFunction
	VariantArray
	VariantEvent
	VariantDomain
	VariantStage
)

func (v Variant) String() string {
	switch v {
	case VariantScript:
		return "ScriptObject"
	case VariantClass:
		return "ClassObject"
	case VariantFunction:
		return "FunctionObject"
	case VariantArray:
		return "ArrayObject"
	case VariantEvent:
		return "EventObject"
	case VariantDomain:
		return "DomainObject"
	case VariantStage:
		return "StageObject"
	default:
		return "Object"
	}
}

// Object is a live AS3 object instance: the runtime counterpart to a
// realized Class. It implements the capability-set operations spec §3
// lists (property get/set, has-property, delete-property, call,
// construct, proto, class, scope, slots) as methods below; which
// capabilities are meaningful depends on Variant (e.g. only
// VariantFunction objects are callable).
type Object struct {
	Variant Variant

	// Class is the ClassObject this instance was constructed from (nil
	// only for the bootstrap sentinels before Class itself exists).
	Class *Object

	// Proto is this object's prototype-chain parent, consulted after
	// instance traits and dynamic own-properties are exhausted (spec
	// §4.2's resolution order).
	Proto *Object

	// Slots holds fixed-slot storage, indexed by the instance trait map's
	// slot numbers (index 0 unused, per propmap's reserved slot 0).
	Slots []*values.Value

	// Dynamic holds own-properties outside the fixed trait set, valid
	// only when the owning class is not Sealed.
	Dynamic map[names.QName]*values.Value

	// dynamicOrder preserves insertion order of Dynamic keys for for..in
	// enumeration.
	dynamicOrder []names.QName

	Sealed bool

	// --- VariantClass fields ---
	ClassTemplate  *registry.Class
	InstanceTraits *propmap.PropertyMap // shared, built once at realization
	ClassTraits    *propmap.PropertyMap
	Super          *Object // the superclass's ClassObject, nil for Object itself
	InstancePrototype *Object // the .prototype object new instances chain to

	// --- VariantFunction fields ---
	Method    *registry.MethodRef
	Closure   *Scope // captured scope chain, nil for a plain unbound method
	BoundThis *Object
	IsMethodClosure bool // true when extracted via obj.method (bound), false for `function` expressions

	// --- VariantArray fields ---
	Elements []*values.Value

	// --- VariantEvent fields ---
	EventType      string
	Bubbles        bool
	Cancelable     bool
	EventPhase     int
	EventTarget    *Object
	CurrentTarget  *Object
	DefaultPrevented bool
	StopPropagationFlag bool
	StopImmediateFlag   bool

	// --- VariantDomain fields ---
	Domain *Domain

	// --- VariantStage fields (minimal display-object stand-in) ---
	Parent   *Object
	Children []*Object
	Name     string

	// Listeners backs addEventListener/removeEventListener/dispatchEvent
	// for any object that participates in the event system (EventDispatcher
	// capability, available on Script/Class/Stage variants per spec §4.8).
	Listeners map[string][]*Listener
}

// Listener is one registered event-listener entry.
type Listener struct {
	Type      string
	Handler   *Object // a VariantFunction object
	UseCapture bool
	Priority  int
}

// NewPlainObject constructs a bare ScriptObject with the given class and
// prototype, ready to receive instance-trait slots.
func NewPlainObject(class *Object, proto *Object) *Object {
	obj := &Object{Variant: VariantScript, Class: class, Proto: proto}
	if class != nil {
		if class.InstanceTraits != nil {
			obj.Slots = make([]*values.Value, class.InstanceTraits.NextSlot())
			for i := range obj.Slots {
				obj.Slots[i] = values.Undefined()
			}
		}
		obj.Sealed = class.ClassTemplate != nil && class.ClassTemplate.Flags.Sealed
	}
	if !obj.Sealed {
		obj.Dynamic = make(map[names.QName]*values.Value)
	}
	return obj
}

// resolveInstanceTrait walks the class chain and returns the first
// instance-trait descriptor matching mn, its QName, and the class whose
// traits held it (spec §4.2: instance trait lookup considers the whole
// superclass chain).
func (o *Object) resolveInstanceTrait(mn *names.Multiname) (*propmap.Descriptor, names.QName, *Object, bool) {
	class := o.Class
	for class != nil {
		if class.InstanceTraits != nil {
			if desc, qn, ok := lookupInMap(class.InstanceTraits, mn); ok {
				return desc, qn, class, true
			}
		}
		class = class.Super
	}
	return nil, names.QName{}, nil, false
}

// lookupInMap resolves a multiname against a PropertyMap by scanning its
// entries for a local-name + namespace-set match, raising ambiguity only
// when the caller structure allows more than one namespace (spec §4.2:
// "if more than one trait in the considered namespace set matches, the
// lookup is ambiguous and fatal" — here surfaced as a bool the caller
// turns into an error at the Object.GetProperty layer).
func lookupInMap(m *propmap.PropertyMap, mn *names.Multiname) (*propmap.Descriptor, names.QName, bool) {
	if mn.IsQName() {
		qn := names.NewQName(mn.Namespaces[0], mn.Local)
		desc, ok := m.Get(qn)
		return desc, qn, ok
	}
	var found *propmap.Descriptor
	var foundName names.QName
	count := 0
	for _, e := range m.Entries() {
		if e.Name.Local != mn.Local {
			continue
		}
		if !mn.Contains(e.Name.NS) {
			continue
		}
		found = e.Desc
		foundName = e.Name
		count++
	}
	if count > 1 {
		return nil, names.QName{}, false
	}
	return found, foundName, found != nil
}

// GetProperty implements the read side of the multiname resolution
// algorithm (spec §4.2): instance traits (walking the super chain), then
// dynamic own-properties, then the prototype chain, then Undefined.
func (o *Object) GetProperty(host *VM, mn *names.Multiname) (*values.Value, error) {
	if desc, _, owner, ok := o.resolveInstanceTrait(mn); ok {
		return o.readDescriptor(host, desc, owner)
	}

	if o.Dynamic != nil {
		if val, ok, err := lookupDynamic(o.Dynamic, mn); err != nil {
			return nil, err
		} else if ok {
			return val, nil
		}
	}

	if o.Proto != nil {
		return o.Proto.GetProperty(host, mn)
	}

	return values.Undefined(), nil
}

func lookupDynamic(d map[names.QName]*values.Value, mn *names.Multiname) (*values.Value, bool, error) {
	if mn.IsQName() {
		qn := names.NewQName(mn.Namespaces[0], mn.Local)
		v, ok := d[qn]
		return v, ok, nil
	}
	var found *values.Value
	count := 0
	for qn, v := range d {
		if qn.Local != mn.Local || !mn.Contains(qn.NS) {
			continue
		}
		found = v
		count++
	}
	if count > 1 {
		return nil, false, fmt.Errorf("ambiguous reference to %s", mn)
	}
	return found, found != nil, nil
}

func (o *Object) readDescriptor(host *VM, desc *propmap.Descriptor, owner *Object) (*values.Value, error) {
	switch desc.Kind {
	case propmap.DescriptorSlot:
		if int(desc.SlotIndex) >= len(o.Slots) {
			return values.Undefined(), nil
		}
		return o.Slots[desc.SlotIndex], nil
	case propmap.DescriptorMethod:
		ref, _ := desc.MethodRef.(*registry.MethodRef)
		return values.NewObject(NewBoundMethod(host, ref, o)), nil
	case propmap.DescriptorAccessor:
		if desc.Getter == nil {
			return nil, fmt.Errorf("property has no getter")
		}
		ref, _ := desc.Getter.(*registry.MethodRef)
		return host.CallMethod(ref, o, nil)
	default:
		return values.Undefined(), nil
	}
}

// SetProperty implements the write side: instance slot/setter, else a
// dynamic own-property when the object is not sealed (spec §4.2, §4.6).
func (o *Object) SetProperty(host *VM, mn *names.Multiname, val *values.Value) error {
	if desc, _, _, ok := o.resolveInstanceTrait(mn); ok {
		switch desc.Kind {
		case propmap.DescriptorSlot:
			if desc.IsConst {
				return fmt.Errorf("cannot assign to const property")
			}
			coerced, err := val.ToType(host, desc.DeclaredType)
			if err != nil {
				return err
			}
			if int(desc.SlotIndex) >= len(o.Slots) {
				grown := make([]*values.Value, desc.SlotIndex+1)
				copy(grown, o.Slots)
				o.Slots = grown
			}
			o.Slots[desc.SlotIndex] = coerced
			return nil
		case propmap.DescriptorAccessor:
			if desc.Setter == nil {
				return fmt.Errorf("property has no setter")
			}
			ref, _ := desc.Setter.(*registry.MethodRef)
			_, err := host.CallMethod(ref, o, []*values.Value{val})
			return err
		case propmap.DescriptorMethod:
			return fmt.Errorf("cannot assign to method property")
		}
	}

	if o.Sealed {
		return fmt.Errorf("cannot create dynamic property on sealed class %s", classNameOf(o))
	}
	if o.Dynamic == nil {
		o.Dynamic = make(map[names.QName]*values.Value)
	}
	ns := names.NewNamespace(names.Public, "")
	if len(mn.Namespaces) > 0 {
		ns = mn.Namespaces[0]
	}
	qn := names.NewQName(ns, mn.Local)
	if _, exists := o.Dynamic[qn]; !exists {
		o.dynamicOrder = append(o.dynamicOrder, qn)
	}
	o.Dynamic[qn] = val
	return nil
}

func classNameOf(o *Object) string {
	if o.Class == nil {
		return "<unbound>"
	}
	return o.Class.ClassTemplate.Name.Local
}

// HasProperty reports presence without triggering getter side-effects
// beyond the resolution walk itself (spec §4.2).
func (o *Object) HasProperty(mn *names.Multiname) bool {
	if _, _, _, ok := o.resolveInstanceTrait(mn); ok {
		return true
	}
	if o.Dynamic != nil {
		if mn.IsQName() {
			qn := names.NewQName(mn.Namespaces[0], mn.Local)
			if _, ok := o.Dynamic[qn]; ok {
				return true
			}
		} else {
			for qn := range o.Dynamic {
				if qn.Local == mn.Local && mn.Contains(qn.NS) {
					return true
				}
			}
		}
	}
	if o.Proto != nil {
		return o.Proto.HasProperty(mn)
	}
	return false
}

// DeleteProperty removes a dynamic own-property; fixed traits cannot be
// deleted and this reports false for them (spec §4.6).
func (o *Object) DeleteProperty(mn *names.Multiname) bool {
	if _, _, _, ok := o.resolveInstanceTrait(mn); ok {
		return false
	}
	if o.Dynamic == nil {
		return true
	}
	if !mn.IsQName() {
		return false
	}
	qn := names.NewQName(mn.Namespaces[0], mn.Local)
	if _, ok := o.Dynamic[qn]; !ok {
		return true
	}
	delete(o.Dynamic, qn)
	for i, k := range o.dynamicOrder {
		if k.Equal(qn) {
			o.dynamicOrder = append(o.dynamicOrder[:i], o.dynamicOrder[i+1:]...)
			break
		}
	}
	return true
}

// EnumerateOwnNames returns dynamic own-property names in insertion order,
// backing the for..in / nextname / nextvalue opcode family (spec §4.3).
func (o *Object) EnumerateOwnNames() []names.QName {
	out := make([]names.QName, len(o.dynamicOrder))
	copy(out, o.dynamicOrder)
	return out
}

// IsInstanceOf walks o's class chain (and, loosely, its interfaces by
// name) looking for target.
func (o *Object) IsInstanceOf(target *Object) bool {
	class := o.Class
	for class != nil {
		if class == target {
			return true
		}
		for _, iface := range class.ClassTemplate.Interfaces {
			if iface.Local == target.ClassTemplate.Name.Local {
				return true
			}
		}
		class = class.Super
	}
	return false
}
