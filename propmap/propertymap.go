package propmap

import (
	"fmt"

	"github.com/avm2/avm2/names"
)

// DescriptorKind classifies a resolved PropertyMap entry.
type DescriptorKind byte

const (
	DescriptorSlot DescriptorKind = iota
	DescriptorMethod
	DescriptorAccessor // getter and/or setter pair, sharing one QName slot
	DescriptorVirtual  // computed property with no backing storage (e.g. a bound class/function trait)
)

// Descriptor is what a PropertyMap maps a QName to: either a fixed data
// slot, a dispatchable method, or a getter/setter pair. Getter and setter
// traits declared under the same QName are merged into a single Accessor
// descriptor (spec §3: "a getter and setter sharing a QName occupy one
// PropertyMap entry").
type Descriptor struct {
	Kind DescriptorKind

	SlotIndex    uint32 // valid for DescriptorSlot
	DeclaredType string // declared/nominal type, "*" when untyped

	MethodRef interface{} // opaque method handle for DescriptorMethod
	Getter    interface{} // opaque method handle, may be nil
	Setter    interface{} // opaque method handle, may be nil

	Final    bool
	Override bool

	IsConst bool // true for Const slots: assignment after init must fail
}

type entry struct {
	name names.QName
	desc *Descriptor
}

// PropertyMap is an insertion-order-preserving QName -> Descriptor table,
// the storage layer shared by Class (for static members) and every Object
// instance (for instance members) per spec §3. Slot index 0 is reserved
// (AVM2 convention: slot numbering begins at 1; slot 0 is never assigned
// to a user trait).
type PropertyMap struct {
	entries []entry
	index   map[string]int
	nextSlot uint32
}

// NewPropertyMap returns an empty map with slot numbering starting at 1.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{index: make(map[string]int), nextSlot: 1}
}

func nsKey(ns *names.Namespace) string {
	if ns == nil {
		return "nil"
	}
	if ns.Variant() == names.Private {
		return fmt.Sprintf("private:%p", ns)
	}
	return fmt.Sprintf("%d:%s", ns.Variant(), ns.URI())
}

func qnameKey(q names.QName) string {
	return nsKey(q.NS) + "::" + q.Local
}

// Get returns the descriptor for name, if present.
func (m *PropertyMap) Get(name names.QName) (*Descriptor, bool) {
	idx, ok := m.index[qnameKey(name)]
	if !ok {
		return nil, false
	}
	return m.entries[idx].desc, true
}

// Has reports whether name has any entry.
func (m *PropertyMap) Has(name names.QName) bool {
	_, ok := m.index[qnameKey(name)]
	return ok
}

// Delete removes name's entry, used by Object.DeleteProperty for dynamic
// (non-fixed) own properties; deleting a fixed-slot trait is a caller
// error and is not guarded against here (callers check Object dynamism
// first, spec §4.6).
func (m *PropertyMap) Delete(name names.QName) {
	key := qnameKey(name)
	idx, ok := m.index[key]
	if !ok {
		return
	}
	m.entries = append(m.entries[:idx], m.entries[idx+1:]...)
	delete(m.index, key)
	for k, v := range m.index {
		if v > idx {
			m.index[k] = v - 1
		}
	}
}

// DefineSlot adds (or replaces) a data-slot descriptor, auto-assigning the
// next free slot index when slot is 0.
func (m *PropertyMap) DefineSlot(name names.QName, declaredType string, isConst bool, explicitSlot uint32) *Descriptor {
	slot := explicitSlot
	if slot == 0 {
		slot = m.nextSlot
	}
	if slot >= m.nextSlot {
		m.nextSlot = slot + 1
	}
	desc := &Descriptor{Kind: DescriptorSlot, SlotIndex: slot, DeclaredType: declaredType, IsConst: isConst}
	m.put(name, desc)
	return desc
}

// DefineMethod adds a method descriptor.
func (m *PropertyMap) DefineMethod(name names.QName, ref interface{}, final, override bool) *Descriptor {
	desc := &Descriptor{Kind: DescriptorMethod, MethodRef: ref, Final: final, Override: override}
	m.put(name, desc)
	return desc
}

// DefineGetter adds or merges a getter into name's accessor descriptor.
func (m *PropertyMap) DefineGetter(name names.QName, ref interface{}, final, override bool) *Descriptor {
	desc := m.accessorFor(name, final, override)
	desc.Getter = ref
	return desc
}

// DefineSetter adds or merges a setter into name's accessor descriptor.
func (m *PropertyMap) DefineSetter(name names.QName, ref interface{}, final, override bool) *Descriptor {
	desc := m.accessorFor(name, final, override)
	desc.Setter = ref
	return desc
}

func (m *PropertyMap) accessorFor(name names.QName, final, override bool) *Descriptor {
	if existing, ok := m.Get(name); ok && existing.Kind == DescriptorAccessor {
		return existing
	}
	desc := &Descriptor{Kind: DescriptorAccessor, Final: final, Override: override}
	m.put(name, desc)
	return desc
}

func (m *PropertyMap) put(name names.QName, desc *Descriptor) {
	key := qnameKey(name)
	if idx, ok := m.index[key]; ok {
		m.entries[idx].desc = desc
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, entry{name: name, desc: desc})
}

// Entries returns the map's entries in insertion order, the order Object
// enumeration (for..in) must preserve for fixed traits (spec §4.6).
func (m *PropertyMap) Entries() []struct {
	Name names.QName
	Desc *Descriptor
} {
	out := make([]struct {
		Name names.QName
		Desc *Descriptor
	}, len(m.entries))
	for i, e := range m.entries {
		out[i] = struct {
			Name names.QName
			Desc *Descriptor
		}{Name: e.name, Desc: e.desc}
	}
	return out
}

// Len reports the number of entries.
func (m *PropertyMap) Len() int { return len(m.entries) }

// NextSlot reports the slot index that would be assigned to the next
// auto-numbered slot.
func (m *PropertyMap) NextSlot() uint32 { return m.nextSlot }

// ClonePropertyMap returns a shallow copy of base (entries and slot
// counter duplicated, Descriptor pointers shared) suitable as the
// starting point for a subclass's instance-trait map, which begins as a
// copy of its superclass's traits and then has its own traits layered on
// top (spec §4.5 class realization step 2). A nil base yields an empty
// map, the case for realizing Object itself.
func ClonePropertyMap(base *PropertyMap) *PropertyMap {
	if base == nil {
		return NewPropertyMap()
	}
	clone := &PropertyMap{
		entries:  append([]entry(nil), base.entries...),
		index:    make(map[string]int, len(base.index)),
		nextSlot: base.nextSlot,
	}
	for k, v := range base.index {
		clone.index[k] = v
	}
	return clone
}
