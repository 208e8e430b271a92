package propmap_test

import (
	"testing"

	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/propmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qn(local string) names.QName {
	return names.NewQName(names.NewNamespace(names.Public, ""), local)
}

func TestDefineSlotAutoNumbersStartingAtOne(t *testing.T) {
	m := propmap.NewPropertyMap()
	d1 := m.DefineSlot(qn("a"), "int", false, 0)
	d2 := m.DefineSlot(qn("b"), "int", false, 0)
	assert.Equal(t, uint32(1), d1.SlotIndex)
	assert.Equal(t, uint32(2), d2.SlotIndex)
}

func TestGetterSetterShareOneEntry(t *testing.T) {
	m := propmap.NewPropertyMap()
	name := qn("x")
	m.DefineGetter(name, "getterRef", false, false)
	m.DefineSetter(name, "setterRef", false, false)

	assert.Equal(t, 1, m.Len())
	desc, ok := m.Get(name)
	require.True(t, ok)
	assert.Equal(t, propmap.DescriptorAccessor, desc.Kind)
	assert.Equal(t, "getterRef", desc.Getter)
	assert.Equal(t, "setterRef", desc.Setter)
}

func TestInsertionOrderPreserved(t *testing.T) {
	m := propmap.NewPropertyMap()
	m.DefineSlot(qn("z"), "*", false, 0)
	m.DefineSlot(qn("a"), "*", false, 0)
	m.DefineSlot(qn("m"), "*", false, 0)

	entries := m.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "z", entries[0].Name.Local)
	assert.Equal(t, "a", entries[1].Name.Local)
	assert.Equal(t, "m", entries[2].Name.Local)
}

func TestDeletePreservesOtherSlots(t *testing.T) {
	m := propmap.NewPropertyMap()
	m.DefineSlot(qn("a"), "*", false, 0)
	m.DefineSlot(qn("b"), "*", false, 0)
	m.Delete(qn("a"))
	assert.False(t, m.Has(qn("a")))
	assert.True(t, m.Has(qn("b")))
	assert.Equal(t, 1, m.Len())
}

func TestPublicNamespacesWithSameURICollide(t *testing.T) {
	m := propmap.NewPropertyMap()
	ns1 := names.NewNamespace(names.Public, "flash.events")
	ns2 := names.NewNamespace(names.Public, "flash.events")
	m.DefineSlot(names.NewQName(ns1, "x"), "*", false, 0)
	_, ok := m.Get(names.NewQName(ns2, "x"))
	assert.True(t, ok, "two distinct Namespace instances with equal (variant, uri) must resolve to the same property map entry")
}

func TestPrivateNamespacesNeverCollide(t *testing.T) {
	m := propmap.NewPropertyMap()
	ns1 := names.NewNamespace(names.Private, "")
	ns2 := names.NewNamespace(names.Private, "")
	m.DefineSlot(names.NewQName(ns1, "x"), "*", false, 0)
	_, ok := m.Get(names.NewQName(ns2, "x"))
	assert.False(t, ok, "two distinct private namespaces must never collide even with equal URI")
}
