package registry_test

import (
	"testing"

	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/propmap"
	"github.com/avm2/avm2/registry"
	"github.com/stretchr/testify/assert"
)

func TestMethodRefArgCounting(t *testing.T) {
	m := &registry.MethodRef{
		ParamTypes:       []string{"int", "String", "*"},
		OptionalDefaults: []interface{}{"defaultLocal"},
	}
	assert.Equal(t, 2, m.MinArgs())
	assert.Equal(t, 3, m.MaxArgs())
}

func TestNewClassDefaults(t *testing.T) {
	ns := names.NewNamespace(names.Public, "")
	c := registry.NewClass(names.NewQName(ns, "Sprite"))
	assert.Nil(t, c.Super)
	assert.False(t, c.Flags.Sealed)
	assert.Empty(t, c.InstanceTraits)
}

func TestClassCarriesTraitLists(t *testing.T) {
	ns := names.NewNamespace(names.Public, "")
	c := registry.NewClass(names.NewQName(ns, "Point"))
	c.InstanceTraits = append(c.InstanceTraits, propmap.Trait{
		Name: names.NewQName(ns, "x"),
		Kind: propmap.KindSlot,
	})
	assert.Len(t, c.InstanceTraits, 1)
	assert.Equal(t, "x", c.InstanceTraits[0].Name.Local)
}
