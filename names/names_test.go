package names_test

import (
	"testing"

	"github.com/avm2/avm2/names"
	"github.com/stretchr/testify/assert"
)

func TestPrivateNamespaceIdentity(t *testing.T) {
	a := names.NewNamespace(names.Private, "")
	b := names.NewNamespace(names.Private, "")
	assert.False(t, a.Equal(b), "two private namespaces with equal URI must still be distinct instances")
	assert.True(t, a.Equal(a))
}

func TestPublicNamespaceEqualByURI(t *testing.T) {
	a := names.NewNamespace(names.Public, "flash.events")
	b := names.NewNamespace(names.Public, "flash.events")
	assert.True(t, a.Equal(b))
}

// TestNonPrivateNamespacesAreInterned guards the invariant that map keys
// built directly from names.QName (e.g. Domain.exports, Object.Dynamic)
// rely on: two independently constructed non-Private namespaces with the
// same (variant, uri) must be the same instance, not merely Equal, since
// Go map equality on a struct field compares pointers, not Equal().
func TestNonPrivateNamespacesAreInterned(t *testing.T) {
	a := names.NewNamespace(names.Public, "")
	b := names.NewNamespace(names.Public, "")
	assert.Same(t, a, b)

	c := names.NewNamespace(names.Internal, "app")
	d := names.NewNamespace(names.Internal, "app")
	assert.Same(t, c, d)

	assert.NotSame(t, a, c, "distinct variants must not share an instance")
}

func TestQNameEqual(t *testing.T) {
	ns := names.NewNamespace(names.Public, "")
	q1 := names.NewQName(ns, "foo")
	q2 := names.NewQName(ns, "foo")
	assert.True(t, q1.Equal(q2))
}

func TestMultinameContains(t *testing.T) {
	pub := names.NewNamespace(names.Public, "")
	internal := names.NewNamespace(names.Internal, "app")
	mn := names.NewMultiname([]*names.Namespace{pub, internal}, "foo")
	assert.True(t, mn.Contains(pub))
	assert.True(t, mn.Contains(internal))
	assert.False(t, mn.Contains(names.NewNamespace(names.Protected, "app")))
}

func TestMultinameIsQName(t *testing.T) {
	ns := names.NewNamespace(names.Public, "")
	qn := names.NewQNameMultiname(ns, "foo")
	assert.True(t, qn.IsQName())

	rt := &names.Multiname{Namespaces: []*names.Namespace{ns}, RuntimeLocal: true}
	assert.False(t, rt.IsQName())
}
