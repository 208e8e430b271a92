package vm

import "github.com/avm2/avm2/names"

// Scope is one cell of a singly-linked scope chain (spec §3): each cell
// wraps an object plus a flag marking whether it was pushed by pushwith
// (a "with" scope, which additionally participates in dynamic property
// resolution) versus pushscope (a plain lexical scope cell).
type Scope struct {
	Parent *Scope
	Object *Object
	IsWith bool
}

// Push returns a new scope chain with obj as its innermost cell.
func (s *Scope) Push(obj *Object, isWith bool) *Scope {
	return &Scope{Parent: s, Object: obj, IsWith: isWith}
}

// Depth reports the number of cells from the innermost scope to the root.
func (s *Scope) Depth() int {
	depth := 0
	for c := s; c != nil; c = c.Parent {
		depth++
	}
	return depth
}

// At returns the cell index levels from the root (0 = outermost), used by
// getscopeobject's fixed-index addressing (spec §4.3).
func (s *Scope) At(index int) *Object {
	depth := s.Depth()
	target := depth - 1 - index
	if target < 0 {
		return nil
	}
	c := s
	for i := 0; i < target; i++ {
		if c == nil {
			return nil
		}
		c = c.Parent
	}
	if c == nil {
		return nil
	}
	return c.Object
}

// FindProperty walks the scope chain from innermost to outermost looking
// for an object that already has the named property, per findproperty's
// resolution order (spec §4.3). Returns nil when no cell resolves it.
func (s *Scope) FindProperty(mn *names.Multiname) *Object {
	for c := s; c != nil; c = c.Parent {
		if c.Object != nil && c.Object.HasProperty(mn) {
			return c.Object
		}
	}
	return nil
}
