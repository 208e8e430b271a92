package vm

import (
	"fmt"
	"sync"

	"github.com/avm2/avm2/names"
	"github.com/google/uuid"
)

// Domain is an application domain: a tree of exported definitions with a
// parent pointer for lookup fallback, and a private "domain memory" byte
// buffer used by the ActionScript Memory class family (spec §3, §4.6).
// Grounded in the teacher's ClassManager (vm/class_manager.go), which
// plays the analogous "name -> realized definition, with RWMutex-guarded
// lazy creation" role for PHP classes.
type Domain struct {
	ID uuid.UUID

	Parent *Domain

	mu      sync.RWMutex
	exports map[names.QName]*Object // realized ClassObject/FunctionObject/value holders

	// scripts lists every Script that exports into this domain, in
	// load_abc registration order, so lazy init can walk them on first
	// unresolved lookup (spec §4.7).
	scripts []*Script

	memory []byte
}

// NewDomain constructs a domain chained to parent (nil for the system
// domain at the root).
func NewDomain(parent *Domain) *Domain {
	return &Domain{
		ID:      uuid.New(),
		Parent:  parent,
		exports: make(map[names.QName]*Object),
	}
}

// DomainMemory returns the domain's private byte buffer, growing it to at
// least size bytes if needed (spec §4.6: "default domain memory").
func (d *Domain) DomainMemory(minSize int) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.memory) < minSize {
		grown := make([]byte, minSize)
		copy(grown, d.memory)
		d.memory = grown
	}
	return d.memory
}

// Export registers a realized definition under name, at-most-once per
// name within this domain (re-registration overwrites, matching ABC
// allowing later scripts to shadow earlier exports of the same name).
func (d *Domain) Export(name names.QName, obj *Object) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.exports[name] = obj
}

// RegisterScript appends s to this domain's lazy-init search list.
func (d *Domain) RegisterScript(s *Script) {
	d.mu.Lock()
	d.scripts = append(d.scripts, s)
	d.mu.Unlock()
}

// GetProperty resolves name within this domain, initializing scripts
// lazily on first access and falling back to Parent when unresolved
// (spec §4.6, §4.7: "a domain lookup that misses triggers lazy init of
// any not-yet-initialized script that declares the name, in registration
// order").
func (d *Domain) GetProperty(host *VM, name names.QName) (*Object, error) {
	d.mu.RLock()
	obj, ok := d.exports[name]
	d.mu.RUnlock()
	if ok {
		return obj, nil
	}

	d.mu.RLock()
	scripts := append([]*Script(nil), d.scripts...)
	d.mu.RUnlock()
	for _, s := range scripts {
		if s.DeclaresExport(name) {
			if err := s.EnsureInitialized(host); err != nil {
				return nil, err
			}
			d.mu.RLock()
			obj, ok = d.exports[name]
			d.mu.RUnlock()
			if ok {
				return obj, nil
			}
		}
	}

	if d.Parent != nil {
		return d.Parent.GetProperty(host, name)
	}
	return nil, fmt.Errorf("unresolved domain reference: %s", name)
}

// ResolveMultiname implements spec §4.6's resolve_multiname: the first
// domain (walking this domain up to the root) that contains any QName
// built from one of mn's candidate namespaces and its local name wins.
// Two distinct namespaces from mn's set both resolving within the same
// domain is an ambiguity and is a ResolutionError, not a silent pick
// (spec §4.2, §4.6: "ties are errors").
func (d *Domain) ResolveMultiname(host *VM, mn *names.Multiname) (names.QName, error) {
	if !mn.HasLocal || mn.RuntimeLocal {
		return names.QName{}, fmt.Errorf("cannot resolve a runtime-local multiname statically")
	}
	for cur := d; cur != nil; cur = cur.Parent {
		var match *names.QName
		for _, ns := range mn.Namespaces {
			candidate := names.NewQName(ns, mn.Local)
			if cur.hasOwnDefinition(host, candidate) {
				if match != nil && *match != candidate {
					return names.QName{}, NewError(ResolutionError, "ambiguous multiname %s: matches both %s and %s", mn, *match, candidate)
				}
				m := candidate
				match = &m
			}
		}
		if match != nil {
			return *match, nil
		}
	}
	return names.QName{}, fmt.Errorf("unresolved multiname: %s", mn)
}

// hasOwnDefinition checks this domain only (no parent fallback), forcing
// lazy script init the same way GetProperty does, so resolution sees
// definitions that have not yet been eagerly initialized.
func (d *Domain) hasOwnDefinition(host *VM, name names.QName) bool {
	d.mu.RLock()
	_, ok := d.exports[name]
	scripts := append([]*Script(nil), d.scripts...)
	d.mu.RUnlock()
	if ok {
		return true
	}
	for _, s := range scripts {
		if s.DeclaresExport(name) {
			if err := s.EnsureInitialized(host); err != nil {
				return false
			}
			d.mu.RLock()
			_, ok = d.exports[name]
			d.mu.RUnlock()
			return ok
		}
	}
	return false
}

// HasDefinition reports whether name resolves in this domain or an
// ancestor (counting scripts that declare it), without forcing lazy init.
func (d *Domain) HasDefinition(name names.QName) bool {
	d.mu.RLock()
	_, ok := d.exports[name]
	scripts := append([]*Script(nil), d.scripts...)
	d.mu.RUnlock()
	if ok {
		return true
	}
	for _, s := range scripts {
		if s.DeclaresExport(name) {
			return true
		}
	}
	if d.Parent != nil {
		return d.Parent.HasDefinition(name)
	}
	return false
}
