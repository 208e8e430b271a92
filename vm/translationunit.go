package vm

import (
	"fmt"
	"sync"

	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/names"
	"github.com/google/uuid"
)

// TranslationUnit is one loaded ABC file, holding its constant pools and
// the Scripts load_abc registers from it (spec §4.7). Grounded on the
// teacher's CallStackManager/ClassManager pairing (vm/call_stack.go,
// vm/class_manager.go): a small owning manager over a slice of
// richer per-unit records, guarded by one mutex.
type TranslationUnit struct {
	ID uuid.UUID

	File *abc.File

	mu      sync.Mutex
	scripts []*Script
}

// ScriptState is the lazy/eager initialization state machine a Script
// moves through at most once (spec §4.7).
type ScriptState byte

const (
	ScriptUninitialized ScriptState = iota
	ScriptInitializing
	ScriptInitialized
	ScriptInitFailed
)

// Script is one ABC script: a global object realized from ScriptData's
// traits, initialized by running Init at most once, either eagerly
// (load_abc's default) or lazily (on first unresolved domain lookup that
// this script would satisfy).
type Script struct {
	Unit *TranslationUnit
	Data *abc.ScriptData
	Domain *Domain

	mu    sync.Mutex
	state ScriptState
	err   error

	GlobalObject *Object // the script's global scope object, realized up front
}

// Scripts returns the scripts this unit registered, in the
// reverse-declaration registration order LoadABC used (spec §4.7),
// primarily for diagnostics and tests that need to observe per-script
// initialization state.
func (u *TranslationUnit) Scripts() []*Script {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]*Script, len(u.scripts))
	copy(out, u.scripts)
	return out
}

// DeclaresExport reports whether this script's trait list would export
// name, without running its initializer.
func (s *Script) DeclaresExport(name names.QName) bool {
	for _, t := range s.Data.Traits {
		if t.Name.Equal(name) {
			return true
		}
	}
	return false
}

// EnsureInitialized runs the script's init method at most once (spec
// §4.7's "at-most-once initialization" invariant): a call made while the
// script is still Initializing (re-entrant or concurrent) does not wait;
// it returns a "reentrant initialization" error at once. Later calls
// return the recorded outcome.
func (s *Script) EnsureInitialized(host *VM) error {
	s.mu.Lock()
	switch s.state {
	case ScriptInitialized:
		s.mu.Unlock()
		return nil
	case ScriptInitFailed:
		err := s.err
		s.mu.Unlock()
		return err
	case ScriptInitializing:
		s.mu.Unlock()
		return fmt.Errorf("reentrant initialization of script %q", s.Data.Name)
	}
	s.state = ScriptInitializing
	s.mu.Unlock()

	err := host.runScriptInit(s)

	s.mu.Lock()
	if err != nil {
		s.state = ScriptInitFailed
		s.err = err
	} else {
		s.state = ScriptInitialized
	}
	s.mu.Unlock()
	return err
}

// IsInitialized reports the current state without side effects.
func (s *Script) IsInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == ScriptInitialized
}

// LoadABC registers every script in file with domain, in reverse
// declaration order (spec §4.7: "load_abc registers scripts in reverse
// order so that a later script's class definitions are visible to an
// earlier script's lazily-evaluated references" — matching AVM2's actual
// script-registration pass, which walks the script array back to front).
// Scripts become reachable via Domain.GetProperty immediately; whether
// their init method runs now or later is controlled by eager.
func (vm *VM) LoadABC(file *abc.File, domain *Domain, eager bool) (*TranslationUnit, error) {
	unit := &TranslationUnit{ID: uuid.New(), File: file}

	for i := len(file.Scripts) - 1; i >= 0; i-- {
		data := file.Scripts[i]
		global := NewPlainObject(vm.Classes.Object, vm.Prototypes.Object)
		global.Variant = VariantScript

		script := &Script{Unit: unit, Data: data, Domain: domain, GlobalObject: global}
		unit.mu.Lock()
		unit.scripts = append(unit.scripts, script)
		unit.mu.Unlock()
		domain.RegisterScript(script)

		for _, t := range data.Traits {
			if t.Kind == abc.ScriptTraitClass && t.Class != nil {
				classObj, err := vm.realizeClass(t.Class, domain)
				if err != nil {
					return nil, fmt.Errorf("realizing class %s: %w", t.Name, err)
				}
				domain.Export(t.Name, classObj)
			}
		}

		if eager {
			if err := script.EnsureInitialized(vm); err != nil {
				return nil, err
			}
		}
	}

	vm.mu.Lock()
	vm.units = append(vm.units, unit)
	vm.mu.Unlock()

	return unit, nil
}

// runScriptInit executes a script's Init method against its global
// object, then exports each of its non-class traits whose value on the
// global object is an object (primitive-valued slots are not exported).
func (vm *VM) runScriptInit(s *Script) error {
	if s.Data.Init == nil {
		return nil
	}
	scope := (&Scope{}).Push(vm.GlobalDomainObject(), false).Push(s.GlobalObject, false)
	_, err := vm.invokeMethodBody(s.Data.Init, s.GlobalObject, nil, scope)
	if err != nil {
		return err
	}
	for _, t := range s.Data.Traits {
		if t.Kind != abc.ScriptTraitClass {
			val, _ := s.GlobalObject.GetProperty(vm, names.NewQNameMultiname(t.Name.NS, t.Name.Local))
			if val != nil {
				if obj, ok := val.Object(); ok {
					if realObj, ok := obj.(*Object); ok {
						s.Domain.Export(t.Name, realObj)
					}
				}
			}
		}
	}
	return nil
}
