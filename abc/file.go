// Package abc defines the parsed-ABC shape the VM consumes (spec §1, §6):
// the in-memory structures an external ABC binary decoder is expected to
// produce. This package never parses bytes — it is a pure data-transfer
// layer, analogous to how the teacher's compiler pipeline hands the VM
// already-built []*opcodes.Instruction plus constant pools
// (vm/vm.go's Execute(ctx, instructions, constants, functions, classes)
// signature) rather than the VM doing its own lexing. abc depends only on
// values, names, propmap, opcodes, and registry — never on vm — so that
// vm can depend on abc without a cycle.
package abc

import (
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/opcodes"
	"github.com/avm2/avm2/registry"
	"github.com/avm2/avm2/values"
)

// File is one decoded ABC translation unit: constant pools plus the
// ordered list of scripts it declares (spec §4.7 — a TranslationUnit is
// constructed from exactly one File).
type File struct {
	// MinorVersion/MajorVersion mirror the ABC header; carried through
	// for diagnostics only, never interpreted by the VM.
	MinorVersion uint16
	MajorVersion uint16

	IntPool       []int32
	UintPool      []uint32
	DoublePool    []float64
	StringPool    []string
	NamespacePool []*names.Namespace
	MultinamePool []*names.Multiname

	Methods []*registry.MethodRef
	Classes []*ClassData
	Scripts []*ScriptData
}

// ScriptData is the parsed form of one ABC script entry: its init method
// and the set of traits it declares at global scope (spec §4.7 — a Script
// wraps exactly one ScriptData plus its runtime-realized global object).
type ScriptData struct {
	Name string // diagnostic label only; scripts are unnamed in real ABC

	Init *registry.MethodRef

	// Traits are the script-level (global) trait declarations realized
	// onto the Script's global object when the script initializes.
	Traits []ScriptTrait
}

// ScriptTrait pairs a declarative trait with the class template it refers
// to, when the trait is a class trait (the overwhelmingly common case for
// script-level traits: "script declares and exports class Foo").
type ScriptTrait struct {
	Name  names.QName
	Kind  ScriptTraitKind
	Class *ClassData // set when Kind == ScriptTraitClass
	Slot  *values.Value
}

type ScriptTraitKind byte

const (
	ScriptTraitClass ScriptTraitKind = iota
	ScriptTraitSlot
	ScriptTraitConst
	ScriptTraitFunction
)

// ClassData pairs a class's instance template and class (static) template,
// since ABC encodes them as two related but distinct traits_info blocks
// sharing one name.
type ClassData struct {
	Instance *registry.Class // instance-side traits, super, interfaces
	Static   *registry.Class // class-side (static) traits, class init
}

// MethodBodyData is the parsed method_body_info: the bytecode and frame
// sizing a Bytecode-kind registry.MethodRef.Body points to (spec §4.3's
// Activation sizing comes from MaxStack/MaxLocals here).
type MethodBodyData struct {
	MaxStack  int
	MaxLocals int
	MaxScopeDepth int
	InitScopeDepth int

	Code []*opcodes.Instruction

	ExceptionTable []ExceptionEntry

	// Pools points back at the owning File's constant pools, since
	// pushint/pushstring/pushnamespace/findpropstrict and friends index
	// into pools that are per-TranslationUnit, not per-method. Populated
	// by the loader when it builds each method body from its File.
	Pools *File
}

// ExceptionEntry is one exception-table row: the [From, To) instruction
// range it guards, the TargetIP to jump to on a match, and the multiname
// of the caught type (nil/empty TypeName matches any value, per ABC's
// "catch-all" convention).
type ExceptionEntry struct {
	From, To int
	TargetIP int
	TypeName *names.Multiname
	VarName  *names.Multiname // name bound to the caught value within the handler scope
}
