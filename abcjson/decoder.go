// Package abcjson decodes a JSON-shaped ABC document into the in-memory
// abc.File structures the VM consumes, standing in for a real .abc binary
// parser (out of scope per spec.md §1: "this system begins at the
// parsed-ABC stage"). Grounded on the teacher's encoding/json usage
// (runtime/encoding.go) for the same "stdlib is the idiomatic choice for
// JSON, no suitable third-party replacement in the examples pack" reason
// — third-party wiring (cli/v3, readline, fsnotify, prometheus) stays in
// the CLI layer; decoding the document itself is a
// plain data-transfer concern the teacher also leaves to encoding/json.
package abcjson

import (
	"encoding/json"
	"fmt"

	"github.com/avm2/avm2/abc"
	"github.com/avm2/avm2/names"
	"github.com/avm2/avm2/opcodes"
	"github.com/avm2/avm2/propmap"
	"github.com/avm2/avm2/registry"
)

// Decoder implements vmfactory.ABCDecoder by parsing the JSON document
// shape documented on docFile below.
type Decoder struct{}

func New() *Decoder { return &Decoder{} }

func (d *Decoder) Decode(data []byte) (*abc.File, error) {
	var doc docFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("abcjson: %w", err)
	}
	return doc.build()
}

// --- JSON document shape ---

type docFile struct {
	MinorVersion uint16        `json:"minorVersion"`
	MajorVersion uint16        `json:"majorVersion"`
	Pools        docPools      `json:"pools"`
	Scripts      []docScript   `json:"scripts"`
}

type docPools struct {
	Ints       []int32        `json:"ints"`
	Uints      []uint32       `json:"uints"`
	Doubles    []float64      `json:"doubles"`
	Strings    []string       `json:"strings"`
	Namespaces []docNamespace `json:"namespaces"`
	Multinames []docMultiname `json:"multinames"`
}

type docNamespace struct {
	Variant string `json:"variant"` // "public","internal","protected","explicit","staticProtected","private"
	URI     string `json:"uri"`
}

type docMultiname struct {
	Namespaces       []int  `json:"namespaces"` // indices into pools.namespaces
	Local            string `json:"local"`
	HasLocal         bool   `json:"hasLocal"`
	RuntimeNamespace bool   `json:"runtimeNamespace"`
	RuntimeLocal     bool   `json:"runtimeLocal"`
}

type docScript struct {
	Name   string      `json:"name"`
	Init   docMethod   `json:"init"`
	Traits []docTrait  `json:"traits"`
}

type docTrait struct {
	NameNS    int       `json:"nameNamespace"`
	NameLocal string    `json:"nameLocal"`
	Kind      string    `json:"kind"` // script traits: "class","slot","const","function"; class traits: "slot","const","method","getter","setter"
	SlotIndex uint32    `json:"slotIndex"`
	Final     bool      `json:"final"`
	Override  bool      `json:"override"`
	Type      string    `json:"type"`
	Method    *docMethod `json:"method,omitempty"`
	Class     *docClass  `json:"class,omitempty"`
}

type docMethod struct {
	Name             string        `json:"name"`
	Kind             string        `json:"kind"` // "native","bytecode","entry" (native has no body here)
	ParamTypes       []string      `json:"paramTypes"`
	ReturnType       string        `json:"returnType"`
	NeedsRest        bool          `json:"needsRest"`
	NeedsArgs        bool          `json:"needsArgs"`
	Body             *docMethodBody `json:"body,omitempty"`
}

type docMethodBody struct {
	MaxStack       int               `json:"maxStack"`
	MaxLocals      int               `json:"maxLocals"`
	MaxScopeDepth  int               `json:"maxScopeDepth"`
	InitScopeDepth int               `json:"initScopeDepth"`
	Code           []docInstruction  `json:"code"`
	ExceptionTable []docExceptionRow `json:"exceptionTable"`
}

type docInstruction struct {
	Op       string  `json:"op"`
	Operands []int32 `json:"operands"`
}

type docExceptionRow struct {
	From     int `json:"from"`
	To       int `json:"to"`
	TargetIP int `json:"targetIP"`
	TypeName *int `json:"typeName"` // index into pools.multinames, nil = catch-all
	VarName  *int `json:"varName"`
}

type docClass struct {
	Name           string     `json:"name"`
	NameNS         int        `json:"nameNamespace"`
	SuperNS        *int       `json:"superNamespace"`
	SuperLocal     string     `json:"superLocal"`
	Sealed         bool       `json:"sealed"`
	Final          bool       `json:"final"`
	Interface      bool       `json:"interface"`
	InstanceInit   *docMethod `json:"instanceInit,omitempty"`
	ClassInit      *docMethod `json:"classInit,omitempty"`
	InstanceTraits []docTrait `json:"instanceTraits"`
	ClassTraits    []docTrait `json:"classTraits"`
}

// --- building ---

type buildCtx struct {
	namespaces []*names.Namespace
	multinames []*names.Multiname
	file       *abc.File
}

func (doc *docFile) build() (*abc.File, error) {
	file := &abc.File{
		MinorVersion: doc.MinorVersion,
		MajorVersion: doc.MajorVersion,
		IntPool:      doc.Pools.Ints,
		UintPool:     doc.Pools.Uints,
		DoublePool:   doc.Pools.Doubles,
		StringPool:   doc.Pools.Strings,
	}

	ctx := &buildCtx{file: file}
	for _, n := range doc.Pools.Namespaces {
		variant, err := parseVariant(n.Variant)
		if err != nil {
			return nil, err
		}
		ctx.namespaces = append(ctx.namespaces, names.NewNamespace(variant, n.URI))
	}
	file.NamespacePool = ctx.namespaces

	for _, m := range doc.Pools.Multinames {
		mn := &names.Multiname{Local: m.Local, HasLocal: m.HasLocal, RuntimeNamespace: m.RuntimeNamespace, RuntimeLocal: m.RuntimeLocal}
		for _, idx := range m.Namespaces {
			if idx < 0 || idx >= len(ctx.namespaces) {
				return nil, fmt.Errorf("abcjson: multiname namespace index %d out of range", idx)
			}
			mn.Namespaces = append(mn.Namespaces, ctx.namespaces[idx])
		}
		ctx.multinames = append(ctx.multinames, mn)
	}
	file.MultinamePool = ctx.multinames

	for _, s := range doc.Scripts {
		script, err := ctx.buildScript(s)
		if err != nil {
			return nil, err
		}
		file.Scripts = append(file.Scripts, script)
	}

	return file, nil
}

func parseVariant(s string) (names.Variant, error) {
	switch s {
	case "", "public":
		return names.Public, nil
	case "internal":
		return names.Internal, nil
	case "protected":
		return names.Protected, nil
	case "explicit":
		return names.Explicit, nil
	case "staticProtected":
		return names.StaticProtected, nil
	case "private":
		return names.Private, nil
	default:
		return 0, fmt.Errorf("abcjson: unknown namespace variant %q", s)
	}
}

func (ctx *buildCtx) ns(idx int) (*names.Namespace, error) {
	if idx < 0 || idx >= len(ctx.namespaces) {
		return nil, fmt.Errorf("abcjson: namespace index %d out of range", idx)
	}
	return ctx.namespaces[idx], nil
}

func (ctx *buildCtx) buildScript(s docScript) (*abc.ScriptData, error) {
	init, err := ctx.buildMethod(s.Init)
	if err != nil {
		return nil, err
	}
	script := &abc.ScriptData{Name: s.Name, Init: init}

	for _, t := range s.Traits {
		ns, err := ctx.ns(t.NameNS)
		if err != nil {
			return nil, err
		}
		qn := names.NewQName(ns, t.NameLocal)
		st := abc.ScriptTrait{Name: qn}
		switch t.Kind {
		case "class":
			st.Kind = abc.ScriptTraitClass
			if t.Class == nil {
				return nil, fmt.Errorf("abcjson: script trait %s kind=class missing class body", t.NameLocal)
			}
			classData, err := ctx.buildClass(*t.Class)
			if err != nil {
				return nil, err
			}
			st.Class = classData
		case "slot":
			st.Kind = abc.ScriptTraitSlot
		case "const":
			st.Kind = abc.ScriptTraitConst
		case "function":
			st.Kind = abc.ScriptTraitFunction
		default:
			return nil, fmt.Errorf("abcjson: unknown script trait kind %q", t.Kind)
		}
		script.Traits = append(script.Traits, st)
	}
	return script, nil
}

func (ctx *buildCtx) buildClass(c docClass) (*abc.ClassData, error) {
	nameNS, err := ctx.ns(c.NameNS)
	if err != nil {
		return nil, err
	}
	instance := registry.NewClass(names.NewQName(nameNS, c.Name))
	instance.Flags = registry.ClassFlags{Sealed: c.Sealed, Final: c.Final, Interface: c.Interface}

	if c.SuperNS != nil {
		superNS, err := ctx.ns(*c.SuperNS)
		if err != nil {
			return nil, err
		}
		instance.Super = names.NewQNameMultiname(superNS, c.SuperLocal)
	}

	if c.InstanceInit != nil {
		instance.InstanceInit, err = ctx.buildMethod(*c.InstanceInit)
		if err != nil {
			return nil, err
		}
	}

	traits, err := ctx.buildTraits(c.InstanceTraits)
	if err != nil {
		return nil, err
	}
	instance.InstanceTraits = traits

	static := registry.NewClass(names.NewQName(nameNS, c.Name))
	if c.ClassInit != nil {
		static.ClassInit, err = ctx.buildMethod(*c.ClassInit)
		if err != nil {
			return nil, err
		}
	}
	classTraits, err := ctx.buildTraits(c.ClassTraits)
	if err != nil {
		return nil, err
	}
	static.InstanceTraits = classTraits

	return &abc.ClassData{Instance: instance, Static: static}, nil
}

func (ctx *buildCtx) buildTraits(docTraits []docTrait) ([]propmap.Trait, error) {
	var out []propmap.Trait
	for _, t := range docTraits {
		ns, err := ctx.ns(t.NameNS)
		if err != nil {
			return nil, err
		}
		qn := names.NewQName(ns, t.NameLocal)
		trait := propmap.Trait{Name: qn, SlotIndex: t.SlotIndex, Final: t.Final, Override: t.Override, DeclaredType: t.Type}

		switch t.Kind {
		case "slot":
			trait.Kind = propmap.KindSlot
		case "const":
			trait.Kind = propmap.KindConst
		case "method":
			trait.Kind = propmap.KindMethod
			if t.Method != nil {
				ref, err := ctx.buildMethod(*t.Method)
				if err != nil {
					return nil, err
				}
				trait.Ref = ref
			}
		case "getter":
			trait.Kind = propmap.KindGetter
			if t.Method != nil {
				ref, err := ctx.buildMethod(*t.Method)
				if err != nil {
					return nil, err
				}
				trait.Ref = ref
			}
		case "setter":
			trait.Kind = propmap.KindSetter
			if t.Method != nil {
				ref, err := ctx.buildMethod(*t.Method)
				if err != nil {
					return nil, err
				}
				trait.Ref = ref
			}
		default:
			return nil, fmt.Errorf("abcjson: unknown trait kind %q", t.Kind)
		}
		out = append(out, trait)
	}
	return out, nil
}

func (ctx *buildCtx) buildMethod(m docMethod) (*registry.MethodRef, error) {
	ref := &registry.MethodRef{
		Name:       m.Name,
		ParamTypes: m.ParamTypes,
		ReturnType: m.ReturnType,
		NeedsRest:  m.NeedsRest,
		NeedsArgs:  m.NeedsArgs,
	}
	switch m.Kind {
	case "", "bytecode":
		ref.Kind = registry.MethodBytecode
	case "entry":
		ref.Kind = registry.MethodEntry
	case "native":
		ref.Kind = registry.MethodNative
		return ref, nil // native bodies are wired host-side, not via JSON
	default:
		return nil, fmt.Errorf("abcjson: unknown method kind %q", m.Kind)
	}

	if m.Body == nil {
		return ref, nil
	}
	body := &abc.MethodBodyData{
		MaxStack: m.Body.MaxStack, MaxLocals: m.Body.MaxLocals,
		MaxScopeDepth: m.Body.MaxScopeDepth, InitScopeDepth: m.Body.InitScopeDepth,
		Pools: ctx.file,
	}
	for _, inst := range m.Body.Code {
		op, ok := opcodes.Lookup(inst.Op)
		if !ok {
			return nil, fmt.Errorf("abcjson: unknown opcode mnemonic %q", inst.Op)
		}
		body.Code = append(body.Code, &opcodes.Instruction{Op: op, Operands: inst.Operands})
	}
	for _, row := range m.Body.ExceptionTable {
		entry := abc.ExceptionEntry{From: row.From, To: row.To, TargetIP: row.TargetIP}
		if row.TypeName != nil {
			if *row.TypeName < 0 || *row.TypeName >= len(ctx.multinames) {
				return nil, fmt.Errorf("abcjson: exception typeName index out of range")
			}
			entry.TypeName = ctx.multinames[*row.TypeName]
		}
		if row.VarName != nil {
			if *row.VarName < 0 || *row.VarName >= len(ctx.multinames) {
				return nil, fmt.Errorf("abcjson: exception varName index out of range")
			}
			entry.VarName = ctx.multinames[*row.VarName]
		}
		body.ExceptionTable = append(body.ExceptionTable, entry)
	}
	ref.Body = body
	return ref, nil
}
