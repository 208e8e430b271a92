package names

// Multiname is an unresolved name reference as it appears in bytecode: a
// set of candidate namespaces, an optional compile-time local name, and a
// flag marking whether the local name (and/or namespace) is instead
// supplied at runtime via the operand stack (spec §3, §4.2's "runtime
// multinames" — RTQName/RTQNameL/MultinameL forms).
type Multiname struct {
	Namespaces []*Namespace
	Local      string
	HasLocal   bool // false for a *MultinameL-style runtime-local lookup

	RuntimeNamespace bool // namespace supplied on the operand stack
	RuntimeLocal     bool // local name supplied on the operand stack
}

// NewMultiname builds a compile-time multiname over a namespace set with a
// fixed local name.
func NewMultiname(namespaces []*Namespace, local string) *Multiname {
	return &Multiname{Namespaces: namespaces, Local: local, HasLocal: true}
}

// NewQNameMultiname builds a single-namespace multiname, the common case
// for a resolved QName reference.
func NewQNameMultiname(ns *Namespace, local string) *Multiname {
	return NewMultiname([]*Namespace{ns}, local)
}

// Contains reports whether ns is one of the multiname's candidate
// namespaces.
func (m *Multiname) Contains(ns *Namespace) bool {
	for _, candidate := range m.Namespaces {
		if candidate.Equal(ns) {
			return true
		}
	}
	return false
}

// IsQName reports whether m denotes exactly one namespace and a
// compile-time local name, i.e. it can resolve to at most one QName
// without a namespace-set search.
func (m *Multiname) IsQName() bool {
	return m.HasLocal && !m.RuntimeLocal && !m.RuntimeNamespace && len(m.Namespaces) == 1
}

// WithRuntimeName returns a copy of m with the local name resolved from a
// runtime value, used when executing *L-suffixed opcodes (spec §4.2).
func (m *Multiname) WithRuntimeName(local string) *Multiname {
	clone := *m
	clone.Local = local
	clone.HasLocal = true
	clone.RuntimeLocal = false
	return &clone
}

// WithRuntimeNamespace returns a copy of m with a single runtime-resolved
// namespace substituted for the namespace set, used by RTQName* opcodes.
func (m *Multiname) WithRuntimeNamespace(ns *Namespace) *Multiname {
	clone := *m
	clone.Namespaces = []*Namespace{ns}
	clone.RuntimeNamespace = false
	return &clone
}

func (m *Multiname) String() string {
	local := m.Local
	if !m.HasLocal {
		local = "*"
	}
	if len(m.Namespaces) == 1 {
		return m.Namespaces[0].String() + "::" + local
	}
	return "{multiname}::" + local
}
