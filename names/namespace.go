// Package names implements the AS3 naming layer: namespaces, qualified
// names, and multinames (spec §3, §4.2). It has no dependency on vm or
// propmap so it can be imported by both without creating a cycle.
package names

import "sync"

// Variant discriminates the seven AS3 namespace kinds (spec §3).
type Variant byte

const (
	Public Variant = iota
	Internal
	Protected
	Explicit
	StaticProtected
	Private
	NamespaceKind
)

func (v Variant) String() string {
	switch v {
	case Public:
		return "public"
	case Internal:
		return "internal"
	case Protected:
		return "protected"
	case Explicit:
		return "explicit"
	case StaticProtected:
		return "staticProtected"
	case Private:
		return "private"
	case NamespaceKind:
		return "namespace"
	default:
		return "unknown"
	}
}

// Namespace is a (variant, URI) pair. Two namespaces are the same
// namespace iff both variant and URI match; Private namespaces are
// additionally distinguished by an identity token so that two "private"
// namespaces with the same URI string (the common case: both empty) never
// collide, matching AVM2's per-definition private-namespace allocation.
type Namespace struct {
	variant  Variant
	uri      string
	identity *byte // only populated, and only significant, for Private; non-zero-size so every allocation has its own address
}

// nsCache interns every non-Private (variant, uri) pair to a single
// shared *Namespace instance. This matters beyond just saving
// allocations: callers across package boundaries routinely build a
// QName (and therefore a Go map key embedding a *Namespace) from a
// freshly constructed Namespace rather than a value threaded through
// from wherever the "real" one lives — e.g. a test or a CLI command
// resolving "the public namespace" independently of vm/bootstrap.go's
// own reference to it. Without interning, two such namespaces are
// Equal() but not ==, and any map keyed directly by names.QName (as
// Domain.exports and Object.Dynamic are, for lookup-speed reasons) would
// silently miss. Private is exempt by design: every call must yield a
// distinct identity (see below).
var (
	nsCacheMu sync.Mutex
	nsCache   = make(map[Variant]map[string]*Namespace)
)

// NewNamespace constructs a namespace of the given variant and URI.
// Every call for a given non-Private (variant, uri) pair returns the
// same *Namespace instance. Private is the one exception: each call
// produces a distinct namespace even with an identical URI, matching
// AVM2 semantics where every class/trait gets its own private namespace
// instance.
func NewNamespace(variant Variant, uri string) *Namespace {
	if variant == Private {
		return &Namespace{variant: variant, uri: uri, identity: new(byte)}
	}

	nsCacheMu.Lock()
	defer nsCacheMu.Unlock()
	byURI, ok := nsCache[variant]
	if !ok {
		byURI = make(map[string]*Namespace)
		nsCache[variant] = byURI
	}
	if ns, ok := byURI[uri]; ok {
		return ns
	}
	ns := &Namespace{variant: variant, uri: uri}
	byURI[uri] = ns
	return ns
}

func (n *Namespace) URI() string         { return n.uri }
func (n *Namespace) Variant() Variant    { return n.variant }
func (n *Namespace) VariantName() string { return n.variant.String() }

// Equal reports whether n and other denote the same namespace.
func (n *Namespace) Equal(other *Namespace) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.variant != other.variant {
		return false
	}
	if n.variant == Private {
		return n.identity == other.identity
	}
	return n.uri == other.uri
}

func (n *Namespace) String() string {
	if n.uri == "" {
		return n.variant.String()
	}
	return n.variant.String() + "::" + n.uri
}

// QName is a qualified name: a single namespace paired with a local name
// (spec §3).
type QName struct {
	NS    *Namespace
	Local string
}

func NewQName(ns *Namespace, local string) QName {
	return QName{NS: ns, Local: local}
}

func (q QName) Equal(other QName) bool {
	return q.Local == other.Local && q.NS.Equal(other.NS)
}

func (q QName) String() string {
	if q.NS == nil {
		return q.Local
	}
	return q.NS.String() + "::" + q.Local
}
