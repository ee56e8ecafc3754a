// Package typesys defines the Umbrella type-tag set used as an
// annotation channel (spec.md §3), recorded by the parser, and a scoped
// environment the emitter uses to propagate declared types — the
// "real type check" spec.md §9 names as the principled replacement for
// the reference emitter's string-sniffing heuristic.
package typesys

import "github.com/midbel/umbrella/environ"

// Tag is one of the closed set of type annotations the parser records.
// It drives backend-type selection at emission time; it is not a full
// type checker (spec.md §3, Non-goals).
type Tag int

const (
	Any Tag = iota
	Number
	String
	Boolean
	Void
	Function
	Array
	Class
)

func (t Tag) String() string {
	switch t {
	case Number:
		return "number"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Void:
		return "void"
	case Function:
		return "function"
	case Array:
		return "Array"
	case Class:
		return "class"
	default:
		return "any"
	}
}

// Type pairs a Tag with the raw backend-type text captured verbatim at
// the declaration site for generics the tag set cannot express, e.g.
// `Array<Thread>` or `Map<string,Row>` (spec.md §3).
type Type struct {
	Tag    Tag
	Raw    string // opaque backend-type string; empty unless generic
	Class  string // class name when Tag == Class
}

// Backend maps a Tag to its default backend-type spelling (spec.md §3).
// Raw, when set, always takes precedence over this mapping (spec.md §4.3).
func (t Type) Backend() string {
	if t.Raw != "" {
		return t.Raw
	}
	switch t.Tag {
	case Number:
		return "double"
	case String:
		return "std::string"
	case Boolean:
		return "bool"
	case Void:
		return "void"
	case Class:
		return t.Class
	default:
		return "auto"
	}
}

// Scope is a lexically-nested map from identifier name to declared
// Type, reused from the teacher's generic environ.Environment rather
// than hand-rolled again.
type Scope = environ.Environment[Type]

// NewScope creates a root scope with no parent.
func NewScope() Scope {
	return environ.Empty[Type]()
}

// Enclosed creates a child scope nested inside parent.
func Enclosed(parent Scope) Scope {
	return environ.Enclosed[Type](parent)
}
