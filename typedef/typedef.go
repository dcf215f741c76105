// Package typedef defines the intermediate representation at the center of
// tsbridge: a recursive, language-neutral type tree that source adapters
// produce and the TypeScript renderer consumes.
//
// A Def tree is constructed once and never mutated afterwards. Walkers and
// renderers treat it as read-only.
package typedef

// Def is the closed set of representable type shapes. Every implementation
// lives in this package; the renderer and registry switch exhaustively over
// it and panic on an unknown node, so adding a variant without updating the
// consumers fails loudly.
type Def interface {
	isDef()
}

// PrimKind enumerates the primitive TypeScript types.
type PrimKind int

const (
	String PrimKind = iota
	Number
	Boolean
	Null
	Undefined
	Void
	Never
	Any
	Unknown
	BigInt
)

// Keyword returns the TypeScript keyword for the primitive kind.
func (k PrimKind) Keyword() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Null:
		return "null"
	case Undefined:
		return "undefined"
	case Void:
		return "void"
	case Never:
		return "never"
	case Any:
		return "any"
	case Unknown:
		return "unknown"
	case BigInt:
		return "bigint"
	}
	return "unknown"
}

// Primitive is a built-in scalar type.
type Primitive struct {
	Kind PrimKind
}

// Array is a homogeneous element list, rendered T[].
type Array struct {
	Elem Def
}

// Tuple is a fixed-length heterogeneous list, rendered [A, B, C].
type Tuple struct {
	Elems []Def
}

// Field is a single member of an Object or a Function parameter list.
type Field struct {
	Name     string
	Type     Def
	Optional bool
	Readonly bool
}

// Object is an inline structural type, rendered { a: T; b: U }.
type Object struct {
	Fields []Field
}

// Union is an alternation of types, rendered A | B.
type Union struct {
	Members []Def
}

// Intersection is a conjunction of types, rendered A & B.
type Intersection struct {
	Members []Def
}

// Record is a keyed map type, rendered Record<K, V>.
type Record struct {
	Key   Def
	Value Def
}

// Named carries a declared type name together with its definition. In an
// inline position a Named renders as its name only; its full definition is
// emitted once, as a declaration, by the registry.
//
// Module is the origin module path used by multi-file output grouping
// (empty means the default bucket). Wrapper, when set, wraps the declared
// definition in a utility type: type Name = Wrapper<def>. TypeParams
// declare generic parameters: type Name<T> = ...; inside the definition
// they appear as Refs.
type Named struct {
	Namespace  []string
	Name       string
	TypeParams []string
	Def        Def
	Module     string
	Wrapper    string
}

// QualifiedName joins the namespace path and name with dots.
func (n Named) QualifiedName() string {
	if len(n.Namespace) == 0 {
		return n.Name
	}
	s := ""
	for _, ns := range n.Namespace {
		s += ns + "."
	}
	return s + n.Name
}

// Ref is a by-name pointer to a Named type, resolved only at render and
// graph-build time. A Ref whose name is never registered is not an error:
// it is the designed mechanism for referencing types declared outside the
// generated output, and renders as a bare identifier.
type Ref struct {
	Name string
}

// LiteralKind discriminates Literal values.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralNumber
	LiteralBool
)

// Literal is a literal type: "active", 42, true.
type Literal struct {
	Kind LiteralKind
	Str  string
	Num  float64
	Bool bool
}

// StringLit builds a string literal type.
func StringLit(s string) Literal { return Literal{Kind: LiteralString, Str: s} }

// NumberLit builds a numeric literal type.
func NumberLit(n float64) Literal { return Literal{Kind: LiteralNumber, Num: n} }

// BoolLit builds a boolean literal type.
func BoolLit(b bool) Literal { return Literal{Kind: LiteralBool, Bool: b} }

// Function is a function type, rendered (a: T, b: U) => R.
type Function struct {
	Params  []Field
	Returns Def
}

// Generic is an applied generic type, rendered Base<A, B>.
type Generic struct {
	Base string
	Args []Def
}

// TemplateLiteral is a template literal type such as `vm-${string}`.
// Invariant: len(Strings) == len(Types)+1. Strings carries the literal
// chunks between (and around) the placeholder types.
type TemplateLiteral struct {
	Strings []string
	Types   []Def
}

// IndexedAccess looks a property type up by key, rendered Base["key"].
type IndexedAccess struct {
	Base string
	Key  string
}

func (Primitive) isDef()       {}
func (Array) isDef()           {}
func (Tuple) isDef()           {}
func (Object) isDef()          {}
func (Union) isDef()           {}
func (Intersection) isDef()    {}
func (Record) isDef()          {}
func (Named) isDef()           {}
func (Ref) isDef()             {}
func (Literal) isDef()         {}
func (Function) isDef()        {}
func (Generic) isDef()         {}
func (TemplateLiteral) isDef() {}
func (IndexedAccess) isDef()   {}

// NewField builds a required, mutable-by-default field.
func NewField(name string, ty Def) Field {
	return Field{Name: name, Type: ty}
}

// OptionalField builds an optional field.
func OptionalField(name string, ty Def) Field {
	return Field{Name: name, Type: ty, Optional: true}
}
