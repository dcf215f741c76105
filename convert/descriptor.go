// Package convert turns source type descriptors into typedef IR trees.
//
// A Descriptor is produced by a source adapter (runtime reflection, go/ast,
// or the builder API in package describe) and carries everything the
// converter needs: the type's name and kind, its members, and a bag of
// conversion attributes per member and per container. Member types are
// opaque references that the converter resolves through a caller-supplied
// callback, keeping the converter independent of any one source language's
// type representation.
package convert

import "github.com/teranos/tsbridge/typedef"

// Kind classifies a source type.
type Kind int

const (
	// KindRecord is a product type: a struct, record, or class.
	KindRecord Kind = iota
	// KindVariantSet is an algebraic sum type: an enum with payloads.
	KindVariantSet
	// KindAlias is a transparent name for another type.
	KindAlias
)

// TypeRef is an opaque member type reference. Each source adapter chooses
// its own concrete representation (a reflect.Type, an ast.Expr, a typedef
// node) and supplies a Resolver that understands it.
type TypeRef = any

// Resolver maps a member type reference to its typedef representation,
// recursing into nested and referenced types as needed.
type Resolver func(ref TypeRef) (typedef.Def, error)

// Descriptor describes a single source type.
type Descriptor struct {
	Name       string
	Namespace  []string
	Module     string
	Kind       Kind
	TypeParams []string
	Members    []Member
	Attrs      ContainerAttrs
}

// Member is one record field or one variant of a variant set.
//
// Record fields carry Name and Type. Variants carry Name and Fields: an
// empty Fields slice is a unit variant, unnamed entries are positional
// payload elements, and named entries form a record-shaped payload.
type Member struct {
	Name   string
	Type   TypeRef
	Fields []Member
	Attrs  MemberAttrs
}

// ContainerAttrs are conversion attributes that apply to the whole type.
type ContainerAttrs struct {
	// RenameAll applies a case policy to every member name that has no
	// explicit rename. See ApplyRenameAll for the accepted tokens.
	RenameAll string

	// Tag is the discriminant field name for variant-set encoding.
	// Empty selects the default, "type".
	Tag string

	// Content, when set together with Tag, selects adjacent tagging:
	// the payload moves under this field instead of merging with the tag.
	Content string

	// Untagged drops the discriminant entirely.
	Untagged bool

	// Transparent exposes the inner type of a single-field wrapper record
	// directly, without a Named wrapper. Used for ID-wrapper types.
	Transparent bool

	// Wrapper names a utility type the declaration is wrapped in:
	// type Name = Wrapper<...>.
	Wrapper string

	// Extends lists named base types intersected with the object body.
	Extends []string
}

// MemberAttrs are conversion attributes that apply to a single member.
type MemberAttrs struct {
	// Rename overrides the emitted member name.
	Rename string

	// Skip removes the member from the output entirely.
	Skip bool

	// Flatten splices the member's object fields in place of the member.
	Flatten bool

	// Override replaces the computed type with a raw named reference,
	// bypassing type resolution.
	Override string

	// Index and Key must appear as a pair and produce Base["key"].
	Index string
	Key   string

	// Pattern builds a template literal type from a ${...} template.
	Pattern string

	// Optional marks the field optional. A resolved `T | null` maybe
	// shape is unwrapped to T rather than kept as a union.
	Optional bool

	// HasDefault marks fields with a source-side default; they are
	// emitted optional.
	HasDefault bool

	// Inline replaces a Named reference with its unwrapped definition.
	Inline bool

	// Readonly marks the emitted field readonly.
	Readonly bool
}
