package describe

import (
	"github.com/teranos/tsbridge/convert"
)

// MemberOption sets a member attribute on a builder-constructed member.
type MemberOption func(*convert.Member)

// Rename overrides the emitted member name.
func Rename(name string) MemberOption {
	return func(m *convert.Member) { m.Attrs.Rename = name }
}

// Skip drops the member from the output.
func Skip() MemberOption {
	return func(m *convert.Member) { m.Attrs.Skip = true }
}

// Optional marks the member optional.
func Optional() MemberOption {
	return func(m *convert.Member) { m.Attrs.Optional = true }
}

// Readonly marks the member readonly.
func Readonly() MemberOption {
	return func(m *convert.Member) { m.Attrs.Readonly = true }
}

// Inline splices a Named reference's definition in type position.
func Inline() MemberOption {
	return func(m *convert.Member) { m.Attrs.Inline = true }
}

// Flatten splices an object member's fields into the parent.
func Flatten() MemberOption {
	return func(m *convert.Member) { m.Attrs.Flatten = true }
}

// Override replaces the member type with a raw named reference.
func Override(name string) MemberOption {
	return func(m *convert.Member) { m.Attrs.Override = name }
}

// Pattern builds the member type from a ${...} template.
func Pattern(pattern string) MemberOption {
	return func(m *convert.Member) { m.Attrs.Pattern = pattern }
}

// Indexed produces the indexed access base["key"] as the member type.
func Indexed(base, key string) MemberOption {
	return func(m *convert.Member) {
		m.Attrs.Index = base
		m.Attrs.Key = key
	}
}

// F builds a record field or a named payload field for the builder API.
// The type reference may be a typedef.Def or a reflect.Type; both are
// understood by Resolve.
func F(name string, ty convert.TypeRef, opts ...MemberOption) convert.Member {
	m := convert.Member{Name: name, Type: ty}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// NewRecord builds a record descriptor field by field, for types that do
// not exist as Go structs or need attributes tags cannot carry.
func NewRecord(name string, opts ...Option) *RecordBuilder {
	desc := &convert.Descriptor{Name: name, Kind: convert.KindRecord}
	for _, opt := range opts {
		opt(desc)
	}
	return &RecordBuilder{desc: desc}
}

// RecordBuilder accumulates record fields.
type RecordBuilder struct {
	desc *convert.Descriptor
}

// Field appends a field and returns the builder for chaining.
func (b *RecordBuilder) Field(name string, ty convert.TypeRef, opts ...MemberOption) *RecordBuilder {
	b.desc.Members = append(b.desc.Members, F(name, ty, opts...))
	return b
}

// Build returns the finished descriptor.
func (b *RecordBuilder) Build() *convert.Descriptor { return b.desc }

// NewAlias builds an alias descriptor: type Name = <resolved ty>.
func NewAlias(name string, ty convert.TypeRef, opts ...Option) *convert.Descriptor {
	desc := &convert.Descriptor{
		Name:    name,
		Kind:    convert.KindAlias,
		Members: []convert.Member{{Type: ty}},
	}
	for _, opt := range opts {
		opt(desc)
	}
	return desc
}

// NewVariantSet builds a variant-set descriptor. Go has no sum types, so
// this is the only way to describe one at runtime.
func NewVariantSet(name string, opts ...Option) *VariantSetBuilder {
	desc := &convert.Descriptor{Name: name, Kind: convert.KindVariantSet}
	for _, opt := range opts {
		opt(desc)
	}
	return &VariantSetBuilder{desc: desc}
}

// VariantSetBuilder accumulates variants.
type VariantSetBuilder struct {
	desc *convert.Descriptor
}

// Unit appends a payload-free variant.
func (b *VariantSetBuilder) Unit(name string, opts ...MemberOption) *VariantSetBuilder {
	return b.add(convert.Member{Name: name}, opts)
}

// Newtype appends a variant with a single positional payload.
func (b *VariantSetBuilder) Newtype(name string, ty convert.TypeRef, opts ...MemberOption) *VariantSetBuilder {
	return b.add(convert.Member{
		Name:   name,
		Fields: []convert.Member{{Type: ty}},
	}, opts)
}

// Tuple appends a variant with multiple positional payload elements.
func (b *VariantSetBuilder) Tuple(name string, tys ...convert.TypeRef) *VariantSetBuilder {
	fields := make([]convert.Member, len(tys))
	for i, ty := range tys {
		fields[i] = convert.Member{Type: ty}
	}
	return b.add(convert.Member{Name: name, Fields: fields}, nil)
}

// Record appends a variant with a record-shaped payload. Build fields
// with F.
func (b *VariantSetBuilder) Record(name string, fields ...convert.Member) *VariantSetBuilder {
	return b.add(convert.Member{Name: name, Fields: fields}, nil)
}

// Build returns the finished descriptor.
func (b *VariantSetBuilder) Build() *convert.Descriptor { return b.desc }

func (b *VariantSetBuilder) add(m convert.Member, opts []MemberOption) *VariantSetBuilder {
	for _, opt := range opts {
		opt(&m)
	}
	b.desc.Members = append(b.desc.Members, m)
	return b
}
