// Package describe produces convert.Descriptors from Go declarations.
//
// It is one of tsbridge's pluggable source adapters: runtime reflection
// over struct tags for record types, plus an explicit builder API for the
// shapes Go cannot express natively (variant sets, aliases with
// conversion attributes). All adapters terminate at the same Descriptor
// shape, so the converter never sees which one produced its input.
package describe

import (
	"reflect"
	"strings"

	"github.com/teranos/tsbridge/convert"
	"github.com/teranos/tsbridge/errors"
	"github.com/teranos/tsbridge/typedef"
)

// Option sets a container attribute on a descriptor under construction.
type Option func(*convert.Descriptor)

// Name overrides the descriptor name (default: the Go type name).
func Name(name string) Option {
	return func(d *convert.Descriptor) { d.Name = name }
}

// Namespace sets the namespace path.
func Namespace(parts ...string) Option {
	return func(d *convert.Descriptor) { d.Namespace = parts }
}

// Module sets the origin module path used by multi-file output grouping.
func Module(path string) Option {
	return func(d *convert.Descriptor) { d.Module = path }
}

// RenameAll applies a case policy to member names without explicit renames.
func RenameAll(policy string) Option {
	return func(d *convert.Descriptor) { d.Attrs.RenameAll = policy }
}

// Tag sets the variant discriminant field name.
func Tag(tag string) Option {
	return func(d *convert.Descriptor) { d.Attrs.Tag = tag }
}

// Content selects adjacent tagging with the given content field name.
func Content(content string) Option {
	return func(d *convert.Descriptor) { d.Attrs.Content = content }
}

// Untagged drops the variant discriminant entirely.
func Untagged() Option {
	return func(d *convert.Descriptor) { d.Attrs.Untagged = true }
}

// Transparent exposes a single-field wrapper record's inner type directly.
func Transparent() Option {
	return func(d *convert.Descriptor) { d.Attrs.Transparent = true }
}

// Wrapper wraps the declaration in a utility type.
func Wrapper(wrapper string) Option {
	return func(d *convert.Descriptor) { d.Attrs.Wrapper = wrapper }
}

// Extends intersects the object body with the named base types.
func Extends(bases ...string) Option {
	return func(d *convert.Descriptor) { d.Attrs.Extends = bases }
}

// Struct builds a record descriptor from a Go struct value (or pointer to
// one) via runtime reflection. Exported fields become members whose
// TypeRef is the field's reflect.Type; `ts` and `json` struct tags carry
// the member attributes (see ParseTag).
func Struct(v any, opts ...Option) (*convert.Descriptor, error) {
	t := reflect.TypeOf(v)
	if t == nil {
		return nil, errors.New("describe: nil value")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Newf("describe: %s is not a struct", t)
	}

	desc := &convert.Descriptor{
		Name: t.Name(),
		Kind: convert.KindRecord,
	}
	for _, opt := range opts {
		opt(desc)
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous {
			// Embedded fields become intersection bases.
			et := f.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Name() != "" {
				desc.Attrs.Extends = append(desc.Attrs.Extends, et.Name())
			}
			continue
		}
		attrs, name := ParseTag(f.Tag)
		if name == "" {
			name = f.Name
		}
		desc.Members = append(desc.Members, convert.Member{
			Name:  name,
			Type:  f.Type,
			Attrs: attrs,
		})
	}

	return desc, nil
}

// ParseTag extracts member attributes from `ts` and `json` struct tags.
//
// The json tag supplies the fallback name, skip (`json:"-"`) and
// omitempty-driven optionality. The ts tag carries tsbridge-specific
// attributes as comma-separated entries:
//
//	ts:"rename=id"        override the emitted name
//	ts:"-" / ts:"skip"    drop the field
//	ts:"optional"         mark optional (unwraps `T | null`)
//	ts:"readonly"         mark readonly
//	ts:"inline"           splice a Named reference's definition
//	ts:"flatten"          splice an object member's fields
//	ts:"type=Foo"         raw type override, bypasses resolution
//	ts:"pattern=v${number}" template literal type
//	ts:"index=T,key=k"    indexed access T["k"]
//
// Attribute values cannot contain commas; use the builder API for those.
func ParseTag(tag reflect.StructTag) (convert.MemberAttrs, string) {
	var attrs convert.MemberAttrs
	var name string

	if jsonTag := tag.Get("json"); jsonTag != "" {
		parts := strings.Split(jsonTag, ",")
		name = parts[0]
		if name == "-" {
			attrs.Skip = true
			return attrs, ""
		}
		for _, part := range parts[1:] {
			if part == "omitempty" {
				attrs.Optional = true
			}
		}
	}

	tsTag := tag.Get("ts")
	if tsTag == "" {
		return attrs, name
	}
	if tsTag == "-" {
		attrs.Skip = true
		return attrs, name
	}

	for _, part := range strings.Split(tsTag, ",") {
		key, value, _ := strings.Cut(part, "=")
		switch key {
		case "rename":
			attrs.Rename = value
		case "skip":
			attrs.Skip = true
		case "optional":
			attrs.Optional = true
		case "default":
			attrs.HasDefault = true
		case "readonly":
			attrs.Readonly = true
		case "inline":
			attrs.Inline = true
		case "flatten":
			attrs.Flatten = true
		case "type":
			attrs.Override = value
		case "pattern":
			attrs.Pattern = value
		case "index":
			attrs.Index = value
		case "key":
			attrs.Key = value
		}
	}

	return attrs, name
}

// Resolve is the standard resolver for descriptors built by this package.
// It understands two TypeRef representations: a typedef.Def passes
// through unchanged (builder API), and a reflect.Type maps structurally
// (Struct adapter). Named Go types that are not scalars resolve to Refs;
// registering their own descriptors is the caller's responsibility, and
// unregistered names render as intentionally-external bare identifiers.
func Resolve(ref convert.TypeRef) (typedef.Def, error) {
	if def, ok := ref.(typedef.Def); ok {
		return def, nil
	}
	t, ok := ref.(reflect.Type)
	if !ok {
		return nil, errors.Newf("describe: unsupported type reference %T", ref)
	}
	return resolveType(t)
}

func resolveType(t reflect.Type) (typedef.Def, error) {
	// Well-known stdlib types serialize as scalars.
	switch t.PkgPath() + "." + t.Name() {
	case "time.Time":
		return typedef.Primitive{Kind: typedef.String}, nil
	case "time.Duration":
		return typedef.Primitive{Kind: typedef.Number}, nil
	}

	switch t.Kind() {
	case reflect.String:
		if t.Name() != "string" && t.PkgPath() != "" {
			return typedef.Ref{Name: t.Name()}, nil
		}
		return typedef.Primitive{Kind: typedef.String}, nil

	case reflect.Bool:
		return typedef.Primitive{Kind: typedef.Boolean}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return typedef.Primitive{Kind: typedef.Number}, nil

	case reflect.Pointer:
		inner, err := resolveType(t.Elem())
		if err != nil {
			return nil, err
		}
		return typedef.Union{Members: []typedef.Def{inner, typedef.Primitive{Kind: typedef.Null}}}, nil

	case reflect.Slice, reflect.Array:
		elem, err := resolveType(t.Elem())
		if err != nil {
			return nil, err
		}
		return typedef.Array{Elem: elem}, nil

	case reflect.Map:
		key, err := resolveType(t.Key())
		if err != nil {
			return nil, err
		}
		value, err := resolveType(t.Elem())
		if err != nil {
			return nil, err
		}
		return typedef.Record{Key: key, Value: value}, nil

	case reflect.Struct:
		if t.Name() != "" {
			return typedef.Ref{Name: t.Name()}, nil
		}
		return nil, errors.New("describe: anonymous struct fields are not supported; name the type")

	case reflect.Interface:
		return typedef.Primitive{Kind: typedef.Unknown}, nil
	}

	return nil, errors.Newf("describe: cannot map Go type %s", t)
}
