package convert

import (
	"github.com/teranos/tsbridge/errors"
	"github.com/teranos/tsbridge/typedef"
)

// DefaultTag is the discriminant field name used by internal and adjacent
// tagging when no tag attribute is given.
const DefaultTag = "type"

// payloadField is the field name the payload of a non-record variant moves
// under in internal tagging.
const payloadField = "value"

// Convert turns a source descriptor into a typedef tree. Member types are
// resolved through resolve; the result is a Named node (or, for transparent
// wrapper records, the bare inner type) ready for registry registration.
//
// Generic descriptors convert with their type parameters left as Ref
// placeholders; a concrete tree materializes when the resolver substitutes
// real arguments for those parameters.
func Convert(desc *Descriptor, resolve Resolver) (typedef.Def, error) {
	switch desc.Kind {
	case KindRecord:
		return convertRecord(desc, resolve)
	case KindVariantSet:
		return convertVariantSet(desc, resolve)
	case KindAlias:
		return convertAlias(desc, resolve)
	}
	return nil, errors.AssertionFailedf("unknown descriptor kind %d", desc.Kind)
}

func convertAlias(desc *Descriptor, resolve Resolver) (typedef.Def, error) {
	if len(desc.Members) != 1 {
		return nil, errors.Newf("alias %q must have exactly one member, got %d", desc.Name, len(desc.Members))
	}
	inner, err := resolve(desc.Members[0].Type)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving alias %q", desc.Name)
	}
	return wrapNamed(desc, inner), nil
}

func convertRecord(desc *Descriptor, resolve Resolver) (typedef.Def, error) {
	// Transparent single-field wrapper records expose the inner type with
	// no Named wrapper at all (ID-wrapper types).
	if desc.Attrs.Transparent && len(desc.Members) == 1 && desc.Members[0].Name == "" {
		inner, err := resolve(desc.Members[0].Type)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving transparent record %q", desc.Name)
		}
		return inner, nil
	}

	fields, err := convertFields(desc.Members, desc.Attrs.RenameAll, resolve)
	if err != nil {
		return nil, errors.Wrapf(err, "converting record %q", desc.Name)
	}

	var def typedef.Def = typedef.Object{Fields: fields}
	if len(desc.Attrs.Extends) > 0 {
		members := make([]typedef.Def, 0, len(desc.Attrs.Extends)+1)
		for _, base := range desc.Attrs.Extends {
			members = append(members, typedef.Ref{Name: base})
		}
		members = append(members, def)
		def = typedef.Intersection{Members: members}
	}

	return wrapNamed(desc, def), nil
}

func convertVariantSet(desc *Descriptor, resolve Resolver) (typedef.Def, error) {
	variants := make([]Member, 0, len(desc.Members))
	for _, m := range desc.Members {
		if m.Attrs.Skip {
			continue
		}
		variants = append(variants, m)
	}
	if len(variants) == 0 {
		return nil, errors.Wrapf(ErrEmptyVariantSet, "%q", desc.Name)
	}

	allUnit := true
	for _, v := range variants {
		if len(v.Fields) > 0 {
			allUnit = false
			break
		}
	}

	tag := desc.Attrs.Tag
	if tag == "" {
		tag = DefaultTag
	}

	members := make([]typedef.Def, 0, len(variants))
	for _, v := range variants {
		name, err := effectiveName(v, desc.Attrs.RenameAll)
		if err != nil {
			return nil, errors.Wrapf(err, "variant %q of %q", v.Name, desc.Name)
		}

		var encoded typedef.Def
		if allUnit {
			// All-unit sets collapse to a plain string-literal union no
			// matter which tagging policy the container asked for.
			encoded = typedef.StringLit(name)
		} else {
			encoded, err = encodeVariant(v, name, tag, desc.Attrs, resolve)
			if err != nil {
				return nil, errors.Wrapf(err, "variant %q of %q", v.Name, desc.Name)
			}
		}
		members = append(members, encoded)
	}

	return wrapNamed(desc, typedef.Union{Members: members}), nil
}

// encodeVariant applies the container's tagging policy to one non-unit-set
// variant. The four payload shapes (unit, single positional, multiple
// positional, record) each encode differently per policy.
func encodeVariant(v Member, name, tag string, attrs ContainerAttrs, resolve Resolver) (typedef.Def, error) {
	litName := typedef.StringLit(name)
	tagField := typedef.NewField(tag, litName)

	// Classify and resolve the payload.
	var (
		payload      typedef.Def   // single or tuple payload
		recordFields []typedef.Field
	)
	switch {
	case len(v.Fields) == 0:
		// unit

	case v.Fields[0].Name != "":
		fields, err := convertFields(v.Fields, attrs.RenameAll, resolve)
		if err != nil {
			return nil, err
		}
		recordFields = fields

	case len(v.Fields) == 1:
		inner, err := resolve(v.Fields[0].Type)
		if err != nil {
			return nil, err
		}
		payload = inner

	default:
		elems := make([]typedef.Def, len(v.Fields))
		for i, f := range v.Fields {
			inner, err := resolve(f.Type)
			if err != nil {
				return nil, err
			}
			elems[i] = inner
		}
		payload = typedef.Tuple{Elems: elems}
	}

	if attrs.Untagged {
		switch {
		case len(v.Fields) == 0:
			return litName, nil
		case recordFields != nil:
			return typedef.Object{Fields: recordFields}, nil
		default:
			return payload, nil
		}
	}

	if attrs.Content != "" {
		// Adjacent tagging: payload moves under the content field.
		fields := []typedef.Field{tagField}
		switch {
		case len(v.Fields) == 0:
		case recordFields != nil:
			fields = append(fields, typedef.NewField(attrs.Content, typedef.Object{Fields: recordFields}))
		default:
			fields = append(fields, typedef.NewField(attrs.Content, payload))
		}
		return typedef.Object{Fields: fields}, nil
	}

	// Internal tagging (default): the tag merges into the payload object.
	fields := []typedef.Field{tagField}
	switch {
	case len(v.Fields) == 0:
	case recordFields != nil:
		fields = append(fields, recordFields...)
	default:
		fields = append(fields, typedef.NewField(payloadField, payload))
	}
	return typedef.Object{Fields: fields}, nil
}

// convertFields applies the member modifier pipeline, in its fixed order,
// to a record's (or record-shaped variant's) members.
func convertFields(members []Member, renameAll string, resolve Resolver) ([]typedef.Field, error) {
	fields := make([]typedef.Field, 0, len(members))
	for _, m := range members {
		if m.Attrs.Skip {
			continue
		}

		if m.Attrs.Flatten {
			inner, err := resolve(m.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "resolving flattened member %q", m.Name)
			}
			obj, ok := unwrapObject(inner)
			if !ok {
				return nil, errors.Wrapf(ErrFlattenTarget, "member %q", m.Name)
			}
			fields = append(fields, obj.Fields...)
			continue
		}

		ty, err := memberType(m, resolve)
		if err != nil {
			return nil, err
		}

		optional := m.Attrs.Optional || m.Attrs.HasDefault
		if m.Attrs.Optional {
			// Prefer `field?: T` over `field?: T | null`.
			ty = unwrapMaybe(ty)
		}

		if m.Attrs.Inline {
			if named, ok := ty.(typedef.Named); ok {
				ty = named.Def
			}
		}

		name, err := effectiveName(m, renameAll)
		if err != nil {
			return nil, errors.Wrapf(err, "member %q", m.Name)
		}

		fields = append(fields, typedef.Field{
			Name:     name,
			Type:     ty,
			Optional: optional,
			Readonly: m.Attrs.Readonly,
		})
	}
	return fields, nil
}

// memberType computes a member's type, honoring the attribute precedence:
// type-override, then index/key, then pattern, then plain resolution.
func memberType(m Member, resolve Resolver) (typedef.Def, error) {
	a := m.Attrs

	if a.Override != "" {
		return typedef.Ref{Name: a.Override}, nil
	}

	if a.Index != "" || a.Key != "" {
		if a.Index == "" || a.Key == "" {
			return nil, errors.Wrapf(ErrUnpairedIndexKey, "member %q", m.Name)
		}
		return typedef.IndexedAccess{Base: a.Index, Key: a.Key}, nil
	}

	if a.Pattern != "" {
		return patternType(a.Pattern)
	}

	ty, err := resolve(m.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving member %q", m.Name)
	}
	return ty, nil
}

func patternType(pattern string) (typedef.Def, error) {
	literals, exprs, err := ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	types := make([]typedef.Def, len(exprs))
	for i, expr := range exprs {
		types[i] = placeholderType(expr)
	}
	return typedef.TemplateLiteral{Strings: literals, Types: types}, nil
}

// placeholderType maps a placeholder expression to a typedef node: the
// primitive keywords resolve to primitives, anything else is a reference.
func placeholderType(expr string) typedef.Def {
	switch expr {
	case "string":
		return typedef.Primitive{Kind: typedef.String}
	case "number":
		return typedef.Primitive{Kind: typedef.Number}
	case "boolean":
		return typedef.Primitive{Kind: typedef.Boolean}
	case "bigint":
		return typedef.Primitive{Kind: typedef.BigInt}
	}
	return typedef.Ref{Name: expr}
}

// effectiveName selects explicit rename over the container's rename-all
// policy over the original name.
func effectiveName(m Member, renameAll string) (string, error) {
	if m.Attrs.Rename != "" {
		return m.Attrs.Rename, nil
	}
	if renameAll != "" {
		return ApplyRenameAll(renameAll, m.Name)
	}
	return m.Name, nil
}

// unwrapObject digs through a Named wrapper to the underlying Object.
func unwrapObject(d typedef.Def) (typedef.Object, bool) {
	if named, ok := d.(typedef.Named); ok {
		d = named.Def
	}
	obj, ok := d.(typedef.Object)
	return obj, ok
}

// unwrapMaybe strips a two-member `T | null` (or `T | undefined`) union
// down to T. Anything else passes through unchanged.
func unwrapMaybe(d typedef.Def) typedef.Def {
	union, ok := d.(typedef.Union)
	if !ok || len(union.Members) != 2 {
		return d
	}
	for i, m := range union.Members {
		if p, ok := m.(typedef.Primitive); ok && (p.Kind == typedef.Null || p.Kind == typedef.Undefined) {
			return union.Members[1-i]
		}
	}
	return d
}

func wrapNamed(desc *Descriptor, def typedef.Def) typedef.Def {
	return typedef.Named{
		Namespace:  desc.Namespace,
		Name:       desc.Name,
		TypeParams: desc.TypeParams,
		Def:        def,
		Module:     desc.Module,
		Wrapper:    desc.Attrs.Wrapper,
	}
}
