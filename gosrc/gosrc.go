// Package gosrc extracts type descriptors from Go source code.
//
// It is the source adapter used by the tsbridge CLI: exported struct
// types become record descriptors, and string type declarations backed by
// a const block become unit variant sets, so `type Status string` plus
// its constants renders as a string union. Member types stay as ast.Expr
// references resolved by ResolveExpr.
package gosrc

import (
	"go/ast"
	"go/token"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/tsbridge/convert"
	"github.com/teranos/tsbridge/describe"
	"github.com/teranos/tsbridge/errors"
	"github.com/teranos/tsbridge/typedef"
)

// Package holds the descriptors extracted from one Go package.
type Package struct {
	Name        string
	ImportPath  string
	Descriptors []*convert.Descriptor
}

// LoadPackage parses the Go package at importPath and extracts
// descriptors for every exported type. Descriptors carry the package's
// import path as their origin module, which multi-file output uses for
// grouping.
func LoadPackage(importPath string) (*Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, errors.Wrapf(err, "loading package %s", importPath)
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %s", importPath)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, errors.Newf("package %s has errors: %v", importPath, pkg.Errors)
	}

	out := &Package{Name: pkg.Name, ImportPath: pkg.PkgPath}
	for _, file := range pkg.Syntax {
		out.Descriptors = append(out.Descriptors, FromFile(file)...)
	}
	for _, desc := range out.Descriptors {
		desc.Module = pkg.PkgPath
	}
	return out, nil
}

// FromFile extracts descriptors from a single parsed file. Exported
// struct types become records; exported string type declarations with
// typed const values become unit variant sets whose variant names are
// the constant values.
func FromFile(file *ast.File) []*convert.Descriptor {
	var descs []*convert.Descriptor
	stringDecls := make(map[string]bool)
	constValues := make(map[string][]string)

	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.GenDecl:
			if node.Tok == token.CONST {
				collectConsts(node, constValues)
			}
		case *ast.TypeSpec:
			if !node.Name.IsExported() {
				return true
			}
			switch t := node.Type.(type) {
			case *ast.StructType:
				descs = append(descs, structDescriptor(node.Name.Name, t))
			case *ast.Ident:
				if t.Name == "string" {
					stringDecls[node.Name.Name] = true
				}
			}
		}
		return true
	})

	// String declarations only surface when a const block gives them
	// values; a bare `type ID string` stays an implementation detail.
	for _, decl := range declOrder(file, stringDecls) {
		values := constValues[decl]
		if len(values) == 0 {
			continue
		}
		vs := &convert.Descriptor{Name: decl, Kind: convert.KindVariantSet}
		for _, v := range values {
			vs.Members = append(vs.Members, convert.Member{Name: v})
		}
		descs = append(descs, vs)
	}

	return descs
}

// declOrder returns the string declaration names in source order so
// output is deterministic across runs.
func declOrder(file *ast.File, decls map[string]bool) []string {
	var order []string
	ast.Inspect(file, func(n ast.Node) bool {
		if spec, ok := n.(*ast.TypeSpec); ok {
			if _, ok := decls[spec.Name.Name]; ok {
				order = append(order, spec.Name.Name)
			}
		}
		return true
	})
	return order
}

func collectConsts(decl *ast.GenDecl, constValues map[string][]string) {
	var currentType string
	for _, spec := range decl.Specs {
		valueSpec, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		if valueSpec.Type != nil {
			if ident, ok := valueSpec.Type.(*ast.Ident); ok {
				currentType = ident.Name
			}
		}
		if currentType == "" {
			continue
		}
		for _, value := range valueSpec.Values {
			if lit, ok := value.(*ast.BasicLit); ok && lit.Kind == token.STRING {
				constValues[currentType] = append(constValues[currentType], strings.Trim(lit.Value, `"`))
			}
		}
	}
}

func structDescriptor(name string, structType *ast.StructType) *convert.Descriptor {
	desc := &convert.Descriptor{Name: name, Kind: convert.KindRecord}

	for _, field := range structType.Fields.List {
		if len(field.Names) == 0 {
			// Embedded fields become intersection bases.
			if ref, ok := embeddedName(field.Type); ok {
				desc.Attrs.Extends = append(desc.Attrs.Extends, ref)
			}
			continue
		}

		for _, fieldName := range field.Names {
			if !fieldName.IsExported() {
				continue
			}
			attrs, jsonName := parseFieldTag(field.Tag)
			if jsonName == "" {
				jsonName = fieldName.Name
			}
			desc.Members = append(desc.Members, convert.Member{
				Name:  jsonName,
				Type:  field.Type,
				Attrs: attrs,
			})
		}
	}

	return desc
}

func embeddedName(expr ast.Expr) (string, bool) {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, t.IsExported()
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name, t.Sel.IsExported()
	}
	return "", false
}

func parseFieldTag(tag *ast.BasicLit) (convert.MemberAttrs, string) {
	if tag == nil {
		return convert.MemberAttrs{}, ""
	}
	return describe.ParseTag(reflect.StructTag(strings.Trim(tag.Value, "`")))
}

// scalarMapping maps Go identifiers and qualified names to primitive
// kinds for types that serialize as scalars.
var scalarMapping = map[string]typedef.PrimKind{
	"string":  typedef.String,
	"bool":    typedef.Boolean,
	"int":     typedef.Number,
	"int8":    typedef.Number,
	"int16":   typedef.Number,
	"int32":   typedef.Number,
	"int64":   typedef.Number,
	"uint":    typedef.Number,
	"uint8":   typedef.Number,
	"uint16":  typedef.Number,
	"uint32":  typedef.Number,
	"uint64":  typedef.Number,
	"float32": typedef.Number,
	"float64": typedef.Number,
	"byte":    typedef.Number,
	"rune":    typedef.Number,
	"any":     typedef.Unknown,

	"time.Time":       typedef.String,
	"time.Duration":   typedef.Number,
	"json.RawMessage": typedef.Unknown,
}

// ResolveExpr maps a Go AST type expression to its typedef
// representation. Unknown identifiers resolve to Refs on the assumption
// that their own declarations are registered (or intentionally external).
func ResolveExpr(ref convert.TypeRef) (typedef.Def, error) {
	expr, ok := ref.(ast.Expr)
	if !ok {
		return nil, errors.Newf("gosrc: unsupported type reference %T", ref)
	}
	return resolveExpr(expr)
}

func resolveExpr(expr ast.Expr) (typedef.Def, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if kind, ok := scalarMapping[t.Name]; ok {
			return typedef.Primitive{Kind: kind}, nil
		}
		return typedef.Ref{Name: t.Name}, nil

	case *ast.SelectorExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			if kind, ok := scalarMapping[ident.Name+"."+t.Sel.Name]; ok {
				return typedef.Primitive{Kind: kind}, nil
			}
		}
		return typedef.Ref{Name: t.Sel.Name}, nil

	case *ast.StarExpr:
		inner, err := resolveExpr(t.X)
		if err != nil {
			return nil, err
		}
		return typedef.Union{Members: []typedef.Def{inner, typedef.Primitive{Kind: typedef.Null}}}, nil

	case *ast.ArrayType:
		elem, err := resolveExpr(t.Elt)
		if err != nil {
			return nil, err
		}
		return typedef.Array{Elem: elem}, nil

	case *ast.MapType:
		key, err := resolveExpr(t.Key)
		if err != nil {
			return nil, err
		}
		value, err := resolveExpr(t.Value)
		if err != nil {
			return nil, err
		}
		return typedef.Record{Key: key, Value: value}, nil

	case *ast.InterfaceType:
		return typedef.Primitive{Kind: typedef.Unknown}, nil
	}

	return typedef.Primitive{Kind: typedef.Unknown}, nil
}
