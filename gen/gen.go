// Package gen assembles rendered type declarations into TypeScript output:
// headers, export styles, utility types, and single- or multi-file writing.
package gen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/tsbridge/convert"
	"github.com/teranos/tsbridge/errors"
	"github.com/teranos/tsbridge/logger"
	"github.com/teranos/tsbridge/registry"
	"github.com/teranos/tsbridge/typedef"
)

// ExportStyle controls how declarations are exported in the generated file.
type ExportStyle int

const (
	// ExportNone emits bare declarations: `type Foo = ...;`
	ExportNone ExportStyle = iota
	// ExportNamed emits per-type exports: `export type Foo = ...;`
	ExportNamed
	// ExportGrouped emits bare declarations followed by one aggregate
	// export statement: `export { Foo, Bar };`
	ExportGrouped
)

// PrettifyType is the utility type emitted by IncludeUtilities. It
// flattens intersection types for readability in editor hovers.
const PrettifyType = "type Prettify<T> = { [K in keyof T]: T[K] } & {};"

// PrettifyTypeExported is PrettifyType with an export keyword.
const PrettifyTypeExported = "export " + PrettifyType

// Config controls output assembly. The zero value generates unexported
// declarations to stdout-style strings with the default header.
type Config struct {
	// Output is the file path Write targets.
	Output string

	// ExportStyle selects none, per-type, or grouped exports.
	ExportStyle ExportStyle

	// DeclarationOnly switches the file extension to .d.ts.
	DeclarationOnly bool

	// Header replaces the default generated-file header comment.
	Header string

	// IncludeUtilities prepends the Prettify utility type.
	IncludeUtilities bool
}

// FileExtension returns the extension the config generates.
func (c Config) FileExtension() string {
	if c.DeclarationOnly {
		return ".d.ts"
	}
	return ".ts"
}

// Generator collects types and generates TypeScript definition files.
type Generator struct {
	config Config
	reg    *registry.Registry
}

// New creates a generator with the given config.
func New(config Config) *Generator {
	return &Generator{config: config, reg: registry.New()}
}

// Add registers a typedef tree directly. Returns the generator for
// chaining.
func (g *Generator) Add(def typedef.Def) *Generator {
	g.reg.Add(def)
	return g
}

// Register converts a source descriptor and registers the result. A
// conversion error leaves the registry untouched.
func (g *Generator) Register(desc *convert.Descriptor, resolve convert.Resolver) error {
	def, err := convert.Convert(desc, resolve)
	if err != nil {
		return errors.Wrapf(err, "converting %q", desc.Name)
	}
	g.reg.Add(def)
	return nil
}

// Registry exposes the underlying type registry.
func (g *Generator) Registry() *registry.Registry {
	return g.reg
}

// Generate renders the complete output as a string.
func (g *Generator) Generate() string {
	var sb strings.Builder
	g.writeHeader(&sb, "")

	if g.config.IncludeUtilities {
		if g.config.ExportStyle == ExportNone {
			sb.WriteString(PrettifyType)
		} else {
			sb.WriteString(PrettifyTypeExported)
		}
		sb.WriteString("\n\n")
	}

	switch g.config.ExportStyle {
	case ExportNamed:
		sb.WriteString(g.reg.RenderExported())
	case ExportGrouped:
		sb.WriteString(g.reg.Render())
		names := g.reg.SortedNames()
		if len(names) > 0 {
			sb.WriteString("\nexport { ")
			sb.WriteString(strings.Join(names, ", "))
			sb.WriteString(" };\n")
		}
	default:
		sb.WriteString(g.reg.Render())
	}

	return sb.String()
}

func (g *Generator) writeHeader(sb *strings.Builder, module string) {
	if g.config.Header != "" {
		sb.WriteString("// ")
		sb.WriteString(g.config.Header)
		sb.WriteString("\n")
	} else {
		sb.WriteString("// Code generated by tsbridge. DO NOT EDIT.\n")
		if module != "" {
			sb.WriteString("// Module: ")
			sb.WriteString(module)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

// Write generates to the configured output path, creating parent
// directories as needed.
func (g *Generator) Write() error {
	if g.config.Output == "" {
		return errors.New("no output path configured")
	}
	if err := mkParents(g.config.Output); err != nil {
		return err
	}
	if err := os.WriteFile(g.config.Output, []byte(g.Generate()), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", g.config.Output)
	}
	logger.Infow("wrote generated types",
		"path", g.config.Output,
		"types", g.reg.Len())
	return nil
}

// WriteIfChanged writes only when the generated content differs from what
// is on disk. Returns true if the file was written. Useful in build
// integration to avoid needless rebuild churn.
func (g *Generator) WriteIfChanged() (bool, error) {
	if g.config.Output == "" {
		return false, errors.New("no output path configured")
	}

	content := g.Generate()
	if existing, err := os.ReadFile(g.config.Output); err == nil && string(existing) == content {
		return false, nil
	}

	if err := mkParents(g.config.Output); err != nil {
		return false, err
	}
	if err := os.WriteFile(g.config.Output, []byte(content), 0644); err != nil {
		return false, errors.Wrapf(err, "writing %s", g.config.Output)
	}
	return true, nil
}

func mkParents(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "creating output directory %s", dir)
	}
	return nil
}
