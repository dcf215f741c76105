package gen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/tsbridge/errors"
	"github.com/teranos/tsbridge/logger"
	"github.com/teranos/tsbridge/typedef"
)

// DefaultModule is the bucket for types that carry no origin module path.
const DefaultModule = "default"

// TypesByModule groups registered type names by their origin module path.
// Types without one land in the DefaultModule bucket. Names within a
// group keep registration order.
func (g *Generator) TypesByModule() map[string][]string {
	result := make(map[string][]string)
	for _, name := range g.reg.Names() {
		named, ok := g.reg.Get(name)
		if !ok {
			continue
		}
		module := named.Module
		if module == "" {
			module = DefaultModule
		}
		result[module] = append(result[module], name)
	}
	return result
}

// ModuleToPath converts an origin module path to an output file path.
// The first segment (the source module's own name) is stripped and the
// remaining segments become directory levels:
//
//	"myapp/models/user" -> "models/user.ts"
//	"myapp/api"         -> "api.ts"
func ModuleToPath(module string) string {
	parts := strings.Split(module, "/")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return filepath.Join(parts...) + ".ts"
}

// GenerateForModule renders output containing only the named types, in
// registry dependency order.
func (g *Generator) GenerateForModule(module string, typeNames []string) string {
	include := make(map[string]bool, len(typeNames))
	for _, n := range typeNames {
		include[n] = true
	}

	var sb strings.Builder
	g.writeHeader(&sb, module)

	prefix := ""
	if g.config.ExportStyle != ExportNone {
		prefix = "export "
	}

	for _, name := range g.reg.SortedNames() {
		if !include[name] {
			continue
		}
		named, ok := g.reg.Get(name)
		if !ok {
			continue
		}
		sb.WriteString(prefix)
		sb.WriteString(typedef.RenderDeclaration(named))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// WriteMultiFile writes one output file per module group under outputDir.
// Returns the number of files written.
func (g *Generator) WriteMultiFile(outputDir string) (int, error) {
	return g.writeMulti(outputDir, false)
}

// WriteMultiFileIfChanged writes only module files whose content changed.
// Returns the number of files written.
func (g *Generator) WriteMultiFileIfChanged(outputDir string) (int, error) {
	return g.writeMulti(outputDir, true)
}

func (g *Generator) writeMulti(outputDir string, onlyChanged bool) (int, error) {
	byModule := g.TypesByModule()

	// Module iteration must be deterministic for stable logs and stable
	// write counts; order groups by their first registered type.
	modules := make([]string, 0, len(byModule))
	seen := make(map[string]bool)
	for _, name := range g.reg.Names() {
		named, _ := g.reg.Get(name)
		module := named.Module
		if module == "" {
			module = DefaultModule
		}
		if !seen[module] {
			seen[module] = true
			modules = append(modules, module)
		}
	}

	count := 0
	for _, module := range modules {
		filePath := filepath.Join(outputDir, "types"+g.config.FileExtension())
		if module != DefaultModule {
			filePath = filepath.Join(outputDir, ModuleToPath(module))
		}

		content := g.GenerateForModule(module, byModule[module])

		if onlyChanged {
			if existing, err := os.ReadFile(filePath); err == nil && string(existing) == content {
				continue
			}
		}

		if err := mkParents(filePath); err != nil {
			return count, err
		}
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return count, errors.Wrapf(err, "writing %s", filePath)
		}
		logger.Infow("wrote module types",
			"path", filePath,
			"module", module,
			"types", len(byModule[module]))
		count++
	}

	return count, nil
}
