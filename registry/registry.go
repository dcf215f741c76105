// Package registry accumulates Named typedef nodes, deduplicates them by
// name, and orders them by reference dependency for emission.
//
// A Registry is a plain mutable accumulator: single writer while types are
// added, then read-only renders. It has no internal locking. Emitted
// ordering is deterministic: downstream consumers diff generated output,
// so every tiebreak falls back to registration order rather than map
// iteration order.
package registry

import (
	"sort"
	"strings"

	"github.com/teranos/tsbridge/typedef"
)

// Registry collects named types reachable from registered roots.
type Registry struct {
	types map[string]typedef.Named
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]typedef.Named)}
}

// Add walks def and registers every Named node it can reach, including
// ones nested inside object fields, array and tuple elements, unions,
// intersections, records, function signatures, generic arguments, and
// template literal holes. The first registration of a name wins;
// re-adding a name is a no-op.
func (r *Registry) Add(def typedef.Def) {
	r.walk(def)
}

func (r *Registry) walk(def typedef.Def) {
	switch t := def.(type) {
	case typedef.Named:
		if _, exists := r.types[t.Name]; exists {
			return
		}
		r.types[t.Name] = t
		r.order = append(r.order, t.Name)
		r.walk(t.Def)

	case typedef.Array:
		r.walk(t.Elem)
	case typedef.Tuple:
		for _, e := range t.Elems {
			r.walk(e)
		}
	case typedef.Object:
		for _, f := range t.Fields {
			r.walk(f.Type)
		}
	case typedef.Union:
		for _, m := range t.Members {
			r.walk(m)
		}
	case typedef.Intersection:
		for _, m := range t.Members {
			r.walk(m)
		}
	case typedef.Record:
		r.walk(t.Key)
		r.walk(t.Value)
	case typedef.Function:
		for _, p := range t.Params {
			r.walk(p.Type)
		}
		r.walk(t.Returns)
	case typedef.Generic:
		for _, a := range t.Args {
			r.walk(a)
		}
	case typedef.TemplateLiteral:
		for _, ty := range t.Types {
			r.walk(ty)
		}

	case typedef.Primitive, typedef.Ref, typedef.Literal, typedef.IndexedAccess:
		// leaves
	}
}

// Get returns the registered Named node for name.
func (r *Registry) Get(name string) (typedef.Named, bool) {
	n, ok := r.types[name]
	return n, ok
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.order)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// depsOf collects the names a registered type depends on: every Ref name
// and every nested Named node's name inside its definition. Traversal
// never descends into another Named's own definition. A nested Named
// renders inline as a bare name, so only the name edge matters.
func (r *Registry) depsOf(name string) []string {
	named, ok := r.types[name]
	if !ok {
		return nil
	}
	seen := make(map[string]bool)
	var deps []string
	record := func(dep string) {
		if dep == name || seen[dep] {
			return
		}
		seen[dep] = true
		deps = append(deps, dep)
	}
	var visit func(def typedef.Def)
	visit = func(def typedef.Def) {
		switch t := def.(type) {
		case typedef.Ref:
			record(t.Name)
		case typedef.Named:
			record(t.Name)
		case typedef.Array:
			visit(t.Elem)
		case typedef.Tuple:
			for _, e := range t.Elems {
				visit(e)
			}
		case typedef.Object:
			for _, f := range t.Fields {
				visit(f.Type)
			}
		case typedef.Union:
			for _, m := range t.Members {
				visit(m)
			}
		case typedef.Intersection:
			for _, m := range t.Members {
				visit(m)
			}
		case typedef.Record:
			visit(t.Key)
			visit(t.Value)
		case typedef.Function:
			for _, p := range t.Params {
				visit(p.Type)
			}
			visit(t.Returns)
		case typedef.Generic:
			for _, a := range t.Args {
				visit(a)
			}
		case typedef.TemplateLiteral:
			for _, ty := range t.Types {
				visit(ty)
			}
		}
	}
	visit(named.Def)
	return deps
}

// SortedNames orders the registered names so that dependencies precede
// dependents (Kahn's algorithm). The zero-in-degree seed queue and the
// dependent decrement order both follow registration order, keeping the
// output stable across runs. Names caught in a reference cycle are
// appended in registration order: a cycle degrades ordering, it never
// drops a type.
func (r *Registry) SortedNames() []string {
	regIndex := make(map[string]int, len(r.order))
	for i, n := range r.order {
		regIndex[n] = i
	}

	inDegree := make(map[string]int, len(r.order))
	dependents := make(map[string][]string)
	for _, n := range r.order {
		for _, dep := range r.depsOf(n) {
			// Dangling refs are intentionally external; they contribute
			// no graph edges.
			if _, registered := r.types[dep]; !registered {
				continue
			}
			inDegree[n]++
			dependents[dep] = append(dependents[dep], n)
		}
	}

	var queue []string
	for _, n := range r.order {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	sorted := make([]string, 0, len(r.order))
	visited := make(map[string]bool, len(r.order))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		sorted = append(sorted, n)
		visited[n] = true

		next := dependents[n]
		sort.Slice(next, func(i, j int) bool {
			return regIndex[next[i]] < regIndex[next[j]]
		})
		for _, d := range next {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(sorted) < len(r.order) {
		for _, n := range r.order {
			if !visited[n] {
				sorted = append(sorted, n)
			}
		}
	}
	return sorted
}

// Dangling returns the referenced names that were never registered, in
// first-reference order. Dangling refs are valid by default, rendering
// as bare identifiers assumed to exist in the output context. Callers
// wanting a strict validation pass can check this is empty.
func (r *Registry) Dangling() []string {
	seen := make(map[string]bool)
	var dangling []string
	for _, n := range r.order {
		for _, dep := range r.depsOf(n) {
			if _, registered := r.types[dep]; registered || seen[dep] {
				continue
			}
			seen[dep] = true
			dangling = append(dangling, dep)
		}
	}
	return dangling
}

// Render emits every registered declaration in dependency order.
func (r *Registry) Render() string {
	return r.renderAll("")
}

// RenderExported emits every registered declaration in dependency order
// with an `export ` prefix.
func (r *Registry) RenderExported() string {
	return r.renderAll("export ")
}

func (r *Registry) renderAll(prefix string) string {
	var sb strings.Builder
	for _, name := range r.SortedNames() {
		named := r.types[name]
		sb.WriteString(prefix)
		sb.WriteString(typedef.RenderDeclaration(named))
		sb.WriteString("\n")
	}
	return sb.String()
}
