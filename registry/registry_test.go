package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tsbridge/typedef"
)

func named(name string, def typedef.Def) typedef.Named {
	return typedef.Named{Name: name, Def: def}
}

func obj(fields ...typedef.Field) typedef.Object {
	return typedef.Object{Fields: fields}
}

func field(name string, ty typedef.Def) typedef.Field {
	return typedef.NewField(name, ty)
}

func TestAddDeduplicates(t *testing.T) {
	r := New()
	r.Add(named("User", obj(field("id", typedef.Primitive{Kind: typedef.Number}))))
	r.Add(named("User", obj())) // second registration is a no-op

	require.Equal(t, 1, r.Len())
	got, ok := r.Get("User")
	require.True(t, ok)
	// First registration wins.
	assert.Len(t, got.Def.(typedef.Object).Fields, 1)
}

func TestAddWalksNestedNamed(t *testing.T) {
	address := named("Address", obj(field("city", typedef.Primitive{Kind: typedef.String})))
	user := named("User", obj(
		field("id", typedef.Primitive{Kind: typedef.Number}),
		field("home", address),
		field("tags", typedef.Array{Elem: named("Tag", typedef.Primitive{Kind: typedef.String})}),
	))

	r := New()
	r.Add(user)

	assert.Equal(t, []string{"User", "Address", "Tag"}, r.Names())
}

func TestAddWalksAllCompositeNodes(t *testing.T) {
	def := named("Root", typedef.Union{Members: []typedef.Def{
		typedef.Tuple{Elems: []typedef.Def{named("A", obj())}},
		typedef.Record{
			Key:   typedef.Primitive{Kind: typedef.String},
			Value: named("B", obj()),
		},
		typedef.Intersection{Members: []typedef.Def{named("C", obj())}},
		typedef.Generic{Base: "Partial", Args: []typedef.Def{named("D", obj())}},
		typedef.TemplateLiteral{
			Strings: []string{"", ""},
			Types:   []typedef.Def{named("E", typedef.Primitive{Kind: typedef.String})},
		},
		typedef.Function{
			Params:  []typedef.Field{field("p", named("F", obj()))},
			Returns: named("G", obj()),
		},
	}})

	r := New()
	r.Add(def)

	assert.Equal(t, []string{"Root", "A", "B", "C", "D", "E", "F", "G"}, r.Names())
}

func TestSortedNamesDependencyOrder(t *testing.T) {
	// User refers to Address and Role; register User first so a naive
	// registration-order emit would be wrong.
	r := New()
	r.Add(named("User", obj(
		field("home", typedef.Ref{Name: "Address"}),
		field("role", typedef.Ref{Name: "Role"}),
	)))
	r.Add(named("Address", obj(field("city", typedef.Primitive{Kind: typedef.String}))))
	r.Add(named("Role", typedef.Union{Members: []typedef.Def{
		typedef.StringLit("admin"),
		typedef.StringLit("member"),
	}}))

	sorted := r.SortedNames()
	require.ElementsMatch(t, []string{"User", "Address", "Role"}, sorted)

	pos := make(map[string]int)
	for i, n := range sorted {
		pos[n] = i
	}
	assert.Less(t, pos["Address"], pos["User"])
	assert.Less(t, pos["Role"], pos["User"])
}

func TestSortedNamesDeterministic(t *testing.T) {
	build := func() *Registry {
		r := New()
		r.Add(named("C", obj(field("a", typedef.Ref{Name: "A"}))))
		r.Add(named("B", obj(field("a", typedef.Ref{Name: "A"}))))
		r.Add(named("A", obj()))
		r.Add(named("D", obj()))
		return r
	}

	first := build().SortedNames()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build().SortedNames())
	}
}

func TestSortedNamesCycle(t *testing.T) {
	r := New()
	r.Add(named("Tree", obj(field("children", typedef.Array{Elem: typedef.Ref{Name: "Tree"}}))))
	r.Add(named("A", obj(field("b", typedef.Ref{Name: "B"}))))
	r.Add(named("B", obj(field("a", typedef.Ref{Name: "A"}))))

	// Cycles degrade ordering but never drop a type.
	sorted := r.SortedNames()
	assert.ElementsMatch(t, []string{"Tree", "A", "B"}, sorted)
	// Self-reference is not a cycle edge; Tree sorts normally.
	assert.Equal(t, "Tree", sorted[0])
	// The two-cycle falls back to registration order.
	assert.Equal(t, []string{"A", "B"}, sorted[1:])
}

func TestDangling(t *testing.T) {
	r := New()
	r.Add(named("User", obj(
		field("id", typedef.Ref{Name: "UserId"}),
		field("home", typedef.Ref{Name: "Address"}),
	)))
	r.Add(named("Address", obj()))

	assert.Equal(t, []string{"UserId"}, r.Dangling())

	r.Add(named("UserId", typedef.Primitive{Kind: typedef.Number}))
	assert.Empty(t, r.Dangling())
}

func TestDanglingRefsContributeNoEdges(t *testing.T) {
	r := New()
	r.Add(named("User", obj(field("ext", typedef.Ref{Name: "External"}))))

	assert.Equal(t, []string{"User"}, r.SortedNames())
}

func TestRender(t *testing.T) {
	r := New()
	r.Add(named("User", obj(field("role", typedef.Ref{Name: "Role"}))))
	r.Add(named("Role", typedef.Union{Members: []typedef.Def{
		typedef.StringLit("admin"),
		typedef.StringLit("member"),
	}}))

	want := `type Role = "admin" | "member";
type User = { role: Role };
`
	assert.Equal(t, want, r.Render())
}

func TestRenderExported(t *testing.T) {
	r := New()
	r.Add(named("Role", typedef.Union{Members: []typedef.Def{
		typedef.StringLit("admin"),
		typedef.StringLit("member"),
	}}))

	out := r.RenderExported()
	assert.True(t, strings.HasPrefix(out, "export type Role = "), out)
}
