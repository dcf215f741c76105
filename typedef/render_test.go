package typedef

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		def  Def
		want string
	}{
		{
			name: "string primitive",
			def:  Primitive{Kind: String},
			want: "string",
		},
		{
			name: "unknown primitive",
			def:  Primitive{Kind: Unknown},
			want: "unknown",
		},
		{
			name: "array of number",
			def:  Array{Elem: Primitive{Kind: Number}},
			want: "number[]",
		},
		{
			name: "array of union needs parens",
			def: Array{Elem: Union{Members: []Def{
				Primitive{Kind: String},
				Primitive{Kind: Number},
			}}},
			want: "(string | number)[]",
		},
		{
			name: "nested array",
			def:  Array{Elem: Array{Elem: Primitive{Kind: Boolean}}},
			want: "boolean[][]",
		},
		{
			name: "tuple",
			def: Tuple{Elems: []Def{
				Primitive{Kind: String},
				Primitive{Kind: Number},
				Primitive{Kind: Boolean},
			}},
			want: "[string, number, boolean]",
		},
		{
			name: "empty object",
			def:  Object{},
			want: "{}",
		},
		{
			name: "object fields joined by semicolons",
			def: Object{Fields: []Field{
				NewField("id", Primitive{Kind: Number}),
				NewField("name", Primitive{Kind: String}),
			}},
			want: "{ id: number; name: string }",
		},
		{
			name: "optional and readonly field markers",
			def: Object{Fields: []Field{
				{Name: "id", Type: Primitive{Kind: Number}, Readonly: true},
				{Name: "email", Type: Primitive{Kind: String}, Optional: true},
			}},
			want: "{ readonly id: number; email?: string }",
		},
		{
			name: "union",
			def: Union{Members: []Def{
				Primitive{Kind: String},
				Primitive{Kind: Null},
			}},
			want: "string | null",
		},
		{
			name: "intersection",
			def: Intersection{Members: []Def{
				Ref{Name: "Base"},
				Object{Fields: []Field{NewField("extra", Primitive{Kind: String})}},
			}},
			want: "Base & { extra: string }",
		},
		{
			name: "record",
			def:  Record{Key: Primitive{Kind: String}, Value: Primitive{Kind: Number}},
			want: "Record<string, number>",
		},
		{
			name: "named renders as name inline",
			def:  Named{Name: "User", Def: Object{}},
			want: "User",
		},
		{
			name: "named with namespace",
			def:  Named{Namespace: []string{"api", "v1"}, Name: "User", Def: Object{}},
			want: "api.v1.User",
		},
		{
			name: "ref",
			def:  Ref{Name: "ExternalType"},
			want: "ExternalType",
		},
		{
			name: "string literal",
			def:  StringLit("active"),
			want: `"active"`,
		},
		{
			name: "string literal escapes quotes and backslashes",
			def:  StringLit(`a"b\c`),
			want: `"a\"b\\c"`,
		},
		{
			name: "integral number literal has no fraction",
			def:  NumberLit(42),
			want: "42",
		},
		{
			name: "fractional number literal",
			def:  NumberLit(1.5),
			want: "1.5",
		},
		{
			name: "negative integral literal",
			def:  NumberLit(-7),
			want: "-7",
		},
		{
			name: "literal beyond int64 range stays in float form",
			def:  NumberLit(1e21),
			want: "1e+21",
		},
		{
			name: "boolean literal",
			def:  BoolLit(true),
			want: "true",
		},
		{
			name: "function",
			def: Function{
				Params: []Field{
					NewField("id", Primitive{Kind: Number}),
					{Name: "force", Type: Primitive{Kind: Boolean}, Optional: true},
				},
				Returns: Primitive{Kind: Void},
			},
			want: "(id: number, force?: boolean) => void",
		},
		{
			name: "generic",
			def: Generic{Base: "Map", Args: []Def{
				Primitive{Kind: String},
				Ref{Name: "User"},
			}},
			want: "Map<string, User>",
		},
		{
			name: "template literal",
			def: TemplateLiteral{
				Strings: []string{"vm-", ""},
				Types:   []Def{Primitive{Kind: String}},
			},
			want: "`vm-${string}`",
		},
		{
			name: "template literal with multiple holes",
			def: TemplateLiteral{
				Strings: []string{"v", ".", ".", ""},
				Types: []Def{
					Primitive{Kind: Number},
					Primitive{Kind: Number},
					Primitive{Kind: Number},
				},
			},
			want: "`v${number}.${number}.${number}`",
		},
		{
			name: "indexed access",
			def:  IndexedAccess{Base: "Config", Key: "mode"},
			want: `Config["mode"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.def))
		})
	}
}

func TestRenderDeclaration(t *testing.T) {
	tests := []struct {
		name string
		def  Def
		want string
	}{
		{
			name: "named object",
			def: Named{Name: "User", Def: Object{Fields: []Field{
				NewField("id", Primitive{Kind: Number}),
			}}},
			want: "type User = { id: number };",
		},
		{
			name: "named union",
			def: Named{Name: "Status", Def: Union{Members: []Def{
				StringLit("active"),
				StringLit("inactive"),
			}}},
			want: `type Status = "active" | "inactive";`,
		},
		{
			name: "wrapper wraps the body",
			def: Named{Name: "User", Wrapper: "Readonly", Def: Object{Fields: []Field{
				NewField("id", Primitive{Kind: Number}),
			}}},
			want: "type User = Readonly<{ id: number }>;",
		},
		{
			name: "type parameters render in the declaration head",
			def: Named{Name: "Box", TypeParams: []string{"T"}, Def: Object{Fields: []Field{
				NewField("value", Ref{Name: "T"}),
			}}},
			want: "type Box<T> = { value: T };",
		},
		{
			name: "multiple type parameters",
			def: Named{Name: "Pair", TypeParams: []string{"K", "V"}, Def: Tuple{Elems: []Def{
				Ref{Name: "K"},
				Ref{Name: "V"},
			}}},
			want: "type Pair<K, V> = [K, V];",
		},
		{
			name: "non-named falls back to inline render",
			def:  Primitive{Kind: String},
			want: "string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderDeclaration(tt.def))
		})
	}
}
