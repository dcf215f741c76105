package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tsbridge/convert"
	"github.com/teranos/tsbridge/typedef"
)

func passthrough(ref convert.TypeRef) (typedef.Def, error) {
	return ref.(typedef.Def), nil
}

// apiGenerator builds a small but representative registry: a record with
// renamed and optional fields, a string union it references, and a tagged
// variant set.
func apiGenerator(config Config) *Generator {
	g := New(config)

	user := &convert.Descriptor{
		Name: "User",
		Kind: convert.KindRecord,
		Members: []convert.Member{
			{Name: "user_id", Type: typedef.Primitive{Kind: typedef.Number}},
			{Name: "role", Type: typedef.Ref{Name: "Role"}},
			{
				Name: "nickname",
				Type: typedef.Union{Members: []typedef.Def{
					typedef.Primitive{Kind: typedef.String},
					typedef.Primitive{Kind: typedef.Null},
				}},
				Attrs: convert.MemberAttrs{Optional: true},
			},
		},
		Attrs: convert.ContainerAttrs{RenameAll: convert.CamelCase},
	}

	role := &convert.Descriptor{
		Name: "Role",
		Kind: convert.KindVariantSet,
		Members: []convert.Member{
			{Name: "Admin"},
			{Name: "Member"},
		},
	}

	message := &convert.Descriptor{
		Name: "Message",
		Kind: convert.KindVariantSet,
		Members: []convert.Member{
			{Name: "Ping"},
			{Name: "Text", Fields: []convert.Member{{Type: typedef.Primitive{Kind: typedef.String}}}},
			{Name: "Error", Fields: []convert.Member{
				{Name: "code", Type: typedef.Primitive{Kind: typedef.Number}},
				{Name: "message", Type: typedef.Primitive{Kind: typedef.String}},
			}},
		},
	}

	for _, desc := range []*convert.Descriptor{user, role, message} {
		if err := g.Register(desc, passthrough); err != nil {
			panic(err)
		}
	}
	return g
}

func TestGenerateGolden(t *testing.T) {
	g := apiGenerator(Config{
		ExportStyle:      ExportNamed,
		IncludeUtilities: true,
	})

	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gold.Assert(t, "api", []byte(g.Generate()))
}

func TestGenerateExportStyles(t *testing.T) {
	base := &convert.Descriptor{
		Name: "Role",
		Kind: convert.KindVariantSet,
		Members: []convert.Member{
			{Name: "Admin"},
			{Name: "Member"},
		},
	}

	tests := []struct {
		name  string
		style ExportStyle
		want  string
	}{
		{
			name:  "none",
			style: ExportNone,
			want:  "// Code generated by tsbridge. DO NOT EDIT.\n\ntype Role = \"Admin\" | \"Member\";\n",
		},
		{
			name:  "named",
			style: ExportNamed,
			want:  "// Code generated by tsbridge. DO NOT EDIT.\n\nexport type Role = \"Admin\" | \"Member\";\n",
		},
		{
			name:  "grouped",
			style: ExportGrouped,
			want:  "// Code generated by tsbridge. DO NOT EDIT.\n\ntype Role = \"Admin\" | \"Member\";\n\nexport { Role };\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(Config{ExportStyle: tt.style})
			require.NoError(t, g.Register(base, passthrough))
			assert.Equal(t, tt.want, g.Generate())
		})
	}
}

func TestGenerateCustomHeader(t *testing.T) {
	g := New(Config{Header: "Custom banner"})
	g.Add(typedef.Named{Name: "Empty", Def: typedef.Object{}})

	assert.Equal(t, "// Custom banner\n\ntype Empty = {};\n", g.Generate())
}

func TestRegisterConversionErrorLeavesRegistryUntouched(t *testing.T) {
	g := New(Config{})
	bad := &convert.Descriptor{Name: "Never", Kind: convert.KindVariantSet}

	err := g.Register(bad, passthrough)
	require.Error(t, err)
	assert.Equal(t, 0, g.Registry().Len())
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, ".ts", Config{}.FileExtension())
	assert.Equal(t, ".d.ts", Config{DeclarationOnly: true}.FileExtension())
}

func TestWriteIfChanged(t *testing.T) {
	output := filepath.Join(t.TempDir(), "types", "api.ts")
	g := apiGenerator(Config{Output: output, ExportStyle: ExportNamed})

	written, err := g.WriteIfChanged()
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, g.Generate(), string(content))

	// Second write with identical content is skipped.
	written, err = g.WriteIfChanged()
	require.NoError(t, err)
	assert.False(t, written)
}

func TestWriteRequiresOutput(t *testing.T) {
	g := New(Config{})
	require.Error(t, g.Write())
	_, err := g.WriteIfChanged()
	require.Error(t, err)
}
