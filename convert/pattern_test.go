package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name         string
		pattern      string
		wantLiterals []string
		wantExprs    []string
	}{
		{
			name:         "single placeholder with prefix",
			pattern:      "vm-${string}",
			wantLiterals: []string{"vm-", ""},
			wantExprs:    []string{"string"},
		},
		{
			name:         "version pattern",
			pattern:      "v${number}.${number}.${number}",
			wantLiterals: []string{"v", ".", ".", ""},
			wantExprs:    []string{"number", "number", "number"},
		},
		{
			name:         "no placeholders",
			pattern:      "literal-only",
			wantLiterals: []string{"literal-only"},
			wantExprs:    nil,
		},
		{
			name:         "placeholder only",
			pattern:      "${string}",
			wantLiterals: []string{"", ""},
			wantExprs:    []string{"string"},
		},
		{
			name:         "adjacent placeholders",
			pattern:      "${string}${number}",
			wantLiterals: []string{"", "", ""},
			wantExprs:    []string{"string", "number"},
		},
		{
			name:         "whitespace trimmed from expression",
			pattern:      "id-${ number }",
			wantLiterals: []string{"id-", ""},
			wantExprs:    []string{"number"},
		},
		{
			name:         "nested braces inside placeholder",
			pattern:      "x${Record<string, { a: number }>}y",
			wantLiterals: []string{"x", "y"},
			wantExprs:    []string{"Record<string, { a: number }>"},
		},
		{
			name:         "dollar without brace is literal",
			pattern:      "price$USD",
			wantLiterals: []string{"price$USD"},
			wantExprs:    nil,
		},
		{
			name:         "empty pattern",
			pattern:      "",
			wantLiterals: []string{""},
			wantExprs:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			literals, exprs, err := ParsePattern(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLiterals, literals)
			assert.Equal(t, tt.wantExprs, exprs)
			assert.Len(t, literals, len(exprs)+1)
		})
	}
}

func TestParsePatternEmptyPlaceholder(t *testing.T) {
	for _, pattern := range []string{"${}", "a${  }b"} {
		_, _, err := ParsePattern(pattern)
		require.Error(t, err, pattern)
		assert.ErrorIs(t, err, ErrEmptyPlaceholder)
	}
}

func TestParsePatternUnterminatedPlaceholder(t *testing.T) {
	for _, pattern := range []string{"vm-${string", "${", "x${Record<string, { a: number }"} {
		_, _, err := ParsePattern(pattern)
		require.Error(t, err, pattern)
		assert.ErrorIs(t, err, ErrUnterminatedPlaceholder)
	}
}
