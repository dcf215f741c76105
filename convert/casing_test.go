package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRenameAll(t *testing.T) {
	tests := []struct {
		policy string
		input  string
		want   string
	}{
		{CamelCase, "user_id", "userId"},
		{PascalCase, "user_id", "UserId"},
		{SnakeCase, "user_id", "user_id"},
		{ScreamingSnakeCase, "user_id", "USER_ID"},
		{KebabCase, "user_id", "user-id"},
		{ScreamingKebabCase, "user_id", "USER-ID"},

		// Mixed input conventions normalize to the same words.
		{CamelCase, "UserID", "userId"},
		{SnakeCase, "userId", "user_id"},
		{SnakeCase, "UserID", "user_id"},
		{KebabCase, "HTTPSConnection", "https-connection"},
		{PascalCase, "created-at", "CreatedAt"},
		{ScreamingSnakeCase, "apiKey", "API_KEY"},

		{CamelCase, "name", "name"},
		{PascalCase, "name", "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.policy+"/"+tt.input, func(t *testing.T) {
			got, err := ApplyRenameAll(tt.policy, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyRenameAllUnknownPolicy(t *testing.T) {
	_, err := ApplyRenameAll("SHOUTING", "user_id")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRenameAll)
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"UserID", "user_id"},
		{"userId", "user_id"},
		{"user_id", "user_id"},
		{"HTTPServer", "http_server"},
		{"parseJSONValue", "parse_json_value"},
		{"already_snake_case", "already_snake_case"},
		{"kebab-case-input", "kebab_case_input"},
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, toSnakeCase(tt.input))
		})
	}
}
