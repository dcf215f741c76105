package convert

import (
	"strings"
	"unicode"

	"github.com/teranos/tsbridge/errors"
)

// Rename-all policy tokens.
const (
	CamelCase          = "camelCase"
	PascalCase         = "PascalCase"
	SnakeCase          = "snake_case"
	ScreamingSnakeCase = "SCREAMING_SNAKE_CASE"
	KebabCase          = "kebab-case"
	ScreamingKebabCase = "SCREAMING-KEBAB-CASE"
)

// ApplyRenameAll converts name according to the given policy token.
// Every policy runs off the same snake-case normalization pass, so mixed
// inputs ("userId", "UserID", "user_id") all land on the same output.
func ApplyRenameAll(policy, name string) (string, error) {
	words := splitWords(name)

	switch policy {
	case CamelCase:
		var sb strings.Builder
		for i, w := range words {
			if i == 0 {
				sb.WriteString(w)
			} else {
				sb.WriteString(capitalize(w))
			}
		}
		return sb.String(), nil
	case PascalCase:
		var sb strings.Builder
		for _, w := range words {
			sb.WriteString(capitalize(w))
		}
		return sb.String(), nil
	case SnakeCase:
		return strings.Join(words, "_"), nil
	case ScreamingSnakeCase:
		return strings.ToUpper(strings.Join(words, "_")), nil
	case KebabCase:
		return strings.Join(words, "-"), nil
	case ScreamingKebabCase:
		return strings.ToUpper(strings.Join(words, "-")), nil
	}
	return "", errors.Wrapf(ErrUnknownRenameAll, "%q", policy)
}

// splitWords normalizes a name to lowercase word segments, splitting on
// underscores, hyphens, and uppercase transitions. Acronym runs stay
// together ("HTTPSConnection" -> ["https", "connection"]).
func splitWords(s string) []string {
	return strings.FieldsFunc(toSnakeCase(s), func(r rune) bool {
		return r == '_'
	})
}

// toSnakeCase converts PascalCase or camelCase to snake_case, preserving
// existing underscores and mapping hyphens to underscores.
func toSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(strings.ReplaceAll(s, "-", "_"))

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if i > 0 && unicode.IsUpper(r) {
			// Don't insert underscore if previous char was uppercase (acronym)
			// unless next char is lowercase (end of acronym)
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if (!prevUpper || nextLower) && runes[i-1] != '_' {
				result.WriteRune('_')
			}
		}

		result.WriteRune(r)
	}

	return strings.ToLower(result.String())
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(w)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
