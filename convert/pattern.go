package convert

import (
	"strings"

	"github.com/teranos/tsbridge/errors"
)

// ParsePattern decomposes a ${...}-bearing template into alternating
// literal chunks and placeholder type expressions. The returned literals
// always number one more than the expressions, so a renderer can emit
// literal, placeholder, literal, ... , trailing literal.
//
//	ParsePattern("v${number}.${number}") ->
//	    literals ["v", ".", ""], exprs ["number", "number"]
//
// Braces nested inside a placeholder are tolerated, so a placeholder can
// hold an inline object type expression.
func ParsePattern(s string) (literals []string, exprs []string, err error) {
	var lit strings.Builder
	runes := []rune(s)

	for i := 0; i < len(runes); i++ {
		if runes[i] == '$' && i+1 < len(runes) && runes[i+1] == '{' {
			literals = append(literals, lit.String())
			lit.Reset()

			depth := 1
			var body strings.Builder
			j := i + 2
			for ; j < len(runes); j++ {
				switch runes[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				body.WriteRune(runes[j])
			}

			if depth != 0 {
				return nil, nil, errors.Wrapf(ErrUnterminatedPlaceholder, "in pattern %q", s)
			}

			expr := strings.TrimSpace(body.String())
			if expr == "" {
				return nil, nil, errors.Wrapf(ErrEmptyPlaceholder, "in pattern %q", s)
			}
			exprs = append(exprs, expr)
			i = j
			continue
		}
		lit.WriteRune(runes[i])
	}

	literals = append(literals, lit.String())
	return literals, exprs, nil
}
