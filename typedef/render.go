package typedef

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Render serializes a Def to inline TypeScript type syntax. Named nodes
// render as their qualified name only; use RenderDeclaration for the full
// `type Name = ...;` statement.
func Render(d Def) string {
	switch t := d.(type) {
	case Primitive:
		return t.Kind.Keyword()

	case Array:
		// Arrays bind tighter than unions: (A | B)[] not A | B[].
		if _, ok := t.Elem.(Union); ok {
			return "(" + Render(t.Elem) + ")[]"
		}
		return Render(t.Elem) + "[]"

	case Tuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = Render(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"

	case Object:
		if len(t.Fields) == 0 {
			return "{}"
		}
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = renderField(f)
		}
		return "{ " + strings.Join(parts, "; ") + " }"

	case Union:
		return joinMembers(t.Members, " | ")

	case Intersection:
		return joinMembers(t.Members, " & ")

	case Record:
		return "Record<" + Render(t.Key) + ", " + Render(t.Value) + ">"

	case Named:
		return t.QualifiedName()

	case Ref:
		return t.Name

	case Literal:
		return renderLiteral(t)

	case Function:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = renderField(p)
		}
		return "(" + strings.Join(params, ", ") + ") => " + Render(t.Returns)

	case Generic:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = Render(a)
		}
		return t.Base + "<" + strings.Join(args, ", ") + ">"

	case TemplateLiteral:
		var sb strings.Builder
		sb.WriteByte('`')
		for i, s := range t.Strings {
			sb.WriteString(s)
			if i < len(t.Types) {
				sb.WriteString("${")
				sb.WriteString(Render(t.Types[i]))
				sb.WriteString("}")
			}
		}
		sb.WriteByte('`')
		return sb.String()

	case IndexedAccess:
		return t.Base + `["` + t.Key + `"]`

	default:
		panic(fmt.Sprintf("typedef: unhandled node %T in Render", d))
	}
}

// RenderDeclaration renders the full declaration statement for a Named
// node: `type Name = <def>;`. A configured Wrapper wraps the definition:
// `type Name = Wrapper<def>;`. Type parameters render as `type Name<T> =
// ...;`. Non-Named nodes fall back to inline rendering since they have no
// declared name.
func RenderDeclaration(d Def) string {
	n, ok := d.(Named)
	if !ok {
		return Render(d)
	}
	name := n.Name
	if len(n.TypeParams) > 0 {
		name += "<" + strings.Join(n.TypeParams, ", ") + ">"
	}
	body := Render(n.Def)
	if n.Wrapper != "" {
		body = n.Wrapper + "<" + body + ">"
	}
	return "type " + name + " = " + body + ";"
}

func renderField(f Field) string {
	var sb strings.Builder
	if f.Readonly {
		sb.WriteString("readonly ")
	}
	sb.WriteString(f.Name)
	if f.Optional {
		sb.WriteByte('?')
	}
	sb.WriteString(": ")
	sb.WriteString(Render(f.Type))
	return sb.String()
}

func joinMembers(members []Def, sep string) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = Render(m)
	}
	return strings.Join(parts, sep)
}

func renderLiteral(l Literal) string {
	switch l.Kind {
	case LiteralString:
		return `"` + escapeString(l.Str) + `"`
	case LiteralNumber:
		// Integral values print without a trailing fractional part. The
		// range check keeps the int64 conversion defined for huge values
		// and NaN.
		if l.Num == math.Trunc(l.Num) && math.Abs(l.Num) < 1<<63 {
			return strconv.FormatInt(int64(l.Num), 10)
		}
		return strconv.FormatFloat(l.Num, 'g', -1, 64)
	case LiteralBool:
		return strconv.FormatBool(l.Bool)
	}
	panic(fmt.Sprintf("typedef: unhandled literal kind %d", l.Kind))
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
