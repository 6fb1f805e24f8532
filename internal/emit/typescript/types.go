package typescript

import (
	"fmt"

	"github.com/adi-family/tsp-gen/internal/ast"
)

var primitiveMap = map[string]string{
	"string":         "string",
	"int8":           "number",
	"int16":          "number",
	"int32":          "number",
	"int64":          "number",
	"uint8":          "number",
	"uint16":         "number",
	"uint32":         "number",
	"uint64":         "number",
	"float32":        "number",
	"float64":        "number",
	"boolean":        "boolean",
	"bytes":          "string",
	"plainDate":      "string",
	"plainTime":      "string",
	"utcDateTime":    "string",
	"offsetDateTime": "string",
	"duration":       "string",
	"url":            "string",
	"null":           "null",
	"void":           "void",
	"never":          "never",
	"unknown":        "any",
}

func tsType(t ast.TypeRef, isKnown func(name string) bool) string {
	switch t.Kind {
	case ast.TypeNamed:
		if mapped, ok := primitiveMap[t.Name]; ok {
			return mapped
		}
		if isKnown(t.Name) {
			return t.Name
		}
		return "any"
	case ast.TypeGeneric:
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = tsType(a, isKnown)
		}
		if len(args) == 0 {
			return t.Name
		}
		return fmt.Sprintf("%s<%s>", t.Name, joinStrs(args, ", "))
	case ast.TypeArray:
		return fmt.Sprintf("%s[]", tsType(*t.Elem, isKnown))
	case ast.TypeTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = tsType(e, isKnown)
		}
		return fmt.Sprintf("[%s]", joinStrs(parts, ", "))
	case ast.TypeLiteral:
		return tsLiteral(t.Literal)
	case ast.TypeAnonymous:
		return "Record<string, unknown>"
	case ast.TypeUnionInline:
		parts := make([]string, len(t.UnionMembers))
		for i, m := range t.UnionMembers {
			parts[i] = tsType(m, isKnown)
		}
		return joinStrs(dedupStrs(parts), " | ")
	default:
		return "any"
	}
}

func tsLiteral(v *ast.Value) string {
	if v == nil {
		return "any"
	}
	switch v.Kind {
	case ast.ValString:
		return fmt.Sprintf("%q", v.Str)
	case ast.ValInt:
		return fmt.Sprintf("%d", v.Int)
	case ast.ValFloat:
		return fmt.Sprintf("%g", v.Float)
	case ast.ValBool:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return "any"
	}
}

func joinStrs(ss []string, sep string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += sep
		}
		out += s
	}
	return out
}

func dedupStrs(ss []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// isSafeIdent mirrors the teacher's TS-property-identifier sanitizing
// idiom: a name is a "safe" bare property name if it is a valid JS
// identifier, otherwise it must be quoted in object/interface literals.
func isSafeIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !(r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
				return false
			}
			continue
		}
		if !(r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

func propKey(name string) string {
	if isSafeIdent(name) {
		return name
	}
	return fmt.Sprintf("%q", name)
}
