package python

import (
	"fmt"

	"github.com/adi-family/tsp-gen/internal/ast"
)

var primitiveMap = map[string]string{
	"string":         "str",
	"int8":           "int",
	"int16":          "int",
	"int32":          "int",
	"int64":          "int",
	"uint8":          "int",
	"uint16":         "int",
	"uint32":         "int",
	"uint64":         "int",
	"float32":        "float",
	"float64":        "float",
	"boolean":        "bool",
	"bytes":          "bytes",
	"plainDate":      "str",
	"plainTime":      "str",
	"utcDateTime":    "datetime",
	"offsetDateTime": "datetime",
	"duration":       "str",
	"url":            "str",
	"null":           "None",
	"void":           "None",
	"never":          "None",
	"unknown":        "Any",
}

// pyType renders a TypeRef as a Python type annotation string. isKnown lets
// named references resolve to their own generated class name unchanged;
// anything else unresolved falls back to the "unknown name" rule (str).
func pyType(t ast.TypeRef, isKnown func(name string) bool) string {
	switch t.Kind {
	case ast.TypeNamed:
		if mapped, ok := primitiveMap[t.Name]; ok {
			return mapped
		}
		if isKnown(t.Name) {
			return t.Name
		}
		return "str"
	case ast.TypeGeneric:
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = pyType(a, isKnown)
		}
		if len(args) == 0 {
			return t.Name
		}
		return fmt.Sprintf("%s[%s]", t.Name, joinStrs(args))
	case ast.TypeArray:
		return fmt.Sprintf("list[%s]", pyType(*t.Elem, isKnown))
	case ast.TypeTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = pyType(e, isKnown)
		}
		return fmt.Sprintf("tuple[%s]", joinStrs(parts))
	case ast.TypeLiteral:
		return pyLiteralType(t.Literal)
	case ast.TypeAnonymous:
		return "dict[str, Any]"
	case ast.TypeUnionInline:
		parts := make([]string, len(t.UnionMembers))
		for i, m := range t.UnionMembers {
			parts[i] = pyType(m, isKnown)
		}
		return joinStrs(dedupStrs(parts))
	default:
		return "Any"
	}
}

func pyLiteralType(v *ast.Value) string {
	if v == nil {
		return "Any"
	}
	switch v.Kind {
	case ast.ValString:
		return "str"
	case ast.ValInt:
		return "int"
	case ast.ValFloat:
		return "float"
	case ast.ValBool:
		return "bool"
	default:
		return "Any"
	}
}

func joinStrs(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += " | "
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
