package rust

import (
	"fmt"

	"github.com/adi-family/tsp-gen/internal/ast"
)

var primitiveMap = map[string]string{
	"string":         "String",
	"int8":           "i8",
	"int16":          "i16",
	"int32":          "i32",
	"int64":          "i64",
	"uint8":          "u8",
	"uint16":         "u16",
	"uint32":         "u32",
	"uint64":         "u64",
	"float32":        "f32",
	"float64":        "f64",
	"boolean":        "bool",
	"bytes":          "Vec<u8>",
	"plainDate":      "String",
	"plainTime":      "String",
	"utcDateTime":    "String",
	"offsetDateTime": "String",
	"duration":       "String",
	"url":            "String",
	"null":           "()",
	"void":           "()",
	"never":          "()",
	"unknown":        "serde_json::Value",
}

func rsType(t ast.TypeRef, isKnown func(name string) bool) string {
	switch t.Kind {
	case ast.TypeNamed:
		if mapped, ok := primitiveMap[t.Name]; ok {
			return mapped
		}
		if isKnown(t.Name) {
			return t.Name
		}
		return "serde_json::Value"
	case ast.TypeGeneric:
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = rsType(a, isKnown)
		}
		if len(args) == 0 {
			return t.Name
		}
		return fmt.Sprintf("%s<%s>", t.Name, joinStrs(args, ", "))
	case ast.TypeArray:
		return fmt.Sprintf("Vec<%s>", rsType(*t.Elem, isKnown))
	case ast.TypeTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = rsType(e, isKnown)
		}
		return fmt.Sprintf("(%s)", joinStrs(parts, ", "))
	case ast.TypeLiteral:
		return rsLiteralType(t.Literal)
	case ast.TypeAnonymous:
		return "serde_json::Value"
	case ast.TypeUnionInline:
		return "serde_json::Value" // structural inline unions fall back to untyped JSON
	default:
		return "serde_json::Value"
	}
}

func rsLiteralType(v *ast.Value) string {
	if v == nil {
		return "serde_json::Value"
	}
	switch v.Kind {
	case ast.ValString:
		return "String"
	case ast.ValInt:
		return "i64"
	case ast.ValFloat:
		return "f64"
	case ast.ValBool:
		return "bool"
	default:
		return "serde_json::Value"
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
