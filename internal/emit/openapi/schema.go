package openapi

import (
	"github.com/adi-family/tsp-gen/internal/ast"
)

// primitiveSchema renders the OpenAPI schema object for a builtin scalar
// name, per the IDL-to-OpenAPI primitive mapping table. An unrecognized
// name yields nil; typeRefToSchema then emits a $ref for a declared name or
// the empty schema ({}) otherwise.
func primitiveSchema(name string) *orderedMap {
	s := newOrderedMap()
	switch name {
	case "string", "plainDate", "plainTime", "duration", "url":
		s.Set("type", "string")
	case "int8", "int16", "int32", "uint8", "uint16", "uint32":
		s.Set("type", "integer")
		s.Set("format", "int32")
	case "int64", "uint64":
		s.Set("type", "integer")
		s.Set("format", "int64")
	case "float32":
		s.Set("type", "number")
		s.Set("format", "float")
	case "float64":
		s.Set("type", "number")
		s.Set("format", "double")
	case "boolean":
		s.Set("type", "boolean")
	case "bytes":
		s.Set("type", "string")
		s.Set("format", "byte")
	case "utcDateTime", "offsetDateTime":
		s.Set("type", "string")
		s.Set("format", "date-time")
	case "null", "void", "never":
		return newOrderedMap()
	default:
		return nil // not a recognized primitive; caller decides the fallback
	}
	return s
}

func refSchema(name string) *orderedMap {
	s := newOrderedMap()
	s.Set("$ref", "#/components/schemas/"+name)
	return s
}

// typeRefToSchema renders a TypeRef as an OpenAPI schema object (or a $ref),
// given a predicate reporting whether a name denotes a model/enum/union/
// alias/scalar declared in the same file (and therefore has a
// components.schemas entry to reference).
func typeRefToSchema(t ast.TypeRef, isKnown func(name string) bool) *orderedMap {
	switch t.Kind {
	case ast.TypeNamed:
		if prim := primitiveSchema(t.Name); prim != nil {
			return prim
		}
		if isKnown(t.Name) {
			return refSchema(t.Name)
		}
		return newOrderedMap() // unresolved name: empty schema, per the unknown-name fallback
	case ast.TypeGeneric:
		if isKnown(t.Name) {
			return refSchema(t.Name)
		}
		return newOrderedMap()
	case ast.TypeArray:
		s := newOrderedMap()
		s.Set("type", "array")
		s.Set("items", typeRefToSchema(*t.Elem, isKnown))
		return s
	case ast.TypeTuple:
		s := newOrderedMap()
		s.Set("type", "array")
		return s
	case ast.TypeLiteral:
		return literalSchema(t.Literal)
	case ast.TypeAnonymous:
		return anonymousModelSchema(t.AnonModel, isKnown)
	case ast.TypeUnionInline:
		s := newOrderedMap()
		var variants []any
		for _, m := range t.UnionMembers {
			variants = append(variants, typeRefToSchema(m, isKnown))
		}
		s.Set("oneOf", variants)
		return s
	default:
		return newOrderedMap()
	}
}

func literalSchema(v *ast.Value) *orderedMap {
	s := newOrderedMap()
	if v == nil {
		return s
	}
	switch v.Kind {
	case ast.ValString:
		s.Set("type", "string")
		s.Set("enum", []any{v.Str})
	case ast.ValInt:
		s.Set("type", "integer")
		s.Set("enum", []any{v.Int})
	case ast.ValFloat:
		s.Set("type", "number")
		s.Set("enum", []any{v.Float})
	case ast.ValBool:
		s.Set("type", "boolean")
		s.Set("enum", []any{v.Bool})
	}
	return s
}

func anonymousModelSchema(m *ast.Model, isKnown func(name string) bool) *orderedMap {
	s := newOrderedMap()
	s.Set("type", "object")
	props := newOrderedMap()
	var required []any
	for _, f := range m.Properties {
		props.Set(f.Name, typeRefToSchema(f.Type, isKnown))
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	s.Set("properties", props)
	if len(required) > 0 {
		s.Set("required", required)
	}
	return s
}

func enumSchema(members []ast.EnumMember) *orderedMap {
	s := newOrderedMap()
	s.Set("type", "string")
	var vals []any
	for _, m := range members {
		v := m.Name
		if m.Value != nil && m.Value.Kind == ast.ValString {
			v = m.Value.Str
		}
		vals = append(vals, v)
	}
	s.Set("enum", vals)
	return s
}

func unionSchema(variants []ast.UnionVariant, isKnown func(name string) bool) *orderedMap {
	s := newOrderedMap()
	var members []any
	for _, v := range variants {
		members = append(members, typeRefToSchema(v.Type, isKnown))
	}
	s.Set("oneOf", members)
	return s
}

func scalarSchema(sc *ast.Scalar) *orderedMap {
	if sc.Extends != "" {
		if prim := primitiveSchema(sc.Extends); prim != nil {
			return prim
		}
	}
	s := newOrderedMap()
	s.Set("type", "string")
	return s
}

func aliasSchema(a *ast.Alias, isKnown func(name string) bool) *orderedMap {
	return typeRefToSchema(a.Type, isKnown)
}

// modelSchema renders model as an object schema, or as an allOf of its
// spread-base $refs plus a tail object of its own fields when it has
// spread bases, per the OpenAPI emitter's spread-expansion rule (distinct
// from every other emitter, which instead flattens spreads into one field
// list before emitting).
func modelSchema(m *ast.Model, isKnown func(name string) bool) *orderedMap {
	tail := newOrderedMap()
	tail.Set("type", "object")
	props := newOrderedMap()
	var required []any
	for _, f := range m.Properties {
		props.Set(f.Name, typeRefToSchema(f.Type, isKnown))
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	tail.Set("properties", props)
	if len(required) > 0 {
		tail.Set("required", required)
	}

	if len(m.SpreadRefs) == 0 {
		return tail
	}

	combined := newOrderedMap()
	var members []any
	for _, spread := range m.SpreadRefs {
		name, ok := spreadRefName(spread)
		if !ok {
			continue
		}
		members = append(members, refSchema(name))
	}
	members = append(members, tail)
	combined.Set("allOf", members)
	return combined
}

func spreadRefName(t ast.TypeRef) (string, bool) {
	if t.Kind == ast.TypeNamed || t.Kind == ast.TypeGeneric {
		return t.Name, true
	}
	return "", false
}
