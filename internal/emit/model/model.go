// Package model builds a flattened, emitter-agnostic view of a parsed file
// — resolved model fields, enum members, unions, and per-operation route and
// binding facts — so each language emitter walks the same precomputed shape
// instead of re-deriving it from the raw AST.
package model

import (
	"github.com/adi-family/tsp-gen/internal/ast"
	"github.com/adi-family/tsp-gen/internal/resolve"
	"github.com/adi-family/tsp-gen/internal/route"
)

// File is the fully resolved view of one parsed source handed to emitters.
type File struct {
	Models     []*ResolvedModel
	Enums      []*ast.Enum
	Unions     []*ast.Union
	Scalars    []*ast.Scalar
	Aliases    []*ast.Alias
	Interfaces []*ResolvedInterface
}

type ResolvedModel struct {
	*ast.Model
	Fields []ast.Property // flattened, spread-expanded, in source order
}

type ResolvedInterface struct {
	*ast.Interface
	Route      string // the interface's own @route prefix, "" if none
	Operations []*ResolvedOperation
}

type ResolvedOperation struct {
	ast.Operation
	*route.Resolved
}

// Build resolves every declaration in file against its own symbol table.
func Build(file *ast.File) (*File, error) {
	syms := resolve.Build(file)
	out := &File{}

	isModel := func(name string) bool {
		_, ok := syms.Model(name)
		return ok
	}

	var walk func(decls []ast.Declaration) error
	walk = func(decls []ast.Declaration) error {
		for _, d := range decls {
			switch d.DeclKind() {
			case ast.DeclNamespace:
				if err := walk(d.Namespace.Declarations); err != nil {
					return err
				}
			case ast.DeclModel:
				fields, err := syms.ResolveProperties(d.Model)
				if err != nil {
					return err
				}
				out.Models = append(out.Models, &ResolvedModel{Model: d.Model, Fields: fields})
			case ast.DeclEnum:
				out.Enums = append(out.Enums, d.Enum)
			case ast.DeclUnion:
				out.Unions = append(out.Unions, d.Union)
			case ast.DeclScalar:
				out.Scalars = append(out.Scalars, d.Scalar)
			case ast.DeclAlias:
				out.Aliases = append(out.Aliases, d.Alias)
			case ast.DeclInterface:
				ifaceRoute, _ := routePrefix(d.Decorators)
				ri := &ResolvedInterface{Interface: d.Interface, Route: ifaceRoute}
				for _, op := range d.Interface.Operations {
					expanded := expandSpreadParams(op, syms)
					resolved, err := route.Resolve(d.Interface.Name, ifaceRoute, expanded, isModel)
					if err != nil {
						return err
					}
					ri.Operations = append(ri.Operations, &ResolvedOperation{Operation: expanded, Resolved: resolved})
				}
				out.Interfaces = append(out.Interfaces, ri)
			}
		}
		return nil
	}
	if err := walk(file.Declarations); err != nil {
		return nil, err
	}
	return out, nil
}

func routePrefix(decorators []ast.Decorator) (string, bool) {
	for _, d := range decorators {
		if d.Name == "route" && len(d.Args) > 0 && d.Args[0].Value.Kind == ast.ValString {
			return d.Args[0].Value.Str, true
		}
	}
	return "", false
}

// expandSpreadParams replaces any `...Model` spread entries in op's
// parameter list with one OperationParam per resolved field of that model,
// preserving declaration order, so route.Resolve only ever sees concrete
// named parameters.
func expandSpreadParams(op ast.Operation, syms *resolve.Symbols) ast.Operation {
	hasSpread := false
	for _, p := range op.Params {
		if p.Spread != nil {
			hasSpread = true
			break
		}
	}
	if !hasSpread {
		return op
	}
	expanded := op
	expanded.Params = nil
	for _, p := range op.Params {
		if p.Spread == nil {
			expanded.Params = append(expanded.Params, p)
			continue
		}
		name, ok := spreadTargetName(*p.Spread)
		if !ok {
			continue
		}
		base, ok := syms.Model(name)
		if !ok {
			continue
		}
		fields, err := syms.ResolveProperties(base)
		if err != nil {
			continue
		}
		for _, f := range fields {
			expanded.Params = append(expanded.Params, ast.OperationParam{
				Name:       f.Name,
				Type:       f.Type,
				Optional:   f.Optional,
				Decorators: f.Decorators,
			})
		}
	}
	return expanded
}

func spreadTargetName(t ast.TypeRef) (string, bool) {
	if t.Kind == ast.TypeNamed || t.Kind == ast.TypeGeneric {
		return t.Name, true
	}
	return "", false
}
