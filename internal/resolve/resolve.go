// Package resolve provides symbol lookup and spread-flattening over a
// parsed ast.File, generalizing the IR's model-map/resolve-properties
// pattern from OpenAPI-component scope to full namespace scope.
package resolve

import (
	"fmt"

	"github.com/adi-family/tsp-gen/internal/ast"
)

// ErrorKind distinguishes the resolver's error conditions.
type ErrorKind int

const (
	Cycle ErrorKind = iota
	MultipleBody
	AmbiguousRoute
)

type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

// Symbols indexes every declaration in a File by its simple and dotted
// (namespace-qualified) names, and records the `using`-imported namespace
// paths. Lookups do not depend on the scope of the referring declaration,
// and the recorded using paths are not consulted by Lookup.
type Symbols struct {
	file    *ast.File
	byName  map[string]ast.Declaration   // simple name -> first matching declaration
	byPath  map[string]ast.Declaration   // dotted path -> declaration
	usings  []string
}

// Build indexes all declarations in file, recursing into namespaces.
func Build(file *ast.File) *Symbols {
	s := &Symbols{
		file:   file,
		byName: map[string]ast.Declaration{},
		byPath: map[string]ast.Declaration{},
	}
	s.index(file.Declarations, "")
	return s
}

func (s *Symbols) index(decls []ast.Declaration, prefix string) {
	for _, d := range decls {
		switch d.DeclKind() {
		case ast.DeclUsing:
			s.usings = append(s.usings, d.UsingPath)
		case ast.DeclNamespace:
			nsPrefix := d.Namespace.Name
			if prefix != "" {
				nsPrefix = prefix + "." + nsPrefix
			}
			s.index(d.Namespace.Declarations, nsPrefix)
		default:
			if d.Name == "" {
				continue
			}
			if _, exists := s.byName[d.Name]; !exists {
				s.byName[d.Name] = d
			}
			path := d.Name
			if prefix != "" {
				path = prefix + "." + d.Name
			}
			s.byPath[path] = d
		}
	}
}

// Lookup resolves a possibly-dotted name, first by exact dotted path, then
// by simple name across every namespace. When several namespaces declare the
// same simple name, the first declaration in source order is returned; inner
// scopes are not preferred over outer ones.
func (s *Symbols) Lookup(name string) (ast.Declaration, bool) {
	if d, ok := s.byPath[name]; ok {
		return d, true
	}
	if d, ok := s.byName[name]; ok {
		return d, true
	}
	return ast.Declaration{}, false
}

// Model looks up a name and returns it only if it denotes a model.
func (s *Symbols) Model(name string) (*ast.Model, bool) {
	d, ok := s.Lookup(name)
	if !ok || d.DeclKind() != ast.DeclModel {
		return nil, false
	}
	return d.Model, true
}

func typeRefName(t ast.TypeRef) (string, bool) {
	switch t.Kind {
	case ast.TypeNamed, ast.TypeGeneric:
		return t.Name, true
	default:
		return "", false
	}
}

// ResolveProperties returns model's own fields preceded by the flattened,
// order-preserving expansion of its spread bases (recursively), with later
// field names shadowing earlier ones emitted by an earlier spread or base.
// A (possibly indirect) self-spread is reported as a Cycle error.
func (s *Symbols) ResolveProperties(model *ast.Model) ([]ast.Property, error) {
	return s.resolveProperties(model, map[string]bool{})
}

func (s *Symbols) resolveProperties(model *ast.Model, visiting map[string]bool) ([]ast.Property, error) {
	if model.Name != "" {
		if visiting[model.Name] {
			return nil, &Error{Kind: Cycle, Detail: fmt.Sprintf("spread cycle detected at model %q", model.Name)}
		}
		visiting[model.Name] = true
		defer delete(visiting, model.Name)
	}

	var ordered []ast.Property
	seen := map[string]int{} // field name -> index into ordered

	push := func(p ast.Property) {
		if idx, ok := seen[p.Name]; ok {
			ordered[idx] = p
			return
		}
		seen[p.Name] = len(ordered)
		ordered = append(ordered, p)
	}

	for _, spreadRef := range model.SpreadRefs {
		name, ok := typeRefName(spreadRef)
		if !ok {
			continue
		}
		base, ok := s.Model(name)
		if !ok {
			continue
		}
		props, err := s.resolveProperties(base, visiting)
		if err != nil {
			return nil, err
		}
		for _, p := range props {
			push(p)
		}
	}

	for _, p := range model.Properties {
		push(p)
	}

	return ordered, nil
}
