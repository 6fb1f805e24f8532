// Package route computes the HTTP verb, composed path, and parameter
// bindings for each operation, generalizing the IR normalizer's
// per-operation route/param logic from OpenAPI scope to IDL-interface scope.
package route

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adi-family/tsp-gen/internal/ast"
)

type Verb string

const (
	GET    Verb = "GET"
	POST   Verb = "POST"
	PUT    Verb = "PUT"
	PATCH  Verb = "PATCH"
	DELETE Verb = "DELETE"
)

var verbDecorators = map[string]Verb{
	"get":    GET,
	"post":   POST,
	"put":    PUT,
	"patch":  PATCH,
	"delete": DELETE,
}

type Binding string

const (
	BindPath  Binding = "path"
	BindQuery Binding = "query"
	BindBody  Binding = "body"
)

type Error struct {
	Kind   string // "MultipleVerb" | "MultipleBody" | "AmbiguousRoute"
	Detail string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Detail) }

// Resolved is the computed route/binding facts for one operation.
type Resolved struct {
	Verb       Verb
	Path       string
	PathParams []string // placeholder names, in order of first appearance
	Bindings   []ResolvedParam
	BodyParam  *ResolvedParam
}

type ResolvedParam struct {
	ast.OperationParam
	Binding Binding
}

func routeDecoratorPath(decorators []ast.Decorator) (string, bool) {
	for _, d := range decorators {
		if d.Name == "route" && len(d.Args) > 0 && d.Args[0].Value.Kind == ast.ValString {
			return d.Args[0].Value.Str, true
		}
	}
	return "", false
}

// Join concatenates an interface-level route prefix with an operation-level
// route suffix, collapsing adjacent slashes and keeping a single leading
// slash. Either side may be absent.
func Join(prefix, suffix string) string {
	if prefix == "" {
		if suffix == "" {
			return "/"
		}
		return normalizeSlashes(suffix)
	}
	if suffix == "" {
		return normalizeSlashes(prefix)
	}
	return normalizeSlashes(prefix + "/" + suffix)
}

func normalizeSlashes(p string) string {
	collapsed := regexp.MustCompile(`/+`).ReplaceAllString(p, "/")
	if !strings.HasPrefix(collapsed, "/") {
		collapsed = "/" + collapsed
	}
	if len(collapsed) > 1 && strings.HasSuffix(collapsed, "/") {
		collapsed = strings.TrimRight(collapsed, "/")
	}
	return collapsed
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func pathParams(path string) []string {
	matches := placeholderRe.FindAllStringSubmatch(path, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

func explicitBinding(decorators []ast.Decorator) (Binding, bool) {
	for _, d := range decorators {
		switch d.Name {
		case "path":
			return BindPath, true
		case "query":
			return BindQuery, true
		case "body":
			return BindBody, true
		}
	}
	return "", false
}

// isScalarLike reports whether a TypeRef denotes a primitive/scalar-ish
// shape for binding-default purposes (anything that is not an
// object-literal or a reference to a model is treated as scalar-like).
func isScalarLike(t ast.TypeRef, isModel func(name string) bool) bool {
	switch t.Kind {
	case ast.TypeAnonymous:
		return false
	case ast.TypeNamed:
		return !isModel(t.Name)
	default:
		return true
	}
}

// Resolve computes verb, path, and parameter bindings for op, given the
// interface-level route prefix (from @route on the interface) and a
// predicate reporting whether a named type is a model declaration (used to
// distinguish struct-shaped parameters from primitives for body defaulting).
func Resolve(interfaceName string, interfaceRoute string, op ast.Operation, isModel func(name string) bool) (*Resolved, error) {
	verb := GET
	verbSeen := false
	for _, d := range op.Decorators {
		if v, ok := verbDecorators[d.Name]; ok {
			if verbSeen {
				return nil, &Error{Kind: "MultipleVerb", Detail: fmt.Sprintf("operation %s.%s has more than one HTTP verb decorator", interfaceName, op.Name)}
			}
			verb = v
			verbSeen = true
		}
	}

	opRoute, _ := routeDecoratorPath(op.Decorators)
	path := Join(interfaceRoute, opRoute)
	placeholders := pathParams(path)
	placeholderSet := map[string]bool{}
	for _, n := range placeholders {
		placeholderSet[n] = true
	}

	res := &Resolved{Verb: verb, Path: path, PathParams: placeholders}

	bodyAllowed := verb == POST || verb == PUT || verb == PATCH

	for _, param := range op.Params {
		if param.Spread != nil {
			continue // spread params are expanded by the caller before Resolve is invoked
		}
		var binding Binding
		if explicit, ok := explicitBinding(param.Decorators); ok {
			binding = explicit
		} else if placeholderSet[param.Name] {
			binding = BindPath
		} else if bodyAllowed && !isScalarLike(param.Type, isModel) {
			binding = BindBody
		} else {
			binding = BindQuery
		}

		rp := ResolvedParam{OperationParam: param, Binding: binding}
		if binding == BindBody {
			if res.BodyParam != nil {
				return nil, &Error{Kind: "MultipleBody", Detail: fmt.Sprintf("operation %s.%s has more than one body parameter", interfaceName, op.Name)}
			}
			res.BodyParam = &rp
		}
		res.Bindings = append(res.Bindings, rp)
	}

	return res, nil
}
