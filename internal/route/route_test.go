package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adi-family/tsp-gen/internal/ast"
)

func TestJoinCollapsesSlashesAndKeepsSingleLeading(t *testing.T) {
	assert.Equal(t, "/users/active", Join("/users/", "/active"))
	assert.Equal(t, "/users", Join("/users", ""))
	assert.Equal(t, "/active", Join("", "active"))
	assert.Equal(t, "/", Join("", ""))
	assert.Equal(t, "/a/b/c", Join("a//b", "//c"))
}

func noModel(string) bool { return false }

func strParam(name string, decorators ...ast.Decorator) ast.OperationParam {
	return ast.OperationParam{Name: name, Type: ast.TypeRef{Kind: ast.TypeNamed, Name: "string"}, Decorators: decorators}
}

func TestResolvePathParamBindingFromPlaceholder(t *testing.T) {
	op := ast.Operation{
		Name:       "get",
		Decorators: []ast.Decorator{{Name: "get"}, {Name: "route", Args: []ast.DecoratorArg{{Value: ast.Value{Kind: ast.ValString, Str: "/{id}"}}}}},
		Params:     []ast.OperationParam{strParam("id")},
	}
	resolved, err := Resolve("Users", "/users", op, noModel)
	require.NoError(t, err)
	assert.Equal(t, GET, resolved.Verb)
	assert.Equal(t, "/users/{id}", resolved.Path)
	require.Len(t, resolved.Bindings, 1)
	assert.Equal(t, BindPath, resolved.Bindings[0].Binding)
}

func TestResolveQueryParamDefaultForScalar(t *testing.T) {
	op := ast.Operation{
		Name:       "list",
		Decorators: []ast.Decorator{{Name: "get"}},
		Params:     []ast.OperationParam{strParam("search")},
	}
	resolved, err := Resolve("Users", "/users", op, noModel)
	require.NoError(t, err)
	require.Len(t, resolved.Bindings, 1)
	assert.Equal(t, BindQuery, resolved.Bindings[0].Binding)
}

func TestResolveBodyParamDefaultForModelOnPost(t *testing.T) {
	isModel := func(name string) bool { return name == "User" }
	op := ast.Operation{
		Name:       "create",
		Decorators: []ast.Decorator{{Name: "post"}},
		Params: []ast.OperationParam{
			{Name: "body", Type: ast.TypeRef{Kind: ast.TypeNamed, Name: "User"}},
		},
	}
	resolved, err := Resolve("Users", "/users", op, isModel)
	require.NoError(t, err)
	require.NotNil(t, resolved.BodyParam)
	assert.Equal(t, "body", resolved.BodyParam.Name)
	assert.Equal(t, BindBody, resolved.BodyParam.Binding)
}

func TestResolveScalarOnPostFallsBackToQueryNotBody(t *testing.T) {
	op := ast.Operation{
		Name:       "create",
		Decorators: []ast.Decorator{{Name: "post"}},
		Params:     []ast.OperationParam{strParam("name")},
	}
	resolved, err := Resolve("Users", "/users", op, noModel)
	require.NoError(t, err)
	require.Len(t, resolved.Bindings, 1)
	assert.Equal(t, BindQuery, resolved.Bindings[0].Binding)
}

func TestResolveExplicitDecoratorOverridesDefault(t *testing.T) {
	op := ast.Operation{
		Name:       "list",
		Decorators: []ast.Decorator{{Name: "get"}},
		Params:     []ast.OperationParam{strParam("id", ast.Decorator{Name: "body"})},
	}
	resolved, err := Resolve("Users", "/users", op, noModel)
	// a GET with an explicit @body is legal to classify even though bodyAllowed
	// only gates the *default*; explicit decorator always wins.
	require.NoError(t, err)
	require.Len(t, resolved.Bindings, 1)
	assert.Equal(t, BindBody, resolved.Bindings[0].Binding)
	require.NotNil(t, resolved.BodyParam)
}

func TestResolveMultipleVerbDecoratorsErrors(t *testing.T) {
	op := ast.Operation{
		Name:       "weird",
		Decorators: []ast.Decorator{{Name: "get"}, {Name: "post"}},
	}
	_, err := Resolve("Users", "/users", op, noModel)
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "MultipleVerb", rerr.Kind)
}

func TestResolveMultipleBodyParamsErrors(t *testing.T) {
	isModel := func(string) bool { return true }
	op := ast.Operation{
		Name:       "create",
		Decorators: []ast.Decorator{{Name: "post"}},
		Params: []ast.OperationParam{
			{Name: "a", Type: ast.TypeRef{Kind: ast.TypeNamed, Name: "A"}},
			{Name: "b", Type: ast.TypeRef{Kind: ast.TypeNamed, Name: "B"}},
		},
	}
	_, err := Resolve("Things", "/things", op, isModel)
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "MultipleBody", rerr.Kind)
}

func TestResolveSkipsUnexpandedSpreadParams(t *testing.T) {
	spread := ast.TypeRef{Kind: ast.TypeNamed, Name: "Body"}
	op := ast.Operation{
		Name:       "create",
		Decorators: []ast.Decorator{{Name: "post"}},
		Params:     []ast.OperationParam{{Spread: &spread}},
	}
	resolved, err := Resolve("Things", "/things", op, noModel)
	require.NoError(t, err)
	assert.Empty(t, resolved.Bindings)
}
