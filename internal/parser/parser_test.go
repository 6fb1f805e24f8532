package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adi-family/tsp-gen/internal/ast"
)

func TestParseModelWithSpreadAndOptional(t *testing.T) {
	src := `
model Base {
  id: string
}
model User {
  ...Base
  name: string
  nickname?: string
}
`
	file, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, file.Declarations, 2)

	userDecl := file.Declarations[1]
	require.Equal(t, ast.DeclModel, userDecl.DeclKind())
	require.Len(t, userDecl.Model.SpreadRefs, 1)
	assert.Equal(t, "Base", userDecl.Model.SpreadRefs[0].Name)
	require.Len(t, userDecl.Model.Properties, 2)
	assert.Equal(t, "name", userDecl.Model.Properties[0].Name)
	assert.False(t, userDecl.Model.Properties[0].Optional)
	assert.Equal(t, "nickname", userDecl.Model.Properties[1].Name)
	assert.True(t, userDecl.Model.Properties[1].Optional)
}

func TestParseEnumWithExplicitValues(t *testing.T) {
	file, err := Parse(`enum Status { active: "active", done: "done" }`)
	require.NoError(t, err)
	require.Len(t, file.Declarations, 1)
	e := file.Declarations[0].Enum
	require.Len(t, e.Members, 2)
	assert.Equal(t, "active", e.Members[0].Name)
	require.NotNil(t, e.Members[0].Value)
	assert.Equal(t, "active", e.Members[0].Value.Str)
}

func TestParseUnionNamedAndUnnamedVariants(t *testing.T) {
	file, err := Parse(`
union Shape {
  circle: Circle
  Square
}
`)
	require.NoError(t, err)
	u := file.Declarations[0].Union
	require.Len(t, u.Variants, 2)
	assert.Equal(t, "circle", u.Variants[0].Name)
	assert.Equal(t, "Circle", u.Variants[0].Type.Name)
	assert.Equal(t, "", u.Variants[1].Name)
	assert.Equal(t, "Square", u.Variants[1].Type.Name)
}

func TestParseInterfaceWithRouteAndOperations(t *testing.T) {
	src := `
@route("/users")
interface Users {
  @get
  get(id: string): User
  @post
  create(body: User): User
}
`
	file, err := Parse(src)
	require.NoError(t, err)
	iface := file.Declarations[0].Interface
	assert.Equal(t, "Users", iface.Name)
	require.Len(t, iface.Operations, 2)
	assert.Equal(t, "get", iface.Operations[0].Name)
	assert.Equal(t, "create", iface.Operations[1].Name)
	require.Len(t, iface.Operations[1].Params, 1)
	assert.Equal(t, "body", iface.Operations[1].Params[0].Name)
}

func TestParseOperationWithoutOpKeyword(t *testing.T) {
	file, err := Parse(`interface Widgets { list(): string[] }`)
	require.NoError(t, err)
	op := file.Declarations[0].Interface.Operations[0]
	assert.Equal(t, "list", op.Name)
	assert.Equal(t, ast.TypeArray, op.Return.Kind)
}

func TestParseOperationSpreadParam(t *testing.T) {
	file, err := Parse(`
model CreateBody { name: string }
interface Things {
  create(...CreateBody): void
}
`)
	require.NoError(t, err)
	op := file.Declarations[1].Interface.Operations[0]
	require.Len(t, op.Params, 1)
	require.NotNil(t, op.Params[0].Spread)
	assert.Equal(t, "CreateBody", op.Params[0].Spread.Name)
}

func TestParseVoidReturnDefault(t *testing.T) {
	file, err := Parse(`interface Things { ping() }`)
	require.NoError(t, err)
	op := file.Declarations[0].Interface.Operations[0]
	assert.Equal(t, ast.TypeNamed, op.Return.Kind)
	assert.Equal(t, "void", op.Return.Name)
}

func TestParseIntersectionFoldsToAnonymousSpread(t *testing.T) {
	file, err := Parse(`alias Combined = A & B`)
	require.NoError(t, err)
	a := file.Declarations[0].Alias
	require.Equal(t, ast.TypeAnonymous, a.Type.Kind)
	require.Len(t, a.Type.AnonModel.SpreadRefs, 2)
	assert.Equal(t, "A", a.Type.AnonModel.SpreadRefs[0].Name)
	assert.Equal(t, "B", a.Type.AnonModel.SpreadRefs[1].Name)
}

func TestParseUnionInlineType(t *testing.T) {
	file, err := Parse(`alias Mixed = string | int32 | boolean`)
	require.NoError(t, err)
	a := file.Declarations[0].Alias
	require.Equal(t, ast.TypeUnionInline, a.Type.Kind)
	require.Len(t, a.Type.UnionMembers, 3)
}

func TestParseGenericTypeArgs(t *testing.T) {
	file, err := Parse(`alias Page = PagedResult<User>`)
	require.NoError(t, err)
	a := file.Declarations[0].Alias
	require.Equal(t, ast.TypeGeneric, a.Type.Kind)
	assert.Equal(t, "PagedResult", a.Type.Name)
	require.Len(t, a.Type.TypeArgs, 1)
	assert.Equal(t, "User", a.Type.TypeArgs[0].Name)
}

func TestParseAnonymousModelType(t *testing.T) {
	file, err := Parse(`alias Point = { x: float64, y: float64 }`)
	require.NoError(t, err)
	a := file.Declarations[0].Alias
	require.Equal(t, ast.TypeAnonymous, a.Type.Kind)
	require.Len(t, a.Type.AnonModel.Properties, 2)
}

func TestParseNamespaceRestrictsNestedKinds(t *testing.T) {
	file, err := Parse(`
namespace Api {
  model Widget { id: string }
  interface Widgets { list(): Widget[] }
}
`)
	require.NoError(t, err)
	ns := file.Declarations[0].Namespace
	assert.Equal(t, "Api", ns.Name)
	require.Len(t, ns.Declarations, 2)

	_, err = Parse(`namespace Api { union Shape { string } }`)
	require.Error(t, err)
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	_, err := Parse(`model {`)
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
}

func TestParseScalarExtends(t *testing.T) {
	file, err := Parse(`scalar UserId extends string`)
	require.NoError(t, err)
	s := file.Declarations[0].Scalar
	assert.Equal(t, "UserId", s.Name)
	assert.Equal(t, "string", s.Extends)
}
