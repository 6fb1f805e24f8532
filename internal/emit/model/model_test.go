package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adi-family/tsp-gen/internal/parser"
	"github.com/adi-family/tsp-gen/internal/route"
)

func TestBuildResolvesModelFieldsAndInterfaceRoutes(t *testing.T) {
	src := `
model Timestamps {
  createdAt: string
}
model User {
  ...Timestamps
  id: string
  name: string
}
@route("/users")
interface Users {
  @get
  get(id: string): User
  @post
  create(body: User): User
}
`
	file, err := parser.Parse(src)
	require.NoError(t, err)

	resolved, err := Build(file)
	require.NoError(t, err)

	require.Len(t, resolved.Models, 2)
	user := resolved.Models[1]
	var names []string
	for _, f := range user.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"createdAt", "id", "name"}, names)

	require.Len(t, resolved.Interfaces, 1)
	iface := resolved.Interfaces[0]
	assert.Equal(t, "/users", iface.Route)
	require.Len(t, iface.Operations, 2)
	assert.Equal(t, route.GET, iface.Operations[0].Verb)
	assert.Equal(t, "/users/{id}", iface.Operations[0].Path)
	assert.Equal(t, route.POST, iface.Operations[1].Verb)
}

func TestBuildExpandsSpreadParamsBeforeRouteResolve(t *testing.T) {
	src := `
model CreateUserBody {
  name: string
  age: int32
}
interface Users {
  @post
  create(...CreateUserBody): void
}
`
	file, err := parser.Parse(src)
	require.NoError(t, err)

	resolved, err := Build(file)
	require.NoError(t, err)

	op := resolved.Interfaces[0].Operations[0]
	require.Len(t, op.Bindings, 2)
	var names []string
	for _, b := range op.Bindings {
		names = append(names, b.Name)
	}
	assert.ElementsMatch(t, []string{"name", "age"}, names)
}

func TestBuildWalksNestedNamespaces(t *testing.T) {
	src := `
namespace Api {
  model Widget { id: string }
  interface Widgets {
    list(): Widget[]
  }
}
`
	file, err := parser.Parse(src)
	require.NoError(t, err)
	resolved, err := Build(file)
	require.NoError(t, err)
	require.Len(t, resolved.Models, 1)
	require.Len(t, resolved.Interfaces, 1)
}
