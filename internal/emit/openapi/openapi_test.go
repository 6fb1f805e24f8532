package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adi-family/tsp-gen/internal/emit"
	"github.com/adi-family/tsp-gen/internal/emit/model"
	"github.com/adi-family/tsp-gen/internal/parser"
)

func buildFile(t *testing.T, src string) *model.File {
	t.Helper()
	f, err := parser.Parse(src)
	require.NoError(t, err)
	resolved, err := model.Build(f)
	require.NoError(t, err)
	return resolved
}

func contentOf(outputs []emit.OutputFile, relPath string) []byte {
	for _, o := range outputs {
		if o.RelPath == relPath {
			return o.Data
		}
	}
	return nil
}

func TestOpenAPIEmitProducesJSONAndYAML(t *testing.T) {
	resolved := buildFile(t, `
model User { id: string, name: string }
@route("/users")
interface Users {
  @get
  get(id: string): User
}
`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "widgets"})
	require.NoError(t, err)

	var paths []string
	for _, o := range outputs {
		paths = append(paths, o.RelPath)
	}
	assert.ElementsMatch(t, []string{"openapi.json", "openapi.yaml"}, paths)
}

func TestOpenAPIDocumentIsValidJSONWithExpectedShape(t *testing.T) {
	resolved := buildFile(t, `
model User { id: string, name: string }
@route("/users")
interface Users {
  @get
  get(id: string): User
  @post
  create(body: User): User
}
`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "widgets"})
	require.NoError(t, err)

	jsonBytes := contentOf(outputs, "openapi.json")
	require.NotEmpty(t, jsonBytes)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &doc))
	assert.Equal(t, "3.0.3", doc["openapi"])

	components := doc["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	assert.Contains(t, schemas, "User")

	paths := doc["paths"].(map[string]any)
	usersPath := paths["/users/{id}"].(map[string]any)
	assert.Contains(t, usersPath, "get")

	rootPath := paths["/users"].(map[string]any)
	assert.Contains(t, rootPath, "post")
}

func TestOpenAPIOperationIDFormula(t *testing.T) {
	resolved := buildFile(t, `
interface U {
  @get
  get(): void
}
`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api"})
	require.NoError(t, err)
	jsonBytes := contentOf(outputs, "openapi.json")
	require.NotEmpty(t, jsonBytes)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &doc))
	paths := doc["paths"].(map[string]any)
	root := paths["/"].(map[string]any)
	get := root["get"].(map[string]any)
	assert.Equal(t, "u_get", get["operationId"])
}

func TestOpenAPISpreadModelRendersAllOf(t *testing.T) {
	resolved := buildFile(t, `
model Timestamps { createdAt: string }
model User {
  ...Timestamps
  id: string
}
`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api"})
	require.NoError(t, err)
	jsonBytes := contentOf(outputs, "openapi.json")
	require.NotEmpty(t, jsonBytes)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &doc))
	components := doc["components"].(map[string]any)
	schemas := components["schemas"].(map[string]any)
	user := schemas["User"].(map[string]any)
	allOf, ok := user["allOf"].([]any)
	require.True(t, ok)
	assert.Len(t, allOf, 2)
}

func TestOpenAPIDeterministicKeyOrderAcrossRuns(t *testing.T) {
	resolved := buildFile(t, `
model Zebra { z: string }
model Apple { a: string }
`)
	first, err := Target{}.Emit(resolved, emit.Options{PackageName: "api"})
	require.NoError(t, err)
	second, err := Target{}.Emit(resolved, emit.Options{PackageName: "api"})
	require.NoError(t, err)

	assert.Equal(t, contentOf(first, "openapi.json"), contentOf(second, "openapi.json"))
	assert.Equal(t, contentOf(first, "openapi.yaml"), contentOf(second, "openapi.yaml"))
}
