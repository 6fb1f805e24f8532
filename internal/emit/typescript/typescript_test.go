package typescript

import (
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

func TestTypeScriptEmitAlwaysProducesModelsAndIndex(t *testing.T) {
	resolved := buildFile(t, `model User { id: string }`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api", Side: emit.SideClient})
	require.NoError(t, err)

	var paths []string
	for _, o := range outputs {
		paths = append(paths, o.RelPath)
	}
	assert.Contains(t, paths, "models.ts")
	assert.Contains(t, paths, "index.ts")
	assert.Contains(t, paths, "client.ts")
	assert.NotContains(t, paths, "server.ts")
}

func TestTypeScriptEnumWithExplicitValuesRendersConstObject(t *testing.T) {
	resolved := buildFile(t, `enum Status { active: "active", done: "done" }`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api", Side: emit.SideBoth})
	require.NoError(t, err)

	modelsTs := contentOf(outputs, "models.ts")
	require.NotEmpty(t, modelsTs)
	assert.Contains(t, modelsTs, "as const")
}

func TestTypeScriptEnumWithoutExplicitValuesRendersUnionType(t *testing.T) {
	resolved := buildFile(t, `enum Status { active, done }`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api", Side: emit.SideBoth})
	require.NoError(t, err)

	modelsTs := contentOf(outputs, "models.ts")
	require.NotEmpty(t, modelsTs)
	assert.NotContains(t, modelsTs, "as const")
}

func TestTypeScriptPathParamRenderedAsTemplateLiteral(t *testing.T) {
	resolved := buildFile(t, `
@route("/users")
interface Users {
  @get
  @route("/{userId}")
  get(userId: string): void
}
`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api", Side: emit.SideClient})
	require.NoError(t, err)

	clientTs := contentOf(outputs, "client.ts")
	require.NotEmpty(t, clientTs)
	assert.Contains(t, clientTs, "${userId}")
}

func contentOf(outputs []emit.OutputFile, relPath string) string {
	for _, o := range outputs {
		if o.RelPath == relPath {
			return string(o.Data)
		}
	}
	return ""
}
