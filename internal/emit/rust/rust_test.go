package rust

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

func contentOf(outputs []emit.OutputFile, relPath string) string {
	for _, o := range outputs {
		if o.RelPath == relPath {
			return string(o.Data)
		}
	}
	return ""
}

func TestRustEmitAlwaysProducesManifestAndModels(t *testing.T) {
	resolved := buildFile(t, `model User { id: string }`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "widget-api", Side: emit.SideClient})
	require.NoError(t, err)

	var paths []string
	for _, o := range outputs {
		paths = append(paths, o.RelPath)
	}
	assert.Contains(t, paths, "Cargo.toml")
	assert.Contains(t, paths, "src/models.rs")
	assert.Contains(t, paths, "src/lib.rs")
	assert.Contains(t, paths, "src/client.rs")
	assert.NotContains(t, paths, "src/server.rs")
}

func TestRustReservedFieldNameGetsUnderscoreSuffixAndRenameAttr(t *testing.T) {
	resolved := buildFile(t, `model Item { type: string }`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api", Side: emit.SideBoth})
	require.NoError(t, err)

	modelsRs := contentOf(outputs, "src/models.rs")
	require.NotEmpty(t, modelsRs)
	assert.Contains(t, modelsRs, "type_")
	assert.Contains(t, modelsRs, `#[serde(rename = "type")]`)
}

func TestRustCargoManifestIncludesTransportDepsBySide(t *testing.T) {
	resolved := buildFile(t, `model User { id: string }`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api", Side: emit.SideServer})
	require.NoError(t, err)

	cargo := contentOf(outputs, "Cargo.toml")
	require.NotEmpty(t, cargo)
	assert.Contains(t, cargo, "axum")
	assert.NotContains(t, cargo, "reqwest")
}

func TestRustStructQueryParamSerializesAsWholeValueNotToString(t *testing.T) {
	resolved := buildFile(t, `
model Filter { status: string; limit: int32 }
interface Items {
  @get
  list(filter: Filter, id: string): string
}
`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "api", Side: emit.SideClient})
	require.NoError(t, err)

	clientRs := contentOf(outputs, "src/client.rs")
	require.NotEmpty(t, clientRs)
	assert.Contains(t, clientRs, "builder.query(&filter)")
	assert.NotContains(t, clientRs, "filter.to_string()")
	assert.Contains(t, clientRs, `("id", id.to_string())`)
}

func TestRustCrateNameUsesHyphensNotUnderscores(t *testing.T) {
	resolved := buildFile(t, `model User { id: string }`)
	outputs, err := Target{}.Emit(resolved, emit.Options{PackageName: "widget_api", Side: emit.SideClient})
	require.NoError(t, err)

	cargo := contentOf(outputs, "Cargo.toml")
	require.NotEmpty(t, cargo)
	assert.Contains(t, cargo, "widget-api")
}
