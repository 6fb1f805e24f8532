// Package emit defines the shared emitter contract: every target package
// (python, typescript, rust, openapi) implements Emit and returns its
// artifacts as in-memory OutputFiles, never touching disk itself, so the
// driver can buffer every emitter's output before flushing.
package emit

import (
	"fmt"

	"github.com/adi-family/tsp-gen/internal/ast"
	emitmodel "github.com/adi-family/tsp-gen/internal/emit/model"
)

type Side int

const (
	SideClient Side = iota
	SideServer
	SideBoth
)

func (s Side) WantsClient() bool { return s == SideClient || s == SideBoth }
func (s Side) WantsServer() bool { return s == SideServer || s == SideBoth }

type Options struct {
	PackageName string
	Side        Side
}

// OutputFile is one emitted artifact, relative to the driver's output
// directory, buffered in memory until every requested emitter succeeds.
type OutputFile struct {
	RelPath string
	Data    []byte
}

// Error reports a construct an emitter could not lower for its target.
type Error struct {
	Target  string
	Span    ast.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s [%d:%d]", e.Target, e.Message, e.Span.Start, e.Span.End)
}

// Emitter is implemented by each target language package.
type Emitter interface {
	Emit(file *emitmodel.File, opt Options) ([]OutputFile, error)
}
