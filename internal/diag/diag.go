// Package diag formats stage errors into the single-line diagnostics the
// driver reports at the top level, and wraps them across stage boundaries.
package diag

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/adi-family/tsp-gen/internal/ast"
)

// Wrap annotates err with a stage label as it crosses a pipeline boundary,
// preserving the original error for errors.As/errors.Is.
func Wrap(err error, stage string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s", stage)
}

// Format renders a single-line diagnostic for a span-bearing error.
func Format(stage string, span ast.Span, message string) string {
	return fmt.Sprintf("%s: %s [%d:%d]", stage, message, span.Start, span.End)
}
