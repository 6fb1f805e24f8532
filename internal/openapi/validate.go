package openapi

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateBytes parses and validates an OpenAPI document already held in
// memory, for round-trip-checking documents this module itself generates
// rather than ones read from a CLI-supplied path.
func ValidateBytes(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated OpenAPI document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("generated OpenAPI document failed validation: %w", err)
	}
	return doc, nil
}
