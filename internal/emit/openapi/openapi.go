// Package openapi emits a single OpenAPI 3.0 document as both openapi.json
// and openapi.yaml, built over a shared in-memory representation so both
// serializations describe byte-for-byte the same document.
package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adi-family/tsp-gen/internal/ast"
	"github.com/adi-family/tsp-gen/internal/emit"
	"github.com/adi-family/tsp-gen/internal/emit/model"
	"github.com/adi-family/tsp-gen/internal/emit/naming"
	tspopenapi "github.com/adi-family/tsp-gen/internal/openapi"
	"github.com/adi-family/tsp-gen/internal/route"
)

type Target struct{}

func (Target) Emit(file *model.File, opt emit.Options) ([]emit.OutputFile, error) {
	known := map[string]bool{}
	for _, m := range file.Models {
		known[m.Name] = true
	}
	for _, e := range file.Enums {
		known[e.Name] = true
	}
	for _, u := range file.Unions {
		known[u.Name] = true
	}
	for _, s := range file.Scalars {
		known[s.Name] = true
	}
	for _, a := range file.Aliases {
		known[a.Name] = true
	}
	isKnown := func(name string) bool { return known[name] }

	doc := newOrderedMap()
	doc.Set("openapi", "3.0.3")

	info := newOrderedMap()
	info.Set("title", opt.PackageName)
	info.Set("version", "0.1.0")
	doc.Set("info", info)

	schemas := newOrderedMap()
	for _, m := range file.Models {
		schemas.Set(m.Name, modelSchema(m.Model, isKnown))
	}
	for _, e := range file.Enums {
		schemas.Set(e.Name, enumSchema(e.Members))
	}
	for _, u := range file.Unions {
		schemas.Set(u.Name, unionSchema(u.Variants, isKnown))
	}
	for _, s := range file.Scalars {
		schemas.Set(s.Name, scalarSchema(s))
	}
	for _, a := range file.Aliases {
		schemas.Set(a.Name, aliasSchema(a, isKnown))
	}
	components := newOrderedMap()
	components.Set("schemas", schemas)
	doc.Set("components", components)

	seenOperationIDs := map[string]bool{}
	paths := newOrderedMap()
	for _, ri := range file.Interfaces {
		for _, op := range ri.Operations {
			pathItemAny, _ := paths.values[op.Path]
			pathItem, _ := pathItemAny.(*orderedMap)
			if pathItem == nil {
				pathItem = newOrderedMap()
				paths.Set(op.Path, pathItem)
			}
			opID := operationID(ri.Name, op.Name, seenOperationIDs)
			verbItem, err := buildOperation(ri, op, opID, isKnown)
			if err != nil {
				return nil, err
			}
			pathItem.Set(httpMethodLower(op.Verb), verbItem)
		}
	}
	doc.Set("paths", paths)

	jsonBytes, err := marshalJSONIndent(doc)
	if err != nil {
		return nil, &emit.Error{Target: "openapi", Message: fmt.Sprintf("marshal JSON: %v", err)}
	}
	if _, err := tspopenapi.ValidateBytes(jsonBytes); err != nil {
		return nil, &emit.Error{Target: "openapi", Message: err.Error()}
	}

	yamlBytes, err := yaml.Marshal(doc)
	if err != nil {
		return nil, &emit.Error{Target: "openapi", Message: fmt.Sprintf("marshal YAML: %v", err)}
	}

	return []emit.OutputFile{
		{RelPath: "openapi.json", Data: jsonBytes},
		{RelPath: "openapi.yaml", Data: yamlBytes},
	}, nil
}

func httpMethodLower(v route.Verb) string { return strings.ToLower(string(v)) }

func marshalJSONIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out, nil
}

func operationID(interfaceName, opName string, seen map[string]bool) string {
	base := naming.CamelCase(interfaceName) + "_" + opName
	id := base
	if seen[id] {
		id = base + "_" + naming.CamelCase(interfaceName)
	}
	seen[id] = true
	return id
}

func buildOperation(ri *model.ResolvedInterface, op *model.ResolvedOperation, opID string, isKnown func(name string) bool) (*orderedMap, error) {
	item := newOrderedMap()
	item.Set("operationId", opID)

	var params []any
	for _, b := range op.Bindings {
		if b.Binding == "body" {
			continue
		}
		p := newOrderedMap()
		p.Set("name", b.Name)
		p.Set("in", string(b.Binding))
		p.Set("required", b.Binding == "path" || !b.Optional)
		p.Set("schema", typeRefToSchema(b.Type, isKnown))
		params = append(params, p)
	}
	if len(params) > 0 {
		item.Set("parameters", params)
	}

	if op.BodyParam != nil {
		reqBody := newOrderedMap()
		content := newOrderedMap()
		mediaType := newOrderedMap()
		mediaType.Set("schema", typeRefToSchema(op.BodyParam.Type, isKnown))
		content.Set("application/json", mediaType)
		reqBody.Set("content", content)
		reqBody.Set("required", !op.BodyParam.Optional)
		item.Set("requestBody", reqBody)
	}

	responses := newOrderedMap()
	if isVoidReturn(op.Operation.Return) {
		responses.Set("204", noContentResponse())
	} else {
		responses.Set("200", successResponse(op.Operation.Return, isKnown))
	}
	item.Set("responses", responses)

	return item, nil
}

func isVoidReturn(t ast.TypeRef) bool {
	return t.Kind == ast.TypeNamed && (t.Name == "void" || t.Name == "never" || t.Name == "null")
}

func noContentResponse() *orderedMap {
	r := newOrderedMap()
	r.Set("description", "No Content")
	return r
}

func successResponse(t ast.TypeRef, isKnown func(name string) bool) *orderedMap {
	r := newOrderedMap()
	r.Set("description", "OK")
	content := newOrderedMap()
	mediaType := newOrderedMap()
	mediaType.Set("schema", typeRefToSchema(t, isKnown))
	content.Set("application/json", mediaType)
	r.Set("content", content)
	return r
}
