// Package typescript emits models.ts, client.ts, server.ts, and index.ts.
package typescript

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/adi-family/tsp-gen/internal/ast"
	"github.com/adi-family/tsp-gen/internal/emit"
	"github.com/adi-family/tsp-gen/internal/emit/model"
	"github.com/adi-family/tsp-gen/internal/emit/naming"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

type Field struct {
	Key      string // already quote-sanitized for object/interface position
	Optional bool
	Type     string
}

type Model struct {
	Name   string
	Fields []Field
}

// Enum renders either as a string-literal union type (implicit values) or a
// const-object-equivalent (explicit values), selected by HasExplicitValues.
type Enum struct {
	Name              string
	HasExplicitValues bool
	Members           []EnumMember
}

type EnumMember struct {
	Name  string
	Value string // quoted string literal
}

type Union struct {
	Name string
	Type string
}

type Param struct {
	Name string
	Type string
}

type Operation struct {
	Name        string
	MethodVerb  string
	PathExpr    string // template-literal body using ${name} substitution
	RawPath     string
	PathParams  []Param
	QueryParams []Param
	BodyParam   *Param
	AllParams   []Param
	ReturnType  string
	HasReturn   bool
}

type Interface struct {
	Name       string
	ClassName  string
	AttrName   string
	Operations []Operation
}

type TemplateData struct {
	Package    string
	Models     []Model
	Enums      []Enum
	Unions     []Union
	Interfaces []Interface
}

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
	for _, a := range file.Aliases {
		known[a.Name] = true
	}
	isKnown := func(name string) bool { return known[name] }

	data := TemplateData{Package: opt.PackageName}

	for _, m := range file.Models {
		tm := Model{Name: m.Name}
		for _, f := range m.Fields {
			tm.Fields = append(tm.Fields, Field{
				Key:      propKey(f.Name),
				Optional: f.Optional,
				Type:     tsType(f.Type, isKnown),
			})
		}
		data.Models = append(data.Models, tm)
	}

	for _, e := range file.Enums {
		te := Enum{Name: e.Name}
		for _, mem := range e.Members {
			if mem.Value != nil {
				te.HasExplicitValues = true
			}
		}
		for _, mem := range e.Members {
			value := mem.Name
			if mem.Value != nil && mem.Value.Kind == ast.ValString {
				value = mem.Value.Str
			}
			te.Members = append(te.Members, EnumMember{
				Name:  naming.PascalCase(mem.Name),
				Value: fmt.Sprintf("%q", value),
			})
		}
		data.Enums = append(data.Enums, te)
	}

	for _, u := range file.Unions {
		var parts []string
		for _, v := range u.Variants {
			parts = append(parts, tsType(v.Type, isKnown))
		}
		data.Unions = append(data.Unions, Union{Name: u.Name, Type: joinStrs(dedupStrs(parts), " | ")})
	}

	for _, ri := range file.Interfaces {
		ti := Interface{Name: ri.Name, ClassName: ri.Name + "Client", AttrName: naming.CamelCase(ri.Name)}
		for _, op := range ri.Operations {
			top := Operation{
				Name:       naming.CamelCase(op.Name),
				MethodVerb: string(op.Verb),
				ReturnType: tsType(op.Return, isKnown),
				RawPath:    op.Path,
			}
			top.HasReturn = !isVoid(op.Return)
			pathExpr := op.Path
			for _, p := range op.Bindings {
				pp := Param{Name: naming.CamelCase(p.Name), Type: tsType(p.Type, isKnown)}
				top.AllParams = append(top.AllParams, pp)
				switch p.Binding {
				case "path":
					top.PathParams = append(top.PathParams, pp)
					pathExpr = strings.ReplaceAll(pathExpr, "{"+p.Name+"}", "${"+pp.Name+"}")
				case "query":
					top.QueryParams = append(top.QueryParams, pp)
				case "body":
					bp := pp
					top.BodyParam = &bp
				}
			}
			top.PathExpr = pathExpr
			ti.Operations = append(ti.Operations, top)
		}
		data.Interfaces = append(data.Interfaces, ti)
	}

	var outputs []emit.OutputFile

	modelsBytes, err := render("models.ts.tpl", data)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, emit.OutputFile{RelPath: "models.ts", Data: modelsBytes})

	indexBytes, err := render("index.ts.tpl", data)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, emit.OutputFile{RelPath: "index.ts", Data: indexBytes})

	if opt.Side == emit.SideClient || opt.Side == emit.SideBoth {
		clientBytes, err := render("client.ts.tpl", data)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, emit.OutputFile{RelPath: "client.ts", Data: clientBytes})
	}
	if opt.Side == emit.SideServer || opt.Side == emit.SideBoth {
		serverBytes, err := render("server.ts.tpl", data)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, emit.OutputFile{RelPath: "server.ts", Data: serverBytes})
	}

	return outputs, nil
}

func isVoid(t ast.TypeRef) bool {
	return t.Kind == ast.TypeNamed && (t.Name == "void" || t.Name == "never" || t.Name == "null")
}

func render(tplName string, data TemplateData) ([]byte, error) {
	text, err := templatesFS.ReadFile("templates/" + tplName)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", tplName, err)
	}
	tpl, err := template.New(tplName).Parse(string(text))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", tplName, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("exec template %s: %w", tplName, err)
	}
	return buf.Bytes(), nil
}
