// Package python emits a Python package: __init__.py, models.py, and
// client.py / server.py gated by the requested side.
package python

import (
	"bytes"
	"embed"
	"fmt"
	"path"
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
	WireName string
	PyName   string
	Type     string
	Optional bool
}

type Model struct {
	Name   string
	Fields []Field
}

type EnumMember struct {
	Name  string
	Value string
}

type Enum struct {
	Name    string
	Members []EnumMember
}

type Union struct {
	Name    string
	PyType  string
}

type Param struct {
	Name string
	Type string
}

type Operation struct {
	Name        string
	MethodVerb  string
	PathExpr    string // f-string body, placeholder names rewritten to match Python locals
	RawPath     string // route template with original IDL placeholder names, for server route tables
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
		pm := Model{Name: m.Name}
		for _, f := range m.Fields {
			pm.Fields = append(pm.Fields, Field{
				WireName: f.Name,
				PyName:   naming.SuffixIfReserved(naming.SnakeCase(f.Name), naming.PythonReserved),
				Type:     pyType(f.Type, isKnown),
				Optional: f.Optional,
			})
		}
		data.Models = append(data.Models, pm)
	}

	for _, e := range file.Enums {
		pe := Enum{Name: e.Name}
		for _, mem := range e.Members {
			value := mem.Name
			if mem.Value != nil && mem.Value.Kind == ast.ValString {
				value = mem.Value.Str
			}
			pe.Members = append(pe.Members, EnumMember{
				Name:  naming.ScreamingSnakeCase(mem.Name),
				Value: value,
			})
		}
		data.Enums = append(data.Enums, pe)
	}

	for _, u := range file.Unions {
		var parts []string
		for _, v := range u.Variants {
			parts = append(parts, pyType(v.Type, isKnown))
		}
		data.Unions = append(data.Unions, Union{Name: u.Name, PyType: joinStrs(dedupStrs(parts))})
	}

	for _, ri := range file.Interfaces {
		pi := Interface{Name: ri.Name, ClassName: ri.Name + "Client", AttrName: naming.SnakeCase(ri.Name)}
		for _, op := range ri.Operations {
			pop := Operation{
				Name:       naming.SnakeCase(op.Name),
				MethodVerb: string(op.Verb),
				ReturnType: pyType(op.Return, isKnown),
			}
			pop.HasReturn = !isVoid(op.Return)
			pop.RawPath = op.Path
			pathExpr := op.Path
			for _, p := range op.Bindings {
				pp := Param{Name: naming.SnakeCase(p.Name), Type: pyType(p.Type, isKnown)}
				pop.AllParams = append(pop.AllParams, pp)
				switch p.Binding {
				case "path":
					pop.PathParams = append(pop.PathParams, pp)
					pathExpr = replacePlaceholder(pathExpr, p.Name, pp.Name)
				case "query":
					pop.QueryParams = append(pop.QueryParams, pp)
				case "body":
					bp := pp
					pop.BodyParam = &bp
				}
			}
			pop.PathExpr = pathExpr
			pi.Operations = append(pi.Operations, pop)
		}
		data.Interfaces = append(data.Interfaces, pi)
	}

	var outputs []emit.OutputFile

	modelsBytes, err := render("models.py.tpl", data)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, emit.OutputFile{RelPath: path.Join(opt.PackageName, "models.py"), Data: modelsBytes})

	initBytes, err := render("init.py.tpl", data)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, emit.OutputFile{RelPath: path.Join(opt.PackageName, "__init__.py"), Data: initBytes})

	if opt.Side == emit.SideClient || opt.Side == emit.SideBoth {
		clientBytes, err := render("client.py.tpl", data)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, emit.OutputFile{RelPath: path.Join(opt.PackageName, "client.py"), Data: clientBytes})
	}
	if opt.Side == emit.SideServer || opt.Side == emit.SideBoth {
		serverBytes, err := render("server.py.tpl", data)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, emit.OutputFile{RelPath: path.Join(opt.PackageName, "server.py"), Data: serverBytes})
	}

	return outputs, nil
}

func replacePlaceholder(path, idlName, localName string) string {
	if idlName == localName {
		return path
	}
	return strings.ReplaceAll(path, "{"+idlName+"}", "{"+localName+"}")
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
