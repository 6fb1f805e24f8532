// Package rust emits a Cargo source tree: lib.rs, models.rs, and
// client.rs / server.rs gated by the requested side, plus a manifest.
package rust

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
	WireName string
	RsName   string
	Renamed  bool // true when RsName != WireName and needs #[serde(rename)]
	Type     string
	Optional bool
}

type Model struct {
	Name   string
	Fields []Field
}

type EnumMember struct {
	RsName   string
	WireName string
}

type Enum struct {
	Name    string
	Members []EnumMember
}

type Union struct {
	Name    string
	Members []UnionMember
}

type UnionMember struct {
	VariantName string
	Type        string
}

type Param struct {
	Name string
	Type string
	// IsComplex is true when Type has no Display impl (model structs, unions,
	// anonymous/array/tuple shapes) and must be query-serialized as a whole
	// serde value rather than via .to_string().
	IsComplex bool
}

type Operation struct {
	Name        string
	MethodVerb  string
	PathExpr    string // format! template using {name} placeholders matching Rust locals
	RawPath     string
	PathParams  []Param
	QueryParams []Param
	BodyParam   *Param
	AllParams   []Param
	ReturnType  string
	HasReturn   bool
}

type Interface struct {
	Name        string
	ClientName  string
	TraitName   string
	AttrName    string
	Operations  []Operation
}

type TemplateData struct {
	Package       string
	CrateName     string
	Models        []Model
	Enums         []Enum
	Unions        []Union
	Interfaces    []Interface
	WantsClient   bool
	WantsServer   bool
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

	models := map[string]bool{}
	for _, m := range file.Models {
		models[m.Name] = true
	}
	unions := map[string]bool{}
	for _, u := range file.Unions {
		unions[u.Name] = true
	}
	// isDisplayable reports whether a query parameter of this IDL type can be
	// serialized with .to_string() (the generated type derives no Display
	// impl for models, unions, or array/tuple/anonymous shapes).
	isDisplayable := func(t ast.TypeRef) bool {
		switch t.Kind {
		case ast.TypeNamed:
			return !models[t.Name] && !unions[t.Name]
		case ast.TypeGeneric, ast.TypeArray, ast.TypeTuple, ast.TypeAnonymous, ast.TypeUnionInline:
			return false
		default:
			return true
		}
	}

	data := TemplateData{
		Package:     opt.PackageName,
		CrateName:   strings.ReplaceAll(naming.SnakeCase(opt.PackageName), "_", "-"),
		WantsClient: opt.Side == emit.SideClient || opt.Side == emit.SideBoth,
		WantsServer: opt.Side == emit.SideServer || opt.Side == emit.SideBoth,
	}

	for _, m := range file.Models {
		rm := Model{Name: m.Name}
		for _, f := range m.Fields {
			rsName := naming.SuffixIfReserved(naming.SnakeCase(f.Name), naming.RustReserved)
			rm.Fields = append(rm.Fields, Field{
				WireName: f.Name,
				RsName:   rsName,
				Renamed:  rsName != f.Name,
				Type:     rsType(f.Type, isKnown),
				Optional: f.Optional,
			})
		}
		data.Models = append(data.Models, rm)
	}

	for _, e := range file.Enums {
		re := Enum{Name: e.Name}
		for _, mem := range e.Members {
			wire := mem.Name
			if mem.Value != nil && mem.Value.Kind == ast.ValString {
				wire = mem.Value.Str
			}
			re.Members = append(re.Members, EnumMember{RsName: naming.PascalCase(mem.Name), WireName: wire})
		}
		data.Enums = append(data.Enums, re)
	}

	for _, u := range file.Unions {
		ru := Union{Name: u.Name}
		for i, v := range u.Variants {
			variantName := v.Name
			if variantName == "" {
				variantName = fmt.Sprintf("Variant%d", i)
			}
			ru.Members = append(ru.Members, UnionMember{
				VariantName: naming.PascalCase(variantName),
				Type:        rsType(v.Type, isKnown),
			})
		}
		data.Unions = append(data.Unions, ru)
	}

	for _, ri := range file.Interfaces {
		rif := Interface{
			Name:       ri.Name,
			ClientName: ri.Name + "Client",
			TraitName:  ri.Name + "Server",
			AttrName:   naming.SnakeCase(ri.Name),
		}
		for _, op := range ri.Operations {
			rop := Operation{
				Name:       naming.SnakeCase(op.Name),
				MethodVerb: string(op.Verb),
				ReturnType: rsType(op.Return, isKnown),
				RawPath:    op.Path,
			}
			rop.HasReturn = !isVoid(op.Return)
			pathExpr := op.Path
			for _, p := range op.Bindings {
				pp := Param{Name: naming.SuffixIfReserved(naming.SnakeCase(p.Name), naming.RustReserved), Type: rsType(p.Type, isKnown)}
				rop.AllParams = append(rop.AllParams, pp)
				switch p.Binding {
				case "path":
					rop.PathParams = append(rop.PathParams, pp)
					pathExpr = strings.ReplaceAll(pathExpr, "{"+p.Name+"}", "{"+pp.Name+"}")
				case "query":
					qp := pp
					qp.IsComplex = !isDisplayable(p.Type)
					rop.QueryParams = append(rop.QueryParams, qp)
				case "body":
					bp := pp
					rop.BodyParam = &bp
				}
			}
			rop.PathExpr = pathExpr
			rif.Operations = append(rif.Operations, rop)
		}
		data.Interfaces = append(data.Interfaces, rif)
	}

	var outputs []emit.OutputFile

	manifestBytes, err := render("Cargo.toml.tpl", data)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, emit.OutputFile{RelPath: "Cargo.toml", Data: manifestBytes})

	modelsBytes, err := render("models.rs.tpl", data)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, emit.OutputFile{RelPath: fmt.Sprintf("src/%s", "models.rs"), Data: modelsBytes})

	libBytes, err := render("lib.rs.tpl", data)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, emit.OutputFile{RelPath: "src/lib.rs", Data: libBytes})

	if data.WantsClient {
		clientBytes, err := render("client.rs.tpl", data)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, emit.OutputFile{RelPath: "src/client.rs", Data: clientBytes})
	}
	if data.WantsServer {
		serverBytes, err := render("server.rs.tpl", data)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, emit.OutputFile{RelPath: "src/server.rs", Data: serverBytes})
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
