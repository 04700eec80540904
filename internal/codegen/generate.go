package codegen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/ctxlog"
	"github.com/specialistvlad/computedgen/internal/model"
)

// Header is the first line of every generated file.
const Header = "// Code generated by computedgen. DO NOT EDIT."

// Generate renders the accessors for every plan of file as one formatted Go
// source file. Diagnostics are returned for defaults that cannot be written
// as Go literals; any error means no output.
func Generate(ctx context.Context, file *model.File, plans []*model.Plan) ([]byte, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	g := &generator{
		imports: make(map[string]model.Import, len(file.Imports)),
		used:    make(map[string]struct{}),
		unknown: make(map[string]struct{}),
	}
	for _, imp := range file.Imports {
		g.imports[imp.Name] = imp
	}

	view := fileView{
		Header:  Header,
		Source:  filepath.ToSlash(filepath.Base(file.Path)),
		Package: file.Package,
	}
	for _, plan := range plans {
		view.Structs = append(view.Structs, g.structure(plan))
	}
	if g.diags.HasErrors() {
		return nil, g.diags
	}
	view.Imports = g.usedImports()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "file", view); err != nil {
		return nil, internalError(file.Path, err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		logger.Debug("Unformatted output.", "source", buf.String())
		return nil, internalError(file.Path, err)
	}

	logger.Debug("Generated accessors.", "structs", len(plans), "imports", len(view.Imports))
	return out, g.diags
}

func internalError(path string, err error) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Failed to render generated code",
		Detail:   fmt.Sprintf("Generating code for %s failed: %s.", path, err),
	}}
}

type fileView struct {
	Header  string
	Source  string
	Package string
	Imports []model.Import
	Structs []structView
}

type structView struct {
	Name        string
	Recv        string
	Declare     bool
	Fields      []fieldView
	Constructor *constructorView
	Methods     []methodView
	Targets     []fieldView
	Cells       []fieldView
}

type fieldView struct {
	Name  string
	Field string
	Type  string
}

type constructorView struct {
	Name   string
	Params []fieldView
	Inits  []initView
}

type initView struct {
	Field string
	Value string
}

type methodView struct {
	Kind        string
	Name        string
	Field       string
	Type        string
	Param       string
	Invalidates string
	Func        string
	Args        []string
}

type generator struct {
	imports map[string]model.Import
	used    map[string]struct{}
	unknown map[string]struct{}
	diags   hcl.Diagnostics
}

func (g *generator) structure(plan *model.Plan) structView {
	s := plan.Struct
	sv := structView{
		Name:    s.Name,
		Recv:    receiverName(plan),
		Declare: s.Declare,
	}

	if s.Declare {
		for _, f := range s.Fields {
			g.useType(f, f.Type)
			sv.Fields = append(sv.Fields, fieldView{Name: f.Name, Type: f.Type})
		}
	}
	if s.Constructor {
		sv.Constructor = g.constructor(plan)
	}

	targets := make(map[string]struct{})
	for _, m := range plan.Members() {
		switch {
		case m.Plain != nil:
			sv.Methods = append(sv.Methods, g.plain(m.Plain, sv.Recv)...)
			if t := m.Plain.Invalidates; t != nil && !t.Attrs.IsComputed() {
				if _, ok := targets[t.Name]; !ok {
					targets[t.Name] = struct{}{}
					sv.Targets = append(sv.Targets, fieldView{Field: t.Name})
				}
			}
		case m.Computed != nil:
			sv.Methods = append(sv.Methods, g.computed(m.Computed))
			sv.Cells = append(sv.Cells, fieldView{Field: m.Computed.Name, Type: m.Computed.ValueType})
		}
	}
	return sv
}

func (g *generator) plain(f *model.PlainField, recv string) []methodView {
	var out []methodView
	if f.Get || f.Set {
		g.useType(f.Field, f.Type)
	}
	if f.Get {
		out = append(out, methodView{
			Kind:  "get",
			Name:  model.GetterName(f.Name),
			Field: f.Name,
			Type:  f.Type,
		})
	}
	if f.Set {
		m := methodView{
			Kind:  "set",
			Name:  model.SetterName(f.Name),
			Field: f.Name,
			Type:  f.Type,
			Param: f.Name,
		}
		if m.Param == recv {
			m.Param = "value"
		}
		if f.Invalidates != nil {
			m.Invalidates = f.Invalidates.Name
		}
		out = append(out, m)
	}
	return out
}

func (g *generator) computed(f *model.ComputedField) methodView {
	g.useType(f.Field, f.ValueType)
	if root, _, ok := strings.Cut(f.Func, "."); ok {
		g.use(root)
	}

	args := make([]string, 0, len(f.Deps))
	for _, dep := range f.Deps {
		args = append(args, dep.Name)
	}
	return methodView{
		Kind:  "compute",
		Name:  model.ComputeName(f.Name),
		Field: f.Name,
		Type:  f.ValueType,
		Func:  f.Func,
		Args:  args,
	}
}

// constructor takes every plain field without a default as a parameter.
// Computed cells are left at their zero value, which is the empty state.
func (g *generator) constructor(plan *model.Plan) *constructorView {
	cv := &constructorView{Name: model.ConstructorName(plan.Struct.Name)}
	for _, f := range plan.Plain {
		g.useType(f.Field, f.Type)
		if !f.HasDefault() {
			cv.Params = append(cv.Params, fieldView{Name: f.Name, Type: f.Type})
			cv.Inits = append(cv.Inits, initView{Field: f.Name, Value: f.Name})
			continue
		}

		lit, err := Literal(f.Default, f.Type)
		if err != nil {
			g.diags = append(g.diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported default value",
				Detail:   fmt.Sprintf("The default for field %q cannot be written as a Go %s: %s.", f.Name, f.Type, err),
				Subject:  f.DefaultRange.Ptr(),
			})
			continue
		}
		cv.Inits = append(cv.Inits, initView{Field: f.Name, Value: lit})
	}
	return cv
}

// useType records the package qualifiers of a type expression of field. A
// qualifier that matches no import of the input is an error.
func (g *generator) useType(field *model.Field, typ string) {
	expr, err := model.ParseType(typ)
	if err != nil {
		return
	}
	for _, q := range model.Qualifiers(expr) {
		if _, ok := g.imports[q]; ok {
			g.used[q] = struct{}{}
			continue
		}
		key := field.Name + "." + q
		if _, ok := g.unknown[key]; ok {
			continue
		}
		g.unknown[key] = struct{}{}
		g.diags = append(g.diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown package qualifier",
			Detail: fmt.Sprintf("The type %s of field %q refers to package %q, which matches no import. "+
				"Import the package with an explicit name.", typ, field.Name, q),
			Subject: field.TypeRange.Ptr(),
		})
	}
}

// use records a qualifier. Names that are not imports, such as a type in the
// same package used in a method expression, are ignored.
func (g *generator) use(name string) {
	if _, ok := g.imports[name]; ok {
		g.used[name] = struct{}{}
	}
}

func (g *generator) usedImports() []model.Import {
	out := make([]model.Import, 0, len(g.used))
	for name := range g.used {
		out = append(out, g.imports[name])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

const fallbackReceiver = "recv"

// receiverName is the lower-cased first letter of the struct name unless that
// is not a letter or a computing function or cell type refers to a package or
// function of the same name.
func receiverName(plan *model.Plan) string {
	r, _ := utf8.DecodeRuneInString(plan.Struct.Name)
	if !unicode.IsLetter(r) {
		return fallbackReceiver
	}
	name := string(unicode.ToLower(r))
	for _, c := range plan.Computed {
		if root, _, _ := strings.Cut(c.Func, "."); root == name {
			return fallbackReceiver
		}
		if expr, err := model.ParseType(c.ValueType); err == nil && slices.Contains(model.Qualifiers(expr), name) {
			return fallbackReceiver
		}
	}
	return name
}
