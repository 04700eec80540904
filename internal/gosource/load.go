package gosource

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"reflect"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/attr"
	"github.com/specialistvlad/computedgen/internal/diag"
	"github.com/specialistvlad/computedgen/internal/model"
)

const (
	// TagKey is the struct tag key holding a field's annotation.
	TagKey = "computed"
	// Directive selects a type for generation from its doc comment.
	Directive = "computed:generate"
)

// Options controls which types are picked up.
type Options struct {
	// Types restricts generation to the named types. When empty, every
	// struct with a computed tag or a directive is selected.
	Types []string
	// Constructor requests New<Type> functions for every selected type.
	Constructor bool
}

// Load parses one Go file and builds the model of its annotated types.
// Generated files yield an empty model.
func Load(filename string, src []byte, opts Options) (*model.File, hcl.Diagnostics) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return &model.File{Path: filename, Source: src}, syntaxDiags(filename, err)
	}

	out := &model.File{
		Path:    filename,
		Source:  src,
		Package: f.Name.Name,
		Imports: imports(f),
	}
	if ast.IsGenerated(f) {
		return out, nil
	}

	b := &builder{fset: fset, filename: filename, opts: opts}
	wanted := make(map[string]bool, len(opts.Types))
	for _, name := range opts.Types {
		wanted[name] = false
	}

	var diags hcl.Diagnostics
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			directive, constructor := hasDirective(gd, ts)
			if len(wanted) > 0 {
				if _, ok := wanted[ts.Name.Name]; !ok {
					continue
				}
				wanted[ts.Name.Name] = true
			} else if !directive && !hasTaggedField(ts) {
				continue
			}

			s, structDiags := b.structure(ts)
			diags = append(diags, structDiags...)
			if s != nil {
				s.Constructor = s.Constructor || constructor
				out.Structs = append(out.Structs, s)
			}
		}
	}

	for _, name := range opts.Types {
		if !wanted[name] {
			diags = append(diags, diag.Error(diag.TypeNotFound,
				hcl.Range{Filename: filename, Start: hcl.InitialPos, End: hcl.InitialPos},
				"Type not found",
				fmt.Sprintf("No type named %q is declared in this file.", name),
			))
		}
	}
	return out, diags
}

type builder struct {
	fset     *token.FileSet
	filename string
	opts     Options
}

func (b *builder) structure(ts *ast.TypeSpec) (*model.Struct, hcl.Diagnostics) {
	name := ts.Name.Name
	nameRange := b.rng(ts.Name.Pos(), ts.Name.End())

	if ts.Assign.IsValid() {
		return nil, hcl.Diagnostics{diag.Error(diag.UnsupportedShape, b.rng(ts.Type.Pos(), ts.Type.End()),
			"Only structs are supported",
			fmt.Sprintf("%s is a type alias; annotate the aliased struct instead.", name),
		)}
	}
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return nil, hcl.Diagnostics{diag.Error(diag.UnsupportedShape, nameRange,
			"Generic structs are not supported",
			fmt.Sprintf("%s declares type parameters.", name),
		)}
	}

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, hcl.Diagnostics{diag.Error(diag.UnsupportedShape, b.keywordRange(ts.Type),
			"Only structs are supported",
			fmt.Sprintf("%s is not a struct type.", name),
		)}
	}

	s := &model.Struct{
		Name:         name,
		NameRange:    nameRange,
		KeywordRange: b.rng(st.Struct, st.Struct+token.Pos(len("struct"))),
		Constructor:  b.opts.Constructor,
	}

	var diags hcl.Diagnostics
	for _, field := range st.Fields.List {
		attrs, annotated, attrDiags := b.attributes(field)
		if len(field.Names) == 0 {
			// Embedded fields stay out of the model unless annotated.
			if annotated {
				diags = append(diags, diag.Error(diag.UnsupportedShape, b.rng(field.Type.Pos(), field.Type.End()),
					"Only named fields are supported",
					"Embedded fields cannot carry accessors or take part in invalidation.",
				))
			}
			continue
		}
		diags = append(diags, attrDiags...)

		typ, valueType := model.DescribeType(field.Type)
		for _, id := range field.Names {
			s.Fields = append(s.Fields, &model.Field{
				Name:      id.Name,
				NameRange: b.rng(id.Pos(), id.End()),
				Type:      typ,
				TypeRange: b.rng(field.Type.Pos(), field.Type.End()),
				ValueType: valueType,
				Exported:  id.IsExported(),
				Annotated: annotated,
				Attrs:     attrs,
			})
		}
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return s, diags
}

// attributes parses the computed tag of field, if any.
func (b *builder) attributes(field *ast.Field) (attr.Attributes, bool, hcl.Diagnostics) {
	if field.Tag == nil {
		return attr.Attributes{}, false, nil
	}
	raw := field.Tag.Value
	unquoted, err := strconv.Unquote(raw)
	if err != nil {
		return attr.Attributes{}, false, nil
	}
	value, ok := reflect.StructTag(unquoted).Lookup(TagKey)
	if !ok {
		return attr.Attributes{}, false, nil
	}

	off := valueOffset(raw, value)
	if off < 0 {
		attrs, diags := attr.ParseTagWithin(value, b.rng(field.Tag.Pos(), field.Tag.End()))
		return attrs, true, diags
	}
	attrs, diags := attr.ParseTag(value, b.filename, b.pos(field.Tag.Pos()+token.Pos(off)))
	return attrs, true, diags
}

// valueOffset locates the computed tag value inside the raw tag literal. It
// returns -1 when the literal uses escapes that break the byte mapping.
func valueOffset(raw, value string) int {
	prefix := TagKey + `:"`
	for i := 0; ; {
		idx := strings.Index(raw[i:], prefix)
		if idx < 0 {
			return -1
		}
		idx += i
		if idx == 1 || raw[idx-1] == ' ' {
			off := idx + len(prefix)
			if strings.HasPrefix(raw[off:], value) {
				return off
			}
			return -1
		}
		i = idx + len(prefix)
	}
}

func (b *builder) keywordRange(expr ast.Expr) hcl.Range {
	switch e := expr.(type) {
	case *ast.InterfaceType:
		return b.rng(e.Interface, e.Interface+token.Pos(len("interface")))
	case *ast.FuncType:
		if e.Func.IsValid() {
			return b.rng(e.Func, e.Func+token.Pos(len("func")))
		}
	}
	return b.rng(expr.Pos(), expr.End())
}

func (b *builder) pos(p token.Pos) hcl.Pos {
	position := b.fset.Position(p)
	return hcl.Pos{Line: position.Line, Column: position.Column, Byte: position.Offset}
}

func (b *builder) rng(from, to token.Pos) hcl.Range {
	return hcl.Range{Filename: b.filename, Start: b.pos(from), End: b.pos(to)}
}

// hasDirective looks for //computed:generate in the type's doc comment, or
// in the declaration's doc comment for an ungrouped declaration. A trailing
// "constructor" argument requests a New<Type> function.
func hasDirective(gd *ast.GenDecl, ts *ast.TypeSpec) (found, constructor bool) {
	docs := []*ast.CommentGroup{ts.Doc}
	if !gd.Lparen.IsValid() {
		docs = append(docs, gd.Doc)
	}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, c := range doc.List {
			text := strings.TrimPrefix(c.Text, "//")
			if text != Directive && !strings.HasPrefix(text, Directive+" ") {
				continue
			}
			found = true
			for _, arg := range strings.Fields(strings.TrimPrefix(text, Directive)) {
				if arg == "constructor" {
					constructor = true
				}
			}
		}
	}
	return found, constructor
}

func hasTaggedField(ts *ast.TypeSpec) bool {
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return false
	}
	for _, field := range st.Fields.List {
		if field.Tag == nil {
			continue
		}
		unquoted, err := strconv.Unquote(field.Tag.Value)
		if err != nil {
			continue
		}
		if _, ok := reflect.StructTag(unquoted).Lookup(TagKey); ok {
			return true
		}
	}
	return false
}

func syntaxDiags(filename string, err error) hcl.Diagnostics {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid Go source",
			Detail:   err.Error(),
		}}
	}

	diags := make(hcl.Diagnostics, 0, len(list))
	for _, e := range list {
		p := hcl.Pos{Line: e.Pos.Line, Column: e.Pos.Column, Byte: e.Pos.Offset}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid Go source",
			Detail:   e.Msg,
			Subject:  &hcl.Range{Filename: filename, Start: p, End: p},
		})
	}
	return diags
}
