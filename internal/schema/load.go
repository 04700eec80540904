package schema

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/computedgen/internal/attr"
	"github.com/specialistvlad/computedgen/internal/diag"
	"github.com/specialistvlad/computedgen/internal/gosource"
	"github.com/specialistvlad/computedgen/internal/hclutil"
	"github.com/specialistvlad/computedgen/internal/model"
)

// Extension is the file extension of schema files.
const Extension = ".hcl"

// Options selects what is generated from a schema file.
type Options struct {
	// Types restricts generation to the named structures.
	Types []string
	// Constructor requests New<Type> functions for every structure.
	Constructor bool
}

var fileSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "package", Required: true},
		{Name: "imports"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "struct", LabelNames: []string{"name"}},
		{Type: "enum", LabelNames: []string{"name"}},
		{Type: "union", LabelNames: []string{"name"}},
		{Type: "tuple", LabelNames: []string{"name"}},
	},
}

var structSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "constructor"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "field", LabelNames: []string{"name"}},
	},
}

var fieldSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "type", Required: true},
		{Name: "attributes"},
		{Name: "default"},
	},
}

// Load parses one schema file into the field model. Structures with errors
// are left out of the result.
func Load(filename string, src []byte, opts Options) (*model.File, hcl.Diagnostics) {
	file := &model.File{Path: filename, Source: src}

	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return file, diags
	}

	content, moreDiags := f.Body.Content(fileSchema)
	diags = append(diags, moreDiags...)
	if moreDiags.HasErrors() {
		return file, diags
	}

	diags = append(diags, decodePackage(content.Attributes["package"], file)...)
	if imports, ok := content.Attributes["imports"]; ok {
		diags = append(diags, decodeImports(imports, file)...)
	}
	diags = append(diags, hclutil.UniqueLabels(content.Blocks)...)

	found := make(map[string]bool)
	for _, block := range content.Blocks {
		name := block.Labels[0]
		if len(opts.Types) > 0 && !slices.Contains(opts.Types, name) {
			continue
		}
		found[name] = true

		if block.Type != "struct" {
			diags = append(diags, diag.Error(diag.UnsupportedShape, block.TypeRange,
				"Unsupported declaration",
				fmt.Sprintf("%q is declared as a %s. Accessors can only be generated for structures with named fields.", name, block.Type),
			))
			continue
		}

		s, structDiags := structure(block, opts)
		diags = append(diags, structDiags...)
		if s != nil {
			file.Structs = append(file.Structs, s)
		}
	}

	for _, name := range opts.Types {
		if !found[name] {
			start := hcl.Range{Filename: filename, Start: hcl.InitialPos, End: hcl.InitialPos}
			diags = append(diags, diag.Error(diag.TypeNotFound, start,
				"Type not found",
				fmt.Sprintf("No structure named %q is declared in %s.", name, filename),
			))
		}
	}
	return file, diags
}

func decodePackage(a *hcl.Attribute, file *model.File) hcl.Diagnostics {
	diags := gohcl.DecodeExpression(a.Expr, nil, &file.Package)
	if diags.HasErrors() {
		return diags
	}
	if !token.IsIdentifier(file.Package) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid package name",
			Detail:   fmt.Sprintf("%q is not a valid Go package name.", file.Package),
			Subject:  a.Expr.Range().Ptr(),
		})
	}
	return diags
}

// decodeImports reads entries of the form "path" or "name path".
func decodeImports(a *hcl.Attribute, file *model.File) hcl.Diagnostics {
	var specs []string
	diags := gohcl.DecodeExpression(a.Expr, nil, &specs)
	if diags.HasErrors() {
		return diags
	}

	for _, spec := range specs {
		parts := strings.Fields(spec)
		var imp model.Import
		switch len(parts) {
		case 1:
			imp = model.Import{Name: gosource.PackageName(parts[0]), Path: parts[0]}
		case 2:
			imp = model.Import{Name: parts[0], Path: parts[1], Alias: parts[0]}
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid import",
				Detail:   fmt.Sprintf("Import %q must be an import path, optionally preceded by a package name.", spec),
				Subject:  a.Expr.Range().Ptr(),
			})
			continue
		}
		file.Imports = append(file.Imports, imp)
	}
	return diags
}

func structure(block *hcl.Block, opts Options) (*model.Struct, hcl.Diagnostics) {
	s := &model.Struct{
		Name:         block.Labels[0],
		NameRange:    block.LabelRanges[0],
		KeywordRange: block.TypeRange,
		Constructor:  opts.Constructor,
		Declare:      true,
	}

	content, diags := block.Body.Content(structSchema)
	if diags.HasErrors() {
		return nil, diags
	}
	if a, ok := content.Attributes["constructor"]; ok {
		var constructor bool
		diags = append(diags, gohcl.DecodeExpression(a.Expr, nil, &constructor)...)
		s.Constructor = s.Constructor || constructor
	}
	diags = append(diags, hclutil.UniqueLabels(content.Blocks)...)

	for _, fb := range content.Blocks {
		f, fieldDiags := field(fb)
		diags = append(diags, fieldDiags...)
		if f != nil {
			s.Fields = append(s.Fields, f)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return s, diags
}

func field(block *hcl.Block) (*model.Field, hcl.Diagnostics) {
	name := block.Labels[0]
	f := &model.Field{
		Name:      name,
		NameRange: block.LabelRanges[0],
		Exported:  token.IsExported(name),
	}

	content, diags := block.Body.Content(fieldSchema)
	if diags.HasErrors() {
		return nil, diags
	}
	if !token.IsIdentifier(name) {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid field name",
			Detail:   fmt.Sprintf("%q is not a valid Go identifier.", name),
			Subject:  f.NameRange.Ptr(),
		})
	}

	typeAttr := content.Attributes["type"]
	f.TypeRange = typeAttr.Expr.Range()
	typ, typeDiags := hclutil.TypeString(typeAttr.Expr)
	diags = append(diags, typeDiags...)
	if !typeDiags.HasErrors() {
		expr, err := model.ParseType(typ)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid field type",
				Detail:   fmt.Sprintf("%q is not a Go type expression: %s.", typ, err),
				Subject:  f.TypeRange.Ptr(),
			})
		} else {
			f.Type, f.ValueType = model.DescribeType(expr)
		}
	}

	if a, ok := content.Attributes["attributes"]; ok {
		attrs, attrDiags := attr.Parse(a.Expr)
		diags = append(diags, attrDiags...)
		f.Attrs = attrs
		f.Annotated = true
	}

	if a, ok := content.Attributes["default"]; ok {
		v, valueDiags := a.Expr.Value(nil)
		diags = append(diags, valueDiags...)
		f.Default = v
		f.DefaultRange = a.Expr.Range()
		if f.Attrs.IsComputed() {
			diags = append(diags, diag.Error(diag.AttributeConflict, f.DefaultRange,
				"Default on a computed field",
				fmt.Sprintf("Computed field %q always starts with an empty cache and cannot have a default.", name),
			))
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return f, diags
}
