package attr

import (
	"fmt"
	"go/token"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/computedgen/internal/diag"
)

const (
	tokGet         = "get"
	tokSet         = "set"
	tokInvalidates = "invalidates"
	tokComputed    = "computed"
)

// ParseTag parses the value of a `computed:"..."` struct tag. start is the
// position of the first byte of the tag value inside filename.
func ParseTag(tag, filename string, start hcl.Pos) (Attributes, hcl.Diagnostics) {
	// The opening bracket sits one byte before the real tag value.
	src := []byte("[" + tag + "]")
	origin := hcl.Pos{Line: start.Line, Column: start.Column - 1, Byte: start.Byte - 1}

	expr, diags := hclsyntax.ParseExpression(src, filename, origin)
	if diags.HasErrors() {
		for _, d := range diags {
			d.Extra = diag.MalformedAttribute
		}
		return Attributes{}, diags
	}
	return Parse(expr)
}

// ParseTagWithin parses a tag whose bytes cannot be mapped back onto the
// source, such as an interpreted string literal with escapes. Every range in
// the result and every diagnostic subject is rng, the whole tag literal.
func ParseTagWithin(tag string, rng hcl.Range) (Attributes, hcl.Diagnostics) {
	attrs, diags := ParseTag(tag, rng.Filename, hcl.Pos{Line: 1, Column: 2, Byte: 1})

	attrs.Range = rng
	attrs.AccessorRange = rng
	attrs.InvalidatesRange = rng
	attrs.ComputedRange = rng
	if attrs.Invalidates != nil {
		attrs.Invalidates.Range = rng
	}
	if c := attrs.Computed; c != nil {
		c.FuncRange = rng
		for i := range c.Deps {
			c.Deps[i].Range = rng
		}
	}
	for _, d := range diags {
		d.Subject = rng.Ptr()
		if d.Context != nil {
			d.Context = rng.Ptr()
		}
	}
	return attrs, diags
}

// Parse parses an annotation list expression. The expression must be a tuple
// constructor such as [get, set, invalidates(total)].
func Parse(expr hcl.Expression) (Attributes, hcl.Diagnostics) {
	p := &parser{}
	p.attrs.Range = expr.Range()

	tuple, ok := expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, expr.Range(),
			"Invalid attribute list",
			"Attributes must be written as a list, for example [get, set, invalidates(total)].",
		))
		return p.attrs, p.diags
	}

	for _, item := range tuple.Exprs {
		p.item(item)
	}
	return p.attrs, p.diags
}

type parser struct {
	attrs Attributes
	diags hcl.Diagnostics
}

func (p *parser) item(expr hclsyntax.Expression) {
	switch e := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		p.keyword(e)
	case *hclsyntax.FunctionCallExpr:
		p.call(e)
	default:
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, expr.Range(),
			"Invalid attribute",
			fmt.Sprintf("Expected one of %s, %s, %s(...) or %s(...).", tokGet, tokSet, tokInvalidates, tokComputed),
		))
	}
}

// keyword handles the argument-less forms.
func (p *parser) keyword(e *hclsyntax.ScopeTraversalExpr) {
	rng := e.Range()
	if len(e.Traversal) != 1 {
		p.unknown(string(hclwrite.TokensForTraversal(e.Traversal).Bytes()), rng)
		return
	}

	name := e.Traversal.RootName()
	switch name {
	case tokGet:
		p.accessor(Get, rng)
	case tokSet:
		p.accessor(Set, rng)
	case tokInvalidates, tokComputed:
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, rng,
			"Missing attribute argument",
			fmt.Sprintf("The %q attribute requires an argument, for example %s(total).", name, name),
		))
	default:
		p.unknown(name, rng)
	}
}

func (p *parser) call(e *hclsyntax.FunctionCallExpr) {
	if e.ExpandFinal {
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, e.Range(),
			"Invalid attribute argument",
			"Argument expansion (...) is not supported in attributes.",
		))
		return
	}

	switch e.Name {
	case tokInvalidates:
		p.invalidates(e)
	case tokComputed:
		p.computed(e)
	case tokGet, tokSet:
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, e.NameRange,
			"Unexpected attribute argument",
			fmt.Sprintf("The %q attribute takes no arguments.", e.Name),
		))
	default:
		p.unknown(e.Name, e.NameRange)
	}
}

func (p *parser) accessor(a Accessors, rng hcl.Range) {
	if p.attrs.Accessors.Empty() {
		p.attrs.AccessorRange = rng
	}
	p.attrs.Accessors |= a
}

func (p *parser) invalidates(e *hclsyntax.FunctionCallExpr) {
	if p.attrs.Invalidates != nil {
		p.duplicate(tokInvalidates, e.NameRange, p.attrs.InvalidatesRange)
		return
	}
	if len(e.Args) != 1 {
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, e.Range(),
			"Invalid invalidates attribute",
			fmt.Sprintf("invalidates(...) takes exactly one field name, got %d arguments.", len(e.Args)),
		))
		return
	}

	ref, ok := p.fieldRef(e.Args[0])
	if !ok {
		return
	}
	p.attrs.Invalidates = &ref
	p.attrs.InvalidatesRange = e.NameRange
}

func (p *parser) computed(e *hclsyntax.FunctionCallExpr) {
	if p.attrs.Computed != nil {
		p.duplicate(tokComputed, e.NameRange, p.attrs.ComputedRange)
		return
	}
	if len(e.Args) == 0 {
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, e.Range(),
			"Invalid computed attribute",
			"computed(...) requires the computing function as its first argument.",
		))
		return
	}

	fn, ok := p.funcPath(e.Args[0])
	if !ok {
		return
	}
	c := &Computation{Func: fn, FuncRange: e.Args[0].Range()}
	for _, arg := range e.Args[1:] {
		ref, ok := p.fieldRef(arg)
		if !ok {
			return
		}
		c.Deps = append(c.Deps, ref)
	}
	p.attrs.Computed = c
	p.attrs.ComputedRange = e.NameRange
}

// fieldRef accepts a single bare identifier.
func (p *parser) fieldRef(expr hclsyntax.Expression) (Ref, bool) {
	trav, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if !ok || len(trav.Traversal) != 1 {
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, expr.Range(),
			"Invalid field reference",
			"A field reference must be a single field name, such as total.",
		))
		return Ref{}, false
	}
	name := trav.Traversal.RootName()
	if !token.IsIdentifier(name) {
		p.notIdentifier(name, trav.Range())
		return Ref{}, false
	}
	return Ref{Name: name, Range: trav.Range()}, true
}

// funcPath accepts an identifier or a dotted selector such as stats.Sum.
func (p *parser) funcPath(expr hclsyntax.Expression) (string, bool) {
	trav, ok := expr.(*hclsyntax.ScopeTraversalExpr)
	if ok {
		for _, step := range trav.Traversal {
			switch step.(type) {
			case hcl.TraverseRoot, hcl.TraverseAttr:
			default:
				ok = false
			}
		}
	}
	if !ok || len(trav.Traversal) > 2 {
		p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, expr.Range(),
			"Invalid function reference",
			"The computing function must be a function name or a package-qualified name, such as sumItems or stats.Sum.",
		))
		return "", false
	}
	for _, step := range trav.Traversal {
		var name string
		switch s := step.(type) {
		case hcl.TraverseRoot:
			name = s.Name
		case hcl.TraverseAttr:
			name = s.Name
		}
		if !token.IsIdentifier(name) {
			p.notIdentifier(name, step.SourceRange())
			return "", false
		}
	}
	return string(hclwrite.TokensForTraversal(trav.Traversal).Bytes()), true
}

func (p *parser) notIdentifier(name string, rng hcl.Range) {
	p.diags = append(p.diags, diag.Error(diag.MalformedAttribute, rng,
		"Invalid Go identifier",
		fmt.Sprintf("%q is not a valid Go identifier.", name),
	))
}

func (p *parser) unknown(name string, rng hcl.Range) {
	p.diags = append(p.diags, diag.Error(diag.UnknownAttribute, rng,
		"Unknown attribute",
		fmt.Sprintf("%q is not a recognized attribute. Supported attributes are %s, %s, %s(...) and %s(...).",
			name, tokGet, tokSet, tokInvalidates, tokComputed),
	))
}

func (p *parser) duplicate(name string, rng, first hcl.Range) {
	p.diags = append(p.diags, &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Duplicate attribute",
		Detail:   fmt.Sprintf("The %q attribute was already set for this field at %s.", name, first.String()),
		Subject:  rng.Ptr(),
		Context:  hcl.RangeBetween(first, rng).Ptr(),
		Extra:    diag.DuplicateAttribute,
	})
}
