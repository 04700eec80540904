package hclutil

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// TraversalKey renders a traversal back to its source form, e.g. time.Duration.
func TraversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// TypeString reads a Go type written either as a bare name (float64,
// time.Duration) or as a quoted type expression ("memo.Cell[float64]").
func TypeString(expr hcl.Expression) (string, hcl.Diagnostics) {
	if traversal, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		for _, step := range traversal {
			switch step.(type) {
			case hcl.TraverseRoot, hcl.TraverseAttr:
			default:
				return "", typeDiag(expr)
			}
		}
		return TraversalKey(traversal), nil
	}

	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() || !v.IsKnown() || v.Type() != cty.String {
		return "", typeDiag(expr)
	}
	return v.AsString(), nil
}

func typeDiag(expr hcl.Expression) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid type specification",
		Detail:   `The type must be a Go type name such as float64 or a quoted Go type expression such as "[]float64".`,
		Subject:  expr.Range().Ptr(),
	}}
}
