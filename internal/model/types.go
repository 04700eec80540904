package model

import (
	"go/ast"
	"go/parser"
	"go/types"
	"sort"
)

// ParseType parses a Go type expression written as text, as found in schema
// files.
func ParseType(src string) (ast.Expr, error) {
	return parser.ParseExpr(src)
}

// DescribeType renders expr and extracts the value type of a generic cell
// instantiation: for memo.Cell[float64] it returns ("memo.Cell[float64]",
// "float64"). valueType is empty when expr is not an instantiation.
func DescribeType(expr ast.Expr) (typ, valueType string) {
	typ = types.ExprString(expr)
	switch e := expr.(type) {
	case *ast.IndexExpr:
		valueType = types.ExprString(e.Index)
	case *ast.IndexListExpr:
		valueType = types.ExprString(e.Indices[len(e.Indices)-1])
	}
	return typ, valueType
}

// Qualifiers returns the sorted package identifiers referenced by selector
// expressions inside expr, e.g. ["memo", "time"] for
// map[time.Duration]memo.Cell[int].
func Qualifiers(expr ast.Expr) []string {
	seen := make(map[string]struct{})
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			seen[id.Name] = struct{}{}
		}
		return true
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
