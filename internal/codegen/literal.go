package codegen

import (
	"fmt"
	"go/ast"
	"go/types"
	"strconv"
	"strings"

	"github.com/specialistvlad/computedgen/internal/model"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Literal renders a schema default as a Go expression assignable to typ.
// Scalars become untyped constants; lists and tuples need a slice or array
// type, maps and objects need a map type with string keys.
func Literal(v cty.Value, typ string) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("default must not be null")
	}
	if !v.IsWhollyKnown() {
		return "", fmt.Errorf("default must be a constant")
	}
	expr, err := model.ParseType(typ)
	if err != nil {
		return "", fmt.Errorf("invalid type %q: %w", typ, err)
	}
	return literal(v, expr)
}

func literal(v cty.Value, expr ast.Expr) (string, error) {
	ty := v.Type()
	switch {
	case ty == cty.String:
		return strconv.Quote(v.AsString()), nil

	case ty == cty.Number:
		return v.AsBigFloat().Text('g', -1), nil

	case ty == cty.Bool:
		var b bool
		if err := gocty.FromCtyValue(v, &b); err != nil {
			return "", err
		}
		return strconv.FormatBool(b), nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var elem ast.Expr
		switch t := expr.(type) {
		case *ast.ArrayType:
			elem = t.Elt
		default:
			return "", fmt.Errorf("a list default needs a slice or array type, not %s", types.ExprString(expr))
		}

		items := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := literal(ev, elem)
			if err != nil {
				return "", err
			}
			items = append(items, s)
		}
		return types.ExprString(expr) + "{" + strings.Join(items, ", ") + "}", nil

	case ty.IsMapType() || ty.IsObjectType():
		m, ok := expr.(*ast.MapType)
		if !ok {
			return "", fmt.Errorf("an object default needs a map type, not %s", types.ExprString(expr))
		}
		if key, ok := m.Key.(*ast.Ident); !ok || key.Name != "string" {
			return "", fmt.Errorf("an object default needs string keys, not %s", types.ExprString(m.Key))
		}

		// ElementIterator yields keys in lexical order.
		var items []string
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			s, err := literal(ev, m.Value)
			if err != nil {
				return "", fmt.Errorf("in key %q: %w", k.AsString(), err)
			}
			items = append(items, strconv.Quote(k.AsString())+": "+s)
		}
		return types.ExprString(expr) + "{" + strings.Join(items, ", ") + "}", nil

	default:
		return "", fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}
