package soundness

import (
	"go/token"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/attr"
	"github.com/specialistvlad/computedgen/internal/diag"
	"github.com/specialistvlad/computedgen/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// field builds a model field the way the front-ends do. An empty tag means
// the field carries no annotation.
func field(t *testing.T, name, typ, tag string) *model.Field {
	t.Helper()

	expr, err := model.ParseType(typ)
	require.NoError(t, err)
	rendered, valueType := model.DescribeType(expr)

	f := &model.Field{
		Name:      name,
		Type:      rendered,
		ValueType: valueType,
		Exported:  token.IsExported(name),
	}
	if tag != "" {
		attrs, diags := attr.ParseTag(tag, "test.go", hcl.Pos{Line: 1, Column: 1, Byte: 0})
		require.False(t, diags.HasErrors(), diags.Error())
		f.Attrs = attrs
		f.Annotated = true
	}
	return f
}

func names(fields []*model.Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Name)
	}
	return out
}

func TestCheck_SingleSource(t *testing.T) {
	t.Parallel()

	s := &model.Struct{Name: "Example", Fields: []*model.Field{
		field(t, "items", "[]float32", "get, set, invalidates(sum)"),
		field(t, "sum", "memo.Cell[float32]", "computed(sumItems)"),
	}}

	plan, diags := Check(s)
	require.False(t, diags.HasErrors(), diags.Error())
	require.Empty(t, diags)

	require.Len(t, plan.Plain, 1)
	items := plan.Plain[0]
	assert.True(t, items.Get)
	assert.True(t, items.Set)
	assert.Same(t, s.Fields[1], items.Invalidates)

	require.Len(t, plan.Computed, 1)
	sum := plan.Computed[0]
	assert.Equal(t, "sumItems", sum.Func)
	assert.Equal(t, []string{"items"}, names(sum.Deps))

	require.Len(t, plan.Edges, 1)
	assert.Equal(t, "items", plan.Edges[0].Source.Name)
	assert.Equal(t, "sum", plan.Edges[0].Target.Name)
}

func TestCheck_ImplicitDependenciesFollowDeclarationOrder(t *testing.T) {
	t.Parallel()

	s := &model.Struct{Name: "Cart", Fields: []*model.Field{
		field(t, "items", "[]float64", "get, set, invalidates(total)"),
		field(t, "label", "string", "get"),
		field(t, "total", "memo.Cell[float64]", "computed(cartTotal)"),
		field(t, "discount", "float64", "set, invalidates(total)"),
	}}

	plan, diags := Check(s)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Equal(t, []string{"items", "discount"}, names(plan.Computed[0].Deps))
	assert.Equal(t, []string{"items", "label", "discount"}, names(func() []*model.Field {
		var out []*model.Field
		for _, p := range plan.Plain {
			out = append(out, p.Field)
		}
		return out
	}()))
}

func TestCheck_ExplicitDependencies(t *testing.T) {
	t.Parallel()

	s := &model.Struct{Name: "Cart", Fields: []*model.Field{
		field(t, "items", "[]float64", "get, set, invalidates(total)"),
		field(t, "rate", "float64", ""),
		field(t, "discount", "float64", "set, invalidates(total)"),
		field(t, "total", "memo.Cell[float64]", "computed(cartTotal, discount, items, rate)"),
	}}

	plan, diags := Check(s)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Equal(t, []string{"discount", "items", "rate"}, names(plan.Computed[0].Deps), "explicit order wins")

	require.Len(t, diags, 1, "rate never invalidates total")
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.Equal(t, diag.StaleDependency, diag.KindOf(diags[0]))
}

func TestCheck_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		fields func(t *testing.T) []*model.Field
		kinds  []diag.Kind
	}{
		{
			name: "computed with accessor",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{field(t, "sum", "memo.Cell[int]", "get, computed(f)")}
			},
			kinds: []diag.Kind{diag.AttributeConflict},
		},
		{
			name: "computed with invalidates",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{
					field(t, "a", "int", ""),
					field(t, "sum", "memo.Cell[int]", "computed(f), invalidates(a)"),
				}
			},
			kinds: []diag.Kind{diag.AttributeConflict},
		},
		{
			name: "computed with both",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{
					field(t, "a", "int", ""),
					field(t, "sum", "memo.Cell[int]", "set, invalidates(a), computed(f)"),
				}
			},
			kinds: []diag.Kind{diag.AttributeConflict, diag.AttributeConflict},
		},
		{
			name: "undefined invalidation target",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{field(t, "items", "[]int", "set, invalidates(nonexistent)")}
			},
			kinds: []diag.Kind{diag.UndefinedInvalidationTarget},
		},
		{
			name: "computed field that is not a cell",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{field(t, "sum", "float64", "computed(f)")}
			},
			kinds: []diag.Kind{diag.UnsupportedCellType},
		},
		{
			name: "missing explicit dependency",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{field(t, "sum", "memo.Cell[int]", "computed(f, ghost)")}
			},
			kinds: []diag.Kind{diag.UndefinedDependency},
		},
		{
			name: "computed dependency",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{
					field(t, "a", "memo.Cell[int]", "computed(f)"),
					field(t, "b", "memo.Cell[int]", "computed(g, a)"),
				}
			},
			kinds: []diag.Kind{diag.UndefinedDependency},
		},
		{
			name: "exported annotated field",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{field(t, "Items", "[]int", "get")}
			},
			kinds: []diag.Kind{diag.VisibilityViolation},
		},
		{
			name: "accessor collides with a field",
			fields: func(t *testing.T) []*model.Field {
				return []*model.Field{
					field(t, "items", "[]int", "get"),
					field(t, "GetItems", "func() []int", ""),
				}
			},
			kinds: []diag.Kind{diag.NameCollision},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			plan, diags := Check(&model.Struct{Name: "T", Fields: tc.fields(t)})
			require.Nil(t, plan, "no plan may be produced for an unsound struct")
			assert.Equal(t, tc.kinds, diag.Kinds(diags), diags.Error())
		})
	}
}

func TestCheck_UndefinedTargetIsReportedAtTheReference(t *testing.T) {
	t.Parallel()

	items := field(t, "items", "[]int", "set, invalidates(nonexistent)")
	_, diags := Check(&model.Struct{Name: "T", Fields: []*model.Field{items}})
	require.Len(t, diags, 1)
	assert.Equal(t, items.Attrs.Invalidates.Range, *diags[0].Subject)
	assert.Contains(t, diags[0].Detail, `"nonexistent"`)
}

func TestCheck_PlainTargetOnlyWarns(t *testing.T) {
	t.Parallel()

	s := &model.Struct{Name: "T", Fields: []*model.Field{
		field(t, "a", "int", "set, invalidates(b)"),
		field(t, "b", "memo.Cell[int]", ""),
	}}
	plan, diags := Check(s)
	require.NotNil(t, plan)
	require.Len(t, diags, 1)
	assert.Equal(t, hcl.DiagWarning, diags[0].Severity)
	assert.Same(t, s.Fields[1], plan.Plain[0].Invalidates)
}

func TestCheck_IsDeterministic(t *testing.T) {
	t.Parallel()

	build := func() *model.Struct {
		return &model.Struct{Name: "T", Fields: []*model.Field{
			field(t, "Items", "[]int", "get, invalidates(x)"),
			field(t, "sum", "int", "get, computed(f, y)"),
			field(t, "z", "int", "set, invalidates(w)"),
		}}
	}

	_, first := Check(build())
	_, second := Check(build())
	if diff := cmp.Diff(diag.Kinds(first), diag.Kinds(second)); diff != "" {
		t.Fatalf("diagnostics differ between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, []diag.Kind{
		diag.VisibilityViolation,
		diag.AttributeConflict,
		diag.UnsupportedCellType,
		diag.UndefinedInvalidationTarget,
		diag.UndefinedInvalidationTarget,
		diag.UndefinedDependency,
	}, diag.Kinds(first))
}
