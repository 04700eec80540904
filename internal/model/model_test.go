package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestDescribeType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		src        string
		typ        string
		valueType  string
		qualifiers []string
	}{
		{src: "[]float64", typ: "[]float64", qualifiers: []string{}},
		{src: "memo.Cell[float64]", typ: "memo.Cell[float64]", valueType: "float64", qualifiers: []string{"memo"}},
		{src: "memo.Cell[[]time.Duration]", typ: "memo.Cell[[]time.Duration]", valueType: "[]time.Duration", qualifiers: []string{"memo", "time"}},
		{src: "lru.Slot[string, int]", typ: "lru.Slot[string, int]", valueType: "int", qualifiers: []string{"lru"}},
		{src: "map[string]*big.Int", typ: "map[string]*big.Int", qualifiers: []string{"big"}},
	}

	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			expr, err := ParseType(tc.src)
			require.NoError(t, err)

			typ, valueType := DescribeType(expr)
			assert.Equal(t, tc.typ, typ)
			assert.Equal(t, tc.valueType, valueType)
			if diff := cmp.Diff(tc.qualifiers, Qualifiers(expr)); diff != "" {
				t.Errorf("Qualifiers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanMembers_KeepsDeclarationOrder(t *testing.T) {
	t.Parallel()

	items := &Field{Name: "items"}
	sum := &Field{Name: "sum"}
	note := &Field{Name: "note"}
	s := &Struct{Name: "Example", Fields: []*Field{items, sum, note}}

	plan := &Plan{
		Struct:   s,
		Plain:    []*PlainField{{Field: items, Get: true}, {Field: note}},
		Computed: []*ComputedField{{Field: sum, Func: "sumItems", Deps: []*Field{items}}},
	}

	var names []string
	for _, m := range plan.Members() {
		if m.Plain != nil {
			names = append(names, "plain:"+m.Plain.Name)
		} else {
			names = append(names, "computed:"+m.Computed.Name)
		}
	}
	assert.Equal(t, []string{"plain:items", "computed:sum", "plain:note"}, names)
	assert.Same(t, sum, s.Field("sum"))
	assert.Nil(t, s.Field("missing"))
}

func TestFieldHasDefault(t *testing.T) {
	t.Parallel()

	assert.False(t, (&Field{}).HasDefault())
	assert.False(t, (&Field{Default: cty.NullVal(cty.Number)}).HasDefault())
	assert.True(t, (&Field{Default: cty.NumberIntVal(3)}).HasDefault())
}

func TestAccessorNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GetItems", GetterName("items"))
	assert.Equal(t, "SetItemCount", SetterName("itemCount"))
	assert.Equal(t, "ComputeSum", ComputeName("sum"))
	assert.Equal(t, "Get_total", GetterName("_total"))
	assert.Equal(t, "GetÉtat", GetterName("état"))
	assert.Equal(t, "NewCart", ConstructorName("Cart"))
	assert.Equal(t, "", ExportName(""))
}
