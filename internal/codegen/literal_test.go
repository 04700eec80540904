package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestLiteral(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v    cty.Value
		typ  string
		want string
	}{
		{"string", cty.StringVal("a \"b\""), "string", `"a \"b\""`},
		{"integer", cty.NumberIntVal(42), "int", "42"},
		{"float", cty.NumberFloatVal(0.25), "float64", "0.25"},
		{"bool", cty.True, "bool", "true"},
		{"named scalar", cty.NumberIntVal(5), "time.Duration", "5"},
		{"list", cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}), "[]float64", "[]float64{1, 2}"},
		{"tuple into array", cty.TupleVal([]cty.Value{cty.StringVal("x")}), "[1]string", `[1]string{"x"}`},
		{"empty list", cty.ListValEmpty(cty.String), "[]string", "[]string{}"},
		{"nested", cty.TupleVal([]cty.Value{cty.TupleVal([]cty.Value{cty.True})}), "[][]bool", "[][]bool{[]bool{true}}"},
		{
			"object into map",
			cty.ObjectVal(map[string]cty.Value{"b": cty.NumberIntVal(2), "a": cty.NumberIntVal(1)}),
			"map[string]int",
			`map[string]int{"a": 1, "b": 2}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Literal(tc.v, tc.typ)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLiteral_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v    cty.Value
		typ  string
	}{
		{"null", cty.NullVal(cty.String), "string"},
		{"unknown", cty.UnknownVal(cty.Number), "int"},
		{"list into scalar", cty.ListValEmpty(cty.Number), "int"},
		{"object into slice", cty.EmptyObjectVal, "[]int"},
		{"non-string keys", cty.EmptyObjectVal, "map[int]int"},
		{"bad type", cty.True, "[]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Literal(tc.v, tc.typ)
			require.Error(t, err)
		})
	}
}
