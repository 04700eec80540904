package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/computedgen/internal/app"
	"github.com/specialistvlad/computedgen/internal/cli"
	"github.com/specialistvlad/computedgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cartSrc = "package cart\n\n" +
	"type Cart struct {\n" +
	"\titems []float64 `computed:\"get, set, invalidates(total)\"`\n" +
	"\ttotal cell      `computed:\"computed(sum)\"`\n" +
	"}\n\n" +
	"type cell = struct{}\n"

func noEnv(string) string { return "" }

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"}, noEnv)

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"}, noEnv)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_GoGenerate(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{
		"cart.go": "package cart\n\n" +
			"import \"github.com/specialistvlad/computedgen/memo\"\n\n" +
			"type Cart struct {\n" +
			"\titems []float64          `computed:\"get, set, invalidates(total)\"`\n" +
			"\ttotal memo.Cell[float64] `computed:\"computed(sum)\"`\n" +
			"}\n",
	})
	gofile := filepath.Join(dir, "cart.go")
	env := func(key string) string {
		if key == "GOFILE" {
			return gofile
		}
		return ""
	}

	errW := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), &bytes.Buffer{}, errW, nil, env), errW.String())

	out := testutil.ReadFile(t, dir, "cart_computed.go")
	testutil.RequireValidGo(t, out)
	assert.Contains(t, out, "func (c *Cart) ComputeTotal() float64")
}

func TestRun_DiagnosticsFailTheRun(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteFiles(t, map[string]string{"cart.go": cartSrc})

	errW := &bytes.Buffer{}
	err := run(context.Background(), &bytes.Buffer{}, errW, []string{dir}, noEnv)
	require.ErrorIs(t, err, app.ErrGeneration)
	assert.Contains(t, errW.String(), "Unsupported cell type", "diagnostic is rendered")
	assert.Contains(t, errW.String(), "cart.go line 5")
}
