package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/computedgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inputs = Filter{
	Extensions: []string{".go", ".hcl"},
	Exclude:    []string{"_test.go", "_computed.go"},
}

func TestFindFiles(t *testing.T) {
	t.Parallel()

	root := testutil.WriteFiles(t, map[string]string{
		"a.go":                 "package a",
		"a_test.go":            "package a",
		"a_computed.go":        "package a",
		"schema.hcl":           "",
		"notes.txt":            "",
		"sub/b.go":             "package b",
		"sub/deeper/c.hcl":     "",
		"sub/deeper/c_test.go": "package c",
	})
	rel := func(files []string) []string {
		out := make([]string, 0, len(files))
		for _, f := range files {
			r, err := filepath.Rel(root, f)
			require.NoError(t, err)
			out = append(out, filepath.ToSlash(r))
		}
		return out
	}

	files, err := FindFiles([]string{root}, inputs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "schema.hcl"}, rel(files), "directories are not walked recursively")

	files, err = FindFiles([]string{filepath.Join(root, "**", "*.hcl")}, inputs)
	require.NoError(t, err)
	assert.Equal(t, []string{"schema.hcl", "sub/deeper/c.hcl"}, rel(files))

	files, err = FindFiles([]string{root, filepath.Join(root, "a.go"), filepath.Join(root, "a_test.go")}, inputs)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "a_test.go", "schema.hcl"}, rel(files), "explicit files bypass the filter, duplicates collapse")

	_, err = FindFiles([]string{filepath.Join(root, "missing", "*.go")}, inputs)
	require.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("x", "cart_computed.go"), OutputPath(filepath.Join("x", "cart.go"), "_computed.go"))
	assert.Equal(t, "cart_gen.go", OutputPath("cart.hcl", "_gen.go"))
}

func TestWriteIfChanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.go")

	same, err := Unchanged(path, []byte("a"))
	require.NoError(t, err)
	assert.False(t, same, "missing file")

	written, err := WriteIfChanged(path, []byte("package a\n"))
	require.NoError(t, err)
	assert.True(t, written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	mtime := info.ModTime()

	written, err = WriteIfChanged(path, []byte("package a\n"))
	require.NoError(t, err)
	assert.False(t, written)

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, mtime, info.ModTime())

	written, err = WriteIfChanged(path, []byte("package b\n"))
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "package b\n", testutil.ReadFile(t, filepath.Dir(path), "out.go"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestHasHeader(t *testing.T) {
	t.Parallel()

	const header = "// Code generated by computedgen. DO NOT EDIT."
	dir := testutil.WriteFiles(t, map[string]string{
		"gen.go":   header + "\n\npackage a\n",
		"crlf.go":  header + "\r\npackage a\n",
		"hand.go":  "package a\n\n" + header + "\n",
		"empty.go": "",
	})

	cases := map[string]bool{
		"gen.go":     true,
		"crlf.go":    true,
		"hand.go":    false,
		"empty.go":   false,
		"missing.go": false,
	}
	for name, want := range cases {
		got, err := HasHeader(filepath.Join(dir, name), header)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}
