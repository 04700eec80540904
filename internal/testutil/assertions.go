package testutil

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireValidGo fails the test when src does not parse as a Go file.
func RequireValidGo(t *testing.T, src string) {
	t.Helper()

	_, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.ParseComments)
	require.NoError(t, err, "generated source does not parse:\n%s", src)
}

// RequireInOrder checks that every fragment occurs in src, each after the
// previous one.
func RequireInOrder(t *testing.T, src string, fragments ...string) {
	t.Helper()

	rest := src
	for _, f := range fragments {
		i := strings.Index(rest, f)
		require.GreaterOrEqual(t, i, 0, "missing or out of order: %q\nin:\n%s", f, src)
		rest = rest[i+len(f):]
	}
}
