package gosource

import (
	"go/ast"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/specialistvlad/computedgen/internal/model"
)

var (
	majorVersion = regexp.MustCompile(`^v[0-9]+$`)
	gopkgVersion = regexp.MustCompile(`\.v[0-9]+$`)
)

// imports collects the named imports of f. Blank and dot imports are
// skipped because generated code cannot refer to them by name. Unaliased
// imports get their names from resolveNames.
func imports(f *ast.File) []model.Import {
	var out []model.Import
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := model.Import{Path: path, Name: PackageName(path)}
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			imp.Name = spec.Name.Name
			imp.Alias = spec.Name.Name
		}
		out = append(out, imp)
	}
	return resolveNames(out, selectorRoots(f))
}

// selectorRoots returns every identifier used on the left of a selector in f.
func selectorRoots(f *ast.File) map[string]struct{} {
	roots := make(map[string]struct{})
	ast.Inspect(f, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				roots[id.Name] = struct{}{}
			}
		}
		return true
	})
	return roots
}

// resolveNames fixes unaliased imports whose guessed name is never used in
// the file, which means the package declares a different name. The name is
// taken from an otherwise unknown qualifier found in the import path and kept
// as an explicit alias, so the generated file does not depend on the guess.
func resolveNames(imps []model.Import, roots map[string]struct{}) []model.Import {
	known := make(map[string]bool, len(imps))
	for _, imp := range imps {
		known[imp.Name] = true
	}
	for i, imp := range imps {
		if imp.Alias != "" {
			continue
		}
		if _, ok := roots[imp.Name]; ok {
			continue
		}
		if name := matchQualifier(imp.Path, roots, known); name != "" {
			imps[i].Name = name
			imps[i].Alias = name
			known[name] = true
		}
	}
	return imps
}

// matchQualifier picks the longest unknown root contained in the last
// element of path, ignoring case and punctuation. A tie matches nothing.
func matchQualifier(path string, roots map[string]struct{}, known map[string]bool) string {
	elems := strings.Split(path, "/")
	last := elems[len(elems)-1]
	if majorVersion.MatchString(last) && len(elems) > 1 {
		last = elems[len(elems)-2]
	}
	haystack := letters(last)

	var best string
	tie := false
	for root := range roots {
		needle := letters(root)
		if known[root] || needle == "" || !strings.Contains(haystack, needle) {
			continue
		}
		switch {
		case len(root) > len(best):
			best, tie = root, false
		case len(root) == len(best):
			tie = true
		}
	}
	if tie {
		return ""
	}
	return best
}

func letters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// PackageName guesses the package name of an import path the way goimports
// does when the package is not loaded: the last element, skipping a major
// version suffix and dropping "go-" prefixes, ".go" suffixes and gopkg.in
// style ".vN" suffixes.
func PackageName(path string) string {
	elems := strings.Split(path, "/")
	name := elems[len(elems)-1]
	if majorVersion.MatchString(name) && len(elems) > 1 {
		name = elems[len(elems)-2]
	}
	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, ".go")
	name = gopkgVersion.ReplaceAllString(name, "")
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}
