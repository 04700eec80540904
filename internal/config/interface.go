package config

import (
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/model"
)

// Selection narrows what a loader builds.
type Selection struct {
	// Types restricts loading to the named types. Empty means every
	// annotated structure.
	Types []string
	// Constructor requests New<Type> functions for every structure.
	Constructor bool
}

// Loader is the interface for a format-specific input loader.
type Loader interface {
	// Load parses one input and builds the model of its structures.
	// Structures with errors are left out and reported in the diagnostics.
	Load(filename string, src []byte, sel Selection) (*model.File, hcl.Diagnostics)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(filename string, src []byte, sel Selection) (*model.File, hcl.Diagnostics)

// Load calls f.
func (f LoaderFunc) Load(filename string, src []byte, sel Selection) (*model.File, hcl.Diagnostics) {
	return f(filename, src, sel)
}

// Loaders maps a file extension, including the dot, to its loader.
type Loaders map[string]Loader

// For returns the loader responsible for path.
func (l Loaders) For(path string) (Loader, bool) {
	loader, ok := l[filepath.Ext(path)]
	return loader, ok
}

// Extensions returns the handled extensions in sorted order.
func (l Loaders) Extensions() []string {
	exts := make([]string, 0, len(l))
	for ext := range l {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
