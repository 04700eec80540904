package diag

import (
	"io"

	"github.com/hashicorp/hcl/v2"
)

// Sources maps a file name to its contents, so rendered diagnostics can show
// the offending line.
type Sources map[string][]byte

// Write renders diags in the HCL text format, with source snippets for the
// files present in srcs.
func Write(w io.Writer, diags hcl.Diagnostics, srcs Sources) error {
	files := make(map[string]*hcl.File, len(srcs))
	for name, src := range srcs {
		files[name] = &hcl.File{Bytes: src}
	}
	return hcl.NewDiagnosticTextWriter(w, files, 100, false).WriteDiagnostics(diags)
}
