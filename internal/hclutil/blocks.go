package hclutil

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/diag"
)

// UniqueLabels reports every block whose first label repeats an earlier
// block's first label. Blocks without labels are ignored.
func UniqueLabels(blocks hcl.Blocks) hcl.Diagnostics {
	var diags hcl.Diagnostics
	seen := make(map[string]*hcl.Block)

	for _, block := range blocks {
		if len(block.Labels) == 0 {
			continue
		}
		name := block.Labels[0]
		first, ok := seen[name]
		if !ok {
			seen[name] = block
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf("Duplicate %q block", block.Type),
			Detail:   fmt.Sprintf("A %s named %q was already declared at %s.", first.Type, name, first.DefRange.String()),
			Subject:  block.LabelRanges[0].Ptr(),
			Context:  hcl.RangeBetween(first.DefRange, block.DefRange).Ptr(),
			Extra:    diag.NameCollision,
		})
	}
	return diags
}
