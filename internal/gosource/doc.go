// Package gosource builds the field model from Go source files.
//
// A struct is annotated through `computed:"..."` struct tags:
//
//	type Example struct {
//		items []float32          `computed:"get, set, invalidates(sum)"`
//		sum   memo.Cell[float32] `computed:"computed(sumItems)"`
//	}
//
// Types can also be selected explicitly with the -type flag or with a
// //computed:generate directive in the type's doc comment. Selecting a type
// that is not a struct with named fields is an UnsupportedShape error.
package gosource
