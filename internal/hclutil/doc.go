// Package hclutil holds small helpers for reading HCL bodies that gohcl does
// not cover.
package hclutil
