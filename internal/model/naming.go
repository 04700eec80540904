package model

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ExportName upper-cases the first letter of a field name: items → Items.
func ExportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Upper(language.Und).String(string(r)) + name[size:]
}

// GetterName is the accessor name for get: items → GetItems.
func GetterName(field string) string { return "Get" + ExportName(field) }

// SetterName is the accessor name for set: items → SetItems.
func SetterName(field string) string { return "Set" + ExportName(field) }

// ComputeName is the accessor name for a computed field: sum → ComputeSum.
func ComputeName(field string) string { return "Compute" + ExportName(field) }

// ConstructorName is the name of the optional constructor: Cart → NewCart.
func ConstructorName(structure string) string { return "New" + ExportName(structure) }
