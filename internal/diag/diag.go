// Package diag defines the failure taxonomy of the generator. Failures are
// ordinary *hcl.Diagnostic values pointing at the offending source token; the
// Kind travels in the diagnostic's Extra field.
package diag

import "github.com/hashicorp/hcl/v2"

// Kind classifies a generation failure.
type Kind int

const (
	// KindNone marks diagnostics that carry no kind, such as plain HCL
	// syntax errors.
	KindNone Kind = iota
	UnsupportedShape
	UnknownAttribute
	DuplicateAttribute
	AttributeConflict
	UndefinedInvalidationTarget
	MalformedAttribute
	UndefinedDependency
	UnsupportedCellType
	VisibilityViolation
	NameCollision
	TypeNotFound
	// StaleDependency is only ever attached to warnings.
	StaleDependency
)

var kindNames = map[Kind]string{
	KindNone:                    "None",
	UnsupportedShape:            "UnsupportedShape",
	UnknownAttribute:            "UnknownAttribute",
	DuplicateAttribute:          "DuplicateAttribute",
	AttributeConflict:           "AttributeConflict",
	UndefinedInvalidationTarget: "UndefinedInvalidationTarget",
	MalformedAttribute:          "MalformedAttribute",
	UndefinedDependency:         "UndefinedDependency",
	UnsupportedCellType:         "UnsupportedCellType",
	VisibilityViolation:         "VisibilityViolation",
	NameCollision:               "NameCollision",
	TypeNotFound:                "TypeNotFound",
	StaleDependency:             "StaleDependency",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(?)"
}

// Error builds an error diagnostic of the given kind anchored at subject.
func Error(kind Kind, subject hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
		Extra:    kind,
	}
}

// Warning builds a warning diagnostic. Warnings never stop generation.
func Warning(kind Kind, subject hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
		Extra:    kind,
	}
}

// KindOf returns the kind attached to d, or KindNone.
func KindOf(d *hcl.Diagnostic) Kind {
	if d == nil {
		return KindNone
	}
	if k, ok := d.Extra.(Kind); ok {
		return k
	}
	return KindNone
}

// Kinds lists the kinds of all error diagnostics in order.
func Kinds(diags hcl.Diagnostics) []Kind {
	var kinds []Kind
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			kinds = append(kinds, KindOf(d))
		}
	}
	return kinds
}

// Has reports whether diags contains an error of the given kind.
func Has(diags hcl.Diagnostics, kind Kind) bool {
	for _, k := range Kinds(diags) {
		if k == kind {
			return true
		}
	}
	return false
}
