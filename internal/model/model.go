package model

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/computedgen/internal/attr"
	"github.com/zclconf/go-cty/cty"
)

// Field is one declared field of an annotated structure.
type Field struct {
	Name      string
	NameRange hcl.Range

	// Type is the declared Go type expression, e.g. "[]float64".
	Type      string
	TypeRange hcl.Range
	// ValueType is the last type argument of a generic instantiation such as
	// memo.Cell[float64]. It is empty for non-generic types.
	ValueType string

	Exported  bool
	Annotated bool
	Attrs     attr.Attributes

	// Default is the constructor default from a schema file. The zero Value
	// means no default.
	Default      cty.Value
	DefaultRange hcl.Range
}

// HasDefault reports whether the field carries a constructor default.
func (f *Field) HasDefault() bool {
	return !f.Default.IsNull()
}

// Struct is an annotated structure.
type Struct struct {
	Name         string
	NameRange    hcl.Range
	KeywordRange hcl.Range
	Fields       []*Field

	// Constructor requests a New<Name> function.
	Constructor bool
	// Declare requests the type declaration itself. Only schema structures
	// set it; Go structures are already declared by the user.
	Declare bool
}

// Field returns the field with the given name, or nil.
func (s *Struct) Field(name string) *Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Import is one import the generated file may need.
type Import struct {
	// Name is the identifier the package is referred to by.
	Name string
	Path string
	// Alias is set when the source spelled out an explicit import name.
	Alias string
}

// File is the result of building one input file.
type File struct {
	Path    string
	Source  []byte
	Package string
	Imports []Import
	Structs []*Struct
}

// Edge is an invalidation edge: writing Source clears Target's cache.
type Edge struct {
	Source *Field
	Target *Field
}

// PlainField is a field without a computed attribute.
type PlainField struct {
	*Field
	Get bool
	Set bool
	// Invalidates is the resolved invalidation target, or nil.
	Invalidates *Field
}

// ComputedField is a field whose value is derived by Func from Deps and
// cached in the field's memoization cell.
type ComputedField struct {
	*Field
	Func string
	Deps []*Field
}

// Plan is the validated, partitioned form of a Struct.
type Plan struct {
	Struct   *Struct
	Plain    []*PlainField
	Computed []*ComputedField
	Edges    []Edge
}

// Member is either a PlainField or a ComputedField, in declaration order.
type Member struct {
	Plain    *PlainField
	Computed *ComputedField
}

// Members returns the plan's fields in declaration order.
func (p *Plan) Members() []Member {
	plain := make(map[*Field]*PlainField, len(p.Plain))
	for _, f := range p.Plain {
		plain[f.Field] = f
	}
	computed := make(map[*Field]*ComputedField, len(p.Computed))
	for _, f := range p.Computed {
		computed[f.Field] = f
	}

	members := make([]Member, 0, len(p.Struct.Fields))
	for _, f := range p.Struct.Fields {
		switch {
		case plain[f] != nil:
			members = append(members, Member{Plain: plain[f]})
		case computed[f] != nil:
			members = append(members, Member{Computed: computed[f]})
		}
	}
	return members
}
