package attr

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Accessors is a set of accessor flags.
type Accessors uint8

const (
	Get Accessors = 1 << iota
	Set
)

// Has reports whether every flag in x is present.
func (a Accessors) Has(x Accessors) bool {
	return a&x == x
}

// Empty reports whether no accessor flag is present.
func (a Accessors) Empty() bool {
	return a == 0
}

// Ref names another field of the same structure.
type Ref struct {
	Name  string
	Range hcl.Range
}

// Computation is the argument list of a computed(...) token.
type Computation struct {
	// Func is the canonical function path, e.g. "sumItems" or "stats.Sum".
	Func      string
	FuncRange hcl.Range
	// Deps lists explicitly declared dependency fields in call order.
	// Empty means the dependencies come from the invalidation edges.
	Deps []Ref
}

// Attributes is the parsed annotation of one field.
type Attributes struct {
	Accessors Accessors
	// AccessorRange points at the first accessor token.
	AccessorRange hcl.Range

	Invalidates *Ref
	// InvalidatesRange points at the invalidates keyword.
	InvalidatesRange hcl.Range

	Computed      *Computation
	ComputedRange hcl.Range

	// Range covers the whole annotation.
	Range hcl.Range
}

// IsComputed reports whether the set carries a computed(...) token.
func (s *Attributes) IsComputed() bool {
	return s.Computed != nil
}

// String renders the set back into annotation syntax with tokens in a fixed
// order.
func (s *Attributes) String() string {
	var parts []string
	if s.Accessors.Has(Get) {
		parts = append(parts, "get")
	}
	if s.Accessors.Has(Set) {
		parts = append(parts, "set")
	}
	if s.Invalidates != nil {
		parts = append(parts, "invalidates("+s.Invalidates.Name+")")
	}
	if s.Computed != nil {
		args := []string{s.Computed.Func}
		for _, d := range s.Computed.Deps {
			args = append(args, d.Name)
		}
		parts = append(parts, "computed("+strings.Join(args, ", ")+")")
	}
	return strings.Join(parts, ", ")
}
