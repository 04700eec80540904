// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package schema reads structure declarations from HCL schema files.
//
// A schema file declares the package, its imports and one or more structures.
// Each field names its Go type, its annotation list and an optional
// constructor default:
//
//	package = "cart"
//	imports = ["github.com/specialistvlad/computedgen/memo"]
//
//	struct "Cart" {
//	  constructor = true
//
//	  field "items" {
//	    type       = "[]float64"
//	    attributes = [get, set, invalidates(total)]
//	    default    = [1, 2, 3]
//	  }
//
//	  field "total" {
//	    type       = "memo.Cell[float64]"
//	    attributes = [computed(cartTotal)]
//	  }
//	}
//
// An import entry is either "path" or "name path". Without a name the
// package name is guessed from the last path element; write the name out
// when the package declares a different one.
//
// Unlike Go sources, the structures are declared by the generated file
// itself. enum, union and tuple blocks are recognized only to be rejected.
package schema
