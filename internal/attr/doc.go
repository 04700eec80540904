// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package attr parses the annotation attached to a single struct field into a
// structured Set.
//
// The grammar is a comma-separated list of four token forms:
//
//	get
//	set
//	invalidates(<field>)
//	computed(<function-path>[, <dependency-field>...])
//
// Annotations are parsed as HCL expressions. In a schema file the list is
// written directly (attributes = [get, set, invalidates(total)]); in Go source
// the value of a `computed:"..."` struct tag is wrapped in brackets and parsed
// at its real position in the file, so every diagnostic points at the exact
// token that caused it.
//
// Parsing only checks the shape of each token. Cross-field rules, such as
// whether a computed field may also have accessors or whether an invalidation
// target exists, belong to the soundness package.
package attr
