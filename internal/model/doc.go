// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the format-agnostic representation of annotated
// structures. Both front-ends, Go source (gosource) and HCL schema (schema),
// produce a File; the soundness checker turns each Struct into a Plan; the
// code generator consumes Plans.
//
// # Core Concepts
//
//   - Field: one struct field with its declared type, visibility and parsed
//     attributes. Fields keep their declaration order everywhere.
//
//   - Struct: an annotated structure and its fields.
//
//   - File: every annotated structure found in one input file, together with
//     the package name and the imports the generated code may need.
//
//   - Plan: the validated view of a Struct, split into plain fields (with
//     accessors and an optional invalidation edge) and computed fields (with a
//     computing function and ordered dependencies).
//
// Everything in this package exists only at generation time. None of it has
// a run-time representation in the generated code.
package model
