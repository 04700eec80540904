// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package soundness validates an annotated structure and partitions its fields
// into plain and computed groups ready for code generation.
//
// The checks, in the order they run:
//
//  1. Annotated fields must be unexported, so the generated accessors are
//     the only way to reach them from outside the package.
//  2. A computed field may not also carry accessors or an invalidates
//     attribute, and its type must be a generic cell instantiation such as
//     memo.Cell[T].
//  3. Every invalidates(target) must name a field of the same structure.
//  4. Explicit dependencies of a computed field must name plain fields.
//     Without explicit dependencies, the dependencies are the fields that
//     invalidate the computed field, in declaration order.
//  5. Generated method names may not clash with field names.
//
// Every pass walks fields in declaration order, so the diagnostics for a
// given input are always the same and in the same order.
package soundness
