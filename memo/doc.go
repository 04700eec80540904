// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package memo provides the memoization cells that back computed fields in
// code produced by computedgen.
//
// A cell has two states, empty and populated. GetOrInit populates an empty
// cell by calling the supplied function once and returns the cached value on
// every later call. Invalidate returns the cell to the empty state. The zero
// value of every cell is empty, so a cell embedded in a struct starts out
// empty when the struct is created and goes away with it.
//
// Generated setters call Invalidate on the cell of every computed field the
// setter's field is declared to invalidate, before the new value is stored.
// Generated Compute methods call GetOrInit with a closure over the declared
// dependency fields.
//
// Cell performs no locking. A struct that owns a Cell must follow the usual
// single-owner rule: writes need exclusive access, and because Compute methods
// populate the cell, concurrent Compute calls need external synchronization
// too. SyncCell is the drop-in alternative for structs read from several
// goroutines.
package memo
