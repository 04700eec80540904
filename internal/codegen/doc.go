// Package codegen turns validated plans into Go source.
//
// Generation is a pure function of the model: the same File and Plans always
// produce the same bytes. For every structure it emits, in field declaration
// order, Get<Field> and Set<Field> for plain fields and Compute<Field> for
// computed fields, plus a blank function holding compile-time assertions
// that every invalidation target and every computed cell implements the
// memoization contract. A missing field therefore fails to compile instead
// of failing on first use.
//
// Setters invalidate their target before assigning. The order is fixed: a
// reader can never see a cached value next to a newer source value.
package codegen
