// Package db executes statement trees against the persistence layer.
//
// Engine.Execute takes a sql.Statement, dispatches on its type and
// returns a Result: a QueryResult wrapping a TableReader for reads, or a
// CommitResult carrying mutation counts for writes and DDL.
//
// # Mutation Semantics
//
// Multi-row mutations are not atomic. Rows apply one at a time in
// statement order; the first failing row halts the statement and every
// row applied before it stays applied. In that case Execute returns BOTH
// a CommitResult counting the applied rows and a
// core.PartialMutationError naming the failing position. Callers that
// want all-or-nothing behavior must validate up front.
//
// # Projections
//
// A SELECT item list mixes plain columns with function calls. Scalar
// functions produce one value per row; aggregators fold the whole
// selection into a single row. Mixing aggregators with per-row items is
// rejected with core.GroupingError since the engine has no grouping.
package db
