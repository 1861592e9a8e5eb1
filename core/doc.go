// Package core provides the primitive types used throughout ferrum.
//
// The package defines Cell (a tagged value), Column, Row, Identity, and
// the error kinds the engine reports.
//
// # Cells
//
// A Cell is one typed value stored at a row/column intersection:
//
//	age := core.NewInt(30)
//	name := core.NewText("Alice")
//	none := core.Null()
//
// Comparisons are only defined between compatible tags. Int and Float are
// mutually comparable; everything else compares only with its own tag.
// Mixing incompatible tags returns a TypeMismatchError.
//
// # Rows
//
// A Row carries a stable RowID assigned when the row is first inserted.
// The identifier is independent of the row's storage position and is never
// reused within a table's lifetime, even after deletion. Indexes refer to
// rows by RowID only.
//
// # Error Kinds
//
// The engine surfaces typed errors so callers can tell kinds apart with
// errors.As:
//   - SchemaError: missing/duplicate database, table, column or index
//   - TypeMismatchError: cell/column type incompatibility
//   - UnknownFunctionError: function name not registered
//   - ArityMismatchError: wrong argument count for a function
//   - GroupingError: aggregate mixed with per-row projections
//   - PartialMutationError: a bulk mutation halted partway
package core
