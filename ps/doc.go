// Package ps provides the in-memory persistence layer for ferrum.
//
// The layer is a tree of plain Go structures: a Catalog of named
// Databases, each a set of named Tables. A Table owns its rows and its
// secondary indexes exclusively; nothing outside the table mutates either.
//
// # Row Storage
//
// Rows live in an arena keyed by their stable RowID, with a separate
// slice preserving insertion order. Indexes hold RowIDs, never rows, so
// deleting or updating a row can never leave an index aliasing stale
// data.
//
//	catalog := ps.NewCatalog()
//	database, _ := catalog.CreateDatabase("shop")
//	table, _ := database.CreateTable("people", columns)
//	row, _ := table.Insert([]core.Cell{core.NewInt(1), core.NewText("Alice")})
//
// # Indexes
//
// An index maps the encoded value(s) of one or more columns to the set of
// RowIDs currently holding them. Every table mutation updates every index
// incrementally; after a completed mutation the mapping is exact. Unique
// indexes reject conflicting values before any state changes, so a failed
// insert leaves both rows and indexes untouched.
//
// # Readers
//
// A TableReader is a read-only snapshot projection over a table's rows.
// Cells are copied at construction; later table mutations are invisible
// to the reader. An empty reader (no source columns) is the valid seed
// for pure-aggregate projections.
package ps
