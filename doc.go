// Package ferrum provides an in-memory relational engine that executes
// externally built statement trees.
//
// There is no SQL text anywhere in the engine: a caller (parser, server
// or test) constructs sql statement values and hands them to the
// executor. Data lives entirely in process memory; an optional snapshot
// store commits catalog states into an in-memory git history for audit
// and rollback.
//
// # Quick Start
//
//	instance, _ := ferrum.Open(config.Default())
//
//	instance.Execute(sql.CreateDatabaseStatement{Database: "shop"})
//	instance.Execute(sql.CreateTableStatement{
//	    Database: "shop",
//	    Table:    "people",
//	    Columns: []core.Column{
//	        {Name: "id", Type: core.IntType},
//	        {Name: "name", Type: core.TextType},
//	    },
//	})
//	instance.Execute(sql.InsertStatement{
//	    Database: "shop",
//	    Table:    "people",
//	    Rows:     [][]core.Cell{{core.NewInt(1), core.NewText("Alice")}},
//	})
//
//	result, _ := instance.Execute(sql.SelectStatement{Database: "shop", Table: "people"})
//	result.Display()
//
// # Supported Statements
//
//   - CREATE/DROP DATABASE
//   - CREATE/DROP TABLE
//   - CREATE/DROP INDEX
//   - INSERT, SELECT, UPDATE, DELETE
//   - WHERE with comparison operators, IS NULL, AND/OR
//   - ORDER BY, LIMIT, OFFSET
//   - Aggregate functions: COUNT, SUM, AVG, MIN, MAX
//   - Scalar functions: ADD, UPPER, LOWER, LENGTH, TRIM, CONCAT
//
// Multi-row mutations are not atomic: they halt at the first failing
// row and keep everything applied before it.
package ferrum
