// Package sql defines the statement tree the ferrum engine executes.
//
// The engine does not parse SQL text; an external parser (shell, server,
// or test code) builds these statement values and hands them to
// db.Engine.Execute. The types here are the whole inbound contract:
// statement kind, target names, predicate tree, and projection list.
//
// # Building Statements
//
//	stmt := sql.SelectStatement{
//	    Database: "shop",
//	    Table:    "people",
//	    Items: []sql.SelectItem{
//	        {Column: "name"},
//	        {Column: "age"},
//	        {Function: &sql.FunctionCall{
//	            Name: "ADD",
//	            Args: []sql.FunctionArg{
//	                sql.ColumnArg("age"),
//	                sql.ValueArg(core.NewInt(50)),
//	            },
//	        }, Alias: "Plus 50"},
//	    },
//	}
//
// # Predicates
//
// WhereClause holds a flat condition list joined by AND/OR operators, in
// the order they appeared in the statement. An empty clause matches every
// row.
package sql
