package db

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ferrumdb/ferrum/core"
	"github.com/ferrumdb/ferrum/fn"
	"github.com/ferrumdb/ferrum/ps"
	"github.com/ferrumdb/ferrum/sql"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(ps.NewCatalog(), fn.Default(), logger)
}

func mustExecute(t *testing.T, engine *Engine, statement sql.Statement) Result {
	t.Helper()

	result, err := engine.Execute(statement)
	if err != nil {
		t.Fatalf("Execute(%T) failed: %v", statement, err)
	}
	return result
}

func setupPeople(t *testing.T, engine *Engine) {
	t.Helper()

	mustExecute(t, engine, sql.CreateDatabaseStatement{Database: "shop"})
	mustExecute(t, engine, sql.CreateTableStatement{
		Database: "shop",
		Table:    "people",
		Columns: []core.Column{
			{Name: "id", Type: core.IntType},
			{Name: "name", Type: core.TextType},
			{Name: "age", Type: core.IntType, Nullable: true},
		},
	})
	mustExecute(t, engine, sql.InsertStatement{
		Database: "shop",
		Table:    "people",
		Rows: [][]core.Cell{
			{core.NewInt(1), core.NewText("Alice"), core.NewInt(30)},
			{core.NewInt(2), core.NewText("Bob"), core.NewInt(25)},
			{core.NewInt(3), core.NewText("Carol"), core.Null()},
		},
	})
}

func TestCreateAndDropDatabaseStatements(t *testing.T) {
	engine := newTestEngine(t)

	result := mustExecute(t, engine, sql.CreateDatabaseStatement{Database: "shop"})
	commit := result.(CommitResult)
	if commit.DatabasesCreated != 1 {
		t.Errorf("expected 1 database created, got %d", commit.DatabasesCreated)
	}

	if _, err := engine.Execute(sql.CreateDatabaseStatement{Database: "shop"}); err == nil {
		t.Fatal("expected duplicate CREATE DATABASE to fail")
	}

	result = mustExecute(t, engine, sql.DropDatabaseStatement{Database: "shop"})
	if result.(CommitResult).DatabasesDeleted != 1 {
		t.Errorf("expected 1 database deleted")
	}

	if _, err := engine.Execute(sql.DropDatabaseStatement{Database: "shop"}); err == nil {
		t.Fatal("expected DROP of missing database to fail")
	}
}

func TestCreateTableAndShowStatements(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	result := mustExecute(t, engine, sql.ShowDatabasesStatement{})
	query := result.(QueryResult)
	if query.RecordsRead != 1 || query.Reader.Cell(0, 0).Text != "shop" {
		t.Errorf("SHOW DATABASES returned %d rows", query.RecordsRead)
	}

	result = mustExecute(t, engine, sql.ShowTablesStatement{Database: "shop"})
	query = result.(QueryResult)
	if query.RecordsRead != 1 || query.Reader.Cell(0, 0).Text != "people" {
		t.Errorf("SHOW TABLES returned %d rows", query.RecordsRead)
	}

	mustExecute(t, engine, sql.DropTableStatement{Database: "shop", Table: "people"})
	result = mustExecute(t, engine, sql.ShowTablesStatement{Database: "shop"})
	if result.(QueryResult).RecordsRead != 0 {
		t.Error("expected no tables after drop")
	}
}

func TestInsertStatementCountsRows(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	result := mustExecute(t, engine, sql.InsertStatement{
		Database: "shop",
		Table:    "people",
		Rows: [][]core.Cell{
			{core.NewInt(4), core.NewText("Dave"), core.NewInt(19)},
		},
	})
	if result.(CommitResult).RecordsWritten != 1 {
		t.Errorf("expected 1 record written, got %d", result.(CommitResult).RecordsWritten)
	}
}

func TestInsertStatementWithColumnOrder(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	mustExecute(t, engine, sql.InsertStatement{
		Database: "shop",
		Table:    "people",
		Columns:  []string{"name", "age", "id"},
		Rows: [][]core.Cell{
			{core.NewText("Dave"), core.NewInt(19), core.NewInt(4)},
		},
	})

	table, _ := engine.catalog.Table("shop", "people")
	rows := table.Rows()
	last := rows[len(rows)-1]
	if last.Cells[0].Int != 4 || last.Cells[1].Text != "Dave" {
		t.Errorf("cells not reordered to table layout: %v", last.Cells)
	}
}

func TestInsertHaltsAtFirstBadRow(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	result, err := engine.Execute(sql.InsertStatement{
		Database: "shop",
		Table:    "people",
		Rows: [][]core.Cell{
			{core.NewInt(4), core.NewText("Dave"), core.NewInt(19)},
			{core.NewInt(5), core.NewInt(99), core.NewInt(20)}, // wrong type
			{core.NewInt(6), core.NewText("Frank"), core.NewInt(21)},
		},
	})

	var partialErr *core.PartialMutationError
	if !errors.As(err, &partialErr) {
		t.Fatalf("expected PartialMutationError, got %v", err)
	}
	if partialErr.Committed != 1 || partialErr.Position != 1 {
		t.Errorf("expected 1 committed at position 1, got %+v", partialErr)
	}

	var typeErr *core.TypeMismatchError
	if !errors.As(err, &typeErr) {
		t.Error("expected wrapped TypeMismatchError")
	}

	if result.(CommitResult).RecordsWritten != 1 {
		t.Errorf("partial result should count committed rows, got %d",
			result.(CommitResult).RecordsWritten)
	}

	// The first row stays, the failing and following rows never land.
	table, _ := engine.catalog.Table("shop", "people")
	if table.RowCount() != 4 {
		t.Errorf("expected 4 rows after halted insert, got %d", table.RowCount())
	}
}

func TestUpdateStatement(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	result := mustExecute(t, engine, sql.UpdateStatement{
		Database: "shop",
		Table:    "people",
		Sets:     []sql.SetClause{{Column: "age", Value: core.NewInt(40)}},
		Where: sql.WhereClause{Conditions: []sql.WhereCondition{
			{Column: "name", Operator: sql.EqualsOperator, Value: core.NewText("Alice")},
		}},
	})
	if result.(CommitResult).RecordsWritten != 1 {
		t.Errorf("expected 1 record written, got %d", result.(CommitResult).RecordsWritten)
	}

	table, _ := engine.catalog.Table("shop", "people")
	if table.Rows()[0].Cells[2].Int != 40 {
		t.Error("update did not apply")
	}
}

func TestUpdateWithoutWhereTouchesEveryRow(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	result := mustExecute(t, engine, sql.UpdateStatement{
		Database: "shop",
		Table:    "people",
		Sets:     []sql.SetClause{{Column: "age", Value: core.NewInt(1)}},
	})
	if result.(CommitResult).RecordsWritten != 3 {
		t.Errorf("expected 3 records written, got %d", result.(CommitResult).RecordsWritten)
	}
}

func TestUpdateHaltsAtFirstFailure(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)
	mustExecute(t, engine, sql.CreateIndexStatement{
		Name: "by_id", Database: "shop", Table: "people",
		Columns: []string{"id"}, Unique: true,
	})

	// Driving every id to the same value trips the unique index on the
	// second row; the first keeps its new value.
	result, err := engine.Execute(sql.UpdateStatement{
		Database: "shop",
		Table:    "people",
		Sets:     []sql.SetClause{{Column: "id", Value: core.NewInt(100)}},
	})

	var partialErr *core.PartialMutationError
	if !errors.As(err, &partialErr) {
		t.Fatalf("expected PartialMutationError, got %v", err)
	}
	if partialErr.Committed != 1 || partialErr.Position != 1 {
		t.Errorf("expected 1 committed at position 1, got %+v", partialErr)
	}
	if result.(CommitResult).RecordsWritten != 1 {
		t.Error("partial result should count the committed update")
	}

	table, _ := engine.catalog.Table("shop", "people")
	rows := table.Rows()
	if rows[0].Cells[0].Int != 100 {
		t.Error("first update should stay applied")
	}
	if rows[1].Cells[0].Int != 2 {
		t.Error("failing update must not apply")
	}
}

func TestDeleteStatement(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	result := mustExecute(t, engine, sql.DeleteStatement{
		Database: "shop",
		Table:    "people",
		Where: sql.WhereClause{Conditions: []sql.WhereCondition{
			{Column: "age", Operator: sql.LessThanOperator, Value: core.NewInt(28)},
		}},
	})
	if result.(CommitResult).RecordsDeleted != 1 {
		t.Errorf("expected 1 record deleted, got %d", result.(CommitResult).RecordsDeleted)
	}

	table, _ := engine.catalog.Table("shop", "people")
	if table.RowCount() != 2 {
		t.Errorf("expected 2 rows left, got %d", table.RowCount())
	}
}

func TestDeleteWithoutWhereEmptiesTable(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	result := mustExecute(t, engine, sql.DeleteStatement{Database: "shop", Table: "people"})
	if result.(CommitResult).RecordsDeleted != 3 {
		t.Errorf("expected 3 records deleted, got %d", result.(CommitResult).RecordsDeleted)
	}

	table, _ := engine.catalog.Table("shop", "people")
	if table.RowCount() != 0 {
		t.Error("expected empty table")
	}
}

func TestCreateAndDropIndexStatements(t *testing.T) {
	engine := newTestEngine(t)
	setupPeople(t, engine)

	result := mustExecute(t, engine, sql.CreateIndexStatement{
		Name: "by_name", Database: "shop", Table: "people", Columns: []string{"name"},
	})
	if result.(CommitResult).IndexesCreated != 1 {
		t.Error("expected 1 index created")
	}

	result = mustExecute(t, engine, sql.DropIndexStatement{
		Name: "by_name", Database: "shop", Table: "people",
	})
	if result.(CommitResult).IndexesDeleted != 1 {
		t.Error("expected 1 index deleted")
	}
}

func TestExecuteUnknownTable(t *testing.T) {
	engine := newTestEngine(t)
	mustExecute(t, engine, sql.CreateDatabaseStatement{Database: "shop"})

	_, err := engine.Execute(sql.SelectStatement{Database: "shop", Table: "ghost"})
	var schemaErr *core.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}
