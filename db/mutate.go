package db

import (
	"time"

	"github.com/ferrumdb/ferrum/core"
	"github.com/ferrumdb/ferrum/sql"
)

// Multi-row mutations apply row by row in statement order and halt at
// the first failure, keeping everything applied before it. The partial
// CommitResult comes back alongside the PartialMutationError so callers
// can see exactly how far the statement got.

func (engine *Engine) executeInsertStatement(statement sql.InsertStatement) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.catalog.Table(statement.Database, statement.Table)
	if err != nil {
		return CommitResult{}, err
	}

	// Map statement column order onto table column order. Every column
	// must be covered; there are no default values.
	positions := make([]int, len(table.Columns))
	if len(statement.Columns) == 0 {
		for i := range positions {
			positions[i] = i
		}
	} else {
		if len(statement.Columns) != len(table.Columns) {
			return CommitResult{}, core.NewSchemaError(
				"INSERT into %s.%s names %d of %d column(s)",
				statement.Database, statement.Table, len(statement.Columns), len(table.Columns))
		}
		for i, name := range statement.Columns {
			position, err := table.ColumnIndex(name)
			if err != nil {
				return CommitResult{}, err
			}
			positions[i] = position
		}
	}

	written := 0
	for i, cells := range statement.Rows {
		ordered := cells
		if len(cells) == len(positions) {
			ordered = make([]core.Cell, len(cells))
			for j, cell := range cells {
				ordered[positions[j]] = cell
			}
		}

		if _, err := table.Insert(ordered); err != nil {
			engine.logger.Warn("insert halted",
				"database", statement.Database, "table", statement.Table,
				"position", i, "committed", written, "error", err)

			return CommitResult{
				RecordsWritten:   written,
				ExecutionTimeSec: time.Since(startTime).Seconds(),
				ExecutionOps:     written,
			}, &core.PartialMutationError{Committed: written, Position: i, Err: err}
		}
		written++
	}

	return CommitResult{
		RecordsWritten:   written,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     written,
	}, nil
}

func (engine *Engine) executeUpdateStatement(statement sql.UpdateStatement) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.catalog.Table(statement.Database, statement.Table)
	if err != nil {
		return CommitResult{}, err
	}

	matched, scanned, err := matchRows(table, statement.Where)
	if err != nil {
		return CommitResult{}, err
	}

	sets := make(map[string]core.Cell, len(statement.Sets))
	for _, set := range statement.Sets {
		sets[set.Column] = set.Value
	}

	written := 0
	for i, row := range matched {
		if err := table.Update(row.ID, sets); err != nil {
			engine.logger.Warn("update halted",
				"database", statement.Database, "table", statement.Table,
				"position", i, "committed", written, "error", err)

			return CommitResult{
				RecordsWritten:   written,
				ExecutionTimeSec: time.Since(startTime).Seconds(),
				ExecutionOps:     scanned,
			}, &core.PartialMutationError{Committed: written, Position: i, Err: err}
		}
		written++
	}

	return CommitResult{
		RecordsWritten:   written,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     scanned,
	}, nil
}

func (engine *Engine) executeDeleteStatement(statement sql.DeleteStatement) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.catalog.Table(statement.Database, statement.Table)
	if err != nil {
		return CommitResult{}, err
	}

	matched, scanned, err := matchRows(table, statement.Where)
	if err != nil {
		return CommitResult{}, err
	}

	deleted := 0
	for i, row := range matched {
		if err := table.Delete(row.ID); err != nil {
			engine.logger.Warn("delete halted",
				"database", statement.Database, "table", statement.Table,
				"position", i, "committed", deleted, "error", err)

			return CommitResult{
				RecordsDeleted:   deleted,
				ExecutionTimeSec: time.Since(startTime).Seconds(),
				ExecutionOps:     scanned,
			}, &core.PartialMutationError{Committed: deleted, Position: i, Err: err}
		}
		deleted++
	}

	return CommitResult{
		RecordsDeleted:   deleted,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     scanned,
	}, nil
}
