package db

import (
	"time"

	"github.com/ferrumdb/ferrum/core"
	"github.com/ferrumdb/ferrum/ps"
	"github.com/ferrumdb/ferrum/sql"
)

func (engine *Engine) executeCreateDatabaseStatement(statement sql.CreateDatabaseStatement) (CommitResult, error) {
	startTime := time.Now()

	if _, err := engine.catalog.CreateDatabase(statement.Database); err != nil {
		return CommitResult{}, err
	}

	engine.logger.Info("database created", "database", statement.Database)

	return CommitResult{
		DatabasesCreated: 1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeDropDatabaseStatement(statement sql.DropDatabaseStatement) (CommitResult, error) {
	startTime := time.Now()

	if err := engine.catalog.DropDatabase(statement.Database); err != nil {
		return CommitResult{}, err
	}

	engine.logger.Info("database dropped", "database", statement.Database)

	return CommitResult{
		DatabasesDeleted: 1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeCreateTableStatement(statement sql.CreateTableStatement) (CommitResult, error) {
	startTime := time.Now()

	database, err := engine.catalog.Database(statement.Database)
	if err != nil {
		return CommitResult{}, err
	}

	if _, err := database.CreateTable(statement.Table, statement.Columns); err != nil {
		return CommitResult{}, err
	}

	engine.logger.Info("table created",
		"database", statement.Database, "table", statement.Table, "columns", len(statement.Columns))

	return CommitResult{
		TablesCreated:    1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeDropTableStatement(statement sql.DropTableStatement) (CommitResult, error) {
	startTime := time.Now()

	database, err := engine.catalog.Database(statement.Database)
	if err != nil {
		return CommitResult{}, err
	}

	if err := database.DropTable(statement.Table); err != nil {
		return CommitResult{}, err
	}

	engine.logger.Info("table dropped", "database", statement.Database, "table", statement.Table)

	return CommitResult{
		TablesDeleted:    1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeCreateIndexStatement(statement sql.CreateIndexStatement) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.catalog.Table(statement.Database, statement.Table)
	if err != nil {
		return CommitResult{}, err
	}

	if _, err := table.CreateIndex(statement.Name, statement.Columns, statement.Unique); err != nil {
		return CommitResult{}, err
	}

	engine.logger.Info("index created",
		"index", statement.Name, "table", statement.Table, "unique", statement.Unique)

	return CommitResult{
		IndexesCreated:   1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     table.RowCount(),
	}, nil
}

func (engine *Engine) executeDropIndexStatement(statement sql.DropIndexStatement) (CommitResult, error) {
	startTime := time.Now()

	table, err := engine.catalog.Table(statement.Database, statement.Table)
	if err != nil {
		return CommitResult{}, err
	}

	if err := table.DropIndex(statement.Name); err != nil {
		return CommitResult{}, err
	}

	engine.logger.Info("index dropped", "index", statement.Name, "table", statement.Table)

	return CommitResult{
		IndexesDeleted:   1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     1,
	}, nil
}

func (engine *Engine) executeShowDatabasesStatement() (QueryResult, error) {
	startTime := time.Now()

	names := engine.catalog.ListDatabases()
	return listResult("name", names, startTime), nil
}

func (engine *Engine) executeShowTablesStatement(statement sql.ShowTablesStatement) (QueryResult, error) {
	startTime := time.Now()

	database, err := engine.catalog.Database(statement.Database)
	if err != nil {
		return QueryResult{}, err
	}

	return listResult("name", database.ListTables(), startTime), nil
}

func listResult(column string, names []string, startTime time.Time) QueryResult {
	values := make([]core.Cell, len(names))
	for i, name := range names {
		values[i] = core.NewText(name)
	}

	reader := ps.ListReader(core.Column{Name: column, Type: core.TextType}, values)
	return QueryResult{
		Reader:           reader,
		RecordsRead:      len(names),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
		ExecutionOps:     len(names),
	}
}
