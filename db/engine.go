package db

import (
	"fmt"
	"log/slog"

	"github.com/ferrumdb/ferrum/fn"
	"github.com/ferrumdb/ferrum/ps"
	"github.com/ferrumdb/ferrum/sql"
)

// Engine interprets statement trees against a catalog. It holds no
// state of its own beyond its collaborators, so one engine can serve
// any number of statements sequentially.
type Engine struct {
	catalog  *ps.Catalog
	registry *fn.Registry
	logger   *slog.Logger
}

func NewEngine(catalog *ps.Catalog, registry *fn.Registry, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog:  catalog,
		registry: registry,
		logger:   logger,
	}
}

func (engine *Engine) Catalog() *ps.Catalog {
	return engine.catalog
}

// Execute runs one statement. Reads return a QueryResult; writes and
// DDL return a CommitResult. A halted multi-row mutation returns both a
// partial CommitResult and a core.PartialMutationError.
func (engine *Engine) Execute(statement sql.Statement) (Result, error) {
	engine.logger.Debug("executing statement", "type", statement.Type())

	switch statement.Type() {
	case sql.SelectStatementType:
		return engine.executeSelectStatement(statement.(sql.SelectStatement))
	case sql.InsertStatementType:
		return engine.executeInsertStatement(statement.(sql.InsertStatement))
	case sql.UpdateStatementType:
		return engine.executeUpdateStatement(statement.(sql.UpdateStatement))
	case sql.DeleteStatementType:
		return engine.executeDeleteStatement(statement.(sql.DeleteStatement))
	case sql.CreateTableStatementType:
		return engine.executeCreateTableStatement(statement.(sql.CreateTableStatement))
	case sql.DropTableStatementType:
		return engine.executeDropTableStatement(statement.(sql.DropTableStatement))
	case sql.CreateDatabaseStatementType:
		return engine.executeCreateDatabaseStatement(statement.(sql.CreateDatabaseStatement))
	case sql.DropDatabaseStatementType:
		return engine.executeDropDatabaseStatement(statement.(sql.DropDatabaseStatement))
	case sql.CreateIndexStatementType:
		return engine.executeCreateIndexStatement(statement.(sql.CreateIndexStatement))
	case sql.DropIndexStatementType:
		return engine.executeDropIndexStatement(statement.(sql.DropIndexStatement))
	case sql.ShowDatabasesStatementType:
		return engine.executeShowDatabasesStatement()
	case sql.ShowTablesStatementType:
		return engine.executeShowTablesStatement(statement.(sql.ShowTablesStatement))
	default:
		return nil, fmt.Errorf("unsupported statement type: %v", statement.Type())
	}
}
