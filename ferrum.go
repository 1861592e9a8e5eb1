package ferrum

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferrumdb/ferrum/config"
	"github.com/ferrumdb/ferrum/core"
	"github.com/ferrumdb/ferrum/db"
	"github.com/ferrumdb/ferrum/fn"
	"github.com/ferrumdb/ferrum/logging"
	"github.com/ferrumdb/ferrum/ps"
	"github.com/ferrumdb/ferrum/snapshot"
	"github.com/ferrumdb/ferrum/sql"
)

// Instance ties a catalog, a function registry, an executor and the
// optional snapshot history together.
type Instance struct {
	catalog   *ps.Catalog
	registry  *fn.Registry
	engine    *db.Engine
	snapshots *snapshot.Store
	identity  core.Identity
	logger    *slog.Logger
}

func Open(cfg config.Config) (*Instance, error) {
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger := logging.Get()

	catalog := ps.NewCatalog()
	registry := fn.Default()

	var snapshots *snapshot.Store
	if cfg.Snapshots {
		var err error
		snapshots, err = snapshot.NewStore()
		if err != nil {
			return nil, err
		}
	}

	return &Instance{
		catalog:   catalog,
		registry:  registry,
		engine:    db.NewEngine(catalog, registry, logger),
		snapshots: snapshots,
		identity:  core.Identity{Name: cfg.Identity.Name, Email: cfg.Identity.Email},
		logger:    logger,
	}, nil
}

func (instance *Instance) Catalog() *ps.Catalog {
	return instance.catalog
}

func (instance *Instance) Registry() *fn.Registry {
	return instance.registry
}

// Snapshots returns the snapshot store, or nil when disabled.
func (instance *Instance) Snapshots() *snapshot.Store {
	return instance.snapshots
}

// Execute runs one statement. After any statement that changed state —
// including a halted mutation that committed some rows — the new catalog
// state is captured into the snapshot history.
func (instance *Instance) Execute(statement sql.Statement) (db.Result, error) {
	result, err := instance.engine.Execute(statement)

	if instance.snapshots != nil && mutated(statement, err) {
		if _, captureErr := instance.snapshots.Capture(instance.catalog, instance.identity, describe(statement)); captureErr != nil {
			instance.logger.Warn("snapshot capture failed", "error", captureErr)
		}
	}

	return result, err
}

// Restore replaces the live catalog with the state of the named
// snapshot. Statements executed afterwards run against the restored
// state; the snapshot history itself keeps growing on top.
func (instance *Instance) Restore(id string) error {
	if instance.snapshots == nil {
		return fmt.Errorf("snapshots are disabled")
	}

	catalog, err := instance.snapshots.Restore(id)
	if err != nil {
		return err
	}

	instance.catalog = catalog
	instance.engine = db.NewEngine(catalog, instance.registry, instance.logger)
	instance.logger.Info("catalog restored", "snapshot", id)
	return nil
}

// mutated reports whether the statement changed catalog state. A halted
// mutation counts when it committed at least one row before failing.
func mutated(statement sql.Statement, err error) bool {
	switch statement.Type() {
	case sql.SelectStatementType, sql.ShowDatabasesStatementType, sql.ShowTablesStatementType:
		return false
	}

	if err == nil {
		return true
	}
	var partialErr *core.PartialMutationError
	return errors.As(err, &partialErr) && partialErr.Committed > 0
}

func describe(statement sql.Statement) string {
	switch s := statement.(type) {
	case sql.CreateDatabaseStatement:
		return fmt.Sprintf("CREATE DATABASE %s", s.Database)
	case sql.DropDatabaseStatement:
		return fmt.Sprintf("DROP DATABASE %s", s.Database)
	case sql.CreateTableStatement:
		return fmt.Sprintf("CREATE TABLE %s.%s", s.Database, s.Table)
	case sql.DropTableStatement:
		return fmt.Sprintf("DROP TABLE %s.%s", s.Database, s.Table)
	case sql.CreateIndexStatement:
		return fmt.Sprintf("CREATE INDEX %s ON %s.%s", s.Name, s.Database, s.Table)
	case sql.DropIndexStatement:
		return fmt.Sprintf("DROP INDEX %s ON %s.%s", s.Name, s.Database, s.Table)
	case sql.InsertStatement:
		return fmt.Sprintf("INSERT INTO %s.%s", s.Database, s.Table)
	case sql.UpdateStatement:
		return fmt.Sprintf("UPDATE %s.%s", s.Database, s.Table)
	case sql.DeleteStatement:
		return fmt.Sprintf("DELETE FROM %s.%s", s.Database, s.Table)
	default:
		return "statement"
	}
}
