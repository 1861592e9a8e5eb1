package ps

import (
	"sort"

	"github.com/ferrumdb/ferrum/core"
)

// Database is a named collection of tables.
type Database struct {
	Name   string
	tables map[string]*Table
}

func (database *Database) CreateTable(name string, columns []core.Column) (*Table, error) {
	if _, exists := database.tables[name]; exists {
		return nil, core.NewSchemaError("table %s.%s already exists", database.Name, name)
	}

	table, err := NewTable(database.Name, name, columns)
	if err != nil {
		return nil, err
	}

	database.tables[name] = table
	return table, nil
}

// DropTable removes the table and, with it, every index the table owns.
func (database *Database) DropTable(name string) error {
	if _, exists := database.tables[name]; !exists {
		return core.NewSchemaError("table %s.%s does not exist", database.Name, name)
	}

	delete(database.tables, name)
	return nil
}

func (database *Database) Table(name string) (*Table, error) {
	table, exists := database.tables[name]
	if !exists {
		return nil, core.NewSchemaError("table %s.%s does not exist", database.Name, name)
	}
	return table, nil
}

func (database *Database) ListTables() []string {
	names := make([]string, 0, len(database.tables))
	for name := range database.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
